// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

// Package wan implements the packet-data context connect/disconnect
// workflow: resolve a context by its 1-based listing index, toggle it,
// re-read the daemon's view and hand the resulting IP settings to the host
// network applier and the resolver file updater.
package wan

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"

	"github.com/ofonoctl/ofonoctl/devicenetwork"
	"github.com/ofonoctl/ofonoctl/ofono"
)

// defaultSettleDelay gives the daemon time to obtain an address after
// activation before the context is re-read.
const defaultSettleDelay = 2 * time.Second

// Action selects what the workflow does with the resolved context.
type Action int

const (
	// ActionConnect activates the context and applies its IP settings.
	ActionConnect Action = iota
	// ActionDisconnect deactivates the context.
	ActionDisconnect
)

// Modem is the slice of the telephony client the workflow drives.
type Modem interface {
	Contexts(ctx context.Context) ([]ofono.Context, error)
	SetContextActive(ctx context.Context, path dbus.ObjectPath, active bool) error
}

// Applier installs one family's extracted settings into the host stack.
type Applier interface {
	Apply(cfg devicenetwork.IPConfig) error
}

// Resolver forwards the accumulated DNS server list to the resolver
// configuration file.
type Resolver interface {
	Update(nameservers []net.IP) error
}

// InvalidSelectorError reports a context index outside the listed range.
// No daemon mutation happens when it is returned.
type InvalidSelectorError struct {
	Given int
	Count int
}

func (e *InvalidSelectorError) Error() string {
	return fmt.Sprintf("invalid context index %d: valid range is 1..%d", e.Given, e.Count)
}

// Options select the workflow behavior for one invocation.
type Options struct {
	Action Action
	// Context is the 1-based index into the daemon's context listing.
	// Zero selects the first context.
	Context int
	// AppendDNS forwards learned DNS servers to the Resolver on connect.
	AppendDNS bool
	// Probe verifies reachability through the new connection on connect.
	Probe bool
	// ICMPTarget is the fallback probe destination.
	ICMPTarget net.IP
}

// Result is what a completed workflow reports back for display.
type Result struct {
	// Context is the daemon's view of the selected context after the
	// action (refreshed after activation, pre-action for disconnect).
	Context ofono.Context
	// Applied lists the per-family configurations handed to the Applier.
	Applied []devicenetwork.IPConfig
	// DNSServers accumulates IPv4 then IPv6 DNS servers of the context.
	DNSServers []net.IP
	// ToggleErr is the non-fatal outcome of the Active property toggle.
	// When set, the workflow stopped before any host-side step: daemon-side
	// state may already have partially changed, so the failure is reported
	// rather than escalated.
	ToggleErr error
	// ProbeErr is the non-fatal outcome of the reachability probe.
	ProbeErr error
}

// Workflow holds the collaborators for one connect/disconnect run.
type Workflow struct {
	Modem    Modem
	Applier  Applier
	Resolver Resolver
	Log      *logrus.Logger

	// SettleDelay overrides the fixed post-activation delay in tests.
	SettleDelay time.Duration
	// probe is swapped out in tests.
	probe func(log *logrus.Logger, cfg devicenetwork.ProbeConfig) error
}

// Run executes the workflow. Errors from activation onwards may leave
// partial state behind on the daemon or host; they are reported, not rolled
// back.
func (w *Workflow) Run(ctx context.Context, opts Options) (*Result, error) {
	contexts, err := w.Modem.Contexts(ctx)
	if err != nil {
		return nil, err
	}
	index := opts.Context
	if index == 0 {
		index = 1
	}
	if index < 1 || index > len(contexts) {
		return nil, &InvalidSelectorError{Given: index, Count: len(contexts)}
	}
	selected := contexts[index-1]

	if opts.Action == ActionDisconnect {
		if err := w.Modem.SetContextActive(ctx, selected.Path, false); err != nil {
			w.Log.Errorf("Failed to deactivate context %s: %v", selected.Path, err)
			return &Result{Context: selected, ToggleErr: err}, nil
		}
		selected.Active = false
		return &Result{Context: selected}, nil
	}

	if err := w.Modem.SetContextActive(ctx, selected.Path, true); err != nil {
		w.Log.Errorf("Failed to activate context %s: %v", selected.Path, err)
		return &Result{Context: selected, ToggleErr: err}, nil
	}
	w.settle()
	refreshed, err := w.Modem.Contexts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read contexts after activation: %w", err)
	}
	var current *ofono.Context
	for i := range refreshed {
		if refreshed[i].Path == selected.Path {
			current = &refreshed[i]
			break
		}
	}
	if current == nil {
		// Daemon-side state changed concurrently; nothing left to verify.
		return nil, fmt.Errorf("context %s disappeared while waiting for activation",
			selected.Path)
	}
	result := &Result{Context: *current}

	// IPv4 settings only carry an address when statically provided by the
	// network; IPv6 settings have no such method gating.
	if s := current.IPv4; s != nil && s.Method == "static" {
		cfg, err := ipv4Config(s)
		w.applyFamily(result, cfg, err)
	}
	if s := current.IPv6; s != nil {
		cfg, err := ipv6Config(s)
		w.applyFamily(result, cfg, err)
	}

	if opts.AppendDNS {
		if w.Resolver == nil {
			return result, fmt.Errorf("no resolver configuration target available")
		}
		if err := w.Resolver.Update(result.DNSServers); err != nil {
			return result, err
		}
	}
	if opts.Probe && len(result.Applied) > 0 {
		probe := w.probe
		if probe == nil {
			probe = devicenetwork.Probe
		}
		result.ProbeErr = probe(w.Log, devicenetwork.ProbeConfig{
			SourceIP:   result.Applied[0].Address.IP,
			DNSServers: result.DNSServers,
			ICMPTarget: opts.ICMPTarget,
		})
	}
	return result, nil
}

// applyFamily hands one family's configuration to the applier. Failures are
// reported and the workflow continues with the remaining steps; the DNS
// servers still count towards the resolver update since the daemon did
// provide them.
func (w *Workflow) applyFamily(result *Result, cfg devicenetwork.IPConfig, err error) {
	if err != nil {
		w.Log.Errorf("Skipping host configuration: %v", err)
		return
	}
	result.DNSServers = append(result.DNSServers, cfg.DNSServers...)
	if w.Applier == nil {
		return
	}
	if err := w.Applier.Apply(cfg); err != nil {
		w.Log.Errorf("Failed to configure interface %s: %v", cfg.Interface, err)
		return
	}
	result.Applied = append(result.Applied, cfg)
}

func (w *Workflow) settle() {
	delay := w.SettleDelay
	if delay == 0 {
		delay = defaultSettleDelay
	}
	time.Sleep(delay)
}

func ipv4Config(s *ofono.IPSettings) (devicenetwork.IPConfig, error) {
	prefix, err := devicenetwork.PrefixFromNetmask(s.Netmask)
	if err != nil {
		return devicenetwork.IPConfig{}, err
	}
	ip := net.ParseIP(s.Address)
	if ip == nil {
		return devicenetwork.IPConfig{}, fmt.Errorf("invalid IPv4 address %q", s.Address)
	}
	return devicenetwork.IPConfig{
		Interface:  s.Interface,
		Address:    &net.IPNet{IP: ip, Mask: net.CIDRMask(prefix, 32)},
		Gateway:    net.ParseIP(s.Gateway),
		DNSServers: parseIPs(s.DNSServers),
	}, nil
}

func ipv6Config(s *ofono.IPSettings) (devicenetwork.IPConfig, error) {
	ip := net.ParseIP(s.Address)
	if ip == nil {
		return devicenetwork.IPConfig{}, fmt.Errorf("invalid IPv6 address %q", s.Address)
	}
	prefix := int(s.PrefixLen)
	if prefix == 0 || prefix > 128 {
		prefix = 128
	}
	return devicenetwork.IPConfig{
		Interface:  s.Interface,
		Address:    &net.IPNet{IP: ip, Mask: net.CIDRMask(prefix, 128)},
		Gateway:    net.ParseIP(s.Gateway),
		DNSServers: parseIPs(s.DNSServers),
	}, nil
}

func parseIPs(addrs []string) []net.IP {
	var ips []net.IP
	for _, addr := range addrs {
		if ip := net.ParseIP(addr); ip != nil {
			ips = append(ips, ip)
		}
	}
	return ips
}
