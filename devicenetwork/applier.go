// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package devicenetwork

import (
	"fmt"
	"net"

	"github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

var (
	_, ipv4Any, _ = net.ParseCIDR("0.0.0.0/0")
	_, ipv6Any, _ = net.ParseCIDR("::/0")
)

// IPConfig is one IP family's configuration extracted from an activated
// connection context.
type IPConfig struct {
	Interface  string
	Address    *net.IPNet
	Gateway    net.IP
	DNSServers []net.IP
}

// linkOps is the narrow slice of netlink operations the applier needs.
// The production implementation talks to the kernel; tests record calls.
type linkOps interface {
	LinkByName(name string) (netlink.Link, error)
	LinkSetUp(link netlink.Link) error
	AddrList(link netlink.Link, family int) ([]netlink.Addr, error)
	AddrDel(link netlink.Link, addr *netlink.Addr) error
	AddrAdd(link netlink.Link, addr *netlink.Addr) error
	RouteReplace(route *netlink.Route) error
}

type kernelOps struct{}

func (kernelOps) LinkByName(name string) (netlink.Link, error) { return netlink.LinkByName(name) }
func (kernelOps) LinkSetUp(link netlink.Link) error            { return netlink.LinkSetUp(link) }
func (kernelOps) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	return netlink.AddrList(link, family)
}
func (kernelOps) AddrDel(link netlink.Link, addr *netlink.Addr) error {
	return netlink.AddrDel(link, addr)
}
func (kernelOps) AddrAdd(link netlink.Link, addr *netlink.Addr) error {
	return netlink.AddrAdd(link, addr)
}
func (kernelOps) RouteReplace(route *netlink.Route) error { return netlink.RouteReplace(route) }

// Applier installs extracted IP settings into the Linux network stack.
// One Applier serves one command invocation; the flush of pre-existing
// addresses happens at most once per interface so that the IPv6 pass does
// not wipe what the IPv4 pass just assigned.
type Applier struct {
	log     *logrus.Logger
	ops     linkOps
	flushed map[string]bool
}

// NewApplier returns an Applier backed by the kernel via netlink.
func NewApplier(log *logrus.Logger) *Applier {
	return &Applier{log: log, ops: kernelOps{}, flushed: make(map[string]bool)}
}

// Apply brings the interface up, assigns the learned address, replaces the
// default route via the learned gateway and installs a host route to each
// DNS server through that gateway. Address and gateway failures abort this
// family's pass; a failed DNS host route is reported and the remaining
// servers are still attempted. Nothing is rolled back on partial failure.
func (a *Applier) Apply(cfg IPConfig) error {
	if cfg.Address == nil || cfg.Address.IP == nil {
		return fmt.Errorf("missing IP address to set on interface %s", cfg.Interface)
	}
	if cfg.Gateway == nil {
		return fmt.Errorf("missing gateway IP address to set on interface %s", cfg.Interface)
	}
	link, err := a.ops.LinkByName(cfg.Interface)
	if err != nil {
		return fmt.Errorf("failed to get handle for interface %s: %w", cfg.Interface, err)
	}
	if err := a.ops.LinkSetUp(link); err != nil {
		return fmt.Errorf("failed to set interface %s UP: %w", cfg.Interface, err)
	}
	if !a.flushed[cfg.Interface] {
		a.flushed[cfg.Interface] = true
		if err := a.flushAddrs(link, cfg.Interface); err != nil {
			// Stale addresses are not fatal for the new assignment.
			a.log.Errorf("Failed to flush addresses on %s: %v", cfg.Interface, err)
		}
	}
	addr := &netlink.Addr{IPNet: cfg.Address}
	if err := a.ops.AddrAdd(link, addr); err != nil {
		return fmt.Errorf("failed to add address %s to interface %s: %w",
			addr, cfg.Interface, err)
	}
	anyDst := ipv4Any
	if cfg.Gateway.To4() == nil {
		anyDst = ipv6Any
	}
	defaultRoute := &netlink.Route{
		LinkIndex: link.Attrs().Index,
		Dst:       anyDst,
		Gw:        cfg.Gateway,
		Table:     unix.RT_TABLE_MAIN,
		Scope:     netlink.SCOPE_UNIVERSE,
		Protocol:  unix.RTPROT_STATIC,
	}
	if err := a.ops.RouteReplace(defaultRoute); err != nil {
		return fmt.Errorf("failed to replace default route via %s on interface %s: %w",
			cfg.Gateway, cfg.Interface, err)
	}
	for _, dns := range cfg.DNSServers {
		if err := a.ops.RouteReplace(a.hostRoute(link, dns, cfg.Gateway)); err != nil {
			a.log.Errorf("Failed to add host route to DNS server %s via %s: %v",
				dns, cfg.Gateway, err)
		}
	}
	return nil
}

func (a *Applier) flushAddrs(link netlink.Link, ifName string) error {
	addrs, err := a.ops.AddrList(link, netlink.FAMILY_ALL)
	if err != nil {
		return fmt.Errorf("failed to list addresses of interface %s: %w", ifName, err)
	}
	for _, addr := range addrs {
		if err := a.ops.AddrDel(link, &addr); err != nil {
			return fmt.Errorf("failed to remove address %s from interface %s: %w",
				addr, ifName, err)
		}
	}
	return nil
}

// hostRoute builds a /32 (or /128) route to one DNS server so that DNS
// traffic is routed through the modem even when the default route is
// ambiguous.
func (a *Applier) hostRoute(link netlink.Link, dns, gw net.IP) *netlink.Route {
	maskBits := 32
	if dns.To4() == nil {
		maskBits = 128
	}
	return &netlink.Route{
		LinkIndex: link.Attrs().Index,
		Dst:       &net.IPNet{IP: dns, Mask: net.CIDRMask(maskBits, maskBits)},
		Gw:        gw,
		Table:     unix.RT_TABLE_MAIN,
		Scope:     netlink.SCOPE_UNIVERSE,
		Protocol:  unix.RTPROT_STATIC,
	}
}
