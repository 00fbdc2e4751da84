// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package ofono

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// IPSettings is the per-family settings dictionary of a connection context.
// For IPv4 the daemon reports a dotted Netmask; for IPv6 a PrefixLen.
// The dict is only populated while the context is active and, for IPv4,
// only meaningful when Method is "static".
type IPSettings struct {
	Method     string
	Interface  string
	Address    string
	Netmask    string // IPv4 only
	PrefixLen  uint8  // IPv6 only
	Gateway    string
	DNSServers []string
}

// Context is one packet-data context of a modem. The listing order is the
// daemon's; indices presented to the user are derived from it and are not
// stable across daemon-side changes.
type Context struct {
	Path   dbus.ObjectPath
	Name   string
	APN    string
	Type   string
	Active bool
	IPv4   *IPSettings
	IPv6   *IPSettings
}

// Contexts lists the packet-data contexts of this modem.
func (m *Modem) Contexts(ctx context.Context) ([]Context, error) {
	var entries []struct {
		Path  dbus.ObjectPath
		Props map[string]dbus.Variant
	}
	err := m.client.object(m.Path).
		CallWithContext(ctx, ConnManagerInterface+".GetContexts", 0).
		Store(&entries)
	if err != nil {
		if isNotAvailable(err) {
			return nil, fmt.Errorf("modem %s: %s: %w",
				m.Path, ConnManagerInterface, ErrNotAvailable)
		}
		return nil, fmt.Errorf("failed to list contexts of modem %s: %w", m.Path, err)
	}
	contexts := make([]Context, 0, len(entries))
	for _, entry := range entries {
		contexts = append(contexts, Context{
			Path:   entry.Path,
			Name:   variantString(entry.Props, "Name"),
			APN:    variantString(entry.Props, "AccessPointName"),
			Type:   variantString(entry.Props, "Type"),
			Active: variantBool(entry.Props, "Active"),
			IPv4:   decodeIPSettings(variantDict(entry.Props, "Settings")),
			IPv6:   decodeIPSettings(variantDict(entry.Props, "IPv6.Settings")),
		})
	}
	return contexts, nil
}

// SetContextActive toggles the Active property of one connection context.
func (m *Modem) SetContextActive(ctx context.Context, path dbus.ObjectPath, active bool) error {
	err := m.client.object(path).
		CallWithContext(ctx, ConnContextInterface+".SetProperty", 0,
			"Active", dbus.MakeVariant(active)).
		Err
	if err != nil {
		verb := "activate"
		if !active {
			verb = "deactivate"
		}
		return fmt.Errorf("failed to %s context %s: %w", verb, path, err)
	}
	return nil
}

func decodeIPSettings(dict map[string]dbus.Variant) *IPSettings {
	if len(dict) == 0 {
		return nil
	}
	settings := &IPSettings{
		Method:     variantString(dict, "Method"),
		Interface:  variantString(dict, "Interface"),
		Address:    variantString(dict, "Address"),
		Netmask:    variantString(dict, "Netmask"),
		Gateway:    variantString(dict, "Gateway"),
		DNSServers: variantStrings(dict, "DomainNameServers"),
	}
	settings.PrefixLen, _ = variantByte(dict, "PrefixLength")
	return settings
}
