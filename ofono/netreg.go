// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package ofono

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Registration is the network registration state of a modem.
// Strength is optional in the daemon's dict; HasStrength distinguishes
// "0%" from "not reported".
type Registration struct {
	Status      string
	Operator    string
	Strength    uint8
	HasStrength bool
	Technology  string
}

// Registration reads the current network registration properties.
func (m *Modem) Registration(ctx context.Context) (Registration, error) {
	props, err := m.GetProperties(ctx, NetRegInterface)
	if err != nil {
		return Registration{}, err
	}
	reg := Registration{
		Status:     variantString(props, "Status"),
		Operator:   variantString(props, "Name"),
		Technology: variantString(props, "Technology"),
	}
	reg.Strength, reg.HasStrength = variantByte(props, "Strength")
	return reg, nil
}

// Operator is one entry from an operator scan.
type Operator struct {
	Path         dbus.ObjectPath
	Name         string
	Status       string
	Technologies []string
	MCC          string
	MNC          string
}

// ScanOperators asks the daemon to scan for cellular operators. The scan is
// a single blocking call that can take on the order of 100 seconds; the
// caller bounds it through ctx.
func (m *Modem) ScanOperators(ctx context.Context) ([]Operator, error) {
	var entries []struct {
		Path  dbus.ObjectPath
		Props map[string]dbus.Variant
	}
	err := m.client.object(m.Path).
		CallWithContext(ctx, NetRegInterface+".Scan", 0).
		Store(&entries)
	if err != nil {
		if isNotAvailable(err) {
			return nil, fmt.Errorf("modem %s: %s: %w",
				m.Path, NetRegInterface, ErrNotAvailable)
		}
		return nil, fmt.Errorf("operator scan failed on modem %s: %w", m.Path, err)
	}
	operators := make([]Operator, 0, len(entries))
	for _, entry := range entries {
		operators = append(operators, Operator{
			Path:         entry.Path,
			Name:         variantString(entry.Props, "Name"),
			Status:       variantString(entry.Props, "Status"),
			Technologies: variantStrings(entry.Props, "Technologies"),
			MCC:          variantString(entry.Props, "MobileCountryCode"),
			MNC:          variantString(entry.Props, "MobileNetworkCode"),
		})
	}
	return operators, nil
}
