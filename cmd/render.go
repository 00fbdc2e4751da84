// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/ofonoctl/ofonoctl/devicenetwork"
	"github.com/ofonoctl/ofonoctl/ofono"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}

func boolCell(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// simDisplay maps SIM manager state to a listing cell: a missing SIM manager
// interface (or any read failure) renders as "Unknown", an absent SIM as
// "No SIM".
func simDisplay(sim ofono.SIMInfo, err error) string {
	if err != nil {
		return "Unknown"
	}
	if !sim.Present {
		return "No SIM"
	}
	if sim.SubscriberIdentity != "" {
		return sim.SubscriberIdentity
	}
	if sim.ServiceProvider != "" {
		return sim.ServiceProvider
	}
	return "Present"
}

func imsDisplay(registered bool, err error) string {
	if err != nil {
		return "Unknown"
	}
	if registered {
		return "registered"
	}
	return "unregistered"
}

func signalDisplay(reg ofono.Registration) string {
	if !reg.HasStrength {
		return ""
	}
	return strconv.Itoa(int(reg.Strength)) + "%"
}

// contextRows renders one context as one row per IP family. IPv4 settings
// are only displayed when the method is static: with dhcp the daemon's dict
// carries no meaningful addressing. The IPv6 row is skipped entirely when
// the daemon reported no IPv6 settings.
func contextRows(index int, c ofono.Context) [][]string {
	v4 := []string{
		strconv.Itoa(index), c.Name, c.APN, boolCell(c.Active),
		"IPv4", "", "", "", "", "",
	}
	if s := c.IPv4; s != nil && s.Method == "static" {
		v4[5] = s.Method
		v4[6] = s.Interface
		v4[7] = v4AddressDisplay(s)
		v4[8] = s.Gateway
		v4[9] = strings.Join(s.DNSServers, " ")
	}
	rows := [][]string{v4}
	if s := c.IPv6; s != nil {
		rows = append(rows, []string{
			strconv.Itoa(index), c.Name, c.APN, boolCell(c.Active),
			"IPv6", s.Method, s.Interface,
			v6AddressDisplay(s), s.Gateway,
			strings.Join(s.DNSServers, " "),
		})
	}
	return rows
}

func v4AddressDisplay(s *ofono.IPSettings) string {
	if s.Address == "" {
		return ""
	}
	if prefix, err := devicenetwork.PrefixFromNetmask(s.Netmask); err == nil {
		return fmt.Sprintf("%s/%d", s.Address, prefix)
	}
	return s.Address
}

func v6AddressDisplay(s *ofono.IPSettings) string {
	if s.Address == "" {
		return ""
	}
	if s.PrefixLen > 0 {
		return fmt.Sprintf("%s/%d", s.Address, s.PrefixLen)
	}
	return s.Address
}

func renderContexts(w io.Writer, contexts []ofono.Context) {
	table := newTable(w, []string{
		"#", "Name", "APN", "Active", "Family",
		"Method", "Interface", "Address", "Gateway", "DNS",
	})
	for i, c := range contexts {
		for _, row := range contextRows(i+1, c) {
			table.Append(row)
		}
	}
	table.Render()
}
