// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

// Package devicenetwork applies IP settings learned from the telephony
// daemon to the Linux network stack and maintains the tool's managed
// nameserver block in the resolver configuration file.
package devicenetwork

import (
	"fmt"
	"net"
)

// PrefixFromNetmask converts a dotted IPv4 netmask to a prefix length
// (255.255.255.0 -> 24).
func PrefixFromNetmask(netmask string) (int, error) {
	ip := net.ParseIP(netmask)
	if ip == nil || ip.To4() == nil {
		return 0, fmt.Errorf("invalid IPv4 netmask %q", netmask)
	}
	ones, bits := net.IPMask(ip.To4()).Size()
	if ones == 0 && bits == 0 {
		return 0, fmt.Errorf("netmask %q is not contiguous", netmask)
	}
	return ones, nil
}
