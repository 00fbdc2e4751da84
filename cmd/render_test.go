// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofonoctl/ofonoctl/ofono"
)

func TestContextRowsStaticIPv4(t *testing.T) {
	c := ofono.Context{
		Name:   "Internet",
		APN:    "internet.apn",
		Active: true,
		IPv4: &ofono.IPSettings{
			Method:     "static",
			Interface:  "wwan0",
			Address:    "10.20.30.2",
			Netmask:    "255.255.255.0",
			Gateway:    "10.20.30.1",
			DNSServers: []string{"10.20.0.53", "10.20.0.54"},
		},
	}
	rows := contextRows(1, c)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{
		"1", "Internet", "internet.apn", "yes",
		"IPv4", "static", "wwan0", "10.20.30.2/24", "10.20.30.1",
		"10.20.0.53 10.20.0.54",
	}, rows[0])
}

func TestContextRowsHidesNonStaticIPv4(t *testing.T) {
	c := ofono.Context{
		Name:   "Internet",
		APN:    "internet.apn",
		Active: true,
		IPv4: &ofono.IPSettings{
			Method:     "dhcp",
			Interface:  "wwan0",
			Address:    "10.20.30.2",
			Netmask:    "255.255.255.0",
			Gateway:    "10.20.30.1",
			DNSServers: []string{"10.20.0.53"},
		},
	}
	rows := contextRows(2, c)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{
		"2", "Internet", "internet.apn", "yes",
		"IPv4", "", "", "", "", "",
	}, rows[0])
}

func TestContextRowsInactiveContext(t *testing.T) {
	c := ofono.Context{Name: "MMS", APN: "mms.apn"}
	rows := contextRows(1, c)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{
		"1", "MMS", "mms.apn", "no",
		"IPv4", "", "", "", "", "",
	}, rows[0])
}

func TestContextRowsIncludesIPv6(t *testing.T) {
	c := ofono.Context{
		Name:   "Internet",
		APN:    "internet.apn",
		Active: true,
		IPv6: &ofono.IPSettings{
			Interface:  "wwan0",
			Address:    "2001:db8::2",
			PrefixLen:  64,
			Gateway:    "2001:db8::1",
			DNSServers: []string{"2001:db8::53"},
		},
	}
	rows := contextRows(1, c)
	require.Len(t, rows, 2)
	assert.Equal(t, "IPv6", rows[1][4])
	assert.Equal(t, "2001:db8::2/64", rows[1][7])
	assert.Equal(t, "2001:db8::1", rows[1][8])
	assert.Equal(t, "2001:db8::53", rows[1][9])
}

func TestRenderContextsNumbersFromOne(t *testing.T) {
	var buf bytes.Buffer
	renderContexts(&buf, []ofono.Context{
		{Name: "Internet"},
		{Name: "MMS"},
	})
	out := buf.String()
	assert.Contains(t, out, "Internet")
	assert.Contains(t, out, "MMS")
	assert.NotContains(t, out, "| 0 ")
}

func TestSimDisplay(t *testing.T) {
	assert.Equal(t, "Unknown", simDisplay(ofono.SIMInfo{}, ofono.ErrNotAvailable))
	assert.Equal(t, "No SIM", simDisplay(ofono.SIMInfo{}, nil))
	assert.Equal(t, "262011234567890", simDisplay(ofono.SIMInfo{
		Present:            true,
		SubscriberIdentity: "262011234567890",
	}, nil))
	assert.Equal(t, "Telekom", simDisplay(ofono.SIMInfo{
		Present:         true,
		ServiceProvider: "Telekom",
	}, nil))
	assert.Equal(t, "Present", simDisplay(ofono.SIMInfo{Present: true}, nil))
}

func TestSignalDisplay(t *testing.T) {
	assert.Equal(t, "", signalDisplay(ofono.Registration{Strength: 50}))
	assert.Equal(t, "50%", signalDisplay(ofono.Registration{Strength: 50, HasStrength: true}))
	assert.Equal(t, "0%", signalDisplay(ofono.Registration{HasStrength: true}))
}
