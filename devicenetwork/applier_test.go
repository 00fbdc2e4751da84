// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package devicenetwork

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vishvananda/netlink"
)

type fakeOps struct {
	links map[string]netlink.Link
	addrs []netlink.Addr

	flushes int
	added   []*netlink.Addr
	routes  []*netlink.Route

	addrAddErr  error
	routeErrFor string // destination prefix that should fail
}

func (f *fakeOps) LinkByName(name string) (netlink.Link, error) {
	link, ok := f.links[name]
	if !ok {
		return nil, fmt.Errorf("link %s not found", name)
	}
	return link, nil
}

func (f *fakeOps) LinkSetUp(link netlink.Link) error { return nil }

func (f *fakeOps) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	return f.addrs, nil
}

func (f *fakeOps) AddrDel(link netlink.Link, addr *netlink.Addr) error {
	f.flushes++
	return nil
}

func (f *fakeOps) AddrAdd(link netlink.Link, addr *netlink.Addr) error {
	if f.addrAddErr != nil {
		return f.addrAddErr
	}
	f.added = append(f.added, addr)
	return nil
}

func (f *fakeOps) RouteReplace(route *netlink.Route) error {
	if f.routeErrFor != "" && route.Dst != nil && route.Dst.String() == f.routeErrFor {
		return errors.New("route rejected")
	}
	f.routes = append(f.routes, route)
	return nil
}

func newTestApplier(ops *fakeOps) *Applier {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return &Applier{log: log, ops: ops, flushed: make(map[string]bool)}
}

func wwanLink() netlink.Link {
	return &netlink.Dummy{LinkAttrs: netlink.LinkAttrs{Name: "wwan0", Index: 7}}
}

func mustCIDR(t *testing.T, s string) *net.IPNet {
	t.Helper()
	ip, ipNet, err := net.ParseCIDR(s)
	require.NoError(t, err)
	ipNet.IP = ip
	return ipNet
}

func v4Config(t *testing.T) IPConfig {
	return IPConfig{
		Interface:  "wwan0",
		Address:    mustCIDR(t, "10.20.30.2/24"),
		Gateway:    net.ParseIP("10.20.30.1"),
		DNSServers: []net.IP{net.ParseIP("10.20.0.53"), net.ParseIP("10.21.0.53")},
	}
}

func TestApplyInstallsAddressAndRoutes(t *testing.T) {
	stale, _ := netlink.ParseAddr("192.168.5.5/24")
	ops := &fakeOps{
		links: map[string]netlink.Link{"wwan0": wwanLink()},
		addrs: []netlink.Addr{*stale},
	}
	applier := newTestApplier(ops)

	require.NoError(t, applier.Apply(v4Config(t)))

	assert.Equal(t, 1, ops.flushes)
	require.Len(t, ops.added, 1)
	assert.Equal(t, "10.20.30.2/24", ops.added[0].IPNet.String())

	// Default route plus one host route per DNS server.
	require.Len(t, ops.routes, 3)
	assert.Equal(t, "0.0.0.0/0", ops.routes[0].Dst.String())
	assert.Equal(t, "10.20.30.1", ops.routes[0].Gw.String())
	assert.Equal(t, 7, ops.routes[0].LinkIndex)
	assert.Equal(t, "10.20.0.53/32", ops.routes[1].Dst.String())
	assert.Equal(t, "10.21.0.53/32", ops.routes[2].Dst.String())
}

func TestApplyFlushesOnlyOnce(t *testing.T) {
	stale, _ := netlink.ParseAddr("192.168.5.5/24")
	ops := &fakeOps{
		links: map[string]netlink.Link{"wwan0": wwanLink()},
		addrs: []netlink.Addr{*stale},
	}
	applier := newTestApplier(ops)

	require.NoError(t, applier.Apply(v4Config(t)))
	v6 := IPConfig{
		Interface:  "wwan0",
		Address:    mustCIDR(t, "2001:db8::2/64"),
		Gateway:    net.ParseIP("2001:db8::1"),
		DNSServers: []net.IP{net.ParseIP("2001:db8::53")},
	}
	require.NoError(t, applier.Apply(v6))

	// Second family must not wipe the address the first pass assigned.
	assert.Equal(t, 1, ops.flushes)
	require.Len(t, ops.added, 2)

	last := ops.routes[len(ops.routes)-1]
	assert.Equal(t, "2001:db8::53/128", last.Dst.String())
}

func TestApplyRejectsIncompleteConfig(t *testing.T) {
	ops := &fakeOps{links: map[string]netlink.Link{"wwan0": wwanLink()}}
	applier := newTestApplier(ops)

	cfg := v4Config(t)
	cfg.Gateway = nil
	assert.Error(t, applier.Apply(cfg))

	cfg = v4Config(t)
	cfg.Address = nil
	assert.Error(t, applier.Apply(cfg))

	assert.Empty(t, ops.added)
	assert.Empty(t, ops.routes)
}

func TestApplyAddressFailureAborts(t *testing.T) {
	ops := &fakeOps{
		links:      map[string]netlink.Link{"wwan0": wwanLink()},
		addrAddErr: errors.New("EEXIST"),
	}
	applier := newTestApplier(ops)

	assert.Error(t, applier.Apply(v4Config(t)))
	assert.Empty(t, ops.routes)
}

func TestApplyDNSRouteFailureContinues(t *testing.T) {
	ops := &fakeOps{
		links:       map[string]netlink.Link{"wwan0": wwanLink()},
		routeErrFor: "10.20.0.53/32",
	}
	applier := newTestApplier(ops)

	// A failed host route is reported, not fatal; the second DNS server
	// still gets its route.
	require.NoError(t, applier.Apply(v4Config(t)))
	require.Len(t, ops.routes, 2)
	assert.Equal(t, "10.21.0.53/32", ops.routes[1].Dst.String())
}

func TestApplyUnknownInterface(t *testing.T) {
	ops := &fakeOps{links: map[string]netlink.Link{}}
	applier := newTestApplier(ops)
	assert.Error(t, applier.Apply(v4Config(t)))
}
