// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

// Package ofono is a thin client for the oFono telephony daemon.
// It wraps the daemon's D-Bus object model (manager, modems and their
// sub-interfaces) with typed accessors. All state lives on the daemon side;
// this package never caches anything across calls.
package ofono

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
)

const (
	// Service is the daemon's well-known bus name.
	Service = "org.ofono"

	managerPath      = dbus.ObjectPath("/")
	managerInterface = "org.ofono.Manager"

	defaultPollInterval = time.Second
	defaultPollTimeout  = 10 * time.Second
)

// busObject is the subset of dbus.BusObject used by this package.
// Tests substitute fakes built from literal dbus.Call values.
type busObject interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags,
		args ...interface{}) *dbus.Call
}

// Client holds the system bus connection for the duration of one command
// invocation.
type Client struct {
	conn *dbus.Conn
	log  *logrus.Logger

	object       func(path dbus.ObjectPath) busObject
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewClient connects to the system bus. The manager object is not probed
// here; the first call towards the daemon reports unreachability.
func NewClient(log *logrus.Logger) (*Client, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed connecting to system bus: %w", err)
	}
	c := &Client{
		conn:         conn,
		log:          log,
		pollInterval: defaultPollInterval,
		pollTimeout:  defaultPollTimeout,
	}
	c.object = func(path dbus.ObjectPath) busObject {
		return conn.Object(Service, path)
	}
	return c, nil
}

// Close releases the bus connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Modems enumerates modems known to the daemon, in the order reported by it.
func (c *Client) Modems(ctx context.Context) ([]*Modem, error) {
	var entries []struct {
		Path  dbus.ObjectPath
		Props map[string]dbus.Variant
	}
	err := c.object(managerPath).
		CallWithContext(ctx, managerInterface+".GetModems", 0).
		Store(&entries)
	if err != nil {
		return nil, fmt.Errorf("failed to list modems from %s: %w", Service, err)
	}
	modems := make([]*Modem, 0, len(entries))
	for _, entry := range entries {
		modems = append(modems, &Modem{
			client: c,
			Path:   entry.Path,
			props:  entry.Props,
		})
	}
	return modems, nil
}
