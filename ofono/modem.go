// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package ofono

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/godbus/dbus/v5"
)

// D-Bus interfaces implemented by the daemon on each modem object.
const (
	ModemInterface          = "org.ofono.Modem"
	NetRegInterface         = "org.ofono.NetworkRegistration"
	SimManagerInterface     = "org.ofono.SimManager"
	ImsInterface            = "org.ofono.IpMultimediaSystem"
	ConnManagerInterface    = "org.ofono.ConnectionManager"
	ConnContextInterface    = "org.ofono.ConnectionContext"
	MessageManagerInterface = "org.ofono.MessageManager"
)

// Modem is a transient view over one modem object, valid for a single
// command invocation. The cached top-level properties come from the
// enumeration call that produced it.
type Modem struct {
	client *Client
	Path   dbus.ObjectPath
	props  map[string]dbus.Variant
}

// Name returns a short human-readable identifier derived from the object path.
func (m *Modem) Name() string {
	return path.Base(string(m.Path))
}

// Powered reports the Powered flag from the enumeration snapshot.
func (m *Modem) Powered() bool {
	return variantBool(m.props, "Powered")
}

// Online reports the Online flag from the enumeration snapshot.
func (m *Modem) Online() bool {
	return variantBool(m.props, "Online")
}

// Manufacturer returns the modem vendor string, if the daemon reports one.
func (m *Modem) Manufacturer() string {
	return variantString(m.props, "Manufacturer")
}

// Model returns the modem model string, if the daemon reports one.
func (m *Modem) Model() string {
	return variantString(m.props, "Model")
}

// GetProperties fetches the property dictionary of one sub-interface of this
// modem. A missing optional sub-interface is reported as ErrNotAvailable.
func (m *Modem) GetProperties(ctx context.Context, iface string) (map[string]dbus.Variant, error) {
	var props map[string]dbus.Variant
	err := m.client.object(m.Path).
		CallWithContext(ctx, iface+".GetProperties", 0).
		Store(&props)
	if err != nil {
		if isNotAvailable(err) {
			return nil, fmt.Errorf("modem %s: %s: %w", m.Path, iface, ErrNotAvailable)
		}
		return nil, fmt.Errorf("failed to get %s properties of modem %s: %w",
			iface, m.Path, err)
	}
	return props, nil
}

// SetProperty sets one property on a sub-interface of this modem.
// The call returning without error only means the request was accepted;
// asynchronous transitions are confirmed with SetPropertyWait.
func (m *Modem) SetProperty(ctx context.Context, iface, prop string, value interface{}) error {
	err := m.client.object(m.Path).
		CallWithContext(ctx, iface+".SetProperty", 0, prop, dbus.MakeVariant(value)).
		Err
	if err != nil {
		return fmt.Errorf("failed to set %s.%s=%v on modem %s: %w",
			iface, prop, value, m.Path, err)
	}
	return nil
}

// SetPropertyWait sets a property and polls the interface once per second
// until the property reflects the requested value or the poll window
// elapses. Power and online transitions complete asynchronously to the set
// call, so observing the property is the only confirmation.
func (m *Modem) SetPropertyWait(ctx context.Context, iface, prop string, value interface{}) error {
	if err := m.SetProperty(ctx, iface, prop, value); err != nil {
		return err
	}
	deadline := time.Now().Add(m.client.pollTimeout)
	for {
		props, err := m.GetProperties(ctx, iface)
		if err == nil {
			if v, ok := props[prop]; ok && v.Value() == value {
				if iface == ModemInterface {
					m.props[prop] = v
				}
				return nil
			}
		} else {
			m.client.log.Debugf("Polling %s.%s on modem %s: %v", iface, prop, m.Path, err)
		}
		if time.Now().After(deadline) {
			return &PropertyTimeoutError{
				Modem:    m.Path,
				Property: prop,
				Value:    value,
				Timeout:  m.client.pollTimeout,
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.client.pollInterval):
		}
	}
}

// SIMInfo is the subset of SIM manager properties shown in listings.
type SIMInfo struct {
	Present            bool
	SubscriberIdentity string
	ServiceProvider    string
}

// SIM reads the SIM manager properties. ErrNotAvailable when the modem has
// no SIM manager interface.
func (m *Modem) SIM(ctx context.Context) (SIMInfo, error) {
	props, err := m.GetProperties(ctx, SimManagerInterface)
	if err != nil {
		return SIMInfo{}, err
	}
	return SIMInfo{
		Present:            variantBool(props, "Present"),
		SubscriberIdentity: variantString(props, "SubscriberIdentity"),
		ServiceProvider:    variantString(props, "ServiceProviderName"),
	}, nil
}

// IMSRegistered reads the IP multimedia system registration flag.
func (m *Modem) IMSRegistered(ctx context.Context) (bool, error) {
	props, err := m.GetProperties(ctx, ImsInterface)
	if err != nil {
		return false, err
	}
	return variantBool(props, "Registered"), nil
}
