// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package ofono

import (
	"errors"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

// ErrNotAvailable marks an optional modem sub-interface that the daemon does
// not expose on this modem (e.g. no SIM manager without a SIM). Callers are
// expected to recover with a fallback display value.
var ErrNotAvailable = errors.New("interface not available on this modem")

// PropertyTimeoutError is returned when a property set was accepted by the
// daemon but the property never reflected the requested value within the
// polling window.
type PropertyTimeoutError struct {
	Modem    dbus.ObjectPath
	Property string
	Value    interface{}
	Timeout  time.Duration
}

func (e *PropertyTimeoutError) Error() string {
	return fmt.Sprintf("modem %s: property %s did not reach %v within %s",
		e.Modem, e.Property, e.Value, e.Timeout)
}

// Daemons differ in which error they raise for a missing sub-interface:
// oFono raises org.ofono.Error.NotAvailable for some interfaces while the
// bus library reports UnknownMethod/UnknownInterface for others.
func isNotAvailable(err error) bool {
	var dbusErr dbus.Error
	if !errors.As(err, &dbusErr) {
		return false
	}
	switch dbusErr.Name {
	case "org.freedesktop.DBus.Error.UnknownMethod",
		"org.freedesktop.DBus.Error.UnknownInterface",
		"org.freedesktop.DBus.Error.UnknownObject",
		"org.ofono.Error.NotAvailable",
		"org.ofono.Error.NotSupported":
		return true
	}
	return false
}
