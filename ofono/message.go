// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package ofono

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Message is a stored SMS message as reported by the daemon. The property
// dictionary is passed through untouched; sms-list dumps it raw.
type Message struct {
	Path  dbus.ObjectPath
	Props map[string]dbus.Variant
}

// SendMessage submits an SMS for delivery. Sending is fire-and-forget:
// the returned path identifies the in-flight message on the daemon but this
// tool does not track it further.
func (m *Modem) SendMessage(ctx context.Context, to, text string) (dbus.ObjectPath, error) {
	var msgPath dbus.ObjectPath
	err := m.client.object(m.Path).
		CallWithContext(ctx, MessageManagerInterface+".SendMessage", 0, to, text).
		Store(&msgPath)
	if err != nil {
		if isNotAvailable(err) {
			return "", fmt.Errorf("modem %s: %s: %w",
				m.Path, MessageManagerInterface, ErrNotAvailable)
		}
		return "", fmt.Errorf("failed to send message via modem %s: %w", m.Path, err)
	}
	return msgPath, nil
}

// Messages lists messages currently known to the daemon's message manager.
func (m *Modem) Messages(ctx context.Context) ([]Message, error) {
	var entries []struct {
		Path  dbus.ObjectPath
		Props map[string]dbus.Variant
	}
	err := m.client.object(m.Path).
		CallWithContext(ctx, MessageManagerInterface+".GetMessages", 0).
		Store(&entries)
	if err != nil {
		if isNotAvailable(err) {
			return nil, fmt.Errorf("modem %s: %s: %w",
				m.Path, MessageManagerInterface, ErrNotAvailable)
		}
		return nil, fmt.Errorf("failed to list messages of modem %s: %w", m.Path, err)
	}
	messages := make([]Message, 0, len(entries))
	for _, entry := range entries {
		messages = append(messages, Message{Path: entry.Path, Props: entry.Props})
	}
	return messages, nil
}
