// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package ofono

import "github.com/godbus/dbus/v5"

// Typed lookups over the property dictionaries returned by the daemon.
// Missing keys and mistyped values yield zero values; the daemon's dicts are
// sparse and a missing entry is never an error in itself.

func variantString(props map[string]dbus.Variant, key string) string {
	v, ok := props[key]
	if !ok {
		return ""
	}
	s, _ := v.Value().(string)
	return s
}

func variantBool(props map[string]dbus.Variant, key string) bool {
	v, ok := props[key]
	if !ok {
		return false
	}
	b, _ := v.Value().(bool)
	return b
}

func variantByte(props map[string]dbus.Variant, key string) (uint8, bool) {
	v, ok := props[key]
	if !ok {
		return 0, false
	}
	b, ok := v.Value().(uint8)
	return b, ok
}

func variantStrings(props map[string]dbus.Variant, key string) []string {
	v, ok := props[key]
	if !ok {
		return nil
	}
	s, _ := v.Value().([]string)
	return s
}

func variantDict(props map[string]dbus.Variant, key string) map[string]dbus.Variant {
	v, ok := props[key]
	if !ok {
		return nil
	}
	d, _ := v.Value().(map[string]dbus.Variant)
	return d
}
