// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package devicenetwork

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const resolvConfSeed = "# Static resolver config\nsearch example.com\nnameserver 127.0.0.53\n"

func writeResolvConf(t *testing.T, content string) *ResolvConf {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resolv.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return &ResolvConf{Path: path}
}

func readBack(t *testing.T, r *ResolvConf) string {
	t.Helper()
	data, err := os.ReadFile(r.Path)
	require.NoError(t, err)
	return string(data)
}

func TestResolvConfAppendsBlock(t *testing.T) {
	r := writeResolvConf(t, resolvConfSeed)
	err := r.Update([]net.IP{net.ParseIP("10.0.0.1"), net.ParseIP("10.0.0.2")})
	require.NoError(t, err)

	expected := resolvConfSeed + "\n" +
		"# Added by ofonoctl, do not edit this block\n" +
		"nameserver 10.0.0.1\n" +
		"nameserver 10.0.0.2\n" +
		"# End of ofonoctl block\n"
	require.Equal(t, expected, readBack(t, r))
}

func TestResolvConfReplacesBlockOnly(t *testing.T) {
	r := writeResolvConf(t, resolvConfSeed)
	require.NoError(t, r.Update([]net.IP{net.ParseIP("10.0.0.1"), net.ParseIP("10.0.0.2")}))
	require.NoError(t, r.Update([]net.IP{net.ParseIP("2001:db8::1")}))

	expected := resolvConfSeed + "\n" +
		"# Added by ofonoctl, do not edit this block\n" +
		"nameserver 2001:db8::1\n" +
		"# End of ofonoctl block\n"
	require.Equal(t, expected, readBack(t, r))
}

func TestResolvConfPreservesTrailingContent(t *testing.T) {
	r := writeResolvConf(t, "before\n"+
		"# Added by ofonoctl, do not edit this block\n"+
		"nameserver 8.8.8.8\n"+
		"# End of ofonoctl block\n"+
		"after\n")
	require.NoError(t, r.Update([]net.IP{net.ParseIP("9.9.9.9")}))

	expected := "before\n" +
		"# Added by ofonoctl, do not edit this block\n" +
		"nameserver 9.9.9.9\n" +
		"# End of ofonoctl block\n" +
		"after\n"
	require.Equal(t, expected, readBack(t, r))
}

func TestResolvConfKeepsTrailingBlankLines(t *testing.T) {
	seed := resolvConfSeed + "\n\n"
	r := writeResolvConf(t, seed)
	require.NoError(t, r.Update([]net.IP{net.ParseIP("10.0.0.1")}))

	// The pre-existing trailing blank lines stay byte for byte; they already
	// separate the appended block.
	expected := seed +
		"# Added by ofonoctl, do not edit this block\n" +
		"nameserver 10.0.0.1\n" +
		"# End of ofonoctl block\n"
	require.Equal(t, expected, readBack(t, r))
}

func TestResolvConfTerminatesUnfinishedLastLine(t *testing.T) {
	r := writeResolvConf(t, "nameserver 127.0.0.53")
	require.NoError(t, r.Update([]net.IP{net.ParseIP("10.0.0.1")}))

	expected := "nameserver 127.0.0.53\n\n" +
		"# Added by ofonoctl, do not edit this block\n" +
		"nameserver 10.0.0.1\n" +
		"# End of ofonoctl block\n"
	require.Equal(t, expected, readBack(t, r))
}

func TestResolvConfEmptyFile(t *testing.T) {
	r := writeResolvConf(t, "")
	require.NoError(t, r.Update([]net.IP{net.ParseIP("10.0.0.1")}))

	expected := "# Added by ofonoctl, do not edit this block\n" +
		"nameserver 10.0.0.1\n" +
		"# End of ofonoctl block\n"
	require.Equal(t, expected, readBack(t, r))
}

func TestResolvConfMissingFileIsFatal(t *testing.T) {
	r := &ResolvConf{Path: filepath.Join(t.TempDir(), "missing", "resolv.conf")}
	require.Error(t, r.Update([]net.IP{net.ParseIP("10.0.0.1")}))
}
