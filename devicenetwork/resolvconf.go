// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package devicenetwork

import (
	"fmt"
	"net"
	"os"
	"strings"
)

const (
	blockHeader = "# Added by ofonoctl, do not edit this block"
	blockFooter = "# End of ofonoctl block"
)

// ResolvConf maintains this tool's managed nameserver block inside the host
// resolver configuration file. Everything outside the block is preserved
// byte for byte, and after every update exactly one managed block exists.
type ResolvConf struct {
	Path string
}

// Update rewrites the managed block with one nameserver line per server, in
// the given order. When no block exists yet, one is appended after a blank
// line. Read or write failure is returned to the caller; the resolver file
// is only touched when the user asked for it, so failing silently is not an
// option.
func (r *ResolvConf) Update(nameservers []net.IP) error {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return fmt.Errorf("failed to read resolver config %s: %w", r.Path, err)
	}
	updated := replaceManagedBlock(string(data), renderBlock(nameservers))
	// Write via a temporary file and rename so a failure cannot leave the
	// resolver config truncated.
	tmp := r.Path + ".tmp"
	info, err := os.Stat(r.Path)
	mode := os.FileMode(0644)
	if err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(tmp, []byte(updated), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, r.Path); err != nil {
		return fmt.Errorf("failed to update resolver config %s: %w", r.Path, err)
	}
	return nil
}

func renderBlock(nameservers []net.IP) []string {
	block := make([]string, 0, len(nameservers)+2)
	block = append(block, blockHeader)
	for _, server := range nameservers {
		block = append(block, "nameserver "+server.String())
	}
	return append(block, blockFooter)
}

func replaceManagedBlock(content string, block []string) string {
	lines := strings.Split(content, "\n")
	start, end := -1, -1
	for i, line := range lines {
		switch strings.TrimSpace(line) {
		case blockHeader:
			if start == -1 {
				start = i
			}
		case blockFooter:
			if start != -1 && end == -1 {
				end = i
			}
		}
	}
	if start == -1 || end == -1 {
		// Append without touching the existing bytes: terminate an unfinished
		// last line, then separate the block with a blank line unless the
		// file already ends in one.
		out := content
		switch {
		case out == "":
		case !strings.HasSuffix(out, "\n"):
			out += "\n\n"
		case !strings.HasSuffix(out, "\n\n"):
			out += "\n"
		}
		return out + strings.Join(block, "\n") + "\n"
	}
	merged := make([]string, 0, len(lines)-(end-start+1)+len(block))
	merged = append(merged, lines[:start]...)
	merged = append(merged, block...)
	merged = append(merged, lines[end+1:]...)
	return strings.Join(merged, "\n")
}
