// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const defaultEditor = "vi"

// composeMessage opens the user's editor on a temporary file and returns its
// trimmed contents.
func composeMessage() (string, error) {
	editor := pickEditor(os.Getenv("VISUAL"), os.Getenv("EDITOR"))
	tmp, err := os.CreateTemp("", "ofonoctl-sms-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	editCmd := exec.Command(editor, path)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return "", fmt.Errorf("editor %s failed: %w", editor, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read composed message: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// pickEditor selects the message editor; VISUAL takes precedence over EDITOR.
func pickEditor(visual, editor string) string {
	if visual != "" {
		return visual
	}
	if editor != "" {
		return editor
	}
	return defaultEditor
}
