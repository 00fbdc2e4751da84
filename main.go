// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package main

import "github.com/ofonoctl/ofonoctl/cmd"

func main() {
	cmd.Execute()
}
