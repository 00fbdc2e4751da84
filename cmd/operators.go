// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ofonoctl/ofonoctl/ofono"
)

// The daemon performs the scan on the modem; it regularly takes more than a
// minute on live networks.
const operatorScanTimeout = 100 * time.Second

var operatorsCmd = &cobra.Command{
	Use:   "operators",
	Short: "Scan for visible cellular operators",
	Args:  cobra.NoArgs,
	RunE:  runOperators,
}

func init() {
	rootCmd.AddCommand(operatorsCmd)
}

func runOperators(cmd *cobra.Command, args []string) error {
	client, err := ofono.NewClient(log)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), operatorScanTimeout)
	defer cancel()
	modem, err := firstModem(ctx, client)
	if err != nil {
		return err
	}
	fmt.Printf("Scanning for operators on modem %s (may take up to %s)...\n",
		modem.Name(), operatorScanTimeout)
	operators, err := modem.ScanOperators(ctx)
	if err != nil {
		return err
	}
	table := newTable(os.Stdout, []string{
		"Operator", "Status", "Technology", "MCC", "MNC",
	})
	for _, op := range operators {
		table.Append([]string{
			op.Name,
			op.Status,
			strings.Join(op.Technologies, " "),
			op.MCC,
			op.MNC,
		})
	}
	table.Render()
	return nil
}
