// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ofonoctl/ofonoctl/ofono"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modems and their packet-data contexts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := ofono.NewClient(log)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	modems, err := client.Modems(ctx)
	if err != nil {
		return err
	}
	if len(modems) == 0 {
		fmt.Println("No modems found")
		return nil
	}
	renderModems(ctx, modems)
	for _, modem := range modems {
		contexts, err := modem.Contexts(ctx)
		if err != nil {
			if errors.Is(err, ofono.ErrNotAvailable) {
				continue
			}
			return err
		}
		renderContexts(os.Stdout, contexts)
	}
	return nil
}

func renderModems(ctx context.Context, modems []*ofono.Modem) {
	table := newTable(os.Stdout, []string{
		"Modem", "Powered", "Online", "SIM", "IMS",
		"Status", "Operator", "Signal", "Technology",
	})
	for _, modem := range modems {
		sim, simErr := modem.SIM(ctx)
		imsRegistered, imsErr := modem.IMSRegistered(ctx)
		reg, regErr := modem.Registration(ctx)
		if regErr != nil {
			reg = ofono.Registration{Status: "Unknown"}
			if !errors.Is(regErr, ofono.ErrNotAvailable) {
				log.Debugf("Registration lookup for modem %s: %v", modem.Path, regErr)
			}
		}
		table.Append([]string{
			modem.Name(),
			boolCell(modem.Powered()),
			boolCell(modem.Online()),
			simDisplay(sim, simErr),
			imsDisplay(imsRegistered, imsErr),
			reg.Status,
			reg.Operator,
			signalDisplay(reg),
			reg.Technology,
		})
	}
	table.Render()
}
