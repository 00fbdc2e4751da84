// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ofonoctl/ofonoctl/ofono"
)

var poweronCmd = &cobra.Command{
	Use:   "poweron",
	Short: "Power on the first modem",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return togglePower(true)
	},
}

var poweroffCmd = &cobra.Command{
	Use:   "poweroff",
	Short: "Power off the first modem",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return togglePower(false)
	},
}

var onlineCmd = &cobra.Command{
	Use:   "online",
	Short: "Bring the first modem online (powering it on first if needed)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleOnline(true)
	},
}

var offlineCmd = &cobra.Command{
	Use:   "offline",
	Short: "Take the first modem offline",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleOnline(false)
	},
}

func init() {
	rootCmd.AddCommand(poweronCmd, poweroffCmd, onlineCmd, offlineCmd)
}

func togglePower(on bool) error {
	client, err := ofono.NewClient(log)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	modem, err := firstModem(ctx, client)
	if err != nil {
		return err
	}
	if err := setPowered(ctx, modem, on); err != nil {
		return err
	}
	fmt.Printf("Modem %s powered %s\n", modem.Name(), onOff(on))
	return nil
}

func toggleOnline(online bool) error {
	client, err := ofono.NewClient(log)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	modem, err := firstModem(ctx, client)
	if err != nil {
		return err
	}
	// Online requires power; bring the modem up first.
	if online && !modem.Powered() {
		if err := setPowered(ctx, modem, true); err != nil {
			return err
		}
	}
	err = modem.SetPropertyWait(ctx, ofono.ModemInterface, "Online", online)
	if err != nil {
		action := "bring online"
		if !online {
			action = "take offline"
		}
		return fmt.Errorf("could not %s modem %s: %w", action, modem.Name(), err)
	}
	status := "online"
	if !online {
		status = "offline"
	}
	fmt.Printf("Modem %s is %s\n", modem.Name(), status)
	return nil
}

func setPowered(ctx context.Context, modem *ofono.Modem, on bool) error {
	err := modem.SetPropertyWait(ctx, ofono.ModemInterface, "Powered", on)
	if err != nil {
		return fmt.Errorf("could not power %s modem %s: %w", onOff(on), modem.Name(), err)
	}
	return nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
