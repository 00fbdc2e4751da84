// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ofonoctl/ofonoctl/ofono"
)

var smsMessage string

var smsCmd = &cobra.Command{
	Use:   "sms DESTINATION",
	Short: "Send an SMS message",
	Long: `Send an SMS message to DESTINATION through the first modem.

Without -m the message is composed in $VISUAL (or $EDITOR); an empty
message aborts the send.`,
	Args: cobra.ExactArgs(1),
	RunE: runSms,
}

var smsListCmd = &cobra.Command{
	Use:   "sms-list",
	Short: "Dump messages stored by the daemon",
	Args:  cobra.NoArgs,
	RunE:  runSmsList,
}

func init() {
	smsCmd.Flags().StringVarP(&smsMessage, "message", "m", "",
		"message text (omit to compose in an editor)")
	rootCmd.AddCommand(smsCmd, smsListCmd)
}

func runSms(cmd *cobra.Command, args []string) error {
	destination := args[0]
	body := smsMessage
	if body == "" {
		composed, err := composeMessage()
		if err != nil {
			return err
		}
		body = composed
	}
	if body == "" {
		return errors.New("empty message, aborting")
	}

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
	msgPath, err := modem.SendMessage(ctx, destination, body)
	if err != nil {
		return err
	}
	fmt.Printf("Message queued as %s\n", msgPath)
	return nil
}

func runSmsList(cmd *cobra.Command, args []string) error {
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
	messages, err := modem.Messages(ctx)
	if err != nil {
		return err
	}
	for _, msg := range messages {
		fmt.Printf("%s\n", msg.Path)
		for key, value := range msg.Props {
			fmt.Printf("  %s: %v\n", key, value.Value())
		}
	}
	return nil
}
