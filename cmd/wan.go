// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ofonoctl/ofonoctl/devicenetwork"
	"github.com/ofonoctl/ofonoctl/ofono"
	"github.com/ofonoctl/ofonoctl/wan"
)

var (
	wanConnect    bool
	wanDisconnect bool
	wanAppendDNS  bool
	wanProbe      bool
	wanContext    int
)

var wanCmd = &cobra.Command{
	Use:   "wan",
	Short: "Manage packet-data contexts",
	Long: `Without flags, wan lists the packet-data contexts of the first modem.

With --connect or --disconnect it activates or deactivates one context,
selected by its 1-based listing index (--context, default 1). On connect the
resulting IP settings are applied to the host network stack, and with
--append-dns the learned DNS servers are written into the resolver
configuration file.`,
	Args: cobra.NoArgs,
	RunE: runWan,
}

func init() {
	wanCmd.Flags().BoolVar(&wanConnect, "connect", false, "activate a context")
	wanCmd.Flags().BoolVar(&wanDisconnect, "disconnect", false, "deactivate a context")
	wanCmd.Flags().BoolVar(&wanAppendDNS, "append-dns", false,
		"update the resolver configuration with the learned DNS servers")
	wanCmd.Flags().BoolVar(&wanProbe, "probe", false,
		"verify reachability through the new connection after connecting")
	wanCmd.Flags().IntVar(&wanContext, "context", 0,
		"1-based context index (default: the first context)")
	rootCmd.AddCommand(wanCmd)
}

func runWan(cmd *cobra.Command, args []string) error {
	if wanConnect && wanDisconnect {
		return errors.New("--connect and --disconnect are mutually exclusive")
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

	if !wanConnect && !wanDisconnect {
		contexts, err := modem.Contexts(ctx)
		if err != nil {
			return err
		}
		renderContexts(os.Stdout, contexts)
		return nil
	}

	action := wan.ActionConnect
	if wanDisconnect {
		action = wan.ActionDisconnect
	}
	workflow := &wan.Workflow{
		Modem:    modem,
		Applier:  devicenetwork.NewApplier(log),
		Resolver: &devicenetwork.ResolvConf{Path: viper.GetString("resolvconf")},
		Log:      log,
	}
	result, err := workflow.Run(ctx, wan.Options{
		Action:     action,
		Context:    wanContext,
		AppendDNS:  wanAppendDNS,
		Probe:      wanProbe,
		ICMPTarget: net.ParseIP(viper.GetString("probe-address")),
	})
	if err != nil {
		return err
	}
	if result.ToggleErr != nil {
		// Already reported by the workflow; daemon-side state may have
		// partially changed, so this is not a fatal condition.
		return nil
	}

	if action == wan.ActionDisconnect {
		fmt.Printf("Disconnected context %s\n", result.Context.Name)
		return nil
	}
	renderContexts(os.Stdout, []ofono.Context{result.Context})
	if wanAppendDNS {
		fmt.Printf("Updated %s with %d nameserver(s)\n",
			viper.GetString("resolvconf"), len(result.DNSServers))
	}
	if wanProbe {
		if result.ProbeErr != nil {
			log.Errorf("Connectivity probe failed: %v", result.ProbeErr)
		} else {
			fmt.Println("Connectivity probe succeeded")
		}
	}
	return nil
}
