// Copyright (c) 2026 The ofonoctl authors.
// SPDX-License-Identifier: Apache-2.0

// Package cmd wires the CLI subcommands to the telephony client, the
// context workflow and the host network applier.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ofonoctl/ofonoctl/ofono"
)

var (
	cfgFile string
	verbose bool

	log = newLogger()
)

var rootCmd = &cobra.Command{
	Use:   "ofonoctl",
	Short: "Control cellular modems managed by the oFono daemon",
	Long: `ofonoctl is a command-line front end for the oFono telephony daemon.

It queries modem state, toggles power and online flags, scans cellular
operators, connects and disconnects packet-data contexts (applying the
resulting IP configuration to the host), and sends SMS messages. Without
a subcommand it lists modems and their contexts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
	RunE: runList,
}

// Execute runs the root command. All fatal errors end up here and terminate
// the process with a nonzero status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ofonoctl: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.ofonoctl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose logging")
}

// initConfig reads in the config file if one exists.
func initConfig() {
	viper.SetDefault("resolvconf", "/etc/resolv.conf")
	viper.SetDefault("probe-address", "8.8.8.8")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".ofonoctl")
	}
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// errNoModems is the fatal form of the zero-modem condition; the plain list
// command reports it without failing.
var errNoModems = errors.New("No modems found")

// firstModem connects each action command to the first modem the daemon
// reports.
func firstModem(ctx context.Context, client *ofono.Client) (*ofono.Modem, error) {
	modems, err := client.Modems(ctx)
	if err != nil {
		return nil, err
	}
	if len(modems) == 0 {
		return nil, errNoModems
	}
	return modems[0], nil
}
