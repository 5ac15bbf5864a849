// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the portal CLI.
// The login and register commands stand in for the sign-in screen, the dashboard
// command for the protected page; all of them go through the auth gateway.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"portal/cli/internal/config"
	"portal/cli/internal/logging"
)

var (
	showVersion bool
	baseURLFlag string
	verbose     bool
	ephemeral   bool

	// cfg is filled by the root PersistentPreRunE before any subcommand runs.
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Sign in to the portal API and view protected data",
	Long: `portal is a command-line client for the portal API. It signs you in with a
username and password, keeps the server's session cookie in your OS keychain,
and shows the protected dashboard data.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			pterm.Printfln("portal %s", Version)
			pterm.Printfln("api    %s", cfg.BaseURL)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// loadSettings layers flags over config file, .env and environment.
func loadSettings(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("base-url") {
		c.BaseURL = baseURLFlag
	}
	if verbose {
		c.LogLevel = "debug"
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	logging.SetVerbose(cfg.Verbose())
	logging.Debugf("cmd", "api base %s, timeout %s", cfg.BaseURL, cfg.Timeout())
	return nil
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct{ err error }

func (r reportedError) Error() string { return r.err.Error() }
func (r reportedError) Unwrap() error { return r.err }

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, logging.Mask(err.Error()))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and API address")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", config.DefaultBaseURL, "Base URL of the portal API")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep the session in memory only; nothing is written to the keychain")
}
