// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// statusCmd reports whether this machine believes it is signed in.
var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"whoami"},
	Short:   "Show whether you are signed in",
	Long: `The status command reads the local "logged in" marker. It makes no network
call, so it cannot tell whether the server still accepts the session; use
'portal dashboard' for that.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		if !a.gateway.IsAuthenticated() {
			printNotLoggedIn()
			return nil
		}
		pterm.Printfln("👤 Signed in to %s", a.manifest.BaseURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
