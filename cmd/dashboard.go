// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// dashboardCmd shows the protected resource.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"me"},
	Short:   "Show the protected dashboard data",
	Long: `The dashboard command fetches the protected resource from the portal API using
the stored session cookie and prints it as returned by the server.

It requires a prior 'portal login'. The local "logged in" marker is only a hint:
if the server has since expired the session, the request fails.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		if !a.gateway.IsAuthenticated() {
			printNotLoggedIn()
			return nil
		}
		return showDashboard(cmd, a)
	},
}

// showDashboard fetches the protected resource once and renders it.
func showDashboard(cmd *cobra.Command, a *app) error {
	stop := startSpinner("Loading protected data...")
	text, err := a.gateway.FetchProtectedResource(cmd.Context())
	stop()
	if err != nil {
		return reportFailure(a, err, "loading the dashboard", msgFetchFailed)
	}

	pterm.DefaultBox.
		WithTitle("Dashboard").
		WithPadding(1).
		Println(text)
	return nil
}

func printNotLoggedIn() {
	pterm.Println("🔒 You're not logged in yet!")
	pterm.Println("   Run 'portal login' to get started.")
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
