// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	apperrors "portal/cli/internal/errors"
)

// logoutCmd represents the logout command.
// The local session is only forgotten once the server confirms the logout.
var logoutCmd = &cobra.Command{
	Use:     "logout",
	Aliases: []string{"signout"},
	Short:   "Sign out and forget the stored session",
	Long: `The logout command asks the portal API to end the current session. When the
server confirms, the stored session cookie and the local "logged in" marker are
removed. If the request fails, nothing local is changed.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}

		stop := startSpinner("Signing out...")
		_, err = a.gateway.Logout(cmd.Context())
		stop()
		if apperrors.Is(err, apperrors.StorageError) {
			return reportFailure(a, err, "forgetting the session", msgSessionNotRemoved)
		}
		if err != nil {
			return reportFailure(a, err, "signing out", msgLogoutFailed)
		}

		pterm.Success.Println("Signed out")
		pterm.Info.Println("Run 'portal login' to sign in again.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
