// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	apperrors "portal/cli/internal/errors"
	"portal/cli/internal/logging"
)

var (
	loginUsername string
	loginPassword string
	loginNoView   bool
)

// loginCmd represents the login command.
// On success it continues straight to the dashboard, the way the sign-in page
// hands over to the protected page.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"signin"},
	Short:   "Sign in with username and password",
	Long: `The login command sends your username and password to the portal API. When the
server accepts them it sets a session cookie, which is kept in your OS keychain
together with a local "logged in" marker, and the dashboard is shown.

Values not given with --username/--password are prompted for; the password is
read without echo.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		creds, err := readCredentials(loginUsername, loginPassword)
		if err != nil {
			return err
		}
		if err := creds.Validate(); err != nil {
			pterm.Warning.Println(msgMissingCredentials)
			return reportedError{err: err}
		}

		stop := startSpinner("Authenticating...")
		_, err = a.gateway.Login(cmd.Context(), creds)
		stop()
		if apperrors.Is(err, apperrors.StorageError) {
			return reportFailure(a, err, "saving the session", msgSessionNotSaved)
		}
		if err != nil {
			return reportFailure(a, err, "signing in", msgLoginFailed)
		}
		logging.Debugf("cmd", "login accepted for %q", creds.Username)

		pterm.Success.Printfln("Signed in as %s", creds.Username)
		if loginNoView {
			return nil
		}
		return showDashboard(cmd, a)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username (prompted when omitted)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
	loginCmd.Flags().BoolVar(&loginNoView, "no-dashboard", false, "Do not show the dashboard after signing in")
}
