// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	registerUsername string
	registerPassword string
)

// registerCmd creates an account. It does not sign in.
var registerCmd = &cobra.Command{
	Use:     "register",
	Aliases: []string{"signup"},
	Short:   "Create an account",
	Long: `The register command creates an account on the portal API with the given
username and password. It does not sign you in; run 'portal login' afterwards.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		creds, err := readCredentials(registerUsername, registerPassword)
		if err != nil {
			return err
		}
		if err := creds.Validate(); err != nil {
			pterm.Warning.Println(msgMissingCredentials)
			return reportedError{err: err}
		}

		stop := startSpinner("Registering...")
		_, err = a.gateway.Register(cmd.Context(), creds)
		stop()
		if err != nil {
			return reportFailure(a, err, "registering", msgRegisterFailed)
		}

		pterm.Success.Println(msgRegisterSucceeded)
		pterm.Info.Println("Run 'portal login' to sign in.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username (prompted when omitted)")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password (prompted when omitted)")
}
