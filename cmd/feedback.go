// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"

	apperrors "portal/cli/internal/errors"
	"portal/cli/internal/httperrors"
	"portal/cli/internal/logging"
)

// User-facing messages. Failures collapse to one message per action whatever the cause.
const (
	msgLoginFailed        = "Login failed. Please check your credentials."
	msgRegisterFailed     = "Registration failed. Username might be taken."
	msgRegisterSucceeded  = "Registration successful! Please sign in."
	msgFetchFailed        = "Error fetching data. Ensure cookies are working."
	msgLogoutFailed       = "Logout failed. You are still signed in."
	msgSessionNotSaved    = "Signed in, but the session could not be saved to the keychain."
	msgSessionNotRemoved  = "Signed out on the server, but the stored session could not be removed."
	msgMissingCredentials = "Please enter both username and password."
)

// reportFailure shows msg and returns err marked as already reported.
// In verbose mode, transport and 5xx failures also get troubleshooting hints.
func reportFailure(a *app, err error, action, msg string) error {
	pterm.Error.Println(msg)

	if logging.Verbose() {
		logging.Debugf("cmd", "%s", logging.PresentError(action, err))
		if apperrors.Is(err, apperrors.NetworkError) || apperrors.StatusOf(err) >= 500 {
			_ = httperrors.FormatNetworkError(err, action, httperrors.ExtractHostFromURL(a.manifest.BaseURL))
		}
	}
	return reportedError{err: err}
}
