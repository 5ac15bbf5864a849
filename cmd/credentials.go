// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"portal/cli/internal/auth"
	"portal/cli/internal/terminal"
)

// newPrompter is replaced in tests.
var newPrompter = terminal.NewPrompter

// readCredentials fills in whatever the flags did not supply by prompting.
func readCredentials(username, password string) (auth.Credentials, error) {
	p := newPrompter()
	if username == "" {
		prompt := "Username: "
		u, err := p.Line(prompt)
		if err != nil {
			return auth.Credentials{}, err
		}
		username = u
	}
	if password == "" {
		prompt := "Password: "
		pw, err := p.Secret(prompt)
		if err != nil {
			return auth.Credentials{}, err
		}
		password = pw
		// don't leave the prompt block on screen
		terminal.ClearPreviousLines(len(prompt))
	}
	return auth.Credentials{Username: username, Password: password}, nil
}
