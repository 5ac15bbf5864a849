// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"path/filepath"

	"portal/cli/internal/auth"
	"portal/cli/internal/backend"
	"portal/cli/internal/config"
	"portal/cli/internal/keychain"
	"portal/cli/internal/manifest"
	"portal/cli/internal/session"
	"portal/cli/internal/xdg"
)

// app is what a command needs to talk to the API: the resolved endpoints and a
// gateway bound to this user's session.
type app struct {
	manifest *manifest.Manifest
	gateway  *auth.Gateway
}

// openVault returns the store backing the session. Tests replace it.
var openVault = func() (session.Vault, error) {
	if ephemeral {
		return session.NewMemoryVault(), nil
	}
	dir, err := xdg.StateDir()
	if err != nil {
		return nil, err
	}
	km, err := keychain.NewManager(keychain.Options{
		FileDir:      filepath.Join(dir, "keyring"),
		FilePassword: config.KeyringPassword(),
	})
	if err != nil {
		return nil, err
	}
	return km, nil
}

func openApp() (*app, error) {
	m, err := manifest.GetEndpoints(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	vault, err := openVault()
	if err != nil {
		return nil, err
	}
	sess, err := session.NewContext(vault)
	if err != nil {
		return nil, err
	}
	gw := auth.NewGateway(m, sess, backend.Options{
		Timeout:   cfg.Timeout(),
		UserAgent: "portal-cli/" + Version,
	})
	return &app{manifest: m, gateway: gw}, nil
}
