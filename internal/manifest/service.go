// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pterm/pterm"
)

// GetEndpoints returns the manifest for baseURL. A bad address is explained on
// the terminal before the error is returned.
func GetEndpoints(baseURL string) (*Manifest, error) {
	m, err := Resolve(baseURL)
	if err != nil {
		return nil, formatConfigError(baseURL, err)
	}
	return m, nil
}

// Resolve validates baseURL and pairs it with the default endpoint paths.
func Resolve(baseURL string) (*Manifest, error) {
	base := normalize(baseURL)
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", baseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return nil, fmt.Errorf("base URL %q must not carry a query or fragment", baseURL)
	}
	return &Manifest{BaseURL: base, HTTP: DefaultEndpoints()}, nil
}

func normalize(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

// formatConfigError explains a bad base URL before returning it.
func formatConfigError(baseURL string, err error) error {
	pterm.Error.Printfln("Cannot use API address %q", baseURL)
	pterm.Println()
	pterm.Info.Println("Set a full URL such as http://localhost:8080/api via:")
	pterm.Println("  • the --base-url flag")
	pterm.Println("  • PORTAL_BASE_URL in the environment or a .env file")
	pterm.Println("  • base_url in the config file")
	pterm.Println()

	return fmt.Errorf("invalid API address: %w", err)
}
