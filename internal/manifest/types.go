// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package manifest describes where the portal API lives: a base URL plus the
// paths of the individual endpoints.
package manifest

import (
	"strings"
)

// Manifest represents the resolved endpoint configuration.
type Manifest struct {
	BaseURL string        `json:"base_url"`
	HTTP    HTTPEndpoints `json:"http"`
}

// HTTPEndpoints contains REST API endpoint paths relative to BaseURL.
type HTTPEndpoints struct {
	Login         string `json:"auth_login"`    // e.g., "/auth/login"
	Register      string `json:"auth_register"` // e.g., "/auth/register"
	Logout        string `json:"auth_logout"`   // e.g., "/auth/logout"
	ProtectedUser string `json:"test_user"`     // e.g., "/test/user"
}

// DefaultEndpoints returns the paths served by the portal API.
func DefaultEndpoints() HTTPEndpoints {
	return HTTPEndpoints{
		Login:         "/auth/login",
		Register:      "/auth/register",
		Logout:        "/auth/logout",
		ProtectedUser: "/test/user",
	}
}

// URL joins the base URL and an endpoint path.
func (m *Manifest) URL(path string) string {
	return m.BaseURL + "/" + strings.TrimLeft(path, "/")
}
