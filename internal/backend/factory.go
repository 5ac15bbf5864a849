// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"portal/cli/internal/manifest"
)

// New creates a backend API implementation with manifest endpoints.
// Returns HTTP client (real backend).
func New(m *manifest.Manifest, opts Options) API {
	return newHTTP(m, opts)
}
