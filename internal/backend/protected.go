// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
)

// GetProtected calls GET /test/user and returns the body verbatim.
// The server authorizes the call from the session cookie alone.
func (h *HTTP) GetProtected(ctx context.Context) (string, error) {
	resp, err := h.do(ctx, http.MethodGet, h.manifest.HTTP.ProtectedUser, nil, "text/plain, */*", "fetch protected resource")
	if err != nil {
		return "", err
	}
	return string(resp.Body), nil
}
