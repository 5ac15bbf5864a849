// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
)

// Login calls POST /auth/login with { username, password }.
// The response body is returned untouched; the session cookie lands in the client's jar.
func (h *HTTP) Login(ctx context.Context, creds Credentials) (*Response, error) {
	return h.do(ctx, http.MethodPost, h.manifest.HTTP.Login, creds, "", "login")
}

// Register calls POST /auth/register with { username, password }.
func (h *HTTP) Register(ctx context.Context, creds Credentials) (*Response, error) {
	return h.do(ctx, http.MethodPost, h.manifest.HTTP.Register, creds, "", "register")
}

// Logout calls POST /auth/logout with an empty JSON object.
// The server clears its cookie in the response.
func (h *HTTP) Logout(ctx context.Context) (*Response, error) {
	return h.do(ctx, http.MethodPost, h.manifest.HTTP.Logout, struct{}{}, "", "logout")
}
