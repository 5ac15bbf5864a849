// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth provides the authentication gateway for the portal CLI.
// It forwards credentials to the API and mirrors the outcome of login and logout
// in the session flag. The flag is advisory: the server authorizes requests from
// its own cookie, and nothing here checks the two agree.
package auth

import (
	"context"

	"portal/cli/internal/backend"
	apperrors "portal/cli/internal/errors"
	"portal/cli/internal/logging"
	"portal/cli/internal/manifest"
	"portal/cli/internal/session"
)

// Gateway centralizes authentication-related operations against the backend
// and the local session.
type Gateway struct {
	be   backend.API
	sess *session.Context
}

// NewGateway constructs a Gateway talking HTTP to the manifest's endpoints.
// The session's cookie jar is installed in the HTTP client.
func NewGateway(m *manifest.Manifest, sess *session.Context, opts backend.Options) *Gateway {
	opts.Jar = sess.Jar
	return &Gateway{be: backend.New(m, opts), sess: sess}
}

// NewGatewayWithAPI constructs a Gateway over an arbitrary backend implementation.
func NewGatewayWithAPI(be backend.API, sess *session.Context) *Gateway {
	return &Gateway{be: be, sess: sess}
}

// Login sends the credentials and, on a 2xx answer, sets the session flag.
// A rejected or failed request leaves the flag as it was.
func (g *Gateway) Login(ctx context.Context, creds Credentials) (*backend.Response, error) {
	resp, err := g.be.Login(ctx, creds.wire())
	if err != nil {
		logging.Debugf("auth", "login as %q failed: %v", creds.Username, err)
		return nil, err
	}
	if err := g.sess.Flag.Set(); err != nil {
		return resp, apperrors.Wrap(apperrors.StorageError, "remember login", err)
	}
	logging.Debugf("auth", "logged in as %q", creds.Username)
	return resp, nil
}

// Register creates an account. It never touches the session flag.
func (g *Gateway) Register(ctx context.Context, creds Credentials) (*backend.Response, error) {
	return g.be.Register(ctx, creds.wire())
}

// Logout ends the server session and, on a 2xx answer, clears the session flag
// and the stored cookies. A failed request leaves both in place.
func (g *Gateway) Logout(ctx context.Context) (*backend.Response, error) {
	resp, err := g.be.Logout(ctx)
	if err != nil {
		logging.Debugf("auth", "logout failed: %v", err)
		return nil, err
	}
	if err := g.sess.Forget(); err != nil {
		return resp, apperrors.Wrap(apperrors.StorageError, "forget session", err)
	}
	return resp, nil
}

// IsAuthenticated reports the session flag. It makes no network call.
func (g *Gateway) IsAuthenticated() bool {
	return g.sess.Flag.IsSet()
}

// FetchProtectedResource returns the protected resource body verbatim.
func (g *Gateway) FetchProtectedResource(ctx context.Context) (string, error) {
	return g.be.GetProtected(ctx)
}
