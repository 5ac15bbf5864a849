// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides interfaces and implementations for communicating with the portal API.
// It defines the contract for authentication and protected-resource calls and an HTTP
// implementation of it. Every call is a single attempt; failures come back as typed
// errors from internal/errors.
package backend

import "context"

// Response is a successful (2xx) server answer.
type Response struct {
	Status int
	Body   []byte
}

// Credentials is the JSON body of login and register requests.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// API defines backend operations the CLI depends on.
// Implementations may call real HTTP endpoints or provide mocks for tests.
type API interface {
	// Login posts credentials to the login endpoint. The server answers with a session cookie.
	Login(ctx context.Context, creds Credentials) (*Response, error)
	// Register posts credentials to the register endpoint.
	Register(ctx context.Context, creds Credentials) (*Response, error)
	// Logout asks the server to end the session identified by the cookie.
	Logout(ctx context.Context) (*Response, error)
	// GetProtected fetches the protected test resource as text.
	GetProtected(ctx context.Context) (string, error)
}
