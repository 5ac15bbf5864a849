// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure that crosses the auth gateway carries a machine-readable Kind so the
// command layer can pick the right message without parsing error strings.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// NetworkError indicates the request never reached the server.
	NetworkError Kind = "network_error"
	// ServerError indicates the server answered with a non-2xx status.
	ServerError Kind = "server_error"
	// StorageError indicates local session state could not be read or written.
	StorageError Kind = "storage_error"
	// InvalidInput indicates the caller supplied unusable input.
	InvalidInput Kind = "invalid_input"
)

// E wraps an error with kind and human-friendly message.
// Status and Body are only set for ServerError.
type E struct {
	Kind    Kind
	Message string
	Status  int
	Body    string
	Err     error
}

func (e *E) Error() string {
	msg := e.Message
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Server builds a ServerError for a non-2xx response.
func Server(msg string, status int, body string) *E {
	return &E{Kind: ServerError, Message: msg, Status: status, Body: body}
}

// Is reports whether any error in err's chain is an *E of the given kind.
func Is(err error, kind Kind) bool {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *E
	if stderrors.As(err, &e) {
		return e.Status
	}
	return 0
}
