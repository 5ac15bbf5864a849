// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	apperrors "portal/cli/internal/errors"
)

func TestDebugfMasksAndRespectsVerbose(t *testing.T) {
	var buf bytes.Buffer
	pterm.Debug.Writer = &buf
	pterm.DisableStyling()
	t.Cleanup(func() {
		pterm.Debug.Writer = nil
		pterm.EnableStyling()
		SetVerbose(false)
	})

	SetVerbose(false)
	Debugf("backend", "password=%s", "hunter2")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	assert.True(t, Verbose())
	Debugf("backend", "password=%s", "hunter2")
	assert.Contains(t, buf.String(), "backend: password=***")
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestPresentError(t *testing.T) {
	assert.Equal(t, "", PresentError("login", nil))
	assert.Equal(t, "login: dial http://*:*@host failed",
		PresentError("login", errors.New("dial http://bob:pw@host failed")))

	rejected := apperrors.Server("login request failed", 401, `{"error":"bad password","password":"hunter2"}`)
	got := PresentError("signing in", rejected)
	assert.Contains(t, got, "signing in: server_error: login request failed (status 401)")
	assert.Contains(t, got, "response: ")
	assert.Contains(t, got, "bad password")
	assert.NotContains(t, got, "hunter2")

	offline := apperrors.Wrap(apperrors.NetworkError, "login request failed", errors.New("connection refused"))
	assert.Equal(t, "signing in: network_error: login request failed: connection refused",
		PresentError("signing in", offline))
}
