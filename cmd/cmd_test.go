// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal/cli/internal/config"
	apperrors "portal/cli/internal/errors"
	"portal/cli/internal/session"
	"portal/cli/internal/terminal"
	"portal/cli/internal/testutil"
)

type harness struct {
	api    *testutil.FakeAPI
	vault  *session.MemoryVault
	prompt bytes.Buffer
	out    bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{config.EnvBaseURL, config.EnvTimeout, config.EnvVerbose} {
		t.Setenv(k, "")
	}

	h := &harness{api: testutil.NewFakeAPI(t), vault: session.NewMemoryVault()}

	prevVault, prevPrompter := openVault, newPrompter
	prevError, prevSuccess, prevWarning, prevInfo := pterm.Error, pterm.Success, pterm.Warning, pterm.Info
	t.Cleanup(func() {
		openVault, newPrompter = prevVault, prevPrompter
		pterm.Error, pterm.Success, pterm.Warning, pterm.Info = prevError, prevSuccess, prevWarning, prevInfo
		pterm.SetDefaultOutput(os.Stdout)
		pterm.EnableStyling()
	})

	pterm.EnableOutput()
	pterm.DisableStyling()
	pterm.SetDefaultOutput(&h.out)
	pterm.Error.Writer = &h.out
	pterm.Success.Writer = &h.out
	pterm.Warning.Writer = &h.out
	pterm.Info.Writer = &h.out

	openVault = func() (session.Vault, error) { return h.vault, nil }
	return h
}

// run executes the CLI like a fresh process would, feeding stdin to prompts.
func (h *harness) run(stdin string, args ...string) error {
	newPrompter = func() *terminal.Prompter {
		return terminal.NewPrompterFrom(strings.NewReader(stdin), &h.prompt)
	}
	loginUsername, loginPassword, loginNoView = "", "", false
	registerUsername, registerPassword = "", ""
	showVersion, verbose, ephemeral = false, false, false
	h.out.Reset()

	rootCmd.SetArgs(append([]string{"--base-url", h.api.BaseURL()}, args...))
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	return rootCmd.ExecuteContext(context.Background())
}

func (h *harness) loggedIn() bool {
	return session.NewFlag(h.vault).IsSet()
}

func (h *harness) paths() []string {
	var out []string
	for _, c := range h.api.Calls() {
		out = append(out, c.Method+" "+c.Path)
	}
	return out
}

func TestRegisterThenLoginShowsDashboard(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("", "register", "-u", "a", "-p", "b"))
	assert.True(t, h.api.HasUser("a"))
	assert.False(t, h.loggedIn())

	require.NoError(t, h.run("", "login", "-u", "a", "-p", "b"))
	assert.True(t, h.loggedIn())

	calls := h.api.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, []string{"POST /api/auth/register", "POST /api/auth/login", "GET /api/test/user"}, h.paths())
	assert.True(t, calls[2].HasCookie)
}

func TestLoginPromptsForMissingValues(t *testing.T) {
	h := newHarness(t)
	h.api.AddUser("a", "b")

	require.NoError(t, h.run("a\nb\n", "login", "--no-dashboard"))
	assert.True(t, h.loggedIn())
	assert.Equal(t, "Username: Password: ", h.prompt.String())
	assert.Equal(t, []string{"POST /api/auth/login"}, h.paths())
}

func TestLoginRejected(t *testing.T) {
	h := newHarness(t)
	h.api.AddUser("a", "b")

	err := h.run("", "login", "-u", "a", "-p", "wrong")
	require.Error(t, err)
	var reported reportedError
	assert.ErrorAs(t, err, &reported)
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
	assert.False(t, h.loggedIn())
	assert.Equal(t, []string{"POST /api/auth/login"}, h.paths())
}

func TestLoginRequiresBothFields(t *testing.T) {
	h := newHarness(t)

	err := h.run("a\n\n", "login")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	assert.Empty(t, h.api.Calls())
}

func TestRegisterTakenUsername(t *testing.T) {
	h := newHarness(t)
	h.api.AddUser("a", "b")

	err := h.run("", "register", "-u", "a", "-p", "c")
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
	assert.False(t, h.loggedIn())
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.api.AddUser("a", "b")

	require.NoError(t, h.run("", "login", "-u", "a", "-p", "b", "--no-dashboard"))
	require.True(t, h.loggedIn())

	require.NoError(t, h.run("", "logout"))
	assert.False(t, h.loggedIn())

	_, err := h.vault.Get(session.CookiesKey)
	assert.Error(t, err)
}

func TestLogoutFailureKeepsSession(t *testing.T) {
	h := newHarness(t)
	h.api.AddUser("a", "b")
	require.NoError(t, h.run("", "login", "-u", "a", "-p", "b", "--no-dashboard"))

	h.api.Fail("/api/auth/logout", http.StatusBadGateway)
	err := h.run("", "logout")
	assert.True(t, apperrors.Is(err, apperrors.ServerError))
	assert.True(t, h.loggedIn())
}

func TestDashboardRequiresLogin(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("", "dashboard"))
	assert.Empty(t, h.api.Calls())
}

func TestDashboardUsesStoredCookie(t *testing.T) {
	h := newHarness(t)
	h.api.AddUser("a", "b")
	require.NoError(t, h.run("", "login", "-u", "a", "-p", "b", "--no-dashboard"))

	require.NoError(t, h.run("", "dashboard"))
	calls := h.api.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "/api/test/user", calls[1].Path)
	assert.True(t, calls[1].HasCookie)
}

func TestDashboardAfterServerExpiry(t *testing.T) {
	h := newHarness(t)
	h.api.AddUser("a", "b")
	require.NoError(t, h.run("", "login", "-u", "a", "-p", "b", "--no-dashboard"))

	h.api.ExpireSessions()
	err := h.run("", "dashboard")
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
	// the local marker is advisory and stays
	assert.True(t, h.loggedIn())
}

func TestStatusMakesNoRequest(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("", "status"))
	require.NoError(t, h.vault.Set(session.FlagKey, "true"))
	require.NoError(t, h.run("", "status"))
	assert.Empty(t, h.api.Calls())
}

func TestInvalidBaseURL(t *testing.T) {
	h := newHarness(t)

	rootCmd.SetArgs([]string{"status", "--base-url", "localhost"})
	err := rootCmd.ExecuteContext(context.Background())
	assert.Error(t, err)
	assert.Empty(t, h.api.Calls())
}

func TestFailureMessages(t *testing.T) {
	h := newHarness(t)
	h.api.AddUser("a", "b")

	_ = h.run("", "login", "-u", "a", "-p", "wrong")
	assert.Contains(t, h.out.String(), "Login failed. Please check your credentials.")

	_ = h.run("", "register", "-u", "a", "-p", "c")
	assert.Contains(t, h.out.String(), "Registration failed. Username might be taken.")

	require.NoError(t, h.run("", "register", "-u", "new", "-p", "c"))
	assert.Contains(t, h.out.String(), "Registration successful! Please sign in.")

	require.NoError(t, h.run("", "login", "-u", "a", "-p", "b", "--no-dashboard"))
	h.api.Fail("/api/test/user", http.StatusInternalServerError)
	_ = h.run("", "dashboard")
	assert.Contains(t, h.out.String(), "Error fetching data. Ensure cookies are working.")
}

func TestDashboardShowsProtectedText(t *testing.T) {
	h := newHarness(t)
	h.api.AddUser("a", "b")

	require.NoError(t, h.run("", "login", "-u", "a", "-p", "b"))
	assert.Contains(t, h.out.String(), testutil.ProtectedText)
}

func TestPromptedPasswordKeepsSpaces(t *testing.T) {
	h := newHarness(t)
	h.api.AddUser("a", " b ")

	require.NoError(t, h.run("a\n b \n", "login", "--no-dashboard"))
	assert.True(t, h.loggedIn())
}

func TestBaseURLFlagOverridesEnvironment(t *testing.T) {
	h := newHarness(t)
	h.api.AddUser("a", "b")
	t.Setenv(config.EnvBaseURL, "not a url")

	require.NoError(t, h.run("", "login", "-u", "a", "-p", "b", "--no-dashboard"))
	assert.True(t, h.loggedIn())
	assert.Equal(t, []string{"POST /api/auth/login"}, h.paths())
}

// lockedVault reads like the session vault but refuses to record or forget a login.
type lockedVault struct{ *session.MemoryVault }

func (v lockedVault) Set(key, value string) error {
	if key == session.FlagKey {
		return errors.New("keychain locked")
	}
	return v.MemoryVault.Set(key, value)
}

func (lockedVault) ClearAll(...string) error { return errors.New("keychain locked") }

func TestLoginAcceptedButNotSaved(t *testing.T) {
	h := newHarness(t)
	h.api.AddUser("a", "b")
	openVault = func() (session.Vault, error) { return lockedVault{h.vault}, nil }

	err := h.run("", "login", "-u", "a", "-p", "b", "--no-dashboard")
	assert.True(t, apperrors.Is(err, apperrors.StorageError))
	assert.Contains(t, h.out.String(), "could not be saved to the keychain")
	assert.NotContains(t, h.out.String(), "Please check your credentials")
	assert.False(t, h.loggedIn())
}

func TestLogoutAcceptedButNotForgotten(t *testing.T) {
	h := newHarness(t)
	h.api.AddUser("a", "b")
	require.NoError(t, h.run("", "login", "-u", "a", "-p", "b", "--no-dashboard"))

	openVault = func() (session.Vault, error) { return lockedVault{h.vault}, nil }
	err := h.run("", "logout")
	assert.True(t, apperrors.Is(err, apperrors.StorageError))
	assert.Contains(t, h.out.String(), "stored session could not be removed")
	assert.NotContains(t, h.out.String(), "You are still signed in")
}
