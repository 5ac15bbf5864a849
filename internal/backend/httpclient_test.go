// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "portal/cli/internal/errors"
	"portal/cli/internal/manifest"
	"portal/cli/internal/testutil"
)

func newClient(t *testing.T, baseURL string) *HTTP {
	t.Helper()
	m, err := manifest.Resolve(baseURL)
	require.NoError(t, err)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return newHTTP(m, Options{Jar: jar, Timeout: 2 * time.Second, UserAgent: "portal-cli/test"})
}

func TestLoginSendsCredentialsAndStoresCookie(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddUser("a", "b")
	c := newClient(t, api.BaseURL())
	ctx := context.Background()

	resp, err := c.Login(ctx, Credentials{Username: "a", Password: "b"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)

	calls := api.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/api/auth/login", calls[0].Path)
	assert.NotEmpty(t, calls[0].RequestID)

	var sent map[string]string
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &sent))
	assert.Equal(t, map[string]string{"username": "a", "password": "b"}, sent)

	text, err := c.GetProtected(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.ProtectedText, text)
	assert.True(t, api.Calls()[1].HasCookie)
}

func TestLoginRejected(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddUser("a", "b")
	c := newClient(t, api.BaseURL())

	resp, err := c.Login(context.Background(), Credentials{Username: "a", Password: "wrong"})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ServerError))
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
}

func TestRegisterAndLogout(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	c := newClient(t, api.BaseURL())
	ctx := context.Background()

	_, err := c.Register(ctx, Credentials{Username: "new", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, api.HasUser("new"))

	_, err = c.Register(ctx, Credentials{Username: "new", Password: "pw"})
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))

	_, err = c.Login(ctx, Credentials{Username: "new", Password: "pw"})
	require.NoError(t, err)

	resp, err := c.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)

	calls := api.Calls()
	last := calls[len(calls)-1]
	assert.Equal(t, "/api/auth/logout", last.Path)
	assert.JSONEq(t, `{}`, last.Body)

	_, err = c.GetProtected(ctx)
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
}

func TestGetProtectedReturnsExactBody(t *testing.T) {
	body := "  line one\nline two\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/test/user", r.URL.Path)
		assert.Equal(t, "text/plain, */*", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	got, err := newClient(t, srv.URL+"/api").GetProtected(context.Background())
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestServerErrorKeepsTruncatedBody(t *testing.T) {
	long := make([]byte, 2*maxErrorBody)
	for i := range long {
		long[i] = 'x'
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write(long)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).GetProtected(context.Background())
	var e *apperrors.E
	require.ErrorAs(t, err, &e)
	assert.Equal(t, apperrors.ServerError, e.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, e.Status)
	assert.Len(t, e.Body, maxErrorBody+3)
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "short", in: "abc", n: 5, want: "abc"},
		{name: "ascii", in: "abcdef", n: 3, want: "abc..."},
		{name: "cut inside two-byte rune", in: "aé", n: 2, want: "a..."},
		{name: "cut inside three-byte rune", in: "x€€", n: 5, want: "x€..."},
		{name: "cut on boundary", in: "éé", n: 2, want: "é..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := newClient(t, base).Login(context.Background(), Credentials{Username: "a", Password: "b"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.NetworkError))
	assert.Equal(t, 0, apperrors.StatusOf(err))
}

func TestAny2xxIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := newClient(t, srv.URL).Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.Empty(t, resp.Body)
}

func TestStandardHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "portal-cli/test", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Len(t, r.Header.Get("X-Request-ID"), 36)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).Register(context.Background(), Credentials{Username: "a", Password: "b"})
	require.NoError(t, err)
}
