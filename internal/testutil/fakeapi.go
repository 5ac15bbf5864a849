// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package testutil provides an in-process stand-in for the portal API so the
// client packages can be tested end to end over real HTTP with real cookies.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/sessions"
)

// SessionCookie is the name of the cookie issued by FakeAPI.
const SessionCookie = "portal-session"

// ProtectedText is what GET /api/test/user returns to a logged-in caller.
const ProtectedText = "User Content."

// Call records one request received by FakeAPI.
type Call struct {
	Method    string
	Path      string
	Body      string
	HasCookie bool
	RequestID string
}

// FakeAPI mimics the server side of the cookie auth scheme under /api.
type FakeAPI struct {
	Server *httptest.Server

	mu        sync.Mutex
	users     map[string]string
	calls     []Call
	overrides map[string]int
	store     *sessions.CookieStore
}

// NewFakeAPI starts a server that is closed when the test ends.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		users:     make(map[string]string),
		overrides: make(map[string]int),
		store:     newStore(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", f.register)
	mux.HandleFunc("POST /api/auth/login", f.login)
	mux.HandleFunc("POST /api/auth/logout", f.logout)
	mux.HandleFunc("GET /api/test/user", f.user)

	f.Server = httptest.NewServer(f.record(mux))
	t.Cleanup(f.Server.Close)
	return f
}

func newStore() *sessions.CookieStore {
	s := sessions.NewCookieStore([]byte("fake-api-authentication-key-32b"))
	s.Options = &sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
	return s
}

// BaseURL is the value to configure the client with.
func (f *FakeAPI) BaseURL() string {
	return f.Server.URL + "/api"
}

// AddUser registers a user directly.
func (f *FakeAPI) AddUser(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = password
}

// HasUser reports whether username is registered.
func (f *FakeAPI) HasUser(username string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[username]
	return ok
}

// Fail makes every following request to path answer with status.
func (f *FakeAPI) Fail(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides[path] = status
}

// ExpireSessions invalidates every cookie issued so far, as a server-side
// session timeout would.
func (f *FakeAPI) ExpireSessions() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store = sessions.NewCookieStore([]byte("fake-api-rotated-key-after-expiry"))
	f.store.Options = &sessions.Options{Path: "/", HttpOnly: true}
}

// Calls returns a copy of the requests received so far.
func (f *FakeAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		_, cookieErr := r.Cookie(SessionCookie)

		f.mu.Lock()
		f.calls = append(f.calls, Call{
			Method:    r.Method,
			Path:      r.URL.Path,
			Body:      string(body),
			HasCookie: cookieErr == nil,
			RequestID: r.Header.Get("X-Request-ID"),
		})
		status, forced := f.overrides[r.URL.Path]
		f.mu.Unlock()

		if forced {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) session(r *http.Request) *sessions.Session {
	f.mu.Lock()
	store := f.store
	f.mu.Unlock()
	// a cookie signed with an old key yields a fresh, empty session
	s, _ := store.Get(r, SessionCookie)
	return s
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func decode(r *http.Request) (credentials, bool) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		return c, false
	}
	return c, c.Username != "" && c.Password != ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *FakeAPI) register(w http.ResponseWriter, r *http.Request) {
	c, ok := decode(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "username and password are required"})
		return
	}
	f.mu.Lock()
	_, taken := f.users[c.Username]
	if !taken {
		f.users[c.Username] = c.Password
	}
	f.mu.Unlock()
	if taken {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Error: Username is already taken!"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully!"})
}

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	c, ok := decode(r)
	f.mu.Lock()
	want, known := f.users[c.Username]
	f.mu.Unlock()
	if !ok || !known || want != c.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
		return
	}

	s := f.session(r)
	s.Values["username"] = c.Username
	if err := s.Save(r, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"username": c.Username})
}

func (f *FakeAPI) logout(w http.ResponseWriter, r *http.Request) {
	s := f.session(r)
	s.Options.MaxAge = -1
	if err := s.Save(r, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "You've been signed out!"})
}

func (f *FakeAPI) user(w http.ResponseWriter, r *http.Request) {
	s := f.session(r)
	if _, ok := s.Values["username"].(string); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(ProtectedText))
}
