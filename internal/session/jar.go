// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"portal/cli/internal/logging"
)

// CookiesKey is the storage key of the persisted cookie set.
const CookiesKey = "session_cookies"

// storedCookie is the persisted form of a cookie together with the URL it was
// received from, so the jar can apply the same default domain and path on replay.
type storedCookie struct {
	URL      string    `json:"url"`
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"http_only,omitempty"`
}

func (s storedCookie) expired(now time.Time) bool {
	return !s.Expires.IsZero() && !s.Expires.After(now)
}

func (s storedCookie) httpCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.Name,
		Value:    s.Value,
		Path:     s.Path,
		Domain:   s.Domain,
		Expires:  s.Expires,
		Secure:   s.Secure,
		HttpOnly: s.HttpOnly,
	}
}

// PersistentJar is an http.CookieJar that survives process restarts by mirroring
// every cookie it accepts into the Vault. A CLI process plays the role a browser
// tab plays for a web client, so the server's session cookie has to outlive it.
type PersistentJar struct {
	mu     sync.Mutex
	vault  Vault
	inner  *cookiejar.Jar
	stored map[string]storedCookie
	now    func() time.Time
}

// NewPersistentJar builds a jar and replays any unexpired cookies from v.
func NewPersistentJar(v Vault) (*PersistentJar, error) {
	inner, err := newInnerJar()
	if err != nil {
		return nil, err
	}
	j := &PersistentJar{
		vault:  v,
		inner:  inner,
		stored: make(map[string]storedCookie),
		now:    time.Now,
	}
	if err := j.load(); err != nil {
		return nil, err
	}
	return j, nil
}

func newInnerJar() (*cookiejar.Jar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

func (j *PersistentJar) load() error {
	raw, err := j.vault.Get(CookiesKey)
	if err != nil {
		// absent is the normal first-run case
		return nil
	}
	var list []storedCookie
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		logging.Debugf("session", "discarding unreadable cookie store: %v", err)
		return nil
	}
	now := j.now()
	for _, sc := range list {
		if sc.expired(now) {
			continue
		}
		u, err := url.Parse(sc.URL)
		if err != nil {
			continue
		}
		j.inner.SetCookies(u, []*http.Cookie{sc.httpCookie()})
		j.stored[cookieKey(u, sc.Name, sc.Path)] = sc
	}
	return nil
}

// SetCookies implements http.CookieJar.
func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)

	now := j.now()
	origin := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	for _, c := range cookies {
		key := cookieKey(u, c.Name, c.Path)
		sc := storedCookie{
			URL:      origin.String(),
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		}
		if c.MaxAge > 0 {
			sc.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}
		if c.MaxAge < 0 || sc.expired(now) {
			delete(j.stored, key)
			continue
		}
		j.stored[key] = sc
	}
	if err := j.persist(); err != nil {
		logging.Debugf("session", "persist cookies: %v", err)
	}
}

// Cookies implements http.CookieJar.
func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// drop forgets every cookie held in memory. The vault copy is left to the caller.
func (j *PersistentJar) drop() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	inner, err := newInnerJar()
	if err != nil {
		return err
	}
	j.inner = inner
	j.stored = make(map[string]storedCookie)
	return nil
}

func (j *PersistentJar) persist() error {
	if len(j.stored) == 0 {
		return j.vault.Delete(CookiesKey)
	}
	list := make([]storedCookie, 0, len(j.stored))
	for _, sc := range j.stored {
		list = append(list, sc)
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	if err := j.vault.Set(CookiesKey, string(b)); err != nil {
		return fmt.Errorf("save session cookies: %w", err)
	}
	return nil
}

func cookieKey(u *url.URL, name, path string) string {
	return u.Hostname() + "|" + path + "|" + name
}
