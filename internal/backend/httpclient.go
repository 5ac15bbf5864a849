// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	apperrors "portal/cli/internal/errors"
	"portal/cli/internal/logging"
	"portal/cli/internal/manifest"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "portal-cli/dev"
	// maxErrorBody bounds how much of a failed response is kept in the error.
	maxErrorBody = 512
)

// Options tune the HTTP client.
type Options struct {
	// Timeout bounds every request. Zero means 10 seconds.
	Timeout time.Duration
	// Jar carries the server's session cookie between requests.
	Jar http.CookieJar
	// UserAgent is sent on every request.
	UserAgent string
	// Transport overrides http.DefaultTransport.
	Transport http.RoundTripper
}

// HTTP implements API over REST endpoints.
type HTTP struct {
	// manifest holds the base URL and endpoint paths
	manifest *manifest.Manifest
	// client is the underlying HTTP client with configured timeout and cookie jar
	client    *http.Client
	userAgent string
}

// newHTTP creates a new HTTP client for the given manifest.
func newHTTP(m *manifest.Manifest, opts Options) *HTTP {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	return &HTTP{
		manifest: m,
		client: &http.Client{
			Timeout:   opts.Timeout,
			Jar:       opts.Jar,
			Transport: opts.Transport,
		},
		userAgent: opts.UserAgent,
	}
}

// setStandardHeaders stamps headers common to every request and returns the request ID.
func (h *HTTP) setStandardHeaders(req *http.Request) string {
	id := uuid.NewString()
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("X-Request-ID", id)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json, text/plain, */*")
	}
	return id
}

// do performs one request. A nil body sends no payload. Transport failures become
// NetworkError and non-2xx answers become ServerError carrying status and body.
func (h *HTTP) do(ctx context.Context, method, path string, body any, accept, op string) (*Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.InvalidInput, op+": encode request", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.manifest.URL(path), reader)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.InvalidInput, op+": build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	id := h.setStandardHeaders(req)

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		logging.Debugf("backend", "%s %s failed after %s [%s]: %v", method, path, time.Since(start).Round(time.Millisecond), id, err)
		return nil, apperrors.Wrap(apperrors.NetworkError, op+" request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.NetworkError, op+": read response", err)
	}
	logging.Debugf("backend", "%s %s -> %d in %s [%s]", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), id)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.Server(op+" failed", resp.StatusCode, truncate(strings.TrimSpace(string(data)), maxErrorBody))
	}
	return &Response{Status: resp.StatusCode, Body: data}, nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
