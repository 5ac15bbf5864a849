// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides thread-safe secret storage for portal on top of the
// OS keychain/credential store.
//
// macOS uses the native `security` command when available and falls back to the
// keyring library; Windows uses Credential Manager; Linux tries Secret Service,
// KWallet and pass before an encrypted file under the XDG state directory.
// The Manager exposes a flat string key/value surface so callers can persist
// small pieces of session state without knowing which backend is active.
package keychain

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/99designs/keyring"

	"portal/cli/internal/logging"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "portal"

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("keychain: key not found")

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu      sync.RWMutex
	backend keychainBackend
}

// keychainBackend defines the interface for keychain operations.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// Options configures NewManager.
type Options struct {
	// FileDir is where the encrypted file backend keeps its items.
	FileDir string
	// FilePassword unlocks the file backend. Empty means the file backend is not offered.
	FilePassword string
}

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager(opts Options) (*Manager, error) {
	// Try native security backend first on macOS
	if runtime.GOOS == "darwin" {
		backend, err := newSecurityBackend(ServiceName)
		if err == nil {
			logging.Debugf("keychain", "using macOS security command")
			return &Manager{backend: backend}, nil
		}
		// Fall through to keyring library if security command fails
	}

	ring, err := openRing(opts)
	if err != nil {
		return nil, err
	}
	return NewManagerWithKeyring(ring), nil
}

// NewManagerWithKeyring wraps an already opened keyring, e.g. keyring.NewArrayKeyring in tests.
func NewManagerWithKeyring(ring keyring.Keyring) *Manager {
	return &Manager{backend: ringBackend{ring: ring}}
}

// openRing opens the OS keyring with the backends appropriate for this platform.
func openRing(opts Options) (keyring.Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		// Pass requires 'pass' utility installed: brew install pass
		allowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		allowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
		}
	}
	if opts.FilePassword != "" && opts.FileDir != "" {
		allowedBackends = append(allowedBackends, keyring.FileBackend)
	}

	cfg := keyring.Config{
		ServiceName:             ServiceName,
		AllowedBackends:         allowedBackends,
		PassPrefix:              ServiceName,
		LibSecretCollectionName: ServiceName,
		KWalletAppID:            ServiceName,
		KWalletFolder:           ServiceName,
		FileDir:                 opts.FileDir,
		FilePasswordFunc:        keyring.FixedStringPrompt(opts.FilePassword),
	}
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "linux" && opts.FilePassword == "" {
			return nil, fmt.Errorf("no secret store available (%w); set PORTAL_KEYRING_PASSWORD to use an encrypted file store", err)
		}
		return nil, err
	}
	return ring, nil
}

// Set stores value under key.
// This method is thread-safe.
func (m *Manager) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	logging.Debugf("keychain", "set %q (%d bytes)", key, len(value))
	return m.backend.Set(key, value)
}

// Get returns the value stored under key, or ErrNotFound.
// This method is thread-safe.
func (m *Manager) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, err := m.backend.Get(key)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

// Delete removes key. Deleting a missing key is not an error.
// This method is thread-safe.
func (m *Manager) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	logging.Debugf("keychain", "delete %q", key)
	return m.backend.Delete(key)
}

// ClearAll removes every given key under one lock, returning the first failure.
// Missing keys are skipped. Logout uses it to drop the whole session at once.
func (m *Manager) ClearAll(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var first error
	for _, k := range keys {
		if err := m.backend.Delete(k); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ringBackend adapts keyring.Keyring to keychainBackend.
type ringBackend struct {
	ring keyring.Keyring
}

func (r ringBackend) Set(key, value string) error {
	return r.ring.Set(keyring.Item{Key: key, Data: []byte(value), Label: ServiceName + " " + key})
}

func (r ringBackend) Get(key string) (string, error) {
	it, err := r.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(it.Data), nil
}

func (r ringBackend) Delete(key string) error {
	err := r.ring.Remove(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}
