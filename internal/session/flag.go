// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session holds the client-side view of the user's session: the advisory
// "logged in" flag and the cookies the server hands out.
//
// Neither is authoritative. The server decides whether a request is authorized from
// the cookie it set; the flag only records that the last login succeeded and the
// last logout has not happened yet. The two can drift (for example once the server
// expires the cookie) and nothing here tries to reconcile them.
package session

// Vault is the persistent string store backing the session, implemented by
// keychain.Manager. Get must return an error when the key is absent; Delete and
// ClearAll must not fail for absent keys.
type Vault interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
	ClearAll(keys ...string) error
}

// FlagKey is the storage key of the logged-in flag.
const FlagKey = "isLoggedIn"

const flagValue = "true"

// Flag is the persisted boolean recording the client's belief that it is logged in.
// Present with value "true" means logged in; anything else means logged out.
// It is removed together with the cookies by Context.Forget.
type Flag struct {
	vault Vault
}

// NewFlag returns a Flag stored in v.
func NewFlag(v Vault) *Flag {
	return &Flag{vault: v}
}

// Set records that the client is logged in.
func (f *Flag) Set() error {
	return f.vault.Set(FlagKey, flagValue)
}

// IsSet reports whether the flag is present. Storage errors read as not set.
func (f *Flag) IsSet() bool {
	v, err := f.vault.Get(FlagKey)
	return err == nil && v == flagValue
}
