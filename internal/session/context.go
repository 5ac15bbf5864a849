// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

// Context is the explicit session handle passed from the command layer into the
// auth gateway. It replaces process-wide state: whoever holds a Context decides
// which vault the flag and cookies live in.
type Context struct {
	Flag *Flag
	Jar  *PersistentJar

	vault Vault
}

// NewContext opens the session stored in v.
func NewContext(v Vault) (*Context, error) {
	jar, err := NewPersistentJar(v)
	if err != nil {
		return nil, err
	}
	return &Context{Flag: NewFlag(v), Jar: jar, vault: v}, nil
}

// Forget drops the flag and every session cookie, in memory and in the vault.
// The in-memory jar is emptied even when the vault refuses the delete.
func (c *Context) Forget() error {
	if err := c.Jar.drop(); err != nil {
		return err
	}
	return c.vault.ClearAll(FlagKey, CookiesKey)
}
