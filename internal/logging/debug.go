// Copyright (c) 2025 Portal
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"sync/atomic"

	"github.com/pterm/pterm"
)

var verbose atomic.Bool

// SetVerbose toggles debug output for the whole process.
func SetVerbose(on bool) {
	verbose.Store(on)
	if on {
		pterm.EnableDebugMessages()
	} else {
		pterm.DisableDebugMessages()
	}
}

// Verbose reports whether debug output is enabled.
func Verbose() bool {
	return verbose.Load()
}

// Debugf prints a masked debug line tagged with the emitting component.
func Debugf(component, format string, args ...any) {
	if !verbose.Load() {
		return
	}
	pterm.Debug.Println(fmt.Sprintf("%s: ", component) + Mask(fmt.Sprintf(format, args...)))
}
