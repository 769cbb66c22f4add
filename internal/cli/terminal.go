// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTTY reports whether stdin is a terminal, i.e. prompts are possible.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY reports whether stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the stdout width, 80 when unknown, never below 40.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	switch {
	case err != nil || w <= 0:
		return 80
	case w < 40:
		return 40
	}
	return w
}

var colorsEnabled = sync.OnceValue(func() bool {
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return IsStdoutTTY()
})

// ColorsEnabled reports whether output may be colored.
func ColorsEnabled() bool { return colorsEnabled() }

// GetColorProfile returns Ascii when colors are off, else what termenv
// detects.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}
