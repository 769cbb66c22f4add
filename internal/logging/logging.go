// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures structured logging for chatconnect.
//
// The TUI owns the terminal, so logs never go to stdout or stderr. With no
// file configured every record is discarded; with a file, both slog records
// and Bubble Tea's own debug log are appended to it.
package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Options controls Setup.
type Options struct {
	// File is the log destination. Empty disables logging.
	File string

	// Level is one of debug, info, warn, error. Defaults to info, or debug
	// when File is set through --debug.
	Level string

	// JSON selects the JSON handler instead of text.
	JSON bool
}

// Setup builds a logger per opts, installs it as the slog default and
// returns a cleanup func that closes any opened files.
func Setup(opts Options) (*slog.Logger, func(), error) {
	if opts.File == "" {
		logger := New(io.Discard, opts)
		slog.SetDefault(logger)
		log.SetOutput(io.Discard)
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	// Bubble Tea writes through the stdlib logger with its own prefix.
	tf, err := tea.LogToFile(opts.File, "tea")
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("open tea log: %w", err)
	}

	logger := New(f, opts)
	slog.SetDefault(logger)

	cleanup := func() {
		tf.Close()
		f.Close()
	}
	return logger, cleanup, nil
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	return slog.New(h)
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
