// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes for chatconnect commands.
//
// Handlers always return errors; main displays them once and exits with
// ExitCode(err).
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sort"
	"strings"

	"github.com/jeranaias/chatconnect-tui/internal/api"
	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitUsageError    = 2
	ExitConfigError   = 3
	ExitAuthError     = 4
	ExitNetworkError  = 5
	ExitNotFoundError = 7
	ExitTimeoutError  = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError is a failed command with context.
type CommandError struct {
	Command string // "config", "history"
	Action  string // "set", "export"
	Reason  string
	Err     error
}

func (e *CommandError) Error() string {
	what := e.Command
	if e.Action != "" {
		what += " " + e.Action
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", what, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", what, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UsageError is a malformed command line.
type UsageError struct {
	Message string
	Example string
}

func (e *UsageError) Error() string {
	if e.Example != "" {
		return e.Message + "\nExample: " + e.Example
	}
	return e.Message
}

// NotFoundError is a missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewCommandError creates a command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{Command: command, Action: action, Reason: reason, Err: err}
}

// NewUsageError creates a usage error with an optional example.
func NewUsageError(message, example string) error {
	return &UsageError{Message: message, Example: example}
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// ExitCode picks the process exit status for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		usage    *UsageError
		notFound *NotFoundError
		invalid  config.ValidateErrors
		fields   auth.FieldErrors
		apiErr   *api.APIError
		netErr   net.Error
	)
	switch {
	case errors.As(err, &usage), errors.As(err, &fields):
		return ExitUsageError
	case errors.As(err, &invalid):
		return ExitConfigError
	case errors.Is(err, auth.ErrNoSession), errors.Is(err, api.ErrNoSession), errors.Is(err, api.ErrUnauthorized):
		return ExitAuthError
	case errors.As(err, &notFound):
		return ExitNotFoundError
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeoutError
	case errors.As(err, &apiErr):
		if apiErr.Status == 401 || apiErr.Status == 403 {
			return ExitAuthError
		}
		return ExitGeneralError
	case errors.As(err, &netErr):
		if netErr.Timeout() {
			return ExitTimeoutError
		}
		return ExitNetworkError
	}
	return ExitGeneralError
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError writes err in the standard format. Field errors from the
// login form are listed one per line.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var fields auth.FieldErrors
	if errors.As(err, &fields) {
		fmt.Fprintf(w, "%s please fix the following:\n", ErrorStyle.Render("[ERROR]"))
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  - %s: %s\n", k, fields[k])
		}
		return
	}
	msg := err.Error()
	if errors.Is(err, auth.ErrNoSession) {
		msg += "\nRun 'chatconnect login' first."
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), strings.TrimSpace(msg))
}
