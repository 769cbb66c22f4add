// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized matches 401 responses; the session should be dropped.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoSession is returned when an authenticated call gets no token.
	ErrNoSession = errors.New("no session")

	// ErrResponseTooLarge is returned when a body exceeds MaxResponseSize.
	ErrResponseTooLarge = errors.New("response too large")
)

// APIError is a non-2xx response. Message comes from the body's "message"
// field, or a per-call fallback when the body has none.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401s.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Temporary reports whether retrying might succeed.
func (e *APIError) Temporary() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// UserMessage returns text suitable for the error banner: the server
// message for API errors, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
