// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"errors"
	"time"
)

// ErrNoSession means nobody is signed in.
var ErrNoSession = errors.New("not signed in")

// Session is an authenticated user and their bearer token.
type Session struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewSession stamps a session created from a login or signup response.
func NewSession(u User, token string, now time.Time) *Session {
	return &Session{User: u, Token: token, CreatedAt: now}
}

// Valid reports whether s can authenticate requests.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// Authorization returns the Authorization header value, or "" when there is
// no token.
func (s *Session) Authorization() string {
	if !s.Valid() {
		return ""
	}
	return "Bearer " + s.Token
}

// WithUser returns a copy of s carrying an updated profile.
func (s *Session) WithUser(u User) *Session {
	cp := *s
	cp.User = u
	return &cp
}
