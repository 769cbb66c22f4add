// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"sort"
	"strings"
)

// Mode selects between the login and signup forms.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

func (m Mode) String() string {
	if m == ModeSignup {
		return "signup"
	}
	return "login"
}

// Toggle switches between login and signup.
func (m Mode) Toggle() Mode {
	if m == ModeSignup {
		return ModeLogin
	}
	return ModeSignup
}

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// Form field names used as FieldErrors keys.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldFullName = "fullName"
)

// Credentials is what the login and signup forms collect.
type Credentials struct {
	Mode     Mode   `json:"-"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// FieldErrors maps a field name to its message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = e[k]
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the form and returns FieldErrors, or nil when it can be
// submitted.
func (c Credentials) Validate() error {
	errs := FieldErrors{}

	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		errs[FieldEmail] = "Email is required"
	case !strings.Contains(email, "@"):
		errs[FieldEmail] = "Invalid email"
	}

	switch {
	case c.Password == "":
		errs[FieldPassword] = "Password is required"
	case len([]rune(c.Password)) < MinPasswordLength:
		errs[FieldPassword] = "Password must be at least 6 characters"
	}

	if c.Mode == ModeSignup && strings.TrimSpace(c.FullName) == "" {
		errs[FieldFullName] = "Name is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Normalized trims the text fields and defaults the role for signup.
func (c Credentials) Normalized() Credentials {
	c.Email = strings.TrimSpace(c.Email)
	c.FullName = strings.TrimSpace(c.FullName)
	if c.Mode == ModeSignup && c.Role == "" {
		c.Role = RoleStudent
	}
	if c.Mode == ModeLogin {
		c.FullName = ""
		c.Role = ""
	}
	return c
}
