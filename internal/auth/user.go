// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"strings"

	"github.com/jeranaias/chatconnect-tui/internal/model"
)

// Role is the account type chosen at signup.
type Role string

const (
	RoleStudent   Role = "student"
	RolePreceptor Role = "preceptor"
)

// Roles lists the selectable roles in form order.
var Roles = []Role{RoleStudent, RolePreceptor}

// Label is the capitalized role name.
func (r Role) Label() string {
	if r == "" {
		return ""
	}
	s := string(r)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Next cycles to the following role.
func (r Role) Next() Role {
	for i, x := range Roles {
		if x == r {
			return Roles[(i+1)%len(Roles)]
		}
	}
	return Roles[0]
}

// Profile field fallbacks shown when the backend leaves them empty.
const (
	DefaultSpecialty    = "General"
	DefaultWorkLocation = "Remote"
	NotAvailable        = "N/A"
)

// User is the signed-in user's profile.
type User struct {
	ID           model.ID `json:"id"`
	FullName     string   `json:"fullName"`
	Email        string   `json:"email"`
	Role         Role     `json:"role"`
	Image        string   `json:"image,omitempty"`
	Specialty    string   `json:"specialty,omitempty"`
	WorkLocation string   `json:"workLocation,omitempty"`
	Phone        string   `json:"phone,omitempty"`
}

// Initials is the avatar text for the user.
func (u User) Initials() string {
	return model.Contact{FullName: u.FullName}.Initials()
}

// SpecialtyOrDefault returns the specialty or "General".
func (u User) SpecialtyOrDefault() string {
	return orDefault(u.Specialty, DefaultSpecialty)
}

// WorkLocationOrDefault returns the work location or "Remote".
func (u User) WorkLocationOrDefault() string {
	return orDefault(u.WorkLocation, DefaultWorkLocation)
}

// PhoneOrDefault returns the phone number or "N/A".
func (u User) PhoneOrDefault() string {
	return orDefault(u.Phone, NotAvailable)
}

func orDefault(v, d string) string {
	if strings.TrimSpace(v) == "" {
		return d
	}
	return v
}
