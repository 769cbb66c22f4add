// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import "strings"

// ProfileUpdatedMessage is shown after a profile save.
const ProfileUpdatedMessage = "Profile updated successfully (Simulation)"

// ProfileEdit is the editable subset of a User.
type ProfileEdit struct {
	FullName     string
	Specialty    string
	WorkLocation string
	Phone        string
}

// EditFrom seeds an edit with the user's current values.
func EditFrom(u User) ProfileEdit {
	return ProfileEdit{
		FullName:     u.FullName,
		Specialty:    u.Specialty,
		WorkLocation: u.WorkLocation,
		Phone:        u.Phone,
	}
}

// Apply merges the edit into u. A blank full name keeps the old one.
func (p ProfileEdit) Apply(u User) User {
	if name := strings.TrimSpace(p.FullName); name != "" {
		u.FullName = name
	}
	u.Specialty = strings.TrimSpace(p.Specialty)
	u.WorkLocation = strings.TrimSpace(p.WorkLocation)
	u.Phone = strings.TrimSpace(p.Phone)
	return u
}
