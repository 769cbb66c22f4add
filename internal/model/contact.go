// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"github.com/jeranaias/chatconnect-tui/internal/util"
)

// StatusOnline is the presence value the backend uses for connected users.
const StatusOnline = "online"

// Contact is a user on the other side of an accepted relation.
type Contact struct {
	ID          ID     `json:"id"`
	FullName    string `json:"fullName"`
	Image       string `json:"image,omitempty"`
	Status      string `json:"status,omitempty"`
	LastMessage string `json:"lastMessage,omitempty"`
	Role        string `json:"role,omitempty"`
}

// Online reports whether the backend marked the contact as online.
func (c Contact) Online() bool {
	return c.Status == StatusOnline
}

// Initials is the avatar text for the contact.
func (c Contact) Initials() string {
	return util.Initials(c.FullName)
}

// Preview is the second line shown under the contact name.
func (c Contact) Preview() string {
	if c.LastMessage == "" {
		return "Click to start chatting"
	}
	return c.LastMessage
}

// FilterContacts returns the contacts whose name contains query, ignoring
// case and accents. An empty query returns the input.
func FilterContacts(contacts []Contact, query string) []Contact {
	if query == "" {
		return contacts
	}
	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if util.ContainsFold(c.FullName, query) {
			out = append(out, c)
		}
	}
	return out
}

// IndexOf returns the index of the contact with id, or -1.
func IndexOf(contacts []Contact, id ID) int {
	for i, c := range contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}
