// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// MediaTypeText is the only media type the client sends.
const MediaTypeText = "text"

// Message is a normalized chat message.
type Message struct {
	ID         string    `json:"id,omitempty"`
	Text       string    `json:"message"`
	SenderID   ID        `json:"senderId"`
	ReceiverID ID        `json:"receiverId,omitempty"`
	MediaType  string    `json:"mediaType,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewOutgoing builds a text message from sender to receiver with a fresh
// client-side id.
func NewOutgoing(sender, receiver ID, text string, now time.Time) Message {
	return Message{
		ID:         uuid.NewString(),
		Text:       text,
		SenderID:   sender,
		ReceiverID: receiver,
		MediaType:  MediaTypeText,
		Timestamp:  now,
	}
}

// FromMe reports whether the message was sent by user.
func (m Message) FromMe(user ID) bool {
	return !user.IsZero() && m.SenderID == user
}

// Involves reports whether the message was sent by or to contact.
func (m Message) Involves(contact ID) bool {
	return m.SenderID == contact || m.ReceiverID == contact
}

// FormatTime renders the local clock time as HH:MM, or "--:--" when the
// message has no usable timestamp.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Local().Format("15:04")
}

// WireMessage is the loose shape messages arrive in. Older servers send
// content/from instead of message/senderId.
type WireMessage struct {
	ID         ID      `json:"id,omitempty"`
	Message    *string `json:"message,omitempty"`
	Content    *string `json:"content,omitempty"`
	SenderID   *ID     `json:"senderId,omitempty"`
	From       *ID     `json:"from,omitempty"`
	ReceiverID ID      `json:"receiverId,omitempty"`
	MediaType  string  `json:"mediaType,omitempty"`
	Timestamp  string  `json:"timestamp,omitempty"`
}

// Normalize converts w into a Message. Text falls back from message to
// content, the sender from senderId to from, and a missing or unparsable
// timestamp becomes now.
func (w WireMessage) Normalize(now time.Time) Message {
	m := Message{
		ID:         string(w.ID),
		ReceiverID: w.ReceiverID,
		MediaType:  w.MediaType,
		Timestamp:  now,
	}
	switch {
	case w.Message != nil:
		m.Text = *w.Message
	case w.Content != nil:
		m.Text = *w.Content
	}
	switch {
	case w.SenderID != nil:
		m.SenderID = *w.SenderID
	case w.From != nil:
		m.SenderID = *w.From
	}
	if w.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339Nano, w.Timestamp); err == nil {
			m.Timestamp = ts
		}
	}
	if m.MediaType == "" {
		m.MediaType = MediaTypeText
	}
	return m
}

// NormalizeAll normalizes a batch of wire messages.
func NormalizeAll(ws []WireMessage, now time.Time) []Message {
	out := make([]Message, len(ws))
	for i, w := range ws {
		out[i] = w.Normalize(now)
	}
	return out
}
