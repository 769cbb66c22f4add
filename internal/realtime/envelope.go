// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package realtime is the live message channel: a WebSocket carrying JSON
// envelopes, plus Bubble Tea commands that drive it from the UI.
package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/chatconnect-tui/internal/model"
)

// Event types.
const (
	EventLogin   = "login"
	EventMessage = "message"
)

// Envelope is the frame format in both directions.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// LoginPayload announces which user this connection belongs to.
type LoginPayload struct {
	UserID model.ID `json:"userId"`
}

func encode(eventType string, payload any) ([]byte, error) {
	p, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return json.Marshal(Envelope{Type: eventType, Payload: p})
}

// DecodeMessage parses a message payload and normalizes it.
func DecodeMessage(payload json.RawMessage, now time.Time) (model.Message, error) {
	var w model.WireMessage
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &w); err != nil {
			return model.Message{}, fmt.Errorf("decode message payload: %w", err)
		}
	}
	return w.Normalize(now), nil
}
