// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the chat domain types: contacts, messages, the
// conversation with the selected contact and per-contact drafts.
//
// # Key Types
//
//   - ID: identifier that decodes from a JSON string or number
//   - Contact: another user the current user has an accepted relation with
//   - Message: a normalized chat message
//   - WireMessage: the loose shape messages arrive in over REST and the socket
//   - Conversation: ordered messages exchanged with one contact
//   - Drafts: unsent input text keyed by contact
//
// # Usage
//
//	conv := model.NewConversation(contact.ID)
//	conv.Replace(history)
//	conv.Append(model.NewOutgoing(me, contact.ID, "hello", time.Now()))
package model
