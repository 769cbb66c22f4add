// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "sync"

// Conversation is the ordered message list for the selected contact.
type Conversation struct {
	mu       sync.RWMutex
	contact  ID
	messages []Message
}

// NewConversation returns an empty conversation with contact.
func NewConversation(contact ID) *Conversation {
	return &Conversation{contact: contact}
}

// Contact returns the id of the other participant.
func (c *Conversation) Contact() ID {
	return c.contact
}

// Replace swaps the message list, typically after fetching history.
func (c *Conversation) Replace(msgs []Message) {
	cp := append([]Message(nil), msgs...)
	c.mu.Lock()
	c.messages = cp
	c.mu.Unlock()
}

// Append adds a message to the end. Messages carrying an id already present
// are ignored so an echo of an optimistic send is not shown twice.
func (c *Conversation) Append(m Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m.ID != "" {
		for _, existing := range c.messages {
			if existing.ID == m.ID {
				return false
			}
		}
	}
	c.messages = append(c.messages, m)
	return true
}

// Messages returns a copy of the message list.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Message(nil), c.messages...)
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Last returns the newest message and whether there is one.
func (c *Conversation) Last() (Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// Drafts holds unsent input per contact.
type Drafts struct {
	mu    sync.Mutex
	text  map[ID]string
	dirty bool
}

// NewDrafts returns drafts seeded from saved values.
func NewDrafts(saved map[ID]string) *Drafts {
	d := &Drafts{text: make(map[ID]string, len(saved))}
	for k, v := range saved {
		if v != "" {
			d.text[k] = v
		}
	}
	return d
}

// Get returns the draft for contact.
func (d *Drafts) Get(contact ID) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text[contact]
}

// Set stores the draft for contact. An empty text removes it.
func (d *Drafts) Set(contact ID, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.text[contact] == text {
		return
	}
	if text == "" {
		delete(d.text, contact)
	} else {
		d.text[contact] = text
	}
	d.dirty = true
}

// Clear removes the draft for contact.
func (d *Drafts) Clear(contact ID) {
	d.Set(contact, "")
}

// Snapshot returns a copy of all drafts and resets the dirty flag.
func (d *Drafts) Snapshot() map[ID]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[ID]string, len(d.text))
	for k, v := range d.text {
		out[k] = v
	}
	d.dirty = false
	return out
}

// Dirty reports whether drafts changed since the last Snapshot.
func (d *Drafts) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}
