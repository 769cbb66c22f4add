// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/jeranaias/chatconnect-tui/internal/model"
)

// MaxCachedMessages bounds the per-contact cache; the server returns at
// most this many per page anyway.
const MaxCachedMessages = 200

// CacheMessages replaces the cached messages for contact.
func (d *DB) CacheMessages(ctx context.Context, contact model.ID, msgs []model.Message) error {
	if len(msgs) > MaxCachedMessages {
		msgs = msgs[len(msgs)-MaxCachedMessages:]
	}
	return d.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE contact_id = ?", string(contact)); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO messages
			(contact_id, id, text, sender_id, receiver_id, media_type, ts)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, m := range msgs {
			if _, err := stmt.ExecContext(ctx, string(contact), m.ID, m.Text,
				string(m.SenderID), string(m.ReceiverID), m.MediaType,
				m.Timestamp.UTC().Format(time.RFC3339Nano)); err != nil {
				return err
			}
		}
		return nil
	})
}

// AppendMessage adds one message to the cache for contact.
func (d *DB) AppendMessage(ctx context.Context, contact model.ID, m model.Message) error {
	if d.db == nil {
		return ErrClosed
	}
	_, err := d.db.ExecContext(ctx, `INSERT INTO messages
		(contact_id, id, text, sender_id, receiver_id, media_type, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(contact), m.ID, m.Text, string(m.SenderID), string(m.ReceiverID),
		m.MediaType, m.Timestamp.UTC().Format(time.RFC3339Nano))
	return err
}

// CachedMessages returns the cached messages for contact, oldest first.
func (d *DB) CachedMessages(ctx context.Context, contact model.ID) ([]model.Message, error) {
	if d.db == nil {
		return nil, ErrClosed
	}
	rs, err := d.db.QueryContext(ctx, `SELECT id, text, sender_id, receiver_id, media_type, ts
		FROM messages WHERE contact_id = ? ORDER BY seq`, string(contact))
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var out []model.Message
	for rs.Next() {
		var (
			m                model.Message
			sender, receiver string
			ts               string
		)
		if err := rs.Scan(&m.ID, &m.Text, &sender, &receiver, &m.MediaType, &ts); err != nil {
			return nil, err
		}
		m.SenderID = model.ID(sender)
		m.ReceiverID = model.ID(receiver)
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			m.Timestamp = t
		}
		out = append(out, m)
	}
	return out, rs.Err()
}

// SaveDrafts replaces the stored drafts.
func (d *DB) SaveDrafts(ctx context.Context, drafts map[model.ID]string) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM drafts"); err != nil {
			return err
		}
		for id, text := range drafts {
			if text == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO drafts (contact_id, text) VALUES (?, ?)", string(id), text); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadDrafts returns all stored drafts.
func (d *DB) LoadDrafts(ctx context.Context) (map[model.ID]string, error) {
	if d.db == nil {
		return nil, ErrClosed
	}
	rs, err := d.db.QueryContext(ctx, "SELECT contact_id, text FROM drafts")
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	out := make(map[model.ID]string)
	for rs.Next() {
		var id, text string
		if err := rs.Scan(&id, &text); err != nil {
			return nil, err
		}
		out[model.ID(id)] = text
	}
	return out, rs.Err()
}
