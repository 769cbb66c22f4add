// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DBFileName is the database file inside the data directory.
const DBFileName = "chatconnect.db"

// ErrClosed is returned by operations on a closed DB.
var ErrClosed = errors.New("storage closed")

const schema = `
CREATE TABLE IF NOT EXISTS history_rows (
	pos      INTEGER PRIMARY KEY,
	id       TEXT NOT NULL UNIQUE,
	name     TEXT NOT NULL,
	type     TEXT NOT NULL,
	duration TEXT NOT NULL,
	date     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	contact_id  TEXT NOT NULL,
	id          TEXT NOT NULL DEFAULT '',
	text        TEXT NOT NULL,
	sender_id   TEXT NOT NULL,
	receiver_id TEXT NOT NULL DEFAULT '',
	media_type  TEXT NOT NULL DEFAULT 'text',
	ts          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_contact ON messages(contact_id, seq);

CREATE TABLE IF NOT EXISTS drafts (
	contact_id TEXT PRIMARY KEY,
	text       TEXT NOT NULL
);
`

// DB is the local chatconnect database.
type DB struct {
	db   *sql.DB
	path string
}

// DefaultPath returns ~/.chatconnect/chatconnect.db.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".chatconnect", DBFileName)
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DB{db: db, path: path}, nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Close closes the database.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// Clear removes all cached user data. Called on logout.
func (d *DB) Clear(ctx context.Context) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"history_rows", "messages", "drafts"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func (d *DB) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	if d.db == nil {
		return ErrClosed
	}
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
