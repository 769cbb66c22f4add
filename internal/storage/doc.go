// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for chatconnect.
//
// Everything lives in one SQLite database (pure Go driver, no cgo):
//
//   - history_rows: the History tab dataset, replaced wholesale
//   - messages: per-contact message cache for offline display
//   - drafts: unsent input per contact
//
// # Usage
//
//	db, err := storage.Open(storage.DefaultPath())
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	rows, err := db.LoadHistory(ctx)
//
// # Storage Location
//
// The database is stored at ~/.chatconnect/chatconnect.db.
package storage
