// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jeranaias/chatconnect-tui/internal/history"
)

// SaveHistory replaces the stored history rows with rows, in order.
func (d *DB) SaveHistory(ctx context.Context, rows []history.Row) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM history_rows"); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO history_rows (pos, id, name, type, duration, date) VALUES (?, ?, ?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, r := range rows {
			if _, err := stmt.ExecContext(ctx, i, r.ID, r.Name, r.Type, r.Duration, r.Date); err != nil {
				return fmt.Errorf("insert history row %q: %w", r.ID, err)
			}
		}
		return nil
	})
}

// LoadHistory returns the stored history rows in display order.
func (d *DB) LoadHistory(ctx context.Context) ([]history.Row, error) {
	if d.db == nil {
		return nil, ErrClosed
	}
	rs, err := d.db.QueryContext(ctx,
		"SELECT id, name, type, duration, date FROM history_rows ORDER BY pos")
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var rows []history.Row
	for rs.Next() {
		var r history.Row
		if err := rs.Scan(&r.ID, &r.Name, &r.Type, &r.Duration, &r.Date); err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, rs.Err()
}

// HistoryCount returns the number of stored history rows.
func (d *DB) HistoryCount(ctx context.Context) (int, error) {
	if d.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history_rows").Scan(&n)
	return n, err
}
