// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"fmt"
	"log/slog"
)

// Source produces the full history dataset. Callers replace their row store
// wholesale with the result.
type Source interface {
	Load(ctx context.Context) ([]Row, error)
}

// MockSource generates a fixed number of synthetic rows.
type MockSource struct {
	Rows int
}

// Load returns Generate(m.Rows), or the default count when Rows is zero.
func (m MockSource) Load(ctx context.Context) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := m.Rows
	if n == 0 {
		n = DefaultMockRows
	}
	return Generate(n), nil
}

// Cache is durable storage for a loaded dataset.
type Cache interface {
	LoadHistory(ctx context.Context) ([]Row, error)
	SaveHistory(ctx context.Context, rows []Row) error
}

// CachedSource loads from Cache when it holds rows and otherwise falls back
// to Origin, saving what it got. The dataset is therefore produced once and
// replayed on every later visit.
type CachedSource struct {
	Origin Source
	Cache  Cache
	Logger *slog.Logger
}

// Load implements Source.
func (c *CachedSource) Load(ctx context.Context) ([]Row, error) {
	log := c.Logger
	if log == nil {
		log = slog.Default()
	}

	rows, err := c.Cache.LoadHistory(ctx)
	if err != nil {
		log.Warn("history cache read failed", "error", err)
	} else if len(rows) > 0 {
		log.Debug("history loaded from cache", "rows", len(rows))
		return rows, nil
	}

	rows, err = c.Origin.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if err := ValidateUnique(rows); err != nil {
		return nil, err
	}
	if err := c.Cache.SaveHistory(ctx, rows); err != nil {
		// The rows are still usable for this session.
		log.Warn("history cache write failed", "error", err)
	}
	log.Debug("history loaded from origin", "rows", len(rows))
	return rows, nil
}
