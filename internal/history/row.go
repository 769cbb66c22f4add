// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history holds the call and message history records shown in the
// History tab, where they come from and how they are exported.
package history

import (
	"fmt"
	"strconv"

	"github.com/jeranaias/chatconnect-tui/internal/util"
)

// Record types.
const (
	TypeVoice = "Voice"
	TypeVideo = "Video"
)

// Row is one history record. Rows are values and are never modified after
// they are produced by a Source.
type Row struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Duration string `json:"duration"`
	Date     string `json:"date"`
}

// Columns returns the cell values in display order.
func (r Row) Columns() []string {
	return []string{r.ID, r.Name, r.Type, r.Duration, r.Date}
}

// Header is the column titles matching Row.Columns.
var Header = []string{"ID", "Name", "Type", "Duration", "Date"}

// Matches reports whether the row's name or type contains query, ignoring
// case and accents.
func (r Row) Matches(query string) bool {
	return util.ContainsFold(r.Name, query) || util.ContainsFold(r.Type, query)
}

// Filter returns the rows that match query, preserving order. An empty
// query returns rows unchanged.
func Filter(rows []Row, query string) []Row {
	if query == "" {
		return rows
	}
	out := make([]Row, 0, len(rows)/4)
	for _, r := range rows {
		if r.Matches(query) {
			out = append(out, r)
		}
	}
	return out
}

// ValidateUnique returns an error naming the first duplicated ID.
func ValidateUnique(rows []Row) error {
	seen := make(map[string]int, len(rows))
	for i, r := range rows {
		if j, ok := seen[r.ID]; ok {
			return fmt.Errorf("duplicate history row id %q at %d and %d", r.ID, j, i)
		}
		seen[r.ID] = i
	}
	return nil
}

// Mock dataset values.
const (
	DefaultMockRows = 1500
	mockDate        = "2024-01-10"
	mockDuration    = "5:22"
)

// Generate builds n mock rows: even indices are voice calls, odd ones video.
func Generate(n int) []Row {
	if n < 0 {
		n = 0
	}
	rows := make([]Row, n)
	for i := range rows {
		typ := TypeVoice
		if i%2 == 1 {
			typ = TypeVideo
		}
		rows[i] = Row{
			ID:       strconv.Itoa(i),
			Name:     "Record #" + strconv.Itoa(i),
			Type:     typ,
			Duration: mockDuration,
			Date:     mockDate,
		}
	}
	return rows
}
