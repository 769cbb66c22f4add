// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatconnect-tui/internal/history"
	"github.com/jeranaias/chatconnect-tui/internal/ui/styles"
	"github.com/jeranaias/chatconnect-tui/internal/window"
)

func newTestTable(t *testing.T) *HistoryTable {
	t.Helper()
	table, err := NewHistoryTable(window.DefaultConfig(), styles.NewTheme(true))
	require.NoError(t, err)
	table.SetRows(history.Generate(history.DefaultMockRows))
	require.NoError(t, table.SetSize(100, 13))
	return table
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewHistoryTable_RejectsBadConfig(t *testing.T) {
	_, err := NewHistoryTable(window.Config{RowHeight: 0, ViewportHeight: 10}, styles.NewTheme(true))
	assert.ErrorIs(t, err, window.ErrInvalidConfig)
}

func TestHistoryTable_MaterializesOnlyTheWindow(t *testing.T) {
	table := newTestTable(t)

	out := table.View()
	assert.Equal(t, window.Range{Start: 0, End: 30}, table.Range())
	assert.Equal(t, 30, table.Materialized())
	assert.Contains(t, out, "Record #0")
	assert.Contains(t, out, "Record #9")
	assert.NotContains(t, out, "Record #10 ")
	assert.Contains(t, out, "Rows 1-10 of 1,500")
	assert.Contains(t, out, "rendering [0, 30) (0 above, 1,470 below)")
}

func TestHistoryTable_EndAndHome(t *testing.T) {
	table := newTestTable(t)

	table.Update(runes("G"))
	assert.Equal(t, 1499, table.Cursor())
	assert.Equal(t, 1500*56-560, table.Offset())

	out := table.View()
	assert.Equal(t, window.Range{Start: 1480, End: 1500}, table.Range())
	assert.Equal(t, 20, table.Materialized())
	assert.Contains(t, out, "Record #1499")
	assert.Contains(t, out, "Rows 1,491-1,500 of 1,500")
	assert.Contains(t, out, "(1,480 above, 0 below)")

	table.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, table.Cursor())
	assert.Equal(t, 0, table.Offset())
}

func TestHistoryTable_CursorKeepsVisible(t *testing.T) {
	table := newTestTable(t)
	for i := 0; i < 12; i++ {
		table.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 12, table.Cursor())
	assert.Equal(t, 13*56-560, table.Offset())

	table.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 22, table.Cursor())

	row, ok := table.Selected()
	require.True(t, ok)
	assert.Equal(t, "Record #22", row.Name)
}

func TestHistoryTable_MouseWheel(t *testing.T) {
	table := newTestTable(t)
	table.Update(tea.MouseMsg{Type: tea.MouseWheelDown})
	assert.Equal(t, 3*56, table.Offset())
	assert.Equal(t, 3, table.Cursor(), "cursor follows the viewport")

	table.Update(tea.MouseMsg{Type: tea.MouseWheelUp})
	table.Update(tea.MouseMsg{Type: tea.MouseWheelUp})
	assert.Equal(t, 0, table.Offset())
}

func TestHistoryTable_Filter(t *testing.T) {
	table := newTestTable(t)
	table.Update(runes("G"))

	table.SetFilter("video")
	assert.Equal(t, 750, table.Len())
	assert.Equal(t, 0, table.Offset())
	assert.Equal(t, 0, table.Cursor())
	row, _ := table.Selected()
	assert.Equal(t, history.TypeVideo, row.Type)

	table.SetFilter("zzz")
	assert.Equal(t, 0, table.Len())
	out := table.View()
	assert.Contains(t, out, `No records match "zzz"`)
	assert.Equal(t, 0, table.Materialized())

	table.SetFilter("")
	assert.Equal(t, 1500, table.Len())
}

func TestHistoryTable_ResizeChangesGeometry(t *testing.T) {
	table := newTestTable(t)
	require.NoError(t, table.SetSize(100, 8))
	table.View()
	// 5 lines of 56 => viewport 280, visible 5 + 2*10.
	assert.Equal(t, window.Range{Start: 0, End: 25}, table.Range())

	require.NoError(t, table.SetSize(100, 1))
	table.View()
	assert.Equal(t, window.Range{Start: 0, End: 21}, table.Range())
}

func TestHistoryTable_ShrinkClampsOffset(t *testing.T) {
	table := newTestTable(t)
	table.Update(runes("G"))
	table.SetRows(history.Generate(20))
	assert.LessOrEqual(t, table.Offset(), 20*56-560)
	assert.Equal(t, 19, table.Cursor())
	table.View()
	r := table.Range()
	assert.LessOrEqual(t, r.End, 20)
}
