// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatconnect-tui/internal/history"
	"github.com/jeranaias/chatconnect-tui/internal/ui/styles"
	"github.com/jeranaias/chatconnect-tui/internal/util"
	"github.com/jeranaias/chatconnect-tui/internal/window"
)

// =============================================================================
// HISTORY TABLE COMPONENT
// =============================================================================

// TableKeyMap holds the history table's bindings.
type TableKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

// DefaultTableKeyMap returns the standard bindings.
func DefaultTableKeyMap() TableKeyMap {
	return TableKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	}
}

// wheelRows is how many rows one mouse wheel notch scrolls.
const wheelRows = 3

// chromeLines is the header (text + rule) plus the footer.
const chromeLines = 3

// HistoryTable renders call history through a window.View, so only the
// rows in the computed range are ever formatted.
type HistoryTable struct {
	view      *window.View[history.Row]
	all       []history.Row
	filter    string
	cursor    int
	width     int
	theme     *styles.Theme
	scrollbar *ScrollBar
	keys      TableKeyMap

	// materialized is the number of rows formatted by the last View.
	materialized int
}

// NewHistoryTable builds a table with the given geometry.
func NewHistoryTable(cfg window.Config, theme *styles.Theme) (*HistoryTable, error) {
	e, err := window.New(cfg)
	if err != nil {
		return nil, err
	}
	return &HistoryTable{
		view:      window.NewView[history.Row](e),
		width:     80,
		theme:     theme,
		scrollbar: NewScrollBar(theme),
		keys:      DefaultTableKeyMap(),
	}, nil
}

// SetTheme swaps the theme after a dark-mode toggle.
func (t *HistoryTable) SetTheme(theme *styles.Theme) {
	t.theme = theme
	t.scrollbar.theme = theme
}

// SetRows replaces the full row set and re-applies the current filter.
func (t *HistoryTable) SetRows(rows []history.Row) {
	t.all = rows
	t.apply()
}

// SetFilter narrows the rows to those matching q and scrolls to the top.
func (t *HistoryTable) SetFilter(q string) {
	if q == t.filter {
		return
	}
	t.filter = q
	t.apply()
	t.cursor = 0
	t.view.ScrollTo(0)
}

// Filter returns the active filter.
func (t *HistoryTable) Filter() string { return t.filter }

func (t *HistoryTable) apply() {
	t.view.Replace(history.Filter(t.all, t.filter))
	n := t.view.Len()
	t.cursor = clamp(t.cursor, 0, n-1)
	if t.view.Offset() > t.view.MaxOffset() {
		t.view.ScrollTo(t.view.MaxOffset())
	}
}

// SetSize fits the viewport to height terminal lines. One row occupies one
// line, so the engine's viewport height becomes lines*RowHeight.
func (t *HistoryTable) SetSize(width, height int) error {
	t.width = width
	lines := height - chromeLines
	if lines < 1 {
		lines = 1
	}
	cfg := t.view.Engine().Config()
	if cfg.ViewportHeight == lines*cfg.RowHeight {
		return nil
	}
	cfg.ViewportHeight = lines * cfg.RowHeight
	e, err := window.New(cfg)
	if err != nil {
		return err
	}
	t.view.SetEngine(e)
	t.view.ScrollToRow(t.cursor)
	return nil
}

// Len returns the number of rows after filtering.
func (t *HistoryTable) Len() int { return t.view.Len() }

// Cursor returns the selected row index.
func (t *HistoryTable) Cursor() int { return t.cursor }

// Selected returns the row under the cursor.
func (t *HistoryTable) Selected() (history.Row, bool) {
	return t.view.Store().At(t.cursor)
}

// Range is the currently materialized range.
func (t *HistoryTable) Range() window.Range { return t.view.Range() }

// Offset is the current scroll offset in virtual pixels.
func (t *HistoryTable) Offset() int { return t.view.Offset() }

// Materialized reports how many rows the last View formatted.
func (t *HistoryTable) Materialized() int { return t.materialized }

// pageRows is the number of rows that fit in the viewport.
func (t *HistoryTable) pageRows() int {
	cfg := t.view.Engine().Config()
	return (cfg.ViewportHeight + cfg.RowHeight - 1) / cfg.RowHeight
}

// MoveCursor moves the selection by delta rows and keeps it visible.
func (t *HistoryTable) MoveCursor(delta int) {
	n := t.view.Len()
	if n == 0 {
		return
	}
	t.cursor = clamp(t.cursor+delta, 0, n-1)
	t.view.ScrollToRow(t.cursor)
}

// ScrollLines scrolls by whole rows without moving the selection more than
// needed to keep it on screen.
func (t *HistoryTable) ScrollLines(rows int) {
	rh := t.view.Engine().Config().RowHeight
	t.view.ScrollBy(rows * rh)
	first := t.view.FirstVisible()
	if first < 0 {
		return
	}
	t.cursor = clamp(t.cursor, first, min(first+t.pageRows()-1, t.view.Len()-1))
}

// Update handles navigation keys and mouse wheel events.
func (t *HistoryTable) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, t.keys.Up):
			t.MoveCursor(-1)
		case key.Matches(msg, t.keys.Down):
			t.MoveCursor(1)
		case key.Matches(msg, t.keys.PageUp):
			t.MoveCursor(-t.pageRows())
		case key.Matches(msg, t.keys.PageDown):
			t.MoveCursor(t.pageRows())
		case key.Matches(msg, t.keys.Home):
			t.MoveCursor(-t.view.Len())
		case key.Matches(msg, t.keys.End):
			t.MoveCursor(t.view.Len())
		}
	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseWheelUp:
			t.ScrollLines(-wheelRows)
		case tea.MouseWheelDown:
			t.ScrollLines(wheelRows)
		}
	}
	return nil
}

// =============================================================================
// RENDERING
// =============================================================================

type column struct {
	title string
	width int
}

func (t *HistoryTable) columns() []column {
	cols := []column{
		{history.Header[0], 8},
		{history.Header[1], 0},
		{history.Header[2], 7},
		{history.Header[3], 9},
		{history.Header[4], 10},
	}
	// 1 col scrollbar, 2 cols between cells.
	fixed := 1 + 2*(len(cols)-1)
	for _, c := range cols {
		fixed += c.width
	}
	cols[1].width = max(t.width-fixed, 8)
	return cols
}

func (t *HistoryTable) formatRow(cols []column, r history.Row) string {
	cells := r.Columns()
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = util.PadRight(util.Truncate(cells[i], c.width), c.width)
	}
	switch r.Type {
	case history.TypeVoice:
		parts[2] = t.theme.BadgeVoice.Render(parts[2])
	case history.TypeVideo:
		parts[2] = t.theme.BadgeVideo.Render(parts[2])
	}
	return strings.Join(parts, "  ")
}

// View renders header, the visible rows with a scroll bar, and a footer.
func (t *HistoryTable) View() string {
	cols := t.columns()

	head := make([]string, len(cols))
	for i, c := range cols {
		head[i] = util.PadRight(c.title, c.width)
	}
	header := t.theme.TableHeader.Render(strings.Join(head, "  "))

	lines := t.pageRows()
	frame := t.view.Frame()
	t.materialized = len(frame.Rows)

	formatted := make([]string, len(frame.Rows))
	for i, r := range frame.Rows {
		formatted[i] = t.formatRow(cols, r)
	}

	first := t.view.FirstVisible()
	body := make([]string, lines)
	for line := 0; line < lines; line++ {
		idx := first + line
		if first < 0 || !frame.Range.Contains(idx) {
			continue
		}
		text := formatted[idx-frame.Range.Start]
		style := t.theme.TableRow
		switch {
		case idx == t.cursor:
			style = t.theme.TableSelected
		case idx%2 == 1:
			style = t.theme.TableRowAlt
		}
		body[line] = style.Render(text)
	}
	if t.view.Len() == 0 {
		body[0] = t.theme.EmptyState.Render(t.emptyText())
	}

	t.scrollbar.SetHeight(lines)
	if total := frame.TotalHeight; total > 0 {
		cfg := t.view.Engine().Config()
		t.scrollbar.SetContentRatio(float64(cfg.ViewportHeight) / float64(total))
		if m := t.view.MaxOffset(); m > 0 {
			t.scrollbar.SetPosition(float64(t.view.Offset()) / float64(m))
		} else {
			t.scrollbar.SetPosition(0)
		}
	} else {
		t.scrollbar.SetContentRatio(1)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(body, "\n"), t.scrollbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, content, t.footer(first, lines, frame))
}

func (t *HistoryTable) emptyText() string {
	if t.filter != "" {
		return fmt.Sprintf("No records match %q", t.filter)
	}
	return "No activity yet"
}

// footer reports the visible rows, the materialized range and how many rows
// the spacers above and below stand in for.
func (t *HistoryTable) footer(first, lines int, f window.Frame[history.Row]) string {
	n := t.view.Len()
	if n == 0 {
		return t.theme.Muted.Render("0 records")
	}
	last := min(first+lines, n)
	text := fmt.Sprintf("Rows %s-%s of %s  ·  rendering %s (%s above, %s below)",
		fmtNumber(first+1), fmtNumber(last), fmtNumber(n), f.Range,
		fmtNumber(f.OffsetTop/f.RowHeight), fmtNumber(f.BottomSpace()/f.RowHeight))
	if t.filter != "" {
		text += fmt.Sprintf("  ·  filter %q", t.filter)
	}
	return t.theme.Muted.Render(text)
}
