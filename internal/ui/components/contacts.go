// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatconnect-tui/internal/model"
	"github.com/jeranaias/chatconnect-tui/internal/ui/styles"
	"github.com/jeranaias/chatconnect-tui/internal/util"
)

// =============================================================================
// CONTACT LIST
// =============================================================================

// ContactList is the selectable list of connections on the Chat tab.
type ContactList struct {
	contacts []model.Contact
	cursor   int
	top      int
	query    string
	loading  bool
	width    int
	height   int
	theme    *styles.Theme
}

// NewContactList creates an empty list.
func NewContactList(theme *styles.Theme) *ContactList {
	return &ContactList{theme: theme, width: 30, height: 10}
}

// SetTheme swaps the theme after a dark-mode toggle.
func (l *ContactList) SetTheme(theme *styles.Theme) { l.theme = theme }

// SetSize updates the list dimensions.
func (l *ContactList) SetSize(width, height int) {
	l.width = width
	l.height = max(height, 2)
	l.ensureVisible()
}

// SetContacts replaces the list, keeping the selection on the same contact
// when it is still present. query is shown in the empty state.
func (l *ContactList) SetContacts(contacts []model.Contact, query string) {
	var keep model.ID
	if c, ok := l.Selected(); ok {
		keep = c.ID
	}
	l.contacts = contacts
	l.query = query
	l.loading = false
	l.cursor = 0
	if i := model.IndexOf(contacts, keep); i >= 0 {
		l.cursor = i
	}
	l.ensureVisible()
}

// SetLoading shows a loading line instead of the empty state.
func (l *ContactList) SetLoading(on bool) { l.loading = on }

// Contacts returns the listed contacts.
func (l *ContactList) Contacts() []model.Contact { return l.contacts }

// Selected returns the contact under the cursor.
func (l *ContactList) Selected() (model.Contact, bool) {
	if l.cursor < 0 || l.cursor >= len(l.contacts) {
		return model.Contact{}, false
	}
	return l.contacts[l.cursor], true
}

// Select moves the cursor to the contact with id.
func (l *ContactList) Select(id model.ID) bool {
	i := model.IndexOf(l.contacts, id)
	if i < 0 {
		return false
	}
	l.cursor = i
	l.ensureVisible()
	return true
}

// Move moves the cursor by delta.
func (l *ContactList) Move(delta int) {
	if len(l.contacts) == 0 {
		return
	}
	l.cursor = clamp(l.cursor+delta, 0, len(l.contacts)-1)
	l.ensureVisible()
}

// SetPresence updates one contact's status, e.g. from a realtime event.
func (l *ContactList) SetPresence(id model.ID, status string) {
	if i := model.IndexOf(l.contacts, id); i >= 0 {
		l.contacts[i].Status = status
	}
}

// SetPreview updates one contact's last-message line.
func (l *ContactList) SetPreview(id model.ID, text string) {
	if i := model.IndexOf(l.contacts, id); i >= 0 {
		l.contacts[i].LastMessage = text
	}
}

// Each contact takes two lines.
func (l *ContactList) perPage() int { return max(l.height/2, 1) }

func (l *ContactList) ensureVisible() {
	page := l.perPage()
	if l.cursor < l.top {
		l.top = l.cursor
	}
	if l.cursor >= l.top+page {
		l.top = l.cursor - page + 1
	}
	l.top = clamp(l.top, 0, max(len(l.contacts)-page, 0))
}

// View renders the visible contacts.
func (l *ContactList) View() string {
	if len(l.contacts) == 0 {
		msg := "No connections yet"
		switch {
		case l.loading:
			msg = "Loading connections..."
		case l.query != "":
			msg = fmt.Sprintf("No connections found matching %q", l.query)
		}
		return l.theme.EmptyState.Width(l.width).Render(msg)
	}

	textW := max(l.width-8, 4)
	end := min(l.top+l.perPage(), len(l.contacts))
	rows := make([]string, 0, end-l.top)
	for i := l.top; i < end; i++ {
		c := l.contacts[i]
		dot := l.theme.StatusOffline.Render("○")
		if c.Online() {
			dot = l.theme.StatusOnline.Render("●")
		}
		name := util.Truncate(c.FullName, textW)
		preview := l.theme.Muted.Render(util.Truncate(c.Preview(), textW))
		body := lipgloss.JoinVertical(lipgloss.Left, name+" "+dot, preview)
		row := lipgloss.JoinHorizontal(lipgloss.Top, l.theme.Avatar.Render(c.Initials()), " ", body)

		style := l.theme.Contact
		if i == l.cursor {
			style = l.theme.ContactSelected
		}
		rows = append(rows, style.Width(l.width).Render(row))
	}
	return strings.Join(rows, "\n")
}
