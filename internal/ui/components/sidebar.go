// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatconnect-tui/internal/ui/styles"
)

// SidebarItem is one navigation entry.
type SidebarItem struct {
	Icon   string
	Label  string
	Hotkey string
	Danger bool
}

// Sidebar is the dashboard navigation column. Collapsed, it shows icons only.
type Sidebar struct {
	Items     []SidebarItem
	Active    int
	Collapsed bool
	Height    int
	theme     *styles.Theme
}

// NewSidebar creates a sidebar with items.
func NewSidebar(theme *styles.Theme, items []SidebarItem) *Sidebar {
	return &Sidebar{Items: items, theme: theme}
}

// SetTheme swaps the theme after a dark-mode toggle.
func (s *Sidebar) SetTheme(theme *styles.Theme) { s.theme = theme }

// Width is the rendered width including border and padding.
func (s *Sidebar) Width() int {
	if s.Collapsed {
		return 8
	}
	return 22
}

// View renders the sidebar.
func (s *Sidebar) View() string {
	inner := s.Width() - 3
	brand := s.theme.HeaderBrand.Render("ChatConnect")
	if s.Collapsed {
		brand = s.theme.HeaderBrand.Render("CC")
	}
	lines := []string{brand, ""}
	for i, it := range s.Items {
		text := it.Icon
		if !s.Collapsed {
			text += " " + it.Label
			if it.Hotkey != "" {
				text += strings.Repeat(" ", max(inner-lipgloss.Width(text)-len(it.Hotkey)-2, 1)) + it.Hotkey
			}
		}
		style := s.theme.SidebarItem
		switch {
		case i == s.Active:
			style = s.theme.SidebarActive
		case it.Danger:
			style = s.theme.SidebarDanger
		}
		lines = append(lines, style.Width(inner).Render(text))
	}
	st := s.theme.Sidebar.Width(s.Width() - 1)
	if s.Height > 0 {
		st = st.Height(max(s.Height-2, 1))
	}
	return st.Render(strings.Join(lines, "\n"))
}
