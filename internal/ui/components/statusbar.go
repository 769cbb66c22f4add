// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatconnect-tui/internal/ui/styles"
	"github.com/jeranaias/chatconnect-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Connection is the realtime channel state shown in the status bar.
type Connection int

const (
	Offline Connection = iota
	Connecting
	Online
)

// String returns the display text.
func (c Connection) String() string {
	switch c {
	case Online:
		return "Online"
	case Connecting:
		return "Connecting..."
	default:
		return "Offline"
	}
}

// StatusBar is the bottom line of the dashboard.
type StatusBar struct {
	Width      int
	User       string
	Role       string
	Connection Connection
	Session    string
	Warning    string
	Notice     string
	Hint       string
	theme      *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme, Width: 80}
}

// SetTheme swaps the theme after a dark-mode toggle.
func (s *StatusBar) SetTheme(theme *styles.Theme) { s.theme = theme }

// View renders left (presence, user) and right (notice, session, hint)
// segments, dropping right-hand segments that do not fit.
func (s *StatusBar) View() string {
	var conn string
	switch s.Connection {
	case Online:
		conn = s.theme.StatusOnline.Render(styles.StatusIndicators.Online + " " + s.Connection.String())
	case Connecting:
		conn = s.theme.StatusWarning.Render(styles.StatusIndicators.Pending + " " + s.Connection.String())
	default:
		conn = s.theme.StatusOffline.Render(styles.StatusIndicators.Offline + " " + s.Connection.String())
	}
	left := []string{conn}
	if s.User != "" {
		who := s.User
		if s.Role != "" {
			who += " (" + s.Role + ")"
		}
		left = append(left, who)
	}

	var right []string
	switch {
	case s.Warning != "":
		right = append(right, s.theme.StatusWarning.Render(styles.StatusIndicators.Warning+" "+s.Warning))
	case s.Notice != "":
		right = append(right, s.theme.SuccessText.Render(s.Notice))
	}
	if s.Session != "" {
		right = append(right, s.Session)
	}
	if s.Hint != "" {
		right = append(right, s.theme.StatusHint.Render(s.Hint))
	}

	inner := max(s.Width-2, 10)
	l := strings.Join(left, "  ")
	for len(right) > 0 {
		r := strings.Join(right, "  ")
		if lipgloss.Width(l)+lipgloss.Width(r)+1 <= inner {
			gap := inner - lipgloss.Width(l) - lipgloss.Width(r)
			return s.theme.StatusBar.Width(s.Width).Render(l + strings.Repeat(" ", gap) + r)
		}
		right = right[:len(right)-1]
	}
	return s.theme.StatusBar.Width(s.Width).Render(util.Truncate(l, inner))
}
