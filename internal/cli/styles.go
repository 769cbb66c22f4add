// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared output styles for chatconnect commands.
//
// Colors come from the TUI palette and are disabled for non-TTY output and
// when NO_COLOR is set.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatconnect-tui/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	// TitleStyle is used for command titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Indigo).MarginBottom(1)

	// LabelStyle left-aligns field labels.
	LabelStyle = lipgloss.NewStyle().Foreground(styles.TextMuted).Width(16)

	ValueStyle   = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	SuccessStyle = lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(styles.Amber)
	DimStyle     = lipgloss.NewStyle().Foreground(styles.TextMuted)
)

// RenderSeparator renders a horizontal rule, 60 columns unless given.
func RenderSeparator(width ...int) string {
	w := 60
	if len(width) > 0 && width[0] > 0 {
		w = width[0]
	}
	return DimStyle.Render(strings.Repeat("─", w))
}

// RenderField renders "label  value" with an aligned label.
func RenderField(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}
