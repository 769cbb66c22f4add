// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the ChatConnect TUI.

# Color System (colors.go)

Indigo is the brand color. Emerald and Rose carry online/offline and
positive/negative trends, Amber carries warnings. Every color is a
lipgloss.AdaptiveColor with a Light and a Dark variant.

# Theme (theme.go)

NewTheme(dark) pins lipgloss to the requested background and builds every
style the UI uses. The Settings tab's dark-mode toggle rebuilds the theme:

	theme := styles.NewTheme(cfg.UI.DarkMode)

DetectDark asks termenv about the terminal background; it seeds the
dark_mode default on first run.

# Layout Modes

	LayoutNarrow  < 60 columns  (sidebar collapses to icons)
	LayoutMedium  60-100 columns
	LayoutWide    > 100 columns
*/
package styles
