// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// BRAND COLORS
// =============================================================================

// Indigo - Brand color, active tab, primary buttons
var Indigo = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}

// IndigoDeep - Backgrounds behind brand text
var IndigoDeep = lipgloss.AdaptiveColor{Light: "#EEF2FF", Dark: "#312E81"}

// Purple - Video calls, secondary accent
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Info, links
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Emerald - Online, success, positive trend
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Errors, offline, negative trend
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// RoseDeep - Error banner background
var RoseDeep = lipgloss.AdaptiveColor{Light: "#FFE4E6", Dark: "#881337"}

// Amber - Warnings, idle-logout countdown
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Orange - Satisfaction, metric bars
var Orange = lipgloss.AdaptiveColor{Light: "#EA580C", Dark: "#FB923C"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Sidebar, header and status bar
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F8FAFC", Dark: "#181825"}

// SurfaceBright - Alternate table rows, cards
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#F1F5F9", Dark: "#313244"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E2E8F0", Dark: "#45475A"}

// =============================================================================
// TEXT COLORS
// =============================================================================

var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// Outgoing messages
var MineBubbleBg = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#4338CA"}
var MineBubbleFg = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#E0E7FF"}

// Incoming messages
var TheirsBubbleBg = lipgloss.AdaptiveColor{Light: "#F1F5F9", Dark: "#313244"}
var TheirsBubbleFg = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// SelectionBg highlights the cursor row and selected contact.
var SelectionBg = lipgloss.AdaptiveColor{Light: "#E0E7FF", Dark: "#1E3A5F"}

// ChartPalette colours chart series in order.
var ChartPalette = []lipgloss.AdaptiveColor{Indigo, Emerald, Amber, Purple, Orange, Cyan}

// ChartColor returns the palette color for index i, wrapping around.
func ChartColor(i int) lipgloss.AdaptiveColor {
	if i < 0 {
		i = -i
	}
	return ChartPalette[i%len(ChartPalette)]
}

// =============================================================================
// ACCESSIBILITY: Shapes alongside colors
// =============================================================================

// StatusIndicatorSet contains text indicators for status states.
type StatusIndicatorSet struct {
	Online  string
	Offline string
	Error   string
	Success string
	Warning string
	Pending string
}

// StatusIndicators are ASCII so they survive any terminal font.
var StatusIndicators = StatusIndicatorSet{
	Online:  "[*]",
	Offline: "[ ]",
	Error:   "[X]",
	Success: "[OK]",
	Warning: "[!]",
	Pending: "[..]",
}
