// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the ChatConnect TUI.
// All colors use Lip Gloss AdaptiveColor so one palette serves light and
// dark terminals.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// LAYOUT
	// ==========================================================================

	App         lipgloss.Style
	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	HeaderUser  lipgloss.Style
	Pane        lipgloss.Style
	PaneTitle   lipgloss.Style

	// ==========================================================================
	// SIDEBAR AND TABS
	// ==========================================================================

	Sidebar       lipgloss.Style
	SidebarItem   lipgloss.Style
	SidebarActive lipgloss.Style
	SidebarDanger lipgloss.Style

	// ==========================================================================
	// STATUS BAR
	// ==========================================================================

	StatusBar     lipgloss.Style
	StatusOnline  lipgloss.Style
	StatusOffline lipgloss.Style
	StatusWarning lipgloss.Style
	StatusHint    lipgloss.Style

	// ==========================================================================
	// HISTORY TABLE
	// ==========================================================================

	TableHeader   lipgloss.Style
	TableRow      lipgloss.Style
	TableRowAlt   lipgloss.Style
	TableSelected lipgloss.Style
	ScrollTrack   lipgloss.Style
	ScrollThumb   lipgloss.Style
	BadgeVoice    lipgloss.Style
	BadgeVideo    lipgloss.Style

	// ==========================================================================
	// CHAT
	// ==========================================================================

	Contact         lipgloss.Style
	ContactSelected lipgloss.Style
	Avatar          lipgloss.Style
	MineBubble      lipgloss.Style
	TheirsBubble    lipgloss.Style
	Timestamp       lipgloss.Style
	EmptyState      lipgloss.Style

	// ==========================================================================
	// FORMS
	// ==========================================================================

	Label        lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	FieldError   lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	ErrorBanner  lipgloss.Style
	SuccessText  lipgloss.Style
	ToggleOn     lipgloss.Style
	ToggleOff    lipgloss.Style

	// ==========================================================================
	// ANALYTICS
	// ==========================================================================

	Card      lipgloss.Style
	CardTitle lipgloss.Style
	CardValue lipgloss.Style
	TrendUp   lipgloss.Style
	TrendDown lipgloss.Style
	ChartAxis lipgloss.Style

	Muted lipgloss.Style
	Bold  lipgloss.Style
}

// DetectDark reports whether the terminal has a dark background.
func DetectDark() bool {
	return termenv.HasDarkBackground()
}

// NewTheme creates a theme for the given background. AdaptiveColors follow
// the choice, so toggling dark mode is a matter of building a new theme.
func NewTheme(dark bool) *Theme {
	colorProfile := termenv.ColorProfile()
	lipgloss.SetHasDarkBackground(dark)

	t := &Theme{
		IsDark:       dark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Foreground(TextPrimary)

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextPrimary).
		Padding(0, 1)
	t.HeaderBrand = lipgloss.NewStyle().Bold(true).Foreground(Indigo)
	t.HeaderUser = lipgloss.NewStyle().Foreground(TextSecondary)

	t.Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.PaneTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary).MarginBottom(1)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		Padding(1, 1)
	t.SidebarItem = lipgloss.NewStyle().Foreground(TextSecondary).Padding(0, 1)
	t.SidebarActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 1)
	t.SidebarDanger = lipgloss.NewStyle().Foreground(Rose).Padding(0, 1)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.StatusOnline = lipgloss.NewStyle().Bold(true).Foreground(Emerald)
	t.StatusOffline = lipgloss.NewStyle().Bold(true).Foreground(Rose)
	t.StatusWarning = lipgloss.NewStyle().Bold(true).Foreground(Amber)
	t.StatusHint = lipgloss.NewStyle().Foreground(TextMuted)

	// History table
	t.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)
	t.TableRow = lipgloss.NewStyle().Foreground(TextPrimary)
	t.TableRowAlt = lipgloss.NewStyle().Foreground(TextPrimary).Background(SurfaceBright)
	t.TableSelected = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary).Background(SelectionBg)
	t.ScrollTrack = lipgloss.NewStyle().Foreground(Overlay)
	t.ScrollThumb = lipgloss.NewStyle().Foreground(Indigo)
	t.BadgeVoice = lipgloss.NewStyle().Foreground(Emerald)
	t.BadgeVideo = lipgloss.NewStyle().Foreground(Purple)

	// Chat
	t.Contact = lipgloss.NewStyle().Foreground(TextPrimary).Padding(0, 1)
	t.ContactSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true).
		Padding(0, 1)
	t.Avatar = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Indigo).
		Width(4).
		Align(lipgloss.Center)
	t.MineBubble = lipgloss.NewStyle().
		Foreground(MineBubbleFg).
		Background(MineBubbleBg).
		Padding(0, 1).
		MarginLeft(4)
	t.TheirsBubble = lipgloss.NewStyle().
		Foreground(TheirsBubbleFg).
		Background(TheirsBubbleBg).
		Padding(0, 1).
		MarginRight(4)
	t.Timestamp = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.EmptyState = lipgloss.NewStyle().Foreground(TextMuted).Italic(true).Padding(1, 2)

	// Forms
	t.Label = lipgloss.NewStyle().Bold(true).Foreground(TextSecondary)
	t.Input = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputFocused = t.Input.BorderForeground(Indigo)
	t.FieldError = lipgloss.NewStyle().Foreground(Rose)
	t.Button = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceBright).
		Padding(0, 2)
	t.ButtonActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 2)
	t.ErrorBanner = lipgloss.NewStyle().
		Foreground(Rose).
		Background(RoseDeep).
		Padding(0, 1)
	t.SuccessText = lipgloss.NewStyle().Foreground(Emerald)
	t.ToggleOn = lipgloss.NewStyle().Bold(true).Foreground(Emerald)
	t.ToggleOff = lipgloss.NewStyle().Foreground(TextMuted)

	// Analytics
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1).
		Width(18)
	t.CardTitle = lipgloss.NewStyle().Bold(true).Foreground(TextMuted)
	t.CardValue = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.TrendUp = lipgloss.NewStyle().Foreground(Emerald)
	t.TrendDown = lipgloss.NewStyle().Foreground(Rose)
	t.ChartAxis = lipgloss.NewStyle().Foreground(TextSecondary)

	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
	t.Bold = lipgloss.NewStyle().Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
