// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTheme_DarkFlag(t *testing.T) {
	for _, dark := range []bool{true, false} {
		theme := NewTheme(dark)
		require.NotNil(t, theme)
		assert.Equal(t, dark, theme.IsDark)
		assert.Equal(t, dark, lipgloss.HasDarkBackground())
	}
}

func TestTheme_StylesInitialized(t *testing.T) {
	theme := NewTheme(true)

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"Sidebar", theme.Sidebar},
		{"StatusBar", theme.StatusBar},
		{"TableHeader", theme.TableHeader},
		{"MineBubble", theme.MineBubble},
		{"Input", theme.Input},
		{"Card", theme.Card},
	}
	for _, s := range styles {
		assert.Contains(t, s.style.Render("test"), "test", s.name)
	}
}

func TestTheme_LayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}
	theme := NewTheme(true)
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		assert.Equal(t, tt.want, theme.GetLayoutMode(), "width %d", tt.width)
	}
}

func TestChartColor_Wraps(t *testing.T) {
	n := len(ChartPalette)
	assert.Equal(t, ChartPalette[0], ChartColor(0))
	assert.Equal(t, ChartPalette[1], ChartColor(n+1))
	assert.Equal(t, ChartPalette[2], ChartColor(-2))
}

func TestAdaptiveColors_HaveBothVariants(t *testing.T) {
	colors := map[string]lipgloss.AdaptiveColor{
		"Indigo": Indigo, "Emerald": Emerald, "Rose": Rose, "Amber": Amber,
		"Surface": Surface, "TextPrimary": TextPrimary, "SelectionBg": SelectionBg,
	}
	for name, c := range colors {
		assert.NotEmpty(t, c.Light, name)
		assert.NotEmpty(t, c.Dark, name)
		assert.NotEqual(t, c.Light, c.Dark, name)
	}
}
