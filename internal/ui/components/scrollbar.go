// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/chatconnect-tui/internal/ui/styles"
)

// =============================================================================
// SCROLL BAR COMPONENT
// =============================================================================

// ScrollBar represents a vertical scroll bar.
type ScrollBar struct {
	Height       int
	ScrollPos    float64 // 0.0 to 1.0
	ContentRatio float64 // visible / total
	theme        *styles.Theme
}

// NewScrollBar creates a new ScrollBar.
func NewScrollBar(theme *styles.Theme) *ScrollBar {
	return &ScrollBar{
		Height:       10,
		ContentRatio: 1.0,
		theme:        theme,
	}
}

// SetHeight sets the scroll bar height in lines.
func (sb *ScrollBar) SetHeight(height int) {
	sb.Height = height
}

// SetPosition sets the scroll position (0.0 to 1.0).
func (sb *ScrollBar) SetPosition(pos float64) {
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	sb.ScrollPos = pos
}

// SetContentRatio sets the visible/total content ratio.
func (sb *ScrollBar) SetContentRatio(ratio float64) {
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	sb.ContentRatio = ratio
}

// Thumb returns the thumb's first line and size.
func (sb *ScrollBar) Thumb() (pos, size int) {
	size = int(float64(sb.Height) * sb.ContentRatio)
	if size < 1 {
		size = 1
	}
	if size > sb.Height {
		size = sb.Height
	}
	track := sb.Height - size
	pos = clamp(int(float64(track)*sb.ScrollPos+0.5), 0, track)
	return pos, size
}

// View renders the scroll bar, one character per line.
func (sb *ScrollBar) View() string {
	if sb.Height <= 0 {
		return ""
	}
	if sb.ContentRatio >= 1.0 {
		return sb.theme.ScrollTrack.Render(strings.TrimSuffix(strings.Repeat("│\n", sb.Height), "\n"))
	}

	pos, size := sb.Thumb()
	var b strings.Builder
	for i := 0; i < sb.Height; i++ {
		if i >= pos && i < pos+size {
			b.WriteString(sb.theme.ScrollThumb.Render("┃"))
		} else {
			b.WriteString(sb.theme.ScrollTrack.Render("│"))
		}
		if i < sb.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
