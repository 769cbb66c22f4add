// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders chat text with glamour. Renderers are built
// lazily per (width, dark) pair and cached.
type MarkdownRenderer struct {
	mu        sync.Mutex
	renderers map[markdownKey]*glamour.TermRenderer
	enabled   bool
}

type markdownKey struct {
	width int
	dark  bool
}

// NewMarkdownRenderer returns a renderer. When enabled is false text is
// passed through untouched.
func NewMarkdownRenderer(enabled bool) *MarkdownRenderer {
	return &MarkdownRenderer{
		renderers: make(map[markdownKey]*glamour.TermRenderer),
		enabled:   enabled,
	}
}

// SetEnabled toggles markdown rendering.
func (m *MarkdownRenderer) SetEnabled(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = on
}

// Render formats text for width columns. Any glamour failure falls back to
// the raw text.
func (m *MarkdownRenderer) Render(text string, width int, dark bool) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled || !looksLikeMarkdown(text) {
		return text
	}
	k := markdownKey{width: max(width, 10), dark: dark}
	r, ok := m.renderers[k]
	if !ok {
		style := "light"
		if dark {
			style = "dark"
		}
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(k.width),
		)
		if err != nil {
			return text
		}
		m.renderers[k] = r
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// looksLikeMarkdown skips glamour for plain one-liners, which it would
// otherwise pad with margins.
func looksLikeMarkdown(s string) bool {
	return strings.ContainsAny(s, "*_`#>[") || strings.Contains(s, "\n")
}
