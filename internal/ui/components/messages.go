// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatconnect-tui/internal/model"
	"github.com/jeranaias/chatconnect-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE PANE - Scrollable conversation
// =============================================================================

// MessagePane shows one conversation in a bubbles viewport. It sticks to
// the bottom unless the user has scrolled up.
type MessagePane struct {
	viewport viewport.Model
	messages []model.Message
	me       model.ID
	markdown *MarkdownRenderer
	theme    *styles.Theme
	width    int
	height   int
}

// NewMessagePane creates an empty pane.
func NewMessagePane(theme *styles.Theme, md *MarkdownRenderer) *MessagePane {
	vp := viewport.New(60, 10)
	vp.Style = lipgloss.NewStyle()
	return &MessagePane{
		viewport: vp,
		markdown: md,
		theme:    theme,
		width:    60,
		height:   10,
	}
}

// SetTheme swaps the theme after a dark-mode toggle.
func (p *MessagePane) SetTheme(theme *styles.Theme) {
	p.theme = theme
	p.refresh(p.viewport.AtBottom())
}

// SetSize updates the pane dimensions.
func (p *MessagePane) SetSize(width, height int) {
	p.width = max(width, 10)
	p.height = max(height, 1)
	p.viewport.Width = p.width
	p.viewport.Height = p.height
	p.refresh(true)
}

// SetMessages replaces the conversation. me is the signed-in user.
func (p *MessagePane) SetMessages(msgs []model.Message, me model.ID) {
	p.messages = msgs
	p.me = me
	p.refresh(true)
}

// Append adds one message and follows it if the pane was at the bottom.
func (p *MessagePane) Append(m model.Message) {
	follow := p.viewport.AtBottom()
	p.messages = append(p.messages, m)
	p.refresh(follow)
}

// Len returns the number of messages shown.
func (p *MessagePane) Len() int { return len(p.messages) }

// AtBottom reports whether the newest message is in view.
func (p *MessagePane) AtBottom() bool { return p.viewport.AtBottom() }

func (p *MessagePane) refresh(toBottom bool) {
	p.viewport.SetContent(p.render())
	if toBottom {
		p.viewport.GotoBottom()
	}
}

func (p *MessagePane) render() string {
	if len(p.messages) == 0 {
		return p.theme.EmptyState.Render("No messages yet. Say hello!")
	}
	bubbleW := max(p.width*3/4, 10)
	blocks := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		mine := m.FromMe(p.me)
		text := p.markdown.Render(m.Text, bubbleW-2, p.theme.IsDark)

		style := p.theme.TheirsBubble
		align := lipgloss.Left
		if mine {
			style = p.theme.MineBubble
			align = lipgloss.Right
		}
		bubble := style.MaxWidth(bubbleW).Render(lipgloss.NewStyle().Width(min(bubbleW-2, lipgloss.Width(text))).Render(text))
		stamp := p.theme.Timestamp.Render(model.FormatTime(m.Timestamp))
		block := lipgloss.JoinVertical(align, bubble, stamp)
		blocks = append(blocks, lipgloss.PlaceHorizontal(p.width, align, block))
	}
	return strings.Join(blocks, "\n")
}

// Update forwards scrolling keys and mouse events to the viewport.
func (p *MessagePane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// View renders the pane.
func (p *MessagePane) View() string {
	return p.viewport.View()
}
