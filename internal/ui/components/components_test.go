// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatconnect-tui/internal/analytics"
	"github.com/jeranaias/chatconnect-tui/internal/model"
	"github.com/jeranaias/chatconnect-tui/internal/ui/styles"
)

func TestFmtNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12847, "12,847"},
		{1234567, "1,234,567"},
		{-1500, "-1,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fmtNumber(tt.in))
	}
	assert.Equal(t, "66.7%", fmtPercent(2.0/3))
}

func TestScrollBar_Thumb(t *testing.T) {
	sb := NewScrollBar(styles.NewTheme(true))
	sb.SetHeight(10)
	sb.SetContentRatio(0.2)

	sb.SetPosition(0)
	pos, size := sb.Thumb()
	assert.Equal(t, 0, pos)
	assert.Equal(t, 2, size)

	sb.SetPosition(1)
	pos, _ = sb.Thumb()
	assert.Equal(t, 8, pos)

	sb.SetContentRatio(0.0001)
	_, size = sb.Thumb()
	assert.Equal(t, 1, size)

	assert.Equal(t, 10, strings.Count(sb.View(), "\n")+1)
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁▃▅█", Sparkline([]float64{400, 600, 800, 1000}))
	assert.Equal(t, "██", Sparkline([]float64{5, 5}))
	assert.Equal(t, "", Sparkline(nil))
}

func TestBarLen(t *testing.T) {
	assert.Equal(t, 20, barLen(5000, 5000, 20))
	assert.Equal(t, 5, barLen(1200, 5000, 20))
	assert.Equal(t, 0, barLen(10, 0, 20))
	assert.Equal(t, 0, barLen(-1, 10, 20))
}

func TestRenderAnalytics(t *testing.T) {
	theme := styles.NewTheme(true)
	out := RenderAnalytics(analytics.Sample(analytics.Last30Days), 120, theme)
	for _, want := range []string{"Last 30 Days", "892", "324", "4.8", "MONTHLY MESSAGE VOLUME", "Direct", "Empathy"} {
		assert.Contains(t, out, want)
	}
	narrow := RenderAnalytics(analytics.Sample(analytics.Last7Days), 40, theme)
	assert.Contains(t, narrow, "1,000")
}

func TestContactList(t *testing.T) {
	l := NewContactList(styles.NewTheme(true))
	l.SetSize(30, 6)
	assert.Contains(t, l.View(), "No connections yet")

	l.SetLoading(true)
	assert.Contains(t, l.View(), "Loading connections")

	contacts := []model.Contact{
		{ID: "1", FullName: "Ada Lovelace", Status: model.StatusOnline},
		{ID: "2", FullName: "Grace Hopper"},
		{ID: "3", FullName: "Alan Turing", LastMessage: "hi"},
		{ID: "4", FullName: "Edsger Dijkstra"},
	}
	l.SetContacts(contacts, "")
	l.Move(2)
	c, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, model.ID("3"), c.ID)

	// Selection follows the contact across a refresh.
	l.SetContacts([]model.Contact{contacts[2], contacts[0]}, "a")
	c, _ = l.Selected()
	assert.Equal(t, model.ID("3"), c.ID)

	l.SetPreview("3", "see you")
	l.SetPresence("1", "")
	out := l.View()
	assert.Contains(t, out, "see you")
	assert.Contains(t, out, "AT")

	assert.False(t, l.Select("99"))
	// The empty state wraps to the list width.
	l.SetContacts(nil, "zed")
	assert.Contains(t, flat(l.View()), `No connections found matching "zed"`)
}

// flat collapses the line breaks and padding lipgloss adds when wrapping.
func flat(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestMessagePane(t *testing.T) {
	p := NewMessagePane(styles.NewTheme(true), NewMarkdownRenderer(false))
	p.SetSize(60, 10)
	assert.Contains(t, p.View(), "No messages yet")

	now := time.Date(2025, 3, 1, 14, 5, 0, 0, time.Local)
	p.SetMessages([]model.Message{
		{ID: "a", Text: "hello there", SenderID: "me", ReceiverID: "you", Timestamp: now},
		{ID: "b", Text: "general kenobi", SenderID: "you", ReceiverID: "me"},
	}, "me")
	out := p.View()
	assert.Contains(t, out, "hello there")
	assert.Contains(t, out, "14:05")
	assert.Contains(t, out, "--:--")
	assert.True(t, p.AtBottom())

	p.Append(model.Message{ID: "c", Text: "new", SenderID: "you"})
	assert.Equal(t, 3, p.Len())
	assert.Contains(t, p.View(), "new")
}

func TestMarkdownRenderer_PassThrough(t *testing.T) {
	md := NewMarkdownRenderer(true)
	assert.Equal(t, "plain words", md.Render("plain words", 40, true))

	md.SetEnabled(false)
	assert.Equal(t, "**bold**", md.Render("**bold**", 40, true))

	md.SetEnabled(true)
	out := md.Render("**bold**", 40, true)
	assert.Contains(t, out, "bold")
	assert.NotContains(t, out, "**")
}

func TestStatusBar(t *testing.T) {
	s := NewStatusBar(styles.NewTheme(true))
	s.Width = 100
	s.User = "Ada"
	s.Role = "Student"
	s.Connection = Online
	s.Session = "Idle logout in 5m00s"
	s.Hint = "? help"
	out := s.View()
	assert.Contains(t, out, "Online")
	assert.Contains(t, out, "Ada (Student)")
	assert.Contains(t, out, "? help")

	s.Width = 30
	out = s.View()
	assert.NotContains(t, out, "? help")
	assert.Equal(t, "Offline", Offline.String())
}

func TestSidebar(t *testing.T) {
	sb := NewSidebar(styles.NewTheme(true), []SidebarItem{
		{Icon: "#", Label: "Chat", Hotkey: "1"},
		{Icon: "x", Label: "Logout", Danger: true},
	})
	assert.Contains(t, sb.View(), "Chat")
	sb.Collapsed = true
	assert.NotContains(t, sb.View(), "Chat")
	assert.Equal(t, 8, sb.Width())
}
