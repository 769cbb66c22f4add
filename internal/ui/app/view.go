// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatconnect-tui/internal/analytics"
	"github.com/jeranaias/chatconnect-tui/internal/model"
	"github.com/jeranaias/chatconnect-tui/internal/ui/components"
	"github.com/jeranaias/chatconnect-tui/internal/ui/styles"
	"github.com/jeranaias/chatconnect-tui/internal/util"
)

// View renders the current screen.
func (m Model) View() string {
	if m.screen == ScreenAuth {
		return m.form.view(m.theme, m.width, m.height)
	}

	contentW, contentH := m.contentSize()

	var content string
	switch m.tab {
	case TabChat:
		content = m.chatView(contentW, contentH)
	case TabHistory:
		content = m.historyView(contentW)
	case TabProfile:
		content = m.profileView(contentW)
	case TabSettings:
		content = m.settingsView(contentW)
	case TabAnalytics:
		content = components.RenderAnalytics(analytics.Sample(m.reportRange), contentW, m.theme)
	}
	content = lipgloss.NewStyle().Width(contentW).Height(contentH).MaxHeight(contentH).Render(content)

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), content)
	parts := []string{body}
	if m.showHelp {
		h := m.help
		h.ShowAll = true
		parts = append(parts, h.View(m.keys))
	}
	parts = append(parts, m.statusView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) statusView() string {
	s := *m.status
	s.User, s.Role = "", ""
	if m.session != nil {
		s.User = m.session.User.FullName
		s.Role = m.session.User.Role.Label()
	}
	s.Connection = m.conn
	s.Warning = m.sessionWarning
	s.Notice = ""
	if m.notice != "" {
		if m.noticeWarn && s.Warning == "" {
			s.Warning = m.notice
		} else {
			s.Notice = m.notice
		}
	}
	s.Session = m.activity.Status()
	s.Hint = "? help"
	return s.View()
}

// =============================================================================
// CHAT
// =============================================================================

func (m Model) chatView(width, height int) string {
	cw := m.contactsWidth()
	search := m.theme.Input.Width(cw - 2).Render(m.search.View())
	left := lipgloss.JoinVertical(lipgloss.Left, search, m.contacts.View())
	left = lipgloss.NewStyle().Width(cw).Height(height).Render(left)

	paneW := max(width-cw-1, 10)
	right := m.conversationView(paneW, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m Model) conversationView(width, height int) string {
	idx := model.IndexOf(m.contacts.Contacts(), m.current)
	if m.current == "" {
		empty := lipgloss.JoinVertical(lipgloss.Center,
			m.theme.PaneTitle.Render("Who do you want to chat with?"),
			m.theme.Muted.Render("Select an active connection to start messaging or search for new ones."),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			m.theme.EmptyState.Width(min(width, 60)).Render(empty))
	}

	name, presence := string(m.current), "Offline"
	dot := m.theme.StatusOffline.Render("○")
	if idx >= 0 {
		c := m.contacts.Contacts()[idx]
		name = c.FullName
		if c.Online() {
			presence = "Online"
			dot = m.theme.StatusOnline.Render("●")
		}
	}
	header := m.theme.Header.Width(width).Render(
		m.theme.Bold.Render(util.Truncate(name, width-12)) + "  " + dot + " " + m.theme.Muted.Render(presence))

	box := m.theme.Input
	if m.focus == focusCompose {
		box = m.theme.InputFocused
	}
	compose := box.Width(width - 2).Render(m.compose.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, m.pane.View(), compose)
}

// =============================================================================
// HISTORY
// =============================================================================

func (m Model) historyView(width int) string {
	title := m.theme.PaneTitle.Render("Call & Message History")
	if m.historyErr != "" {
		return lipgloss.JoinVertical(lipgloss.Left, title, "",
			m.theme.ErrorBanner.Render(styles.StatusIndicators.Error+" "+m.historyErr),
			m.theme.Muted.Render("Press r to retry."))
	}
	if !m.historyLoaded {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", m.theme.Muted.Render("Loading history..."))
	}
	box := m.theme.Input
	if m.focus == focusHistoryFilter {
		box = m.theme.InputFocused
	}
	filter := box.Width(min(width-2, 48)).Render(m.historyFilter.View())
	return lipgloss.JoinVertical(lipgloss.Left, title, filter, m.table.View())
}

// =============================================================================
// PROFILE
// =============================================================================

func (m Model) profileView(width int) string {
	if m.session == nil {
		return ""
	}
	u := m.session.User
	avatar := m.theme.Avatar.Render(" " + u.Initials() + " ")
	head := lipgloss.JoinHorizontal(lipgloss.Center, avatar, "  ",
		lipgloss.JoinVertical(lipgloss.Left,
			m.theme.Bold.Render(u.FullName),
			m.theme.Muted.Render(u.Email),
			m.theme.Muted.Render(u.Role.Label()),
		))

	lines := []string{m.theme.PaneTitle.Render("Profile"), "", head, ""}
	switch {
	case m.profileEditing:
		for i, in := range m.profileInputs {
			box := m.theme.Input
			if i == m.profileFocus {
				box = m.theme.InputFocused
			}
			lines = append(lines, m.theme.Label.Render(profileLabels[i]), box.Width(min(width-4, 50)).Render(in.View()))
		}
		lines = append(lines, "", m.theme.Muted.Render("enter save  ·  tab next field  ·  esc cancel"))
	case m.profileSaving:
		lines = append(lines, m.spinner.View()+" Saving...")
	default:
		rows := [][2]string{
			{"Full Name", u.FullName},
			{"Email", u.Email},
			{"Role", u.Role.Label()},
			{"Specialty", u.SpecialtyOrDefault()},
			{"Work Location", u.WorkLocationOrDefault()},
			{"Phone", u.PhoneOrDefault()},
		}
		for _, r := range rows {
			lines = append(lines, m.theme.Label.Render(util.PadRight(r[0], 15))+r[1])
		}
		lines = append(lines, "", m.theme.Muted.Render("[e] Edit Profile"))
	}
	return m.theme.Card.Width(min(width-2, 64)).Render(strings.Join(lines, "\n"))
}

// =============================================================================
// SETTINGS
// =============================================================================

func (m Model) settingsView(width int) string {
	lines := []string{m.theme.PaneTitle.Render("Settings"), ""}
	var kind settingKind = -1
	for i, s := range settings {
		if s.kind != kind {
			kind = s.kind
			heading := "Notifications"
			if kind == settingAppearance {
				heading = "Appearance"
			}
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, m.theme.Bold.Render(heading))
		}
		value := s.value(m.cfg)
		st := m.theme.ToggleOn
		if value == "Off" {
			st = m.theme.ToggleOff
		}
		row := util.PadRight(s.label, 26) + st.Render(value)
		if i == m.settingsCursor {
			row = m.theme.TableSelected.Render("› " + row)
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	path := m.configPath
	if path == "" {
		path = "(not saved)"
	}
	lines = append(lines, "",
		m.theme.Muted.Render("space toggle  ·  s save"),
		m.theme.Muted.Render(fmt.Sprintf("config: %s", util.Truncate(path, max(width-12, 10)))))
	return strings.Join(lines, "\n")
}
