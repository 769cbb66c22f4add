// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatconnect-tui/internal/analytics"
	"github.com/jeranaias/chatconnect-tui/internal/api"
	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/model"
	"github.com/jeranaias/chatconnect-tui/internal/realtime"
)

// =============================================================================
// KEYBOARD
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}

	if m.screen == ScreenAuth {
		if msg.Type == tea.KeyEnter {
			creds, ok := m.form.submit()
			if !ok {
				return m, nil
			}
			m.logger.Debug("submitting credentials", "mode", creds.Mode, "email", creds.Email)
			return m, tea.Batch(authenticateCmd(m.backend, creds), m.form.spinner.Tick)
		}
		cmd := m.form.update(msg)
		return m, cmd
	}

	// A focused text field owns every key except blur and its submit key.
	if m.focus != focusNone {
		return m.handleFocusedKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Logout):
		return m.logout("")
	case key.Matches(msg, m.keys.Sidebar):
		m.cfg.UI.SidebarCollapsed = !m.cfg.UI.SidebarCollapsed
		m.applyUI()
		return m, nil
	case key.Matches(msg, m.keys.Chat):
		return m.switchTab(TabChat)
	case key.Matches(msg, m.keys.History):
		return m.switchTab(TabHistory)
	case key.Matches(msg, m.keys.Profile):
		return m.switchTab(TabProfile)
	case key.Matches(msg, m.keys.Settings):
		return m.switchTab(TabSettings)
	case key.Matches(msg, m.keys.Analytics):
		return m.switchTab(TabAnalytics)
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.tab + 1) % tabCount)
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.tab + tabCount - 1) % tabCount)
	}

	switch m.tab {
	case TabChat:
		return m.chatKey(msg)
	case TabHistory:
		return m.historyKey(msg)
	case TabProfile:
		return m.profileKey(msg)
	case TabSettings:
		return m.settingsKey(msg)
	case TabAnalytics:
		return m.analyticsKey(msg)
	}
	return m, nil
}

// quit flushes drafts before exiting.
func (m Model) quit() tea.Cmd {
	if m.rt != nil {
		m.rt.Close()
	}
	if m.session == nil {
		return tea.Quit
	}
	return tea.Sequence(saveDraftsCmd(m.store, m.drafts.Snapshot()), tea.Quit)
}

func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	m.tab = t
	m.sidebar.Active = int(t)
	m.focus = focusNone
	m.blurAll()
	return m, nil
}

func (m *Model) blurAll() {
	m.search.Blur()
	m.compose.Blur()
	m.historyFilter.Blur()
	for i := range m.profileInputs {
		m.profileInputs[i].Blur()
	}
}

func (m Model) focusOn(f focusTarget) (tea.Model, tea.Cmd) {
	m.blurAll()
	m.focus = f
	var cmd tea.Cmd
	switch f {
	case focusSearch:
		cmd = m.search.Focus()
	case focusCompose:
		cmd = m.compose.Focus()
	case focusHistoryFilter:
		cmd = m.historyFilter.Focus()
	case focusProfile:
		cmd = m.profileInputs[m.profileFocus].Focus()
	}
	return m, cmd
}

func (m Model) handleFocusedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Blur) {
		if m.focus == focusProfile {
			m.profileEditing = false
		}
		m.focus = focusNone
		m.blurAll()
		return m, nil
	}

	switch m.focus {
	case focusSearch:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyDown {
			m.focus = focusNone
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if q := strings.TrimSpace(m.search.Value()); q != m.query {
			m.query = q
			m.searchSeq++
			m.contacts.SetContacts(model.FilterContacts(m.fetched, q), q)
			return m, tea.Batch(cmd, debounceCmd(m.searchSeq, m.cfg.UI.SearchDebounce()))
		}
		return m, cmd

	case focusCompose:
		if msg.Type == tea.KeyEnter {
			return m.sendMessage()
		}
		var cmd tea.Cmd
		m.compose, cmd = m.compose.Update(msg)
		if m.current != "" {
			before := m.drafts.Get(m.current)
			m.drafts.Set(m.current, m.compose.Value())
			if before != m.compose.Value() {
				m.activity.MarkDirty()
			}
		}
		return m, cmd

	case focusHistoryFilter:
		if msg.Type == tea.KeyEnter {
			m.focus = focusNone
			m.historyFilter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.historyFilter, cmd = m.historyFilter.Update(msg)
		m.table.SetFilter(m.historyFilter.Value())
		return m, cmd

	case focusProfile:
		return m.profileEditKey(msg)
	}
	return m, nil
}

// =============================================================================
// MOUSE
// =============================================================================

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.screen != ScreenDashboard {
		return m, nil
	}
	switch m.tab {
	case TabHistory:
		return m, m.table.Update(msg)
	case TabChat:
		if msg.X > m.sidebar.Width()+m.contactsWidth() {
			return m, m.pane.Update(msg)
		}
		switch msg.Type {
		case tea.MouseWheelUp:
			m.contacts.Move(-1)
		case tea.MouseWheelDown:
			m.contacts.Move(1)
		}
	}
	return m, nil
}

// =============================================================================
// CHAT
// =============================================================================

func (m Model) chatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		return m.focusOn(focusSearch)
	case key.Matches(msg, m.keys.Up):
		m.contacts.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.contacts.Move(1)
	case msg.String() == "pgup", msg.String() == "pgdown":
		return m, m.pane.Update(msg)
	case key.Matches(msg, m.keys.Compose):
		c, ok := m.contacts.Selected()
		if !ok {
			return m, nil
		}
		if c.ID != m.current {
			return m.openContact(c)
		}
		return m.focusOn(focusCompose)
	}
	return m, nil
}

// openContact shows the cached conversation at once and refreshes it from
// the backend.
func (m Model) openContact(c model.Contact) (tea.Model, tea.Cmd) {
	if m.current != "" {
		m.drafts.Set(m.current, m.compose.Value())
	}
	m.current = c.ID
	conv := m.conversation(c.ID)
	m.pane.SetMessages(conv.Messages(), m.session.User.ID)
	m.compose.SetValue(m.drafts.Get(c.ID))
	m.compose.CursorEnd()
	m.logger.Debug("open conversation", "contact", c.ID)

	next, focus := m.focusOn(focusCompose)
	return next, tea.Batch(
		focus,
		cachedMessagesCmd(m.store, c.ID),
		messagesCmd(m.backend, m.session, c.ID),
	)
}

func (m Model) sendMessage() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.compose.Value())
	if text == "" || m.current == "" || m.session == nil {
		return m, nil
	}
	out := model.NewOutgoing(m.session.User.ID, m.current, text, m.now())
	m.conversation(m.current).Append(out)
	m.pane.Append(out)
	m.contacts.SetPreview(m.current, text)
	m.compose.SetValue("")
	m.drafts.Clear(m.current)
	m.activity.MarkDirty()

	cmds := []tea.Cmd{appendMessageCmd(m.store, m.current, out)}
	if m.rt != nil {
		cmds = append(cmds, realtime.SendCmd(m.rt, out))
	} else {
		cmds = append(cmds, m.notify("Offline: message kept locally", true))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleContacts(msg contactsMsg) (tea.Model, tea.Cmd) {
	if m.session == nil || msg.query != m.query {
		// Signed out, or a newer search superseded this one.
		return m, nil
	}
	m.contacts.SetLoading(false)
	if msg.err != nil {
		m.logger.Error("load contacts", "query", msg.query, "error", msg.err)
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return m.logout("Your session has expired. Please sign in again.")
		}
		return m.setNotice(api.UserMessage(msg.err, api.MsgContactsError), true)
	}
	m.fetched = msg.contacts
	m.contacts.SetContacts(model.FilterContacts(msg.contacts, msg.query), msg.query)
	return m, nil
}

func (m Model) handleMessages(msg messagesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if msg.cached {
			m.logger.Warn("read message cache", "contact", msg.contact, "error", msg.err)
			return m, nil
		}
		m.logger.Error("load messages", "contact", msg.contact, "error", msg.err)
		return m.setNotice(api.UserMessage(msg.err, api.MsgMessagesError), true)
	}

	conv := m.conversation(msg.contact)
	// Cached rows only fill an empty conversation.
	if msg.cached && (conv.Len() > 0 || len(msg.messages) == 0) {
		return m, nil
	}
	conv.Replace(msg.messages)
	if msg.contact == m.current && m.session != nil {
		m.pane.SetMessages(conv.Messages(), m.session.User.ID)
	}
	if last, ok := conv.Last(); ok {
		m.contacts.SetPreview(msg.contact, last.Text)
	}
	if msg.cached {
		return m, nil
	}
	return m, cacheMessagesCmd(m.store, msg.contact, conv.Messages())
}

// =============================================================================
// HISTORY
// =============================================================================

func (m Model) historyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Search) {
		return m.focusOn(focusHistoryFilter)
	}
	if msg.String() == "r" && m.historyErr != "" {
		m.historyErr = ""
		return m, historyCmd(m.source)
	}
	return m, m.table.Update(msg)
}

// =============================================================================
// PROFILE
// =============================================================================

// profileLabels names the editable profile inputs in order.
var profileLabels = []string{"Full Name", "Specialty", "Work Location", "Phone"}

func (m Model) profileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.session == nil || m.profileSaving {
		return m, nil
	}
	if !key.Matches(msg, m.keys.Edit) {
		return m, nil
	}
	edit := auth.EditFrom(m.session.User)
	values := []string{edit.FullName, edit.Specialty, edit.WorkLocation, edit.Phone}
	m.profileInputs = make([]textinput.Model, len(values))
	for i, v := range values {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 120
		in.SetValue(v)
		m.profileInputs[i] = in
	}
	m.profileFocus = 0
	m.profileEditing = true
	return m.focusOn(focusProfile)
}

func (m Model) profileEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.profileFocus = (m.profileFocus + 1) % len(m.profileInputs)
		return m.focusOn(focusProfile)
	case "shift+tab", "up":
		m.profileFocus = (m.profileFocus + len(m.profileInputs) - 1) % len(m.profileInputs)
		return m.focusOn(focusProfile)
	case "ctrl+s", "enter":
		edit := auth.ProfileEdit{
			FullName:     m.profileInputs[0].Value(),
			Specialty:    m.profileInputs[1].Value(),
			WorkLocation: m.profileInputs[2].Value(),
			Phone:        m.profileInputs[3].Value(),
		}
		m.profileSaving = true
		m.profileEditing = false
		m.focus = focusNone
		m.blurAll()
		delay := time.Duration(m.cfg.Session.ProfileSaveDelayMs) * time.Millisecond
		return m, tea.Batch(profileSaveCmd(edit.Apply(m.session.User), delay), m.spinner.Tick)
	}
	var cmd tea.Cmd
	m.profileInputs[m.profileFocus], cmd = m.profileInputs[m.profileFocus].Update(msg)
	return m, cmd
}

func (m Model) handleProfileSaved(msg profileSavedMsg) (tea.Model, tea.Cmd) {
	m.profileSaving = false
	if m.session == nil {
		return m, nil
	}
	m.session = m.session.WithUser(msg.user)
	if m.sessions != nil {
		if err := m.sessions.Save(m.session); err != nil {
			m.logger.Warn("persist session", "error", err)
		}
	}
	m.logger.Info("profile updated", "user", msg.user.ID)
	return m.setNotice(auth.ProfileUpdatedMessage, false)
}

// =============================================================================
// SETTINGS AND ANALYTICS
// =============================================================================

func (m Model) settingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.settingsCursor = max(m.settingsCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.settingsCursor = min(m.settingsCursor+1, len(settings)-1)
	case key.Matches(msg, m.keys.Toggle):
		settings[m.settingsCursor].toggle(m.cfg)
		m.applyUI()
	case key.Matches(msg, m.keys.Save):
		return m, saveSettingsCmd(m.cfg.Clone(), m.configPath)
	}
	return m, nil
}

func (m Model) analyticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.reportRange = m.reportRange.Prev()
	case key.Matches(msg, m.keys.Right):
		m.reportRange = m.reportRange.Next()
	case key.Matches(msg, m.keys.Export):
		return m, exportReportCmd(analytics.Sample(m.reportRange), m.exportDir(), m.now())
	}
	return m, nil
}

func (m Model) exportDir() string {
	if m.dataDir != "" {
		return m.dataDir
	}
	return "."
}

// =============================================================================
// LAYOUT
// =============================================================================

// contactsWidth is the width of the contact column on the chat tab.
func (m Model) contactsWidth() int {
	w := m.width - m.sidebar.Width()
	return min(max(w/3, 20), 36)
}

// helpLines is the height of the expanded help, the longest FullHelp column.
const helpLines = 7

// contentSize is the area right of the sidebar and above the status bar.
func (m Model) contentSize() (width, height int) {
	width = max(m.width-m.sidebar.Width(), 10)
	height = max(m.height-1, 3)
	if m.showHelp {
		height = max(height-helpLines, 3)
	}
	return width, height
}

// layout resizes every component to the current terminal size.
func (m *Model) layout() {
	m.theme.SetSize(m.width, m.height)
	m.help.Width = m.width
	contentW, contentH := m.contentSize()
	m.sidebar.Height = m.height - 1
	m.status.Width = m.width

	cw := m.contactsWidth()
	// bordered search box
	m.contacts.SetSize(cw, contentH-3)
	m.search.Width = cw - 6
	paneW := max(contentW-cw-1, 10)
	// header line and bordered compose box
	m.pane.SetSize(paneW, contentH-4)
	m.compose.Width = paneW - 6

	// title with margin and bordered filter box
	if err := m.table.SetSize(contentW, contentH-5); err != nil {
		m.logger.Warn("resize history table", "error", err)
	}
	m.historyFilter.Width = min(contentW-2, 48) - 6
}
