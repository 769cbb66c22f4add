// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatconnect-tui/internal/analytics"
	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/config"
	"github.com/jeranaias/chatconnect-tui/internal/history"
	"github.com/jeranaias/chatconnect-tui/internal/logging"
	"github.com/jeranaias/chatconnect-tui/internal/model"
	"github.com/jeranaias/chatconnect-tui/internal/realtime"
	"github.com/jeranaias/chatconnect-tui/internal/session"
	"github.com/jeranaias/chatconnect-tui/internal/ui/components"
	"github.com/jeranaias/chatconnect-tui/internal/ui/styles"
)

// =============================================================================
// SCREENS, TABS AND FOCUS
// =============================================================================

// Screen is the top-level screen.
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenDashboard
)

// Tab is a dashboard tab.
type Tab int

const (
	TabChat Tab = iota
	TabHistory
	TabProfile
	TabSettings
	TabAnalytics
	tabCount
)

// String returns the tab label.
func (t Tab) String() string {
	switch t {
	case TabChat:
		return "Chat"
	case TabHistory:
		return "History"
	case TabProfile:
		return "Profile"
	case TabSettings:
		return "Settings"
	case TabAnalytics:
		return "Analytics"
	default:
		return "Unknown"
	}
}

// focusTarget is the text field receiving keys, if any.
type focusTarget int

const (
	focusNone focusTarget = iota
	focusSearch
	focusCompose
	focusHistoryFilter
	focusProfile
)

// =============================================================================
// MODEL
// =============================================================================

// Options wires the model to its collaborators. Backend and History are
// required; the rest may be nil.
type Options struct {
	Config     *config.Config
	ConfigPath string
	DataDir    string
	Backend    Backend
	Store      LocalStore
	Sessions   SessionSaver
	History    history.Source
	Watcher    *config.Watcher
	Session    *auth.Session
	Logger     *slog.Logger
	Now        func() time.Time
}

// Model is the root Bubble Tea model.
type Model struct {
	cfg        *config.Config
	configPath string
	dataDir    string
	backend    Backend
	store      LocalStore
	sessions   SessionSaver
	source     history.Source
	watcher    *config.Watcher
	logger     *slog.Logger
	now        func() time.Time

	theme    *styles.Theme
	keys     KeyMap
	help     help.Model
	showHelp bool

	width  int
	height int
	screen Screen
	tab    Tab
	focus  focusTarget

	form     authForm
	session  *auth.Session
	activity *session.Manager
	ticking  bool

	// Chat
	contacts      *components.ContactList
	fetched       []model.Contact
	pane          *components.MessagePane
	markdown      *components.MarkdownRenderer
	search        textinput.Model
	compose       textinput.Model
	searchSeq     int
	query         string
	conversations map[model.ID]*model.Conversation
	drafts        *model.Drafts
	current       model.ID
	rt            *realtime.Client
	conn          components.Connection

	// History
	table         *components.HistoryTable
	historyFilter textinput.Model
	historyLoaded bool
	historyErr    string

	// Profile
	profileInputs  []textinput.Model
	profileFocus   int
	profileEditing bool
	profileSaving  bool
	spinner        spinner.Model

	// Settings
	settingsCursor int

	// Analytics
	reportRange analytics.Range

	sidebar        *components.Sidebar
	status         *components.StatusBar
	notice         string
	noticeWarn     bool
	noticeSeq      int
	sessionWarning string
}

// New builds the root model. A valid opts.Session skips the login screen.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Backend == nil {
		return Model{}, fmt.Errorf("app: backend is required")
	}
	if opts.History == nil {
		opts.History = history.MockSource{Rows: cfg.History.MockRows}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	theme := styles.NewTheme(cfg.UI.DarkMode)
	table, err := components.NewHistoryTable(cfg.History.WindowConfig(), theme)
	if err != nil {
		return Model{}, fmt.Errorf("history table: %w", err)
	}
	md := components.NewMarkdownRenderer(cfg.UI.RenderMarkdown)

	search := textinput.New()
	search.Placeholder = "Search..."
	search.Prompt = "/ "
	search.CharLimit = 80

	compose := textinput.New()
	compose.Placeholder = "Message..."
	compose.Prompt = "> "
	compose.CharLimit = 2000

	filter := textinput.New()
	filter.Placeholder = "Filter by name or type..."
	filter.Prompt = "/ "
	filter.CharLimit = 80

	m := Model{
		cfg:           cfg,
		configPath:    opts.ConfigPath,
		dataDir:       opts.DataDir,
		backend:       opts.Backend,
		store:         opts.Store,
		sessions:      opts.Sessions,
		source:        opts.History,
		watcher:       opts.Watcher,
		logger:        logger.With("component", "tui"),
		now:           now,
		theme:         theme,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		form:          newAuthForm(),
		activity:      session.NewManager(session.ConfigFrom(cfg.Session)),
		contacts:      components.NewContactList(theme),
		pane:          components.NewMessagePane(theme, md),
		markdown:      md,
		search:        search,
		compose:       compose,
		conversations: make(map[model.ID]*model.Conversation),
		drafts:        model.NewDrafts(nil),
		table:         table,
		historyFilter: filter,
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		sidebar:       components.NewSidebar(theme, sidebarItems()),
		status:        components.NewStatusBar(theme),
		width:         80,
		height:        24,
	}
	m.sidebar.Collapsed = cfg.UI.SidebarCollapsed

	if opts.Session.Valid() {
		m.session = opts.Session
		m.screen = ScreenDashboard
		m.contacts.SetLoading(true)
		// Init starts the tick chain for a restored session.
		m.ticking = true
		if cfg.Realtime.Enabled && cfg.Realtime.SocketURL != "" {
			m.conn = components.Connecting
		}
	}
	m.layout()
	return m, nil
}

func sidebarItems() []components.SidebarItem {
	return []components.SidebarItem{
		{Icon: "✉", Label: TabChat.String(), Hotkey: "1"},
		{Icon: "◷", Label: TabHistory.String(), Hotkey: "2"},
		{Icon: "☺", Label: TabProfile.String(), Hotkey: "3"},
		{Icon: "⚙", Label: TabSettings.String(), Hotkey: "4"},
		{Icon: "▤", Label: TabAnalytics.String(), Hotkey: "5"},
		{Icon: "⏻", Label: "Logout", Hotkey: "C-l", Danger: true},
	}
}

// Init starts the watcher loop and, for a restored session, the dashboard.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, waitForReloadCmd(m.watcher)}
	if m.screen == ScreenDashboard {
		cmds = append(cmds, m.dashboardCmds(), session.TickCmd())
	}
	return tea.Batch(cmds...)
}

// Screen reports the current screen.
func (m Model) Screen() Screen { return m.screen }

// Tab reports the active dashboard tab.
func (m Model) Tab() Tab { return m.tab }

// Session returns the signed-in session, or nil.
func (m Model) Session() *auth.Session { return m.session }

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		m.activity.RecordActivity()
		m.sessionWarning = ""
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.activity.RecordActivity()
		return m.handleMouse(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		if m.profileSaving {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		formCmd := m.form.update(msg)
		return m, tea.Batch(cmd, formCmd)

	case authResultMsg:
		return m.handleAuthResult(msg)

	case draftsLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("load drafts", "error", msg.err)
			return m, nil
		}
		m.drafts = model.NewDrafts(msg.drafts)
		if m.current != "" && m.compose.Value() == "" {
			m.compose.SetValue(m.drafts.Get(m.current))
		}
		return m, nil

	case searchDebounceMsg:
		if msg.seq != m.searchSeq || m.session == nil {
			return m, nil
		}
		m.contacts.SetLoading(true)
		return m, contactsCmd(m.backend, m.session, m.query)

	case contactsMsg:
		return m.handleContacts(msg)

	case messagesMsg:
		return m.handleMessages(msg)

	case historyMsg:
		if msg.err != nil {
			m.historyErr = msg.err.Error()
			m.logger.Error("load history", "error", msg.err)
			return m, nil
		}
		m.historyLoaded = true
		m.historyErr = ""
		m.table.SetRows(msg.rows)
		return m, nil

	case profileSavedMsg:
		return m.handleProfileSaved(msg)

	case settingsSavedMsg:
		if msg.err != nil {
			m.logger.Error("save settings", "error", msg.err)
			return m.setNotice("Could not save settings: "+msg.err.Error(), true)
		}
		return m.setNotice("Settings saved", false)

	case draftsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save drafts", "error", msg.err)
			return m, nil
		}
		m.activity.MarkClean()
		return m, nil

	case reportExportedMsg:
		if msg.err != nil {
			m.logger.Error("export report", "error", msg.err)
			return m.setNotice("Export failed: "+msg.err.Error(), true)
		}
		return m.setNotice("Report exported to "+msg.path, false)

	case configReloadMsg:
		return m.handleConfigReload(msg)

	case storageErrMsg:
		m.logger.Warn("storage", "op", msg.op, "error", msg.err)
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case realtime.ConnectedMsg:
		return m.handleConnected(msg)

	case realtime.DisconnectedMsg:
		return m.handleDisconnected(msg)

	case realtime.ReconnectMsg:
		if m.screen != ScreenDashboard || m.conn == components.Online {
			return m, nil
		}
		m.conn = components.Connecting
		return m, realtime.ConnectCmd(m.cfg.Realtime.SocketURL, m.session, msg.Attempt, m.logger)

	case realtime.IncomingMsg:
		return m.handleIncoming(msg)

	case realtime.SentMsg:
		if msg.Err != nil {
			m.logger.Warn("send message", "id", msg.Message.ID, "error", msg.Err)
			return m.setNotice("Offline: message kept locally", true)
		}
		return m, nil

	case session.TickMsg:
		if m.screen != ScreenDashboard {
			m.ticking = false
			return m, nil
		}
		return m, m.activity.HandleTick()

	case session.TimeoutWarningMsg:
		m.sessionWarning = "Idle logout in " + session.FormatDuration(msg.Remaining)
		return m, nil

	case session.TimeoutMsg:
		if m.screen != ScreenDashboard {
			return m, nil
		}
		return m.logout("Signed out after inactivity")

	case session.AutoSaveMsg:
		return m, saveDraftsCmd(m.store, m.drafts.Snapshot())
	}

	return m, nil
}

// setNotice shows a transient status message.
func (m Model) setNotice(text string, warn bool) (tea.Model, tea.Cmd) {
	cmd := m.notify(text, warn)
	return m, cmd
}

func (m *Model) notify(text string, warn bool) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	m.noticeWarn = warn
	return noticeExpiryCmd(m.noticeSeq)
}

// =============================================================================
// AUTH AND SESSION LIFECYCLE
// =============================================================================

func (m Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Info("authentication failed", "mode", m.form.mode, "error", msg.err)
		m.form.fail(authErrorText(m.form.mode, msg.err))
		return m, nil
	}
	m.session = msg.session
	if m.sessions != nil {
		if err := m.sessions.Save(m.session); err != nil {
			m.logger.Warn("persist session", "error", err)
		}
	}
	m.logger.Info("signed in", "user", m.session.User.ID, "role", m.session.User.Role)
	m.form.reset()
	m.screen = ScreenDashboard
	m.tab = TabChat
	m.focus = focusNone
	m.contacts.SetLoading(true)
	m.activity.RecordActivity()
	m.layout()
	cmd := m.dashboardCmds()
	return m, cmd
}

// dashboardCmds starts everything the dashboard needs after sign-in.
func (m *Model) dashboardCmds() tea.Cmd {
	cmds := []tea.Cmd{
		contactsCmd(m.backend, m.session, ""),
		loadDraftsCmd(m.store),
	}
	if !m.historyLoaded {
		cmds = append(cmds, historyCmd(m.source))
	}
	if !m.ticking {
		m.ticking = true
		cmds = append(cmds, session.TickCmd())
	}
	if m.cfg.Realtime.Enabled && m.cfg.Realtime.SocketURL != "" {
		m.conn = components.Connecting
		cmds = append(cmds, realtime.ConnectCmd(m.cfg.Realtime.SocketURL, m.session, 1, m.logger))
	}
	return tea.Batch(cmds...)
}

// logout tears down the dashboard and returns to the login screen.
func (m Model) logout(reason string) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.drafts.Dirty() || m.activity.IsDirty() {
		cmds = append(cmds, saveDraftsCmd(m.store, m.drafts.Snapshot()))
	}
	if m.rt != nil {
		if err := m.rt.Close(); err != nil {
			m.logger.Debug("close realtime", "error", err)
		}
		m.rt = nil
	}
	if m.sessions != nil {
		if err := m.sessions.Clear(); err != nil {
			m.logger.Warn("clear session", "error", err)
		}
	}
	m.logger.Info("signed out", "reason", reason)

	m.session = nil
	m.screen = ScreenAuth
	m.focus = focusNone
	m.conn = components.Offline
	m.current = ""
	m.query = ""
	m.search.SetValue("")
	m.compose.SetValue("")
	m.conversations = make(map[model.ID]*model.Conversation)
	m.drafts = model.NewDrafts(nil)
	m.fetched = nil
	m.contacts.SetContacts(nil, "")
	m.pane.SetMessages(nil, "")
	m.profileEditing = false
	m.profileSaving = false
	m.sessionWarning = ""
	m.form.reset()
	if reason != "" {
		m.form.banner = reason
	}
	cmds = append(cmds, m.form.setFocus(m.form.focus))
	return m, tea.Batch(cmds...)
}

// =============================================================================
// REALTIME
// =============================================================================

func (m Model) handleConnected(msg realtime.ConnectedMsg) (tea.Model, tea.Cmd) {
	if m.screen != ScreenDashboard {
		msg.Client.Close()
		return m, nil
	}
	if m.rt != nil {
		m.rt.Close()
	}
	m.rt = msg.Client
	m.conn = components.Online
	m.logger.Info("realtime connected")
	return m, realtime.ListenCmd(m.rt)
}

// handleDisconnected schedules a redial. Reports from a client that is no
// longer current, or from a dial that lost the race to an open client, are
// ignored.
func (m Model) handleDisconnected(msg realtime.DisconnectedMsg) (tea.Model, tea.Cmd) {
	if m.screen != ScreenDashboard || !m.cfg.Realtime.Enabled {
		return m, nil
	}
	if msg.Client != nil && msg.Client != m.rt {
		return m, nil
	}
	if msg.Client == nil && m.conn == components.Online {
		return m, nil
	}
	if m.rt != nil {
		m.rt.Close()
		m.rt = nil
	}
	m.conn = components.Offline
	next := msg.Attempt + 1
	if realtime.IsNormalClose(msg.Err) {
		m.logger.Debug("realtime closed", "next_attempt", next)
	} else {
		m.logger.Warn("realtime disconnected", "error", msg.Err, "next_attempt", next)
	}
	base := time.Duration(m.cfg.Realtime.ReconnectSecs) * time.Second
	limit := time.Duration(m.cfg.Realtime.MaxReconnectSecs) * time.Second
	return m, realtime.ReconnectCmd(next, base, limit)
}

func (m Model) handleIncoming(msg realtime.IncomingMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{}
	// One reader per connection: only the current client's listener
	// continues.
	if m.rt != nil && msg.Client == m.rt {
		cmds = append(cmds, realtime.ListenCmd(m.rt))
	}
	if m.session == nil {
		return m, tea.Batch(cmds...)
	}

	in := msg.Message
	contact := in.SenderID
	if in.FromMe(m.session.User.ID) {
		contact = in.ReceiverID
	}
	conv := m.conversation(contact)
	if !conv.Append(in) {
		return m, tea.Batch(cmds...)
	}
	if contact == m.current {
		m.pane.Append(in)
	}
	m.contacts.SetPreview(contact, in.Text)
	cmds = append(cmds, appendMessageCmd(m.store, contact, in))

	if contact != m.current && !in.FromMe(m.session.User.ID) {
		name := string(contact)
		if i := model.IndexOf(m.contacts.Contacts(), contact); i >= 0 {
			name = m.contacts.Contacts()[i].FullName
		}
		cmds = append(cmds, m.notify("New message from "+name, false))
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func (m Model) handleConfigReload(msg configReloadMsg) (tea.Model, tea.Cmd) {
	next := waitForReloadCmd(m.watcher)
	if msg.reload.Err != nil {
		m.logger.Warn("config reload rejected", "error", msg.reload.Err)
		cmd := m.notify("Config not reloaded: "+msg.reload.Err.Error(), true)
		return m, tea.Batch(next, cmd)
	}
	fresh := msg.reload.Config
	m.cfg.UI = fresh.UI
	m.cfg.Notifications = fresh.Notifications
	m.cfg.Session.IdleTimeoutMins = fresh.Session.IdleTimeoutMins
	m.activity.SetTimeout(time.Duration(fresh.Session.IdleTimeoutMins) * time.Minute)
	m.applyUI()
	m.logger.Info("config reloaded", "path", m.configPath)
	return m, next
}

// applyUI pushes UI settings into the theme and components.
func (m *Model) applyUI() {
	if m.theme.IsDark != m.cfg.UI.DarkMode {
		m.theme = styles.NewTheme(m.cfg.UI.DarkMode)
		m.contacts.SetTheme(m.theme)
		m.table.SetTheme(m.theme)
		m.sidebar.SetTheme(m.theme)
		m.status.SetTheme(m.theme)
		m.pane.SetTheme(m.theme)
	}
	m.markdown.SetEnabled(m.cfg.UI.RenderMarkdown)
	if m.sidebar.Collapsed != m.cfg.UI.SidebarCollapsed {
		m.sidebar.Collapsed = m.cfg.UI.SidebarCollapsed
		m.layout()
	}
}

// conversation returns the conversation with contact, creating it.
func (m *Model) conversation(contact model.ID) *model.Conversation {
	c, ok := m.conversations[contact]
	if !ok {
		c = model.NewConversation(contact)
		m.conversations[contact] = c
	}
	return c
}
