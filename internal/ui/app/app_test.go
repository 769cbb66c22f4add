// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatconnect-tui/internal/api"
	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/config"
	"github.com/jeranaias/chatconnect-tui/internal/history"
	"github.com/jeranaias/chatconnect-tui/internal/model"
	"github.com/jeranaias/chatconnect-tui/internal/realtime"
	"github.com/jeranaias/chatconnect-tui/internal/session"
)

// =============================================================================
// FAKES
// =============================================================================

type fakeBackend struct {
	session  *auth.Session
	err      error
	contacts []model.Contact
}

func (f *fakeBackend) Authenticate(context.Context, auth.Credentials) (*auth.Session, error) {
	return f.session, f.err
}

func (f *fakeBackend) Connections(context.Context, *auth.Session, string) ([]model.Contact, error) {
	return f.contacts, nil
}

func (f *fakeBackend) Messages(context.Context, *auth.Session, model.ID) ([]model.Message, error) {
	return nil, nil
}

type fakeStore struct {
	mu       sync.Mutex
	appended []model.Message
	drafts   map[model.ID]string
}

func (f *fakeStore) CacheMessages(context.Context, model.ID, []model.Message) error { return nil }

func (f *fakeStore) AppendMessage(_ context.Context, _ model.ID, m model.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, m)
	return nil
}

func (f *fakeStore) CachedMessages(context.Context, model.ID) ([]model.Message, error) {
	return nil, nil
}

func (f *fakeStore) SaveDrafts(_ context.Context, d map[model.ID]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts = d
	return nil
}

func (f *fakeStore) LoadDrafts(context.Context) (map[model.ID]string, error) { return nil, nil }

type fakeSessions struct {
	saved   *auth.Session
	cleared bool
}

func (f *fakeSessions) Save(s *auth.Session) error { f.saved = s; return nil }
func (f *fakeSessions) Clear() error               { f.cleared = true; f.saved = nil; return nil }

// =============================================================================
// HELPERS
// =============================================================================

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func testSession() *auth.Session {
	return auth.NewSession(auth.User{ID: "me", FullName: "Ada Lovelace", Email: "ada@example.com", Role: auth.RoleStudent}, "tok", fixedNow)
}

func testContacts() []model.Contact {
	return []model.Contact{
		{ID: "u1", FullName: "Grace Hopper", Status: model.StatusOnline},
		{ID: "u2", FullName: "Alan Turing"},
	}
}

func newTestModel(t *testing.T, sess *auth.Session) (Model, *fakeBackend, *fakeStore, *fakeSessions) {
	t.Helper()
	cfg := config.Default()
	cfg.Realtime.Enabled = false
	backend := &fakeBackend{contacts: testContacts()}
	store := &fakeStore{}
	sessions := &fakeSessions{}
	m, err := New(Options{
		Config:   cfg,
		Backend:  backend,
		Store:    store,
		Sessions: sessions,
		History:  history.MockSource{Rows: 1500},
		Session:  sess,
		Now:      func() time.Time { return fixedNow },
		DataDir:  t.TempDir(),
	})
	require.NoError(t, err)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), backend, store, sessions
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// =============================================================================
// AUTH
// =============================================================================

func TestNew_RequiresBackend(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestAuth_ValidationErrorsStayOnForm(t *testing.T) {
	m, _, _, _ := newTestModel(t, nil)
	require.Equal(t, ScreenAuth, m.Screen())

	m, cmd := update(t, m, press(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, ScreenAuth, m.Screen())
	assert.Contains(t, m.form.errors, auth.FieldEmail)
	assert.Contains(t, m.form.errors, auth.FieldPassword)
	assert.False(t, m.form.submitting)
}

func TestAuth_LoginSuccessEntersDashboard(t *testing.T) {
	m, backend, _, sessions := newTestModel(t, nil)
	backend.session = testSession()
	m.form.email.SetValue("ada@example.com")
	m.form.password.SetValue("secret1")

	m, cmd := update(t, m, press(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, m.form.submitting)

	// A second enter while the request is in flight is ignored.
	_, again := update(t, m, press(tea.KeyEnter))
	assert.Nil(t, again)

	m, cmd = update(t, m, authResultMsg{session: backend.session})
	require.NotNil(t, cmd)
	assert.Equal(t, ScreenDashboard, m.Screen())
	assert.Equal(t, TabChat, m.Tab())
	assert.Equal(t, backend.session, sessions.saved)
	assert.Empty(t, m.form.password.Value())
}

func TestAuth_FailureShowsBanner(t *testing.T) {
	m, _, _, _ := newTestModel(t, nil)
	m.form.email.SetValue("ada@example.com")
	m.form.password.SetValue("secret1")
	m, _ = update(t, m, press(tea.KeyEnter))

	m, _ = update(t, m, authResultMsg{err: errors.New("dial tcp: refused")})
	assert.Equal(t, ScreenAuth, m.Screen())
	assert.Equal(t, api.MsgLoginFailed, m.form.banner)
	assert.False(t, m.form.submitting)

	m, _ = update(t, m, authResultMsg{err: &api.APIError{Status: 401, Message: "Invalid credentials"}})
	assert.Equal(t, "Invalid credentials", m.form.banner)
}

func TestAuth_ToggleToSignup(t *testing.T) {
	m, _, _, _ := newTestModel(t, nil)
	m, _ = update(t, m, press(tea.KeyCtrlT))
	assert.Equal(t, auth.ModeSignup, m.form.mode)
	assert.Equal(t, fieldFullName, m.form.focus)

	m, _ = update(t, m, press(tea.KeyEnter))
	assert.Contains(t, m.form.errors, auth.FieldFullName)
}

func TestRestoredSessionStartsOnDashboard(t *testing.T) {
	m, _, _, _ := newTestModel(t, testSession())
	assert.Equal(t, ScreenDashboard, m.Screen())
	assert.NotNil(t, m.Init())
}

// =============================================================================
// CHAT
// =============================================================================

func TestSearch_DebounceDropsStaleTicks(t *testing.T) {
	m, _, _, _ := newTestModel(t, testSession())
	m, _ = update(t, m, contactsMsg{query: "", contacts: testContacts()})
	require.Len(t, m.contacts.Contacts(), 2)

	m, _ = update(t, m, typed("/"))
	require.Equal(t, focusSearch, m.focus)
	m, cmd := update(t, m, typed("g"))
	require.NotNil(t, cmd)
	first := m.searchSeq
	m, _ = update(t, m, typed("r"))
	assert.Equal(t, first+1, m.searchSeq)
	assert.Equal(t, "gr", m.query)

	// Local filtering applies at once.
	require.Len(t, m.contacts.Contacts(), 1)
	assert.Equal(t, "Grace Hopper", m.contacts.Contacts()[0].FullName)

	_, cmd = update(t, m, searchDebounceMsg{seq: first})
	assert.Nil(t, cmd)
	_, cmd = update(t, m, searchDebounceMsg{seq: m.searchSeq})
	assert.NotNil(t, cmd)

	// A response for an older query is discarded.
	m, _ = update(t, m, contactsMsg{query: "g", contacts: testContacts()})
	assert.Len(t, m.contacts.Contacts(), 1)
}

func openFirstContact(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, contactsMsg{query: "", contacts: testContacts()})
	m, cmd := update(t, m, press(tea.KeyEnter))
	require.NotNil(t, cmd)
	require.Equal(t, model.ID("u1"), m.current)
	require.Equal(t, focusCompose, m.focus)
	return m
}

func TestSendMessage_AppendsOptimistically(t *testing.T) {
	m, _, _, _ := newTestModel(t, testSession())
	m = openFirstContact(t, m)

	m, _ = update(t, m, typed("hello"))
	assert.Equal(t, "hello", m.drafts.Get("u1"))

	m, cmd := update(t, m, press(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.pane.Len())
	assert.Equal(t, 1, m.conversations["u1"].Len())
	assert.Empty(t, m.compose.Value())
	assert.Empty(t, m.drafts.Get("u1"))
	assert.True(t, m.activity.IsDirty())
	// No socket: the message is kept locally with a warning.
	assert.True(t, m.noticeWarn)

	last, ok := m.conversations["u1"].Last()
	require.True(t, ok)
	assert.Equal(t, model.ID("me"), last.SenderID)
	assert.Equal(t, fixedNow, last.Timestamp)

	// Blank messages are not sent.
	m, _ = update(t, m, typed("   "))
	_, cmd = update(t, m, press(tea.KeyEnter))
	assert.Nil(t, cmd)
}

func TestIncoming_DedupesAndNotifies(t *testing.T) {
	m, _, _, _ := newTestModel(t, testSession())
	m = openFirstContact(t, m)

	in := model.Message{ID: "m1", Text: "hi", SenderID: "u1", ReceiverID: "me", Timestamp: fixedNow}
	m, _ = update(t, m, incoming(in))
	m, _ = update(t, m, incoming(in))
	assert.Equal(t, 1, m.pane.Len())

	other := model.Message{ID: "m2", Text: "ping", SenderID: "u2", ReceiverID: "me", Timestamp: fixedNow}
	m, _ = update(t, m, incoming(other))
	assert.Equal(t, 1, m.pane.Len())
	assert.Equal(t, "New message from Alan Turing", m.notice)
	assert.Equal(t, 1, m.conversations["u2"].Len())
}

func TestMessages_CacheFillsOnlyEmptyConversation(t *testing.T) {
	m, _, _, _ := newTestModel(t, testSession())
	m = openFirstContact(t, m)

	remote := []model.Message{{ID: "a", Text: "remote", SenderID: "u1"}}
	m, cmd := update(t, m, messagesMsg{contact: "u1", messages: remote})
	assert.NotNil(t, cmd)
	cached := []model.Message{{ID: "b", Text: "old", SenderID: "u1"}, {ID: "c", Text: "older", SenderID: "u1"}}
	m, _ = update(t, m, messagesMsg{contact: "u1", messages: cached, cached: true})
	assert.Equal(t, 1, m.pane.Len())
}

func TestContacts_UnauthorizedLogsOut(t *testing.T) {
	m, _, _, sessions := newTestModel(t, testSession())
	m, _ = update(t, m, contactsMsg{query: "", err: &api.APIError{Status: 401}})
	assert.Equal(t, ScreenAuth, m.Screen())
	assert.True(t, sessions.cleared)
	assert.NotEmpty(t, m.form.banner)
}

// =============================================================================
// SESSION
// =============================================================================

func TestLogout_ClearsState(t *testing.T) {
	m, _, _, sessions := newTestModel(t, testSession())
	m = openFirstContact(t, m)
	m, _ = update(t, m, press(tea.KeyEsc))

	m, _ = update(t, m, press(tea.KeyCtrlL))
	assert.Equal(t, ScreenAuth, m.Screen())
	assert.Nil(t, m.Session())
	assert.True(t, sessions.cleared)
	assert.Empty(t, m.conversations)
	assert.Empty(t, m.current)
}

func TestIdleTimeoutSignsOut(t *testing.T) {
	m, _, _, _ := newTestModel(t, testSession())
	m, _ = update(t, m, session.TimeoutWarningMsg{Remaining: 30 * time.Second})
	assert.Equal(t, "Idle logout in 30s", m.sessionWarning)

	m, _ = update(t, m, session.TimeoutMsg{})
	assert.Equal(t, ScreenAuth, m.Screen())
	assert.Equal(t, "Signed out after inactivity", m.form.banner)
}

func TestAutoSaveFlushesDrafts(t *testing.T) {
	m, _, store, _ := newTestModel(t, testSession())
	m = openFirstContact(t, m)
	m, _ = update(t, m, typed("draft"))

	_, cmd := update(t, m, session.AutoSaveMsg{})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, draftsSavedMsg{}, msg)
	assert.Equal(t, "draft", store.drafts["u1"])
}

// =============================================================================
// TABS
// =============================================================================

func TestHistoryTab_LoadsAndFilters(t *testing.T) {
	m, _, _, _ := newTestModel(t, testSession())
	m, _ = update(t, m, typed("2"))
	require.Equal(t, TabHistory, m.Tab())
	assert.Contains(t, m.View(), "Loading history")

	m, _ = update(t, m, historyMsg{rows: history.Generate(1500)})
	assert.Equal(t, 1500, m.table.Len())
	assert.Less(t, m.table.Materialized(), 1500)

	m, _ = update(t, m, typed("/"))
	require.Equal(t, focusHistoryFilter, m.focus)
	m, _ = update(t, m, typed("video"))
	assert.Equal(t, 750, m.table.Len())
	assert.Contains(t, m.View(), "Rows 1-")
}

func TestHistoryTab_ErrorCanRetry(t *testing.T) {
	m, _, _, _ := newTestModel(t, testSession())
	m, _ = update(t, m, historyMsg{err: errors.New("duplicate row id")})
	m, _ = update(t, m, typed("2"))
	assert.Contains(t, m.View(), "duplicate row id")
}

func TestSettings_ToggleDarkMode(t *testing.T) {
	m, _, _, _ := newTestModel(t, testSession())
	m, _ = update(t, m, typed("4"))
	dark := m.cfg.UI.DarkMode

	// Dark Mode is the fifth row.
	for range 4 {
		m, _ = update(t, m, press(tea.KeyDown))
	}
	m, _ = update(t, m, typed(" "))
	assert.Equal(t, !dark, m.cfg.UI.DarkMode)
	assert.Equal(t, !dark, m.theme.IsDark)
}

func TestSettings_SaveWritesConfig(t *testing.T) {
	m, _, _, _ := newTestModel(t, testSession())
	m.configPath = t.TempDir() + "/config.toml"
	m, _ = update(t, m, typed("4"))
	_, cmd := update(t, m, typed("s"))
	require.NotNil(t, cmd)
	msg := cmd().(settingsSavedMsg)
	require.NoError(t, msg.err)

	loaded, err := config.Load(m.configPath)
	require.NoError(t, err)
	assert.Equal(t, m.cfg.UI, loaded.UI)
}

func TestProfile_EditAndSave(t *testing.T) {
	m, _, _, sessions := newTestModel(t, testSession())
	m, _ = update(t, m, typed("3"))
	m, _ = update(t, m, typed("e"))
	require.True(t, m.profileEditing)

	m, _ = update(t, m, press(tea.KeyTab))
	m, _ = update(t, m, typed("Mathematics"))
	m, cmd := update(t, m, press(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, m.profileSaving)

	u := m.session.User
	u.Specialty = "Mathematics"
	m, _ = update(t, m, profileSavedMsg{user: u})
	assert.False(t, m.profileSaving)
	assert.Equal(t, "Mathematics", m.Session().User.Specialty)
	assert.Equal(t, "Mathematics", sessions.saved.User.Specialty)
	assert.Equal(t, auth.ProfileUpdatedMessage, m.notice)
}

func TestAnalytics_RangeAndExport(t *testing.T) {
	m, _, _, _ := newTestModel(t, testSession())
	m, _ = update(t, m, typed("5"))
	m, _ = update(t, m, press(tea.KeyRight))
	assert.NotEqual(t, 0, int(m.reportRange))
	assert.Contains(t, m.View(), "Performance Analytics")

	_, cmd := update(t, m, typed("x"))
	require.NotNil(t, cmd)
	msg := cmd().(reportExportedMsg)
	require.NoError(t, msg.err)
	assert.FileExists(t, msg.path)
}

func TestConfigReload_AppliesUI(t *testing.T) {
	m, _, _, _ := newTestModel(t, testSession())
	fresh := config.Default()
	fresh.UI.SidebarCollapsed = true
	fresh.Session.IdleTimeoutMins = 0

	m, _ = update(t, m, configReloadMsg{reload: config.Reload{Config: fresh}})
	assert.True(t, m.sidebar.Collapsed)
	assert.Equal(t, time.Duration(-1), m.activity.RemainingTime())

	m, _ = update(t, m, configReloadMsg{reload: config.Reload{Err: errors.New("bad toml")}})
	assert.True(t, m.noticeWarn)
	assert.Contains(t, m.notice, "bad toml")
}

func incoming(msg model.Message) tea.Msg {
	return realtime.IncomingMsg{Message: msg}
}
