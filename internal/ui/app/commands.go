// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatconnect-tui/internal/analytics"
	"github.com/jeranaias/chatconnect-tui/internal/api"
	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/config"
	"github.com/jeranaias/chatconnect-tui/internal/history"
	"github.com/jeranaias/chatconnect-tui/internal/model"
	"github.com/jeranaias/chatconnect-tui/internal/util"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Backend is the REST surface the dashboard uses. *api.Client implements it.
type Backend interface {
	Authenticate(ctx context.Context, creds auth.Credentials) (*auth.Session, error)
	Connections(ctx context.Context, sess *auth.Session, name string) ([]model.Contact, error)
	Messages(ctx context.Context, sess *auth.Session, contact model.ID) ([]model.Message, error)
}

// LocalStore caches conversations and drafts. *storage.DB implements it.
type LocalStore interface {
	CacheMessages(ctx context.Context, contact model.ID, msgs []model.Message) error
	AppendMessage(ctx context.Context, contact model.ID, m model.Message) error
	CachedMessages(ctx context.Context, contact model.ID) ([]model.Message, error)
	SaveDrafts(ctx context.Context, drafts map[model.ID]string) error
	LoadDrafts(ctx context.Context) (map[model.ID]string, error)
}

// SessionSaver persists the signed-in session. *auth.SessionStore
// implements it.
type SessionSaver interface {
	Save(sess *auth.Session) error
	Clear() error
}

// requestTimeout bounds every background request.
const requestTimeout = 30 * time.Second

// noticeTTL is how long status notices stay up.
const noticeTTL = 4 * time.Second

// =============================================================================
// COMMANDS
// =============================================================================

func authenticateCmd(b Backend, creds auth.Credentials) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		sess, err := b.Authenticate(ctx, creds)
		return authResultMsg{session: sess, err: err}
	}
}

func debounceCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

func contactsCmd(b Backend, sess *auth.Session, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		contacts, err := b.Connections(ctx, sess, query)
		return contactsMsg{query: query, contacts: contacts, err: err}
	}
}

func cachedMessagesCmd(s LocalStore, contact model.ID) tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		msgs, err := s.CachedMessages(ctx, contact)
		return messagesMsg{contact: contact, messages: msgs, cached: true, err: err}
	}
}

func messagesCmd(b Backend, sess *auth.Session, contact model.ID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		msgs, err := b.Messages(ctx, sess, contact)
		return messagesMsg{contact: contact, messages: msgs, err: err}
	}
}

func cacheMessagesCmd(s LocalStore, contact model.ID, msgs []model.Message) tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := s.CacheMessages(ctx, contact, msgs); err != nil {
			return storageErrMsg{op: "cache messages", err: err}
		}
		return nil
	}
}

func appendMessageCmd(s LocalStore, contact model.ID, m model.Message) tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := s.AppendMessage(ctx, contact, m); err != nil {
			return storageErrMsg{op: "append message", err: err}
		}
		return nil
	}
}

func saveDraftsCmd(s LocalStore, drafts map[model.ID]string) tea.Cmd {
	return func() tea.Msg {
		if s == nil {
			return draftsSavedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return draftsSavedMsg{err: s.SaveDrafts(ctx, drafts)}
	}
}

func historyCmd(src history.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		rows, err := src.Load(ctx)
		return historyMsg{rows: rows, err: err}
	}
}

// profileSaveCmd simulates the profile round trip; there is no endpoint.
func profileSaveCmd(u auth.User, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return profileSavedMsg{user: u}
	})
}

func saveSettingsCmd(cfg *config.Config, path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return settingsSavedMsg{}
		}
		return settingsSavedMsg{err: config.Save(cfg, path)}
	}
}

func exportReportCmd(r analytics.Report, dir string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		var buf bytes.Buffer
		if err := r.WriteCSV(&buf); err != nil {
			return reportExportedMsg{err: err}
		}
		path := filepath.Join(dir, fmt.Sprintf("analytics-%s.csv", now.Format("20060102-150405")))
		if err := util.AtomicWriteFile(path, buf.Bytes(), 0o600); err != nil {
			return reportExportedMsg{err: err}
		}
		return reportExportedMsg{path: path}
	}
}

func waitForReloadCmd(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-w.Changes()
		if !ok {
			return nil
		}
		return configReloadMsg{reload: r}
	}
}

func noticeExpiryCmd(seq int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// authErrorText picks the banner text for a failed login or signup.
func authErrorText(mode auth.Mode, err error) string {
	fallback := api.MsgLoginFailed
	if mode == auth.ModeSignup {
		fallback = api.MsgSignupFailed
	}
	return api.UserMessage(err, fallback)
}

func loadDraftsCmd(s LocalStore) tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		drafts, err := s.LoadDrafts(ctx)
		return draftsLoadedMsg{drafts: drafts, err: err}
	}
}
