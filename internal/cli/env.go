// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/config"
	"github.com/jeranaias/chatconnect-tui/internal/history"
)

// Authenticator signs users in. *api.Client implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, creds auth.Credentials) (*auth.Session, error)
}

// SessionStore persists the signed-in session. *auth.SessionStore
// implements it.
type SessionStore interface {
	Save(sess *auth.Session) error
	Load() (*auth.Session, error)
	Clear() error
}

// Env is everything a command handler may touch. main builds it once;
// tests fill in fakes.
type Env struct {
	Config     *config.Config
	ConfigPath string

	Auth     Authenticator
	Sessions SessionStore
	History  history.Source

	// WipeLocal removes cached conversations and drafts on logout.
	WipeLocal func(ctx context.Context) error

	// NewPrompter opens an interactive prompter on first use.
	NewPrompter func() (Prompter, error)

	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger
}

func (e *Env) prompter() (Prompter, error) {
	if e.NewPrompter == nil {
		return nil, ErrNotInteractive
	}
	return e.NewPrompter()
}
