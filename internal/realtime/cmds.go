// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package realtime

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ConnectedMsg is sent once the socket is open and the login event sent.
type ConnectedMsg struct {
	Client *Client
}

// DisconnectedMsg is sent when dialing fails or an open socket drops.
// Client is the dropped client; it is nil for a failed dial.
type DisconnectedMsg struct {
	Client  *Client
	Err     error
	Attempt int
}

// IncomingMsg carries one received chat message and the client it came
// from.
type IncomingMsg struct {
	Client  *Client
	Message model.Message
}

// ReconnectMsg asks the model to dial again.
type ReconnectMsg struct {
	Attempt int
}

// SentMsg reports the outcome of a Send.
type SentMsg struct {
	Message model.Message
	Err     error
}

// =============================================================================
// COMMANDS
// =============================================================================

// ConnectCmd dials url and logs in as the session user.
func ConnectCmd(url string, sess *auth.Session, attempt int, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		c, err := Dial(ctx, url, sess, logger)
		if err != nil {
			return DisconnectedMsg{Err: err, Attempt: attempt}
		}
		if err := c.Login(sess.User.ID); err != nil {
			c.Close()
			return DisconnectedMsg{Err: err, Attempt: attempt}
		}
		return ConnectedMsg{Client: c}
	}
}

// ListenCmd waits for the next incoming message. Re-issue it after every
// IncomingMsg to keep listening.
func ListenCmd(c *Client) tea.Cmd {
	return func() tea.Msg {
		m, err := c.Next()
		if err != nil {
			return DisconnectedMsg{Client: c, Err: err}
		}
		return IncomingMsg{Client: c, Message: m}
	}
}

// SendCmd transmits m on c.
func SendCmd(c *Client, m model.Message) tea.Cmd {
	return func() tea.Msg {
		if c == nil {
			return SentMsg{Message: m, Err: ErrNotConnected}
		}
		return SentMsg{Message: m, Err: c.Send(m)}
	}
}

// ReconnectCmd schedules the next dial attempt after a backoff delay.
func ReconnectCmd(attempt int, base, max time.Duration) tea.Cmd {
	return tea.Tick(Backoff(attempt, base, max), func(time.Time) tea.Msg {
		return ReconnectMsg{Attempt: attempt}
	})
}

// Backoff doubles base for every attempt after the first, capped at max.
func Backoff(attempt int, base, max time.Duration) time.Duration {
	if base <= 0 {
		base = time.Second
	}
	if attempt < 1 {
		attempt = 1
	}
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if max > 0 && d >= max {
			return max
		}
	}
	if max > 0 && d > max {
		return max
	}
	return d
}
