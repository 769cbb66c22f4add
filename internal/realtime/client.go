// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/model"
)

// ErrNotConnected is returned when sending on a closed channel.
var ErrNotConnected = errors.New("realtime channel not connected")

const (
	writeTimeout   = 10 * time.Second
	maxMessageSize = 1 << 20
)

// Client is one WebSocket connection. Reads must come from a single
// goroutine; writes are serialized internally.
type Client struct {
	conn   *websocket.Conn
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Dial connects to url. The session token, when present, is sent as a
// bearer Authorization header on the upgrade request.
func Dial(ctx context.Context, url string, sess *auth.Session, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	header := http.Header{}
	if a := sess.Authorization(); a != "" {
		header.Set("Authorization", a)
	}

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second
	conn, resp, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (HTTP %d)", url, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	conn.SetReadLimit(maxMessageSize)
	return &Client{conn: conn, logger: logger.With("component", "realtime")}, nil
}

// Login announces the user id; the server routes messages by it.
func (c *Client) Login(userID model.ID) error {
	return c.write(EventLogin, LoginPayload{UserID: userID})
}

// Send transmits an outgoing chat message.
func (c *Client) Send(m model.Message) error {
	if m.MediaType == "" {
		m.MediaType = model.MediaTypeText
	}
	return c.write(EventMessage, m)
}

func (c *Client) write(eventType string, payload any) error {
	data, err := encode(eventType, payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrNotConnected
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("send %s: %w", eventType, err)
	}
	return nil
}

// Next blocks until the next chat message arrives. Frames of other types
// and malformed frames are skipped.
func (c *Client) Next() (model.Message, error) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return model.Message{}, err
		}
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.logger.Warn("dropping malformed frame", "error", err)
			continue
		}
		if env.Type != EventMessage {
			c.logger.Debug("ignoring event", "type", env.Type)
			continue
		}
		m, err := DecodeMessage(env.Payload, time.Now())
		if err != nil {
			c.logger.Warn("dropping malformed message", "error", err)
			continue
		}
		return m, nil
	}
}

// Close sends a close frame and tears down the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}

// IsNormalClose reports whether err is an orderly shutdown rather than a
// dropped connection.
func IsNormalClose(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
		errors.Is(err, net.ErrClosed)
}
