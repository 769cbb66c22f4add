// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/logging"
	"github.com/jeranaias/chatconnect-tui/internal/model"
)

var upgrader = websocket.Upgrader{}

// serve starts a WebSocket server running fn for each connection and
// returns its ws:// URL.
func serve(t *testing.T, fn func(conn *websocket.Conn, r *http.Request)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		fn(conn, r)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func testSession() *auth.Session {
	return auth.NewSession(auth.User{ID: "me"}, "tok", time.Now())
}

func TestClient_LoginSendAndReceive(t *testing.T) {
	received := make(chan model.Message, 1)
	url := serve(t, func(conn *websocket.Conn, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		env := readEnvelope(t, conn)
		assert.Equal(t, EventLogin, env.Type)
		assert.JSONEq(t, `{"userId":"me"}`, string(env.Payload))

		// Noise the client must skip.
		conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"typing","payload":{}}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"message","payload":{"content":"hello","from":7}}`))

		env = readEnvelope(t, conn)
		assert.Equal(t, EventMessage, env.Type)
		m, err := DecodeMessage(env.Payload, time.Now())
		require.NoError(t, err)
		received <- m

		// Wait for the client to hang up.
		conn.ReadMessage()
	})

	msg := ConnectCmd(url, testSession(), 0, logging.Discard())()
	connected, ok := msg.(ConnectedMsg)
	require.True(t, ok, "got %#v", msg)
	c := connected.Client

	in := ListenCmd(c)()
	incoming, ok := in.(IncomingMsg)
	require.True(t, ok, "got %#v", in)
	assert.Same(t, c, incoming.Client)
	assert.Equal(t, "hello", incoming.Message.Text)
	assert.Equal(t, model.ID("7"), incoming.Message.SenderID)
	assert.False(t, incoming.Message.Timestamp.IsZero())

	out := model.NewOutgoing("me", "7", "reply", time.Now())
	sent := SendCmd(c, out)().(SentMsg)
	require.NoError(t, sent.Err)

	select {
	case m := <-received:
		assert.Equal(t, "reply", m.Text)
		assert.Equal(t, model.ID("7"), m.ReceiverID)
		assert.Equal(t, model.ID("me"), m.SenderID)
		assert.Equal(t, model.MediaTypeText, m.MediaType)
	case <-time.After(5 * time.Second):
		t.Fatal("server never received the message")
	}

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Send(out), ErrNotConnected)
}

func TestListen_ReportsDisconnect(t *testing.T) {
	url := serve(t, func(conn *websocket.Conn, r *http.Request) {
		readEnvelope(t, conn)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "bye"))
	})

	c, err := Dial(context.Background(), url, testSession(), nil)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Login("me"))

	msg := ListenCmd(c)()
	dis, ok := msg.(DisconnectedMsg)
	require.True(t, ok)
	assert.Same(t, c, dis.Client)
	assert.True(t, IsNormalClose(dis.Err))
}

func TestConnect_DialFailure(t *testing.T) {
	msg := ConnectCmd("ws://127.0.0.1:1/ws", testSession(), 3, logging.Discard())()
	dis, ok := msg.(DisconnectedMsg)
	require.True(t, ok)
	assert.Error(t, dis.Err)
	assert.Equal(t, 3, dis.Attempt)
}

func TestSendCmd_NilClient(t *testing.T) {
	sent := SendCmd(nil, model.Message{Text: "x"})().(SentMsg)
	assert.ErrorIs(t, sent.Err, ErrNotConnected)
}

func TestBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 2 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{50, 30 * time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Backoff(tt.attempt, 2*time.Second, 30*time.Second), "attempt %d", tt.attempt)
	}
	assert.Equal(t, time.Second, Backoff(1, 0, 0))
}

func TestDecodeMessage(t *testing.T) {
	now := time.Now()
	m, err := DecodeMessage(nil, now)
	require.NoError(t, err)
	assert.True(t, now.Equal(m.Timestamp))

	_, err = DecodeMessage(json.RawMessage(`[1]`), now)
	assert.Error(t, err)
}
