// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/config"
	"github.com/jeranaias/chatconnect-tui/internal/logging"
	"github.com/jeranaias/chatconnect-tui/internal/model"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Options{
		BaseURL:        srv.URL + "/api",
		MaxRetries:     2,
		RetryBaseDelay: time.Millisecond,
		Logger:         logging.Discard(),
	})
	require.NoError(t, err)
	return c
}

func testSession() *auth.Session {
	return auth.NewSession(auth.User{ID: "me", FullName: "Me"}, "tok", time.Now())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNew_RejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "not a url", "/relative"} {
		_, err := New(Options{BaseURL: u})
		assert.Error(t, err, u)
	}
}

func TestFromConfig(t *testing.T) {
	c, err := FromConfig(config.Default().API, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", c.BaseURL())
}

// =============================================================================
// AUTH
// =============================================================================

func TestLogin_Success(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"email": "a@b.c", "password": "secret1"}, body)

		writeJSON(w, 200, map[string]any{
			"user":  map[string]any{"id": 5, "fullName": "Ana", "email": "a@b.c", "role": "student"},
			"token": "jwt",
		})
	}))

	sess, err := c.Login(context.Background(), " a@b.c ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jwt", sess.Token)
	assert.Equal(t, model.ID("5"), sess.User.ID)
	assert.Equal(t, auth.RoleStudent, sess.User.Role)
	assert.False(t, sess.CreatedAt.IsZero())
}

func TestLogin_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		wantMsg string
	}{
		{"server message", 401, map[string]string{"message": "Invalid credentials"}, "Invalid credentials"},
		{"no message", 400, map[string]string{}, "Login failed"},
		{"missing token", 200, map[string]any{"user": map[string]any{"id": 1}}, "Login failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				writeJSON(w, tt.status, tt.body)
			}))
			_, err := c.Login(context.Background(), "a@b.c", "secret1")
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, UserMessage(err, MsgLoginFailed))
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "POST is never retried")
		})
	}
}

func TestLogin_ServerErrorNotRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	_, err := c.Login(context.Background(), "a@b.c", "secret1")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSignup_SendsProfileFields(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/signup", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ana", body["fullName"])
		assert.Equal(t, "student", body["role"])
		writeJSON(w, 201, map[string]any{"user": map[string]any{"id": "u1"}, "token": "t"})
	}))

	sess, err := c.Authenticate(context.Background(), auth.Credentials{
		Mode: auth.ModeSignup, Email: "a@b.c", Password: "secret1", FullName: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "t", sess.Token)
}

// =============================================================================
// CONTACTS AND MESSAGES
// =============================================================================

func TestConnections(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/relation", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		q := r.URL.Query()
		assert.Equal(t, "accepted", q.Get("type"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "50", q.Get("limit"))
		assert.Equal(t, "bo", q.Get("name"))
		writeJSON(w, 200, map[string]any{"connections": []any{
			map[string]any{
				"student":   map[string]any{"id": "me", "fullName": "Me"},
				"preceptor": map[string]any{"id": 9, "fullName": "Dr. Bob", "status": "online"},
			},
			map[string]any{
				"student":   map[string]any{"id": "s2", "fullName": "Bo Student"},
				"preceptor": map[string]any{"id": "me"},
			},
			map[string]any{"student": map[string]any{"id": "me"}, "preceptor": nil},
		}})
	}))

	contacts, err := c.Connections(context.Background(), testSession(), "bo")
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, model.ID("9"), contacts[0].ID)
	assert.True(t, contacts[0].Online())
	assert.Equal(t, "Bo Student", contacts[1].FullName)
}

func TestConnections_NameOmittedWhenEmpty(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, has := r.URL.Query()["name"]
		assert.False(t, has)
		writeJSON(w, 200, map[string]any{})
	}))
	contacts, err := c.Connections(context.Background(), testSession(), "")
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestAuthenticatedCallsNeedSession(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())
	_, err := c.Connections(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = c.Messages(context.Background(), &auth.Session{}, "x")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = c.Messages(context.Background(), testSession(), "")
	assert.Error(t, err)
}

func TestMessages_NormalizesAndRetries(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, "/api/chats/42", r.URL.Path)
		assert.Equal(t, "200", r.URL.Query().Get("pageSize"))
		writeJSON(w, 200, map[string]any{"data": []any{
			map[string]any{"message": "hi", "senderId": 42, "timestamp": "2024-01-10T08:00:00Z"},
			map[string]any{"content": "legacy", "from": "me"},
		}})
	}))

	msgs, err := c.Messages(context.Background(), testSession(), "42")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hi", msgs[0].Text)
	assert.Equal(t, model.ID("42"), msgs[0].SenderID)
	assert.Equal(t, "legacy", msgs[1].Text)
	assert.True(t, msgs[1].FromMe("me"))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGet_GivesUpAfterRetries(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, 500, map[string]string{"message": "boom"})
	}))
	_, err := c.Connections(context.Background(), testSession(), "")
	require.Error(t, err)
	assert.Equal(t, "boom", UserMessage(err, "x"))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestUnauthorized(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	_, err := c.Connections(context.Background(), testSession(), "")
	assert.True(t, errors.Is(err, ErrUnauthorized))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Could not load contacts", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "HTTP 401")
}

func TestContextCancelStopsRetries(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	c.baseDelay = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Connections(ctx, testSession(), "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUserMessage_Fallback(t *testing.T) {
	assert.Equal(t, "Login failed", UserMessage(errors.New("dial tcp: refused"), MsgLoginFailed))
}
