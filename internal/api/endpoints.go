// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/model"
)

// Paging used by the dashboard.
const (
	ContactsPageSize = 50
	MessagesPageSize = 200
)

// Fallback messages shown when the server gives no reason.
const (
	MsgLoginFailed   = "Login failed"
	MsgSignupFailed  = "Signup failed"
	MsgContactsError = "Could not load contacts"
	MsgMessagesError = "Could not load messages"
)

type authResponse struct {
	User  auth.User `json:"user"`
	Token string    `json:"token"`
}

// Login exchanges email and password for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	creds := auth.Credentials{Mode: auth.ModeLogin, Email: email, Password: password}.Normalized()
	return c.authenticate(ctx, "/auth/login", creds, MsgLoginFailed)
}

// Signup creates an account and returns its session.
func (c *Client) Signup(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
	creds.Mode = auth.ModeSignup
	return c.authenticate(ctx, "/auth/signup", creds.Normalized(), MsgSignupFailed)
}

// Authenticate dispatches to Login or Signup by creds.Mode.
func (c *Client) Authenticate(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
	if creds.Mode == auth.ModeSignup {
		return c.Signup(ctx, creds)
	}
	return c.Login(ctx, creds.Email, creds.Password)
}

func (c *Client) authenticate(ctx context.Context, path string, creds auth.Credentials, fallback string) (*auth.Session, error) {
	var resp authResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     path,
		body:     creds,
		fallback: fallback,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &APIError{Status: http.StatusOK, Message: fallback}
	}
	return auth.NewSession(resp.User, resp.Token, time.Now()), nil
}

// Connection is one accepted relation between a student and a preceptor.
type Connection struct {
	Student   *model.Contact `json:"student"`
	Preceptor *model.Contact `json:"preceptor"`
}

type relationResponse struct {
	Connections []Connection `json:"connections"`
}

// Connections lists the users on the other side of the session user's
// accepted relations, optionally filtered server-side by name.
func (c *Client) Connections(ctx context.Context, sess *auth.Session, name string) ([]model.Contact, error) {
	if !sess.Valid() {
		return nil, ErrNoSession
	}
	q := url.Values{}
	q.Set("type", "accepted")
	q.Set("page", "1")
	q.Set("limit", strconv.Itoa(ContactsPageSize))
	if name != "" {
		q.Set("name", name)
	}

	var resp relationResponse
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/relation",
		query:    q,
		session:  sess,
		fallback: MsgContactsError,
	}, &resp); err != nil {
		return nil, err
	}
	return OtherSides(resp.Connections, sess.User.ID), nil
}

// OtherSides maps each connection to the participant that is not me.
// Connections whose other side is missing are dropped.
func OtherSides(conns []Connection, me model.ID) []model.Contact {
	out := make([]model.Contact, 0, len(conns))
	for _, rc := range conns {
		other := rc.Student
		if rc.Student != nil && rc.Student.ID == me {
			other = rc.Preceptor
		}
		if other != nil {
			out = append(out, *other)
		}
	}
	return out
}

type chatResponse struct {
	Data []model.WireMessage `json:"data"`
}

// Messages returns the latest messages exchanged with contact, oldest first.
func (c *Client) Messages(ctx context.Context, sess *auth.Session, contact model.ID) ([]model.Message, error) {
	if !sess.Valid() {
		return nil, ErrNoSession
	}
	if contact.IsZero() {
		return nil, errors.New("contact id is required")
	}
	q := url.Values{}
	q.Set("page", "1")
	q.Set("pageSize", strconv.Itoa(MessagesPageSize))

	var resp chatResponse
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/chats/" + contact.String(),
		query:    q,
		session:  sess,
		fallback: MsgMessagesError,
	}, &resp); err != nil {
		return nil, err
	}
	return model.NormalizeAll(resp.Data, time.Now()), nil
}
