// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatconnect-tui/internal/api"
	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/config"
	"github.com/jeranaias/chatconnect-tui/internal/history"
	"github.com/jeranaias/chatconnect-tui/internal/logging"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		bools    []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"show"},
			wantSub: "show",
		},
		{
			name:    "flag with value",
			args:    []string{"export", "--format", "json"},
			wantSub: "export",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("format") != "json" {
					t.Errorf("Flag(format) = %q, want json", p.Flag("format"))
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"export", "--out=h.csv"},
			wantSub: "export",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("out") != "h.csv" {
					t.Errorf("Flag(out) = %q, want h.csv", p.Flag("out"))
				}
			},
		},
		{
			name:    "declared boolean does not swallow the next word",
			args:    []string{"--json", "show"},
			bools:   []string{"json"},
			wantSub: "show",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("json") {
					t.Error("BoolFlag(json) should be true")
				}
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"set", "--", "ui.language", "--weird"},
			wantSub: "set",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Positional(2) != "--weird" {
					t.Errorf("Positional(2) = %q, want --weird", p.Positional(2))
				}
			},
		},
		{
			name: "no args",
			args: []string{},
			validate: func(t *testing.T, p *ArgParser) {
				if p.PositionalCount() != 0 {
					t.Errorf("PositionalCount() = %d, want 0", p.PositionalCount())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.bools)
			if p.Subcommand() != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", p.Subcommand(), tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_FlagIntOrDefault(t *testing.T) {
	p := NewArgParser([]string{"--limit", "25", "--bad", "x"}, nil)
	assert.Equal(t, 25, p.FlagIntOrDefault("limit", 10))
	assert.Equal(t, 10, p.FlagIntOrDefault("bad", 10))
	assert.Equal(t, 10, p.FlagIntOrDefault("missing", 10))
}

// =============================================================================
// COMMAND ROUTING (cli.go)
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{nil, CmdTUI},
		{[]string{"tui"}, CmdTUI},
		{[]string{"login"}, CmdLogin},
		{[]string{"signup"}, CmdSignup},
		{[]string{"logout"}, CmdLogout},
		{[]string{"whoami"}, CmdWhoami},
		{[]string{"config", "get", "ui.language"}, CmdConfig},
		{[]string{"history", "export"}, CmdHistory},
		{[]string{"--version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"bogus"}, CmdUnknown},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.argv, " "), func(t *testing.T) {
			cmd, _ := ParseArgs(tt.argv)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestParseArgs_GlobalFlagsAnywhere(t *testing.T) {
	cmd, args := ParseArgs([]string{
		"--config", "/tmp/c.toml", "history", "--debug=/tmp/d.log",
		"export", "--api-url", "http://api", "--format", "json", "--socket-url=ws://rt",
	})
	require.Equal(t, CmdHistory, cmd)
	assert.Equal(t, "/tmp/c.toml", args.ConfigPath)
	assert.Equal(t, "/tmp/d.log", args.DebugFile)
	assert.Equal(t, "http://api", args.APIURL)
	assert.Equal(t, "ws://rt", args.SocketURL)
	assert.Equal(t, []string{"export", "--format", "json"}, args.Raw)
}

func TestRun_UnknownCommand(t *testing.T) {
	env, _, _ := newTestEnv(t)
	cmd, args := ParseArgs([]string{"frobnicate"})
	err := Run(context.Background(), cmd, args, env)
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestRun_VersionAndHelp(t *testing.T) {
	env, out, _ := newTestEnv(t)
	require.NoError(t, Run(context.Background(), CmdVersion, Args{}, env))
	assert.Contains(t, out.String(), "chatconnect "+Version)

	out.Reset()
	require.NoError(t, Run(context.Background(), CmdHelp, Args{}, env))
	assert.Contains(t, out.String(), "history export")
}

// =============================================================================
// EXIT CODES (errors.go)
// =============================================================================

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", NewUsageError("bad", ""), ExitUsageError},
		{"field errors", auth.FieldErrors{auth.FieldEmail: "Email is required"}, ExitUsageError},
		{"invalid config", config.ValidateErrors{{Field: "history.row_height", Message: "must be positive"}}, ExitConfigError},
		{"no session", auth.ErrNoSession, ExitAuthError},
		{"unauthorized", NewCommandError("login", "", "nope", api.ErrUnauthorized), ExitAuthError},
		{"not found", &NotFoundError{Resource: "config key", ID: "x"}, ExitNotFoundError},
		{"deadline", context.DeadlineExceeded, ExitTimeoutError},
		{"server error", &api.APIError{Status: 500}, ExitGeneralError},
		{"other", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestDisplayError_ListsFieldErrors(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, auth.FieldErrors{auth.FieldPassword: "Password is required", auth.FieldEmail: "Email is required"})
	out := buf.String()
	assert.Less(t, strings.Index(out, "email"), strings.Index(out, "password"))

	buf.Reset()
	DisplayError(&buf, auth.ErrNoSession)
	assert.Contains(t, buf.String(), "chatconnect login")
}

// =============================================================================
// HANDLERS
// =============================================================================

type fakeAuth struct {
	got  auth.Credentials
	sess *auth.Session
	err  error
}

func (f *fakeAuth) Authenticate(_ context.Context, c auth.Credentials) (*auth.Session, error) {
	f.got = c
	return f.sess, f.err
}

type memSessions struct {
	sess    *auth.Session
	cleared bool
}

func (m *memSessions) Save(s *auth.Session) error { m.sess = s; return nil }
func (m *memSessions) Clear() error               { m.sess = nil; m.cleared = true; return nil }
func (m *memSessions) Load() (*auth.Session, error) {
	if m.sess == nil {
		return nil, auth.ErrNoSession
	}
	return m.sess, nil
}

type scriptedPrompter struct {
	answers []string
	asked   []string
}

func (s *scriptedPrompter) next(label string) (string, error) {
	s.asked = append(s.asked, label)
	if len(s.answers) == 0 {
		return "", ErrAborted
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func (s *scriptedPrompter) Line(label, _ string) (string, error) { return s.next(label) }
func (s *scriptedPrompter) Secret(label string) (string, error)  { return s.next(label) }
func (s *scriptedPrompter) Close() error                         { return nil }

func newTestEnv(t *testing.T) (*Env, *bytes.Buffer, *memSessions) {
	t.Helper()
	out := &bytes.Buffer{}
	sessions := &memSessions{}
	env := &Env{
		Config:     config.Default(),
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Auth:       &fakeAuth{},
		Sessions:   sessions,
		History:    history.MockSource{Rows: 20},
		Out:        out,
		Logger:     logging.Discard(),
	}
	return env, out, sessions
}

func testUser() auth.User {
	return auth.User{ID: "u1", FullName: "Ada Lovelace", Email: "ada@example.com", Role: auth.RolePreceptor}
}

func TestHandleLogin_FlagsAndPasswordStdin(t *testing.T) {
	env, out, sessions := newTestEnv(t)
	fa := &fakeAuth{sess: auth.NewSession(testUser(), "tok", time.Now())}
	env.Auth = fa
	env.In = strings.NewReader("secret1\n")

	_, args := ParseArgs([]string{"login", "--email", " Ada@Example.com ", "--password-stdin"})
	require.NoError(t, HandleLogin(context.Background(), env, args, auth.ModeLogin))

	assert.Equal(t, "secret1", fa.got.Password)
	assert.Equal(t, "Ada@Example.com", fa.got.Email)
	assert.Equal(t, "tok", sessions.sess.Token)
	assert.Contains(t, out.String(), "Signed in as Ada Lovelace (Preceptor)")
}

func TestHandleLogin_PromptsForMissingValues(t *testing.T) {
	env, _, _ := newTestEnv(t)
	env.Auth = &fakeAuth{sess: auth.NewSession(testUser(), "tok", time.Now())}
	pr := &scriptedPrompter{answers: []string{"Ada Lovelace", "ada@example.com", "secret1"}}
	env.NewPrompter = func() (Prompter, error) { return pr, nil }

	_, args := ParseArgs([]string{"signup", "--role", "preceptor"})
	require.NoError(t, HandleLogin(context.Background(), env, args, auth.ModeSignup))
	assert.Equal(t, []string{"Full name", "Email", "Password"}, pr.asked)
}

func TestHandleLogin_Errors(t *testing.T) {
	t.Run("not interactive", func(t *testing.T) {
		env, _, _ := newTestEnv(t)
		_, args := ParseArgs([]string{"login", "--email", "ada@example.com"})
		err := HandleLogin(context.Background(), env, args, auth.ModeLogin)
		assert.ErrorIs(t, err, ErrNotInteractive)
	})

	t.Run("validation", func(t *testing.T) {
		env, _, _ := newTestEnv(t)
		env.In = strings.NewReader("123\n")
		_, args := ParseArgs([]string{"login", "--email", "nope", "--password-stdin"})
		err := HandleLogin(context.Background(), env, args, auth.ModeLogin)
		var fe auth.FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Contains(t, fe, auth.FieldEmail)
		assert.Contains(t, fe, auth.FieldPassword)
	})

	t.Run("unknown role", func(t *testing.T) {
		env, _, _ := newTestEnv(t)
		_, args := ParseArgs([]string{"signup", "--role", "admin"})
		err := HandleLogin(context.Background(), env, args, auth.ModeSignup)
		assert.Equal(t, ExitUsageError, ExitCode(err))
	})

	t.Run("server message", func(t *testing.T) {
		env, _, sessions := newTestEnv(t)
		env.Auth = &fakeAuth{err: &api.APIError{Status: 401, Message: "Invalid credentials"}}
		env.In = strings.NewReader("secret1\n")
		_, args := ParseArgs([]string{"login", "--email", "ada@example.com", "--password-stdin"})
		err := HandleLogin(context.Background(), env, args, auth.ModeLogin)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid credentials")
		assert.Equal(t, ExitAuthError, ExitCode(err))
		assert.Nil(t, sessions.sess)
	})
}

func TestHandleLogoutAndWhoami(t *testing.T) {
	env, out, sessions := newTestEnv(t)
	err := HandleWhoami(env)
	assert.ErrorIs(t, err, auth.ErrNoSession)

	sessions.sess = auth.NewSession(testUser(), "tok", time.Now())
	require.NoError(t, HandleWhoami(env))
	assert.Contains(t, out.String(), "Ada Lovelace")
	assert.Contains(t, out.String(), "ada@example.com")

	wiped := false
	env.WipeLocal = func(context.Context) error { wiped = true; return nil }
	require.NoError(t, HandleLogout(context.Background(), env))
	assert.True(t, sessions.cleared)
	assert.True(t, wiped)
}

func TestHandleConfig(t *testing.T) {
	env, out, _ := newTestEnv(t)

	_, args := ParseArgs([]string{"config", "get", "history.row_height"})
	require.NoError(t, HandleConfig(env, args))
	assert.Equal(t, "56\n", out.String())

	_, args = ParseArgs([]string{"config", "set", "history.overscan", "4"})
	require.NoError(t, HandleConfig(env, args))
	loaded, err := config.Load(env.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.History.Overscan)

	// Invalid values never reach disk.
	_, args = ParseArgs([]string{"config", "set", "history.row_height", "0"})
	err = HandleConfig(env, args)
	assert.Equal(t, ExitConfigError, ExitCode(err))
	loaded, err = config.Load(env.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, 56, loaded.History.RowHeight)

	_, args = ParseArgs([]string{"config", "get", "nope.nothing"})
	assert.Equal(t, ExitNotFoundError, ExitCode(HandleConfig(env, args)))

	out.Reset()
	_, args = ParseArgs([]string{"config", "path"})
	require.NoError(t, HandleConfig(env, args))
	assert.Contains(t, out.String(), env.ConfigPath)
}

func TestHandleHistory_Export(t *testing.T) {
	env, out, _ := newTestEnv(t)

	_, args := ParseArgs([]string{"history", "export", "--format", "json", "--filter", "video"})
	require.NoError(t, HandleHistory(context.Background(), env, args))
	var rows []history.Row
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	assert.Len(t, rows, 10)

	path := filepath.Join(t.TempDir(), "h.csv")
	_, args = ParseArgs([]string{"history", "export", "--out", path})
	require.NoError(t, HandleHistory(context.Background(), env, args))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 21, strings.Count(string(data), "\n"))

	_, args = ParseArgs([]string{"history", "export", "--format", "xml"})
	assert.Equal(t, ExitUsageError, ExitCode(HandleHistory(context.Background(), env, args)))
}
