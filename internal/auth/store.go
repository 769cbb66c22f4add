// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeranaias/chatconnect-tui/internal/util"
)

// File names inside the data directory.
const (
	SessionFileName = "session.json"
	SecretFileName  = "session.key"
)

// storedSession is the on-disk shape of session.json.
type storedSession struct {
	Session
	Salt string `json:"salt"`
}

// SessionStore persists the session in a data directory. The token is
// sealed with a key derived from a random per-install secret.
type SessionStore struct {
	dir        string
	iterations int
}

// NewSessionStore returns a store rooted at dir.
func NewSessionStore(dir string, iterations int) *SessionStore {
	if iterations <= 0 {
		iterations = 100000
	}
	return &SessionStore{dir: dir, iterations: iterations}
}

// Path returns the session file path.
func (s *SessionStore) Path() string {
	return filepath.Join(s.dir, SessionFileName)
}

// Save writes sess with its token sealed.
func (s *SessionStore) Save(sess *Session) error {
	if !sess.Valid() {
		return ErrNoSession
	}
	secret, err := s.secret(true)
	if err != nil {
		return err
	}
	salt, err := randomBytes(saltSize)
	if err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	sl, err := newSealer(secret, salt, s.iterations)
	if err != nil {
		return err
	}
	sealed, err := sl.Seal(sess.Token)
	if err != nil {
		return err
	}

	rec := storedSession{Session: *sess, Salt: base64.StdEncoding.EncodeToString(salt)}
	rec.Token = sealed
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := util.AtomicWriteFile(s.Path(), data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load reads the saved session. A missing, corrupt or unopenable file
// yields ErrNoSession so the caller falls back to the login screen.
func (s *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var rec storedSession
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: corrupt session file", ErrNoSession)
	}
	salt, err := base64.StdEncoding.DecodeString(rec.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt salt", ErrNoSession)
	}
	secret, err := s.secret(false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	sl, err := newSealer(secret, salt, s.iterations)
	if err != nil {
		return nil, err
	}
	token, err := sl.Open(rec.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	sess := rec.Session
	sess.Token = token
	if !sess.Valid() {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Clear removes the saved session. Clearing when nothing is saved is not
// an error.
func (s *SessionStore) Clear() error {
	err := os.Remove(s.Path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// secret returns the install secret, creating it when create is set.
func (s *SessionStore) secret(create bool) ([]byte, error) {
	path := filepath.Join(s.dir, SecretFileName)
	b, err := os.ReadFile(path)
	if err == nil && len(b) >= keySize {
		return b, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read secret: %w", err)
	}
	if !create {
		return nil, errors.New("no install secret")
	}
	b, err = randomBytes(keySize)
	if err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	if err := util.AtomicWriteFile(path, b, 0600); err != nil {
		return nil, fmt.Errorf("write secret: %w", err)
	}
	return b, nil
}
