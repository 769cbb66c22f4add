// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// SealedPrefix marks a sealed value.
const SealedPrefix = "ENC:"

const (
	keySize  = 32 // AES-256
	saltSize = 16
)

// ErrUnsealFailed is returned when a sealed value cannot be opened, either
// because it was tampered with or the install secret changed.
var ErrUnsealFailed = errors.New("cannot unseal value")

// sealer encrypts short secrets with AES-256-GCM under a key derived by
// PBKDF2-SHA256 from an install secret and a salt.
type sealer struct {
	aead cipher.AEAD
}

func newSealer(secret, salt []byte, iterations int) (*sealer, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty secret")
	}
	key := pbkdf2.Key(secret, salt, iterations, keySize, sha256.New)
	defer zeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return &sealer{aead: aead}, nil
}

// Seal returns "ENC:" + base64(nonce || ciphertext).
func (s *sealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return SealedPrefix + base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func (s *sealer) Open(sealed string) (string, error) {
	raw, ok := strings.CutPrefix(sealed, SealedPrefix)
	if !ok {
		return "", fmt.Errorf("%w: missing prefix", ErrUnsealFailed)
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsealFailed, err)
	}
	ns := s.aead.NonceSize()
	if len(data) < ns {
		return "", fmt.Errorf("%w: too short", ErrUnsealFailed)
	}
	plain, err := s.aead.Open(nil, data[:ns], data[ns:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsealFailed, err)
	}
	return string(plain), nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
