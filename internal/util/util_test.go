// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	data := []byte("hello, world!")

	require.NoError(t, AtomicWriteFile(path, data, 0644))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, content)
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "deep", "test.txt")
	require.NoError(t, AtomicWriteFile(path, []byte("x"), 0644))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	require.NoError(t, AtomicWriteFile(path, []byte("initial"), 0644))
	require.NoError(t, AtomicWriteFile(path, []byte("updated"), 0644))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "updated", string(content))
}

func TestAtomicWriteFile_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	for i := 0; i < 3; i++ {
		require.NoError(t, AtomicWriteFile(path, []byte("{}"), 0600))
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAtomicWriteFile_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, AtomicWriteFile(path, []byte("s"), 0600))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

// =============================================================================
// TEXT TESTS
// =============================================================================

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 6, "hello…"},
		{"hello", 0, ""},
		{"日本語テキスト", 5, "日本…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width), "Truncate(%q, %d)", tt.in, tt.width)
		assert.LessOrEqual(t, Width(Truncate(tt.in, tt.width)), tt.width)
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "   ab", PadLeft("ab", 5))
	assert.Equal(t, 6, Width(PadRight("日本語テキスト", 6)))
}

func TestFold(t *testing.T) {
	assert.Equal(t, Fold("jose"), Fold("José"))
	assert.Equal(t, Fold("MÜLLER"), Fold("muller"))
	assert.True(t, ContainsFold("Dr. Zoë Álvarez", "alva"))
	assert.True(t, ContainsFold("anything", ""))
	assert.False(t, ContainsFold("Alice", "bob"))
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"Jane Doe":          "JD",
		"jane":              "J",
		"Mary Ann Johnson":  "MA",
		"":                  "?",
		"   ":               "?",
		"élodie   martin":   "ÉM",
	}
	for in, want := range tests {
		assert.Equal(t, want, Initials(in), "Initials(%q)", in)
	}
}
