// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package window

import "sync"

// Store is an ordered, replace-only sequence of rows.
//
// Rows are never mutated in place. Replace swaps the whole sequence and
// Append extends it; both change Len and bump Version.
type Store[T any] struct {
	mu      sync.RWMutex
	rows    []T
	version uint64
}

// NewStore returns a store holding a copy of rows.
func NewStore[T any](rows []T) *Store[T] {
	s := &Store[T]{}
	s.rows = append([]T(nil), rows...)
	return s
}

// Replace swaps the store contents for a copy of rows.
func (s *Store[T]) Replace(rows []T) {
	cp := append([]T(nil), rows...)
	s.mu.Lock()
	s.rows = cp
	s.version++
	s.mu.Unlock()
}

// Append adds rows to the end of the store.
func (s *Store[T]) Append(rows ...T) {
	if len(rows) == 0 {
		return
	}
	s.mu.Lock()
	// Copy so slices handed out by Slice never observe the append.
	next := make([]T, 0, len(s.rows)+len(rows))
	next = append(next, s.rows...)
	next = append(next, rows...)
	s.rows = next
	s.version++
	s.mu.Unlock()
}

// Len returns the number of rows.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Version increments on every Replace or Append.
func (s *Store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// At returns row i and whether it exists.
func (s *Store[T]) At(i int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var zero T
	if i < 0 || i >= len(s.rows) {
		return zero, false
	}
	return s.rows[i], true
}

// Slice returns rows [start, end), re-clamped to the current length.
// It never panics on stale indices.
func (s *Store[T]) Slice(start, end int) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := Range{Start: start, End: end}.Clamp(len(s.rows))
	if r.Empty() {
		return nil
	}
	return s.rows[r.Start:r.End:r.End]
}

// All returns every row. The returned slice must not be modified.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows[:len(s.rows):len(s.rows)]
}
