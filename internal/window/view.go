// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package window

import "sync"

// View ties an Engine, a Tracker and a Store together and memoizes the
// visible range.
//
// The range is recomputed when either the scroll offset or the row count
// differs from the last computation. Replacing the rows with a sequence of
// the same length keeps the range but re-slices the new rows.
type View[T any] struct {
	engine  *Engine
	tracker *Tracker
	store   *Store[T]

	mu         sync.Mutex
	memoValid  bool
	memoOffset int
	memoCount  int
	memoRange  Range
	recomputes int
}

// NewView returns an empty view driven by e.
func NewView[T any](e *Engine) *View[T] {
	return &View[T]{
		engine:  e,
		tracker: NewTracker(),
		store:   NewStore[T](nil),
	}
}

// Engine returns the view's engine.
func (v *View[T]) Engine() *Engine {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.engine
}

// Tracker returns the view's scroll tracker.
func (v *View[T]) Tracker() *Tracker { return v.tracker }

// SetEngine swaps the geometry, e.g. after a terminal resize. The scroll
// offset is kept and the memo is dropped.
func (v *View[T]) SetEngine(e *Engine) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.engine = e
	v.memoValid = false
}

// Store returns the view's row store.
func (v *View[T]) Store() *Store[T] { return v.store }

// Len returns the current row count.
func (v *View[T]) Len() int { return v.store.Len() }

// Offset returns the current scroll offset.
func (v *View[T]) Offset() int { return v.tracker.Offset() }

// Replace swaps the rows. Offsets beyond the new content are kept so the
// caller decides whether to snap back; the range is clamped regardless.
func (v *View[T]) Replace(rows []T) {
	v.store.Replace(rows)
}

// Append adds rows to the end of the list.
func (v *View[T]) Append(rows ...T) {
	v.store.Append(rows...)
}

// ScrollTo sets the scroll offset. Returns true if it changed.
func (v *View[T]) ScrollTo(offset int) bool {
	return v.tracker.Set(offset)
}

// ScrollBy moves the scroll offset, bounded to [0, MaxOffset].
func (v *View[T]) ScrollBy(delta int) int {
	next := v.tracker.Offset() + delta
	if m := v.MaxOffset(); next > m {
		next = m
	}
	v.tracker.Set(next)
	return v.tracker.Offset()
}

// ScrollToRow moves the offset as little as possible so that row i is fully
// inside the viewport.
func (v *View[T]) ScrollToRow(i int) {
	n := v.store.Len()
	if n == 0 {
		v.tracker.Set(0)
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	e := v.Engine()
	cfg := e.cfg
	top := e.OffsetTop(i)
	bottom := top + cfg.RowHeight
	off := v.tracker.Offset()
	switch {
	case top < off:
		v.tracker.Set(top)
	case bottom > off+cfg.ViewportHeight:
		v.tracker.Set(bottom - cfg.ViewportHeight)
	}
}

// MaxOffset is the largest useful offset for the current rows.
func (v *View[T]) MaxOffset() int {
	return v.Engine().MaxOffset(v.store.Len())
}

// FirstVisible is the index of the row at the top edge of the viewport,
// ignoring overscan. Returns -1 for an empty list.
func (v *View[T]) FirstVisible() int {
	return v.Engine().RowAt(v.tracker.Offset(), v.store.Len())
}

// Range returns the memoized visible range.
func (v *View[T]) Range() Range {
	off := v.tracker.Offset()
	n := v.store.Len()

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.memoValid || v.memoOffset != off || v.memoCount != n {
		v.memoRange = v.engine.Range(off, n)
		v.memoOffset = off
		v.memoCount = n
		v.memoValid = true
		v.recomputes++
	}
	return v.memoRange
}

// Frame returns the rows to render and their placement.
func (v *View[T]) Frame() Frame[T] {
	r := v.Range()
	return PresentRange(v.Engine(), v.store, r)
}

// Recomputes reports how many times the range has been recomputed.
func (v *View[T]) Recomputes() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.recomputes
}
