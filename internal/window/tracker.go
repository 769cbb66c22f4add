// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package window

import "sync"

// Tracker holds the current scroll offset of a windowed list.
//
// Updates are last-write-wins: there is no queue and no smoothing, so a
// burst of scroll events collapses to whatever arrived last. Every change
// bumps Version, which dependents compare to decide whether to recompute.
type Tracker struct {
	mu      sync.Mutex
	offset  int
	version uint64
}

// NewTracker returns a tracker at offset 0.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Offset returns the latest offset.
func (t *Tracker) Offset() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset
}

// Version increments on every change of the offset.
func (t *Tracker) Version() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version
}

// Set records a new offset. Negative offsets clamp to 0.
// Returns true if the stored offset changed.
func (t *Tracker) Set(offset int) bool {
	if offset < 0 {
		offset = 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if offset == t.offset {
		return false
	}
	t.offset = offset
	t.version++
	return true
}

// ScrollBy moves the offset by delta and returns the new offset.
func (t *Tracker) ScrollBy(delta int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	next := t.offset + delta
	if next < 0 {
		next = 0
	}
	if next != t.offset {
		t.offset = next
		t.version++
	}
	return t.offset
}

// Clamp pulls the offset back to max if it lies beyond it.
func (t *Tracker) Clamp(max int) bool {
	if max < 0 {
		max = 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.offset <= max {
		return false
	}
	t.offset = max
	t.version++
	return true
}
