// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package window

// Frame is what a renderer needs to draw one pass of a windowed list: the
// materialized rows and where to place them inside a spacer of TotalHeight.
type Frame[T any] struct {
	Rows        []T
	Range       Range
	RowHeight   int
	OffsetTop   int
	TotalHeight int
}

// Present slices store for the given scroll offset.
//
// The range is computed against the store's current length, so indices can
// never be stale here. TotalHeight covers every row, materialized or not.
func Present[T any](e *Engine, store *Store[T], scrollOffset int) Frame[T] {
	return PresentRange(e, store, e.Range(scrollOffset, store.Len()))
}

// PresentRange slices store for a range computed earlier. The range is
// re-clamped against the current row count before slicing.
func PresentRange[T any](e *Engine, store *Store[T], r Range) Frame[T] {
	n := store.Len()
	r = r.Clamp(n)
	rows := store.Slice(r.Start, r.End)
	// Slice and Len take the lock separately; trust what was sliced.
	r.End = r.Start + len(rows)
	return Frame[T]{
		Rows:        rows,
		Range:       r,
		RowHeight:   e.cfg.RowHeight,
		OffsetTop:   e.OffsetTop(r.Start),
		TotalHeight: e.TotalHeight(n),
	}
}

// BottomSpace is the spacer height below the materialized rows.
func (f Frame[T]) BottomSpace() int {
	rest := f.TotalHeight - f.OffsetTop - len(f.Rows)*f.RowHeight
	if rest < 0 {
		return 0
	}
	return rest
}

// Index returns the absolute row index of the i-th materialized row.
func (f Frame[T]) Index(i int) int {
	return f.Range.Start + i
}
