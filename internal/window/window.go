// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package window

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by New when a geometry value is unusable.
var ErrInvalidConfig = errors.New("invalid window config")

// Default geometry used by the history table.
const (
	DefaultRowHeight      = 56
	DefaultViewportHeight = 560
	DefaultOverscan       = 10
)

// Config describes the fixed geometry of a windowed list.
type Config struct {
	// RowHeight is the uniform height of every row. Must be > 0.
	RowHeight int

	// ViewportHeight is the height of the visible area. Must be > 0.
	ViewportHeight int

	// Overscan is the number of extra rows rendered above and below the
	// visible area. Must be >= 0.
	Overscan int
}

// DefaultConfig returns the geometry of the history table.
func DefaultConfig() Config {
	return Config{
		RowHeight:      DefaultRowHeight,
		ViewportHeight: DefaultViewportHeight,
		Overscan:       DefaultOverscan,
	}
}

// Validate reports whether the config can drive an Engine.
func (c Config) Validate() error {
	if c.RowHeight <= 0 {
		return fmt.Errorf("%w: row height must be positive, got %d", ErrInvalidConfig, c.RowHeight)
	}
	if c.ViewportHeight <= 0 {
		return fmt.Errorf("%w: viewport height must be positive, got %d", ErrInvalidConfig, c.ViewportHeight)
	}
	if c.Overscan < 0 {
		return fmt.Errorf("%w: overscan must not be negative, got %d", ErrInvalidConfig, c.Overscan)
	}
	return nil
}

// Range is a half-open interval [Start, End) of row indices.
type Range struct {
	Start int
	End   int
}

// Len returns the number of rows in the range.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Empty reports whether the range covers no rows.
func (r Range) Empty() bool {
	return r.Len() == 0
}

// Contains reports whether row index i falls inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Clamp re-bounds the range against a row count. Used when a range was
// computed for a store that has since shrunk.
func (r Range) Clamp(rowCount int) Range {
	if rowCount < 0 {
		rowCount = 0
	}
	if r.End > rowCount {
		r.End = rowCount
	}
	if r.End < 0 {
		r.End = 0
	}
	if r.Start < 0 {
		r.Start = 0
	}
	if r.Start > r.End {
		r.Start = r.End
	}
	return r
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Engine computes visible ranges for a validated Config.
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	cfg     Config
	visible int
}

// New validates cfg and returns an Engine for it.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:     cfg,
		visible: ceilDiv(cfg.ViewportHeight, cfg.RowHeight) + 2*cfg.Overscan,
	}, nil
}

// MustNew is like New but panics on an invalid config. Intended for
// package-level defaults and tests.
func MustNew(cfg Config) *Engine {
	e, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Config returns the geometry the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// VisibleCount is the maximum number of rows a range can hold:
// ceil(viewport/rowHeight) + 2*overscan.
func (e *Engine) VisibleCount() int {
	return e.visible
}

// Range returns the rows to materialize for a scroll offset.
//
// Negative inputs are treated as zero. The result always satisfies
// 0 <= Start <= End <= rowCount, including when the offset lies past the
// end of the content.
func (e *Engine) Range(scrollOffset, rowCount int) Range {
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if rowCount < 0 {
		rowCount = 0
	}

	start := scrollOffset/e.cfg.RowHeight - e.cfg.Overscan
	if start < 0 {
		start = 0
	}
	end := start + e.visible
	if end > rowCount {
		end = rowCount
	}
	if start > end {
		start = end
	}
	return Range{Start: start, End: end}
}

// OffsetTop is the distance from the top of the content to row i.
func (e *Engine) OffsetTop(i int) int {
	if i < 0 {
		return 0
	}
	return i * e.cfg.RowHeight
}

// TotalHeight is the full content height for rowCount rows.
func (e *Engine) TotalHeight(rowCount int) int {
	if rowCount < 0 {
		return 0
	}
	return rowCount * e.cfg.RowHeight
}

// MaxOffset is the largest offset that still fills the viewport.
func (e *Engine) MaxOffset(rowCount int) int {
	m := e.TotalHeight(rowCount) - e.cfg.ViewportHeight
	if m < 0 {
		return 0
	}
	return m
}

// RowAt returns the index of the row under the given offset, or -1 if the
// offset is beyond the content.
func (e *Engine) RowAt(offset, rowCount int) int {
	if offset < 0 {
		offset = 0
	}
	i := offset / e.cfg.RowHeight
	if i >= rowCount {
		return -1
	}
	return i
}

// Compute is a one-shot helper for callers that hold a Config rather than an
// Engine. Invalid configs yield an empty range.
func Compute(cfg Config, scrollOffset, rowCount int) Range {
	e, err := New(cfg)
	if err != nil {
		return Range{}
	}
	return e.Range(scrollOffset, rowCount)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
