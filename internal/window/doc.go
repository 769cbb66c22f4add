// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package window implements row virtualization for long, fixed-height lists.
//
// Only the rows that intersect the viewport, plus an overscan margin on each
// side, are ever materialized. The package is split into four parts:
//
//   - Engine: pure range arithmetic over (scroll offset, row count)
//   - Tracker: the latest scroll offset, last write wins
//   - Store: an ordered, replace-only row sequence
//   - View and Frame: slice the store, position the slice inside a spacer
//     of the full content height
//
// # Usage
//
//	eng, err := window.New(window.Config{RowHeight: 56, ViewportHeight: 560, Overscan: 10})
//	if err != nil {
//		return err
//	}
//	view := window.NewView[history.Row](eng)
//	view.Replace(rows)
//	view.ScrollTo(5600)
//	frame := view.Frame() // rows [90, 120), OffsetTop 5040
//
// All heights and offsets share one unit. The terminal table uses
// "virtual pixels" so the same defaults work for any renderer.
package window
