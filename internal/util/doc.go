// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across chatconnect.
//
// # Key Functions
//
// Text:
//   - Truncate, PadRight: display-width aware cell fitting for tables
//   - Fold, ContainsFold: case and accent insensitive matching for search
//   - Initials: two-letter avatar text for a name
//
// Files:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	cell := util.PadRight(util.Truncate(name, 24), 24)
//
//	if util.ContainsFold(contact.FullName, query) {
//		...
//	}
//
//	err := util.AtomicWriteFile(path, data, 0600)
package util
