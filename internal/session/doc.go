// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks activity for a signed-in user.
//
// # Features
//
//   - Optional idle logout with a warning shortly before it fires
//   - Dirty tracking with periodic auto-save (used for unsent drafts)
//   - Bubble Tea tick integration
//
// # Usage
//
//	mgr := session.NewManager(session.ConfigFrom(cfg.Session))
//	// in Init:   return session.TickCmd()
//	// in Update: case session.TickMsg: return m, mgr.HandleTick()
//	//            case session.AutoSaveMsg: save drafts, then mgr.MarkClean()
//	//            case session.TimeoutMsg: log out
package session
