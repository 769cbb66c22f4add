// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth holds the signed-in user's session and the login form rules.
//
// A Session is created by a successful login or signup and handed
// explicitly to everything that makes authenticated requests. There is no
// package-level current session: logout means dropping the value and
// clearing the SessionStore.
//
// # Key Types
//
//   - User: profile of the signed-in user
//   - Session: user plus bearer token
//   - Credentials: login/signup form input and its validation
//   - SessionStore: session.json persistence with the token sealed at rest
//
// # Usage
//
//	store := auth.NewSessionStore(dir, cfg.Session.KDFIterations)
//	sess, err := store.Load()
//	if errors.Is(err, auth.ErrNoSession) {
//		// show the login screen
//	}
package auth
