// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the REST client for the ChatConnect backend.
//
// Every authenticated call takes the *auth.Session explicitly; the client
// itself holds no credentials. Requests are rate limited client-side and
// tagged with an X-Request-ID. Idempotent GETs are retried on transient
// failures with exponential backoff; POSTs are never retried.
//
// # Endpoints
//
//   - POST /auth/login, POST /auth/signup
//   - GET  /relation?type=accepted&page=1&limit=50[&name=]
//   - GET  /chats/{id}?page=1&pageSize=200
package api
