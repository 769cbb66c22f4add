// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root Bubble Tea model of the ChatConnect client.
//
// The model owns two screens. The auth screen collects login or signup
// credentials; the dashboard hosts the Chat, History, Profile, Settings and
// Analytics tabs behind a collapsible sidebar, with a status bar showing
// connection state, the signed-in user and the idle timer.
//
// All I/O runs in tea.Cmds against the Backend, LocalStore and SessionSaver
// interfaces so tests can drive Update with fakes.
package app
