// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// chatconnect.
//
// # Configuration Sources
//
// Configuration is loaded from (in order of precedence):
//  1. Environment variables (CHATCONNECT_*)
//  2. ~/.chatconnect/config.toml
//  3. ~/.chatconnect/config.json
//  4. Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return err
//	}
//	eng, err := window.New(cfg.History.WindowConfig())
//
// Changes made while the TUI is running are picked up by Watch.
package config
