// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses the chatconnect command line and runs the
// non-interactive commands.
//
// # Usage
//
//	cmd, args := cli.Parse()
//	if cmd == cli.CmdTUI {
//	    // start the Bubble Tea program
//	}
//	err := cli.Run(ctx, cmd, args, env)
//	cli.DisplayError(os.Stderr, err)
//	os.Exit(cli.ExitCode(err))
//
// # Commands
//
//   - login, signup: authenticate and store the sealed session
//   - logout: forget the session and wipe cached conversations
//   - whoami: show the stored user
//   - config show|get|set|reset|path|keys: inspect and edit config.toml
//   - history export: dump the call & message history as CSV or JSON
//   - version, help
//
// Handlers write to Env.Out and return errors; they never exit.
package cli
