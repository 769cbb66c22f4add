// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jeranaias/chatconnect-tui/internal/history"
	"github.com/jeranaias/chatconnect-tui/internal/util"
)

// HandleHistory runs `history export`.
func HandleHistory(ctx context.Context, env *Env, args Args) error {
	p := args.Parser()
	switch p.Subcommand() {
	case "export":
	case "":
		return NewUsageError("history needs a subcommand", "chatconnect history export --format json")
	default:
		return NewUsageError(fmt.Sprintf("unknown history subcommand %q", p.Subcommand()), "chatconnect history export")
	}

	format, err := history.ParseFormat(p.Flag("format"))
	if err != nil {
		return NewUsageError(err.Error(), "chatconnect history export --format csv")
	}

	rows, err := env.History.Load(ctx)
	if err != nil {
		return NewCommandError("history", "export", "could not load history", err)
	}
	if q := p.Flag("filter"); q != "" {
		rows = history.Filter(rows, q)
	}

	out := p.Flag("out")
	if out == "" {
		return history.Export(env.Out, rows, format)
	}

	var buf bytes.Buffer
	if err := history.Export(&buf, rows, format); err != nil {
		return NewCommandError("history", "export", "could not encode rows", err)
	}
	if err := util.AtomicWriteFile(out, buf.Bytes(), 0o600); err != nil {
		return NewCommandError("history", "export", out, err)
	}
	env.Logger.Info("history exported", "rows", len(rows), "format", format, "path", out)
	fmt.Fprintf(env.Out, "%s Exported %d rows to %s\n", SuccessStyle.Render("[OK]"), len(rows), out)
	return nil
}
