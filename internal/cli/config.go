// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/chatconnect-tui/internal/config"
)

// HandleConfig runs `config show|get|set|reset|path|keys`.
func HandleConfig(env *Env, args Args) error {
	p := args.Parser("json")
	switch p.Subcommand() {
	case "", "show":
		if p.BoolFlag("json") {
			enc := json.NewEncoder(env.Out)
			enc.SetIndent("", "  ")
			return enc.Encode(env.Config)
		}
		fmt.Fprint(env.Out, env.Config.String())
		return nil

	case "get":
		key := p.Positional(1)
		if key == "" {
			return NewUsageError("config get needs a key", "chatconnect config get ui.dark_mode")
		}
		v, err := env.Config.Get(key)
		if err != nil {
			return &NotFoundError{Resource: "config key", ID: key}
		}
		fmt.Fprintln(env.Out, v)
		return nil

	case "set":
		key, value := p.Positional(1), p.Positional(2)
		if key == "" || p.PositionalCount() < 3 {
			return NewUsageError("config set needs a key and a value", "chatconnect config set history.overscan 5")
		}
		return configSet(env, key, value)

	case "reset":
		return configSave(env, config.Default(), "Configuration reset to defaults")

	case "path":
		path, err := configPath(env)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Out, path)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(env.Out, DimStyle.Render("(not created yet)"))
		}
		return nil

	case "keys":
		fmt.Fprintln(env.Out, strings.Join(config.Keys(), "\n"))
		return nil

	default:
		return NewUsageError(fmt.Sprintf("unknown config subcommand %q", p.Subcommand()), "chatconnect config show")
	}
}

// configSet changes one key on a copy, so an invalid value never reaches
// disk.
func configSet(env *Env, key, value string) error {
	next := env.Config.Clone()
	if err := next.Set(key, value); err != nil {
		if _, getErr := next.Get(key); getErr != nil {
			return &NotFoundError{Resource: "config key", ID: key}
		}
		return NewCommandError("config", "set", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	return configSave(env, next, fmt.Sprintf("%s = %s", key, value))
}

func configSave(env *Env, cfg *config.Config, done string) error {
	path, err := configPath(env)
	if err != nil {
		return err
	}
	if err := config.Save(cfg, path); err != nil {
		return NewCommandError("config", "save", path, err)
	}
	env.Config = cfg
	env.Logger.Info("config saved", "path", path)
	fmt.Fprintf(env.Out, "%s %s\n", SuccessStyle.Render("[OK]"), done)
	return nil
}

func configPath(env *Env) (string, error) {
	if env.ConfigPath != "" {
		return env.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}
