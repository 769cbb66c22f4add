// chatconnect - terminal client for the ChatConnect messaging service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatconnect-tui/internal/api"
	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/cli"
	"github.com/jeranaias/chatconnect-tui/internal/config"
	"github.com/jeranaias/chatconnect-tui/internal/history"
	"github.com/jeranaias/chatconnect-tui/internal/logging"
	"github.com/jeranaias/chatconnect-tui/internal/storage"
	"github.com/jeranaias/chatconnect-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd, args := cli.Parse()

	// These need neither config nor storage.
	switch cmd {
	case cli.CmdVersion, cli.CmdHelp, cli.CmdUnknown:
		if err := cli.Run(context.Background(), cmd, args, &cli.Env{Out: os.Stdout}); err != nil {
			cli.DisplayError(os.Stderr, err)
			return cli.ExitCode(err)
		}
		return cli.ExitSuccess
	}

	level := "info"
	if args.DebugFile != "" {
		level = "debug"
	}
	logger, closeLog, err := logging.Setup(logging.Options{File: args.DebugFile, Level: level})
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.ExitGeneralError
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := setup(args, logger)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.ExitCode(err)
	}
	defer d.close()

	if cmd == cli.CmdTUI {
		err = runTUI(d)
	} else {
		err = cli.Run(ctx, cmd, args, d.env())
	}
	if err != nil {
		logger.Error("command failed", "command", cmd.String(), "error", err)
		cli.DisplayError(os.Stderr, err)
		return cli.ExitCode(err)
	}
	return cli.ExitSuccess
}

// deps holds everything built from the loaded configuration.
type deps struct {
	cfg        *config.Config
	configPath string
	dataDir    string
	client     *api.Client
	db         *storage.DB
	sessions   *auth.SessionStore
	history    history.Source
	logger     *slog.Logger
}

func setup(args cli.Args, logger *slog.Logger) (*deps, error) {
	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return nil, err
	}
	if args.APIURL != "" {
		cfg.API.BaseURL = args.APIURL
	}
	if args.SocketURL != "" {
		cfg.Realtime.SocketURL = args.SocketURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	configPath := args.ConfigPath
	if configPath == "" {
		if configPath, err = config.ConfigPathTOML(); err != nil {
			return nil, err
		}
	}
	dataDir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	client, err := api.FromConfig(cfg.API, logger)
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(filepath.Join(dataDir, storage.DBFileName))
	if err != nil {
		return nil, err
	}

	logger.Info("starting", "version", Version, "config", configPath, "api", client.BaseURL())
	return &deps{
		cfg:        cfg,
		configPath: configPath,
		dataDir:    dataDir,
		client:     client,
		db:         db,
		sessions:   auth.NewSessionStore(dataDir, cfg.Session.KDFIterations),
		history: &history.CachedSource{
			Origin: history.MockSource{Rows: cfg.History.MockRows},
			Cache:  db,
			Logger: logger.With("component", "history"),
		},
		logger: logger,
	}, nil
}

func (d *deps) close() {
	if err := d.db.Close(); err != nil {
		d.logger.Warn("close storage", "error", err)
	}
}

func (d *deps) env() *cli.Env {
	return &cli.Env{
		Config:      d.cfg,
		ConfigPath:  d.configPath,
		Auth:        d.client,
		Sessions:    d.sessions,
		History:     d.history,
		WipeLocal:   d.db.Clear,
		NewPrompter: newPrompter,
		In:          os.Stdin,
		Out:         os.Stdout,
		Logger:      d.logger.With("component", "cli"),
	}
}

func newPrompter() (cli.Prompter, error) {
	p, err := cli.NewTerminalPrompter()
	if err != nil {
		return nil, err
	}
	return p, nil
}

// runTUI restores any stored session and runs the Bubble Tea program.
func runTUI(d *deps) error {
	sess, err := d.sessions.Load()
	if err != nil {
		// Not signed in, or the file is unreadable: show the login screen.
		d.logger.Debug("no stored session", "error", err)
		sess = nil
	}

	watcher, err := config.Watch(d.configPath, 0, d.logger)
	if err != nil {
		d.logger.Warn("config live reload disabled", "error", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	m, err := app.New(app.Options{
		Config:     d.cfg,
		ConfigPath: d.configPath,
		DataDir:    d.dataDir,
		Backend:    d.client,
		Store:      d.db,
		Sessions:   d.sessions,
		History:    d.history,
		Watcher:    watcher,
		Session:    sess,
		Logger:     d.logger,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
