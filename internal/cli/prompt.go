// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrNotInteractive is returned when input is needed but stdin is not a
// terminal.
var ErrNotInteractive = errors.New("input required but stdin is not a terminal")

// ErrAborted is returned when the user cancels a prompt with Ctrl+C.
var ErrAborted = errors.New("aborted")

// Prompter reads answers from the user.
type Prompter interface {
	// Line reads a visible line, returning def when the answer is empty.
	Line(label, def string) (string, error)
	// Secret reads a line without echo.
	Secret(label string) (string, error)
	Close() error
}

// TerminalPrompter prompts with line editing and reads secrets with echo
// disabled.
type TerminalPrompter struct {
	line *liner.State
	out  io.Writer
}

// NewTerminalPrompter returns a prompter bound to the process terminal.
// It fails with ErrNotInteractive when stdin is not a TTY.
func NewTerminalPrompter() (*TerminalPrompter, error) {
	if !IsTTY() {
		return nil, ErrNotInteractive
	}
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &TerminalPrompter{line: line, out: os.Stdout}, nil
}

func (p *TerminalPrompter) Line(label, def string) (string, error) {
	prompt := label + ": "
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, def)
	}
	answer, err := p.line.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrAborted
	}
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Secret reads with x/term rather than liner so the password never enters
// liner's history.
func (p *TerminalPrompter) Secret(label string) (string, error) {
	fmt.Fprint(p.out, label+": ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return string(b), nil
}

func (p *TerminalPrompter) Close() error {
	return p.line.Close()
}
