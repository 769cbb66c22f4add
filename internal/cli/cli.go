// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command routing and global flags for chatconnect.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jeranaias/chatconnect-tui/internal/auth"
)

// Version information (overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command is the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdSignup
	CmdLogout
	CmdWhoami
	CmdConfig
	CmdHistory
	CmdVersion
	CmdHelp
	CmdUnknown
)

// String returns the command name as typed.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdLogin:
		return "login"
	case CmdSignup:
		return "signup"
	case CmdLogout:
		return "logout"
	case CmdWhoami:
		return "whoami"
	case CmdConfig:
		return "config"
	case CmdHistory:
		return "history"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds the parsed command line.
type Args struct {
	// Global flags
	ConfigPath string // --config
	DebugFile  string // --debug
	APIURL     string // --api-url
	SocketURL  string // --socket-url

	// Name is the command word as typed, kept for error messages.
	Name string

	// Command-specific arguments, after global flags are removed.
	Raw []string
}

// Parser returns an ArgParser over the command-specific arguments.
func (a Args) Parser(boolNames ...string) *ArgParser {
	return NewArgParser(a.Raw, boolNames)
}

const usageText = `chatconnect - terminal client for ChatConnect

Usage:
  chatconnect [tui]                   Start the terminal UI (default)
  chatconnect login                   Sign in and store the session
  chatconnect signup                  Create an account
  chatconnect logout                  Forget the stored session and local data
  chatconnect whoami                  Show the signed-in user
  chatconnect config [show]           Print the effective configuration
  chatconnect config get <key>        Print one setting
  chatconnect config set <key> <val>  Change and save one setting
  chatconnect config path             Print the config file path
  chatconnect history export          Export call & message history
  chatconnect version                 Show version information
  chatconnect help                    Show this help

Global flags:
  --config <file>       Config file (default ~/.chatconnect/config.toml)
  --debug <file>        Write debug logs to file
  --api-url <url>       Override api.base_url
  --socket-url <url>    Override realtime.socket_url

Login and signup flags:
  --email <addr>        Email (prompted when missing)
  --name <full name>    Full name (signup)
  --role <role>         student or preceptor (signup, default student)
  --password-stdin      Read the password from the first line of stdin

History export flags:
  --format csv|json     Output format (default csv)
  --out <file>          Write to file instead of stdout
  --filter <text>       Only rows whose name or type contains text
`

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv without the program name. Global flags may appear
// anywhere; the first remaining word picks the command.
func ParseArgs(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)
	if len(remaining) == 0 {
		return CmdTUI, args
	}

	args.Name = remaining[0]
	args.Raw = remaining[1:]

	switch strings.ToLower(remaining[0]) {
	case "tui":
		return CmdTUI, args
	case "login", "signin":
		return CmdLogin, args
	case "signup", "register":
		return CmdSignup, args
	case "logout", "signout":
		return CmdLogout, args
	case "whoami":
		return CmdWhoami, args
	case "config":
		return CmdConfig, args
	case "history":
		return CmdHistory, args
	case "version", "--version", "-V":
		return CmdVersion, args
	case "help", "--help", "-h":
		return CmdHelp, args
	default:
		return CmdUnknown, args
	}
}

// globalFlags take a value and may appear before or after the command.
var globalFlags = map[string]func(*Args, string){
	"config":     func(a *Args, v string) { a.ConfigPath = v },
	"debug":      func(a *Args, v string) { a.DebugFile = v },
	"api-url":    func(a *Args, v string) { a.APIURL = v },
	"socket-url": func(a *Args, v string) { a.SocketURL = v },
}

func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if !strings.HasPrefix(arg, "--") {
			remaining = append(remaining, arg)
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		set, ok := globalFlags[name]
		if !ok {
			remaining = append(remaining, arg)
			continue
		}
		if !hasValue {
			if i+1 >= len(argv) {
				continue
			}
			i++
			value = argv[i]
		}
		set(&args, value)
	}
	return remaining, args
}

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// PrintVersion writes version details.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "chatconnect %s\n", Version)
	fmt.Fprintf(w, "  commit:  %s\n", GitCommit)
	fmt.Fprintf(w, "  built:   %s\n", BuildDate)
	fmt.Fprintf(w, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Run executes every command except the TUI, which main starts itself.
func Run(ctx context.Context, cmd Command, args Args, env *Env) error {
	switch cmd {
	case CmdLogin:
		return HandleLogin(ctx, env, args, auth.ModeLogin)
	case CmdSignup:
		return HandleLogin(ctx, env, args, auth.ModeSignup)
	case CmdLogout:
		return HandleLogout(ctx, env)
	case CmdWhoami:
		return HandleWhoami(env)
	case CmdConfig:
		return HandleConfig(env, args)
	case CmdHistory:
		return HandleHistory(ctx, env, args)
	case CmdVersion:
		PrintVersion(env.Out)
		return nil
	case CmdHelp:
		PrintUsage(env.Out)
		return nil
	case CmdTUI:
		return NewUsageError("the TUI is started by main", "")
	default:
		return NewUsageError(fmt.Sprintf("unknown command %q", args.Name), "chatconnect help")
	}
}
