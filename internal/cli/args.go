// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgParser splits a command's arguments into positionals, string flags
// and boolean flags. The first positional is the subcommand.
type ArgParser struct {
	flags      map[string]string // --key value, --key=value
	bools      map[string]bool   // --json
	positional []string
}

// NewArgParser parses raw. A flag followed by a non-flag takes it as its
// value; otherwise the flag is boolean. Names in boolNames are always boolean
// and never consume the next argument. Everything after "--" is positional.
//
//	p := NewArgParser([]string{"export", "--format", "json", "--out=h.json"}, nil)
//	p.Subcommand()    // "export"
//	p.Flag("format")  // "json"
//	p.Flag("out")     // "h.json"
func NewArgParser(raw []string, boolNames []string) *ArgParser {
	p := &ArgParser{
		flags: make(map[string]string),
		bools: make(map[string]bool),
	}
	isBool := make(map[string]bool, len(boolNames))
	for _, b := range boolNames {
		isBool[b] = true
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		switch {
		case arg == "--":
			p.positional = append(p.positional, raw[i+1:]...)
			return p
		case len(arg) < 2 || arg[0] != '-':
			p.positional = append(p.positional, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		switch {
		case hasValue && (value == "true" || value == "false"):
			p.bools[name] = value == "true"
		case hasValue:
			p.flags[name] = value
		case !isBool[name] && i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-"):
			i++
			p.flags[name] = raw[i]
		default:
			p.bools[name] = true
		}
	}
	return p
}

// Subcommand returns the first positional argument, or "".
func (p *ArgParser) Subcommand() string {
	return p.Positional(0)
}

// Flag returns the value of a string flag, or "".
func (p *ArgParser) Flag(name string) string {
	return p.flags[strings.TrimLeft(name, "-")]
}

func (p *ArgParser) FlagOrDefault(name, def string) string {
	if v := p.Flag(name); v != "" {
		return v
	}
	return def
}

// FlagInt parses a flag as an integer. A missing flag is an error.
func (p *ArgParser) FlagInt(name string) (int, error) {
	v := p.Flag(name)
	if v == "" {
		return 0, fmt.Errorf("flag --%s not set", name)
	}
	return strconv.Atoi(v)
}

// FlagIntOrDefault is FlagInt with def for a missing or malformed value.
func (p *ArgParser) FlagIntOrDefault(name string, def int) int {
	n, err := p.FlagInt(name)
	if err != nil {
		return def
	}
	return n
}

func (p *ArgParser) BoolFlag(name string) bool {
	return p.bools[strings.TrimLeft(name, "-")]
}

// Positional returns the positional argument at index, or "".
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}
