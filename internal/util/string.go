// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Ellipsis is appended by Truncate when text is cut.
const Ellipsis = "…"

// Truncate cuts s to at most width display columns, appending an ellipsis
// when anything was removed. Wide (CJK) characters count as two columns.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// PadRight pads s with spaces to exactly width columns, truncating first if
// it is too wide.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	return runewidth.FillRight(s, width)
}

// PadLeft right-aligns s in width columns.
func PadLeft(s string, width int) string {
	s = Truncate(s, width)
	return runewidth.FillLeft(s, width)
}

// Width returns the display width of s.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

var folder = cases.Fold()

// Fold returns s case-folded with diacritics removed, so "José" and "jose"
// compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return folder.String(out)
}

// ContainsFold reports whether substr occurs in s, ignoring case and
// accents. An empty substr matches everything.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(Fold(s), Fold(substr))
}

// Initials returns up to two uppercase initials for a display name,
// or "?" when the name is blank.
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "?"
	}
	out := make([]rune, 0, 2)
	for _, f := range fields {
		out = append(out, unicode.ToUpper([]rune(f)[0]))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
