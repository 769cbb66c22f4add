// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import "github.com/charmbracelet/bubbles/key"

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap holds the dashboard's global bindings. They apply only while no
// text field has focus; Esc leaves a field.
type KeyMap struct {
	Chat      key.Binding
	History   key.Binding
	Profile   key.Binding
	Settings  key.Binding
	Analytics key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Sidebar   key.Binding
	Logout    key.Binding
	Search    key.Binding
	Compose   key.Binding
	Edit      key.Binding
	Save      key.Binding
	Export    key.Binding
	Toggle    key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Blur      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Chat:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "chat")),
		History:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "history")),
		Profile:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "profile")),
		Settings:  key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "settings")),
		Analytics: key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "analytics")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev tab")),
		Sidebar:   key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("C-b", "sidebar")),
		Logout:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("C-l", "logout")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Compose:   key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i", "write")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s", "s"), key.WithHelp("s", "save")),
		Export:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Blur:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave field")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Search, k.Compose, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Chat, k.History, k.Profile, k.Settings, k.Analytics},
		{k.NextTab, k.PrevTab, k.Sidebar, k.Logout},
		{k.Search, k.Compose, k.Edit, k.Save, k.Export, k.Toggle},
		{k.Up, k.Down, k.Left, k.Right, k.Blur, k.Help, k.Quit},
	}
}
