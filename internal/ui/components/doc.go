// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual building blocks of the ChatConnect TUI.

# History

HistoryTable drives a window.View over history rows. Each View call formats
only the rows inside the computed range and shows the viewport's share of
them next to a ScrollBar:

	table, _ := components.NewHistoryTable(cfg.History.WindowConfig(), theme)
	table.SetRows(rows)
	table.SetSize(width, height)
	cmd := table.Update(msg) // keys and mouse wheel

# Chat

ContactList, MessagePane (bubbles viewport + glamour via MarkdownRenderer),
Sidebar and StatusBar make up the dashboard chrome.

# Analytics

RenderAnalytics draws stat cards and text charts: horizontal bars,
sparklines, share bars and metric bars.
*/
package components
