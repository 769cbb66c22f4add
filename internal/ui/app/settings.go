// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"slices"

	"github.com/jeranaias/chatconnect-tui/internal/config"
)

// settingKind groups settings in the Settings tab.
type settingKind int

const (
	settingNotification settingKind = iota
	settingAppearance
)

// setting is one row of the Settings tab. Toggle flips booleans and cycles
// choices.
type setting struct {
	kind   settingKind
	label  string
	value  func(c *config.Config) string
	toggle func(c *config.Config)
}

func boolSetting(kind settingKind, label string, field func(c *config.Config) *bool) setting {
	return setting{
		kind:  kind,
		label: label,
		value: func(c *config.Config) string {
			if *field(c) {
				return "On"
			}
			return "Off"
		},
		toggle: func(c *config.Config) {
			p := field(c)
			*p = !*p
		},
	}
}

// settings lists the rows in display order.
var settings = []setting{
	boolSetting(settingNotification, "Email Notifications", func(c *config.Config) *bool { return &c.Notifications.Email }),
	boolSetting(settingNotification, "Push Notifications", func(c *config.Config) *bool { return &c.Notifications.Push }),
	boolSetting(settingNotification, "SMS Notifications", func(c *config.Config) *bool { return &c.Notifications.SMS }),
	boolSetting(settingNotification, "Desktop Notifications", func(c *config.Config) *bool { return &c.Notifications.Desktop }),
	boolSetting(settingAppearance, "Dark Mode", func(c *config.Config) *bool { return &c.UI.DarkMode }),
	{
		kind:  settingAppearance,
		label: "Language",
		value: func(c *config.Config) string { return c.UI.Language },
		toggle: func(c *config.Config) {
			i := slices.Index(config.Languages, c.UI.Language)
			c.UI.Language = config.Languages[(i+1)%len(config.Languages)]
		},
	},
	boolSetting(settingAppearance, "Collapse Sidebar", func(c *config.Config) *bool { return &c.UI.SidebarCollapsed }),
	boolSetting(settingAppearance, "Render Markdown", func(c *config.Config) *bool { return &c.UI.RenderMarkdown }),
}
