// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks activity for a signed-in user: idle logout and
// periodic auto-save of unsent drafts.
package session

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatconnect-tui/internal/config"
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager tracks idle time and dirty state for one signed-in session.
type Manager struct {
	mu sync.Mutex

	startTime    time.Time
	lastActivity time.Time

	// 0 disables idle logout.
	timeout       time.Duration
	warningBefore time.Duration
	warningShown  bool

	autoSaveInterval time.Duration
	lastAutoSave     time.Time
	isDirty          bool

	now func() time.Time
}

// Config holds the manager settings.
type Config struct {
	// Timeout logs the user out after this much inactivity. 0 disables.
	Timeout time.Duration

	// WarningBefore is how long before Timeout to warn.
	WarningBefore time.Duration

	// AutoSaveInterval is how often dirty state is flushed. 0 disables.
	AutoSaveInterval time.Duration
}

// DefaultConfig returns the defaults: no idle logout, save every 10s.
func DefaultConfig() Config {
	return Config{
		WarningBefore:    time.Minute,
		AutoSaveInterval: 10 * time.Second,
	}
}

// ConfigFrom converts the [session] config section.
func ConfigFrom(c config.SessionConfig) Config {
	cfg := DefaultConfig()
	cfg.Timeout = time.Duration(c.IdleTimeoutMins) * time.Minute
	cfg.AutoSaveInterval = time.Duration(c.AutoSaveSecs) * time.Second
	if cfg.Timeout > 0 && cfg.WarningBefore >= cfg.Timeout {
		cfg.WarningBefore = cfg.Timeout / 2
	}
	return cfg
}

// NewManager creates a manager starting now.
func NewManager(cfg Config) *Manager {
	return newManager(cfg, time.Now)
}

func newManager(cfg Config, now func() time.Time) *Manager {
	t := now()
	return &Manager{
		startTime:        t,
		lastActivity:     t,
		timeout:          cfg.Timeout,
		warningBefore:    cfg.WarningBefore,
		autoSaveInterval: cfg.AutoSaveInterval,
		lastAutoSave:     t,
		now:              now,
	}
}

// =============================================================================
// SESSION STATE
// =============================================================================

// Duration returns how long the session has been active.
func (m *Manager) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now().Sub(m.startTime)
}

// IdleTime returns how long since the last activity.
func (m *Manager) IdleTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now().Sub(m.lastActivity)
}

// RemainingTime returns the time until idle logout, or -1 when disabled.
func (m *Manager) RemainingTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remainingLocked()
}

func (m *Manager) remainingLocked() time.Duration {
	if m.timeout <= 0 {
		return -1
	}
	r := m.timeout - m.now().Sub(m.lastActivity)
	if r < 0 {
		return 0
	}
	return r
}

// RecordActivity resets the idle clock. Call on every key or mouse event.
func (m *Manager) RecordActivity() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastActivity = m.now()
	m.warningShown = false
}

// MarkDirty records unsaved changes.
func (m *Manager) MarkDirty() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isDirty = true
}

// MarkClean records a successful save.
func (m *Manager) MarkClean() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isDirty = false
	m.lastAutoSave = m.now()
}

// IsDirty reports unsaved changes.
func (m *Manager) IsDirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isDirty
}

// SetTimeout changes the idle timeout; 0 disables it.
func (m *Manager) SetTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = d
	m.warningShown = false
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg drives periodic checks.
type TickMsg struct {
	Time time.Time
}

// TimeoutWarningMsg means the session will end soon without activity.
type TimeoutWarningMsg struct {
	Remaining time.Duration
}

// TimeoutMsg means the idle timeout elapsed; the user should be logged out.
type TimeoutMsg struct{}

// AutoSaveMsg asks the model to flush dirty state.
type AutoSaveMsg struct{}

// TickCmd ticks once per second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// Check evaluates the session and returns the messages due now, in the
// order warning, timeout, auto-save.
func (m *Manager) Check() []tea.Msg {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []tea.Msg
	if m.timeout > 0 {
		idle := m.now().Sub(m.lastActivity)
		switch {
		case idle >= m.timeout:
			out = append(out, TimeoutMsg{})
		case !m.warningShown && idle >= m.timeout-m.warningBefore:
			m.warningShown = true
			out = append(out, TimeoutWarningMsg{Remaining: m.timeout - idle})
		}
	}
	if m.autoSaveInterval > 0 && m.isDirty && m.now().Sub(m.lastAutoSave) >= m.autoSaveInterval {
		out = append(out, AutoSaveMsg{})
	}
	return out
}

// HandleTick turns Check's result into commands and schedules the next tick.
func (m *Manager) HandleTick() tea.Cmd {
	msgs := m.Check()
	cmds := make([]tea.Cmd, 0, len(msgs)+1)
	for _, msg := range msgs {
		msg := msg
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	cmds = append(cmds, TickCmd())
	return tea.Batch(cmds...)
}

// Status is a one-line summary for the status bar.
func (m *Manager) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.remainingLocked()
	if r < 0 {
		return "Session: " + FormatDuration(m.now().Sub(m.startTime))
	}
	return "Idle logout in " + FormatDuration(r)
}

// FormatDuration renders d as "1h02m", "5m03s" or "42s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	mnt := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm", h, mnt)
	case mnt > 0:
		return fmt.Sprintf("%dm%02ds", mnt, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
