// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/config"
	"github.com/jeranaias/chatconnect-tui/internal/history"
	"github.com/jeranaias/chatconnect-tui/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

// authResultMsg carries the outcome of a login or signup request.
type authResultMsg struct {
	session *auth.Session
	err     error
}

// searchDebounceMsg fires after the search field has been quiet long
// enough. Only the newest seq triggers a fetch.
type searchDebounceMsg struct {
	seq int
}

// contactsMsg carries a connections fetch for query.
type contactsMsg struct {
	query    string
	contacts []model.Contact
	err      error
}

// messagesMsg carries a conversation load. cached marks the local copy
// served before the network answer.
type messagesMsg struct {
	contact  model.ID
	messages []model.Message
	cached   bool
	err      error
}

// historyMsg carries the history rows.
type historyMsg struct {
	rows []history.Row
	err  error
}

// profileSavedMsg is sent when the simulated profile update completes.
type profileSavedMsg struct {
	user auth.User
}

// settingsSavedMsg reports a config write.
type settingsSavedMsg struct {
	err error
}

// draftsSavedMsg reports a draft flush.
type draftsSavedMsg struct {
	err error
}

// reportExportedMsg reports an analytics export.
type reportExportedMsg struct {
	path string
	err  error
}

// configReloadMsg wraps a live config reload.
type configReloadMsg struct {
	reload config.Reload
}

// storageErrMsg reports a failed background write worth logging only.
type storageErrMsg struct {
	op  string
	err error
}

// noticeExpiredMsg clears the status notice if it is still the one with seq.
type noticeExpiredMsg struct {
	seq int
}

// draftsLoadedMsg carries drafts restored from local storage.
type draftsLoadedMsg struct {
	drafts map[model.ID]string
	err    error
}
