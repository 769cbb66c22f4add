// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/ui/styles"
)

// =============================================================================
// AUTH FORM
// =============================================================================

// authField identifies a focusable element of the form.
type authField int

const (
	fieldFullName authField = iota
	fieldRole
	fieldEmail
	fieldPassword
)

// authForm is the login/signup screen.
type authForm struct {
	mode       auth.Mode
	role       auth.Role
	fullName   textinput.Model
	email      textinput.Model
	password   textinput.Model
	focus      authField
	reveal     bool
	errors     auth.FieldErrors
	banner     string
	submitting bool
	spinner    spinner.Model
}

func newAuthForm() authForm {
	fullName := textinput.New()
	fullName.Placeholder = "John Doe"
	fullName.Prompt = ""
	fullName.CharLimit = 120

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = ""
	email.CharLimit = 254

	password := textinput.New()
	password.Placeholder = "Enter your password"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	f := authForm{
		mode:     auth.ModeLogin,
		role:     auth.RoleStudent,
		fullName: fullName,
		email:    email,
		password: password,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	f.setFocus(fieldEmail)
	return f
}

// fields lists the focusable fields for the current mode.
func (f *authForm) fields() []authField {
	if f.mode == auth.ModeSignup {
		return []authField{fieldFullName, fieldRole, fieldEmail, fieldPassword}
	}
	return []authField{fieldEmail, fieldPassword}
}

func (f *authForm) setFocus(field authField) tea.Cmd {
	f.focus = field
	f.fullName.Blur()
	f.email.Blur()
	f.password.Blur()
	switch field {
	case fieldFullName:
		return f.fullName.Focus()
	case fieldEmail:
		return f.email.Focus()
	case fieldPassword:
		return f.password.Focus()
	}
	return nil
}

func (f *authForm) moveFocus(delta int) tea.Cmd {
	fields := f.fields()
	i := 0
	for j, x := range fields {
		if x == f.focus {
			i = j
		}
	}
	i = (i + delta + len(fields)) % len(fields)
	return f.setFocus(fields[i])
}

// toggleMode switches login/signup, clearing errors.
func (f *authForm) toggleMode() tea.Cmd {
	f.mode = f.mode.Toggle()
	f.errors = nil
	f.banner = ""
	if f.mode == auth.ModeSignup {
		return f.setFocus(fieldFullName)
	}
	return f.setFocus(fieldEmail)
}

func (f *authForm) toggleReveal() {
	f.reveal = !f.reveal
	if f.reveal {
		f.password.EchoMode = textinput.EchoNormal
	} else {
		f.password.EchoMode = textinput.EchoPassword
	}
}

// credentials collects the form values.
func (f *authForm) credentials() auth.Credentials {
	return auth.Credentials{
		Mode:     f.mode,
		Email:    f.email.Value(),
		Password: f.password.Value(),
		FullName: f.fullName.Value(),
		Role:     f.role,
	}
}

// submit validates the form. It returns the normalized credentials and true
// when they can be sent.
func (f *authForm) submit() (auth.Credentials, bool) {
	if f.submitting {
		return auth.Credentials{}, false
	}
	creds := f.credentials()
	f.banner = ""
	f.errors = nil
	if err := creds.Validate(); err != nil {
		var fe auth.FieldErrors
		if errors.As(err, &fe) {
			f.errors = fe
		}
		return auth.Credentials{}, false
	}
	f.submitting = true
	return creds.Normalized(), true
}

// fail ends a submission with a banner message.
func (f *authForm) fail(msg string) {
	f.submitting = false
	f.banner = msg
}

// reset clears the form for the next sign-in.
func (f *authForm) reset() {
	f.password.SetValue("")
	f.submitting = false
	f.errors = nil
	f.banner = ""
	if f.mode == auth.ModeSignup {
		f.setFocus(fieldFullName)
	} else {
		f.setFocus(fieldEmail)
	}
}

// update handles keys that do not submit. Enter is handled by the Model.
func (f *authForm) update(msg tea.Msg) tea.Cmd {
	if f.submitting {
		if _, ok := msg.(spinner.TickMsg); ok {
			var cmd tea.Cmd
			f.spinner, cmd = f.spinner.Update(msg)
			return cmd
		}
		return nil
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "down":
			return f.moveFocus(1)
		case "shift+tab", "up":
			return f.moveFocus(-1)
		case "ctrl+t":
			return f.toggleMode()
		case "ctrl+r":
			f.toggleReveal()
			return nil
		}
		if f.focus == fieldRole {
			switch k.String() {
			case "left", "right", " ", "h", "l":
				f.role = f.role.Next()
			}
			return nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldFullName:
		f.fullName, cmd = f.fullName.Update(msg)
	case fieldEmail:
		f.email, cmd = f.email.Update(msg)
	case fieldPassword:
		f.password, cmd = f.password.Update(msg)
	}
	return cmd
}

// =============================================================================
// RENDERING
// =============================================================================

func (f *authForm) view(theme *styles.Theme, width, height int) string {
	title := "Welcome back"
	subtitle := "Sign in to continue to ChatConnect"
	button := "Sign In"
	switchText := "Don't have an account? Create account (ctrl+t)"
	if f.mode == auth.ModeSignup {
		title = "Create account"
		subtitle = "Join ChatConnect today"
		button = "Create Account"
		switchText = "Already have an account? Sign in (ctrl+t)"
	}

	formW := min(max(width-8, 30), 56)
	parts := []string{
		theme.HeaderBrand.Render("◆ " + title),
		theme.Muted.Render(subtitle),
		"",
	}
	if f.banner != "" {
		parts = append(parts, theme.ErrorBanner.Width(formW).Render(styles.StatusIndicators.Error+" "+f.banner), "")
	}

	if f.mode == auth.ModeSignup {
		parts = append(parts, f.fieldView(theme, "Full Name", f.fullName.View(), auth.FieldFullName, fieldFullName, formW))
		role := make([]string, len(auth.Roles))
		for i, r := range auth.Roles {
			st := theme.Button
			if r == f.role {
				st = theme.ButtonActive
			}
			role[i] = st.Render(r.Label())
		}
		parts = append(parts, f.fieldView(theme, "Role", strings.Join(role, " "), "", fieldRole, formW))
	}
	parts = append(parts, f.fieldView(theme, "Email", f.email.View(), auth.FieldEmail, fieldEmail, formW))

	pw := f.password.View()
	eye := "show (ctrl+r)"
	if f.reveal {
		eye = "hide (ctrl+r)"
	}
	parts = append(parts, f.fieldView(theme, "Password  "+theme.Muted.Render(eye), pw, auth.FieldPassword, fieldPassword, formW))

	submit := theme.ButtonActive.Render(button + " (enter)")
	if f.submitting {
		submit = theme.ButtonActive.Render(f.spinner.View() + " " + button)
	}
	parts = append(parts, "", submit, "", theme.Muted.Render(switchText))

	form := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
}

func (f *authForm) fieldView(theme *styles.Theme, label, input, errKey string, field authField, width int) string {
	box := theme.Input
	if f.focus == field {
		box = theme.InputFocused
	}
	lines := []string{theme.Label.Render(label), box.Width(width).Render(input)}
	if msg, ok := f.errors[errKey]; ok && errKey != "" {
		lines = append(lines, theme.FieldError.Render(msg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
