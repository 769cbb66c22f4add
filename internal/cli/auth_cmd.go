// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jeranaias/chatconnect-tui/internal/api"
	"github.com/jeranaias/chatconnect-tui/internal/auth"
)

// =============================================================================
// LOGIN / SIGNUP
// =============================================================================

// HandleLogin signs in (or signs up) and stores the session. Missing
// values are prompted for; --password-stdin reads the password from the
// first line of stdin for scripts.
func HandleLogin(ctx context.Context, env *Env, args Args, mode auth.Mode) error {
	p := args.Parser("password-stdin")
	creds := auth.Credentials{
		Mode:     mode,
		Email:    p.Flag("email"),
		FullName: p.Flag("name"),
		Role:     auth.Role(strings.ToLower(p.FlagOrDefault("role", string(auth.RoleStudent)))),
	}
	if mode == auth.ModeSignup && !slices.Contains(auth.Roles, creds.Role) {
		return NewUsageError(fmt.Sprintf("unknown role %q", creds.Role), "chatconnect signup --role preceptor")
	}

	if p.BoolFlag("password-stdin") {
		pw, err := readFirstLine(env)
		if err != nil {
			return err
		}
		creds.Password = pw
	}

	if err := promptMissing(env, &creds); err != nil {
		return err
	}
	if err := creds.Validate(); err != nil {
		return err
	}
	creds = creds.Normalized()

	ctx, cancel := context.WithTimeout(ctx, env.Config.API.Timeout())
	defer cancel()
	sess, err := env.Auth.Authenticate(ctx, creds)
	if err != nil {
		fallback := api.MsgLoginFailed
		if mode == auth.ModeSignup {
			fallback = api.MsgSignupFailed
		}
		env.Logger.Info("authentication failed", "mode", mode, "error", err)
		return NewCommandError(args.Name, "", api.UserMessage(err, fallback), unwrapAPI(err))
	}
	if err := env.Sessions.Save(sess); err != nil {
		return NewCommandError(args.Name, "save", "could not store session", err)
	}

	env.Logger.Info("signed in", "user", sess.User.ID)
	fmt.Fprintf(env.Out, "%s Signed in as %s (%s)\n",
		SuccessStyle.Render("[OK]"), sess.User.FullName, sess.User.Role.Label())
	return nil
}

// unwrapAPI drops an *api.APIError whose message is already shown in the
// reason, keeping its sentinel for ExitCode.
func unwrapAPI(err error) error {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if errors.Is(err, api.ErrUnauthorized) {
			return api.ErrUnauthorized
		}
		return nil
	}
	return err
}

func readFirstLine(env *Env) (string, error) {
	if env.In == nil {
		return "", ErrNotInteractive
	}
	sc := bufio.NewScanner(env.In)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", NewUsageError("--password-stdin given but stdin is empty", "")
	}
	return strings.TrimRight(sc.Text(), "\r"), nil
}

// promptMissing asks for whatever the flags left blank. Nothing is prompted
// when every value is present.
func promptMissing(env *Env, creds *auth.Credentials) error {
	needName := creds.Mode == auth.ModeSignup && strings.TrimSpace(creds.FullName) == ""
	if creds.Email != "" && creds.Password != "" && !needName {
		return nil
	}
	pr, err := env.prompter()
	if err != nil {
		return err
	}
	defer pr.Close()

	if needName {
		if creds.FullName, err = pr.Line("Full name", ""); err != nil {
			return err
		}
	}
	if creds.Email == "" {
		if creds.Email, err = pr.Line("Email", ""); err != nil {
			return err
		}
	}
	if creds.Password == "" {
		if creds.Password, err = pr.Secret("Password"); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// LOGOUT / WHOAMI
// =============================================================================

// HandleLogout forgets the session and wipes local conversation data.
func HandleLogout(ctx context.Context, env *Env) error {
	if err := env.Sessions.Clear(); err != nil {
		return NewCommandError("logout", "", "could not remove session", err)
	}
	if env.WipeLocal != nil {
		if err := env.WipeLocal(ctx); err != nil {
			return NewCommandError("logout", "", "could not clear local data", err)
		}
	}
	env.Logger.Info("signed out")
	fmt.Fprintf(env.Out, "%s Signed out\n", SuccessStyle.Render("[OK]"))
	return nil
}

// HandleWhoami prints the stored session's user.
func HandleWhoami(env *Env) error {
	sess, err := env.Sessions.Load()
	if err != nil {
		return err
	}
	u := sess.User
	fmt.Fprintln(env.Out, TitleStyle.Render(u.FullName))
	fmt.Fprintln(env.Out, RenderField("Email", u.Email))
	fmt.Fprintln(env.Out, RenderField("Role", u.Role.Label()))
	fmt.Fprintln(env.Out, RenderField("Specialty", u.SpecialtyOrDefault()))
	fmt.Fprintln(env.Out, RenderField("Work location", u.WorkLocationOrDefault()))
	fmt.Fprintln(env.Out, RenderField("Phone", u.PhoneOrDefault()))
	fmt.Fprintln(env.Out, RenderField("Signed in", sess.CreatedAt.Local().Format("2006-01-02 15:04")))
	return nil
}
