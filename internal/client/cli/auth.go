package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/legacyvault/internal/common"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

func (a *App) readPassword(prompt string) (string, error) {
	pw, err := getSecret(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// report prints the outcome of an auth call and passes err through.
func (a *App) report(ctx context.Context, what string, msg string, err error) error {
	if err != nil {
		a.logger.Warn(ctx, what+" failed", "error", err)
		fmt.Fprintln(a.out, errorText(err))
		return err
	}
	if msg != "" {
		fmt.Fprintln(a.out, msg)
	}
	return nil
}

// Register prompts for name, email and password and creates the account.
// When the server answers with a session the user is signed in right away.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your first name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readPassword("Enter password: ")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	msg, err := a.authService.Register(ctx, name, email, password)
	if msg == "" && err == nil {
		msg = "Account created."
	}
	return a.report(ctx, "register", msg, err)
}

// Login prompts for credentials. Navigation after a successful sign-in is
// driven by the bootstrap controller, not here.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readPassword("Enter password: ")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return a.report(ctx, "login", "", err)
	}
	return a.report(ctx, "login", "Signed in as "+user.Email, nil)
}

func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	return nil
}

// ResetPassword walks through the OTP reset: request a code, verify it,
// choose a new password. It stops at the first failing step.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter the email of your account", a.out)
	if err != nil {
		return err
	}

	rctx, cancel := a.withTimeout(ctx)
	msg, err := a.authService.ForgotPassword(rctx, email)
	cancel()
	if err := a.report(ctx, "forgot password", msg, err); err != nil {
		return err
	}

	otp, err := getSimpleText(a.reader, "Enter the code we sent you", a.out)
	if err != nil {
		return err
	}

	rctx, cancel = a.withTimeout(ctx)
	msg, err = a.authService.VerifyOTP(rctx, email, otp)
	cancel()
	if err := a.report(ctx, "verify otp", msg, err); err != nil {
		return err
	}

	password, err := a.readPassword("New password: ")
	if err != nil {
		return err
	}

	rctx, cancel = a.withTimeout(ctx)
	defer cancel()
	msg, err = a.authService.ResetPassword(rctx, email, otp, password)
	return a.report(ctx, "reset password", msg, err)
}

func (a *App) WhoAmI(ctx context.Context) error {
	sess, err := a.session.CurrentSession(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", sess.User.Email, sess.User.ID)
	return nil
}
