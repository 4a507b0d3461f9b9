// Package services contains the client use-cases built on top of the remote
// clients and the session manager. This file defines the authentication
// flows: register, login, logout and the OTP password reset.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/legacyvault/internal/client/client"
	"github.com/dmitrijs2005/legacyvault/internal/client/models"
	"github.com/dmitrijs2005/legacyvault/internal/common"
	"github.com/dmitrijs2005/legacyvault/internal/logging"
)

// ErrInvalidInput is returned before any request is made when the input
// would be rejected anyway.
var ErrInvalidInput = fmt.Errorf("invalid input: %w", common.ErrorValidation)

// MinPasswordLength applies to new passwords chosen during a reset.
const MinPasswordLength = 6

// SessionWriter is the part of the session manager the auth flows drive.
type SessionWriter interface {
	SignIn(ctx context.Context, user *models.User, token string) error
	SignOut(ctx context.Context)
}

// AuthService defines the authentication operations for the CLI.
//
// Contract:
//   - Register: create an account; signs in when the server returns a session.
//   - Login: authenticate and persist the session.
//   - Logout: drop the session locally; never fails.
//   - ForgotPassword, VerifyOTP, ResetPassword: the OTP reset flow.
//
// Every error from a remote call is a *client.Error; its Message is safe to
// show to the user.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context)
	ForgotPassword(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error)
}

type authService struct {
	api     client.AuthAPI
	session SessionWriter
	logger  logging.Logger
}

func NewAuthService(api client.AuthAPI, session SessionWriter, logger logging.Logger) AuthService {
	return &authService{api: api, session: session, logger: logger.With("component", "auth_service")}
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return invalid("email is required")
	}
	if !strings.Contains(email, "@") {
		return invalid("please enter a valid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return invalid("password is required")
	}
	return nil
}

// ValidationMessage returns the user-facing part of a validation error.
func ValidationMessage(err error) string {
	if !errors.Is(err, ErrInvalidInput) {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// sessionFrom extracts the signed-in pair from a successful envelope.
func sessionFrom(env *client.Envelope[client.AuthPayload]) (*models.User, string, error) {
	if env.Data == nil || env.Data.User == nil || env.Data.Token == "" {
		return nil, "", &client.Error{Kind: client.KindDecode, Message: "Login response did not include a session."}
	}
	return env.Data.User, env.Data.Token, nil
}

func (a *authService) Register(ctx context.Context, name, email, password string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", invalid("name is required")
	}
	if err := validateEmail(email); err != nil {
		return "", err
	}
	if err := validatePassword(password); err != nil {
		return "", err
	}

	env, err := a.api.SignUp(ctx, strings.TrimSpace(email), password, strings.TrimSpace(name))
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	if env.Data != nil && env.Data.User != nil && env.Data.Token != "" {
		if err := a.session.SignIn(ctx, env.Data.User, env.Data.Token); err != nil {
			return "", fmt.Errorf("register: %w", err)
		}
	}
	a.logger.Info(ctx, "account registered", "email", email)
	return env.Message, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	env, err := a.api.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	user, token, err := sessionFrom(env)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := a.session.SignIn(ctx, user, token); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	a.logger.Info(ctx, "signed in", "user_id", user.ID)
	return user, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.session.SignOut(ctx)
	a.logger.Info(ctx, "signed out")
}

func (a *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := validateEmail(email); err != nil {
		return "", err
	}
	env, err := a.api.ForgotPassword(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", fmt.Errorf("forgot password: %w", err)
	}
	return env.Message, nil
}

func (a *authService) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	if err := validateEmail(email); err != nil {
		return "", err
	}
	if strings.TrimSpace(otp) == "" {
		return "", invalid("code is required")
	}
	env, err := a.api.VerifyOTP(ctx, strings.TrimSpace(email), strings.TrimSpace(otp))
	if err != nil {
		return "", fmt.Errorf("verify otp: %w", err)
	}
	return env.Message, nil
}

func (a *authService) ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error) {
	if err := validateEmail(email); err != nil {
		return "", err
	}
	if strings.TrimSpace(otp) == "" {
		return "", invalid("code is required")
	}
	if len(newPassword) < MinPasswordLength {
		return "", invalid(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	env, err := a.api.ResetPassword(ctx, strings.TrimSpace(email), strings.TrimSpace(otp), newPassword)
	if err != nil {
		return "", fmt.Errorf("reset password: %w", err)
	}
	return env.Message, nil
}
