package client

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/legacyvault/internal/client/models"
)

// Envelope is the response shape of every auth API endpoint.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message"`
}

// AuthPayload is the data of a successful register or login.
type AuthPayload struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthAPI is the REST auth backend contract.
type AuthAPI interface {
	SignUp(ctx context.Context, email, password, name string) (*Envelope[AuthPayload], error)
	SignIn(ctx context.Context, email, password string) (*Envelope[AuthPayload], error)
	ForgotPassword(ctx context.Context, email string) (*Envelope[json.RawMessage], error)
	VerifyOTP(ctx context.Context, email, otp string) (*Envelope[json.RawMessage], error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (*Envelope[json.RawMessage], error)
}

// AuthClient talks to the REST auth API. It is stateless: the token it
// returns is kept by the session manager, not here.
type AuthClient struct {
	r requester
}

func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{r: newRequester(baseURL, timeout)}
}

func (c *AuthClient) SignUp(ctx context.Context, email, password, name string) (*Envelope[AuthPayload], error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	return post[AuthPayload](ctx, c.r, "/register", body)
}

func (c *AuthClient) SignIn(ctx context.Context, email, password string) (*Envelope[AuthPayload], error) {
	body := map[string]string{"email": email, "password": password}
	return post[AuthPayload](ctx, c.r, "/login", body)
}

func (c *AuthClient) ForgotPassword(ctx context.Context, email string) (*Envelope[json.RawMessage], error) {
	return post[json.RawMessage](ctx, c.r, "/forgot-password", map[string]string{"email": email})
}

func (c *AuthClient) VerifyOTP(ctx context.Context, email, otp string) (*Envelope[json.RawMessage], error) {
	return post[json.RawMessage](ctx, c.r, "/verify-otp", map[string]string{"email": email, "otp": otp})
}

func (c *AuthClient) ResetPassword(ctx context.Context, email, otp, newPassword string) (*Envelope[json.RawMessage], error) {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	return post[json.RawMessage](ctx, c.r, "/reset-password-with-otp", body)
}

// post sends body and normalises the answer: any non-2xx status, or a 2xx
// envelope with success=false, becomes a KindBusiness error carrying the
// server message when there is one.
func post[T any](ctx context.Context, r requester, path string, body any) (*Envelope[T], error) {
	resp, err := r.do(ctx, http.MethodPost, path, nil, body, nil)
	if err != nil {
		return nil, err
	}

	if !resp.ok() {
		msg := serverMessage(resp.body)
		if msg == "" {
			msg = statusMessage(resp.status)
		}
		return nil, &Error{Kind: KindBusiness, Message: msg, Status: resp.status}
	}

	var env Envelope[T]
	if err := json.Unmarshal(resp.body, &env); err != nil {
		return nil, decodeError(err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "Request was not successful"
		}
		return nil, &Error{Kind: KindBusiness, Message: msg, Status: resp.status}
	}

	return &env, nil
}
