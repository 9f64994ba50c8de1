package abokiapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

// Auth endpoint paths on the remote API.
const (
	PathSignup         = "/api/v1/auth/signup"
	PathLogin          = "/api/v1/auth/login"
	PathProfile        = "/api/v1/auth/profile"
	PathForgotPassword = "/api/v1/auth/forgot-password"
	PathResetPassword  = "/api/v1/auth/reset-password"
	PathVerifyEmail    = "/api/v1/auth/verify-email"
)

// SignupRequest is the payload for POST /api/v1/auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// LoginResult is the decoded data of a successful login.
type LoginResult struct {
	User  UserRecord
	Token string
}

// Signup registers a new business user. The returned record reflects whatever
// snapshot the API ships back on registration.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (UserRecord, error) {
	var payload userPayload
	if err := c.do(ctx, http.MethodPost, PathSignup, "", req, &payload); err != nil {
		return UserRecord{}, err
	}
	return payload.Normalize(), nil
}

// Login exchanges credentials for a bearer token plus a user snapshot.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var data struct {
		User  json.RawMessage `json:"user"`
		Token string          `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, PathLogin, "", body, &data); err != nil {
		return LoginResult{}, err
	}

	var payload userPayload
	if len(data.User) > 0 {
		if err := json.Unmarshal(data.User, &payload); err != nil {
			return LoginResult{}, errors.Wrap(err, "[abokiapi.Login] decoding user")
		}
	}
	return LoginResult{User: payload.Normalize(), Token: data.Token}, nil
}

// Profile fetches the fresh user snapshot for the given bearer token.
func (c *Client) Profile(ctx context.Context, token string) (UserRecord, error) {
	var payload userPayload
	if err := c.do(ctx, http.MethodGet, PathProfile, token, nil, &payload); err != nil {
		return UserRecord{}, err
	}
	return payload.Normalize(), nil
}

// ForgotPassword requests a password-reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.do(ctx, http.MethodPost, PathForgotPassword, "", body, nil)
}

// ResetPassword completes a reset using the token from the reset email.
func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	body := struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}{Token: resetToken, NewPassword: newPassword}
	return c.do(ctx, http.MethodPost, PathResetPassword, "", body, nil)
}

// VerifyEmail confirms an email address using the token from the verification
// email.
func (c *Client) VerifyEmail(ctx context.Context, verificationToken string) error {
	body := struct {
		Token string `json:"token"`
	}{Token: verificationToken}
	return c.do(ctx, http.MethodPost, PathVerifyEmail, "", body, nil)
}
