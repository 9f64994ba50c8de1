package abokiapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

// Admin endpoint paths on the remote API. Admin calls carry the admin-scoped
// bearer token, never the business one.
const (
	PathAdminLogin          = "/api/v1/admin/auth/login"
	PathAdminForgotPassword = "/api/v1/admin/auth/forgot-password"
	PathAdminResetPassword  = "/api/v1/admin/auth/reset-password"
	PathAdminPendingUsers   = "/api/v1/admin/users/pending-verification"
	PathAdminUsers          = "/api/v1/admin/users"
	PathAdminUserStats      = "/api/v1/admin/users/stats"
)

func pathAdminVerifyUser(userID string) string {
	return PathAdminUsers + "/" + userID + "/verify"
}

func pathAdminAPIAccess(userID string) string {
	return PathAdminUsers + "/" + userID + "/api-access"
}

func pathAdminResendVerification(userID string) string {
	return PathAdminUsers + "/" + userID + "/resend-verification"
}

// AdminLogin exchanges admin credentials for an admin bearer token.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (LoginResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var data struct {
		User  json.RawMessage `json:"user"`
		Token string          `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, PathAdminLogin, "", body, &data); err != nil {
		return LoginResult{}, err
	}

	var payload userPayload
	if len(data.User) > 0 {
		if err := json.Unmarshal(data.User, &payload); err != nil {
			return LoginResult{}, errors.Wrap(err, "[abokiapi.AdminLogin] decoding user")
		}
	}
	return LoginResult{User: payload.Normalize(), Token: data.Token}, nil
}

// AdminForgotPassword requests a reset email for an admin account.
func (c *Client) AdminForgotPassword(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.do(ctx, http.MethodPost, PathAdminForgotPassword, "", body, nil)
}

// AdminResetPassword completes an admin password reset.
func (c *Client) AdminResetPassword(ctx context.Context, resetToken, newPassword string) error {
	body := struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}{Token: resetToken, NewPassword: newPassword}
	return c.do(ctx, http.MethodPost, PathAdminResetPassword, "", body, nil)
}

// PendingUsers lists users awaiting verification.
func (c *Client) PendingUsers(ctx context.Context, token string) ([]UserRecord, error) {
	return c.listUsers(ctx, PathAdminPendingUsers, token)
}

// AllUsers lists every registered business user.
func (c *Client) AllUsers(ctx context.Context, token string) ([]UserRecord, error) {
	return c.listUsers(ctx, PathAdminUsers, token)
}

func (c *Client) listUsers(ctx context.Context, path, token string) ([]UserRecord, error) {
	var payloads []userPayload
	if err := c.do(ctx, http.MethodGet, path, token, nil, &payloads); err != nil {
		return nil, err
	}
	records := make([]UserRecord, 0, len(payloads))
	for _, p := range payloads {
		records = append(records, p.Normalize())
	}
	return records, nil
}

// UserStats fetches the admin overview totals.
func (c *Client) UserStats(ctx context.Context, token string) (AdminStats, error) {
	var stats AdminStats
	if err := c.do(ctx, http.MethodGet, PathAdminUserStats, token, nil, &stats); err != nil {
		return AdminStats{}, err
	}
	return stats, nil
}

// VerifyUser applies an approve/reject decision to a pending user.
func (c *Client) VerifyUser(ctx context.Context, token, userID string, req VerifyUserRequest) error {
	if userID == "" {
		return errors.New("[abokiapi.VerifyUser] userID is required")
	}
	if req.Action == VerifyReject && req.RejectionReason == "" {
		return errors.New("[abokiapi.VerifyUser] rejection requires a reason")
	}
	return c.do(ctx, http.MethodPost, pathAdminVerifyUser(userID), token, req, nil)
}

// ToggleAPIAccess flips the api-access flag on a user.
func (c *Client) ToggleAPIAccess(ctx context.Context, token, userID string) error {
	if userID == "" {
		return errors.New("[abokiapi.ToggleAPIAccess] userID is required")
	}
	return c.do(ctx, http.MethodPut, pathAdminAPIAccess(userID), token, nil, nil)
}

// ResendVerification re-sends the verification email to a user.
func (c *Client) ResendVerification(ctx context.Context, token, userID string) error {
	if userID == "" {
		return errors.New("[abokiapi.ResendVerification] userID is required")
	}
	return c.do(ctx, http.MethodPost, pathAdminResendVerification(userID), token, nil, nil)
}
