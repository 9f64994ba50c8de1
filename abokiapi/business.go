package abokiapi

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/Svector-anu/Aboki-Business/internal/errors"
	"github.com/Svector-anu/Aboki-Business/internal/utils"
	"github.com/pkg/errors"
)

// Business endpoint paths on the remote API.
const (
	PathBusinessProfile      = "/api/v1/business/profile"
	PathBusinessCreate       = "/api/v1/business/create"
	PathBusinessTransactions = "/api/v1/business/transactions"
)

// ProfileOutcome is the tagged result of a business-profile fetch. Exactly one
// of Profile and Failure is non-nil: Profile on a 200, Failure for every
// degraded outcome (403 gating response, 5xx, unreachable server). A 401 is
// reported as an error instead so the caller can clear the session.
type ProfileOutcome struct {
	Profile *BusinessProfile
	Failure *ErrorResponse
}

// connectivityFailure is the synthetic gating response used when the server
// cannot be reached or returns something unreadable. Verification state
// defaults to pending so the UI degrades to the verification gate instead of
// crashing.
func connectivityFailure(message string) *ErrorResponse {
	return &ErrorResponse{
		Message:            message,
		VerificationStatus: utils.Ptr(VerificationPending),
		EmailVerified:      utils.Ptr(true),
	}
}

// FetchBusinessProfile loads GET /api/v1/business/profile and classifies the
// response for the verification-state resolver.
func (c *Client) FetchBusinessProfile(ctx context.Context, token string) (ProfileOutcome, error) {
	resp, raw, err := c.roundTrip(ctx, http.MethodGet, PathBusinessProfile, token, nil)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNetwork) {
			return ProfileOutcome{
				Failure: connectivityFailure("Unable to connect to server. Please check your internet connection."),
			}, nil
		}
		return ProfileOutcome{}, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ProfileOutcome{}, apperrors.Wrapf(apperrors.ErrUnauthorized, "GET %s", PathBusinessProfile)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var profile BusinessProfile
		if err := json.Unmarshal(raw, &profile); err != nil {
			// The server occasionally answers with an HTML error page.
			return ProfileOutcome{Failure: connectivityFailure("Server returned non-JSON response")}, nil
		}
		return ProfileOutcome{Profile: &profile}, nil

	default:
		var failure ErrorResponse
		if err := json.Unmarshal(raw, &failure); err != nil || failure == (ErrorResponse{}) {
			return ProfileOutcome{Failure: connectivityFailure("An error occurred")}, nil
		}
		return ProfileOutcome{Failure: &failure}, nil
	}
}

// CreateBusiness submits a new business profile for the authenticated user.
func (c *Client) CreateBusiness(ctx context.Context, token string, req CreateBusinessRequest) error {
	if req.BusinessName == "" {
		return errors.New("[abokiapi.CreateBusiness] businessName is required")
	}
	return c.do(ctx, http.MethodPost, PathBusinessCreate, token, req, nil)
}

// Transactions lists the business's on/off-ramp orders. Filtering and
// pagination happen client side over the returned slice.
func (c *Client) Transactions(ctx context.Context, token string) ([]Transaction, error) {
	var txs []Transaction
	if err := c.do(ctx, http.MethodGet, PathBusinessTransactions, token, nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}
