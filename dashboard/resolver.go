// Package dashboard derives the dashboard view state from a business-profile
// fetch outcome plus the cached session flags. Resolution is pure: no fetches,
// no caching, recomputed on every profile load.
package dashboard

import (
	"strings"

	"github.com/Svector-anu/Aboki-Business/abokiapi"
	"github.com/Svector-anu/Aboki-Business/internal/utils"
)

// State is the screen the dashboard should render.
type State string

const (
	// StateCreateBusinessForm: approved account with no business yet; show the
	// business creation form.
	StateCreateBusinessForm State = "create_business_form"
	// StateWelcomeNoBusiness: no business and not yet approved; welcome screen.
	StateWelcomeNoBusiness State = "welcome_no_business"
	// StatePendingVerification: gated while admin approval is pending.
	StatePendingVerification State = "pending_verification"
	// StateFullDashboard: approved and API-enabled; the full dashboard.
	StateFullDashboard State = "full_dashboard"
	// StateWelcomeApprovedNoAPI: approved but programmatic access not enabled.
	StateWelcomeApprovedNoAPI State = "welcome_approved_no_api"
)

// Messages the remote API puts in the 403 body when the account has no
// business profile yet. The API exposes no structured code for this case, so
// the match is on the message text and must track the API's exact wording.
var noBusinessMessages = []string{
	"no active business found",
	"create a business first",
}

// Resolution is the derived view state together with the resolved flags that
// produced it.
type Resolution struct {
	State              State
	VerificationStatus abokiapi.VerificationStatus
	IsAPIEnabled       bool
	EmailVerified      bool
	NoBusinessFound    bool
}

// Resolve classifies the dashboard view from a fetch outcome and the cached
// user record. At most one of profile and errResp is non-nil; both nil means
// the fetch never produced a body and resolution runs on cached flags alone.
//
// The rule order is the contract: first match wins.
func Resolve(profile *abokiapi.BusinessProfile, errResp *abokiapi.ErrorResponse, cached *abokiapi.UserRecord) Resolution {
	r := Resolution{
		VerificationStatus: resolveStatus(profile, errResp, cached),
		IsAPIEnabled:       resolveAPIEnabled(profile, errResp, cached),
		EmailVerified:      resolveEmailVerified(profile, errResp, cached),
		NoBusinessFound:    noBusinessFound(errResp),
	}

	switch {
	case r.NoBusinessFound && r.VerificationStatus == abokiapi.VerificationApproved:
		r.State = StateCreateBusinessForm
	case r.NoBusinessFound:
		r.State = StateWelcomeNoBusiness
	case errResp != nil && r.VerificationStatus == abokiapi.VerificationPending:
		r.State = StatePendingVerification
	case profile != nil && r.VerificationStatus == abokiapi.VerificationApproved && r.IsAPIEnabled:
		r.State = StateFullDashboard
	case r.VerificationStatus == abokiapi.VerificationApproved && !r.IsAPIEnabled:
		r.State = StateWelcomeApprovedNoAPI
	default:
		r.State = StateWelcomeNoBusiness
	}
	return r
}

// ResolveOutcome resolves from a tagged profile fetch outcome.
func ResolveOutcome(outcome abokiapi.ProfileOutcome, cached *abokiapi.UserRecord) Resolution {
	return Resolve(outcome.Profile, outcome.Failure, cached)
}

// Field precedence: the just-fetched response when the field is present,
// otherwise the cached session record, otherwise hard defaults
// (pending / false / false).

func resolveStatus(profile *abokiapi.BusinessProfile, errResp *abokiapi.ErrorResponse, cached *abokiapi.UserRecord) abokiapi.VerificationStatus {
	var fetched *abokiapi.VerificationStatus
	switch {
	case profile != nil:
		fetched = profile.VerificationStatus
	case errResp != nil:
		fetched = errResp.VerificationStatus
	}
	if fetched != nil {
		return *fetched
	}
	if cached != nil && cached.VerificationStatus != "" {
		return cached.VerificationStatus
	}
	return abokiapi.VerificationPending
}

func resolveAPIEnabled(profile *abokiapi.BusinessProfile, errResp *abokiapi.ErrorResponse, cached *abokiapi.UserRecord) bool {
	var fetched *bool
	switch {
	case profile != nil:
		fetched = profile.IsAPIEnabled
	case errResp != nil:
		fetched = errResp.IsAPIEnabled
	}
	if fetched != nil {
		return *fetched
	}
	if cached != nil {
		return cached.HasAPIAccess
	}
	return false
}

func resolveEmailVerified(profile *abokiapi.BusinessProfile, errResp *abokiapi.ErrorResponse, cached *abokiapi.UserRecord) bool {
	var fetched *bool
	switch {
	case profile != nil:
		fetched = profile.EmailVerified
	case errResp != nil:
		fetched = errResp.EmailVerified
	}
	if fetched != nil {
		return *fetched
	}
	if cached != nil {
		return cached.IsEmailVerified
	}
	return false
}

// noBusinessFound reports whether the 403 message says the account has no
// business profile yet.
func noBusinessFound(errResp *abokiapi.ErrorResponse) bool {
	if errResp == nil {
		return false
	}
	message := strings.ToLower(errResp.Message)
	for _, needle := range noBusinessMessages {
		if strings.Contains(message, needle) {
			return true
		}
	}
	return false
}

// Credentials returns the API credentials when the resolution reached the full
// dashboard, nil otherwise.
func Credentials(r Resolution, profile *abokiapi.BusinessProfile) *abokiapi.APICredentials {
	if r.State != StateFullDashboard || profile == nil {
		return nil
	}
	return utils.Ptr(profile.APICredentials)
}
