package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Svector-anu/Aboki-Business/abokiapi"
	"github.com/Svector-anu/Aboki-Business/dashboard"
	apperrors "github.com/Svector-anu/Aboki-Business/internal/errors"
	"github.com/Svector-anu/Aboki-Business/listview"
)

// DashboardView is the view model for the dashboard screen: the resolved
// state plus whatever material the screen renders from.
type DashboardView struct {
	State              dashboard.State            `json:"state"`
	VerificationStatus abokiapi.VerificationStatus `json:"verificationStatus"`
	IsAPIEnabled       bool                        `json:"isApiEnabled"`
	EmailVerified      bool                        `json:"emailVerified"`
	Profile            *abokiapi.BusinessProfile   `json:"profile,omitempty"`
	Error              *abokiapi.ErrorResponse     `json:"error,omitempty"`
	Credentials        *abokiapi.APICredentials    `json:"apiCredentials,omitempty"`
}

// DashboardHandler fetches the business profile and resolves the screen to
// render. A 401 from the remote API destroys the session and surfaces as 401
// here, which sends the web client back to sign-in.
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromContext(r.Context())

		outcome, err := s.api.FetchBusinessProfile(r.Context(), token)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrUnauthorized) {
				s.business.Invalidate()
				respondError(w, http.StatusUnauthorized, "session invalid")
				return
			}
			respondUpstreamError(w, err)
			return
		}

		cached, _ := s.business.CachedUser()
		resolution := dashboard.ResolveOutcome(outcome, cached)

		respondJSON(w, http.StatusOK, DashboardView{
			State:              resolution.State,
			VerificationStatus: resolution.VerificationStatus,
			IsAPIEnabled:       resolution.IsAPIEnabled,
			EmailVerified:      resolution.EmailVerified,
			Profile:            outcome.Profile,
			Error:              outcome.Failure,
			Credentials:        dashboard.Credentials(resolution, outcome.Profile),
		})
	}
}

// CreateBusinessHandler submits the business creation form. If a profile
// already exists the handler reports that instead of creating a duplicate.
func (s *Server) CreateBusinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromContext(r.Context())

		var req abokiapi.CreateBusinessRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.BusinessName == "" {
			respondError(w, http.StatusBadRequest, "businessName is required")
			return
		}

		// The original flow re-checks the profile first: an existing business
		// means the user just needs to be sent to the dashboard.
		outcome, err := s.api.FetchBusinessProfile(r.Context(), token)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrUnauthorized) {
				s.business.Invalidate()
				respondError(w, http.StatusUnauthorized, "session invalid")
				return
			}
			respondUpstreamError(w, err)
			return
		}
		if outcome.Profile != nil {
			respondMessage(w, http.StatusConflict, "Business profile already exists! Redirecting to dashboard...")
			return
		}

		if err := s.api.CreateBusiness(r.Context(), token, req); err != nil {
			if apperrors.Is(err, apperrors.ErrUnauthorized) {
				s.business.Invalidate()
				respondError(w, http.StatusUnauthorized, "session invalid")
				return
			}
			respondUpstreamError(w, err)
			return
		}
		respondMessage(w, http.StatusCreated, "Business profile created successfully! Redirecting to dashboard...")
	}
}

// TransactionsHandler lists the business's orders with client-side search,
// date filtering, and pagination.
func (s *Server) TransactionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromContext(r.Context())

		txs, err := s.api.Transactions(r.Context(), token)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrUnauthorized) {
				s.business.Invalidate()
				respondError(w, http.StatusUnauthorized, "session invalid")
				return
			}
			respondUpstreamError(w, err)
			return
		}

		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		pageSize, _ := strconv.Atoi(q.Get("pageSize"))
		if pageSize <= 0 {
			pageSize = 10
		}

		result := listview.Search(txs, q.Get("query"), transactionSearchFields)
		result = listview.Filter(result,
			listview.FieldEquals(q.Get("type"), func(tx abokiapi.Transaction) string {
				return string(tx.Type)
			}),
			listview.WithinRange(listview.DateRange(q.Get("range")), func(tx abokiapi.Transaction) time.Time {
				return tx.CreatedAt
			}, time.Now()),
		)
		page = listview.ClampPage(page, len(result), pageSize)
		respondJSON(w, http.StatusOK, listview.Paginate(result, page, pageSize))
	}
}

func transactionSearchFields(tx abokiapi.Transaction) []string {
	return []string{tx.Description, tx.Destination}
}
