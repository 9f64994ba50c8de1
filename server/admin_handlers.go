package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Svector-anu/Aboki-Business/abokiapi"
	"github.com/Svector-anu/Aboki-Business/admin"
	apperrors "github.com/Svector-anu/Aboki-Business/internal/errors"
	"github.com/Svector-anu/Aboki-Business/listview"
)

// AdminLoginHandler signs an administrator in and persists the admin session.
func (s *Server) AdminLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := s.adminSession.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respondLoginError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

// AdminLogoutHandler destroys the admin session.
func (s *Server) AdminLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.adminSession.Logout(); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to clear session")
			return
		}
		respondMessage(w, http.StatusOK, "signed out")
	}
}

// AdminForgotPasswordHandler requests a reset email for an admin account.
func (s *Server) AdminForgotPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := decodeBody(r, &req); err != nil || strings.TrimSpace(req.Email) == "" {
			respondError(w, http.StatusBadRequest, "email is required")
			return
		}

		if err := s.api.AdminForgotPassword(r.Context(), req.Email); err != nil {
			respondUpstreamError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "If an account exists for that email, a reset link has been sent.")
	}
}

// AdminResetPasswordHandler completes an admin password reset.
func (s *Server) AdminResetPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token       string `json:"token"`
			NewPassword string `json:"newPassword"`
		}
		if err := decodeBody(r, &req); err != nil || req.Token == "" || req.NewPassword == "" {
			respondError(w, http.StatusBadRequest, "token and newPassword are required")
			return
		}

		if err := s.api.AdminResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
			respondUpstreamError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "Password updated.")
	}
}

// AdminOverviewView is the admin dashboard view model: totals plus both user
// tables' first page.
type AdminOverviewView struct {
	Stats   abokiapi.AdminStats                  `json:"stats"`
	Pending listview.Page[abokiapi.UserRecord]   `json:"pendingUsers"`
	Users   listview.Page[abokiapi.UserRecord]   `json:"users"`
}

// AdminOverviewHandler refreshes the console and returns the overview.
func (s *Server) AdminOverviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.console.Refresh(r.Context()); err != nil {
			if apperrors.Is(err, apperrors.ErrUnauthorized) {
				respondError(w, http.StatusUnauthorized, "session invalid")
				return
			}
			// Partial data is still renderable; fall through with whatever
			// the console holds.
		}

		q := adminQueryFromRequest(r)
		respondJSON(w, http.StatusOK, AdminOverviewView{
			Stats:   s.console.Stats(),
			Pending: s.console.PendingUsers(q),
			Users:   s.console.Users(q),
		})
	}
}

// AdminUsersHandler pages through the cached user list.
func (s *Server) AdminUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := adminQueryFromRequest(r)
		if r.URL.Query().Get("view") == "pending" {
			respondJSON(w, http.StatusOK, s.console.PendingUsers(q))
			return
		}
		respondJSON(w, http.StatusOK, s.console.Users(q))
	}
}

// AdminVerifyUserHandler applies an approve/reject decision.
func (s *Server) AdminVerifyUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("id")

		var req struct {
			Action abokiapi.VerifyAction `json:"action"`
			Notes  string                `json:"notes"`
			Reason string                `json:"rejectionReason"`
		}
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var err error
		switch req.Action {
		case abokiapi.VerifyApprove:
			err = s.console.Approve(r.Context(), userID, req.Notes)
		case abokiapi.VerifyReject:
			err = s.console.Reject(r.Context(), userID, req.Reason)
		default:
			respondError(w, http.StatusBadRequest, "action must be approve or reject")
			return
		}

		if err != nil {
			s.respondAdminActionError(w, err)
			return
		}
		message := "User approved successfully!"
		if req.Action == abokiapi.VerifyReject {
			message = "User rejected successfully!"
		}
		respondMessage(w, http.StatusOK, message)
	}
}

// AdminToggleAPIAccessHandler flips a user's api-access flag.
func (s *Server) AdminToggleAPIAccessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.console.ToggleAPIAccess(r.Context(), r.PathValue("id")); err != nil {
			s.respondAdminActionError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "API access toggled successfully!")
	}
}

// AdminResendVerificationHandler re-sends a user's verification email.
func (s *Server) AdminResendVerificationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.console.ResendVerification(r.Context(), r.PathValue("id")); err != nil {
			s.respondAdminActionError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "Verification email sent.")
	}
}

func (s *Server) respondAdminActionError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrUnauthorized),
		apperrors.Is(err, apperrors.ErrNoSession),
		apperrors.Is(err, apperrors.ErrSessionExpired):
		respondError(w, http.StatusUnauthorized, "session invalid")
	default:
		respondUpstreamError(w, err)
	}
}

func adminQueryFromRequest(r *http.Request) admin.ListQuery {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	return admin.ListQuery{
		Query:    q.Get("query"),
		Status:   q.Get("status"),
		Range:    listview.DateRange(q.Get("range")),
		Page:     page,
		PageSize: pageSize,
	}
}
