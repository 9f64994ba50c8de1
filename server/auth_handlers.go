package server

import (
	"net/http"
	"strings"

	"github.com/Svector-anu/Aboki-Business/abokiapi"
	apperrors "github.com/Svector-anu/Aboki-Business/internal/errors"
)

// SignupHandler registers a new business user against the remote API.
func (s *Server) SignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req abokiapi.SignupRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			respondError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		user, err := s.api.Signup(r.Context(), req)
		if err != nil {
			respondUpstreamError(w, err)
			return
		}
		respond(w, http.StatusCreated, apiResponse{
			Success: true,
			Message: "Account created successfully! Please check your email to verify your account before signing in.",
			Data:    user,
		})
	}
}

// LoginHandler signs a business user in and persists the session.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := s.business.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respondLoginError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

// LogoutHandler destroys the business session.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.business.Logout(); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to clear session")
			return
		}
		respondMessage(w, http.StatusOK, "signed out")
	}
}

// ForgotPasswordHandler requests a password-reset email.
func (s *Server) ForgotPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := decodeBody(r, &req); err != nil || strings.TrimSpace(req.Email) == "" {
			respondError(w, http.StatusBadRequest, "email is required")
			return
		}

		if err := s.api.ForgotPassword(r.Context(), req.Email); err != nil {
			respondUpstreamError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "If an account exists for that email, a reset link has been sent.")
	}
}

// ResetPasswordHandler completes a password reset.
func (s *Server) ResetPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token       string `json:"token"`
			NewPassword string `json:"newPassword"`
		}
		if err := decodeBody(r, &req); err != nil || req.Token == "" || req.NewPassword == "" {
			respondError(w, http.StatusBadRequest, "token and newPassword are required")
			return
		}

		if err := s.api.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
			respondUpstreamError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "Password updated. You can sign in now.")
	}
}

// VerifyEmailHandler confirms an email address from a verification link.
func (s *Server) VerifyEmailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token string `json:"token"`
		}
		if err := decodeBody(r, &req); err != nil || req.Token == "" {
			respondError(w, http.StatusBadRequest, "token is required")
			return
		}

		if err := s.api.VerifyEmail(r.Context(), req.Token); err != nil {
			respondUpstreamError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "Email verified.")
	}
}

func respondLoginError(w http.ResponseWriter, err error) {
	var apiErr *abokiapi.APIError
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid email or password.")
	case apperrors.Is(err, apperrors.ErrNetwork):
		respondError(w, http.StatusBadGateway, "Network error. Please check your connection and try again.")
	case apperrors.As(err, &apiErr):
		message := apiErr.Message
		if message == "" {
			message = "Login failed. Please try again."
		}
		respondError(w, http.StatusUnauthorized, message)
	default:
		respondError(w, http.StatusInternalServerError, "Login failed. Please try again.")
	}
}
