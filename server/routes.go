package server

import (
	"net/http"
	"strings"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// AUTH
	s.registerAPIRoute("POST "+RouteSignup, s.SignupHandler())
	s.registerAPIRoute("POST "+RouteLogin, s.LoginHandler())
	s.registerAPIRoute("POST "+RouteLogout, s.LogoutHandler())
	s.registerAPIRoute("POST "+RouteForgotPassword, s.ForgotPasswordHandler())
	s.registerAPIRoute("POST "+RouteResetPassword, s.ResetPasswordHandler())
	s.registerAPIRoute("POST "+RouteVerifyEmail, s.VerifyEmailHandler())

	// BUSINESS (require the business session)
	s.registerAPIRoute("GET "+RouteDashboard, s.DashboardHandler(), s.RequireSession(s.business))
	s.registerAPIRoute("POST "+RouteBusinessCreate, s.CreateBusinessHandler(), s.RequireSession(s.business))
	s.registerAPIRoute("GET "+RouteTransactions, s.TransactionsHandler(), s.RequireSession(s.business))

	// ADMIN
	s.registerAPIRoute("POST "+RouteAdminLogin, s.AdminLoginHandler())
	s.registerAPIRoute("POST "+RouteAdminLogout, s.AdminLogoutHandler())
	s.registerAPIRoute("POST "+RouteAdminForgotPassword, s.AdminForgotPasswordHandler())
	s.registerAPIRoute("POST "+RouteAdminResetPassword, s.AdminResetPasswordHandler())

	s.registerAPIRoute("GET "+RouteAdminOverview, s.AdminOverviewHandler(), s.RequireSession(s.adminSession))
	s.registerAPIRoute("GET "+RouteAdminUsers, s.AdminUsersHandler(), s.RequireSession(s.adminSession))
	s.registerAPIRoute("POST "+RouteAdminUserVerify, s.AdminVerifyUserHandler(), s.RequireSession(s.adminSession))
	s.registerAPIRoute("PUT "+RouteAdminUserAPIAccess, s.AdminToggleAPIAccessHandler(), s.RequireSession(s.adminSession))
	s.registerAPIRoute("POST "+RouteAdminUserResend, s.AdminResendVerificationHandler(), s.RequireSession(s.adminSession))
}

// registerAPIRoute puts the handler behind the standard middleware chain
// (extra middleware such as session auth runs after it) and registers an
// OPTIONS pattern for the same path. Method-qualified mux patterns would
// otherwise answer browser preflights with a bare 405 before the CORS
// middleware ever runs.
func (s *Server) registerAPIRoute(pattern string, handler http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) {
	s.RegisterRouteHandler(pattern, ChainMiddleware(handler, s.APIMiddleware(mw...)...))

	parts := strings.SplitN(pattern, " ", 2)
	if len(parts) != 2 {
		return
	}
	// Preflights carry no credentials, so the chain deliberately excludes the
	// session middleware. CorsMiddleware answers any OPTIONS with an Origin;
	// same-origin OPTIONS falls through to a plain 204.
	s.mux.Handle("OPTIONS "+parts[1], ChainMiddleware(preflightHandler, s.APIMiddleware()...))
}

func preflightHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
