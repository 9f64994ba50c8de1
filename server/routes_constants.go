package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteSignup         = "/auth/signup"
	RouteLogin          = "/auth/login"
	RouteLogout         = "/auth/logout"
	RouteForgotPassword = "/auth/forgot-password"
	RouteResetPassword  = "/auth/reset-password"
	RouteVerifyEmail    = "/auth/verify-email"

	// Business Routes
	RouteDashboard      = "/dashboard"
	RouteBusinessCreate = "/business/create"
	RouteTransactions   = "/transactions"

	// Admin Routes
	RouteAdminLogin          = "/admin/auth/login"
	RouteAdminLogout         = "/admin/auth/logout"
	RouteAdminForgotPassword = "/admin/auth/forgot-password"
	RouteAdminResetPassword  = "/admin/auth/reset-password"
	RouteAdminOverview       = "/admin/overview"
	RouteAdminUsers          = "/admin/users"
	RouteAdminUserVerify     = "/admin/users/{id}/verify"
	RouteAdminUserAPIAccess  = "/admin/users/{id}/api-access"
	RouteAdminUserResend     = "/admin/users/{id}/resend-verification"

	// Health
	RouteHealth = "/healthz"
)
