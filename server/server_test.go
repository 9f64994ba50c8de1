package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Svector-anu/Aboki-Business/abokiapi"
	"github.com/Svector-anu/Aboki-Business/admin"
	"github.com/Svector-anu/Aboki-Business/internal/config"
	apperrors "github.com/Svector-anu/Aboki-Business/internal/errors"
	"github.com/Svector-anu/Aboki-Business/listview"
	"github.com/Svector-anu/Aboki-Business/server"
	"github.com/Svector-anu/Aboki-Business/sessions"
)

// fakeUpstream simulates the remote Aboki API with switchable per-path
// responses.
type fakeUpstream struct {
	mux *http.ServeMux

	profileStatus int
	profileBody   any
}

func newFakeUpstream(t *testing.T) (*fakeUpstream, *httptest.Server) {
	t.Helper()
	f := &fakeUpstream{
		mux:           http.NewServeMux(),
		profileStatus: http.StatusOK,
	}
	f.profileBody = map[string]any{
		"verificationStatus": "approved",
		"isApiEnabled":       true,
		"emailVerified":      true,
		"business":           map[string]any{"businessName": "Tech Innovations LLC"},
		"apiCredentials":     map[string]any{"publicKey": "pk_live_1", "clientKey": "ck_live_1"},
	}

	f.mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "correct" {
			envelope(w, http.StatusUnauthorized, false, "Invalid credentials", nil)
			return
		}
		envelope(w, http.StatusOK, true, "", map[string]any{
			"token": "biz-token",
			"user": map[string]any{
				"id": "user-1", "email": body["email"],
				"isVerified": true, "verificationStatus": "approved", "hasApiAccess": true,
			},
		})
	})
	f.mux.HandleFunc("POST /api/v1/admin/auth/login", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, true, "", map[string]any{
			"token": "admin-token",
			"user":  map[string]any{"id": "admin-1", "email": "admin@aboki.xyz"},
		})
	})
	f.mux.HandleFunc("GET /api/v1/business/profile", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.profileStatus)
		_ = json.NewEncoder(w).Encode(f.profileBody)
	})
	f.mux.HandleFunc("GET /api/v1/business/transactions", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, true, "", []map[string]any{
			{"id": "tx1", "type": "onramp", "amount": 150000, "currency": "NGN", "status": "completed", "description": "USDT purchase", "createdAt": time.Now().Format(time.RFC3339)},
			{"id": "tx2", "type": "offramp", "amount": 90000, "currency": "NGN", "status": "completed", "description": "Cash out", "createdAt": time.Now().AddDate(0, 0, -40).Format(time.RFC3339)},
		})
	})
	f.mux.HandleFunc("GET /api/v1/admin/users/pending-verification", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, true, "", []map[string]any{
			{"id": "u2", "email": "kunle@pay.ng", "fullName": "Kunle Adebayo", "verificationStatus": "pending", "createdAt": time.Now().Format(time.RFC3339)},
		})
	})
	f.mux.HandleFunc("GET /api/v1/admin/users/stats", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, true, "", map[string]any{"totalUsers": 2, "pendingUsers": 1, "approvedUsers": 1, "apiActiveUsers": 1})
	})
	f.mux.HandleFunc("GET /api/v1/admin/users", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, true, "", []map[string]any{
			{"id": "u1", "email": "jane@business.ng", "fullName": "Jane Doe", "verificationStatus": "approved", "createdAt": time.Now().Format(time.RFC3339)},
			{"id": "u2", "email": "kunle@pay.ng", "fullName": "Kunle Adebayo", "verificationStatus": "pending", "createdAt": time.Now().Format(time.RFC3339)},
		})
	})
	f.mux.HandleFunc("POST /api/v1/admin/users/{id}/verify", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, true, "User verified", nil)
	})

	srv := httptest.NewServer(f.mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func envelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": success, "message": message, "data": data})
}

type harness struct {
	server        *server.Server
	upstream      *fakeUpstream
	businessStore *sessions.InMemoryStore
	adminStore    *sessions.InMemoryStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	upstream, upstreamSrv := newFakeUpstream(t)

	api, err := abokiapi.New(upstreamSrv.URL)
	require.NoError(t, err)

	businessStore := sessions.NewInMemoryStore()
	business, err := sessions.NewManager(businessStore, api)
	require.NoError(t, err)

	adminStore := sessions.NewInMemoryStore()
	adminSession, err := sessions.NewManager(adminStore, adminLoginAPI{api})
	require.NoError(t, err)

	console, err := admin.NewConsole(api, adminSession)
	require.NoError(t, err)

	srv, err := server.New(config.New(), api, business, adminSession, console)
	require.NoError(t, err)

	return &harness{server: srv, upstream: upstream, businessStore: businessStore, adminStore: adminStore}
}

type adminLoginAPI struct {
	client *abokiapi.Client
}

func (a adminLoginAPI) Login(ctx context.Context, email, password string) (abokiapi.LoginResult, error) {
	return a.client.AdminLogin(ctx, email, password)
}

func (a adminLoginAPI) Profile(ctx context.Context, token string) (abokiapi.UserRecord, error) {
	return abokiapi.UserRecord{}, apperrors.ErrUnsupported
}

func (h *harness) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.server.ServeHTTP(rec, req)
	return rec
}

func (h *harness) loginBusiness(t *testing.T) {
	t.Helper()
	rec := h.request(t, http.MethodPost, "/auth/login", map[string]string{"email": "jane@business.ng", "password": "correct"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func (h *harness) loginAdmin(t *testing.T) {
	t.Helper()
	rec := h.request(t, http.MethodPost, "/admin/auth/login", map[string]string{"email": "admin@aboki.xyz", "password": "correct"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func decodeView[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var out T
	require.NoError(t, json.Unmarshal(envelope.Data, &out))
	return out
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	rec := h.request(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin(t *testing.T) {
	t.Run("persists the session on success", func(t *testing.T) {
		h := newHarness(t)
		h.loginBusiness(t)

		session, err := h.businessStore.Load()
		require.NoError(t, err)
		require.Equal(t, "biz-token", session.Token)
		require.Equal(t, "jane@business.ng", session.User.Email)
	})

	t.Run("bad credentials stay signed out", func(t *testing.T) {
		h := newHarness(t)
		rec := h.request(t, http.MethodPost, "/auth/login", map[string]string{"email": "jane@business.ng", "password": "wrong"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		_, err := h.businessStore.Load()
		require.Error(t, err)
	})
}

func TestDashboard(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		h := newHarness(t)
		rec := h.request(t, http.MethodGet, "/dashboard", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("approved profile renders the full dashboard with credentials", func(t *testing.T) {
		h := newHarness(t)
		h.loginBusiness(t)

		rec := h.request(t, http.MethodGet, "/dashboard", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		view := decodeView[server.DashboardView](t, rec)
		require.Equal(t, "full_dashboard", string(view.State))
		require.NotNil(t, view.Credentials)
		require.Equal(t, "pk_live_1", view.Credentials.PublicKey)
	})

	t.Run("no-business 403 gates into the creation form", func(t *testing.T) {
		h := newHarness(t)
		h.loginBusiness(t)
		h.upstream.profileStatus = http.StatusForbidden
		h.upstream.profileBody = map[string]any{
			"message":            "No active business found for this account",
			"verificationStatus": "approved",
		}

		rec := h.request(t, http.MethodGet, "/dashboard", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		view := decodeView[server.DashboardView](t, rec)
		require.Equal(t, "create_business_form", string(view.State))
		require.Nil(t, view.Credentials, "credentials never leave the server outside the full dashboard")
	})

	t.Run("pending gate hides the dashboard", func(t *testing.T) {
		h := newHarness(t)
		h.loginBusiness(t)
		h.upstream.profileStatus = http.StatusForbidden
		h.upstream.profileBody = map[string]any{
			"message":            "Business verification pending",
			"verificationStatus": "pending",
		}

		rec := h.request(t, http.MethodGet, "/dashboard", nil)
		view := decodeView[server.DashboardView](t, rec)
		require.Equal(t, "pending_verification", string(view.State))
	})

	t.Run("upstream 401 destroys the session", func(t *testing.T) {
		h := newHarness(t)
		h.loginBusiness(t)
		h.upstream.profileStatus = http.StatusUnauthorized
		h.upstream.profileBody = map[string]any{"message": "token expired"}

		rec := h.request(t, http.MethodGet, "/dashboard", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		_, err := h.businessStore.Load()
		require.Error(t, err, "the 401 must clear the stored session")

		rec = h.request(t, http.MethodGet, "/dashboard", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestTransactions(t *testing.T) {
	h := newHarness(t)
	h.loginBusiness(t)

	t.Run("lists every order by default", func(t *testing.T) {
		rec := h.request(t, http.MethodGet, "/transactions", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		page := decodeView[listview.Page[abokiapi.Transaction]](t, rec)
		require.Equal(t, 2, page.TotalRecords)
		require.Equal(t, 10, page.PageSize)
	})

	t.Run("type and range filters narrow the list", func(t *testing.T) {
		rec := h.request(t, http.MethodGet, "/transactions?type=onramp", nil)
		page := decodeView[listview.Page[abokiapi.Transaction]](t, rec)
		require.Equal(t, 1, page.TotalRecords)
		require.Equal(t, "tx1", page.Items[0].ID)

		rec = h.request(t, http.MethodGet, "/transactions?range=30d", nil)
		page = decodeView[listview.Page[abokiapi.Transaction]](t, rec)
		require.Equal(t, 1, page.TotalRecords, "the 40-day-old order falls outside 30d")
	})

	t.Run("search matches the description", func(t *testing.T) {
		rec := h.request(t, http.MethodGet, "/transactions?query=usdt", nil)
		page := decodeView[listview.Page[abokiapi.Transaction]](t, rec)
		require.Equal(t, 1, page.TotalRecords)
	})
}

func TestAdminOverview(t *testing.T) {
	t.Run("requires the admin session", func(t *testing.T) {
		h := newHarness(t)
		rec := h.request(t, http.MethodGet, "/admin/overview", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("returns stats and both tables", func(t *testing.T) {
		h := newHarness(t)
		h.loginAdmin(t)

		rec := h.request(t, http.MethodGet, "/admin/overview", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		view := decodeView[server.AdminOverviewView](t, rec)
		require.Equal(t, 2, view.Stats.TotalUsers)
		require.Equal(t, 1, view.Pending.TotalRecords)
		require.Equal(t, 2, view.Users.TotalRecords)
	})
}

func TestCors(t *testing.T) {
	const origin = "http://localhost:3000"

	preflight := func(h *harness, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.server.ServeHTTP(rec, req)
		return rec
	}

	t.Run("preflight on an auth route completes", func(t *testing.T) {
		h := newHarness(t)
		rec := preflight(h, "/auth/login")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
		require.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("preflight on a session-protected route needs no session", func(t *testing.T) {
		h := newHarness(t)
		rec := preflight(h, "/dashboard")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("actual cross-origin request carries the allow-origin header", func(t *testing.T) {
		h := newHarness(t)
		payload, err := json.Marshal(map[string]string{"email": "jane@business.ng", "password": "correct"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(payload))
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		h.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origins get no CORS headers", func(t *testing.T) {
		h := newHarness(t)
		req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h.server.ServeHTTP(rec, req)

		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("same-origin requests are untouched", func(t *testing.T) {
		h := newHarness(t)
		h.loginBusiness(t)
		rec := h.request(t, http.MethodGet, "/dashboard", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestAdminVerify(t *testing.T) {
	h := newHarness(t)
	h.loginAdmin(t)

	t.Run("approve hits the verify endpoint", func(t *testing.T) {
		rec := h.request(t, http.MethodPost, "/admin/users/u2/verify", map[string]any{"action": "approve"})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "User approved successfully!")
	})

	t.Run("reject carries the reason", func(t *testing.T) {
		rec := h.request(t, http.MethodPost, "/admin/users/u2/verify", map[string]any{"action": "reject", "rejectionReason": "Incomplete documents"})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "User rejected successfully!")
	})

	t.Run("unknown actions are rejected before any remote call", func(t *testing.T) {
		rec := h.request(t, http.MethodPost, "/admin/users/u2/verify", map[string]any{"action": "promote"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
