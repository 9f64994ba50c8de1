package sessions

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Svector-anu/Aboki-Business/abokiapi"
	apperrors "github.com/Svector-anu/Aboki-Business/internal/errors"
)

// AuthAPI is the slice of the remote API the session manager needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (abokiapi.LoginResult, error)
	Profile(ctx context.Context, token string) (abokiapi.UserRecord, error)
}

// Manager implements the login/logout/check-auth operations over a Store. It
// is the single read/write boundary for session state.
type Manager struct {
	store   Store
	api     AuthAPI
	log     zerolog.Logger
	nowTime func() time.Time
}

// ManagerOption modifies a Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithLogger sets the manager's logger.
func WithLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager creates a session Manager over the given store and API client.
func NewManager(store Store, api AuthAPI, options ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[sessions.NewManager] store is required")
	}
	if api == nil {
		return nil, errors.New("[sessions.NewManager] api is required")
	}

	m := &Manager{
		store:   store,
		api:     api,
		log:     zerolog.Nop(),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Login exchanges credentials for a session and persists it.
func (m *Manager) Login(ctx context.Context, email, password string) (abokiapi.UserRecord, error) {
	result, err := m.api.Login(ctx, email, password)
	if err != nil {
		return abokiapi.UserRecord{}, err
	}
	if result.Token == "" {
		return abokiapi.UserRecord{}, apperrors.ErrInvalidCredentials
	}

	user := result.User
	if err := m.store.Save(Session{Token: result.Token, User: &user}); err != nil {
		return abokiapi.UserRecord{}, err
	}
	return user, nil
}

// Logout destroys the session. Logging out without a session is a no-op.
func (m *Manager) Logout() error {
	return m.store.Clear()
}

// Token returns the current bearer token. An expired token clears the session
// and reports ErrSessionExpired.
func (m *Manager) Token() (string, error) {
	session, err := m.store.Load()
	if err != nil {
		return "", err
	}
	if tokenExpired(session.Token, m.nowTime()) {
		_ = m.store.Clear()
		return "", apperrors.ErrSessionExpired
	}
	return session.Token, nil
}

// CheckAuth validates the stored session against the remote API and refreshes
// the cached user snapshot. An invalid token clears both storage keys. A
// network failure falls back to the cached record so the dashboard still
// renders offline.
func (m *Manager) CheckAuth(ctx context.Context) (abokiapi.UserRecord, error) {
	session, err := m.store.Load()
	if err != nil {
		return abokiapi.UserRecord{}, err
	}
	if tokenExpired(session.Token, m.nowTime()) {
		_ = m.store.Clear()
		return abokiapi.UserRecord{}, apperrors.ErrSessionExpired
	}

	fresh, err := m.api.Profile(ctx, session.Token)
	switch {
	case err == nil:
		session.User = &fresh
		if saveErr := m.store.Save(session); saveErr != nil {
			return abokiapi.UserRecord{}, saveErr
		}
		return fresh, nil

	case apperrors.Is(err, apperrors.ErrNetwork):
		// Offline mode: keep whatever snapshot we had.
		if session.User != nil {
			m.log.Warn().Err(err).Msg("Profile refresh failed, using cached user")
			return *session.User, nil
		}
		return abokiapi.UserRecord{}, err

	default:
		// 401 or an unsuccessful envelope: the token is no good. Clear both
		// keys and ignore the response body.
		m.Invalidate()
		return abokiapi.UserRecord{}, apperrors.Wrapf(apperrors.ErrUnauthorized, "check auth: %v", err)
	}
}

// CachedUser returns the stored user snapshot without talking to the API.
func (m *Manager) CachedUser() (*abokiapi.UserRecord, error) {
	session, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	return session.User, nil
}

// Invalidate clears the session after a 401 from any authenticated call.
func (m *Manager) Invalidate() {
	if err := m.store.Clear(); err != nil {
		m.log.Err(err).Msg("Failed to clear session")
	}
}

// tokenExpired inspects the exp claim of a JWT bearer token without verifying
// the signature; the token is minted and verified by the remote API. Opaque
// tokens pass through and are left for the server to reject.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
