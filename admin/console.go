// Package admin is the administrative console: user approval, API-access
// toggling, and the overview lists it renders. It holds the fetched lists in
// memory and runs the list-view pipeline over them; the remote API remains
// the source of truth.
package admin

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Svector-anu/Aboki-Business/abokiapi"
	apperrors "github.com/Svector-anu/Aboki-Business/internal/errors"
	"github.com/Svector-anu/Aboki-Business/listview"
	"github.com/Svector-anu/Aboki-Business/sessions"
)

// DefaultRefreshInterval is the admin console auto-refresh cadence.
const DefaultRefreshInterval = 30 * time.Second

const defaultApprovalNote = "Approved via admin dashboard"

// API is the slice of the remote API the console needs.
type API interface {
	PendingUsers(ctx context.Context, token string) ([]abokiapi.UserRecord, error)
	AllUsers(ctx context.Context, token string) ([]abokiapi.UserRecord, error)
	UserStats(ctx context.Context, token string) (abokiapi.AdminStats, error)
	VerifyUser(ctx context.Context, token, userID string, req abokiapi.VerifyUserRequest) error
	ToggleAPIAccess(ctx context.Context, token, userID string) error
	ResendVerification(ctx context.Context, token, userID string) error
}

// Console loads and caches the admin dashboard data and applies admin actions.
type Console struct {
	api     API
	session *sessions.Manager
	log     zerolog.Logger
	nowTime func() time.Time

	mu      sync.RWMutex
	pending []abokiapi.UserRecord
	users   []abokiapi.UserRecord
	stats   abokiapi.AdminStats
}

// Option modifies a Console instance.
type Option func(*Console)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Console) {
		c.nowTime = nowFunc
	}
}

// WithLogger sets the console's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Console) {
		c.log = log
	}
}

// NewConsole creates a Console over the admin-scoped session manager.
func NewConsole(api API, session *sessions.Manager, options ...Option) (*Console, error) {
	if api == nil {
		return nil, errors.New("[admin.NewConsole] api is required")
	}
	if session == nil {
		return nil, errors.New("[admin.NewConsole] session is required")
	}

	c := &Console{
		api:     api,
		session: session,
		log:     zerolog.Nop(),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Refresh reloads pending users, all users, and stats in parallel. Results
// land last-write-wins; a 401 from any of the three clears the admin session
// and discards every response body from this round.
func (c *Console) Refresh(ctx context.Context) error {
	token, err := c.session.Token()
	if err != nil {
		return err
	}

	var (
		wg         sync.WaitGroup
		pending    []abokiapi.UserRecord
		users      []abokiapi.UserRecord
		stats      abokiapi.AdminStats
		pendingErr error
		usersErr   error
		statsErr   error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		pending, pendingErr = c.api.PendingUsers(ctx, token)
	}()
	go func() {
		defer wg.Done()
		users, usersErr = c.api.AllUsers(ctx, token)
	}()
	go func() {
		defer wg.Done()
		stats, statsErr = c.api.UserStats(ctx, token)
	}()
	wg.Wait()

	for _, err := range []error{pendingErr, usersErr, statsErr} {
		if apperrors.Is(err, apperrors.ErrUnauthorized) {
			c.session.Invalidate()
			return apperrors.Wrapf(apperrors.ErrUnauthorized, "admin refresh")
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if pendingErr == nil {
		c.pending = pending
	}
	if usersErr == nil {
		c.users = users
	}
	if statsErr == nil {
		c.stats = stats
	}

	for _, err := range []error{pendingErr, usersErr, statsErr} {
		if err != nil {
			c.log.Warn().Err(err).Msg("Partial admin refresh")
			return err
		}
	}
	return nil
}

// AutoRefresh re-runs Refresh on the given interval until ctx is done. Ticks
// overlap an in-flight refresh rather than queueing behind it; the displayed
// lists are last-write-wins either way.
func (c *Console) AutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go func() {
				if err := c.Refresh(ctx); err != nil {
					c.log.Warn().Err(err).Msg("Admin auto-refresh failed")
				}
			}()
		}
	}
}

// Approve marks a pending user approved, enabling API access, then reloads
// the dashboard data.
func (c *Console) Approve(ctx context.Context, userID, notes string) error {
	if notes == "" {
		notes = defaultApprovalNote
	}
	err := c.withToken(func(token string) error {
		return c.api.VerifyUser(ctx, token, userID, abokiapi.VerifyUserRequest{
			Action:    abokiapi.VerifyApprove,
			EnableAPI: true,
			Notes:     notes,
		})
	})
	if err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Reject declines a pending user. A reason is required.
func (c *Console) Reject(ctx context.Context, userID, reason string) error {
	if reason == "" {
		return errors.New("[Console.Reject] a rejection reason is required")
	}
	err := c.withToken(func(token string) error {
		return c.api.VerifyUser(ctx, token, userID, abokiapi.VerifyUserRequest{
			Action:          abokiapi.VerifyReject,
			RejectionReason: reason,
		})
	})
	if err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// ToggleAPIAccess flips a user's api-access flag and reloads the user list.
func (c *Console) ToggleAPIAccess(ctx context.Context, userID string) error {
	err := c.withToken(func(token string) error {
		return c.api.ToggleAPIAccess(ctx, token, userID)
	})
	if err != nil {
		return err
	}

	var users []abokiapi.UserRecord
	err = c.withToken(func(token string) error {
		fresh, err := c.api.AllUsers(ctx, token)
		if err != nil {
			return err
		}
		users = fresh
		return nil
	})
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.users = users
	c.mu.Unlock()
	return nil
}

// ResendVerification re-sends a user's verification email.
func (c *Console) ResendVerification(ctx context.Context, userID string) error {
	return c.withToken(func(token string) error {
		return c.api.ResendVerification(ctx, token, userID)
	})
}

func (c *Console) withToken(call func(token string) error) error {
	token, err := c.session.Token()
	if err != nil {
		return err
	}
	if err := call(token); err != nil {
		if apperrors.Is(err, apperrors.ErrUnauthorized) {
			c.session.Invalidate()
		}
		return err
	}
	return nil
}

// ListQuery is the search/filter/page spec for the user tables.
type ListQuery struct {
	Query    string
	Status   string
	Range    listview.DateRange
	Page     int
	PageSize int
}

// Users runs the list-view pipeline over the cached full user list.
func (c *Console) Users(q ListQuery) listview.Page[abokiapi.UserRecord] {
	c.mu.RLock()
	records := c.users
	c.mu.RUnlock()
	return c.pipeline(records, q)
}

// PendingUsers runs the list-view pipeline over the cached pending list.
func (c *Console) PendingUsers(q ListQuery) listview.Page[abokiapi.UserRecord] {
	c.mu.RLock()
	records := c.pending
	c.mu.RUnlock()
	return c.pipeline(records, q)
}

// Stats returns the cached overview totals.
func (c *Console) Stats() abokiapi.AdminStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

func (c *Console) pipeline(records []abokiapi.UserRecord, q ListQuery) listview.Page[abokiapi.UserRecord] {
	if q.PageSize <= 0 {
		q.PageSize = 10
	}

	result := listview.Search(records, q.Query, userSearchFields)
	result = listview.Filter(result,
		listview.FieldEquals(q.Status, func(u abokiapi.UserRecord) string {
			return string(u.VerificationStatus)
		}),
		listview.WithinRange(q.Range, func(u abokiapi.UserRecord) time.Time {
			return u.CreatedAt
		}, c.nowTime()),
	)
	page := listview.ClampPage(q.Page, len(result), q.PageSize)
	return listview.Paginate(result, page, q.PageSize)
}

func userSearchFields(u abokiapi.UserRecord) []string {
	return []string{u.FullName, u.Email, u.BusinessName}
}
