// Package sessions owns the persisted auth state of the dashboard: the bearer
// token plus the cached user snapshot. Everything that needs auth goes through
// a Store or Manager; nothing else touches the storage keys.
package sessions

import (
	"github.com/Svector-anu/Aboki-Business/abokiapi"
)

// Scope separates the business session from the admin session. Each scope has
// its own pair of storage keys.
type Scope string

const (
	ScopeBusiness Scope = "business"
	ScopeAdmin    Scope = "admin"
)

// Storage keys, kept compatible with the browser dashboard's local storage.
const (
	businessTokenKey = "aboki_token"
	businessUserKey  = "aboki_user"
	adminTokenKey    = "admin_token"
	adminUserKey     = "admin_user"
)

// TokenKey returns the token storage key for the scope.
func (s Scope) TokenKey() string {
	if s == ScopeAdmin {
		return adminTokenKey
	}
	return businessTokenKey
}

// UserKey returns the cached-user storage key for the scope.
func (s Scope) UserKey() string {
	if s == ScopeAdmin {
		return adminUserKey
	}
	return businessUserKey
}

// Session is the persisted auth state: a bearer token and the cached user
// record from the last login or profile refresh.
type Session struct {
	Token string
	User  *abokiapi.UserRecord
}

// Store persists a single session. Save overwrites the stored session
// wholesale; Clear removes both keys.
type Store interface {
	Save(session Session) error
	Load() (Session, error)
	Clear() error
}
