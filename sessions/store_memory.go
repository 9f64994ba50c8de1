package sessions

import (
	"sync"

	apperrors "github.com/Svector-anu/Aboki-Business/internal/errors"
)

// InMemoryStore is an in-memory Store implementation, used in tests and as a
// fallback when no data folder is configured.
type InMemoryStore struct {
	mu      sync.RWMutex
	session Session
	present bool
}

var _ Store = (*InMemoryStore)(nil)

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.User != nil {
		// Copy so callers can't mutate the stored record afterwards.
		user := *session.User
		session.User = &user
	}
	s.session = session
	s.present = true
	return nil
}

func (s *InMemoryStore) Load() (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.present || s.session.Token == "" {
		return Session{}, apperrors.ErrNoSession
	}
	session := s.session
	if session.User != nil {
		user := *session.User
		session.User = &user
	}
	return session, nil
}

func (s *InMemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = Session{}
	s.present = false
	return nil
}
