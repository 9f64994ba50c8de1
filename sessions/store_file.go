package sessions

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/Svector-anu/Aboki-Business/abokiapi"
	apperrors "github.com/Svector-anu/Aboki-Business/internal/errors"
)

// FileStore persists a session as two files in the data folder, one per
// storage key (aboki_token/aboki_user, or the admin_ pair). This mirrors the
// browser dashboard's local-storage layout so the two stay interchangeable.
type FileStore struct {
	mu    sync.Mutex
	dir   string
	scope Scope
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store under dir for the given scope. The
// directory is created on first save.
func NewFileStore(dir string, scope Scope) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("[sessions.NewFileStore] dir is required")
	}
	return &FileStore{dir: dir, scope: scope}, nil
}

func (s *FileStore) tokenPath() string {
	return filepath.Join(s.dir, s.scope.TokenKey())
}

func (s *FileStore) userPath() string {
	return filepath.Join(s.dir, s.scope.UserKey())
}

func (s *FileStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return errors.Wrap(err, "[FileStore.Save] creating data folder")
	}

	if err := os.WriteFile(s.tokenPath(), []byte(session.Token), 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.Save] writing token")
	}

	if session.User == nil {
		_ = os.Remove(s.userPath())
		return nil
	}
	payload, err := json.Marshal(session.User)
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] encoding user")
	}
	if err := os.WriteFile(s.userPath(), payload, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.Save] writing user")
	}
	return nil
}

func (s *FileStore) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := os.ReadFile(s.tokenPath())
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, apperrors.ErrNoSession
		}
		return Session{}, errors.Wrap(err, "[FileStore.Load] reading token")
	}
	if len(token) == 0 {
		return Session{}, apperrors.ErrNoSession
	}

	session := Session{Token: string(token)}

	raw, err := os.ReadFile(s.userPath())
	if err != nil {
		if os.IsNotExist(err) {
			return session, nil
		}
		return Session{}, errors.Wrap(err, "[FileStore.Load] reading user")
	}
	var user abokiapi.UserRecord
	if err := json.Unmarshal(raw, &user); err != nil {
		// A corrupt cached record is recoverable; the token still works and
		// the next profile refresh rewrites the snapshot.
		return session, nil
	}
	session.User = &user
	return session, nil
}

// Clear removes both storage keys. Clearing an already-empty store is not an
// error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, path := range []string{s.tokenPath(), s.userPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "[FileStore.Clear] removing %s", filepath.Base(path))
		}
	}
	return nil
}
