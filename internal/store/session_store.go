package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"passdrop/internal/domain"
)

const sessionsFilename = "sessions.enc"

// SessionFileStore keeps the CLI's joined sessions in one encrypted file
// under dir.
type SessionFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir string) *SessionFileStore {
	return &SessionFileStore{dir: dir}
}

// SaveSession inserts or replaces the record for cs.SessionID.
func (s *SessionFileStore) SaveSession(passphrase string, cs domain.ClientSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load(passphrase)
	if err != nil {
		return err
	}
	sessions[cs.SessionID] = cs
	return s.save(passphrase, sessions)
}

// LoadSession retrieves the record for sessionID, reporting whether it
// exists.
func (s *SessionFileStore) LoadSession(passphrase, sessionID string) (domain.ClientSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load(passphrase)
	if err != nil {
		return domain.ClientSession{}, false, err
	}
	cs, ok := sessions[sessionID]
	return cs, ok, nil
}

// DeleteSession removes the record for sessionID if present.
func (s *SessionFileStore) DeleteSession(passphrase, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load(passphrase)
	if err != nil {
		return err
	}
	delete(sessions, sessionID)
	return s.save(passphrase, sessions)
}

func (s *SessionFileStore) path() string {
	return filepath.Join(s.dir, sessionsFilename)
}

// load reads and opens the store; a missing file is an empty store.
func (s *SessionFileStore) load(passphrase string) (map[string]domain.ClientSession, error) {
	blob, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return map[string]domain.ClientSession{}, nil
	}
	if err != nil {
		return nil, err
	}
	raw, err := open(passphrase, blob)
	if err != nil {
		return nil, err
	}
	sessions := map[string]domain.ClientSession{}
	if err := json.Unmarshal(raw, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// save seals the store and writes it via a temp file, then rename.
func (s *SessionFileStore) save(passphrase string, sessions map[string]domain.ClientSession) error {
	raw, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	blob, err := seal(passphrase, raw)
	if err != nil {
		return err
	}

	path := s.path()
	f, err := os.CreateTemp(filepath.Dir(path), sessionsFilename+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(blob); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(0o600); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

var _ domain.ClientSessionStore = (*SessionFileStore)(nil)
