package storage

import (
	"github.com/bobmcallan/kabu/internal/interfaces"
	"github.com/bobmcallan/kabu/internal/models"
)

// sessionKey is the fixed storage name the session record lives under.
const sessionKey = "auth-storage"

// SessionFile persists the session record as a single JSON file under the
// fixed key. It is written on every session mutation and read once at
// startup for rehydration.
type SessionFile struct {
	fs *FileStore
}

// NewSessionFile creates a session persister on top of a FileStore.
func NewSessionFile(fs *FileStore) *SessionFile {
	return &SessionFile{fs: fs}
}

// Load reads the persisted session record.
func (s *SessionFile) Load() (*models.PersistedSession, error) {
	var record models.PersistedSession
	if err := s.fs.readJSON("session", sessionKey, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Save writes the session record atomically.
func (s *SessionFile) Save(record *models.PersistedSession) error {
	return s.fs.writeJSON("session", sessionKey, record)
}

// Clear removes the session record.
func (s *SessionFile) Clear() error {
	return s.fs.deleteJSON("session", sessionKey)
}

var _ interfaces.SessionStorage = (*SessionFile)(nil)
