package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pgale/chime/internal/core"
)

const (
	// DefaultSessionFileName is the default name for the session file.
	DefaultSessionFileName = "session.json"
)

// Session is the persisted login state.
type Session struct {
	User      core.User `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStorage handles persisting the session to disk.
type SessionStorage struct {
	path string
}

// NewSessionStorage creates session storage at the specified path.
// If path is empty, uses the default location (~/.config/chime/session.json).
func NewSessionStorage(path string) (*SessionStorage, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		path = filepath.Join(configDir, "chime", DefaultSessionFileName)
	}

	return &SessionStorage{path: path}, nil
}

// Save persists a session to disk with owner-only permissions.
func (s *SessionStorage) Save(session *Session) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load reads the session from disk. A missing file is not an error.
func (s *SessionStorage) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	return &session, nil
}

// Delete removes the stored session.
func (s *SessionStorage) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// Path returns the path to the session file.
func (s *SessionStorage) Path() string {
	return s.path
}
