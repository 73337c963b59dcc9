package client

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// SessionStore is the single read/write boundary for the admin token. The
// token is an opaque capability flag: its presence reveals the admin UI, and
// it never expires on its own — only Clear (logout) removes it. When a path
// is set the token persists across processes, like the browser gate it
// replaces.
type SessionStore struct {
	path string

	mu    sync.Mutex
	token string
}

// NewSessionStore loads any previously stored token from path. An empty path
// keeps the token in memory only.
func NewSessionStore(path string) *SessionStore {
	s := &SessionStore{path: path}
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			s.token = strings.TrimSpace(string(b))
		}
	}
	return s
}

// Token returns the stored token, or "" when anonymous.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAdmin reports whether a token is present.
func (s *SessionStore) IsAdmin() bool {
	return s.Token() != ""
}

// SetToken stores the token (transition to authenticated).
func (s *SessionStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if s.path == "" {
		return nil
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear removes the token (explicit logout).
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
