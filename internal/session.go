package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Session is an authenticated user. A nil *Session means anonymous.
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionListener is notified after the current session changed
type SessionListener func(ctx context.Context, session *Session) error

// sessionNamespace scopes the user ids derived from e-mail addresses
var sessionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/gigurra/subtrack/users"))

// SessionManager keeps the current session in a file and notifies listeners on
// login and logout. It stands in for an external auth provider.
type SessionManager struct {
	path string

	mu        sync.Mutex
	current   *Session
	listeners []SessionListener
}

// SessionFile is the file name used inside the data directory
const SessionFile = "session.json"

// NewSessionManager loads the session persisted under dataDir, if any
func NewSessionManager(dataDir string) (*SessionManager, error) {
	m := &SessionManager{path: filepath.Join(dataDir, SessionFile)}

	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	if s.ID != "" {
		m.current = &s
	}
	return m, nil
}

// UserIDForEmail derives a stable user id from an e-mail address
func UserIDForEmail(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return uuid.NewSHA1(sessionNamespace, []byte(normalized)).String()
}

// Current returns a copy of the current session, or nil when anonymous
func (m *SessionManager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	s := *m.current
	return &s
}

// OnChange registers a listener for session changes
func (m *SessionManager) OnChange(l SessionListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Login starts a session for email and notifies listeners
func (m *SessionManager) Login(ctx context.Context, email string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, &ValidationError{Field: "email", Reason: fmt.Sprintf("invalid address %q", email)}
	}

	s := &Session{ID: UserIDForEmail(email), Email: email}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0700); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", filepath.Dir(m.path), err)
	}
	if err := os.WriteFile(m.path, data, 0600); err != nil {
		return nil, fmt.Errorf("writing session file: %w", err)
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	copied := *s
	return &copied, m.notify(ctx, &copied)
}

// Logout ends the current session and notifies listeners
func (m *SessionManager) Logout(ctx context.Context) error {
	if err := os.Remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	return m.notify(ctx, nil)
}

func (m *SessionManager) notify(ctx context.Context, s *Session) error {
	m.mu.Lock()
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	var errs []error
	for _, l := range listeners {
		if err := l(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
