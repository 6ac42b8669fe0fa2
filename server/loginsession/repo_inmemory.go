package loginsession

import (
	"fmt"
	"sync"

	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
)

// InMemoryLoginSessionRepo is an in-memory implementation of Repo
type InMemoryLoginSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewInMemoryLoginSessionRepo creates a new in-memory login session repository
func NewInMemoryLoginSessionRepo() *InMemoryLoginSessionRepo {
	return &InMemoryLoginSessionRepo{
		sessions: make(map[string]Session),
	}
}

// Upsert creates or updates a login session
func (r *InMemoryLoginSessionRepo) Upsert(sessionID string, session Session) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = copySession(session)
	return nil
}

// Get retrieves a login session by session ID
func (r *InMemoryLoginSessionRepo) Get(sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, fmt.Errorf("sessionID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return Session{}, ErrNotFound
	}
	return copySession(session), nil
}

// UpdateToken replaces the token of an existing session after a refresh
func (r *InMemoryLoginSessionRepo) UpdateToken(sessionID string, token *oauthflow.Token) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}
	if token == nil {
		return fmt.Errorf("token is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	t := *token
	session.Token = &t
	r.sessions[sessionID] = session
	return nil
}

// Delete removes a login session
func (r *InMemoryLoginSessionRepo) Delete(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID) // Already missing is not an error
	return nil
}

func copySession(s Session) Session {
	if s.Token != nil {
		t := *s.Token
		s.Token = &t
	}
	s.Scopes = append([]string(nil), s.Scopes...)
	return s
}
