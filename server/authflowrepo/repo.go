package authflowrepo

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEmptyKey = errors.New("authflowrepo: key cannot be empty")
	ErrNilState = errors.New("authflowrepo: authState cannot be nil")
	ErrNotFound = errors.New("authflowrepo: state not found")
)

// AuthFlowState is what the server remembers between redirecting the user to
// the authorization page and receiving the callback.
type AuthFlowState struct {
	State        string    `json:"state"`
	CodeVerifier string    `json:"code_verifier,omitempty"`
	Scopes       []string  `json:"scopes,omitempty"`
	ReturnURL    string    `json:"return_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Repo stores issued auth flow state keyed by the browser session id. An entry
// is consumed by Take so the same state can never complete two callbacks.
type Repo interface {
	Put(ctx context.Context, key string, authState *AuthFlowState, ttl time.Duration) error
	Take(ctx context.Context, key string) (*AuthFlowState, error)
	Delete(ctx context.Context, key string) error
}

func (s *AuthFlowState) clone() *AuthFlowState {
	c := *s
	c.Scopes = append([]string(nil), s.Scopes...)
	return &c
}
