package authflowrepo

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	state     *AuthFlowState
	expiresAt time.Time
}

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface
type InMemoryRepo struct {
	mu     sync.Mutex
	states map[string]entry
	now    func() time.Time
}

// NewInMemoryRepo creates a new in-memory auth flow state repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		states: make(map[string]entry),
		now:    time.Now,
	}
}

// WithClock replaces the time source used for expiry (primarily for testing).
func (r *InMemoryRepo) WithClock(now func() time.Time) *InMemoryRepo {
	r.now = now
	return r
}

// Put stores an auth flow state, replacing any pending one for the same key.
// A non-positive ttl never expires.
func (r *InMemoryRepo) Put(_ context.Context, key string, authState *AuthFlowState, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	if authState == nil {
		return ErrNilState
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictExpired()

	e := entry{state: authState.clone()}
	if ttl > 0 {
		e.expiresAt = r.now().Add(ttl)
	}
	r.states[key] = e
	return nil
}

// Take returns and removes the auth flow state for key.
func (r *InMemoryRepo) Take(_ context.Context, key string) (*AuthFlowState, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.states[key]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.states, key)

	if r.expired(e) {
		return nil, ErrNotFound
	}
	return e.state.clone(), nil
}

// Delete removes an auth flow state
func (r *InMemoryRepo) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, key)
	return nil
}

func (r *InMemoryRepo) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt)
}

// evictExpired must be called with mu held.
func (r *InMemoryRepo) evictExpired() {
	for k, e := range r.states {
		if r.expired(e) {
			delete(r.states, k)
		}
	}
}
