package loginsession

import (
	"errors"
	"time"

	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
)

var ErrNotFound = errors.New("loginsession: session not found")

type Session struct {
	// Identity, filled from /users/me after login
	UserID int64
	Email  string
	Name   string

	// Token holds the access and refresh tokens. Replace it after every
	// refresh: the previous refresh token is no longer valid.
	Token *oauthflow.Token

	Scopes []string

	// Session management
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the browser session itself has ended. Token
// expiry is handled by refreshing.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type Repo interface {
	Upsert(sessionID string, session Session) error
	Get(sessionID string) (Session, error)
	UpdateToken(sessionID string, token *oauthflow.Token) error
	Delete(sessionID string) error
}
