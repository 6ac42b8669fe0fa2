package server

import (
	"context"

	apierrors "github.com/jrsteele09/go-sheets-sdk/internal/errors"
	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
)

// refreshSession redeems the refresh token of session sid. Concurrent callers
// for the same session share one token endpoint call, and a caller holding a
// refresh token that was already rotated receives the stored replacement, so
// each refresh token is redeemed at most once. A refresh token the provider
// rejects as invalid_grant ends the session.
func (s *Server) refreshSession(ctx context.Context, sid string, redeemed oauthflow.Secret) (*oauthflow.Token, error) {
	v, err, _ := s.refreshGroup.Do(sid, func() (any, error) {
		session, err := s.loginSessions.Get(sid)
		if err != nil || session.Token == nil {
			return nil, ErrNotSignedIn
		}

		stored := session.Token
		if stored.RefreshToken != redeemed && !stored.Expired(s.now()) {
			return stored, nil
		}

		// Detached so one client going away does not fail the callers sharing this refresh.
		token, err := s.flow.Refresh(context.WithoutCancel(ctx), stored.RefreshToken)
		if err != nil {
			var exchangeErr *oauthflow.TokenExchangeError
			if apierrors.As(err, &exchangeErr) && exchangeErr.InvalidGrant() {
				_ = s.loginSessions.Delete(sid)
			}
			return nil, err
		}

		if err := s.loginSessions.UpdateToken(sid, token); err != nil {
			return nil, apierrors.Wrapf(err, "store refreshed token")
		}
		return token, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*oauthflow.Token), nil
}

// sessionRefresher routes refreshes made by a sheets token source through
// refreshSession.
type sessionRefresher struct {
	s   *Server
	sid string
}

func (r sessionRefresher) Refresh(ctx context.Context, refreshToken oauthflow.Secret) (*oauthflow.Token, error) {
	return r.s.refreshSession(ctx, r.sid, refreshToken)
}
