package sheets

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
	"golang.org/x/oauth2"
)

// Refresher redeems a refresh token for a new token. *oauthflow.Flow satisfies it.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken oauthflow.Secret) (*oauthflow.Token, error)
}

// RotateFunc is called with every token obtained by a refresh so that the
// caller can persist the rotated refresh token.
type RotateFunc func(*oauthflow.Token)

// refreshTokenSource refreshes through the flow when the current token has
// expired. Refreshes are serialised so a rotated refresh token is redeemed once.
type refreshTokenSource struct {
	ctx       context.Context
	refresher Refresher
	onRotate  RotateFunc

	mu    sync.Mutex
	token *oauthflow.Token
}

// NewRefreshingTokenSource returns a token source that starts with token and
// refreshes it through refresher once it expires. ctx bounds each refresh.
func NewRefreshingTokenSource(ctx context.Context, refresher Refresher, token *oauthflow.Token, onRotate RotateFunc) oauth2.TokenSource {
	src := &refreshTokenSource{
		ctx:       ctx,
		refresher: refresher,
		onRotate:  onRotate,
		token:     token,
	}
	return oauth2.ReuseTokenSource(token.OAuth2(), src)
}

func (s *refreshTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok := s.token.OAuth2(); tok.Valid() {
		return tok, nil
	}

	var refreshToken oauthflow.Secret
	if s.token != nil {
		refreshToken = s.token.RefreshToken
	}
	if refreshToken.IsZero() {
		return nil, oauthflow.ErrMissingRefreshToken
	}

	next, err := s.refresher.Refresh(s.ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	s.token = next
	if s.onRotate != nil {
		s.onRotate(next)
	}
	return next.OAuth2(), nil
}
