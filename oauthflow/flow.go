package oauthflow

import (
	"context"

	"github.com/jrsteele09/go-sheets-sdk/oauthmodel"
	"github.com/rs/zerolog"
)

// Flow runs the authorization code grant for one client registration.
//
// A Flow holds no mutable state: no token cache and no table of issued
// states. It is safe for concurrent use, and each call blocks on at most one
// token endpoint round trip. Remembering the issued state between the
// redirect and the callback is the caller's job.
type Flow struct {
	cfg       Config
	exchanger *TokenExchanger
	logger    zerolog.Logger
	pkce      bool
}

// New validates cfg after applying the default endpoints and returns a Flow.
// A missing client id, client secret or redirect URL fails here with a
// *ConfigurationError, before any network call.
func New(cfg Config, opts ...Option) (*Flow, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if o.transport == nil || o.codec == nil {
		return nil, &ConfigurationError{Err: ErrNilCollaborator}
	}

	exchanger := NewTokenExchanger(cfg, o.transport, o.codec, o.logger)
	if o.now != nil {
		exchanger.now = o.now
	}

	return &Flow{
		cfg:       cfg,
		exchanger: exchanger,
		logger:    o.logger,
		pkce:      o.pkce,
	}, nil
}

// Config returns a copy of the flow's configuration, defaults applied.
func (f *Flow) Config() Config {
	return f.cfg
}

// NewAuthorizationURL issues a fresh state and returns the URL to redirect
// the user to. Persist the returned State (and CodeVerifier when PKCE is on)
// in the user's session until the callback arrives.
func (f *Flow) NewAuthorizationURL(scopes ...string) (*AuthorizationRequest, error) {
	req, err := BuildAuthorizationURL(f.cfg, URLOptions{PKCE: f.pkce}, scopes...)
	if err != nil {
		return nil, err
	}
	f.logger.Debug().Strs("scopes", req.Scopes).Bool("pkce", f.pkce).Msg("authorization url issued")
	return req, nil
}

// CompleteAuthorization validates the callback against issuedState and, if
// it matches, exchanges the code for a token. A state mismatch or an error
// callback is returned before any network call and never yields a token.
func (f *Flow) CompleteAuthorization(ctx context.Context, result oauthmodel.CallbackResult, issuedState string, opts ...ExchangeOption) (*Token, error) {
	code, err := ValidateCallback(issuedState, result)
	if err != nil {
		f.logger.Warn().Str("error_kind", KindOf(err).String()).Msg("callback rejected")
		return nil, err
	}
	return f.exchanger.ExchangeCode(ctx, code, opts...)
}

// ExchangeCode redeems an already validated authorization code.
func (f *Flow) ExchangeCode(ctx context.Context, code AuthorizationCode, opts ...ExchangeOption) (*Token, error) {
	return f.exchanger.ExchangeCode(ctx, code, opts...)
}

// Refresh trades refreshToken for a new token. Always persist the returned
// RefreshToken: the provider may have rotated it.
func (f *Flow) Refresh(ctx context.Context, refreshToken Secret) (*Token, error) {
	return f.exchanger.Refresh(ctx, refreshToken)
}
