package oauthflow

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/jrsteele09/go-sheets-sdk/internal/utils"
	"github.com/jrsteele09/go-sheets-sdk/oauthmodel"
	"github.com/rs/zerolog"
)

// maxTokenResponseBytes caps how much of a token response is read.
const maxTokenResponseBytes = 1 << 20

// ExchangeOption adds optional parameters to a code exchange.
type ExchangeOption func(*oauthmodel.TokenRequest)

// WithCodeVerifier sends the PKCE verifier issued with the authorization request.
func WithCodeVerifier(verifier string) ExchangeOption {
	return func(r *oauthmodel.TokenRequest) {
		r.CodeVerifier = verifier
	}
}

// TokenExchanger performs the code and refresh token exchanges against the
// token endpoint. It never retries: a consumed code cannot be redeemed twice.
type TokenExchanger struct {
	cfg       Config
	transport Transport
	codec     Codec
	logger    zerolog.Logger
	now       func() time.Time
}

// NewTokenExchanger returns an exchanger for cfg. cfg must already be
// validated; New does this for flows.
func NewTokenExchanger(cfg Config, transport Transport, codec Codec, logger zerolog.Logger) *TokenExchanger {
	return &TokenExchanger{
		cfg:       cfg,
		transport: transport,
		codec:     codec,
		logger:    logger,
		now:       time.Now,
	}
}

// ExchangeCode redeems a one-time authorization code for a token pair.
func (e *TokenExchanger) ExchangeCode(ctx context.Context, code AuthorizationCode, opts ...ExchangeOption) (*Token, error) {
	if code == "" {
		return nil, &TokenExchangeError{GrantType: oauthmodel.AuthorizationCodeGrant, Err: ErrMissingCode}
	}

	req := oauthmodel.TokenRequest{
		GrantType:   oauthmodel.AuthorizationCodeGrant,
		Code:        string(code),
		RedirectURI: e.cfg.RedirectURL,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return e.requestToken(ctx, req)
}

// Refresh redeems a refresh token for a new token pair. The provider may
// rotate the refresh token; when it returns none the redeemed one is carried
// over. An invalid or revoked refresh token is a *TokenExchangeError and
// terminal for that token.
func (e *TokenExchanger) Refresh(ctx context.Context, refreshToken Secret) (*Token, error) {
	if refreshToken.IsZero() {
		return nil, &TokenExchangeError{GrantType: oauthmodel.RefreshTokenGrant, Err: ErrMissingRefreshToken}
	}

	tok, err := e.requestToken(ctx, oauthmodel.TokenRequest{
		GrantType:    oauthmodel.RefreshTokenGrant,
		RefreshToken: refreshToken.Value(),
	})
	if err != nil {
		return nil, err
	}
	if tok.RefreshToken.IsZero() {
		tok.RefreshToken = refreshToken
	}
	return tok, nil
}

func (e *TokenExchanger) requestToken(ctx context.Context, tr oauthmodel.TokenRequest) (*Token, error) {
	grant := tr.GrantType
	httpReq, err := e.newTokenRequest(ctx, tr.Form())
	if err != nil {
		return nil, &TokenExchangeError{GrantType: grant, Err: err}
	}

	start := e.now()
	res, err := e.transport.Do(httpReq)
	if err != nil {
		terr := newTransportError(ctx, grant, err)
		e.logger.Warn().
			Str("grant_type", string(grant)).
			Bool("timeout", terr.Timeout()).
			Dur("elapsed", e.now().Sub(start)).
			Msg("token request failed")
		return nil, terr
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxTokenResponseBytes))
	if err != nil {
		return nil, newTransportError(ctx, grant, err)
	}

	elapsed := e.now().Sub(start)
	tok, err := e.parseTokenResponse(grant, res.StatusCode, body)
	if err != nil {
		e.logger.Warn().
			Str("grant_type", string(grant)).
			Int("status", res.StatusCode).
			Str("error_kind", KindOf(err).String()).
			Dur("elapsed", elapsed).
			Msg("token request rejected")
		return nil, err
	}

	e.logger.Debug().
		Str("grant_type", string(grant)).
		Int("status", res.StatusCode).
		Dur("elapsed", elapsed).
		Msg("token request completed")
	return tok, nil
}

func (e *TokenExchanger) newTokenRequest(ctx context.Context, form url.Values) (*http.Request, error) {
	body, err := e.codec.EncodeForm(form)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.TokenURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(e.cfg.ClientID, e.cfg.ClientSecret.Value())
	return req, nil
}

func (e *TokenExchanger) parseTokenResponse(grant oauthmodel.GrantType, status int, body []byte) (*Token, error) {
	decoded, decodeErr := e.codec.DecodeToken(body)

	if status != http.StatusOK {
		exErr := &TokenExchangeError{GrantType: grant, HTTPStatus: status}
		if decodeErr == nil && decoded != nil {
			exErr.ProviderCode = decoded.Error
			exErr.ProviderDescription = decoded.ErrorDescription
			exErr.ProviderURI = decoded.ErrorURI
		}
		return nil, exErr
	}

	if decodeErr != nil {
		return nil, &TokenExchangeError{GrantType: grant, HTTPStatus: status, Err: decodeErr}
	}
	if decoded == nil {
		return nil, &TokenExchangeError{GrantType: grant, HTTPStatus: status, Err: ErrMissingAccessToken}
	}
	if decoded.HasError() {
		return nil, &TokenExchangeError{
			GrantType:           grant,
			HTTPStatus:          status,
			ProviderCode:        decoded.Error,
			ProviderDescription: decoded.ErrorDescription,
			ProviderURI:         decoded.ErrorURI,
		}
	}

	accessToken := utils.Value(decoded.AccessToken)
	if accessToken == "" {
		return nil, &TokenExchangeError{GrantType: grant, HTTPStatus: status, Err: ErrMissingAccessToken}
	}

	tok := &Token{
		AccessToken:  Secret(accessToken),
		TokenType:    decoded.TokenType,
		RefreshToken: Secret(utils.Value(decoded.RefreshToken)),
		ExpiresIn:    max(decoded.ExpiresIn, 0),
		Scope:        decoded.Scope,
	}
	if tok.ExpiresIn > 0 {
		tok.Expiry = e.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	return tok, nil
}

func newTransportError(ctx context.Context, grant oauthmodel.GrantType, err error) *TransportError {
	terr := &TransportError{GrantType: grant, Err: err}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		terr.timeout = true
	case ctx.Err() != nil:
		terr.timeout = true
	case errors.As(err, &netErr) && netErr.Timeout():
		terr.timeout = true
	}
	return terr
}
