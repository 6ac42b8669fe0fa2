package oauthflow

import (
	"time"

	"golang.org/x/oauth2"
)

// Token is the result of a successful exchange. It belongs to the caller: the
// flow keeps no copy. After a refresh, persist the returned RefreshToken and
// discard the one that was redeemed.
type Token struct {
	AccessToken  Secret
	TokenType    string
	RefreshToken Secret

	// ExpiresIn is the access token lifetime in seconds as reported by the provider.
	ExpiresIn int64

	// Scope is the granted scope when the provider reports it.
	Scope string

	// Expiry is derived from ExpiresIn at receipt. Zero means no expiry was reported.
	Expiry time.Time
}

// Expired reports whether the access token is past its expiry at now.
// Tokens without a reported lifetime never expire.
func (t *Token) Expired(now time.Time) bool {
	if t == nil || t.AccessToken.IsZero() {
		return true
	}
	if t.Expiry.IsZero() {
		return false
	}
	return !now.Before(t.Expiry)
}

// OAuth2 converts t for use with golang.org/x/oauth2 transports and token sources.
func (t *Token) OAuth2() *oauth2.Token {
	if t == nil {
		return nil
	}
	return &oauth2.Token{
		AccessToken:  t.AccessToken.Value(),
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken.Value(),
		Expiry:       t.Expiry,
		ExpiresIn:    t.ExpiresIn,
	}
}

// TokenFromOAuth2 is the inverse of Token.OAuth2.
func TokenFromOAuth2(tok *oauth2.Token) *Token {
	if tok == nil {
		return nil
	}
	return &Token{
		AccessToken:  Secret(tok.AccessToken),
		TokenType:    tok.TokenType,
		RefreshToken: Secret(tok.RefreshToken),
		ExpiresIn:    tok.ExpiresIn,
		Expiry:       tok.Expiry,
	}
}
