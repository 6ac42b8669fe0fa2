package oauthmodel

import "net/url"

// TokenRequest holds the form parameters of a token endpoint request.
// Client credentials are deliberately absent: they travel in the
// Authorization header, never in the body or the URL.
type TokenRequest struct {
	// GrantType selects the exchange.
	// Required: Yes
	// Example: "authorization_code" or "refresh_token"
	GrantType GrantType

	// Code is the authorization code returned on the callback.
	// Required: Yes (authorization_code grant only)
	// Usage: Exchanged once, the provider rejects a second attempt
	Code string

	// RedirectURI must match the redirect_uri sent on the authorization request.
	// Required: Yes (authorization_code grant only)
	RedirectURI string

	// CodeVerifier is the PKCE verifier matching the code_challenge.
	// Required: Only if PKCE was used on the authorization request
	CodeVerifier string

	// RefreshToken is the refresh token being redeemed.
	// Required: Yes (refresh_token grant only)
	// Security: Never log or expose this value
	RefreshToken string
}

// Form renders the request as application/x-www-form-urlencoded parameters.
// Empty optional parameters are omitted.
func (r TokenRequest) Form() url.Values {
	form := url.Values{}
	form.Set(ParamGrantType, string(r.GrantType))

	switch r.GrantType {
	case AuthorizationCodeGrant:
		form.Set(ParamCode, r.Code)
		if r.RedirectURI != "" {
			form.Set(ParamRedirectURI, r.RedirectURI)
		}
		if r.CodeVerifier != "" {
			form.Set(ParamCodeVerifier, r.CodeVerifier)
		}
	case RefreshTokenGrant:
		form.Set(ParamRefreshToken, r.RefreshToken)
	}
	return form
}
