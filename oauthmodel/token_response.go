package oauthmodel

// TokenResponse represents the body returned by the token endpoint.
// A successful exchange fills the token fields, a rejected one fills the
// error fields (RFC 6749 sections 5.1 and 5.2).
type TokenResponse struct {
	// AccessToken is the credential used to call protected sheet endpoints.
	// Usage: Include in Authorization header: "Bearer <access_token>"
	// Lifespan: Short-lived, see ExpiresIn
	AccessToken *string `json:"access_token,omitempty"`

	// TokenType indicates how to use the access token.
	// Example: "bearer"
	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// Example: 604799
	ExpiresIn int64 `json:"expires_in,omitempty"`

	// RefreshToken is used to obtain new access tokens without user interaction.
	// Security: Should be stored securely, may rotate on each use
	RefreshToken *string `json:"refresh_token,omitempty"`

	// Scope is the space-separated list of scopes actually granted.
	// Note: May be less than requested
	Scope string `json:"scope,omitempty"`

	// Error is the provider's error code on a failed exchange.
	// Example: "invalid_grant"
	Error string `json:"error,omitempty"`

	// ErrorDescription is the provider's human readable explanation.
	ErrorDescription string `json:"error_description,omitempty"`

	// ErrorURI points at a page describing the error.
	ErrorURI string `json:"error_uri,omitempty"`
}

// HasError reports whether the provider answered with an error payload.
func (r *TokenResponse) HasError() bool {
	return r != nil && r.Error != ""
}
