package oauthmodel

// ResponseType represents the OAuth 2.0 response type requested at the authorization endpoint.
type ResponseType string

const (
	// CodeResponseType selects the authorization code grant.
	// Example: /b/authorize?response_type=code&client_id=...
	CodeResponseType ResponseType = "code"
)

// GrantType represents the OAuth 2.0 grant type sent to the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges a one-time authorization code for tokens.
	// Token request includes: grant_type, code, redirect_uri, code_verifier (if PKCE)
	AuthorizationCodeGrant GrantType = "authorization_code"

	// RefreshTokenGrant exchanges a refresh token for a new token pair.
	// Token request includes: grant_type, refresh_token
	// The provider may rotate the refresh token on every use.
	RefreshTokenGrant GrantType = "refresh_token"
)

// CodeChallengeMethod is the PKCE transformation applied to the code verifier.
type CodeChallengeMethod string

const (
	// CodeChallengeMethodS256 sends BASE64URL(SHA256(code_verifier)) as the challenge.
	CodeChallengeMethodS256 CodeChallengeMethod = "S256"
)

// Error codes defined by RFC 6749 for authorization and token responses.
const (
	ErrorInvalidRequest          = "invalid_request"
	ErrorInvalidClient           = "invalid_client"
	ErrorInvalidGrant            = "invalid_grant"
	ErrorUnauthorizedClient      = "unauthorized_client"
	ErrorUnsupportedGrantType    = "unsupported_grant_type"
	ErrorInvalidScope            = "invalid_scope"
	ErrorAccessDenied            = "access_denied"
	ErrorUnsupportedResponseType = "unsupported_response_type"
	ErrorServerError             = "server_error"
	ErrorTemporarilyUnavailable  = "temporarily_unavailable"
)

// Form and query parameter names used on the wire.
const (
	ParamResponseType        = "response_type"
	ParamClientID            = "client_id"
	ParamRedirectURI         = "redirect_uri"
	ParamScope               = "scope"
	ParamState               = "state"
	ParamCode                = "code"
	ParamGrantType           = "grant_type"
	ParamRefreshToken        = "refresh_token"
	ParamCodeVerifier        = "code_verifier"
	ParamCodeChallenge       = "code_challenge"
	ParamCodeChallengeMethod = "code_challenge_method"
	ParamError               = "error"
	ParamErrorDescription    = "error_description"
	ParamErrorURI            = "error_uri"
)
