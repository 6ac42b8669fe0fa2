package oauthflow

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"github.com/jrsteele09/go-sheets-sdk/oauthmodel"
	"golang.org/x/oauth2"
)

// stateEntropyBytes is 256 bits of randomness per issued state.
const stateEntropyBytes = 32

// AuthorizationCode is the one-time code returned on a successful callback.
type AuthorizationCode string

// AuthorizationRequest is what the caller keeps between redirecting the user
// to URL and receiving the callback. The flow does not store it.
type AuthorizationRequest struct {
	// URL is where the user agent should be redirected.
	URL string

	// State must be presented back to CompleteAuthorization.
	State string

	// CodeVerifier is set when PKCE is enabled and must be passed back with
	// WithCodeVerifier. Security: treat it like a secret, never log it
	CodeVerifier string

	// Scopes are the normalized scopes that were requested.
	Scopes []string
}

// URLOptions tune a single authorization URL.
type URLOptions struct {
	// PKCE adds an S256 code challenge to the request.
	PKCE bool
}

// BuildAuthorizationURL issues a fresh state token and renders the
// authorization request URL for cfg. Empty endpoints take the provider
// defaults. The client secret never appears in the URL.
func BuildAuthorizationURL(cfg Config, opts URLOptions, scopes ...string) (*AuthorizationRequest, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	state, err := generateState()
	if err != nil {
		return nil, err
	}

	requested := oauthmodel.NormalizeScopes(scopes)
	req := &AuthorizationRequest{
		State:  state,
		Scopes: requested,
	}

	var params []oauth2.AuthCodeOption
	if opts.PKCE {
		req.CodeVerifier = oauth2.GenerateVerifier()
		params = append(params, oauth2.S256ChallengeOption(req.CodeVerifier))
	}

	req.URL = authCodeConfig(cfg, requested).AuthCodeURL(state, params...)
	return req, nil
}

// authCodeConfig carries only the public half of the registration: the
// secret stays out of anything that renders a URL.
func authCodeConfig(cfg Config, scopes []string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:    cfg.ClientID,
		RedirectURL: cfg.RedirectURL,
		Scopes:      scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   cfg.AuthorizationURL,
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

func generateState() (string, error) {
	b := make([]byte, stateEntropyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("oauthflow: generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidateCallback checks a callback against the state issued with its
// authorization request and returns the authorization code.
//
// An error callback yields *AuthorizationError regardless of its state. Any
// difference between the returned and issued state, including an empty
// issued state, yields *StateMismatchError and the code must not be used.
func ValidateCallback(issuedState string, result oauthmodel.CallbackResult) (AuthorizationCode, error) {
	if result.IsError() {
		return "", &AuthorizationError{
			Code:        result.Error,
			Description: result.ErrorDescription,
			URI:         result.ErrorURI,
		}
	}

	if issuedState == "" {
		return "", &StateMismatchError{Err: ErrMissingIssuedState}
	}
	if subtle.ConstantTimeCompare([]byte(issuedState), []byte(result.State)) != 1 {
		return "", &StateMismatchError{}
	}

	if result.Code == "" {
		return "", &AuthorizationError{
			Code:        ErrorCodeMissingCode,
			Description: "callback carried neither a code nor an error",
		}
	}
	return AuthorizationCode(result.Code), nil
}
