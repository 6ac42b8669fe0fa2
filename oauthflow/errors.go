package oauthflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-sheets-sdk/oauthmodel"
)

var (
	// Configuration errors
	ErrMissingClientID     = errors.New("oauthflow: missing client id")
	ErrMissingClientSecret = errors.New("oauthflow: missing client secret")
	ErrMissingRedirectURL  = errors.New("oauthflow: missing redirect url")
	ErrInvalidRedirectURL  = errors.New("oauthflow: invalid redirect url")
	ErrInvalidEndpoint     = errors.New("oauthflow: authorization and token endpoints must be absolute https urls")
	ErrNilCollaborator     = errors.New("oauthflow: transport and codec must not be nil")

	// Callback errors
	ErrStateMismatch      = errors.New("oauthflow: state mismatch")
	ErrMissingIssuedState = errors.New("oauthflow: no issued state to compare against")

	// Token exchange errors
	ErrMissingCode         = errors.New("oauthflow: missing authorization code")
	ErrMissingRefreshToken = errors.New("oauthflow: missing refresh token")
	ErrMissingAccessToken  = errors.New("oauthflow: token response has no access_token")
)

// ErrorCodeMissingCode is reported in an AuthorizationError when the callback
// carried neither an error nor an authorization code.
const ErrorCodeMissingCode = "missing_code"

// ErrorKind tags every error the flow returns so callers can decide between
// retrying, re-authorizing, and surfacing the failure to the end user.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConfiguration
	KindStateMismatch
	KindAuthorization
	KindTokenExchange
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindStateMismatch:
		return "state_mismatch"
	case KindAuthorization:
		return "authorization"
	case KindTokenExchange:
		return "token_exchange"
	case KindTransport:
		return "transport"
	}
	return "unknown"
}

// KindOf returns the kind of the first flow error in err's chain.
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// IsRetryable reports whether repeating the failed call may succeed. Only
// transport failures qualify; everything else needs caller intervention.
func IsRetryable(err error) bool {
	var r interface{ Retryable() bool }
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return false
}

// ConfigurationError reports missing or invalid setup. It is raised at
// construction or call time, before any network traffic.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := "oauthflow: invalid configuration"
	if e.Field != "" {
		msg += fmt.Sprintf(": %s", e.Field)
	}
	if e.Reason != "" {
		msg += fmt.Sprintf(" (%s)", e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error   { return e.Err }
func (e *ConfigurationError) Kind() ErrorKind { return KindConfiguration }
func (e *ConfigurationError) Retryable() bool { return false }

// StateMismatchError means the callback's state does not match the issued one.
// The flow must be abandoned and restarted from a fresh authorization URL.
// Neither state value is kept on the error so it is safe to log.
type StateMismatchError struct {
	Err error
}

func (e *StateMismatchError) Error() string {
	if e.Err != nil && !errors.Is(e.Err, ErrStateMismatch) {
		return ErrStateMismatch.Error() + ": " + e.Err.Error()
	}
	return ErrStateMismatch.Error()
}

func (e *StateMismatchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStateMismatch}
	}
	return []error{ErrStateMismatch, e.Err}
}

func (e *StateMismatchError) Kind() ErrorKind { return KindStateMismatch }
func (e *StateMismatchError) Retryable() bool { return false }

// AuthorizationError is the provider's error callback: the user denied consent
// or the provider failed to authorize the request.
type AuthorizationError struct {
	Code        string
	Description string
	URI         string
}

func (e *AuthorizationError) Error() string {
	return "oauthflow: authorization failed: " + describe(e.Code, e.Description)
}

// AccessDenied reports whether the end user declined the consent screen.
func (e *AuthorizationError) AccessDenied() bool {
	return e.Code == oauthmodel.ErrorAccessDenied
}

func (e *AuthorizationError) Kind() ErrorKind { return KindAuthorization }
func (e *AuthorizationError) Retryable() bool { return false }

// TokenExchangeError means the token endpoint answered but rejected the code or
// refresh token, or answered with something that is not a usable token.
// HTTPStatus is zero when the request was refused before being sent.
type TokenExchangeError struct {
	GrantType           oauthmodel.GrantType
	HTTPStatus          int
	ProviderCode        string
	ProviderDescription string
	ProviderURI         string
	Err                 error
}

func (e *TokenExchangeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "oauthflow: %s exchange failed", e.GrantType)
	if e.HTTPStatus != 0 {
		fmt.Fprintf(&b, ": status=%d", e.HTTPStatus)
	}
	if e.ProviderCode != "" {
		b.WriteString(", " + describe(e.ProviderCode, e.ProviderDescription))
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *TokenExchangeError) Unwrap() error   { return e.Err }
func (e *TokenExchangeError) Kind() ErrorKind { return KindTokenExchange }
func (e *TokenExchangeError) Retryable() bool { return false }

// InvalidGrant reports whether the provider rejected the code or refresh token
// itself. For a refresh token this is terminal: re-run the authorization flow.
func (e *TokenExchangeError) InvalidGrant() bool {
	return e.ProviderCode == oauthmodel.ErrorInvalidGrant
}

// TransportError wraps a failure to reach the token endpoint or read its
// answer: refused connections, TLS failures, timeouts and cancellations.
// The caller may retry with backoff; the flow never does.
type TransportError struct {
	GrantType oauthmodel.GrantType
	Err       error
	timeout   bool
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("oauthflow: %s request failed: %v", e.GrantType, e.Err)
}

func (e *TransportError) Unwrap() error   { return e.Err }
func (e *TransportError) Kind() ErrorKind { return KindTransport }
func (e *TransportError) Retryable() bool { return true }

// Timeout reports whether the request hit a deadline or was cancelled.
func (e *TransportError) Timeout() bool { return e.timeout }

// DecodeError is returned by a Codec that cannot read a token response body.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "oauthflow: cannot decode token response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

func describe(code, description string) string {
	if description == "" {
		return "error=" + code
	}
	return fmt.Sprintf("error=%s, error_description=%s", code, description)
}
