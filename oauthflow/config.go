package oauthflow

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultAuthorizationURL is the provider's authorization endpoint.
	DefaultAuthorizationURL = "https://www.smartsheet.com/b/authorize"

	// DefaultTokenURL is the provider's token endpoint.
	DefaultTokenURL = "https://api.smartsheet.com/1.1/token"
)

// Config is the immutable client registration a Flow is built from.
type Config struct {
	// ClientID identifies the application registered with the provider.
	ClientID string `validate:"required"`

	// ClientSecret authenticates the application at the token endpoint.
	// Security: Sent only in the HTTP Basic Authorization header
	ClientSecret Secret `validate:"required"`

	// RedirectURL is where the provider sends the user back after consent.
	// Example: "https://app.example.com/oauth/callback"
	RedirectURL string `validate:"required,url"`

	// AuthorizationURL overrides DefaultAuthorizationURL.
	AuthorizationURL string `validate:"required,url,startswith=https://"`

	// TokenURL overrides DefaultTokenURL.
	TokenURL string `validate:"required,url,startswith=https://"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// WithDefaults returns a copy of c with empty endpoints replaced by the
// provider defaults.
func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.AuthorizationURL) == "" {
		c.AuthorizationURL = DefaultAuthorizationURL
	}
	if strings.TrimSpace(c.TokenURL) == "" {
		c.TokenURL = DefaultTokenURL
	}
	return c
}

// Validate checks c as is, without applying defaults. The returned error is a
// *ConfigurationError wrapping one of the ErrMissing*/ErrInvalid* sentinels.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ConfigurationError{Err: err}
	}

	fe := verrs[0]
	return &ConfigurationError{
		Field:  fe.Field(),
		Reason: fe.Tag(),
		Err:    sentinelFor(fe.Field(), fe.Tag()),
	}
}

func sentinelFor(field, tag string) error {
	switch field {
	case "ClientID":
		return ErrMissingClientID
	case "ClientSecret":
		return ErrMissingClientSecret
	case "RedirectURL":
		if tag == "required" {
			return ErrMissingRedirectURL
		}
		return ErrInvalidRedirectURL
	}
	return ErrInvalidEndpoint
}

// String describes the configuration without the client secret.
func (c Config) String() string {
	return "client_id=" + c.ClientID +
		" redirect_url=" + c.RedirectURL +
		" authorization_url=" + c.AuthorizationURL +
		" token_url=" + c.TokenURL
}
