package oauthmodel

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrInvalidCallbackURL is returned when the redirect URL cannot be parsed.
var ErrInvalidCallbackURL = errors.New("invalid callback url")

// CallbackResult is what the provider sent back to the redirect URI: either
// {code, state} or {error, error_description, state}. It is a transient value
// handed once to the state validator and then dropped.
type CallbackResult struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
	ErrorURI         string
}

// IsError reports whether the provider returned an authorization error.
func (c CallbackResult) IsError() bool {
	return c.Error != ""
}

// CallbackFromQuery builds a CallbackResult from the callback's query or form values.
func CallbackFromQuery(values url.Values) CallbackResult {
	return CallbackResult{
		Code:             values.Get(ParamCode),
		State:            values.Get(ParamState),
		Error:            values.Get(ParamError),
		ErrorDescription: values.Get(ParamErrorDescription),
		ErrorURI:         values.Get(ParamErrorURI),
	}
}

// ParseCallbackURL extracts the callback parameters from the full URL the
// provider redirected the browser to.
func ParseCallbackURL(rawURL string) (CallbackResult, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return CallbackResult{}, fmt.Errorf("%w: %w", ErrInvalidCallbackURL, err)
	}
	return CallbackFromQuery(u.Query()), nil
}
