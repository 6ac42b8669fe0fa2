package oauthflow

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/jrsteele09/go-sheets-sdk/oauthmodel"
)

// DefaultTimeout bounds a token request made with the default transport.
const DefaultTimeout = 30 * time.Second

// Transport performs the HTTPS round trip to the token endpoint. Connection
// pooling, TLS and retries are its concern. *http.Client satisfies it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewDefaultTransport returns the transport used when none is configured.
func NewDefaultTransport() Transport {
	return &http.Client{Timeout: DefaultTimeout}
}

// Codec encodes token request bodies and decodes token responses.
type Codec interface {
	EncodeForm(params url.Values) ([]byte, error)
	DecodeToken(body []byte) (*oauthmodel.TokenResponse, error)
}

// JSONCodec is the default Codec: form-urlencoded requests, JSON responses.
type JSONCodec struct{}

var _ Codec = JSONCodec{}

// EncodeForm renders params as an application/x-www-form-urlencoded body.
func (JSONCodec) EncodeForm(params url.Values) ([]byte, error) {
	return []byte(params.Encode()), nil
}

// DecodeToken parses a token endpoint JSON body. Any failure is a *DecodeError.
func (JSONCodec) DecodeToken(body []byte) (*oauthmodel.TokenResponse, error) {
	var res oauthmodel.TokenResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &res, nil
}
