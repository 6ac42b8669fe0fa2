package oauthflow

import (
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Flow.
type Option func(*options)

type options struct {
	transport Transport
	codec     Codec
	logger    zerolog.Logger
	pkce      bool
	now       func() time.Time
}

func defaultOptions() options {
	return options{
		transport: NewDefaultTransport(),
		codec:     JSONCodec{},
		logger:    zerolog.Nop(),
		now:       time.Now,
	}
}

// WithTransport replaces the default HTTPS client, e.g. to add retries,
// tracing, or to point tests at an httptest server.
func WithTransport(t Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// WithCodec replaces the default JSON codec.
func WithCodec(c Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithLogger enables logging of token requests. Secrets, codes and state
// values are never logged.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPKCE adds an S256 code challenge to every authorization request.
func WithPKCE() Option {
	return func(o *options) {
		o.pkce = true
	}
}

// WithClock sets the time source used to compute token expiry (primarily for testing).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
