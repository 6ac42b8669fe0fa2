package sheets

import (
	"net/http"
	"time"

	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// DefaultTimeout bounds a single API call made with the default HTTP client.
const DefaultTimeout = 60 * time.Second

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource oauth2.TokenSource
	assumeUser  string
	logger      zerolog.Logger
}

func defaultOptions() options {
	return options{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zerolog.Nop(),
	}
}

// WithBaseURL overrides DefaultBaseURL, e.g. for a regional host or a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient sets the client whose Timeout and Transport are used
// underneath the bearer token transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}

// WithAccessToken authenticates every request with a fixed access token.
func WithAccessToken(token oauthflow.Secret) Option {
	return func(o *options) {
		o.tokenSource = oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token.Value(),
			TokenType:   "Bearer",
		})
	}
}

// WithTokenSource authenticates requests with tokens from ts, for example
// one built by NewRefreshingTokenSource.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(o *options) {
		o.tokenSource = ts
	}
}

// WithAssumedUser makes every request act on behalf of the user with the given email.
// Only administrators may assume another user.
func WithAssumedUser(email string) Option {
	return func(o *options) {
		o.assumeUser = email
	}
}

// WithLogger enables debug logging of API calls. Tokens are never logged.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
