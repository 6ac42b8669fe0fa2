package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apierrors "github.com/jrsteele09/go-sheets-sdk/internal/errors"
	"github.com/jrsteele09/go-sheets-sdk/internal/utils"
	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is the root of the version 1.1 REST API.
	DefaultBaseURL = "https://api.smartsheet.com/1.1"

	// AssumeUserHeader carries the email of the user an administrator acts as.
	AssumeUserHeader = "Assume-User"

	maxResponseBytes = 4 << 20
)

var ErrNoCredentials = errors.New("sheets: no access token or token source configured")

// Client is a minimal REST client authenticated with a bearer token. It is
// safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	assumeUser string
	logger     zerolog.Logger

	users *UserResources
}

// New returns a Client. One of WithAccessToken or WithTokenSource is required.
func New(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.tokenSource == nil {
		return nil, ErrNoCredentials
	}

	base, err := url.Parse(strings.TrimSuffix(o.baseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("sheets: invalid base URL %q", o.baseURL)
	}

	c := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: o.httpClient.Timeout,
			Transport: &oauth2.Transport{
				Source: o.tokenSource,
				Base:   baseTransport(o.httpClient),
			},
		},
		assumeUser: o.assumeUser,
		logger:     o.logger,
	}
	c.users = &UserResources{client: c}
	return c, nil
}

// Users returns the user resources of the API.
func (c *Client) Users() *UserResources {
	return c.users
}

// AssumedUser returns the email set with WithAssumedUser, or "".
func (c *Client) AssumedUser() string {
	return c.assumeUser
}

func baseTransport(hc *http.Client) http.RoundTripper {
	if hc != nil && hc.Transport != nil {
		return hc.Transport
	}
	return http.DefaultTransport
}

// get issues a GET to path relative to the base URL and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	endpoint := c.baseURL.JoinPath(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return apierrors.Wrapf(err, "sheets: create request")
	}
	req.Header.Set("Accept", "application/json")
	if c.assumeUser != "" {
		req.Header.Set(AssumeUserHeader, url.QueryEscape(c.assumeUser))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.wrapDoError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apierrors.Wrapf(err, "sheets: read response")
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", endpoint.Path).
		Int("status", resp.StatusCode).
		Msg("sheets api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apierrors.Wrapf(err, "sheets: decode %s response", endpoint.Path)
	}
	return nil
}

// wrapDoError unwraps the url.Error added by http.Client so that errors
// raised by a refreshing token source keep their oauthflow type.
func (c *Client) wrapDoError(err error) error {
	var urlErr *url.Error
	if apierrors.As(err, &urlErr) {
		err = urlErr.Err
	}
	if oauthflow.KindOf(err) != oauthflow.KindUnknown {
		return err
	}
	return apierrors.Wrapf(err, "sheets: request failed")
}

// APIError is a non-2xx response from the REST API. It matches the
// internal sentinel for its status with errors.Is.
type APIError struct {
	StatusCode int
	ErrorCode  int
	Message    string
	RefID      string
}

type apiErrorBody struct {
	ErrorCode *int    `json:"errorCode"`
	Message   *string `json:"message"`
	RefID     *string `json:"refId"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var payload apiErrorBody
	if json.Unmarshal(body, &payload) == nil {
		apiErr.ErrorCode = utils.Value(payload.ErrorCode)
		apiErr.Message = utils.Value(payload.Message)
		apiErr.RefID = utils.Value(payload.RefID)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("sheets: api error (status %d", e.StatusCode)
	if e.ErrorCode != 0 {
		msg += fmt.Sprintf(", errorCode %d", e.ErrorCode)
	}
	msg += "): " + e.Message
	if e.RefID != "" {
		msg += " (refId " + e.RefID + ")"
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return apierrors.ForStatus(e.StatusCode)
}

// Sentinels matched by APIError through errors.Is.
var (
	ErrBadRequest   = apierrors.ErrBadRequest
	ErrUnauthorized = apierrors.ErrUnauthorized
	ErrForbidden    = apierrors.ErrForbidden
	ErrNotFound     = apierrors.ErrNotFound
	ErrRateLimited  = apierrors.ErrRateLimited
	ErrServer       = apierrors.ErrServer
)
