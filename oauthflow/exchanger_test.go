package oauthflow_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
	"github.com/jrsteele09/go-sheets-sdk/oauthmodel"
	"github.com/stretchr/testify/require"
)

const okTokenBody = `{"access_token":"abc","token_type":"bearer","refresh_token":"xyz","expires_in":3600}`

func TestExchangeCode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p := setupProvider(t, jsonResponse(http.StatusOK, okTokenBody))

		tok, err := p.flow.ExchangeCode(context.Background(), "code-1")
		require.NoError(t, err)
		require.Equal(t, oauthflow.Secret("abc"), tok.AccessToken)
		require.Equal(t, "bearer", tok.TokenType)
		require.Equal(t, oauthflow.Secret("xyz"), tok.RefreshToken)
		require.Equal(t, int64(3600), tok.ExpiresIn)
		require.Equal(t, testNow.Add(time.Hour), tok.Expiry)
	})

	t.Run("request shape", func(t *testing.T) {
		p := setupProvider(t, jsonResponse(http.StatusOK, okTokenBody))

		_, err := p.flow.ExchangeCode(context.Background(), "code-1", oauthflow.WithCodeVerifier("verifier-1"))
		require.NoError(t, err)

		req := <-p.requests
		form := url.Values(<-p.forms)
		require.Equal(t, http.MethodPost, req.Method)
		require.Equal(t, "/token", req.URL.Path)
		require.Empty(t, req.URL.RawQuery)
		require.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
		require.Equal(t, "application/json", req.Header.Get("Accept"))

		expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte(testClientID+":"+testClientSecret))
		require.Equal(t, expectedAuth, req.Header.Get("Authorization"))

		require.Equal(t, "authorization_code", form.Get("grant_type"))
		require.Equal(t, "code-1", form.Get("code"))
		require.Equal(t, testRedirectURL, form.Get("redirect_uri"))
		require.Equal(t, "verifier-1", form.Get("code_verifier"))
		require.False(t, form.Has("client_secret"))
		require.False(t, form.Has("client_id"))
	})

	t.Run("invalid grant", func(t *testing.T) {
		p := setupProvider(t, jsonResponse(http.StatusBadRequest, `{"error":"invalid_grant","error_description":"code already used"}`))

		tok, err := p.flow.ExchangeCode(context.Background(), "used-code")
		require.Nil(t, tok)

		var exErr *oauthflow.TokenExchangeError
		require.True(t, errors.As(err, &exErr))
		require.Equal(t, http.StatusBadRequest, exErr.HTTPStatus)
		require.Equal(t, "invalid_grant", exErr.ProviderCode)
		require.Equal(t, "code already used", exErr.ProviderDescription)
		require.Equal(t, oauthmodel.AuthorizationCodeGrant, exErr.GrantType)
		require.True(t, exErr.InvalidGrant())
		require.Equal(t, oauthflow.KindTokenExchange, oauthflow.KindOf(err))
		require.False(t, oauthflow.IsRetryable(err))
		require.Contains(t, err.Error(), "status=400")
		require.Contains(t, err.Error(), "error=invalid_grant")
	})

	t.Run("no retry after rejection", func(t *testing.T) {
		p := setupProvider(t, jsonResponse(http.StatusBadRequest, `{"error":"invalid_grant"}`))

		_, err := p.flow.ExchangeCode(context.Background(), "used-code")
		require.Error(t, err)
		require.Len(t, p.requests, 1)
	})

	t.Run("non json error body", func(t *testing.T) {
		p := setupProvider(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		})

		_, err := p.flow.ExchangeCode(context.Background(), "code-1")
		var exErr *oauthflow.TokenExchangeError
		require.True(t, errors.As(err, &exErr))
		require.Equal(t, http.StatusBadGateway, exErr.HTTPStatus)
		require.Empty(t, exErr.ProviderCode)
	})

	t.Run("missing access token", func(t *testing.T) {
		p := setupProvider(t, jsonResponse(http.StatusOK, `{"token_type":"bearer","expires_in":3600}`))

		_, err := p.flow.ExchangeCode(context.Background(), "code-1")
		require.ErrorIs(t, err, oauthflow.ErrMissingAccessToken)
		require.Equal(t, oauthflow.KindTokenExchange, oauthflow.KindOf(err))
	})

	t.Run("malformed body", func(t *testing.T) {
		p := setupProvider(t, jsonResponse(http.StatusOK, `<html>maintenance</html>`))

		_, err := p.flow.ExchangeCode(context.Background(), "code-1")
		var decodeErr *oauthflow.DecodeError
		require.True(t, errors.As(err, &decodeErr))
		require.Equal(t, oauthflow.KindTokenExchange, oauthflow.KindOf(err))
	})

	t.Run("error payload with status 200", func(t *testing.T) {
		p := setupProvider(t, jsonResponse(http.StatusOK, `{"error":"invalid_client"}`))

		_, err := p.flow.ExchangeCode(context.Background(), "code-1")
		var exErr *oauthflow.TokenExchangeError
		require.True(t, errors.As(err, &exErr))
		require.Equal(t, "invalid_client", exErr.ProviderCode)
	})

	t.Run("empty code never sent", func(t *testing.T) {
		p := setupProvider(t, jsonResponse(http.StatusOK, okTokenBody))

		_, err := p.flow.ExchangeCode(context.Background(), "")
		require.ErrorIs(t, err, oauthflow.ErrMissingCode)
		require.Empty(t, p.requests)
	})
}

// emptyCodec decodes every body to nothing without reporting an error.
type emptyCodec struct{ oauthflow.JSONCodec }

func (emptyCodec) DecodeToken([]byte) (*oauthmodel.TokenResponse, error) { return nil, nil }

func TestExchangeCode_CodecReturnsNothing(t *testing.T) {
	p := setupProvider(t, jsonResponse(http.StatusOK, okTokenBody), oauthflow.WithCodec(emptyCodec{}))

	tok, err := p.flow.ExchangeCode(context.Background(), "code-1")
	require.Nil(t, tok)

	var exErr *oauthflow.TokenExchangeError
	require.ErrorAs(t, err, &exErr)
	require.Equal(t, http.StatusOK, exErr.HTTPStatus)
	require.ErrorIs(t, err, oauthflow.ErrMissingAccessToken)
}

func TestRefresh(t *testing.T) {
	t.Run("rotated refresh token", func(t *testing.T) {
		p := setupProvider(t, jsonResponse(http.StatusOK, `{"access_token":"new-access","token_type":"bearer","refresh_token":"new-refresh","expires_in":600}`))

		tok, err := p.flow.Refresh(context.Background(), "old-refresh")
		require.NoError(t, err)
		require.Equal(t, oauthflow.Secret("new-access"), tok.AccessToken)
		require.Equal(t, oauthflow.Secret("new-refresh"), tok.RefreshToken)

		form := url.Values(<-p.forms)
		require.Equal(t, "refresh_token", form.Get("grant_type"))
		require.Equal(t, "old-refresh", form.Get("refresh_token"))
		require.False(t, form.Has("code"))
		require.False(t, form.Has("client_secret"))

		req := <-p.requests
		user, pass, ok := req.BasicAuth()
		require.True(t, ok)
		require.Equal(t, testClientID, user)
		require.Equal(t, testClientSecret, pass)
	})

	t.Run("refresh token carried over when not rotated", func(t *testing.T) {
		p := setupProvider(t, jsonResponse(http.StatusOK, `{"access_token":"new-access","token_type":"bearer","expires_in":600}`))

		tok, err := p.flow.Refresh(context.Background(), "stable-refresh")
		require.NoError(t, err)
		require.Equal(t, oauthflow.Secret("stable-refresh"), tok.RefreshToken)
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		p := setupProvider(t, jsonResponse(http.StatusUnauthorized, `{"error":"invalid_grant","error_description":"revoked"}`))

		_, err := p.flow.Refresh(context.Background(), "revoked")
		var exErr *oauthflow.TokenExchangeError
		require.True(t, errors.As(err, &exErr))
		require.Equal(t, oauthmodel.RefreshTokenGrant, exErr.GrantType)
		require.True(t, exErr.InvalidGrant())
		require.False(t, oauthflow.IsRetryable(err))
	})

	t.Run("empty refresh token", func(t *testing.T) {
		p := setupProvider(t, jsonResponse(http.StatusOK, okTokenBody))

		_, err := p.flow.Refresh(context.Background(), "")
		require.ErrorIs(t, err, oauthflow.ErrMissingRefreshToken)
		require.Empty(t, p.requests)
	})
}

func TestTransportFailures(t *testing.T) {
	timeoutTransport := transportFunc(func(req *http.Request) (*http.Response, error) {
		return nil, &url.Error{Op: "Post", URL: req.URL.String(), Err: context.DeadlineExceeded}
	})
	refusedTransport := transportFunc(func(req *http.Request) (*http.Response, error) {
		return nil, &url.Error{Op: "Post", URL: req.URL.String(), Err: errors.New("dial tcp: connection refused")}
	})

	calls := map[string]func(*oauthflow.Flow) error{
		"exchange": func(f *oauthflow.Flow) error {
			_, err := f.ExchangeCode(context.Background(), "code-1")
			return err
		},
		"refresh": func(f *oauthflow.Flow) error {
			_, err := f.Refresh(context.Background(), "refresh-1")
			return err
		},
	}

	for name, call := range calls {
		t.Run(name+" timeout", func(t *testing.T) {
			flow, err := oauthflow.New(testConfig(), oauthflow.WithTransport(timeoutTransport))
			require.NoError(t, err)

			err = call(flow)
			var trErr *oauthflow.TransportError
			require.True(t, errors.As(err, &trErr))
			require.True(t, trErr.Timeout())
			require.ErrorIs(t, err, context.DeadlineExceeded)
			require.Equal(t, oauthflow.KindTransport, oauthflow.KindOf(err))
			require.True(t, oauthflow.IsRetryable(err))

			var exErr *oauthflow.TokenExchangeError
			require.False(t, errors.As(err, &exErr))
		})

		t.Run(name+" connection refused", func(t *testing.T) {
			flow, err := oauthflow.New(testConfig(), oauthflow.WithTransport(refusedTransport))
			require.NoError(t, err)

			err = call(flow)
			var trErr *oauthflow.TransportError
			require.True(t, errors.As(err, &trErr))
			require.False(t, trErr.Timeout())
			require.True(t, oauthflow.IsRetryable(err))
		})
	}

	t.Run("context deadline against a slow provider", func(t *testing.T) {
		release := make(chan struct{})
		p := setupProvider(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		})
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := p.flow.Refresh(ctx, "refresh-1")
		var trErr *oauthflow.TransportError
		require.True(t, errors.As(err, &trErr))
		require.True(t, trErr.Timeout())
	})
}
