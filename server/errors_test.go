package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
	"github.com/jrsteele09/go-sheets-sdk/sheets"
	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"state mismatch", &oauthflow.StateMismatchError{}, http.StatusBadRequest},
		{"denied", &oauthflow.AuthorizationError{Code: "access_denied"}, http.StatusForbidden},
		{"exchange", &oauthflow.TokenExchangeError{HTTPStatus: 400}, http.StatusBadGateway},
		{"transport", &oauthflow.TransportError{Err: errors.New("refused")}, http.StatusGatewayTimeout},
		{"configuration", &oauthflow.ConfigurationError{Field: "ClientID"}, http.StatusInternalServerError},
		{"wrapped exchange", fmt.Errorf("refresh: %w", &oauthflow.TokenExchangeError{}), http.StatusBadGateway},
		{"not signed in", ErrNotSignedIn, http.StatusUnauthorized},
		{"api unauthorized", &sheets.APIError{StatusCode: 401}, http.StatusUnauthorized},
		{"api not found", &sheets.APIError{StatusCode: 404}, http.StatusNotFound},
		{"api rate limited", &sheets.APIError{StatusCode: 429}, http.StatusTooManyRequests},
		{"api server error", &sheets.APIError{StatusCode: 503}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, statusForError(tc.err))
		})
	}
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "/reports", localPath("/reports", "/me"))
	require.Equal(t, "/me", localPath("", "/me"))
	require.Equal(t, "/me", localPath("https://evil.example.com", "/me"))
	require.Equal(t, "/me", localPath("//evil.example.com", "/me"))
	require.Equal(t, "/me", localPath(`/\evil.example.com`, "/me"))
}
