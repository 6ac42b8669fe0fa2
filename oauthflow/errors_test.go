package oauthflow_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err       error
		kind      oauthflow.ErrorKind
		retryable bool
	}{
		{&oauthflow.ConfigurationError{Err: oauthflow.ErrMissingClientID}, oauthflow.KindConfiguration, false},
		{&oauthflow.StateMismatchError{}, oauthflow.KindStateMismatch, false},
		{&oauthflow.AuthorizationError{Code: "access_denied"}, oauthflow.KindAuthorization, false},
		{&oauthflow.TokenExchangeError{HTTPStatus: 400}, oauthflow.KindTokenExchange, false},
		{&oauthflow.TransportError{Err: errors.New("reset")}, oauthflow.KindTransport, true},
		{errors.New("plain"), oauthflow.KindUnknown, false},
		{nil, oauthflow.KindUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			require.Equal(t, tt.kind, oauthflow.KindOf(tt.err))
			require.Equal(t, tt.retryable, oauthflow.IsRetryable(tt.err))

			wrapped := fmt.Errorf("calling provider: %w", tt.err)
			if tt.err != nil {
				require.Equal(t, tt.kind, oauthflow.KindOf(wrapped))
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t,
		"oauthflow: invalid configuration: ClientSecret (required): oauthflow: missing client secret",
		(&oauthflow.ConfigurationError{Field: "ClientSecret", Reason: "required", Err: oauthflow.ErrMissingClientSecret}).Error())

	require.Equal(t,
		"oauthflow: authorization failed: error=access_denied, error_description=denied",
		(&oauthflow.AuthorizationError{Code: "access_denied", Description: "denied"}).Error())

	require.Equal(t,
		"oauthflow: refresh_token exchange failed: status=400, error=invalid_grant",
		(&oauthflow.TokenExchangeError{GrantType: "refresh_token", HTTPStatus: 400, ProviderCode: "invalid_grant"}).Error())

	require.Equal(t, "oauthflow: state mismatch", (&oauthflow.StateMismatchError{}).Error())
}
