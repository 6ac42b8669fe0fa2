package oauthmodel_test

import (
	"net/url"
	"testing"

	"github.com/jrsteele09/go-sheets-sdk/oauthmodel"
	"github.com/stretchr/testify/require"
)

func TestParseCallbackURL(t *testing.T) {
	t.Run("code and state", func(t *testing.T) {
		res, err := oauthmodel.ParseCallbackURL("https://app.example.com/callback?code=abc123&state=xyz&expires_in=599")
		require.NoError(t, err)
		require.False(t, res.IsError())
		require.Equal(t, "abc123", res.Code)
		require.Equal(t, "xyz", res.State)
	})

	t.Run("access denied", func(t *testing.T) {
		res, err := oauthmodel.ParseCallbackURL("https://app.example.com/callback?error=access_denied&error_description=User+declined&state=xyz")
		require.NoError(t, err)
		require.True(t, res.IsError())
		require.Equal(t, oauthmodel.ErrorAccessDenied, res.Error)
		require.Equal(t, "User declined", res.ErrorDescription)
		require.Equal(t, "xyz", res.State)
		require.Empty(t, res.Code)
	})

	t.Run("no parameters", func(t *testing.T) {
		res, err := oauthmodel.ParseCallbackURL("https://app.example.com/callback")
		require.NoError(t, err)
		require.Equal(t, oauthmodel.CallbackResult{}, res)
	})

	t.Run("unparseable url", func(t *testing.T) {
		_, err := oauthmodel.ParseCallbackURL("https://app.example.com/%zz")
		require.ErrorIs(t, err, oauthmodel.ErrInvalidCallbackURL)
	})
}

func TestCallbackFromQuery(t *testing.T) {
	res := oauthmodel.CallbackFromQuery(url.Values{
		"error":     {"server_error"},
		"error_uri": {"https://provider.example.com/errors/1"},
	})
	require.True(t, res.IsError())
	require.Equal(t, "server_error", res.Error)
	require.Equal(t, "https://provider.example.com/errors/1", res.ErrorURI)
}
