package oauthmodel_test

import (
	"testing"

	"github.com/jrsteele09/go-sheets-sdk/oauthmodel"
	"github.com/stretchr/testify/require"
)

func TestTokenRequest_Form(t *testing.T) {
	t.Run("authorization code", func(t *testing.T) {
		form := oauthmodel.TokenRequest{
			GrantType:   oauthmodel.AuthorizationCodeGrant,
			Code:        "code-1",
			RedirectURI: "https://app.example.com/callback",
		}.Form()

		require.Equal(t, "authorization_code", form.Get("grant_type"))
		require.Equal(t, "code-1", form.Get("code"))
		require.Equal(t, "https://app.example.com/callback", form.Get("redirect_uri"))
		require.False(t, form.Has("code_verifier"))
		require.False(t, form.Has("refresh_token"))
		require.False(t, form.Has("client_secret"))
	})

	t.Run("authorization code with verifier", func(t *testing.T) {
		form := oauthmodel.TokenRequest{
			GrantType:    oauthmodel.AuthorizationCodeGrant,
			Code:         "code-1",
			CodeVerifier: "verifier",
		}.Form()
		require.Equal(t, "verifier", form.Get("code_verifier"))
		require.False(t, form.Has("redirect_uri"))
	})

	t.Run("refresh token", func(t *testing.T) {
		form := oauthmodel.TokenRequest{
			GrantType:    oauthmodel.RefreshTokenGrant,
			RefreshToken: "rt-1",
			Code:         "ignored",
		}.Form()
		require.Equal(t, "refresh_token", form.Get("grant_type"))
		require.Equal(t, "rt-1", form.Get("refresh_token"))
		require.False(t, form.Has("code"))
	})
}

func TestNormalizeScopes(t *testing.T) {
	require.Equal(t,
		[]string{oauthmodel.ScopeReadSheets, oauthmodel.ScopeWriteSheets},
		oauthmodel.NormalizeScopes([]string{" READ_SHEETS", "", "WRITE_SHEETS", "READ_SHEETS"}),
	)
	require.Equal(t, "READ_SHEETS WRITE_SHEETS", oauthmodel.JoinScopes([]string{"READ_SHEETS", "WRITE_SHEETS"}))
	require.Equal(t, []string{"READ_SHEETS", "WRITE_SHEETS"}, oauthmodel.SplitScopes("READ_SHEETS  WRITE_SHEETS"))
	require.Empty(t, oauthmodel.JoinScopes(nil))
	require.Len(t, oauthmodel.AllScopes(), 9)
}
