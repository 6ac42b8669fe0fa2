package config

import (
	"strconv"
	"strings"

	"github.com/jrsteele09/go-sheets-sdk/oauthmodel"
)

const (
	clientIDEnvVar         = "SHEETS_CLIENT_ID"
	clientSecretEnvVar     = "SHEETS_CLIENT_SECRET"
	redirectURLEnvVar      = "SHEETS_REDIRECT_URL"
	authorizationURLEnvVar = "SHEETS_AUTHORIZATION_URL"
	tokenURLEnvVar         = "SHEETS_TOKEN_URL"
	apiBaseURLEnvVar       = "SHEETS_API_BASE_URL"
	scopesEnvVar           = "SHEETS_SCOPES"
	pkceEnvVar             = "SHEETS_PKCE"
)

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURL() string
	GetAuthorizationURL() string
	GetTokenURL() string
	GetAPIBaseURL() string
	GetScopes() []string
	GetUsePKCE() bool
}

type OAuth struct {
	file *File
}

var _ OAuthConfig = OAuth{}

func (o OAuth) GetClientID() string {
	return GetEnv(clientIDEnvVar, fileValue(o.file, func(f *File) string { return f.OAuth.ClientID }, ""))
}

func (o OAuth) GetClientSecret() string {
	return GetEnv(clientSecretEnvVar, fileValue(o.file, func(f *File) string { return f.OAuth.ClientSecret }, ""))
}

// GetRedirectURL defaults to the demo server's own callback route.
func (o OAuth) GetRedirectURL() string {
	def := strings.TrimSuffix(EnvVars{file: o.file}.GetBaseURL(), "/") + "/callback"
	return GetEnv(redirectURLEnvVar, fileValue(o.file, func(f *File) string { return f.OAuth.RedirectURL }, def))
}

// GetAuthorizationURL returns "" when unset so the flow applies its default.
func (o OAuth) GetAuthorizationURL() string {
	return GetEnv(authorizationURLEnvVar, fileValue(o.file, func(f *File) string { return f.OAuth.AuthorizationURL }, ""))
}

// GetTokenURL returns "" when unset so the flow applies its default.
func (o OAuth) GetTokenURL() string {
	return GetEnv(tokenURLEnvVar, fileValue(o.file, func(f *File) string { return f.OAuth.TokenURL }, ""))
}

// GetAPIBaseURL returns "" when unset so the sheets client applies its default.
func (o OAuth) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLEnvVar, fileValue(o.file, func(f *File) string { return f.OAuth.APIBaseURL }, ""))
}

// GetScopes reads a comma or space separated list, defaulting to read-only access.
func (o OAuth) GetScopes() []string {
	if v := GetEnv(scopesEnvVar, ""); v != "" {
		return oauthmodel.SplitScopes(strings.ReplaceAll(v, ",", " "))
	}
	if o.file != nil && len(o.file.OAuth.Scopes) > 0 {
		return oauthmodel.NormalizeScopes(o.file.OAuth.Scopes)
	}
	return []string{oauthmodel.ScopeReadSheets, oauthmodel.ScopeReadUsers}
}

func (o OAuth) GetUsePKCE() bool {
	if v := GetEnv(pkceEnvVar, ""); v != "" {
		b, err := strconv.ParseBool(v)
		return err == nil && b
	}
	if o.file != nil && o.file.OAuth.PKCE != nil {
		return *o.file.OAuth.PKCE
	}
	return false
}
