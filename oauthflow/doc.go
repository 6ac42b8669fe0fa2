// Package oauthflow implements the client side of the OAuth 2.0 authorization
// code grant for the sheet API.
//
// A typical web application builds one Flow at start-up and shares it:
//
//	flow, err := oauthflow.New(oauthflow.Config{
//		ClientID:     "my-client",
//		ClientSecret: oauthflow.Secret(secret),
//		RedirectURL:  "https://app.example.com/oauth/callback",
//	})
//
//	req, err := flow.NewAuthorizationURL(oauthmodel.ScopeReadSheets)
//	// store req.State in the user's session, redirect to req.URL
//
//	result := oauthmodel.CallbackFromQuery(r.URL.Query())
//	tok, err := flow.CompleteAuthorization(ctx, result, storedState)
//
// Errors carry an ErrorKind (see KindOf) that separates configuration
// mistakes, CSRF rejections, denied consent, provider rejections and
// retryable transport failures.
package oauthflow
