// Package sheets is a small REST client for the sheet API, authenticated with
// tokens obtained through package oauthflow.
//
//	tok, _ := flow.CompleteAuthorization(ctx, callback, issuedState)
//	ts := sheets.NewRefreshingTokenSource(ctx, flow, tok, store.Save)
//	client, _ := sheets.New(sheets.WithTokenSource(ts))
//	me, err := client.Users().GetCurrentUser(ctx)
package sheets
