package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	apierrors "github.com/jrsteele09/go-sheets-sdk/internal/errors"
	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
	"github.com/jrsteele09/go-sheets-sdk/oauthmodel"
	"github.com/jrsteele09/go-sheets-sdk/server/authflowrepo"
	"github.com/jrsteele09/go-sheets-sdk/server/loginsession"
	"github.com/rs/zerolog/hlog"
)

// LoginHandler issues a fresh authorization URL, remembers its state against
// the browser session and redirects to the provider.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := s.ensureSessionID(w, r)

		authReq, err := s.flow.NewAuthorizationURL(s.config.GetScopes()...)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		err = s.authState.Put(r.Context(), sid, &authflowrepo.AuthFlowState{
			State:        authReq.State,
			CodeVerifier: authReq.CodeVerifier,
			Scopes:       authReq.Scopes,
			ReturnURL:    localPath(r.URL.Query().Get(ReturnToParam), RouteMe),
			CreatedAt:    s.now(),
		}, s.config.GetStateTTL())
		if err != nil {
			s.writeError(w, r, apierrors.Wrapf(err, "store auth state"))
			return
		}

		http.Redirect(w, r, authReq.URL, http.StatusFound)
	}
}

// CallbackHandler completes the flow. The stored state is consumed before
// validation so every issued state is good for exactly one callback.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := oauthmodel.CallbackFromQuery(r.URL.Query())

		issued := &authflowrepo.AuthFlowState{}
		if sid := sessionID(r); sid != "" {
			stored, err := s.authState.Take(r.Context(), sid)
			switch {
			case err == nil:
				issued = stored
			case !errors.Is(err, authflowrepo.ErrNotFound):
				s.writeError(w, r, apierrors.Wrapf(err, "load auth state"))
				return
			}
		}

		var opts []oauthflow.ExchangeOption
		if issued.CodeVerifier != "" {
			opts = append(opts, oauthflow.WithCodeVerifier(issued.CodeVerifier))
		}

		token, err := s.flow.CompleteAuthorization(r.Context(), result, issued.State, opts...)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		session := loginsession.Session{
			Token:     token,
			Scopes:    grantedScopes(token, issued.Scopes),
			CreatedAt: s.now(),
			ExpiresAt: s.now().Add(s.config.GetMaxSessionAge()),
		}

		// Identity is informational; a failed lookup does not undo the sign-in.
		if profile, err := s.currentUser(r, "", token); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("current user lookup after sign-in failed")
		} else {
			session.UserID = profile.ID
			session.Email = profile.Email
			session.Name = strings.TrimSpace(profile.FirstName + " " + profile.LastName)
		}

		sid := s.newSessionID(w)
		if err := s.loginSessions.Upsert(sid, session); err != nil {
			s.writeError(w, r, apierrors.Wrapf(err, "store login session"))
			return
		}

		hlog.FromRequest(r).Info().Str("email", session.Email).Msg("signed in")
		http.Redirect(w, r, localPath(issued.ReturnURL, RouteMe), http.StatusFound)
	}
}

type tokenInfo struct {
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Scope     string `json:"scope,omitempty"`
}

// RefreshHandler redeems the session's refresh token and stores the rotated
// token. A refresh token the provider no longer accepts ends the session.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, session, err := s.loginSession(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		token, err := s.refreshSession(r.Context(), sid, session.Token.RefreshToken)
		if err != nil {
			var exchangeErr *oauthflow.TokenExchangeError
			if apierrors.As(err, &exchangeErr) && exchangeErr.InvalidGrant() {
				s.clearSessionCookie(w)
			}
			s.writeError(w, r, err)
			return
		}

		info := tokenInfo{TokenType: token.TokenType, ExpiresIn: token.ExpiresIn, Scope: token.Scope}
		if !token.Expiry.IsZero() {
			info.ExpiresAt = token.Expiry.UTC().Format(time.RFC3339)
		}
		writeJSON(w, http.StatusOK, info)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sid := sessionID(r); sid != "" {
			_ = s.loginSessions.Delete(sid)
			_ = s.authState.Delete(r.Context(), sid)
		}
		s.clearSessionCookie(w)
		http.Redirect(w, r, RouteIndex, http.StatusFound)
	}
}

// loginSession returns the signed-in session of the request.
func (s *Server) loginSession(r *http.Request) (string, loginsession.Session, error) {
	sid := sessionID(r)
	if sid == "" {
		return "", loginsession.Session{}, ErrNotSignedIn
	}
	session, err := s.loginSessions.Get(sid)
	if err != nil {
		if errors.Is(err, loginsession.ErrNotFound) {
			return "", loginsession.Session{}, ErrNotSignedIn
		}
		return "", loginsession.Session{}, err
	}
	if session.Expired(s.now()) || session.Token == nil {
		_ = s.loginSessions.Delete(sid)
		return "", loginsession.Session{}, ErrNotSignedIn
	}
	return sid, session, nil
}

// localPath accepts only same-origin absolute paths, falling back otherwise.
func localPath(p, fallback string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return fallback
	}
	return p
}

func grantedScopes(token *oauthflow.Token, requested []string) []string {
	if token.Scope != "" {
		return oauthmodel.SplitScopes(token.Scope)
	}
	return requested
}
