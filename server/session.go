package server

import (
	"net/http"

	"github.com/google/uuid"
)

// sessionID returns the browser session id from the cookie, or "".
func sessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

// ensureSessionID returns the current session id, issuing a new cookie when
// the request has none.
func (s *Server) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	if id := sessionID(r); id != "" {
		return id
	}
	return s.newSessionID(w)
}

// newSessionID always issues a fresh id. Called after login so that an id
// known before authentication is never promoted to an authenticated session.
func (s *Server) newSessionID(w http.ResponseWriter) string {
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.config.GetMaxSessionAge().Seconds()),
		HttpOnly: true,
		Secure:   s.config.GetSecureCookies(),
		// Lax so the cookie accompanies the top-level redirect back from the provider
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.GetSecureCookies(),
		SameSite: http.SameSiteLaxMode,
	})
}
