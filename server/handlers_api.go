package server

import (
	"net/http"

	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
	"github.com/jrsteele09/go-sheets-sdk/sheets"
	"github.com/rs/zerolog/hlog"
)

type indexResponse struct {
	SignedIn bool   `json:"signed_in"`
	Email    string `json:"email,omitempty"`
	Login    string `json:"login,omitempty"`
}

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, session, err := s.loginSession(r)
		if err != nil {
			writeJSON(w, http.StatusOK, indexResponse{Login: RouteLogin})
			return
		}
		writeJSON(w, http.StatusOK, indexResponse{SignedIn: true, Email: session.Email})
	}
}

// MeHandler returns the signed-in user's profile from the REST API,
// refreshing the access token first when it has expired.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, session, err := s.loginSession(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		profile, err := s.currentUser(r, sid, session.Token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

// currentUser calls /users/me with token. When sid is set, an expired token
// is refreshed through the session so the rotated token is stored once.
func (s *Server) currentUser(r *http.Request, sid string, token *oauthflow.Token) (*sheets.UserProfile, error) {
	var refresher sheets.Refresher = s.flow
	if sid != "" {
		refresher = sessionRefresher{s: s, sid: sid}
	}

	opts := append([]sheets.Option{}, s.apiOptions...)
	opts = append(opts,
		sheets.WithTokenSource(sheets.NewRefreshingTokenSource(r.Context(), refresher, token, nil)),
		sheets.WithLogger(*hlog.FromRequest(r)),
	)

	client, err := sheets.New(opts...)
	if err != nil {
		return nil, err
	}
	return client.Users().GetCurrentUser(r.Context())
}
