package server

import (
	"encoding/json"
	"errors"
	"net/http"

	apierrors "github.com/jrsteele09/go-sheets-sdk/internal/errors"
	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
	"github.com/jrsteele09/go-sheets-sdk/sheets"
	"github.com/rs/zerolog/hlog"
)

var (
	ErrNotSignedIn = errors.New("not signed in")
)

type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// statusForError maps flow and API failures to the status returned to the browser.
func statusForError(err error) int {
	switch oauthflow.KindOf(err) {
	case oauthflow.KindStateMismatch:
		return http.StatusBadRequest
	case oauthflow.KindAuthorization:
		return http.StatusForbidden
	case oauthflow.KindTokenExchange:
		return http.StatusBadGateway
	case oauthflow.KindTransport:
		return http.StatusGatewayTimeout
	case oauthflow.KindConfiguration:
		return http.StatusInternalServerError
	}

	switch {
	case apierrors.Is(err, ErrNotSignedIn), apierrors.Is(err, apierrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case apierrors.Is(err, apierrors.ErrForbidden):
		return http.StatusForbidden
	case apierrors.Is(err, apierrors.ErrNotFound):
		return http.StatusNotFound
	case apierrors.Is(err, apierrors.ErrRateLimited):
		return http.StatusTooManyRequests
	}

	var apiErr *sheets.APIError
	if apierrors.As(err, &apiErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func errorCode(err error) string {
	if kind := oauthflow.KindOf(err); kind != oauthflow.KindUnknown {
		return kind.String()
	}
	var apiErr *sheets.APIError
	if apierrors.As(err, &apiErr) {
		return "api_error"
	}
	if apierrors.Is(err, ErrNotSignedIn) {
		return "not_signed_in"
	}
	return "internal_error"
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)

	event := hlog.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = hlog.FromRequest(r).Error()
	}
	event.Err(err).
		Str("error_kind", oauthflow.KindOf(err).String()).
		Int("status", status).
		Msg("request failed")

	resp := errorResponse{Error: errorCode(err)}
	if status != http.StatusInternalServerError {
		resp.Description = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
