package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/go-sheets-sdk/internal/config"
	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
	"github.com/jrsteele09/go-sheets-sdk/server/authflowrepo"
	"github.com/jrsteele09/go-sheets-sdk/server/loginsession"
	"github.com/jrsteele09/go-sheets-sdk/sheets"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Server is a small web application that signs users in with the sheet
// provider and calls the REST API on their behalf.
type Server struct {
	env           string // Environment (e.g., "DEV", "PROD")
	router        chi.Router
	routes        []string
	config        config.Config
	flow          *oauthflow.Flow
	loginSessions loginsession.Repo
	authState     authflowrepo.Repo
	apiOptions    []sheets.Option
	logger        zerolog.Logger
	now           func() time.Time

	// refreshGroup collapses concurrent refreshes of one session, keyed by session id.
	refreshGroup singleflight.Group
}

// New wires the routes. apiOptions are passed to every sheets.Client the
// server creates, ahead of the per-session token source.
func New(cfg config.Config, flow *oauthflow.Flow, loginSessionRepo loginsession.Repo, authStateRepo authflowrepo.Repo, apiOptions ...sheets.Option) (*Server, error) {
	if flow == nil {
		return nil, fmt.Errorf("[Server New] flow is required")
	}
	if loginSessionRepo == nil || authStateRepo == nil {
		return nil, fmt.Errorf("[Server New] session and auth state repositories are required")
	}

	s := &Server{
		env:           cfg.GetEnv(),
		router:        chi.NewRouter(),
		config:        cfg,
		flow:          flow,
		loginSessions: loginSessionRepo,
		authState:     authStateRepo,
		logger:        log.Logger,
		now:           time.Now,
	}
	if base := cfg.GetAPIBaseURL(); base != "" {
		s.apiOptions = append(s.apiOptions, sheets.WithBaseURL(base))
	}
	s.apiOptions = append(s.apiOptions, apiOptions...)

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) RegisterRoute(method, pattern string, handler http.HandlerFunc) {
	s.routes = append(s.routes, method+" "+pattern)
	s.router.Method(method, pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		logRoute(s.logger, parts[0], parts[1])
	}
}

func logRoute(logger zerolog.Logger, method, path string) {
	color, ok := methodColors[method]
	if !ok {
		color = Gray
	}
	displayMethod := color + fmt.Sprintf(" %-7s", method) + ResetColor
	logger.Info().Msgf("[%-19s] %s", displayMethod, path)
}
