package server

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) initRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.LoggingMiddleware()...)
	s.router.Use(middleware.Recoverer)
	s.router.Use(SecurityHeadersMiddleware)

	s.RegisterRoute(http.MethodGet, RouteIndex, s.IndexHandler())

	// OAuth
	s.RegisterRoute(http.MethodGet, RouteLogin, s.LoginHandler())
	s.RegisterRoute(http.MethodGet, RouteCallback, s.CallbackHandler())
	s.RegisterRoute(http.MethodPost, RouteRefresh, s.RefreshHandler())
	s.RegisterRoute(http.MethodGet, RouteLogout, s.LogoutHandler())

	// API
	s.RegisterRoute(http.MethodGet, RouteMe, s.MeHandler())
}
