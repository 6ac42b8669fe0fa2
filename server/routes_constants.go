package server

// Route path constants
const (
	RouteIndex    = "/"
	RouteLogin    = "/login"
	RouteCallback = "/callback"
	RouteMe       = "/me"
	RouteRefresh  = "/refresh"
	RouteLogout   = "/logout"
)

const (
	// SessionCookieName holds the opaque browser session id.
	SessionCookieName = "sheets_session"

	// ReturnToParam is the query parameter of RouteLogin naming a local path
	// to land on after the callback.
	ReturnToParam = "return_to"
)
