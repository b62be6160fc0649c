package server

import (
	"errors"
	"io/fs"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/issuedesk/internal/config"
	"github.com/nfrund/issuedesk/internal/handlers"
	"github.com/nfrund/issuedesk/internal/logging"
	imw "github.com/nfrund/issuedesk/internal/middleware"
	"github.com/nfrund/issuedesk/internal/module"
	"github.com/nfrund/issuedesk/internal/rendering"
	isession "github.com/nfrund/issuedesk/internal/session"
	"github.com/nfrund/issuedesk/web"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	sessions *isession.Provider
	modules  []module.Module
}

// Dependencies are the services the server routes to.
type Dependencies struct {
	Sessions *isession.Provider
	Modules  []module.Module
}

// New creates a new Server instance with the middleware stack installed.
func New(cfg config.Provider, deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(imw.Logger)
	e.Use(middleware.Recover())

	// Configure and use session middleware
	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	e.StaticFS("/static", static)

	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	return &Server{
		E:        e,
		Cfg:      cfg,
		sessions: deps.Sessions,
		modules:  deps.Modules,
	}
}

// setupErrorHandling logs unhandled errors with a stack trace before
// delegating to echo's default response.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			logging.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
				"error", err,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
