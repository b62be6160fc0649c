package profile

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/issuedesk/internal/domain"
	"github.com/nfrund/issuedesk/internal/middleware"
	"github.com/nfrund/issuedesk/internal/module"
	"github.com/nfrund/issuedesk/internal/pubsub"
	"github.com/nfrund/issuedesk/internal/session"
)

// Dependencies are the services the profile module needs.
type Dependencies struct {
	Sessions     *session.Provider
	IssueService domain.IssueService
	Publisher    pubsub.Publisher
	ViewTTL      time.Duration
	EmailDomain  string
	Location     *time.Location
	Paths        Paths
}

// Module mounts the profile page under /profile.
type Module struct {
	module.BaseModule
	deps    Dependencies
	store   *Store
	handler *Handler
}

// New creates the profile module.
func New(deps Dependencies) *Module {
	return &Module{
		deps:  deps,
		store: NewStore(deps.ViewTTL),
	}
}

func (m *Module) Name() string {
	return "profile"
}

// Store exposes the live view store.
func (m *Module) Store() *Store {
	return m.store
}

func (m *Module) Boot(ctx context.Context, group *echo.Group) error {
	paths := m.deps.Paths
	if paths.Base == "" {
		paths.Base = "/" + m.Name()
	}

	m.handler = NewHandler(m.deps.Sessions, m.deps.IssueService, m.store, m.deps.Publisher, HandlerConfig{
		Paths:       paths,
		EmailDomain: m.deps.EmailDomain,
		Location:    m.deps.Location,
	})

	group.GET("", m.handler.Get)
	group.POST("/logout", m.handler.Logout)
	group.POST("/:view/issues/:id/return", m.handler.Return, middleware.RateLimiter(1, 5))

	m.store.Start(DefaultSweepInterval)
	return nil
}

func (m *Module) Shutdown(ctx context.Context) error {
	m.store.Shutdown()
	return nil
}
