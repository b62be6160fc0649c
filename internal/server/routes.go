package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/issuedesk/internal/handlers"
	"github.com/nfrund/issuedesk/internal/middleware"
)

// RegisterRoutes sets up the service routes and boots every module under
// its own prefix.
func (s *Server) RegisterRoutes(ctx context.Context) error {
	sessionHandler := handlers.NewSessionHandler(s.sessions, s.Cfg.GetSessionHandoffSecret(), "/profile")

	s.E.GET("/health", handlers.Health)
	s.E.POST("/session", sessionHandler.Establish, middleware.RateLimiter(2, 10))

	for _, m := range s.modules {
		group := s.E.Group("/" + m.Name())
		if err := m.Boot(ctx, group); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
		slog.Info("Module booted", "module", m.Name())
	}
	return nil
}
