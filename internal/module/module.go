package module

import (
	"context"

	"github.com/labstack/echo/v4"
)

// Module defines the contract for a self-contained application feature.
type Module interface {
	// Name returns a unique identifier for the module. It is also the
	// route prefix the module is mounted under.
	Name() string

	// Boot sets up routes and starts background processes.
	Boot(ctx context.Context, router *echo.Group) error

	// Shutdown is called during graceful application shutdown to stop
	// background processes and release resources.
	Shutdown(ctx context.Context) error
}

// BaseModule provides default no-op implementations for Module methods.
// Modules can embed this to avoid implementing methods they don't need.
type BaseModule struct{}

func (m *BaseModule) Boot(ctx context.Context, router *echo.Group) error { return nil }
func (m *BaseModule) Shutdown(ctx context.Context) error                 { return nil }
