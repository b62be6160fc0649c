package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/nfrund/issuedesk/internal/config"
	"github.com/nfrund/issuedesk/internal/domain"
	"github.com/nfrund/issuedesk/internal/issues"
	"github.com/nfrund/issuedesk/internal/pubsub"
	"github.com/nfrund/issuedesk/internal/session"
	"github.com/nfrund/issuedesk/internal/tracing"
	"github.com/samber/do/v2"
)

// ServiceName identifies this process in traces.
const ServiceName = "issuedesk"

// Version is set at build time using -ldflags.
var Version = "0.1.0"

// NewInjector registers the core services built from cfg. Services are
// constructed lazily on first Invoke.
func NewInjector(cfg config.Provider) *do.RootScope {
	i := do.New()

	do.ProvideValue(i, cfg)
	do.Provide(i, provideTracing)
	do.Provide(i, provideIssueService)
	do.Provide(i, provideSessions)
	do.Provide(i, provideBridge)

	return i
}

func provideTracing(i do.Injector) (*tracing.Provider, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return tracing.Setup(context.Background(), tracing.Config{
		Enabled:     cfg.GetTracingEnabled(),
		ServiceName: ServiceName,
		ServiceVer:  Version,
		ZipkinURL:   cfg.GetZipkinURL(),
	})
}

func provideIssueService(i do.Injector) (domain.IssueService, error) {
	cfg := do.MustInvoke[config.Provider](i)
	tp, err := do.Invoke[*tracing.Provider](i)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}
	return issues.NewClient(
		cfg.GetIssueAPIURL(),
		cfg.GetIssueAPITimeout(),
		issues.WithTracer(tp.Tracer(ServiceName+"/issues")),
	), nil
}

func provideSessions(i do.Injector) (*session.Provider, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return session.NewProvider(cfg.GetLoginPath()), nil
}

func provideBridge(i do.Injector) (*pubsub.WatermillBridge, error) {
	return pubsub.NewWatermillBridge(), nil
}

// Shutdown releases the services the injector created: the event bus is
// closed first so no subscriber outlives it, then traces are flushed.
func Shutdown(ctx context.Context, i do.Injector) error {
	var errs []error
	if bridge, err := do.Invoke[*pubsub.WatermillBridge](i); err == nil {
		if err := bridge.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event bus: %w", err))
		}
	}
	if tp, err := do.Invoke[*tracing.Provider](i); err == nil {
		if err := tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
		}
	}
	return errors.Join(errs...)
}
