package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/issuedesk/internal/module"
	"github.com/nfrund/issuedesk/internal/modules/profile"
	"github.com/nfrund/issuedesk/internal/pubsub"
)

// Dependencies are the services the audit module needs.
type Dependencies struct {
	Subscriber pubsub.Subscriber
	Logger     *slog.Logger
}

// Module records item returns in the structured log.
type Module struct {
	module.BaseModule
	subscriber pubsub.Subscriber
	logger     *slog.Logger
	cancel     context.CancelFunc
}

// New creates the audit module.
func New(deps Dependencies) *Module {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Module{
		subscriber: deps.Subscriber,
		logger:     logger.With("module", "audit"),
	}
}

func (m *Module) Name() string {
	return "audit"
}

// Boot subscribes to return events. The module registers no routes.
func (m *Module) Boot(ctx context.Context, _ *echo.Group) error {
	subCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	err := profile.TopicItemReturned.Subscribe(subCtx, m.subscriber, m.handleReturned)
	if err != nil {
		cancel()
		return fmt.Errorf("subscribe to %s: %w", profile.TopicItemReturned.Name(), err)
	}
	return nil
}

func (m *Module) handleReturned(_ context.Context, msg pubsub.Message, ev profile.ItemReturned) error {
	m.logger.Info("Item returned",
		"issue_id", ev.IssueID,
		"roll", ev.RollNumber,
		"view_id", ev.ViewID,
		"returned_at", ev.ReturnedAt,
		"request_id", msg.Metadata["request_id"],
	)
	return nil
}

func (m *Module) Shutdown(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}
