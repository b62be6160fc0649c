package app

import (
	"fmt"

	"github.com/nfrund/issuedesk/internal/config"
	"github.com/nfrund/issuedesk/internal/domain"
	"github.com/nfrund/issuedesk/internal/module"
	"github.com/nfrund/issuedesk/internal/modules/audit"
	"github.com/nfrund/issuedesk/internal/modules/profile"
	"github.com/nfrund/issuedesk/internal/pubsub"
	"github.com/nfrund/issuedesk/internal/session"
	"github.com/samber/do/v2"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules(i do.Injector) ([]module.Module, error) {
	cfg := do.MustInvoke[config.Provider](i)

	issueService, err := do.Invoke[domain.IssueService](i)
	if err != nil {
		return nil, fmt.Errorf("issue service: %w", err)
	}
	sessions, err := do.Invoke[*session.Provider](i)
	if err != nil {
		return nil, fmt.Errorf("sessions: %w", err)
	}
	bridge, err := do.Invoke[*pubsub.WatermillBridge](i)
	if err != nil {
		return nil, fmt.Errorf("event bus: %w", err)
	}

	return []module.Module{
		// Add new application modules here.
		profile.New(profile.Dependencies{
			Sessions:     sessions,
			IssueService: issueService,
			Publisher:    bridge,
			ViewTTL:      cfg.GetProfileViewTTL(),
			EmailDomain:  cfg.GetEmailDomain(),
			Location:     cfg.GetDisplayLocation(),
			Paths: profile.Paths{
				Inventory: cfg.GetInventoryPath(),
				Landing:   cfg.GetLandingPath(),
				Login:     cfg.GetLoginPath(),
			},
		}),
		audit.New(audit.Dependencies{
			Subscriber: bridge,
		}),
	}, nil
}
