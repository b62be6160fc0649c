package profile

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/issuedesk/internal/domain"
	"github.com/nfrund/issuedesk/internal/logging"
	"github.com/nfrund/issuedesk/internal/modules/profile/view"
	"github.com/nfrund/issuedesk/internal/pubsub"
	"github.com/nfrund/issuedesk/internal/session"
	gview "github.com/nfrund/issuedesk/internal/view"
	"github.com/nfrund/issuedesk/web/src/templates/layouts"
)

// Handler serves the profile page and its actions.
type Handler struct {
	sessions    *session.Provider
	issues      domain.IssueService
	store       *Store
	publisher   pubsub.Publisher
	paths       Paths
	emailDomain string
	location    *time.Location
}

// HandlerConfig holds the settings the handler renders with.
type HandlerConfig struct {
	Paths       Paths
	EmailDomain string
	Location    *time.Location
}

// NewHandler creates a new profile Handler.
func NewHandler(sessions *session.Provider, issues domain.IssueService, store *Store, publisher pubsub.Publisher, cfg HandlerConfig) *Handler {
	return &Handler{
		sessions:    sessions,
		issues:      issues,
		store:       store,
		publisher:   publisher,
		paths:       cfg.Paths,
		emailDomain: cfg.EmailDomain,
		location:    cfg.Location,
	}
}

// Get activates a new view for the signed-in user and renders the page.
func (h *Handler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	logger := logging.FromContext(ctx)

	vm := NewViewModel(h.issues, logger)
	if err := vm.Activate(ctx, h.sessions.Guard(c)); err != nil && !errors.Is(err, domain.ErrAuthMissing) {
		logger.Error("Failed to activate profile view", "error", err)
		return c.String(http.StatusInternalServerError, "Could not load your profile.")
	}

	if navigated, err := h.applySignals(c, vm.TakeSignals()); navigated || err != nil {
		return err
	}

	snap := vm.Snapshot()
	if member, ok := snap.Identity.(domain.Member); ok {
		h.store.Put(vm, member.RollNumber)
	}

	data := h.presenter(c).page(snap)
	page := layouts.Base("Profile", gview.GetFlashData(c), view.Profile(data))
	return c.Render(http.StatusOK, "", page)
}

// Return marks one issue returned and re-renders the issues panel from a
// fresh fetch.
func (h *Handler) Return(c echo.Context) error {
	ctx := c.Request().Context()
	logger := logging.FromContext(ctx)

	id, ok := h.sessions.RequireIdentity(c)
	if !ok {
		return nil
	}
	member, ok := id.(domain.Member)
	if !ok {
		return c.String(http.StatusForbidden, "Only members can return items.")
	}

	vm, err := h.store.Get(c.Param("view"), member.RollNumber)
	if err != nil {
		// The page outlived its view; start a fresh one for this request.
		logger.Debug("Re-activating profile view", "error", err)
		vm = NewViewModel(h.issues, logger)
		if err := vm.Activate(ctx, domain.Authenticated(member)); err != nil {
			logger.Error("Failed to re-activate profile view", "error", err)
			return c.String(http.StatusInternalServerError, "Could not load your issues.")
		}
		vm.TakeSignals()
		h.store.Put(vm, member.RollNumber)
	}

	// The URL only carries the ID's text; the fetched record knows whether
	// the backend sent it as a number or a string.
	rec, found := vm.Snapshot().FindIssue(c.Param("id"))
	if !found {
		logger.Warn("Return requested for unknown issue", "issue_id", c.Param("id"))
		gview.Notify(c, gview.Notification{Level: gview.LevelError, Message: msgReturnFailed})
	} else {
		err = vm.ReturnItem(ctx, rec.ID)
		switch {
		case errors.Is(err, domain.ErrNotReady):
			gview.Notify(c, gview.Notification{Level: gview.LevelError, Message: msgReturnFailed})
		case err == nil:
			h.publishReturned(c, vm.ID(), member.RollNumber, rec.ID)
		}
	}

	if navigated, err := h.applySignals(c, vm.TakeSignals()); navigated || err != nil {
		return err
	}

	if !gview.IsHTMX(c) {
		return c.Redirect(http.StatusSeeOther, h.paths.Base)
	}
	panel := h.presenter(c).panel(vm.Snapshot())
	return c.Render(http.StatusOK, "", view.IssuesPanel(panel))
}

// Logout ends the session and sends the browser to the landing page.
func (h *Handler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if viewID := c.FormValue("view"); viewID != "" {
		h.store.Delete(viewID)
	}

	vm := NewViewModel(h.issues, logging.FromContext(ctx))
	err := vm.Logout(ctx, ClearFunc(func() error { return h.sessions.Clear(c) }))
	if err != nil {
		logging.FromContext(ctx).Error("Failed to log out", "error", err)
		return c.String(http.StatusInternalServerError, "Could not log you out.")
	}

	gview.SetFlashSuccess(c, "You have been logged out.")
	_, err = h.applySignals(c, vm.TakeSignals())
	return err
}

// applySignals turns view-model signals into HTTP effects. It reports whether
// the response has been written by a navigation.
func (h *Handler) applySignals(c echo.Context, signals []Signal) (bool, error) {
	var notes []gview.Notification
	for _, s := range signals {
		switch s.Kind {
		case SignalNotifySuccess:
			notes = append(notes, gview.Notification{Level: gview.LevelSuccess, Message: s.Message})
		case SignalNotifyError:
			notes = append(notes, gview.Notification{Level: gview.LevelError, Message: s.Message})
		}
	}
	if len(notes) > 0 {
		gview.Notify(c, notes...)
	}

	for _, s := range signals {
		switch s.Kind {
		case SignalRedirectLogin:
			return true, session.Redirect(c, h.paths.Login)
		case SignalNavigateInventory:
			return true, session.Redirect(c, h.paths.Inventory)
		case SignalNavigateLanding:
			return true, session.Redirect(c, h.paths.Landing)
		}
	}
	return false, nil
}

func (h *Handler) publishReturned(c echo.Context, viewID, roll string, issueID domain.IssueID) {
	if h.publisher == nil {
		return
	}
	ctx := c.Request().Context()
	event := ItemReturned{
		IssueID:    issueID.String(),
		RollNumber: roll,
		ViewID:     viewID,
		ReturnedAt: time.Now().UTC(),
	}
	meta := map[string]string{"request_id": logging.RequestID(ctx)}
	if err := TopicItemReturned.Publish(ctx, h.publisher, roll, event, meta); err != nil {
		logging.FromContext(ctx).Warn("Failed to publish return event", "issue_id", issueID.String(), "error", err)
	}
}

func (h *Handler) presenter(c echo.Context) presenter {
	return presenter{
		paths:       h.paths,
		emailDomain: h.emailDomain,
		locale:      LocaleFor(c.Request().Header.Get("Accept-Language"), h.location),
	}
}
