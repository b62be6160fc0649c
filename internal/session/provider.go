package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/issuedesk/internal/domain"
)

const (
	// Name is the cookie session holding the signed-in identity.
	Name = "issuedesk-session"

	identityKey = "identity"
)

// Provider resolves the signed-in identity from the cookie session populated by
// the external login flow. It requires the echo-contrib session middleware.
type Provider struct {
	loginPath string
}

// NewProvider creates a Provider that redirects unauthenticated requests to loginPath.
func NewProvider(loginPath string) *Provider {
	return &Provider{loginPath: loginPath}
}

// Resolve returns the identity stored in the session, if any. A record that
// cannot form a valid identity is treated as absent.
func (p *Provider) Resolve(c echo.Context) (domain.Identity, bool) {
	sess, err := session.Get(Name, c)
	if err != nil {
		slog.Warn("Failed to read session", "error", err)
		return nil, false
	}

	raw, ok := sess.Values[identityKey].(string)
	if !ok || raw == "" {
		return nil, false
	}

	var rec domain.IdentityRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		slog.Warn("Discarding undecodable identity record", "error", err)
		return nil, false
	}

	id, err := domain.IdentityFromRecord(rec)
	if err != nil {
		slog.Warn("Discarding invalid identity record", "error", err)
		return nil, false
	}
	return id, true
}

// Guard resolves the identity as a discriminated result.
func (p *Provider) Guard(c echo.Context) domain.AuthResult {
	if id, ok := p.Resolve(c); ok {
		return domain.Authenticated(id)
	}
	return domain.Unauthenticated()
}

// Establish stores the identity handed over by the login flow.
func (p *Provider) Establish(c echo.Context, rec domain.IdentityRecord) (domain.Identity, error) {
	id, err := domain.IdentityFromRecord(rec)
	if err != nil {
		return nil, err
	}

	// Store the normalised record so later reads see the variant's fields only.
	data, err := json.Marshal(domain.RecordFromIdentity(id))
	if err != nil {
		return nil, fmt.Errorf("encode identity: %w", err)
	}

	sess, err := session.Get(Name, c)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	sess.Values[identityKey] = string(data)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return id, nil
}

// Clear removes the identity from the session and expires the cookie.
func (p *Provider) Clear(c echo.Context) error {
	sess, err := session.Get(Name, c)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	delete(sess.Values, identityKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// IsGuestIdentity reports whether id is a guest.
func (p *Provider) IsGuestIdentity(id domain.Identity) bool {
	return domain.IsGuest(id)
}

// EnsureAuthenticated returns true when an identity is present. Otherwise it
// redirects to the login page and returns false; the caller must stop handling
// the request.
func (p *Provider) EnsureAuthenticated(c echo.Context) bool {
	_, ok := p.RequireIdentity(c)
	return ok
}

// RequireIdentity resolves the identity once. When none is present it
// redirects to the login page and returns false.
func (p *Provider) RequireIdentity(c echo.Context) (domain.Identity, bool) {
	if id, ok := p.Resolve(c); ok {
		return id, true
	}
	if err := Redirect(c, p.loginPath); err != nil {
		slog.Error("Failed to redirect to login", "error", err)
	}
	return nil, false
}

// LoginPath is where unauthenticated requests are sent.
func (p *Provider) LoginPath() string {
	return p.loginPath
}

// Redirect sends the browser to target. htmx requests get an HX-Redirect header
// because a 3xx would be followed inside the XHR and swapped into the page.
func Redirect(c echo.Context, target string) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", target)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, target)
}
