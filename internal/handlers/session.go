package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/issuedesk/internal/domain"
	"github.com/nfrund/issuedesk/internal/session"
)

// SessionHandler accepts identities signed by the external login flow.
type SessionHandler struct {
	sessions      *session.Provider
	handoffSecret string
	profilePath   string
}

// NewSessionHandler creates a new SessionHandler verifying tokens with handoffSecret.
func NewSessionHandler(sessions *session.Provider, handoffSecret, profilePath string) *SessionHandler {
	return &SessionHandler{sessions: sessions, handoffSecret: handoffSecret, profilePath: profilePath}
}

// Establish stores the identity carried by a signed hand-off token in the
// session (POST /session). The token is read from the Authorization header
// only, which a cross-site form cannot set.
func (h *SessionHandler) Establish(c echo.Context) error {
	token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "unauthorized", Message: "Missing hand-off token."})
	}
	claims, err := session.ParseHandoff(h.handoffSecret, token)
	if err != nil {
		slog.Warn("Rejected session hand-off", "error", err, "remote_ip", c.RealIP())
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "unauthorized", Message: "Invalid hand-off token."})
	}

	req := EstablishSessionRequestFromRecord(claims.IdentityRecord)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Code: "invalid_identity", Message: err.Error()})
	}

	id, err := h.sessions.Establish(c, req.Record())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidIdentity) {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Code: "invalid_identity", Message: err.Error()})
		}
		slog.Error("Failed to establish session", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "session_error", Message: "Could not start your session."})
	}

	return c.JSON(http.StatusOK, SessionResponse{
		Kind:     identityKind(id),
		Name:     id.Details().DisplayName,
		Redirect: h.profilePath,
	})
}

// Health reports liveness (GET /health).
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func identityKind(id domain.Identity) string {
	switch id.(type) {
	case domain.Guest:
		return "guest"
	case domain.Admin:
		return "admin"
	default:
		return "member"
	}
}
