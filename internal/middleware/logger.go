package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/issuedesk/internal/logging"
)

// Logger is a middleware that injects a request-scoped logger into the context.
// This logger is pre-configured with the request ID from the RequestID middleware,
// which is also stored on the context for outgoing backend calls.
// It should be placed after the RequestID middleware in the chain.
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := c.Response().Header().Get(echo.HeaderXRequestID)
		requestLogger := slog.Default().With("request_id", reqID)

		ctx := logging.WithLogger(c.Request().Context(), requestLogger)
		ctx = logging.WithRequestID(ctx, reqID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
