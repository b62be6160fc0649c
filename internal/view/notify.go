package view

import (
	"encoding/json"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// Notification levels understood by the page script.
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Notification is a toast shown by the client after an htmx swap.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// TriggerNotifications sets the HX-Trigger header so the client raises a
// "notify" event per message. Only the last notification is kept by htmx
// for a single event name, so messages are sent as a list.
func TriggerNotifications(c echo.Context, notes []Notification) {
	if len(notes) == 0 {
		return
	}
	payload, err := json.Marshal(map[string][]Notification{"notify": notes})
	if err != nil {
		slog.Error("Failed to encode notifications", "error", err)
		return
	}
	c.Response().Header().Set("HX-Trigger", string(payload))
}

// Notify delivers notifications for the current request: as an HX-Trigger
// header for htmx requests, or as flash messages for the next full page.
func Notify(c echo.Context, notes ...Notification) {
	if IsHTMX(c) {
		TriggerNotifications(c, notes)
		return
	}
	for _, n := range notes {
		if n.Level == LevelError {
			SetFlashError(c, n.Message)
		} else {
			SetFlashSuccess(c, n.Message)
		}
	}
}
