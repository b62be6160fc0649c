package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/issuedesk/internal/domain"
	"github.com/nfrund/issuedesk/internal/handlers"
	isession "github.com/nfrund/issuedesk/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSessionSecret = "a-very-secret-key-for-testing-!"
	testHandoffSecret = "handoff-secret-for-tests-0123456789abcdef"
)

func setupSessionTest() *echo.Echo {
	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))

	h := handlers.NewSessionHandler(isession.NewProvider("/login"), testHandoffSecret, "/profile")
	e.POST("/session", h.Establish)
	e.GET("/health", handlers.Health)
	return e
}

func signed(t *testing.T, secret string, rec domain.IdentityRecord) string {
	t.Helper()
	token, err := isession.SignHandoff(secret, rec, time.Minute)
	require.NoError(t, err)
	return token
}

func postHandoff(e *echo.Echo, authorization, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSessionHandler_Establish(t *testing.T) {
	e := setupSessionTest()

	t.Run("member identity is stored", func(t *testing.T) {
		token := signed(t, testHandoffSecret, domain.IdentityRecord{Roll: "21b1234", Name: "Asha", Department: "CSE"})
		rec := postHandoff(e, "Bearer "+token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp handlers.SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "member", resp.Kind)
		assert.Equal(t, "/profile", resp.Redirect)
		assert.NotEmpty(t, rec.Result().Cookies(), "session cookie should be set")
	})

	t.Run("guest needs no roll number", func(t *testing.T) {
		token := signed(t, testHandoffSecret, domain.IdentityRecord{Name: "Visitor", IsGuest: true})
		rec := postHandoff(e, "Bearer "+token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"kind":"guest"`)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		rec := postHandoff(e, "", `{"roll":"anyvictim","name":"x","isAdmin":true}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("token in the body is ignored", func(t *testing.T) {
		token := signed(t, testHandoffSecret, domain.IdentityRecord{Roll: "21b1234", Name: "Asha"})
		rec := postHandoff(e, "", `{"token":"`+token+`"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("forged token is rejected", func(t *testing.T) {
		token := signed(t, "attacker-secret-0123456789abcdefghij", domain.IdentityRecord{Roll: "anyvictim", Name: "x", IsAdmin: true})
		rec := postHandoff(e, "Bearer "+token, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("non-bearer scheme is rejected", func(t *testing.T) {
		token := signed(t, testHandoffSecret, domain.IdentityRecord{Roll: "21b1234", Name: "Asha"})
		rec := postHandoff(e, "Basic "+token, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("member without roll number is rejected", func(t *testing.T) {
		token := signed(t, testHandoffSecret, domain.IdentityRecord{Name: "Nobody"})
		rec := postHandoff(e, "Bearer "+token, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("roll number must be alphanumeric", func(t *testing.T) {
		token := signed(t, testHandoffSecret, domain.IdentityRecord{Roll: "21b/../x", Name: "Mallory"})
		rec := postHandoff(e, "Bearer "+token, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	e := setupSessionTest()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
