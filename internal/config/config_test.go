package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHandoffSecret = "handoff-secret-for-tests-0123456789abcdef"

func TestNew(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "a-very-secret-key-for-testing-!")
		t.Setenv("SESSION_HANDOFF_SECRET", testHandoffSecret)
		t.Setenv("DISPLAY_TIMEZONE", "UTC")

		cfg, err := New()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.GetServerAddr())
		assert.Equal(t, "iitb.ac.in", cfg.GetEmailDomain())
		assert.Equal(t, "/inventory", cfg.GetInventoryPath())
		assert.Equal(t, 10*time.Second, cfg.GetIssueAPITimeout())
		assert.Equal(t, 30*time.Minute, cfg.GetProfileViewTTL())
		assert.Equal(t, time.UTC, cfg.GetDisplayLocation())
		assert.False(t, cfg.GetTracingEnabled())
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "a-very-secret-key-for-testing-!")
		t.Setenv("SESSION_HANDOFF_SECRET", testHandoffSecret)
		t.Setenv("ISSUE_API_URL", "https://issues.example.com")
		t.Setenv("ISSUE_API_TIMEOUT", "3s")
		t.Setenv("PROFILE_VIEW_TTL", "5m")
		t.Setenv("DISPLAY_TIMEZONE", "Asia/Kolkata")

		cfg, err := New()
		require.NoError(t, err)

		assert.Equal(t, "https://issues.example.com", cfg.GetIssueAPIURL())
		assert.Equal(t, 3*time.Second, cfg.GetIssueAPITimeout())
		assert.Equal(t, 5*time.Minute, cfg.GetProfileViewTTL())
		assert.Equal(t, "Asia/Kolkata", cfg.GetDisplayLocation().String())
	})

	t.Run("malformed duration falls back", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "a-very-secret-key-for-testing-!")
		t.Setenv("SESSION_HANDOFF_SECRET", testHandoffSecret)
		t.Setenv("DISPLAY_TIMEZONE", "UTC")
		t.Setenv("ISSUE_API_TIMEOUT", "soon")

		cfg, err := New()
		require.NoError(t, err)
		assert.Equal(t, 10*time.Second, cfg.GetIssueAPITimeout())
	})

	t.Run("rejects missing session secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		_, err := New()
		assert.Error(t, err)
	})

	t.Run("rejects invalid issue api url", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "a-very-secret-key-for-testing-!")
		t.Setenv("SESSION_HANDOFF_SECRET", testHandoffSecret)
		t.Setenv("ISSUE_API_URL", "not a url")
		_, err := New()
		assert.Error(t, err)
	})

	t.Run("rejects unknown timezone", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "a-very-secret-key-for-testing-!")
		t.Setenv("SESSION_HANDOFF_SECRET", testHandoffSecret)
		t.Setenv("DISPLAY_TIMEZONE", "Mars/Olympus_Mons")
		_, err := New()
		assert.Error(t, err)
	})

	t.Run("rejects missing hand-off secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "a-very-secret-key-for-testing-!")
		t.Setenv("SESSION_HANDOFF_SECRET", "")
		t.Setenv("DISPLAY_TIMEZONE", "UTC")
		_, err := New()
		assert.Error(t, err)
	})

	t.Run("rejects short hand-off secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "a-very-secret-key-for-testing-!")
		t.Setenv("SESSION_HANDOFF_SECRET", "too-short")
		t.Setenv("DISPLAY_TIMEZONE", "UTC")
		_, err := New()
		assert.Error(t, err)
	})

	t.Run("hand-off secret must differ from the cookie secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", testHandoffSecret)
		t.Setenv("SESSION_HANDOFF_SECRET", testHandoffSecret)
		t.Setenv("DISPLAY_TIMEZONE", "UTC")
		_, err := New()
		assert.Error(t, err)
	})

	t.Run("reads hand-off secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "a-very-secret-key-for-testing-!")
		t.Setenv("SESSION_HANDOFF_SECRET", testHandoffSecret)
		t.Setenv("DISPLAY_TIMEZONE", "UTC")
		cfg, err := New()
		require.NoError(t, err)
		assert.Equal(t, testHandoffSecret, cfg.GetSessionHandoffSecret())
	})
}
