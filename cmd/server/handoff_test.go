package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nfrund/issuedesk/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHandoffSecret = "handoff-secret-for-tests-0123456789abcdef"

func TestHandoffTokenCommand(t *testing.T) {
	t.Run("signs a verifiable token", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"handoff-token", "--secret", testHandoffSecret, "--roll", "21B1234", "--name", "Asha"})
		defer rootCmd.SetArgs(nil)

		require.NoError(t, rootCmd.Execute())

		claims, err := session.ParseHandoff(testHandoffSecret, strings.TrimSpace(out.String()))
		require.NoError(t, err)
		assert.Equal(t, "21B1234", claims.Roll)
		assert.Equal(t, "Asha", claims.Name)
		assert.False(t, claims.IsAdmin)
	})

	t.Run("needs a secret", func(t *testing.T) {
		t.Setenv("SESSION_HANDOFF_SECRET", "")
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetErr(&bytes.Buffer{})
		rootCmd.SetArgs([]string{"handoff-token", "--secret", "", "--roll", "21B1234"})
		defer rootCmd.SetArgs(nil)

		assert.Error(t, rootCmd.Execute())
	})
}
