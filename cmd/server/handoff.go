package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nfrund/issuedesk/internal/domain"
	"github.com/nfrund/issuedesk/internal/session"
	"github.com/spf13/cobra"
)

var handoff struct {
	secret  string
	roll    string
	name    string
	dept    string
	isGuest bool
	isAdmin bool
	ttl     time.Duration
}

// handoffCmd mints the token the login flow sends to POST /session. Useful
// for local development without the login service.
var handoffCmd = &cobra.Command{
	Use:   "handoff-token",
	Short: "Sign a session hand-off token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		secret := handoff.secret
		if secret == "" {
			secret = os.Getenv("SESSION_HANDOFF_SECRET")
		}
		if secret == "" {
			return errors.New("no hand-off secret: set SESSION_HANDOFF_SECRET or pass --secret")
		}
		token, err := session.SignHandoff(secret, domain.IdentityRecord{
			Roll:       handoff.roll,
			Name:       handoff.name,
			Department: handoff.dept,
			IsGuest:    handoff.isGuest,
			IsAdmin:    handoff.isAdmin,
		}, handoff.ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	f := handoffCmd.Flags()
	f.StringVar(&handoff.secret, "secret", "", "signing secret (defaults to SESSION_HANDOFF_SECRET)")
	f.StringVar(&handoff.roll, "roll", "", "roll number")
	f.StringVar(&handoff.name, "name", "", "display name")
	f.StringVar(&handoff.dept, "department", "", "department")
	f.BoolVar(&handoff.isGuest, "guest", false, "sign a guest identity")
	f.BoolVar(&handoff.isAdmin, "admin", false, "grant the admin flag")
	f.DurationVar(&handoff.ttl, "ttl", 2*time.Minute, "token lifetime")
	rootCmd.AddCommand(handoffCmd)
}
