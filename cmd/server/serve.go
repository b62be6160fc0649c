package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfrund/issuedesk/internal/app"
	"github.com/nfrund/issuedesk/internal/config"
	"github.com/nfrund/issuedesk/internal/logging"
	"github.com/nfrund/issuedesk/internal/server"
	"github.com/nfrund/issuedesk/internal/session"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (overrides SERVER_ADDR)")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	logging.New()

	cfg, err := config.New()
	if err != nil {
		return err
	}
	if addrFlag != "" {
		cfg.ServerAddr = addrFlag
	}

	injector := app.NewInjector(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Shutdown(ctx, injector); err != nil {
			slog.Error("Service shutdown failed", "error", err)
		}
	}()

	modules, err := app.NewModules(injector)
	if err != nil {
		return fmt.Errorf("create modules: %w", err)
	}

	s := server.New(cfg, server.Dependencies{
		Sessions: do.MustInvoke[*session.Provider](injector),
		Modules:  modules,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.RegisterRoutes(ctx); err != nil {
		return err
	}
	return s.Start(ctx)
}
