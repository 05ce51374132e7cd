package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/intellihire/internal/augment"
	"github.com/jonathan/intellihire/internal/server"
)

var (
	serveAddr    string
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for jobs, resume screening and candidate reports.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply the database schema before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := a.database(ctx)
	if err != nil {
		return err
	}
	if serveMigrate {
		if err := database.Migrate(ctx); err != nil {
			return err
		}
	}

	client, err := a.llmClient(ctx)
	if err != nil {
		return err
	}
	deps := server.Deps{
		Store:   database,
		Engine:  a.engine(ctx, client, nil),
		Logger:  a.log,
		Metrics: a.metrics,
	}
	if client != nil {
		deps.Comparer = augment.NewComparer(client)
	}
	if a.cfg.JWT.Enabled() {
		jwtCfg, err := a.cfg.RequireSecret()
		if err != nil {
			return err
		}
		deps.JWT = server.NewJWTService(jwtCfg)
	}

	cfg := server.Config{
		Addr:           a.cfg.Server.Addr,
		CORSOrigin:     a.cfg.Server.CORSOrigin,
		MaxUploadBytes: a.cfg.Server.MaxUploadBytes,
		ReadTimeout:    a.cfg.Server.ReadTimeout,
		WriteTimeout:   a.cfg.Server.WriteTimeout,
		RateLimit:      a.cfg.Server.RateLimit,
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	srv, err := server.New(cfg, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}
