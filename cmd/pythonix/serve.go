package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"pythonix/internal/api"
	"pythonix/internal/config"
	"pythonix/internal/store"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the leaderboard HTTP service",
	Long: `Start the HTTP service that stores accounts and scores.

The service exposes registration, login, guest sessions, score
submission and the global leaderboard. All clients share one
leaderboard per database.

Examples:
  pythonix serve                       # Listen on the configured address
  pythonix serve --addr :9090          # Listen on port 9090
  pythonix serve --db ./pythonix.db    # Use a specific database`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if flagAddr != "" {
		addr = flagAddr
	}
	dbPath := cfg.Server.DBPath
	if flagDBPath != "" {
		dbPath = flagDBPath
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.Server.JWTSecret == "" || cfg.Server.JWTSecret == "change-me" {
		log.Warn("using default JWT secret; set server.jwt_secret in the config")
	}

	srv := api.NewServer(api.Config{
		Addr:          addr,
		JWTSecret:     cfg.Server.JWTSecret,
		UserTokenTTL:  time.Duration(cfg.Server.UserTokenTTLDays) * 24 * time.Hour,
		GuestTokenTTL: time.Duration(cfg.Server.GuestTokenTTLDays) * 24 * time.Hour,
	}, st)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
