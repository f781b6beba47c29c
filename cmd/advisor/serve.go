package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/admissions-advisor/internal/config"
	"github.com/jonathan/admissions-advisor/internal/db"
	"github.com/jonathan/admissions-advisor/internal/drafts"
	"github.com/jonathan/admissions-advisor/internal/logging"
	"github.com/jonathan/admissions-advisor/internal/server"
	"github.com/jonathan/admissions-advisor/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing the profile, chances and chat-draft endpoints.

Profiles are stored in PostgreSQL when database.url (DATABASE_URL) is set and in
memory otherwise. Drafts are stored in Redis when redis.address (REDIS_ADDR) is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	jwtCfg, err := cfg.JWT()
	if err != nil {
		return fmt.Errorf("invalid auth configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var profiles store.ProfileStore
	if cfg.Database.URL != "" {
		database, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			return err
		}
		profiles = database
		logger.Info("using PostgreSQL profile store")
	} else {
		var opts []store.MemoryOption
		if cfg.SampleData {
			opts = append(opts, store.WithSampleData())
		}
		profiles = store.NewMemoryStore(opts...)
		logger.Info("using in-memory profile store", zap.Bool("sample_data", cfg.SampleData))
	}

	draftStore, closeDrafts, err := openDraftStore(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer closeDrafts()

	srv, err := server.New(cfg, server.Deps{
		Profiles: profiles,
		Drafts:   draftStore,
		JWT:      jwtCfg,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

// openDraftStore connects to Redis when an address is configured and falls back to memory otherwise.
func openDraftStore(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (drafts.Store, func(), error) {
	if cfg.Address == "" {
		logger.Info("using in-memory draft store")
		return drafts.NewMemoryStore(cfg.DraftTTL), func() {}, nil
	}

	client, err := drafts.NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("using Redis draft store", zap.String("addr", cfg.Address), zap.Duration("ttl", cfg.DraftTTL))
	return drafts.NewRedisStore(client, cfg.DraftTTL), func() { _ = client.Close() }, nil
}
