package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/hoanghai1803/mediatrack/internal/api"
	"github.com/hoanghai1803/mediatrack/internal/config"
	"github.com/hoanghai1803/mediatrack/internal/logging"
	"github.com/hoanghai1803/mediatrack/internal/server"
	"github.com/hoanghai1803/mediatrack/internal/service"
	"github.com/hoanghai1803/mediatrack/internal/storage"
	"github.com/hoanghai1803/mediatrack/internal/tmdb"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		logCloser.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	// Open database with WAL mode and pragmas.
	db, err := storage.OpenDatabase(cfg.Database.Path)
	if err != nil {
		return err
	}

	if err := storage.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return err
	}
	store := storage.NewStore(db)

	if cfg.TMDB.APIKey == "" {
		logger.Warn("no TMDB API key configured, search and details lookups will fail")
	}
	provider := tmdb.NewClient(tmdb.Config{
		APIKey:         cfg.TMDB.APIKey,
		BaseURL:        cfg.TMDB.BaseURL,
		SearchTimeout:  cfg.TMDB.SearchTimeout(),
		RequestTimeout: cfg.TMDB.RequestTimeout(),
	})

	router := api.NewRouter(api.Deps{
		Users:        service.NewUserService(store),
		Library:      service.NewLibraryService(store),
		Preferences:  service.NewPreferencesService(store),
		Provider:     provider,
		DB:           store,
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
	})

	srv := server.New(router, cfg.Server.Addr(), server.Timeouts{
		Read:     cfg.Server.ReadTimeout(),
		Write:    cfg.Server.WriteTimeout(),
		Shutdown: cfg.Server.ShutdownTimeout(),
	}, logger)
	srv.OnShutdown("database", func(ctx context.Context) error {
		return store.Close()
	})

	return srv.Run()
}
