package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/playperu/cluequiz/internal/config"
	"github.com/playperu/cluequiz/internal/content"
	"github.com/playperu/cluequiz/internal/database"
	"github.com/playperu/cluequiz/internal/game"
	"github.com/playperu/cluequiz/internal/handler/health"
	"github.com/playperu/cluequiz/internal/server"
	"github.com/playperu/cluequiz/internal/storage"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Storage ---
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// --- Content ---
	registry, err := openContent(cfg, logger)
	if err != nil {
		return err
	}

	// --- Tables ---
	broker := server.NewBroker()
	tables := server.NewTables(store, registry, game.Options{
		Logger:          logger,
		Notifier:        broker,
		FetchTimeout:    cfg.FetchTimeout,
		MaxDrawAttempts: cfg.MaxDrawAttempts,
	})

	deps := server.Deps{
		Tables:  tables,
		Broker:  broker,
		Content: registry,
		Checks: map[string]health.Checker{
			"storage": store,
			"content": health.CheckerFunc(func(context.Context) error {
				if len(registry.Categories()) == 0 {
					return content.ErrNoProvider
				}
				return nil
			}),
		},
		PublicURL: cfg.PublicURL,
	}
	if cfg.SPADir != "" {
		deps.UI = os.DirFS(cfg.SPADir)
		logger.Info("serving ui", "dir", cfg.SPADir)
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, deps)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

type checkedStore interface {
	storage.SnapshotStore
	health.Checker
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (checkedStore, func(), error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("using in-memory storage, sessions are lost on restart")
		return storage.NewMemoryStore(), func() {}, nil
	}

	path := database.Path(cfg.DBDir, cfg.DBName)
	db, err := database.Open(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to sqlite: %w", err)
	}

	store, err := storage.NewSQLiteStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("preparing snapshot store: %w", err)
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("listing snapshots: %w", err)
	}
	logger.Info("connected to sqlite", "path", path, "snapshots", len(keys))

	return store, func() { db.Close() }, nil
}

// openContent serves the bundled pools, preferring the remote item service
// for those categories when CONTENT_URL is set.
func openContent(cfg *config.Config, logger *slog.Logger) (*content.Registry, error) {
	bundled, err := content.Bundled()
	if err != nil {
		return nil, fmt.Errorf("loading bundled content: %w", err)
	}
	logger.Info("loaded bundled content", "categories", len(bundled.Categories()))

	if cfg.ContentURL == "" {
		return bundled, nil
	}

	remote, err := content.NewRemote(cfg.ContentURL, &http.Client{Timeout: cfg.FetchTimeout})
	if err != nil {
		return nil, fmt.Errorf("configuring remote content: %w", err)
	}

	registry := content.NewRegistry()
	for _, c := range bundled.Categories() {
		registry.Register(c, content.Fallback{remote, bundled})
	}
	logger.Info("using remote content", "url", cfg.ContentURL)
	return registry, nil
}
