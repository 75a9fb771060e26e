// Package server initializes and runs the marketplace API server. It wires
// the database, cache, and services together and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/campusmarket/internal/logging"
	"github.com/dmitrijs2005/campusmarket/internal/server/cache"
	"github.com/dmitrijs2005/campusmarket/internal/server/config"
	"github.com/dmitrijs2005/campusmarket/internal/server/db"
	"github.com/dmitrijs2005/campusmarket/internal/server/httpapi"
	"github.com/dmitrijs2005/campusmarket/internal/server/repositories/items"
	"github.com/dmitrijs2005/campusmarket/internal/server/repositories/users"
	"github.com/dmitrijs2005/campusmarket/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	cache  *cache.Cache
	api    *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	conn, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	listingCache, err := cache.New(ctx, cfg.RedisAddr, logger)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("redis init error: %w", err)
	}

	userService := services.NewUserService(users.NewPostgresRepository(conn), cfg)
	itemService := services.NewItemService(items.NewPostgresRepository(conn), listingCache)
	uploadService := services.NewUploadService(cfg, logger)

	api := httpapi.NewServer(cfg, userService, itemService, uploadService, logger)

	return &App{
		config: cfg,
		logger: logger,
		db:     conn,
		cache:  listingCache,
		api:    api,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the HTTP listener and blocks until the context is canceled or
// the listener fails, then shuts everything down in order.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	fiberApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             30 << 20, // up to five 5MiB images plus form overhead
	})
	app.api.SetupMiddleware(fiberApp)
	app.api.SetupRoutes(fiberApp)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting server", "addr", app.config.Addr)
		errCh <- fiberApp.Listen(app.config.Addr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		app.logger.Info(ctx, "shutting down")
		if err := fiberApp.ShutdownWithTimeout(shutdownTimeout); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err)
		}
	case err := <-errCh:
		runErr = err
	}

	if err := app.cache.Close(); err != nil {
		app.logger.Error(ctx, "cache close error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	return runErr
}
