// Package internal wires the application together.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"vantage/internal/config"
	"vantage/internal/database"
	vantagehttp "vantage/internal/http"
	"vantage/internal/logging"
	"vantage/internal/timeframe"
	"vantage/internal/tinybird"
)

// Application bundles the server with the components it owns.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	DBManager *database.DBManager

	server *fiber.App
}

// NewApp creates an application instance from the environment config.
func NewApp() (*Application, error) {
	return NewAppWithConfig(config.GetConfig())
}

// NewAppWithConfig creates an application with the provided config.
func NewAppWithConfig(cfg *config.Config) (*Application, error) {
	logger := logging.NewLogger(cfg)

	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	client := tinybird.NewClient(tinybird.Config{
		BaseURL: cfg.TinybirdBaseURL,
		Token:   cfg.TinybirdToken,
		Timeout: time.Duration(cfg.QueryTimeoutSecs) * time.Second,
	}, logger)

	server := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: cfg.IsProduction(),
	})

	handler := vantagehttp.NewHandler(logger, cfg, dbManager.GetConnection(), client, timeframe.NewResolver())
	vantagehttp.RegisterRoutes(server, handler)

	return &Application{
		Config:    cfg,
		Logger:    logger,
		DBManager: dbManager,
		server:    server,
	}, nil
}

// StartAsync begins serving in a background goroutine.
func (a *Application) StartAsync() error {
	if a.server == nil {
		return fmt.Errorf("application not initialized")
	}

	go func() {
		addr := ":" + a.Config.AppPort
		a.Logger.Info("Server listening", slog.String("addr", addr))
		if err := a.server.Listen(addr); err != nil {
			a.Logger.Error("Server stopped", slog.Any("error", err))
		}
	}()

	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (a *Application) Shutdown(ctx context.Context) error {
	if err := a.server.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return a.DBManager.Close()
}
