package service

import (
	"context"
	"fmt"
	"log/slog"

	"commentboard/app/client"
	"commentboard/app/components"
	"commentboard/app/config"
	"commentboard/app/routes"
	"commentboard/app/session"
	"commentboard/app/store"
	"commentboard/app/ui"
)

// RunAPIServer serves the REST API until ctx is cancelled.
func RunAPIServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	storage, err := openStorage(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	handler := routes.SetupAPIRoutes(storage, logger, cfg.CORS.AllowedOrigins)
	server := routes.NewServer(cfg.Server.Addr, handler, serverOptions(cfg), logger)

	logger.Info("starting API server",
		"addr", cfg.Server.Addr,
		"storage", cfg.Storage.Driver,
		"path", cfg.Storage.Path,
	)
	return server.StartServer(ctx)
}

// RunUIServer serves the browser UI until ctx is cancelled. It talks to
// the API at cfg.UI.APIBaseURL.
func RunUIServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	api := client.New(cfg.UI.APIBaseURL,
		client.WithTimeout(cfg.UI.FetchTimeout),
		client.WithLogger(logger),
	)

	factory := func() *components.PostDetails {
		return components.NewPostDetails(api, store.New(logger), logger, components.Options{
			FetchTimeout: cfg.UI.FetchTimeout,
		})
	}
	sessions, err := session.NewManager(cfg.UI.SessionSecret, cfg.UI.SessionTTL, factory, logger)
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}
	sessions.SetSecure(cfg.UI.SecureCookies)

	handler := ui.SetupUIRoutes(ui.NewHandler(api, sessions, cfg.UI.RenderWait, logger), logger)
	server := routes.NewServer(cfg.UI.Addr, handler, serverOptions(cfg), logger)

	logger.Info("starting UI server", "addr", cfg.UI.Addr, "api", cfg.UI.APIBaseURL)
	return server.StartServer(ctx)
}

func serverOptions(cfg *config.Config) routes.ServerOptions {
	return routes.ServerOptions{
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}
}
