package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/RemoteMovieDatabase/cmd/server/factory"
	"github.com/RemoteMovieDatabase/internal/app"
	"github.com/RemoteMovieDatabase/internal/domain"
	"github.com/RemoteMovieDatabase/internal/infra/tracing"
	transport "github.com/RemoteMovieDatabase/internal/transport/http"
	"github.com/RemoteMovieDatabase/pkg/config"
	"go.uber.org/fx"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	fx.New(
		fx.Provide(
			// Config
			config.Load,
			factory.NewDatabaseConfig,

			// Infrastructure
			factory.NewHTTPClient,
			factory.NewDispatcher,

			// Services
			factory.NewMovieDatabase,
			factory.NewMovieService,

			// HTTP Server
			transport.NewHTTPServer,
		),
		fx.Invoke(
			SetupTracer,
			WaitForReady, // Block until the backend answers
			StartServer,
		),
	).Run()
}

// --- Invokers ---

func SetupTracer(lc fx.Lifecycle, cfg *config.Config) error {
	ctx := context.Background()
	shutdown, err := tracing.InitTracer(ctx, cfg.ServiceName)
	if err != nil {
		slog.Error("Failed to initialize tracer", "error", err)
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Info("Shutting down tracer provider")
			return shutdown(ctx)
		},
	})
	return nil
}

// WaitForReady blocks until the bulk export endpoint responds.
func WaitForReady(cfg *config.Config, dbCfg domain.DatabaseConfig, client *http.Client) error {
	waiter := app.NewReadinessWaiter(client, dbCfg.URLs.Movies.Full, cfg.ReadinessInterval)
	return waiter.WaitForBackend(context.Background())
}

func StartServer(lc fx.Lifecycle, server *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				slog.Info("Starting movie database server", "address", server.Addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					slog.Error("HTTP server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
