// Package factory provides dependency injection constructors for infrastructure components.
package factory

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/RemoteMovieDatabase/internal/domain"
	"github.com/RemoteMovieDatabase/internal/infra/dispatcher"
	"github.com/RemoteMovieDatabase/pkg/config"
	"github.com/RemoteMovieDatabase/pkg/logging"
	"github.com/sony/gobreaker"
)

// NewDatabaseConfig loads the backend URLs once at startup.
func NewDatabaseConfig(cfg *config.Config) (domain.DatabaseConfig, error) {
	if cfg.DatabaseConfigPath == "" {
		return domain.DatabaseConfig{}, errors.New("database config path not configured")
	}
	dbCfg, err := config.LoadDatabaseConfig(cfg.DatabaseConfigPath)
	if err != nil {
		return domain.DatabaseConfig{}, err
	}
	slog.Info("Loaded database config", "path", cfg.DatabaseConfigPath, "by_id", dbCfg.URLs.Movies.ByID)
	return dbCfg, nil
}

// NewHTTPClient creates the client shared by the dispatcher and the readiness probe.
func NewHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.HTTPTimeout}
}

// NewDispatcher creates the HTTP dispatcher, with a circuit breaker only when enabled.
func NewDispatcher(cfg *config.Config, dbCfg domain.DatabaseConfig, client *http.Client) domain.Dispatcher {
	opts := []dispatcher.Option{
		dispatcher.WithHTTPClient(client),
		dispatcher.WithErrorSampler(logging.NewErrorSampler(cfg.LogSampleInterval)),
	}
	if cfg.BreakerEnabled {
		failures := uint32(max(cfg.BreakerFailures, 1))
		opts = append(opts, dispatcher.WithCircuitBreaker(gobreaker.Settings{
			Name:        "movie-backend",
			MaxRequests: 1,
			Timeout:     cfg.BreakerOpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
		}))
		slog.Info("Circuit breaker enabled", "consecutive_failures", failures, "open_timeout", cfg.BreakerOpenTimeout)
	}
	return dispatcher.NewHTTPDispatcher(dbCfg.URLs.Movies, opts...)
}
