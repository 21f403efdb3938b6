package factory

import (
	"errors"

	"github.com/RemoteMovieDatabase/internal/app"
	"github.com/RemoteMovieDatabase/internal/domain"
	transport "github.com/RemoteMovieDatabase/internal/transport/http"
)

// NewMovieDatabase creates the database adapter.
func NewMovieDatabase(dbCfg domain.DatabaseConfig, d domain.Dispatcher) (*app.MovieDatabase, error) {
	if d == nil {
		return nil, errors.New("dispatcher is nil")
	}
	return app.NewMovieDatabase(dbCfg, d), nil
}

// NewMovieService exposes the adapter to the HTTP transport.
func NewMovieService(db *app.MovieDatabase) transport.MovieService {
	return db
}
