package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/RemoteMovieDatabase/internal/domain"
	"github.com/RemoteMovieDatabase/internal/infra/metrics"
	"github.com/RemoteMovieDatabase/pkg/future"
)

// MovieDatabase is the entry point for reading the remote movie backend.
// Record calls validate their argument, then hand off to the dispatcher; image
// calls resolve locally and never touch the network.
type MovieDatabase struct {
	config     domain.DatabaseConfig
	dispatcher domain.Dispatcher
	resolver   domain.ImageResolver
}

func NewMovieDatabase(config domain.DatabaseConfig, dispatcher domain.Dispatcher) *MovieDatabase {
	return &MovieDatabase{
		config:     config,
		dispatcher: dispatcher,
		resolver:   domain.NewImageResolver(config.URLs.Images.NoGo),
	}
}

// GetByID fetches the full record of one movie.
// An invalid id yields an already-failed future and no request.
func (db *MovieDatabase) GetByID(ctx context.Context, movieID int) *future.Future[domain.Movie] {
	if err := domain.ValidateMovieID(movieID); err != nil {
		return rejected[domain.Movie]("GetByID", err)
	}
	return db.dispatcher.FetchByID(ctx, movieID)
}

// GetPage fetches one page of full records.
func (db *MovieDatabase) GetPage(ctx context.Context, pageNumber int) *future.Future[domain.Page] {
	if err := domain.ValidatePageNumber(pageNumber); err != nil {
		return rejected[domain.Page]("GetPage", err)
	}
	return db.dispatcher.FetchPage(ctx, pageNumber)
}

// GetSummarizedPage fetches one page of abbreviated records, for skimming.
func (db *MovieDatabase) GetSummarizedPage(ctx context.Context, pageNumber int) *future.Future[domain.SummarizedPage] {
	if err := domain.ValidatePageNumber(pageNumber); err != nil {
		return rejected[domain.SummarizedPage]("GetSummarizedPage", err)
	}
	return db.dispatcher.FetchSummarizedPage(ctx, pageNumber)
}

// DumpAll fetches the whole export, images excluded.
func (db *MovieDatabase) DumpAll(ctx context.Context) *future.Future[domain.MovieDatabase] {
	return db.dispatcher.FetchAll(ctx)
}

func (db *MovieDatabase) PosterFor(item domain.PosterSource) domain.ImageReference {
	ref := db.resolver.Resolve(item.PosterPath(), db.config.URLs.Images.Posters)
	countImage("poster", ref)
	return ref
}

func (db *MovieDatabase) BackdropFor(item domain.BackdropSource) domain.ImageReference {
	ref := db.resolver.Resolve(item.BackdropPath(), db.config.URLs.Images.Backdrops)
	countImage("backdrop", ref)
	return ref
}

func rejected[T any](op string, err error) *future.Future[T] {
	metrics.ValidationRejections.WithLabelValues(op).Inc()
	slog.Debug("Rejected call before dispatch", "operation", op, "error", err)
	var derr *domain.Error
	if errors.As(err, &derr) {
		e := *derr
		e.Op = op
		err = &e
	}
	return future.Failed[T](err)
}

func countImage(image string, ref domain.ImageReference) {
	variant := domain.MatchImage(ref,
		func(domain.LocalImage) string { return "local" },
		func(domain.RemoteImage) string { return "remote" },
	)
	metrics.ImagesResolved.WithLabelValues(image, variant).Inc()
}
