package domain

import (
	"context"

	"github.com/RemoteMovieDatabase/pkg/future"
)

// Dispatcher retrieves records from the backend.
// Every call issues one independent request and returns immediately;
// validation of arguments is the caller's job.
type Dispatcher interface {
	FetchByID(ctx context.Context, id int) *future.Future[Movie]
	FetchPage(ctx context.Context, n int) *future.Future[Page]
	FetchSummarizedPage(ctx context.Context, n int) *future.Future[SummarizedPage]
	FetchAll(ctx context.Context) *future.Future[MovieDatabase]
}
