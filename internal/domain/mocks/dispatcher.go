package mocks

import (
	"context"

	"github.com/RemoteMovieDatabase/internal/domain"
	"github.com/RemoteMovieDatabase/pkg/future"
	"github.com/stretchr/testify/mock"
)

// MockDispatcher is a testify mock of domain.Dispatcher.
// Configure it with the record (or error) the future should complete with.
type MockDispatcher struct {
	mock.Mock
}

var _ domain.Dispatcher = (*MockDispatcher)(nil)

func (m *MockDispatcher) FetchByID(ctx context.Context, id int) *future.Future[domain.Movie] {
	args := m.Called(ctx, id)
	return complete[domain.Movie](args)
}

func (m *MockDispatcher) FetchPage(ctx context.Context, n int) *future.Future[domain.Page] {
	args := m.Called(ctx, n)
	return complete[domain.Page](args)
}

func (m *MockDispatcher) FetchSummarizedPage(ctx context.Context, n int) *future.Future[domain.SummarizedPage] {
	args := m.Called(ctx, n)
	return complete[domain.SummarizedPage](args)
}

func (m *MockDispatcher) FetchAll(ctx context.Context) *future.Future[domain.MovieDatabase] {
	args := m.Called(ctx)
	return complete[domain.MovieDatabase](args)
}

func complete[T any](args mock.Arguments) *future.Future[T] {
	if err := args.Error(1); err != nil {
		return future.Failed[T](err)
	}
	// Handle a nil record so tests can return only an error
	var v T
	if args.Get(0) != nil {
		v = args.Get(0).(T)
	}
	return future.Resolved(v)
}
