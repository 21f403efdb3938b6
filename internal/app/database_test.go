package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RemoteMovieDatabase/internal/domain"
	"github.com/RemoteMovieDatabase/internal/domain/mocks"
	"github.com/RemoteMovieDatabase/pkg/future"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() domain.DatabaseConfig {
	return domain.DatabaseConfig{URLs: domain.URLs{
		Movies: domain.MovieLibrary{
			Full:      "https://api.test/all.json",
			Summaries: "https://api.test/summaries",
			Paged:     "https://api.test/paged",
			ByID:      "https://api.test/movies",
		},
		Images: domain.ImageLibrary{
			NoGo:      "static/nope.png",
			Posters:   "https://img.test/w500",
			Backdrops: "https://img.test/original",
		},
	}}
}

func await[T any](t *testing.T, f *future.Future[T]) (T, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return f.Await(ctx)
}

func mustMovie(t *testing.T, doc string) domain.Movie {
	t.Helper()
	m, err := domain.NewMovie([]byte(doc))
	require.NoError(t, err)
	return m
}

func TestGetByID_InvalidIDNeverDispatches(t *testing.T) {
	disp := new(mocks.MockDispatcher)
	db := NewMovieDatabase(testConfig(), disp)

	for _, id := range []int{0, -1, -42} {
		_, err := await(t, db.GetByID(context.Background(), id))
		assert.ErrorIs(t, err, domain.ErrValidation, "id %d", id)

		var derr *domain.Error
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "GetByID", derr.Op)
	}
	disp.AssertNotCalled(t, "FetchByID", mock.Anything, mock.Anything)
}

func TestGetByID_ReturnsDispatchedRecord(t *testing.T) {
	disp := new(mocks.MockDispatcher)
	want := mustMovie(t, `{"id":42,"title":"Heat"}`)
	disp.On("FetchByID", mock.Anything, 42).Return(want, nil).Once()

	got, err := await(t, NewMovieDatabase(testConfig(), disp).GetByID(context.Background(), 42))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	disp.AssertExpectations(t)
}

func TestGetPage_RangeGate(t *testing.T) {
	disp := new(mocks.MockDispatcher)
	disp.On("FetchPage", mock.Anything, 1).Return(domain.Page{}, nil).Once()
	disp.On("FetchPage", mock.Anything, 40).Return(domain.Page{}, nil).Once()
	db := NewMovieDatabase(testConfig(), disp)

	_, err := await(t, db.GetPage(context.Background(), 1))
	assert.NoError(t, err)
	_, err = await(t, db.GetPage(context.Background(), 40))
	assert.NoError(t, err)

	for _, n := range []int{0, 41, -7} {
		_, err := await(t, db.GetPage(context.Background(), n))
		assert.ErrorIs(t, err, domain.ErrValidation, "page %d", n)
	}

	disp.AssertExpectations(t)
	disp.AssertNumberOfCalls(t, "FetchPage", 2)
}

func TestGetSummarizedPage_RangeGate(t *testing.T) {
	disp := new(mocks.MockDispatcher)
	disp.On("FetchSummarizedPage", mock.Anything, 12).Return(domain.SummarizedPage{}, nil).Once()
	db := NewMovieDatabase(testConfig(), disp)

	_, err := await(t, db.GetSummarizedPage(context.Background(), 12))
	assert.NoError(t, err)

	_, err = await(t, db.GetSummarizedPage(context.Background(), 41))
	assert.ErrorIs(t, err, domain.ErrValidation)

	disp.AssertNumberOfCalls(t, "FetchSummarizedPage", 1)
}

func TestDumpAll_DelegatesAndPropagatesErrors(t *testing.T) {
	disp := new(mocks.MockDispatcher)
	netErr := &domain.Error{Kind: domain.KindNetwork, Op: "FetchAll", StatusCode: 503}
	disp.On("FetchAll", mock.Anything).Return(nil, netErr).Once()

	_, err := await(t, NewMovieDatabase(testConfig(), disp).DumpAll(context.Background()))
	var derr *domain.Error
	require.True(t, errors.As(err, &derr))
	assert.Same(t, netErr, derr, "dispatcher errors propagate unchanged")
	assert.ErrorIs(t, err, domain.ErrNetwork)
	disp.AssertExpectations(t)
}

func TestPosterAndBackdropFor(t *testing.T) {
	db := NewMovieDatabase(testConfig(), new(mocks.MockDispatcher))
	movie := mustMovie(t, `{"id":1,"poster_path":"/p.jpg","backdrop_path":null}`)

	assert.Equal(t, domain.RemoteImage{URI: "https://img.test/w500/p.jpg"}, db.PosterFor(movie))
	assert.Equal(t, domain.LocalImage{Resource: "static/nope.png"}, db.BackdropFor(movie))

	backdrop := "/b.jpg"
	summary := domain.ImagePaths{Backdrop: &backdrop}
	assert.Equal(t, domain.LocalImage{Resource: "static/nope.png"}, db.PosterFor(summary))
	assert.Equal(t, domain.RemoteImage{URI: "https://img.test/original/b.jpg"}, db.BackdropFor(summary))
}

func TestCallsCompleteOutOfOrder(t *testing.T) {
	clk := clockwork.NewFakeClock()
	disp := new(mocks.MockDispatcher)
	slow := future.DelayFor(clk, mustMovie(t, `{"id":1}`), 2*time.Second)
	fast := future.DelayFor(clk, mustMovie(t, `{"id":2}`), time.Second)
	disp.On("FetchByID", mock.Anything, 1).Return(slow)
	disp.On("FetchByID", mock.Anything, 2).Return(fast)

	db := NewMovieDatabase(testConfig(), delayedDispatcher{disp})
	first := db.GetByID(context.Background(), 1)
	second := db.GetByID(context.Background(), 2)

	clk.Advance(time.Second)
	m, err := await(t, second)
	require.NoError(t, err)
	assert.Equal(t, 2, m.ID())
	_, done, _ := first.Result()
	assert.False(t, done, "first call is still in flight")

	clk.Advance(time.Second)
	m, err = await(t, first)
	require.NoError(t, err)
	assert.Equal(t, 1, m.ID())
}

// delayedDispatcher returns the futures registered on the mock as-is.
type delayedDispatcher struct{ *mocks.MockDispatcher }

func (d delayedDispatcher) FetchByID(ctx context.Context, id int) *future.Future[domain.Movie] {
	return d.Called(ctx, id).Get(0).(*future.Future[domain.Movie])
}
