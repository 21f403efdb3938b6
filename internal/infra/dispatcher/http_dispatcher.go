package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/RemoteMovieDatabase/internal/domain"
	"github.com/RemoteMovieDatabase/internal/infra/metrics"
	"github.com/RemoteMovieDatabase/pkg/future"
	"github.com/RemoteMovieDatabase/pkg/logging"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	tracerName     = "movie-database"
	defaultTimeout = 10 * time.Second

	endpointByID      = "byId"
	endpointPaged     = "paged"
	endpointSummaries = "summaries"
	endpointFull      = "full"
)

// HTTPDispatcher fetches backend documents over plain GET requests.
// It performs one attempt per call; the only optional policy is a circuit breaker.
type HTTPDispatcher struct {
	urls    domain.MovieLibrary
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
	sampler *logging.ErrorSampler
}

var _ domain.Dispatcher = (*HTTPDispatcher)(nil)

type Option func(*HTTPDispatcher)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(d *HTTPDispatcher) {
		if c != nil {
			d.client = c
		}
	}
}

// WithCircuitBreaker short-circuits requests while the backend keeps failing.
// Without it every call reaches the network.
func WithCircuitBreaker(settings gobreaker.Settings) Option {
	return func(d *HTTPDispatcher) {
		if settings.OnStateChange == nil {
			settings.OnStateChange = func(name string, from gobreaker.State, to gobreaker.State) {
				slog.Warn("CircuitBreaker state changed", "name", name, "from", from, "to", to)
			}
		}
		d.cb = gobreaker.NewCircuitBreaker(settings)
	}
}

// WithErrorSampler sets how repeated failures per endpoint are logged.
func WithErrorSampler(s *logging.ErrorSampler) Option {
	return func(d *HTTPDispatcher) {
		if s != nil {
			d.sampler = s
		}
	}
}

func NewHTTPDispatcher(urls domain.MovieLibrary, opts ...Option) *HTTPDispatcher {
	d := &HTTPDispatcher{
		urls: urls,
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		sampler: logging.NewErrorSampler(logging.DefaultSampleInterval),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *HTTPDispatcher) FetchByID(ctx context.Context, id int) *future.Future[domain.Movie] {
	return fetch[domain.Movie](ctx, d, "FetchByID", endpointByID, numberedURL(d.urls.ByID, id))
}

func (d *HTTPDispatcher) FetchPage(ctx context.Context, n int) *future.Future[domain.Page] {
	return fetch[domain.Page](ctx, d, "FetchPage", endpointPaged, numberedURL(d.urls.Paged, n))
}

func (d *HTTPDispatcher) FetchSummarizedPage(ctx context.Context, n int) *future.Future[domain.SummarizedPage] {
	return fetch[domain.SummarizedPage](ctx, d, "FetchSummarizedPage", endpointSummaries, numberedURL(d.urls.Summaries, n))
}

func (d *HTTPDispatcher) FetchAll(ctx context.Context) *future.Future[domain.MovieDatabase] {
	return fetch[domain.MovieDatabase](ctx, d, "FetchAll", endpointFull, d.urls.Full)
}

func numberedURL(base string, n int) string {
	return base + "/" + strconv.Itoa(n) + ".json"
}

// fetch issues the request on its own goroutine. The caller's cancellation is
// detached: once issued, a request runs until it completes or fails.
func fetch[T any](ctx context.Context, d *HTTPDispatcher, op, endpoint, url string) *future.Future[T] {
	ctx = context.WithoutCancel(ctx)
	return future.Go(func() (T, error) {
		var v T

		tr := otel.Tracer(tracerName)
		ctx, span := tr.Start(ctx, op)
		defer span.End()
		span.SetAttributes(
			attribute.String("backend.endpoint", endpoint),
			attribute.String("url.full", url),
		)

		start := time.Now()
		body, err := d.get(ctx, op, url)
		if err == nil {
			metrics.ResponseBytes.WithLabelValues(endpoint).Observe(float64(len(body)))
			if uerr := json.Unmarshal(body, &v); uerr != nil {
				err = &domain.Error{
					Kind: domain.KindDeserialization,
					Op:   op,
					URL:  url,
					Msg:  "response body does not match the expected record",
					Err:  uerr,
				}
			}
		}
		metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(domain.KindOf(err)))
			metrics.RequestsTotal.WithLabelValues(endpoint, outcome(err)).Inc()
			d.logFailure(endpoint, url, err)
			var zero T
			return zero, err
		}

		metrics.RequestsTotal.WithLabelValues(endpoint, metrics.OutcomeSuccess).Inc()
		d.sampler.Reset(endpoint)
		slog.Debug("Fetched document", "endpoint", endpoint, "url", url, "bytes", len(body))
		return v, nil
	})
}

// get returns the body of a 2xx response. Every other outcome is a KindNetwork error.
func (d *HTTPDispatcher) get(ctx context.Context, op, url string) ([]byte, error) {
	requestID := uuid.NewString()

	do := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, &domain.Error{Kind: domain.KindNetwork, Op: op, URL: url, Msg: "failed to create request", Err: err}
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-Id", requestID)

		metrics.InFlightRequests.Inc()
		defer metrics.InFlightRequests.Dec()

		resp, err := d.client.Do(req)
		if err != nil {
			return nil, &domain.Error{Kind: domain.KindNetwork, Op: op, URL: url, Msg: "request failed", Err: err}
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				slog.Warn("Failed to close response body", "error", err)
			}
		}()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &domain.Error{Kind: domain.KindNetwork, Op: op, URL: url, StatusCode: resp.StatusCode, Msg: "unexpected status"}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &domain.Error{Kind: domain.KindNetwork, Op: op, URL: url, Msg: "failed to read response body", Err: err}
		}
		slog.Debug("Backend responded", "url", url, "request_id", requestID, "status_code", resp.StatusCode)
		return body, nil
	}

	if d.cb == nil {
		return do()
	}

	out, err := d.cb.Execute(func() (interface{}, error) {
		body, err := do()
		return body, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &domain.Error{Kind: domain.KindNetwork, Op: op, URL: url, Msg: "circuit breaker rejected request", Err: err}
		}
		return nil, err
	}
	return out.([]byte), nil
}

func (d *HTTPDispatcher) logFailure(endpoint, url string, err error) {
	shouldLog, n := d.sampler.Observe(endpoint)
	if !shouldLog {
		return
	}
	slog.Warn("Backend request failed",
		"endpoint", endpoint,
		"url", url,
		"kind", domain.KindOf(err),
		"occurrences", n,
		"error", err)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return metrics.OutcomeRejected
	case domain.KindOf(err) == domain.KindDeserialization:
		return metrics.OutcomeDeserialization
	default:
		return metrics.OutcomeNetwork
	}
}
