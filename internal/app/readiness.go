package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const defaultReadinessInterval = 2 * time.Second

// ReadinessWaiter polls the backend until it answers.
type ReadinessWaiter struct {
	client   *http.Client
	url      string
	interval time.Duration
}

func NewReadinessWaiter(client *http.Client, url string, interval time.Duration) *ReadinessWaiter {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	if interval <= 0 {
		interval = defaultReadinessInterval
	}
	return &ReadinessWaiter{
		client:   client,
		url:      url,
		interval: interval,
	}
}

// WaitForBackend returns once a HEAD request to url gets a non-5xx response,
// or when ctx ends.
func (w *ReadinessWaiter) WaitForBackend(ctx context.Context) error {
	slog.Info("Waiting for movie backend...", "url", w.url)
	// Poll without a deadline of our own; the caller decides how long to wait.
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.check(ctx); err != nil {
			slog.Warn("Movie backend not ready yet", "error", err)
		} else {
			slog.Info("Movie backend is ready")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *ReadinessWaiter) check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, w.url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}
