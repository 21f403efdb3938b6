// Package future provides a one-shot asynchronous result.
package future

import (
	"context"
	"sync"
)

// Future is the eventual outcome of one operation. It completes exactly once.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Go runs fn on its own goroutine and returns immediately.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		v, err := fn()
		f.complete(v, err)
	}()
	return f
}

// Resolved returns a future already completed with v.
func Resolved[T any](v T) *Future[T] {
	f := newFuture[T]()
	f.complete(v, nil)
	return f
}

// Failed returns a future already completed with err.
func Failed[T any](err error) *Future[T] {
	f := newFuture[T]()
	var zero T
	f.complete(zero, err)
	return f
}

func (f *Future[T]) complete(v T, err error) {
	f.once.Do(func() {
		f.value, f.err = v, err
		close(f.done)
	})
}

// Done is closed once the outcome is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Await blocks until the future completes or ctx ends.
// ctx bounds only the wait: the underlying operation keeps running.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result reports the outcome without blocking; ok is false while pending.
func (f *Future[T]) Result() (v T, ok bool, err error) {
	select {
	case <-f.done:
		return f.value, true, f.err
	default:
		var zero T
		return zero, false, nil
	}
}
