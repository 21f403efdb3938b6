package future

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultDelay is used by Delay when no duration is given.
const DefaultDelay = 3000 * time.Millisecond

// ErrInvalidDelay is returned for durations the timer cannot schedule.
var ErrInvalidDelay = errors.New("invalid delay")

// Delay completes with value after DefaultDelay on clock.
func Delay[T any](clock clockwork.Clock, value T) *Future[T] {
	return DelayFor(clock, value, DefaultDelay)
}

// DelayFor completes with value once d has elapsed on clock.
// Test doubles use it to simulate backend latency.
func DelayFor[T any](clock clockwork.Clock, value T, d time.Duration) *Future[T] {
	if d < 0 {
		return Failed[T](fmt.Errorf("%w: %s", ErrInvalidDelay, d))
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	f := newFuture[T]()
	clock.AfterFunc(d, func() {
		f.complete(value, nil)
	})
	return f
}
