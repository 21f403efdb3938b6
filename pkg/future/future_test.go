package future

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGo_CompletesWithValue(t *testing.T) {
	release := make(chan struct{})
	f := Go(func() (int, error) {
		<-release
		return 7, nil
	})

	_, ok, _ := f.Result()
	assert.False(t, ok, "future must not complete before fn returns")

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := f.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestFailed_IsCompleted(t *testing.T) {
	boom := errors.New("boom")
	f := Failed[string](boom)

	select {
	case <-f.Done():
	default:
		t.Fatal("Failed future should already be done")
	}
	v, ok, err := f.Result()
	assert.True(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, v)
}

func TestResolved_IsCompleted(t *testing.T) {
	v, err := Resolved("x").Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestAwait_ContextEndsWaitOnly(t *testing.T) {
	release := make(chan struct{})
	f := Go(func() (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// The operation still finishes after the waiter gave up
	close(release)
	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}
