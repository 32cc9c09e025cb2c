package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/phamdangkhoamet/dkstory/internal/platform/cache"
)

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, client
}

func TestLimiterBlocksAfterLimit(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	limiter := NewLimiter(cache.NewWindowStore(client), map[string]int{ActionPay: 2})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		retryAfter, allowed, err := limiter.Allow(ctx, ActionPay, "user-1")
		require.NoError(t, err)
		require.True(t, allowed, "attempt %d", i+1)
		require.Zero(t, retryAfter)
	}

	retryAfter, allowed, err := limiter.Allow(ctx, ActionPay, "user-1")
	require.NoError(t, err)
	require.False(t, allowed)
	require.Positive(t, retryAfter)

	// other subjects have their own window
	_, allowed, err = limiter.Allow(ctx, ActionPay, "user-2")
	require.NoError(t, err)
	require.True(t, allowed)

	mr.FastForward(61 * time.Second)

	_, allowed, err = limiter.Allow(ctx, ActionPay, "user-1")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestLimiterDisabled(t *testing.T) {
	var nilLimiter *Limiter
	_, allowed, err := nilLimiter.Allow(context.Background(), ActionLogin, "a@b.c")
	require.NoError(t, err)
	require.True(t, allowed)

	_, allowed, err = NewLimiter(nil, map[string]int{ActionLogin: 1}).Allow(context.Background(), ActionLogin, "a@b.c")
	require.NoError(t, err)
	require.True(t, allowed)
}

type failingStore struct{}

func (failingStore) IncrementWindow(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("redis down")
}

func TestLimiterPropagatesStoreErrors(t *testing.T) {
	l := NewLimiter(failingStore{}, map[string]int{ActionLogin: 1})
	_, allowed, err := l.Allow(context.Background(), ActionLogin, "a@b.c")
	require.Error(t, err)
	require.False(t, allowed)

	// unlimited actions never touch the store
	_, allowed, err = l.Allow(context.Background(), ActionPay, "u")
	require.NoError(t, err)
	require.True(t, allowed)
}
