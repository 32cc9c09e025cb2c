package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
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

func TestWindowStore_IncrementWindow(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	store := NewWindowStore(client)
	ctx := context.Background()

	count, ttl, err := store.IncrementWindow(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
	require.Equal(t, time.Minute, ttl)

	count, _, err = store.IncrementWindow(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	mr.FastForward(61 * time.Second)

	count, _, err = store.IncrementWindow(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestWindowStore_Invalid(t *testing.T) {
	var nilStore *WindowStore
	_, _, err := nilStore.IncrementWindow(context.Background(), "k", time.Minute)
	require.Error(t, err)

	_, client := newMiniRedisClient(t)
	_, _, err = NewWindowStore(client).IncrementWindow(context.Background(), "", time.Minute)
	require.Error(t, err)
}
