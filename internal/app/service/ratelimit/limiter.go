package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/phamdangkhoamet/dkstory/internal/platform/cache"
	cfgpkg "github.com/phamdangkhoamet/dkstory/pkg/config"
)

const window = time.Minute

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter enforces per-minute fixed windows per action and subject.
// A Limiter without a store allows everything.
type Limiter struct {
	store  WindowStore
	limits map[string]int
}

const (
	ActionLogin = "login"
	ActionPay   = "pay"
)

func NewLimiter(store WindowStore, limits map[string]int) *Limiter {
	return &Limiter{store: store, limits: limits}
}

func newLimiterFromConfig(cfg *cfgpkg.Config, client *goredis.Client) *Limiter {
	var store WindowStore
	if client != nil {
		store = cache.NewWindowStore(client)
	}
	return NewLimiter(store, map[string]int{
		ActionLogin: cfg.RateLimit.LoginPerMinute,
		ActionPay:   cfg.RateLimit.PayPerMinute,
	})
}

// Allow counts one hit of action by subject. When the window is exhausted it
// returns allowed=false and the seconds until the window resets.
func (l *Limiter) Allow(ctx context.Context, action, subject string) (int64, bool, error) {
	if l == nil || l.store == nil {
		return 0, true, nil
	}
	limit := l.limits[action]
	if limit <= 0 {
		return 0, true, nil
	}
	if subject == "" {
		return 0, false, fmt.Errorf("rate limit subject is required")
	}

	count, ttl, err := l.store.IncrementWindow(ctx, key(action, subject), window)
	if err != nil {
		return 0, false, err
	}
	if count > int64(limit) {
		return ceilSeconds(ttl), false, nil
	}
	return 0, true, nil
}

func key(action, subject string) string {
	return "rl:" + action + ":" + subject
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 1
	}
	return int64(math.Ceil(d.Seconds()))
}

var Module = fx.Options(
	fx.Provide(newLimiterFromConfig),
)
