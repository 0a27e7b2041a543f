// Package cache is a best-effort Redis cache-aside layer for the hot public
// listings. When Redis is not configured every helper is a no-op, so the
// service (and its tests) run without it.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyGallery     = "gallery:approved"
	KeyRecommended = "gallery:recommended"
)

var Client *redis.Client

func Init(addr string) {
	if addr == "" {
		return
	}
	Client = redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, continuing without cache", "error", err)
		Client = nil
		return
	}
	slog.Info("redis connected", "addr", addr)
}

func Close() {
	if Client != nil {
		if err := Client.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
}

// GetJSON reads key into dest. Returns (false, nil) on miss or when the
// cache is disabled.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if Client == nil {
		return false, nil
	}
	s, err := Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if Client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return Client.Set(ctx, key, b, ttl).Err()
}

// Aside tries the cache first; on miss it calls fetch (which must write into
// dest) and stores the result with ttl.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate drops listing keys after a mutation that can change what the
// public sees.
func Invalidate(ctx context.Context, keys ...string) {
	if Client == nil || len(keys) == 0 {
		return
	}
	if err := Client.Del(ctx, keys...).Err(); err != nil {
		slog.Error("cache invalidation failed", "error", err)
	}
}
