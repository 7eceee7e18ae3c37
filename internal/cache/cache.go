// Package cache holds short-lived JSON snapshots of read models. Redis is used
// when configured; otherwise values stay in process memory.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a JSON value cache. Get reports whether key was present and
// decoded into dst. Incr and Counter operate on persistent integer counters
// that live beside the cached values; a missing counter reads as zero.
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Counter(ctx context.Context, key string) (int64, error)
}

// Open connects to Redis when redisURL is set and falls back to an
// in-process store if the URL is empty or the server does not answer.
// The returned function releases the underlying client.
func Open(ctx context.Context, redisURL string, defaultTTL time.Duration, logger *slog.Logger) (Store, func() error) {
	if redisURL == "" {
		logger.Info("cache_backend_selected", "backend", "memory")
		return NewLocal(defaultTTL, 2*defaultTTL), func() error { return nil }
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("invalid_redis_url_using_memory_cache", "error", err.Error())
		return NewLocal(defaultTTL, 2*defaultTTL), func() error { return nil }
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		// Redis is optional, continue without it
		logger.Warn("redis_unavailable_using_memory_cache", "addr", opts.Addr, "error", err.Error())
		_ = rdb.Close()
		return NewLocal(defaultTTL, 2*defaultTTL), func() error { return nil }
	}

	logger.Info("cache_backend_selected", "backend", "redis", "addr", opts.Addr)
	return NewRedis(rdb), rdb.Close
}

// MovieKey is the cache key of a movie's aggregated read model.
func MovieKey(movieID int64) string {
	return fmt.Sprintf("movie:rating:%d", movieID)
}

func generationKey(key string) string {
	return key + ":gen"
}

// Generation returns the invalidation counter of key. Read it before loading
// the value that will be passed to Fill.
func Generation(ctx context.Context, s Store, key string) (int64, error) {
	return s.Counter(ctx, generationKey(key))
}

// Invalidate bumps the generation of key and drops the cached value, so
// loads that started earlier can no longer be stored by Fill.
func Invalidate(ctx context.Context, s Store, key string) error {
	if _, err := s.Incr(ctx, generationKey(key)); err != nil {
		return err
	}
	return s.Delete(ctx, key)
}

// Fill stores value under key only while the generation still equals gen.
// If an invalidation lands between the write and the re-check, the value is
// removed again. It reports whether the value was kept.
func Fill(ctx context.Context, s Store, key string, gen int64, value any, ttl time.Duration) (bool, error) {
	current, err := Generation(ctx, s, key)
	if err != nil {
		return false, err
	}
	if current != gen {
		return false, nil
	}
	if err := s.Set(ctx, key, value, ttl); err != nil {
		return false, err
	}
	after, err := Generation(ctx, s, key)
	if err != nil {
		return false, err
	}
	if after != gen {
		return false, s.Delete(ctx, key)
	}
	return true, nil
}
