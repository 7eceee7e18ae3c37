package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Local keeps encoded values in process memory. Values are stored as JSON so
// callers observe the same copy semantics as with Redis.
type Local struct {
	store *gocache.Cache
}

func NewLocal(defaultTTL, cleanupInterval time.Duration) *Local {
	return &Local{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (l *Local) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := l.store.Get(key)
	if !ok {
		return false, nil
	}
	raw, ok := v.([]byte)
	if !ok {
		l.store.Delete(key)
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set stores value for ttl; a zero ttl uses the store default.
func (l *Local) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	l.store.Set(key, raw, ttl)
	return nil
}

func (l *Local) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		l.store.Delete(k)
	}
	return nil
}

func (l *Local) Incr(_ context.Context, key string) (int64, error) {
	// Add fails when the counter already exists, which is fine
	_ = l.store.Add(key, int64(0), gocache.NoExpiration)
	n, err := l.store.IncrementInt64(key, 1)
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	return n, nil
}

func (l *Local) Counter(_ context.Context, key string) (int64, error) {
	v, ok := l.store.Get(key)
	if !ok {
		return 0, nil
	}
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("counter %s holds %T", key, v)
	}
	return n, nil
}
