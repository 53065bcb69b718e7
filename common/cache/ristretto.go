package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/krau/fexp/config"
)

var (
	cache *ristretto.Cache[string, any]
	ttl   time.Duration
	mu    sync.RWMutex
)

// Init creates the process-wide cache from the cache.* config keys. Calling
// it again is a no-op.
func Init(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()
	if cache != nil {
		return nil
	}
	logger := log.FromContext(ctx)
	c, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: config.C().Cache.NumCounters,
		MaxCost:     config.C().Cache.MaxCost,
		BufferItems: 64,
		OnReject: func(item *ristretto.Item[any]) {
			logger.Debug("Cache item rejected", "key", item.Key)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	cache = c
	ttl = time.Duration(config.C().Cache.TTL) * time.Second
	return nil
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	if cache != nil {
		cache.Close()
		cache = nil
	}
}

func Set(key string, value any) error {
	mu.RLock()
	defer mu.RUnlock()
	if cache == nil {
		return fmt.Errorf("cache is not initialized")
	}
	ok := cache.SetWithTTL(key, value, 1, ttl)
	if !ok {
		return fmt.Errorf("failed to set value in cache")
	}
	cache.Wait()
	return nil
}

func Get[T any](key string) (T, bool) {
	var zero T
	mu.RLock()
	defer mu.RUnlock()
	if cache == nil {
		return zero, false
	}
	v, ok := cache.Get(key)
	if !ok {
		return zero, false
	}
	vT, ok := v.(T)
	if !ok {
		return zero, false
	}
	return vT, true
}
