// Package cache stores serialized lint results keyed by source checksum.
// A file whose content hash is already cached skips the whole
// lex/parse/rule pass, which is what makes watch mode cheap on large
// trees. Backends share one interface so the CLI can swap the in-process
// store for Redis when several machines lint the same repository.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is the interface all result cache backends implement
type Cache interface {
	// Get retrieves a value from the cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with a TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from the cache
	Clear(ctx context.Context) error

	// Exists checks if a key exists in the cache
	Exists(ctx context.Context, key string) (bool, error)
}

// Config holds common configuration for cache backends
type Config struct {
	// DefaultTTL is applied when Set is called with a zero TTL
	DefaultTTL time.Duration
	// Prefix is prepended to all cache keys
	Prefix string
}

// DefaultConfig returns the configuration used when nothing is overridden.
// Results stay valid as long as the file content does, so the TTL exists
// only to bound memory on long-running watch sessions.
func DefaultConfig() Config {
	return Config{
		DefaultTTL: time.Hour,
		Prefix:     "aabhalint:",
	}
}

// New builds the cache backend named by kind: "memory", "redis", or "off".
// Zero fields in common fall back to DefaultConfig values. An "off" cache
// is returned as nil; callers treat nil as caching disabled.
func New(kind string, redisAddr string, common Config) (Cache, error) {
	defaults := DefaultConfig()
	if common.DefaultTTL <= 0 {
		common.DefaultTTL = defaults.DefaultTTL
	}
	if common.Prefix == "" {
		common.Prefix = defaults.Prefix
	}

	switch kind {
	case "", "memory":
		return NewMemoryCacheWithConfig(common), nil
	case "redis":
		config := DefaultRedisConfig()
		config.Config = common
		if redisAddr != "" {
			config.Addr = redisAddr
		}
		return NewRedisCacheWithConfig(config)
	case "off", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (expected memory, redis, or off)", kind)
	}
}

// ErrCacheMiss is returned when a key is not found in the cache
type ErrCacheMiss struct {
	Key string
}

func (e ErrCacheMiss) Error() string {
	return "cache miss: " + e.Key
}

// IsCacheMiss checks if an error is a cache miss
func IsCacheMiss(err error) bool {
	_, ok := err.(ErrCacheMiss)
	return ok
}
