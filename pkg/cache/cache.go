// Package cache stores rendered projection results keyed by a hash of their
// request.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/iwvelando/venture-forecast/pkg/constants"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Cache is a string key-value store with per-entry expiry. Get reports a
// missing or expired key as ok == false with a nil error; a non-nil error
// means the backend could not answer.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Key derives a cache key from the request payload.
func Key(payload []byte) string {
	return constants.CacheKeyPrefix + strconv.FormatUint(xxhash.Sum64(payload), 16)
}

// New builds the cache for the given backend. An empty backend selects the
// in-memory cache; "none" disables caching.
func New(backend, redisAddress string) (Cache, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendRedis:
		if redisAddress == "" {
			return nil, fmt.Errorf("redis cache requires an address")
		}
		return NewRedis(redisAddress), nil
	case BackendNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (Nop) Set(context.Context, string, string, time.Duration) error { return nil }
