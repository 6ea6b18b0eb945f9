// Package cache memoizes expensive aggregate lookups for a fixed
// duration. Values cross the cache boundary as JSON so a cached entry
// is never shared by reference between callers — every hit hands out
// a fresh copy that is safe to enrich per response.
package cache

import (
	"context"
	"time"
)

// Store is the cache contract shared by the memory and redis backends.
//
// GetOrCompute looks up key; on a fresh hit it decodes the stored
// value into dest without invoking compute. Otherwise it invokes
// compute, stores the result under key for ttl, and decodes it into
// dest. Errors from compute are returned as-is and never cached.
type Store interface {
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, dest any, compute func() (any, error)) error
}
