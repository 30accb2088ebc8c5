// Package cache stores rendered page documents keyed by slug.
package cache

import (
	"bytes"
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. A ttl of 0 uses the implementation default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// New returns a Redis cache when redisURL is set and an in-memory cache otherwise.
func New(redisURL, prefix string, ttl time.Duration) (Cache, error) {
	if redisURL == "" {
		return NewMemory(ttl), nil
	}
	return NewRedis(RedisOptions{URL: redisURL, Prefix: prefix, DefaultTTL: ttl})
}

// PageKey is the cache key of a rendered page.
func PageKey(slug string) string {
	return "page:" + slug
}

// EncodeVersioned prefixes value with version. version must not contain a newline.
func EncodeVersioned(version string, value []byte) []byte {
	out := make([]byte, 0, len(version)+1+len(value))
	out = append(out, version...)
	out = append(out, '\n')
	return append(out, value...)
}

// DecodeVersioned returns the value of an entry written by EncodeVersioned,
// or false when the entry belongs to another version.
func DecodeVersioned(entry []byte, version string) ([]byte, bool) {
	i := bytes.IndexByte(entry, '\n')
	if i < 0 || string(entry[:i]) != version {
		return nil, false
	}
	return entry[i+1:], true
}
