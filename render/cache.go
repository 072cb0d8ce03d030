package render

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Artifact cache TTL bounds and environment overrides.
const (
	// DefaultTTLSeconds is the default artifact lifetime (1 hour).
	DefaultTTLSeconds = 3600

	// MinTTLSeconds is the minimum allowed TTL (1 minute).
	MinTTLSeconds = 60

	// MaxTTLSeconds is the maximum allowed TTL (7 days).
	MaxTTLSeconds = 604800

	// EnvCacheTTLSeconds overrides the artifact TTL.
	EnvCacheTTLSeconds = "FACEDECK_CACHE_TTL_SECONDS"

	// EnvCacheEnabled enables or disables the artifact cache.
	EnvCacheEnabled = "FACEDECK_CACHE_ENABLED"
)

// Artifact cache errors.
var (
	ErrInvalidTTL   = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)
	ErrCacheMiss    = errors.New("artifact not cached")
	ErrCacheExpired = errors.New("cached artifact expired")
)

// CacheKey identifies one rendered artifact. The deck version pins the key
// to a single prepared snapshot, so re-preparing a dataset can never serve
// stale artifacts.
type CacheKey struct {
	DeckVersion string
	Page        int
	Renderer    string
}

// String returns the key in "version/renderer/page" form for logs.
func (k CacheKey) String() string {
	return fmt.Sprintf("%s/%s/%d", k.DeckVersion, k.Renderer, k.Page)
}

// cacheEntry is one stored artifact with its expiry.
type cacheEntry[T any] struct {
	artifact  T
	createdAt time.Time
	expiresAt time.Time
}

// Cache is an in-memory TTL cache of rendered artifacts. It is safe for
// concurrent use. The clock is injectable so expiry is testable without
// sleeping.
type Cache[T any] struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu      sync.RWMutex
	entries map[CacheKey]cacheEntry[T]
}

// NewCache builds a Cache with the given TTL in seconds. TTLs outside
// [MinTTLSeconds, MaxTTLSeconds] are rejected.
func NewCache[T any](ttlSeconds int) (*Cache[T], error) {
	if ttlSeconds < MinTTLSeconds || ttlSeconds > MaxTTLSeconds {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTTL, ttlSeconds)
	}

	return &Cache[T]{
		ttl:     time.Duration(ttlSeconds) * time.Second,
		clock:   clockwork.NewRealClock(),
		entries: make(map[CacheKey]cacheEntry[T]),
	}, nil
}

// WithClock replaces the cache's clock. Tests use a fake clock to exercise
// expiry deterministically.
func (c *Cache[T]) WithClock(clock clockwork.Clock) *Cache[T] {
	c.clock = clock
	return c
}

// TTL returns the configured artifact lifetime.
func (c *Cache[T]) TTL() time.Duration { return c.ttl }

// Get returns the cached artifact for key. Fails with ErrCacheMiss when the
// key was never stored and ErrCacheExpired when its TTL has lapsed; an
// expired entry is evicted on the way out.
func (c *Cache[T]) Get(key CacheKey) (T, error) {
	var zero T

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}

	if c.clock.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return zero, fmt.Errorf("%w: %s", ErrCacheExpired, key)
	}

	return entry.artifact, nil
}

// Put stores an artifact under key, resetting its TTL.
func (c *Cache[T]) Put(key CacheKey, artifact T) {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry[T]{
		artifact:  artifact,
		createdAt: now,
		expiresAt: now.Add(c.ttl),
	}
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[CacheKey]cacheEntry[T])
}

// TTLFromEnv reads the TTL override from the environment, falling back to
// DefaultTTLSeconds when unset or out of range.
func TTLFromEnv() int {
	envVal := os.Getenv(EnvCacheTTLSeconds)
	if envVal == "" {
		return DefaultTTLSeconds
	}

	ttl, err := strconv.Atoi(envVal)
	if err != nil {
		return DefaultTTLSeconds
	}
	if ttl < MinTTLSeconds || ttl > MaxTTLSeconds {
		return DefaultTTLSeconds
	}
	return ttl
}

// CacheEnabledFromEnv reads the cache toggle from the environment. The cache
// is enabled by default.
func CacheEnabledFromEnv() bool {
	envVal := os.Getenv(EnvCacheEnabled)
	if envVal == "" {
		return true
	}

	enabled, err := strconv.ParseBool(envVal)
	if err != nil {
		return true
	}
	return enabled
}
