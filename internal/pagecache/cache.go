// Package pagecache stores full result sets for client-controlled pagination.
//
// A list tool fetches and filters an entire record set once, stores it here,
// and hands the generated key back to the caller. Follow-up pages read the
// stored items instead of refetching, so every page of one logical listing is
// computed from the same snapshot.
package pagecache

import (
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a stored result set stays valid after creation.
// Inventory data changes slowly; five minutes is long enough to page through
// a listing and short enough that stale reads stay harmless.
const DefaultTTL = 5 * time.Minute

// keyPrefix marks keys minted by this cache. Keys are the prefix plus eight
// lowercase hex characters, eleven characters total.
const keyPrefix = "pb_"

type entry struct {
	items     []any
	query     string
	createdAt time.Time
	ttl       time.Duration
}

// expired reports whether the entry's lifetime has elapsed. Expiry is
// measured from creation only; reads never extend it.
func (e *entry) expired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

// Resolved is the outcome of GetOrCreate: the effective key and the full
// item sequence it identifies.
type Resolved struct {
	// Key is the cache key the caller should hand out for follow-up pages.
	Key string
	// Items is the full, already-filtered record sequence.
	Items []any
	// Query is the expression that produced Items when the entry was
	// created, kept for diagnostics.
	Query string
	// FromCache reports whether an existing entry served the request.
	FromCache bool
}

// Info describes a cache entry without touching it.
type Info struct {
	Valid            bool `json:"valid" jsonschema:"whether the key refers to a live cache entry"`
	TotalItems       *int `json:"total_items" jsonschema:"number of cached items, null when invalid"`
	AgeSeconds       *int `json:"age_seconds" jsonschema:"seconds since the entry was created, null when invalid"`
	ExpiresInSeconds *int `json:"expires_in_seconds" jsonschema:"seconds until the entry expires, null when invalid"`
}

// Cache maps opaque keys to immutable result sets with a fixed TTL.
//
// The zero value is not usable; construct instances with New so tests can
// run against isolated caches instead of shared globals.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates an empty cache. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// GetOrCreate resolves the full item sequence for one list request.
//
// When key names a live entry its items are returned verbatim and load is
// never invoked; the caller's query is ignored in favor of the one the entry
// was created with. Otherwise load runs exactly once and, on success, the
// result is stored under a freshly minted key. An unknown or expired key is
// treated the same as no key at all.
//
// load runs without the cache lock held, so two racing first callers may
// both fetch; each stores under its own key and neither sees torn state.
func (c *Cache) GetOrCreate(key, query string, load func() ([]any, error)) (Resolved, error) {
	if key != "" {
		if res, ok := c.lookup(key); ok {
			return res, nil
		}
	}

	items, err := load()
	if err != nil {
		return Resolved{}, err
	}
	return c.store(items, query), nil
}

// GetInfo reports validity and timing for a key. It is read-only: expired
// entries are reported invalid but not removed, and the TTL is not extended.
func (c *Cache) GetInfo(key string) Info {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	now := c.now()
	if !ok || e.expired(now) {
		return Info{Valid: false}
	}

	total := len(e.items)
	age := int(now.Sub(e.createdAt) / time.Second)
	expiresIn := int(e.ttl/time.Second) - age
	if expiresIn < 0 {
		expiresIn = 0
	}
	return Info{
		Valid:            true,
		TotalItems:       &total,
		AgeSeconds:       &age,
		ExpiresInSeconds: &expiresIn,
	}
}

// Invalidate removes an entry ahead of its TTL. It reports whether a live
// entry was dropped.
func (c *Cache) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	delete(c.entries, key)
	return !e.expired(c.now())
}

func (c *Cache) lookup(key string) (Resolved, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || e.expired(c.now()) {
		return Resolved{}, false
	}
	return Resolved{Key: key, Items: e.items, Query: e.query, FromCache: true}, true
}

func (c *Cache) store(items []any, query string) Resolved {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked()
	key := newKey()
	c.entries[key] = &entry{
		items:     items,
		query:     query,
		createdAt: c.now(),
		ttl:       c.ttl,
	}
	return Resolved{Key: key, Items: items, Query: query}
}

// sweepLocked drops expired entries. It runs on writes only so that reads
// stay free of side effects.
func (c *Cache) sweepLocked() {
	now := c.now()
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
		}
	}
}

// newKey mints a pagination key: the pb_ prefix plus the first four random
// bytes of a v4 UUID, hex-encoded.
func newKey() string {
	id := uuid.New()
	return keyPrefix + hex.EncodeToString(id[:4])
}
