package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"MarketPanel/internal/model"
)

// Clock supplies the current time. Tests inject a fake one.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Entry is a cached fetch result and the time it was stored.
type Entry struct {
	Result    model.FetchResult
	CreatedAt time.Time
}

// Stats counts cache lookups.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// FetchFunc produces a fresh result on a cache miss.
type FetchFunc func(ctx context.Context) model.FetchResult

// Cache memoizes fetch results per key with a time-to-live.
// Empty results are cached like any other so an unavailable provider is
// retried only after the TTL elapses.
type Cache struct {
	clock   Clock
	mu      sync.Mutex
	entries map[string]Entry
	hits    int64
	misses  int64
}

// New creates a Cache. A nil clock means SystemClock.
func New(clock Clock) *Cache {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Cache{clock: clock, entries: make(map[string]Entry)}
}

// GetOrFetch returns the entry for key while it is fresh, otherwise calls fetch
// and stores its result. A ttl <= 0 never expires. A result produced after ctx
// was cancelled is returned but not stored.
//
// The lock is held across fetch so concurrent callers for a stale key wait
// for one fetch instead of each hitting the provider.
func (c *Cache) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) model.FetchResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if e, ok := c.entries[key]; ok && (ttl <= 0 || now.Sub(e.CreatedAt) < ttl) {
		c.hits++
		return e.Result
	}

	c.misses++
	res := fetch(ctx)
	if ctx.Err() != nil {
		return res
	}
	c.entries[key] = Entry{Result: res, CreatedAt: c.clock.Now()}
	return res
}

// Peek returns the stored entry for key regardless of age.
func (c *Cache) Peek(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

// Invalidate drops the entry for key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}

// Key builds a stable key for a candidate list and start date.
func Key(candidates []model.FetchCandidate, start time.Time) string {
	parts := make([]string, len(candidates))
	for i, c := range candidates {
		parts[i] = c.Symbol + "=" + c.Label
	}
	return fmt.Sprintf("%s@%s", strings.Join(parts, ","), start.Format(model.DateLayout))
}
