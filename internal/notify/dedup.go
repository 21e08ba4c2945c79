package notify

import (
	"sync"
	"time"
)

// DefaultDedupWindow is the rolling span during which an identical reminder
// is suppressed.
const DefaultDedupWindow = time.Hour

type dedupKey struct {
	userID string
	typ    string
	title  string
}

// DedupCache suppresses repeat firings of the same (user, type, title)
// reminder within a rolling window. It stores the last-fired timestamp per key
// and compares elapsed time against the window explicitly, so firings straddling
// an hour boundary are still suppressed and a slow tick never over-suppresses.
//
// The cache is process-local and lost on restart; across horizontally scaled
// replicas each process deduplicates independently.
type DedupCache struct {
	mu     sync.Mutex
	window time.Duration
	fired  map[dedupKey]time.Time
}

// NewDedupCache constructs a cache with the supplied window, defaulting to
// DefaultDedupWindow when zero or negative.
func NewDedupCache(window time.Duration) *DedupCache {
	if window <= 0 {
		window = DefaultDedupWindow
	}
	return &DedupCache{
		window: window,
		fired:  make(map[dedupKey]time.Time),
	}
}

// ShouldSuppress reports whether a reminder with this key fired within the
// window before now.
func (c *DedupCache) ShouldSuppress(userID, typ, title string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, ok := c.fired[dedupKey{userID, typ, title}]
	if !ok {
		return false
	}
	return now.Sub(last) < c.window
}

// MarkFired records that a reminder with this key fired at now.
func (c *DedupCache) MarkFired(userID, typ, title string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fired[dedupKey{userID, typ, title}] = now
}

// Evict drops entries older than twice the window and returns how many were
// removed. Called periodically to bound memory.
func (c *DedupCache) Evict(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, last := range c.fired {
		if now.Sub(last) >= 2*c.window {
			delete(c.fired, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (c *DedupCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fired)
}

// Window exposes the configured suppression window.
func (c *DedupCache) Window() time.Duration {
	return c.window
}
