package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDedupCacheSuppressesWithinWindow(t *testing.T) {
	cache := NewDedupCache(time.Hour)
	now := clock(9, 0)

	require.False(t, cache.ShouldSuppress("user-1", "hydration", "Time to hydrate", now))
	cache.MarkFired("user-1", "hydration", "Time to hydrate", now)
	require.True(t, cache.ShouldSuppress("user-1", "hydration", "Time to hydrate", now.Add(30*time.Minute)))
}

func TestDedupCacheReleasesAfterWindow(t *testing.T) {
	cache := NewDedupCache(time.Hour)
	now := clock(9, 0)

	cache.MarkFired("user-1", "meal", "Time for breakfast", now)
	require.True(t, cache.ShouldSuppress("user-1", "meal", "Time for breakfast", now.Add(59*time.Minute)))
	require.False(t, cache.ShouldSuppress("user-1", "meal", "Time for breakfast", now.Add(time.Hour)))
}

func TestDedupCacheSuppressesAcrossHourBoundary(t *testing.T) {
	// 09:55 -> 10:05 crosses the calendar hour but is inside the window.
	cache := NewDedupCache(time.Hour)
	fired := clock(9, 55)

	cache.MarkFired("user-1", "exercise", "Time to move", fired)
	require.True(t, cache.ShouldSuppress("user-1", "exercise", "Time to move", clock(10, 5)))
}

func TestDedupCacheKeysAreIndependent(t *testing.T) {
	cache := NewDedupCache(time.Hour)
	now := clock(9, 0)

	cache.MarkFired("user-1", "meal", "Time for breakfast", now)

	require.False(t, cache.ShouldSuppress("user-2", "meal", "Time for breakfast", now))
	require.False(t, cache.ShouldSuppress("user-1", "hydration", "Time for breakfast", now))
	require.False(t, cache.ShouldSuppress("user-1", "meal", "Time for lunch", now))
}

func TestDedupCacheEviction(t *testing.T) {
	cache := NewDedupCache(time.Hour)
	now := clock(9, 0)

	cache.MarkFired("user-1", "meal", "old", now.Add(-3*time.Hour))
	cache.MarkFired("user-1", "meal", "recent", now.Add(-30*time.Minute))
	require.Equal(t, 2, cache.Len())

	removed := cache.Evict(now)
	require.Equal(t, 1, removed)
	require.Equal(t, 1, cache.Len())
	require.True(t, cache.ShouldSuppress("user-1", "meal", "recent", now))
}

func TestDedupCacheDefaultsWindow(t *testing.T) {
	cache := NewDedupCache(0)
	require.Equal(t, DefaultDedupWindow, cache.Window())
}
