package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"eventshare/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func testResult(text string) domain.ShareResult {
	return domain.ShareResult{ShareText: text, IncludedEventCount: 1}
}

func TestCache_New(t *testing.T) {
	cache := New(time.Minute, 5)
	assert.NotNil(t, cache)
	assert.Equal(t, time.Minute, cache.ttl)
	assert.Equal(t, 5, cache.maxEntries)

	defaulted := New(0, 0)
	assert.Equal(t, DefaultTTL, defaulted.ttl)
	assert.Equal(t, DefaultMaxEntries, defaulted.maxEntries)
}

func TestCache_SetAndGet(t *testing.T) {
	cache := New(DefaultTTL, DefaultMaxEntries)
	ctx := context.Background()

	err := cache.Set(ctx, "key-1", testResult("text-1"))
	assert.NoError(t, err)

	result, exists := cache.Get(ctx, "key-1")
	assert.True(t, exists)
	assert.Equal(t, "text-1", result.ShareText)

	_, exists = cache.Get(ctx, "missing")
	assert.False(t, exists)
}

func TestCache_Overwrite(t *testing.T) {
	cache := New(DefaultTTL, DefaultMaxEntries)
	ctx := context.Background()

	assert.NoError(t, cache.Set(ctx, "key-1", testResult("old")))
	assert.NoError(t, cache.Set(ctx, "key-1", testResult("new")))

	result, exists := cache.Get(ctx, "key-1")
	assert.True(t, exists)
	assert.Equal(t, "new", result.ShareText)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_TTLExpiry(t *testing.T) {
	clock := newFakeClock()
	cache := New(5*time.Minute, DefaultMaxEntries)
	cache.now = clock.Now
	ctx := context.Background()

	assert.NoError(t, cache.Set(ctx, "key-1", testResult("text-1")))

	// An entry exactly at the TTL is still served.
	clock.Advance(5 * time.Minute)
	_, exists := cache.Get(ctx, "key-1")
	assert.True(t, exists)

	// One second past the TTL it is gone, and the read collects it.
	clock.Advance(time.Second)
	_, exists = cache.Get(ctx, "key-1")
	assert.False(t, exists)
	assert.Equal(t, 0, cache.Len())
}

func TestCache_SetCollectsExpiredEntries(t *testing.T) {
	clock := newFakeClock()
	cache := New(5*time.Minute, DefaultMaxEntries)
	cache.now = clock.Now
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		assert.NoError(t, cache.Set(ctx, fmt.Sprintf("old-%d", i), testResult("old")))
	}

	clock.Advance(6 * time.Minute)
	assert.NoError(t, cache.Set(ctx, "fresh", testResult("fresh")))

	assert.Equal(t, 1, cache.Len())
	_, exists := cache.Get(ctx, "fresh")
	assert.True(t, exists)
}

func TestCache_EvictsOldestWhenFull(t *testing.T) {
	clock := newFakeClock()
	cache := New(time.Hour, 3)
	cache.now = clock.Now
	ctx := context.Background()

	// Distinct insertion times so the eviction order is unambiguous.
	assert.NoError(t, cache.Set(ctx, "first", testResult("first")))
	clock.Advance(time.Second)
	assert.NoError(t, cache.Set(ctx, "second", testResult("second")))
	clock.Advance(time.Second)
	assert.NoError(t, cache.Set(ctx, "third", testResult("third")))
	clock.Advance(time.Second)

	assert.NoError(t, cache.Set(ctx, "fourth", testResult("fourth")))

	assert.Equal(t, 3, cache.Len())
	_, exists := cache.Get(ctx, "first")
	assert.False(t, exists)
	for _, key := range []string{"second", "third", "fourth"} {
		_, exists := cache.Get(ctx, key)
		assert.True(t, exists, "expected %s to survive eviction", key)
	}
}

func TestCache_NeverExceedsMaxEntries(t *testing.T) {
	clock := newFakeClock()
	cache := New(time.Hour, 10)
	cache.now = clock.Now
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		assert.NoError(t, cache.Set(ctx, fmt.Sprintf("key-%d", i), testResult("text")))
		assert.LessOrEqual(t, cache.Len(), 10)
		clock.Advance(time.Millisecond)
	}
	assert.Equal(t, 10, cache.Len())

	// The survivors are the ten most recent insertions.
	for i := 40; i < 50; i++ {
		_, exists := cache.Get(ctx, fmt.Sprintf("key-%d", i))
		assert.True(t, exists)
	}
}

func TestCache_OverwriteDoesNotEvict(t *testing.T) {
	clock := newFakeClock()
	cache := New(time.Hour, 2)
	cache.now = clock.Now
	ctx := context.Background()

	assert.NoError(t, cache.Set(ctx, "a", testResult("a1")))
	clock.Advance(time.Second)
	assert.NoError(t, cache.Set(ctx, "b", testResult("b1")))
	clock.Advance(time.Second)

	// Rewriting an existing key must not push anything out.
	assert.NoError(t, cache.Set(ctx, "a", testResult("a2")))

	assert.Equal(t, 2, cache.Len())
	result, exists := cache.Get(ctx, "b")
	assert.True(t, exists)
	assert.Equal(t, "b1", result.ShareText)
}

func TestCache_Clear(t *testing.T) {
	cache := New(DefaultTTL, DefaultMaxEntries)
	ctx := context.Background()

	assert.NoError(t, cache.Set(ctx, "key-1", testResult("text-1")))
	assert.NoError(t, cache.Set(ctx, "key-2", testResult("text-2")))
	assert.Equal(t, 2, cache.Len())

	assert.NoError(t, cache.Clear(ctx))

	assert.Equal(t, 0, cache.Len())
	_, exists := cache.Get(ctx, "key-1")
	assert.False(t, exists)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := New(DefaultTTL, DefaultMaxEntries)
	ctx := context.Background()

	const numGoroutines = 10
	const opsPerGoroutine = 100

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			key := fmt.Sprintf("key-%d", id)
			for j := 0; j < opsPerGoroutine; j++ {
				assert.NoError(t, cache.Set(ctx, key, testResult("text")))
				cache.Get(ctx, key)
				cache.Len()
				if j%25 == 0 {
					assert.NoError(t, cache.Clear(ctx))
				}
			}
		}(i)
	}
	wg.Wait()

	assert.NoError(t, cache.Set(ctx, "final", testResult("final")))
	result, exists := cache.Get(ctx, "final")
	assert.True(t, exists)
	assert.Equal(t, "final", result.ShareText)
}
