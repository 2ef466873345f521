package ttlcache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
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

func TestCacheExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}
	c := New[string, []int](60*time.Second, WithClock(clock.Now))

	c.Set("US_POWERBALL", []int{1, 2, 3})
	v, ok := c.Get("US_POWERBALL")
	require.True(t, ok)
	require.Equal(t, []int{1, 2, 3}, v)

	clock.Advance(59 * time.Second)
	_, ok = c.Get("US_POWERBALL")
	require.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get("US_POWERBALL")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

func TestCacheGetOrLoad(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}
	c := New[string, int](time.Minute, WithClock(clock.Now))

	calls := 0
	load := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad("k", load)
		require.NoError(t, err)
		require.Equal(t, 42, v)
	}
	require.Equal(t, 1, calls)

	_, err := c.GetOrLoad("broken", func() (int, error) { return 0, errors.New("boom") })
	require.Error(t, err)
	_, ok := c.Get("broken")
	require.False(t, ok, "errors must not be cached")
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New[int, int](time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(k, j)
				_, _ = c.Get(k)
			}
		}(i)
	}
	wg.Wait()
	require.Equal(t, 16, c.Len())
}
