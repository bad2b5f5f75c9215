// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
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

func newTestLRU(capacity int, ttl time.Duration) (*LRU[int], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[int](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRU_BasicOperations(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		if got, ok := c.Get(key); !ok || got != want {
			t.Errorf("Get(%q) = %d, %v; want %d, true", key, got, ok, want)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	c.Add("a", 10)
	if got, _ := c.Get("a"); got != 10 {
		t.Errorf("Get(a) after replace = %d, want 10", got)
	}
	if c.Len() != 3 {
		t.Errorf("Len() after replace = %d, want 3", c.Len())
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}
}

func TestLRU_Eviction(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	c.Get("a")
	c.Add("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted as least recently used")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("%s should still be cached", key)
		}
	}
}

func TestLRU_TTL(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)

	clock.Advance(30 * time.Second)
	c.Add("b", 3) // refreshes b's expiry

	clock.Advance(45 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("a should have expired")
	}
	if got, ok := c.Get("b"); !ok || got != 3 {
		t.Errorf("Get(b) = %d, %v; want 3, true", got, ok)
	}

	clock.Advance(time.Minute)
	if n := c.CleanupExpired(); n != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", n)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestLRU_CleanupExpiredKeepsLive(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)
	c.Add("old", 1)
	clock.Advance(40 * time.Second)
	c.Add("new", 2)
	clock.Advance(30 * time.Second)

	if n := c.CleanupExpired(); n != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", n)
	}
	if got, ok := c.Get("new"); !ok || got != 2 {
		t.Errorf("Get(new) = %d, %v; want 2, true", got, ok)
	}
	if n := c.CleanupExpired(); n != 0 {
		t.Errorf("second CleanupExpired() = %d, want 0", n)
	}
	c.Add("again", 3)
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRU_Defaults(t *testing.T) {
	c := NewLRU[string](0, 0)
	if c.capacity != DefaultCapacity || c.ttl != DefaultTTL {
		t.Errorf("defaults = %d, %v", c.capacity, c.ttl)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int](50, time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*7+i)%100)
				c.Add(key, i)
				c.Get(key)
			}
		}()
	}
	wg.Wait()
	if c.Len() > 50 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}
