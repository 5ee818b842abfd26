package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestLRU(t *testing.T) {
	c := New[string, int](3)
	c.Put("الله", 1)
	c.Put("رب", 2)
	c.Put("رحم", 3)

	tests := []struct {
		key    string
		want   int
		wantOK bool
	}{
		{"الله", 1, true},
		{"رحم", 3, true},
		{"حمد", 0, false},
	}
	for _, tt := range tests {
		if got, ok := c.Get(tt.key); got != tt.want || ok != tt.wantOK {
			t.Errorf("Get(%q) = %d, %v, want %d, %v", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
	if n := c.Len(); n != 3 {
		t.Errorf("Len() = %d, want 3", n)
	}
}

func TestLRUEviction(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")    // b is now least recently used
	c.Put("c", 3) // evicts b
	c.Put("a", 10)

	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) found an evicted entry")
	}
	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("Get(a) = %d, want 10", v)
	}
	if v, _ := c.Get("c"); v != 3 {
		t.Errorf("Get(c) = %d, want 3", v)
	}
	s := c.Stats()
	if s.Evictions != 1 || s.Size != 2 || s.Capacity != 2 {
		t.Errorf("Stats() = %+v, want 1 eviction, size 2, capacity 2", s)
	}
}

func TestLRUSingleEntry(t *testing.T) {
	c := New[int, int](1)
	for i := 0; i < 5; i++ {
		c.Put(i, i)
	}
	if v, ok := c.Get(4); !ok || v != 4 {
		t.Errorf("Get(4) = %d, %v, want 4, true", v, ok)
	}
	if n := c.Len(); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
}

func TestLRULoad(t *testing.T) {
	c := New[string, string](0)
	calls := 0
	fn := func(k string) string {
		calls++
		return "?" + k
	}
	for i := 0; i < 3; i++ {
		if got := c.Load("x", fn); got != "?x" {
			t.Errorf("Load() = %q, want %q", got, "?x")
		}
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
	if s := c.Stats(); s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Stats() hits=%d misses=%d, want 2, 1", s.Hits, s.Misses)
	}
}

func TestLRUUnbounded(t *testing.T) {
	c := New[int, int](-5)
	for i := 0; i < 1000; i++ {
		c.Put(i, i)
	}
	if n := c.Len(); n != 1000 {
		t.Errorf("Len() = %d, want 1000", n)
	}
}

func TestLRUConcurrent(t *testing.T) {
	c := New[string, int](50)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%75)
				c.Load(key, func(string) int { return i % 75 })
			}
		}()
	}
	wg.Wait()

	if n := c.Len(); n > 50 {
		t.Errorf("Len() = %d, want <= 50", n)
	}
}
