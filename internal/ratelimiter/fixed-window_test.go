package ratelimiter

import (
	"sync"
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := NewFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if ok, _ := rl.Allow("10.0.0.1"); !ok {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	ok, retry := rl.Allow("10.0.0.1")
	if ok {
		t.Error("fourth request should be rejected")
	}
	if retry != time.Minute {
		t.Errorf("retry-after = %v, want %v", retry, time.Minute)
	}
}

func TestClientsAreIndependent(t *testing.T) {
	rl := NewFixedWindowLimiter(1, time.Minute)

	if ok, _ := rl.Allow("10.0.0.1"); !ok {
		t.Fatal("first client's first request should pass")
	}
	if ok, _ := rl.Allow("10.0.0.2"); !ok {
		t.Error("second client should have its own budget")
	}
}

func TestConcurrentAllowNeverOvercounts(t *testing.T) {
	const limit = 50
	rl := NewFixedWindowLimiter(limit, time.Minute)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := rl.Allow("10.0.0.1"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != limit {
		t.Errorf("allowed %d requests, want exactly %d", allowed, limit)
	}
}
