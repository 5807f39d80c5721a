package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		key      string
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			key:      "search",
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			key:      "discover",
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rps, tt.burst)
			defer rl.Stop()

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if rl.Allow(tt.key) {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := New(1, 1)
	defer rl.Stop()

	if !rl.Allow("search") {
		t.Error("first call on search should pass")
	}
	if rl.Allow("search") {
		t.Error("second call on search should be limited")
	}
	// A different endpoint family has its own bucket.
	if !rl.Allow("discover") {
		t.Error("first call on discover should pass despite search being drained")
	}
}

func TestKeyedRateLimiter_WaitHonorsContext(t *testing.T) {
	rl := New(0.1, 1) // 1 token per 10s after the burst
	defer rl.Stop()

	if err := rl.Wait(context.Background(), "search"); err != nil {
		t.Fatalf("first Wait() failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := rl.Wait(ctx, "search")
	if err == nil {
		t.Error("second Wait() should fail when the context expires first")
	}
	if time.Since(start) > time.Second {
		t.Error("Wait() should return promptly after context deadline")
	}
}
