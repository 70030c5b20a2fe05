package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", now)
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	if allowed, _ := limiter.Allow("10.0.0.1", now); allowed {
		t.Error("fourth request should be rejected")
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	now := time.Now()

	if allowed, _ := limiter.Allow("10.0.0.1", now); !allowed {
		t.Fatal("first client should be allowed")
	}
	if allowed, _ := limiter.Allow("10.0.0.2", now); !allowed {
		t.Error("second client should not share the first client's budget")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	now := time.Now()

	if allowed, _ := limiter.Allow("10.0.0.1", now); !allowed {
		t.Fatal("first request should be allowed")
	}
	if allowed, _ := limiter.Allow("10.0.0.1", now); allowed {
		t.Fatal("second request in window should be rejected")
	}

	later := now.Add(2 * time.Minute)
	if allowed, _ := limiter.Allow("10.0.0.1", later); !allowed {
		t.Error("request after the window should be allowed again")
	}
}

func TestRateLimiterRemainingCount(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute)
	now := time.Now()

	_, remaining := limiter.Allow("10.0.0.1", now)
	if remaining != 4 {
		t.Errorf("expected 4 remaining, got %d", remaining)
	}

	_, remaining = limiter.Allow("10.0.0.1", now)
	if remaining != 3 {
		t.Errorf("expected 3 remaining, got %d", remaining)
	}
}
