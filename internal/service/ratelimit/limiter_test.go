package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowWithinCapacity(t *testing.T) {
	l := New()
	for i := 0; i < 5; i++ {
		if !l.Allow("k", 5, 1) {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if l.Allow("k", 5, 1) {
		t.Fatalf("bucket should be drained")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		l.Allow("a", 3, 1)
	}
	if !l.Allow("b", 3, 1) {
		t.Fatalf("draining one key must not affect another")
	}
}

func TestRefill(t *testing.T) {
	l := New()
	if !l.Allow("k", 1, 100) {
		t.Fatalf("first request should pass")
	}
	if l.Allow("k", 1, 100) {
		t.Fatalf("bucket should be empty")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Allow("k", 1, 100) {
		t.Fatalf("bucket should have refilled")
	}
}

func TestWaitBlocksUntilToken(t *testing.T) {
	l := New()
	l.Allow("k", 1, 50)

	start := time.Now()
	if err := l.Wait(context.Background(), "k", 1, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("wait took too long")
	}
}

func TestWaitHonorsContext(t *testing.T) {
	l := New()
	l.Allow("k", 1, 0.001)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "k", 1, 0.001); err == nil {
		t.Fatalf("expected context deadline error")
	}
}
