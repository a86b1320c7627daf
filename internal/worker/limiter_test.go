package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiterAllowWithinBurst(t *testing.T) {
	l := NewLimiter(1, 2)
	url := "https://example.org/api"

	if !l.Allow(url) {
		t.Error("first call should be allowed")
	}
	if !l.Allow(url) {
		t.Error("second call (within burst) should be allowed")
	}
	if l.Allow(url) {
		t.Error("third immediate call should be limited")
	}
}

func TestLimiterPerHostIsolation(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("https://a.example.org/x") {
		t.Error("host a should be allowed")
	}
	if !l.Allow("https://b.example.org/x") {
		t.Error("host b has its own budget")
	}
	if l.Allow("https://a.example.org/y") {
		t.Error("host a budget should be exhausted")
	}
}

func TestLimiterWaitRespectsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	url := "https://example.org/api"

	// Exhaust the burst so the next Wait would block for a long time.
	if err := l.Wait(context.Background(), url); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, url); err == nil {
		t.Error("expected context error while rate limited")
	}
}

func TestLimiterInvalidURL(t *testing.T) {
	l := NewLimiter(1, 1)
	if l.Allow("://not a url") {
		t.Error("unparseable URL should not be allowed")
	}
}
