package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsCheckerDisallowedPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	checker := NewRobotsChecker("culpa-test", 5*time.Second)
	ctx := context.Background()

	if !checker.IsAllowed(ctx, server.URL+"/api/summary/Pandemic") {
		t.Error("allowed path reported as disallowed")
	}
	if checker.IsAllowed(ctx, server.URL+"/private/page") {
		t.Error("disallowed path reported as allowed")
	}
}

func TestRobotsCheckerAllowsOnFetchFailure(t *testing.T) {
	checker := NewRobotsChecker("culpa-test", 200*time.Millisecond)
	// No server listening: fetch fails, default is allow.
	if !checker.IsAllowed(context.Background(), "http://127.0.0.1:1/page") {
		t.Error("fetch failure must allow by default")
	}
}

func TestRobotsCheckerCachesPerHost(t *testing.T) {
	var fetches int32
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		fmt.Fprint(w, "User-agent: *\nAllow: /\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	checker := NewRobotsChecker("culpa-test", 5*time.Second)
	ctx := context.Background()
	checker.IsAllowed(ctx, server.URL+"/a")
	checker.IsAllowed(ctx, server.URL+"/b")
	checker.IsAllowed(ctx, server.URL+"/c")

	if got := atomic.LoadInt32(&fetches); got != 1 {
		t.Errorf("robots.txt fetched %d times, want 1", got)
	}
}
