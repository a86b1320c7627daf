package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type countJob struct {
	counter *int32
	fail    bool
}

type countResult struct {
	err error
}

func (r *countResult) GetError() error { return r.err }

func (j *countJob) Execute(_ context.Context) Result {
	atomic.AddInt32(j.counter, 1)
	if j.fail {
		return &countResult{err: errors.New("job failed")}
	}
	return &countResult{}
}

func TestPoolRunsAllJobs(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	var counter int32
	const jobs = 20
	for i := 0; i < jobs; i++ {
		pool.Submit(&countJob{counter: &counter})
	}
	results := pool.Wait()

	if got := atomic.LoadInt32(&counter); got != jobs {
		t.Errorf("executed %d jobs, want %d", got, jobs)
	}
	if len(results) != jobs {
		t.Errorf("got %d results, want %d", len(results), jobs)
	}
}

func TestPoolCollectsFailures(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var counter int32
	pool.Submit(&countJob{counter: &counter, fail: true})
	pool.Submit(&countJob{counter: &counter})
	results := pool.Wait()

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("got %d failures, want 1", failures)
	}
}

func TestPoolZeroWorkersDefaultsToOne(t *testing.T) {
	pool := NewPool(0)
	pool.Start()

	var counter int32
	pool.Submit(&countJob{counter: &counter})
	results := pool.Wait()

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
}
