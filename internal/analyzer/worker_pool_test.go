package analyzer

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPool_RunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Close()

	var counter int64
	for i := 0; i < 100; i++ {
		pool.Submit(func() {
			atomic.AddInt64(&counter, 1)
		})
	}
	pool.Wait()

	if got := atomic.LoadInt64(&counter); got != 100 {
		t.Errorf("Expected 100 jobs to run before Wait returned, got %d", got)
	}
}

func TestWorkerPool_WaitIsReusable(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Close()

	var counter int64
	for round := 0; round < 3; round++ {
		for i := 0; i < 10; i++ {
			pool.Submit(func() { atomic.AddInt64(&counter, 1) })
		}
		pool.Wait()
		want := int64((round + 1) * 10)
		if got := atomic.LoadInt64(&counter); got != want {
			t.Fatalf("Round %d: expected %d completed jobs, got %d", round, want, got)
		}
	}
}

func TestWorkerPool_DefaultsToNumCPU(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()
	if pool.Workers() < 1 {
		t.Errorf("Expected at least one worker, got %d", pool.Workers())
	}
}

func TestWorkerPool_StartIsIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	pool.Start() // must not spawn a second generation of workers
	defer pool.Close()

	var counter int64
	pool.Submit(func() { atomic.AddInt64(&counter, 1) })
	pool.Wait()
	if atomic.LoadInt64(&counter) != 1 {
		t.Error("Expected the job to run exactly once")
	}
}
