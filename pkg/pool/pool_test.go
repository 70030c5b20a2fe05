package pool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWorkerPoolRunsJobs(t *testing.T) {
	p := NewWorkerPool(PoolConfig{Workers: 2, QueueSize: 10}, zap.NewNop())
	defer p.Shutdown()

	var count int64
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := p.Submit(func(ctx context.Context) {
			defer wg.Done()
			atomic.AddInt64(&count, 1)
		})
		if err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
	}

	wg.Wait()
	if got := atomic.LoadInt64(&count); got != 5 {
		t.Errorf("expected 5 jobs to run, got %d", got)
	}
}

func TestWorkerPoolQueueFull(t *testing.T) {
	p := NewWorkerPool(PoolConfig{Workers: 1, QueueSize: 1}, zap.NewNop())
	defer p.Shutdown()

	block := make(chan struct{})
	defer close(block)

	started := make(chan struct{})
	_ = p.Submit(func(ctx context.Context) {
		close(started)
		<-block
	})
	<-started

	// worker busy; fill the single queue slot
	if err := p.Submit(func(ctx context.Context) { <-block }); err != nil {
		t.Fatalf("expected queued submit to succeed, got %v", err)
	}

	if err := p.Submit(func(ctx context.Context) {}); err != ErrQueueFull {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
}

func TestWorkerPoolShutdownDrains(t *testing.T) {
	p := NewWorkerPool(PoolConfig{Workers: 2, QueueSize: 10, ShutdownTimeout: 5 * time.Second}, zap.NewNop())

	var count int64
	for i := 0; i < 8; i++ {
		if err := p.Submit(func(ctx context.Context) {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt64(&count, 1)
		}); err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
	}

	if err := p.Shutdown(); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}
	if got := atomic.LoadInt64(&count); got != 8 {
		t.Errorf("expected all 8 jobs to finish before shutdown, got %d", got)
	}

	if err := p.Submit(func(ctx context.Context) {}); err != ErrPoolClosed {
		t.Errorf("expected ErrPoolClosed after shutdown, got %v", err)
	}
}

func TestWorkerPoolRecoversFromPanic(t *testing.T) {
	p := NewWorkerPool(PoolConfig{Workers: 1, QueueSize: 10}, zap.NewNop())
	defer p.Shutdown()

	if err := p.Submit(func(ctx context.Context) { panic("boom") }); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	done := make(chan struct{})
	if err := p.Submit(func(ctx context.Context) { close(done) }); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive a panicking job")
	}
}
