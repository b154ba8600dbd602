package workqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestFIFOOrderPerKey(t *testing.T) {
	ex := NewKeyedExecutor(Config{QueueSize: 64, EnqueueTimeout: time.Second})
	defer ex.Stop()

	var mu sync.Mutex
	var order []int
	for i := 0; i < 20; i++ {
		i := i
		err := ex.Submit(context.Background(), "user-1", JobFunc(func(context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}))
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	if err := ex.Barrier(context.Background(), "user-1"); err != nil {
		t.Fatalf("barrier: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	for i, got := range order {
		if got != i {
			t.Fatalf("order[%d] = %d, full order %v", i, got, order)
		}
	}
}

func TestBlockedKeyNeverDelaysOtherKeys(t *testing.T) {
	ex := NewKeyedExecutor(Config{QueueSize: 4, EnqueueTimeout: time.Second})
	defer ex.Stop()

	// One key sits on a blocked job; every other key must still make
	// progress, whatever its value.
	block := make(chan struct{})
	_ = ex.Submit(context.Background(), "user-1", JobFunc(func(context.Context) error {
		<-block
		return nil
	}))

	for i := 2; i <= 30; i++ {
		key := fmt.Sprintf("user-%d", i)
		done := make(chan struct{})
		if err := ex.Submit(context.Background(), key, JobFunc(func(context.Context) error {
			close(done)
			return nil
		})); err != nil {
			t.Fatalf("submit %s: %v", key, err)
		}
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("job for %s did not run while user-1 was blocked", key)
		}
	}
	close(block)
}

func TestIdleWorkersAreReaped(t *testing.T) {
	ex := NewKeyedExecutor(Config{IdleTimeout: 150 * time.Millisecond})
	defer ex.Stop()

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("user-%d", i)
		if err := ex.Barrier(context.Background(), key); err != nil {
			t.Fatalf("barrier %s: %v", key, err)
		}
	}
	if n := ex.ActiveWorkers(); n != 5 {
		t.Fatalf("active workers = %d, want 5", n)
	}

	deadline := time.Now().Add(2 * time.Second)
	for ex.ActiveWorkers() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("workers never reaped, still %d alive", ex.ActiveWorkers())
		}
		time.Sleep(5 * time.Millisecond)
	}

	// A new submit for a reaped key spawns a fresh worker.
	if err := ex.Barrier(context.Background(), "user-0"); err != nil {
		t.Fatalf("barrier after reap: %v", err)
	}
}

func TestStopDrainsQueuedJobs(t *testing.T) {
	ex := NewKeyedExecutor(Config{QueueSize: 64, EnqueueTimeout: time.Second})

	var mu sync.Mutex
	ran := 0
	for i := 0; i < 10; i++ {
		err := ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
			mu.Lock()
			ran++
			mu.Unlock()
			return nil
		}))
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	ex.Stop() // blocks until workers finish draining

	mu.Lock()
	defer mu.Unlock()
	if ran != 10 {
		t.Fatalf("ran = %d, want 10", ran)
	}
}

func TestSubmitAfterStopFails(t *testing.T) {
	ex := NewKeyedExecutor(Config{})
	ex.Stop()

	err := ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error { return nil }))
	if !errors.Is(err, ErrExecutorClosed) {
		t.Fatalf("err = %v, want ErrExecutorClosed", err)
	}
}

func TestQueueFullAfterEnqueueTimeout(t *testing.T) {
	ex := NewKeyedExecutor(Config{QueueSize: 1, EnqueueTimeout: 20 * time.Millisecond})
	defer ex.Stop()

	block := make(chan struct{})
	defer close(block)

	// Occupy the worker, then fill the single queue slot.
	_ = ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		<-block
		return nil
	}))
	deadline := time.Now().Add(time.Second)
	for {
		err := ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error { return nil }))
		if errors.Is(err, ErrQueueFull) {
			var qf *QueueFullError
			if !errors.As(err, &qf) {
				t.Fatalf("want *QueueFullError, got %T", err)
			}
			if qf.Key != "k" {
				t.Fatalf("key = %q, want k", qf.Key)
			}
			return
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if time.Now().After(deadline) {
			t.Fatal("queue never reported full")
		}
	}
}

func TestFailedJobRunsOnceAndReportsError(t *testing.T) {
	var mu sync.Mutex
	runs := 0
	var reported []error

	ex := NewKeyedExecutor(Config{
		ErrorHandler: func(err error) {
			mu.Lock()
			reported = append(reported, err)
			mu.Unlock()
		},
	})

	boom := errors.New("boom")
	_ = ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		mu.Lock()
		runs++
		mu.Unlock()
		return boom
	}))
	ex.Stop()

	mu.Lock()
	defer mu.Unlock()
	if runs != 1 {
		t.Fatalf("runs = %d, want 1 (no retries)", runs)
	}
	if len(reported) != 1 || !errors.Is(reported[0], boom) {
		t.Fatalf("reported = %v", reported)
	}
}

func TestPanickingJobDoesNotKillWorker(t *testing.T) {
	var mu sync.Mutex
	var reported []error

	ex := NewKeyedExecutor(Config{
		ErrorHandler: func(err error) {
			mu.Lock()
			reported = append(reported, err)
			mu.Unlock()
		},
	})
	defer ex.Stop()

	_ = ex.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		panic("kaboom")
	}))
	if err := ex.Barrier(context.Background(), "k"); err != nil {
		t.Fatalf("barrier after panic: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(reported) != 1 {
		t.Fatalf("reported = %v, want one panic report", reported)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SMP_QUEUE_SIZE", "256")
	t.Setenv("SMP_QUEUE_ENQUEUE_TIMEOUT", "250ms")
	t.Setenv("SMP_QUEUE_IDLE_TIMEOUT", "2m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.QueueSize != 256 {
		t.Fatalf("unexpected QueueSize: %+v", cfg)
	}
	if cfg.EnqueueTimeout.String() != "250ms" || cfg.IdleTimeout.String() != "2m0s" {
		t.Fatalf("unexpected timeouts: %+v", cfg)
	}
}
