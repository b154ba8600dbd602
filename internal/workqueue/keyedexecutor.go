// Package workqueue provides a keyed work-queue that guarantees FIFO order
// per key while keeping every key fully independent: each active key owns a
// dedicated worker goroutine, so a slow job for one key never delays another
// key's jobs.
//
// **Contract**: Callers **must not** invoke Submit concurrently for the *same*
// key. FIFO ordering relies on that external serialisation. The bot satisfies
// it by submitting from the single poll-loop goroutine.
//
// Jobs run exactly once; a failed job is reported to the error handler, never
// re-run.
package workqueue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// submitPollInterval paces retries on the back-pressure path when a key's
// queue is full.
const submitPollInterval = 5 * time.Millisecond

type queuedJob struct {
	ctx context.Context
	job Job
}

type worker struct {
	ch chan queuedJob
}

// KeyedExecutor executes Jobs on one worker goroutine per active key
// (e.g. user id). Workers are created on first Submit for a key and reaped
// after IdleTimeout without work. FIFO ordering is preserved per key; jobs
// with different keys always run in parallel.
type KeyedExecutor struct {
	cfg Config

	mu      sync.Mutex
	workers map[string]*worker

	done   chan struct{} // closed in Stop()
	closed uint32        // 0 → running, 1 → closed

	wg sync.WaitGroup
}

// NewKeyedExecutor constructs the executor. Workers spawn lazily.
func NewKeyedExecutor(cfg Config) *KeyedExecutor {
	// Apply zero-value defaults.
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 128
	}
	if cfg.EnqueueTimeout <= 0 {
		cfg.EnqueueTimeout = 100 * time.Millisecond
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = time.Minute
	}
	return &KeyedExecutor{
		cfg:     cfg,
		workers: make(map[string]*worker),
		done:    make(chan struct{}),
	}
}

// Submit enqueues job on the worker for key, starting one if none is alive.
//
//   - Returns nil on success.
//   - Returns ErrExecutorClosed if the executor is stopped.
//   - Returns ErrQueueFull (wrapped in *QueueFullError) if the key's queue is
//     still full after EnqueueTimeout elapses.
//   - Returns ctx.Err() if the caller-provided context is cancelled first.
func (p *KeyedExecutor) Submit(ctx context.Context, key string, job Job) error {
	if atomic.LoadUint32(&p.closed) == 1 {
		return ErrExecutorClosed
	}

	qj := queuedJob{ctx: ctx, job: job}
	deadline := time.Now().Add(p.cfg.EnqueueTimeout)

	for {
		p.mu.Lock()
		if atomic.LoadUint32(&p.closed) == 1 {
			p.mu.Unlock()
			return ErrExecutorClosed
		}
		w, ok := p.workers[key]
		if !ok {
			w = &worker{ch: make(chan queuedJob, p.cfg.QueueSize)}
			p.workers[key] = w
			p.wg.Add(1)
			activeWorkers.Inc()
			go p.runWorker(key, w)
		}
		// Sends happen only under the mutex while the worker is still in the
		// map, so a reaped worker can never strand a job.
		select {
		case w.ch <- qj:
			p.mu.Unlock()
			submissionsTotal.Inc()
			return nil
		default:
		}
		length, capacity := len(w.ch), cap(w.ch)
		p.mu.Unlock()

		if time.Now().After(deadline) {
			queueFullTotal.Inc()
			return &QueueFullError{Key: key, Length: length, Capacity: capacity}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.done:
			return ErrExecutorClosed
		case <-time.After(submitPollInterval):
		}
	}
}

// Barrier enqueues a no-op job for key and waits until it runs, ensuring all
// previously submitted jobs for that key have completed.
func (p *KeyedExecutor) Barrier(ctx context.Context, key string) error {
	done := make(chan struct{})
	j := JobFunc(func(context.Context) error {
		close(done)
		return nil
	})
	if err := p.Submit(ctx, key, j); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// ActiveWorkers reports how many per-key workers are currently alive.
func (p *KeyedExecutor) ActiveWorkers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// Stop signals every worker to finish draining its queue, waits for them to
// terminate, and then returns. It is idempotent and safe for concurrent use.
func (p *KeyedExecutor) Stop() {
	if !atomic.CompareAndSwapUint32(&p.closed, 0, 1) {
		return // already closed
	}
	close(p.done)
	p.wg.Wait()
}

// Close lets KeyedExecutor satisfy io.Closer.
func (p *KeyedExecutor) Close() error {
	p.Stop()
	return nil
}

// ------------------------- internals -------------------------

func (p *KeyedExecutor) runWorker(key string, w *worker) {
	defer p.wg.Done()

	idle := time.NewTimer(p.cfg.IdleTimeout)
	defer idle.Stop()

	for {
		select {
		case qj := <-w.ch:
			p.runJob(qj)
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(p.cfg.IdleTimeout)

		case <-idle.C:
			// Exit only when the queue is verifiably empty under the mutex;
			// Submit sends under the same mutex, so no job can slip in
			// between the check and the removal.
			p.mu.Lock()
			select {
			case qj := <-w.ch:
				p.mu.Unlock()
				p.runJob(qj)
				idle.Reset(p.cfg.IdleTimeout)
			default:
				delete(p.workers, key)
				p.mu.Unlock()
				activeWorkers.Dec()
				return
			}

		case <-p.done:
			p.drainAndExit(key, w)
			return
		}
	}
}

// drainAndExit runs remaining jobs in FIFO order, then removes the worker.
func (p *KeyedExecutor) drainAndExit(key string, w *worker) {
	for {
		select {
		case qj := <-w.ch:
			p.runJob(qj)
			continue
		default:
		}
		p.mu.Lock()
		select {
		case qj := <-w.ch:
			p.mu.Unlock()
			p.runJob(qj)
		default:
			delete(p.workers, key)
			p.mu.Unlock()
			activeWorkers.Dec()
			return
		}
	}
}

func (p *KeyedExecutor) runJob(qj queuedJob) {
	if qj.job == nil {
		return
	}
	// A panicking job must not kill its worker; later jobs for the key would
	// queue forever against a dead goroutine.
	defer func() {
		if r := recover(); r != nil {
			p.safeHandleError(fmt.Errorf("job panic: %v", r))
		}
	}()

	// Honour caller context so a cancelled job doesn't stall the key.
	select {
	case <-qj.ctx.Done():
		p.safeHandleError(qj.ctx.Err())
		return
	default:
	}

	start := time.Now()
	err := qj.job.Run(qj.ctx)
	runDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		p.safeHandleError(err)
	}
}

func (p *KeyedExecutor) safeHandleError(err error) {
	if err == nil || p.cfg.ErrorHandler == nil {
		return
	}
	func() {
		// Guard against panics in the user-supplied handler.
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("workqueue: error handler panic")
			}
		}()
		p.cfg.ErrorHandler(err)
	}()
}
