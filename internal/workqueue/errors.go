package workqueue

import (
	"errors"
	"fmt"
)

// ErrQueueFull reports transient back-pressure: the key's queue was full
// when Submit tried to enqueue a job.
var ErrQueueFull = errors.New("work queue full")

// ErrExecutorClosed reports a permanent condition: the executor has been
// stopped and will accept no further work.
var ErrExecutorClosed = errors.New("executor closed")

// QueueFullError carries diagnostics while satisfying errors.Is(_, ErrQueueFull).
type QueueFullError struct {
	Key      string
	Length   int // queue length at timeout
	Capacity int // cap(queue)
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("work queue for key %q full (len=%d cap=%d)", e.Key, e.Length, e.Capacity)
}

func (e *QueueFullError) Is(target error) bool { return target == ErrQueueFull }
