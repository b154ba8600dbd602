package workqueue

import "context"

// Job is a unit of work executed by a KeyedExecutor.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a plain function to the Job interface.
type JobFunc func(ctx context.Context) error

func (f JobFunc) Run(ctx context.Context) error { return f(ctx) }
