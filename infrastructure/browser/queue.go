package browser

import (
	"context"
	"errors"
	"sync"
)

// actionQueue is the pending-action queue shared by the browser-backed
// execution contexts. Enqueue returns immediately; operations run in
// FIFO order when the queue is drained at settle time. There is no way
// to abort an operation once enqueued.
type actionQueue struct {
	mu  sync.Mutex
	ops []func(ctx context.Context) error
}

// push - appends an operation and returns immediately
func (a *actionQueue) push(op func(ctx context.Context) error) {
	a.mu.Lock()
	a.ops = append(a.ops, op)
	a.mu.Unlock()
}

// size - number of operations still pending
func (a *actionQueue) size() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.ops)
}

// drain - runs every pending operation in enqueue order. Operations
// pushed while draining run in the same pass. All failures are
// collected; a failed operation does not stop the ones behind it.
func (a *actionQueue) drain(ctx context.Context) error {
	var errs []error
	for {
		a.mu.Lock()
		if len(a.ops) == 0 {
			a.mu.Unlock()
			return errors.Join(errs...)
		}
		op := a.ops[0]
		a.ops = a.ops[1:]
		a.mu.Unlock()

		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			return errors.Join(errs...)
		}
		if err := op(ctx); err != nil {
			errs = append(errs, err)
		}
	}
}
