package pageobject

import (
	"context"
	"fmt"
	"sync"

	"pageobject/domain/entities"
	"pageobject/domain/interfaces"
)

// The process-wide default execution context. Explicit state: set once
// at process start (or per test run), overridable per tree through
// Node.SetContext, and read only through resolveExecution.
var (
	defaultMu   sync.RWMutex
	defaultExec interfaces.Execution
)

// SetDefaultExecution installs the process-wide default execution
// context used by every node without an attached context.
func SetDefaultExecution(e interfaces.Execution) {
	defaultMu.Lock()
	defaultExec = e
	defaultMu.Unlock()
}

// DefaultExecution returns the process-wide default, nil if never set.
func DefaultExecution() interfaces.Execution {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultExec
}

// resolveExecution - walks from n up through parent links to the
// nearest node with an attached context, falling back to the process
// default. The walk happens on every call, so re-attaching a context
// at the root is immediately visible to every descendant.
func (n *Node) resolveExecution() (interfaces.Execution, error) {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.exec != nil {
			return cur.exec, nil
		}
	}
	if e := DefaultExecution(); e != nil {
		return e, nil
	}
	return nil, fmt.Errorf("%w: attach one with SetContext or SetDefaultExecution", entities.ErrNoExecution)
}

// runSync - resolves the execution context and runs the operation
// directly. Used by predicates and queries; the result reflects the
// current DOM, so callers must have settled pending actions first.
func (n *Node) runSync(fn func(ctx context.Context, e interfaces.Execution) (any, error)) (any, error) {
	e, err := n.resolveExecution()
	if err != nil {
		return nil, err
	}
	return fn(context.Background(), e)
}

// runAsync - runs the assertion phase synchronously, enqueues the
// mutation on the resolved context's pending queue and returns a
// chainable handle immediately. An assertion failure is recorded on
// the handle and short-circuits everything chained after it.
func (n *Node) runAsync(assert func(ctx context.Context, e interfaces.Execution) error, op func(ctx context.Context, e interfaces.Execution) error) *Pending {
	e, err := n.resolveExecution()
	if err != nil {
		return &Pending{node: n, err: err}
	}
	if assert != nil {
		if err := assert(context.Background(), e); err != nil {
			return &Pending{node: n, err: err}
		}
	}
	e.Enqueue(func(ctx context.Context) error {
		return op(ctx, e)
	})
	return &Pending{node: n}
}

// Then settles the node's execution context: every enqueued action runs
// to completion and the page goes quiescent before Then returns.
func (n *Node) Then(ctx context.Context) error {
	e, err := n.resolveExecution()
	if err != nil {
		return err
	}
	return e.Settle(ctx)
}
