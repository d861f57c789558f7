package pageobject

import (
	"context"
	"fmt"
)

// Pending is the chainable handle returned by every enqueued action.
// The action itself sits on the execution context's pending queue; the
// handle supports navigating the tree and enqueuing further actions
// before anything settles. Actions chained through one handle run in
// call order; independent handles on the same context share its FIFO
// queue but carry no ordering promise of their own.
//
// The first error (assertion failure, unknown child) sticks to the
// handle and short-circuits everything chained after it; it surfaces
// from Err or Then.
type Pending struct {
	node *Node
	err  error
}

// Node returns the tree node the handle currently points at.
func (p *Pending) Node() *Node {
	return p.node
}

// Err returns the first error recorded on this chain, nil if none.
func (p *Pending) Err() error {
	return p.err
}

// Child navigates to the named child, keeping the chain.
func (p *Pending) Child(name string) *Pending {
	if p.err != nil {
		return p
	}
	child := p.node.Child(name)
	if child == nil {
		return &Pending{node: p.node, err: fmt.Errorf("no child %q on node %q", name, p.node.Key())}
	}
	return &Pending{node: child}
}

// Click enqueues a click on the current node.
func (p *Pending) Click() *Pending {
	if p.err != nil {
		return p
	}
	return p.node.Click()
}

// ClickOn enqueues a click by visible text on the current node.
func (p *Pending) ClickOn(text string) *Pending {
	if p.err != nil {
		return p
	}
	return p.node.ClickOn(text)
}

// FillIn enqueues a fill on the current node.
func (p *Pending) FillIn(args ...string) *Pending {
	if p.err != nil {
		return p
	}
	return p.node.FillIn(args...)
}

// Select enqueues an option selection on the current node.
func (p *Pending) Select(args ...string) *Pending {
	if p.err != nil {
		return p
	}
	return p.node.Select(args...)
}

// Then settles the execution context and returns the chain's first
// error, or the settlement result.
func (p *Pending) Then(ctx context.Context) error {
	if p.err != nil {
		return p.err
	}
	return p.node.Then(ctx)
}
