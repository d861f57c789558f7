package pageobject

import (
	"pageobject/domain/entities"
	"pageobject/domain/interfaces"
)

// Kind tags a descriptor variant. The tree builder dispatches on this
// tag in a single switch; descriptors are never shape-inspected.
type Kind int

const (
	// KindValue is a plain value returned as-is
	KindValue Kind = iota

	// KindAccessor is computed on every access, without arguments
	KindAccessor

	// KindMethod is invoked with arguments
	KindMethod
)

// Descriptor specifies one property of a page-object node. Bound to a
// node at build time, its function receives that node and resolves the
// selector and execution context on demand, never earlier.
type Descriptor struct {
	Kind     Kind
	Value    any
	Accessor func(n *Node) (any, error)
	Method   func(n *Node, args ...any) (any, error)
}

// Definition describes one node of a page-object tree.
//
// Context is reserved: it is extracted at build time and attached to
// the built node, never treated as a child. A child or prop named
// "context" is rejected as ErrInvalidDefinition.
type Definition struct {
	// Scope is this node's local selector fragment
	Scope string

	// ResetScope discards every ancestor fragment above this node
	ResetScope bool

	// At narrows this node's queries to the Nth match, zero-based
	At *int

	// TestContainer overrides the root container for this subtree
	TestContainer string

	// Context attaches an execution context to the built node
	Context interfaces.Execution

	// Children are nested nodes, one per key
	Children map[string]*Definition

	// Props are user-supplied properties; a prop named after a default
	// property fully replaces that default
	Props map[string]*Descriptor
}

// reservedKeys are definition slots that can never hold a child or prop
var reservedKeys = map[string]bool{
	"context": true,
}

// Int - returns a pointer to the given int, for Definition.At
func Int(i int) *int {
	return entities.Int(i)
}
