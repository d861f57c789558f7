package pageobject

import (
	"fmt"
	"sort"

	"pageobject/domain/entities"
	"pageobject/domain/interfaces"
)

// Node is one point in a built page-object tree. The parent link is a
// back-reference used only for upward lookup during selector and
// context resolution; ownership flows strictly parent to child.
type Node struct {
	parent    *Node
	key       string
	scope     string
	reset     bool
	at        *int
	container string

	// exec is the explicitly attached execution context, nil if none;
	// resolution walks parent links at access time, never caches
	exec interfaces.Execution

	props    map[string]boundProp
	children map[string]*Node
}

// boundProp is a descriptor bound to its node
type boundProp struct {
	kind  Kind
	value any
	get   func() (any, error)
	call  func(args ...any) (any, error)
}

// Build compiles a definition into a live page-object tree. Building is
// deterministic and touches no DOM; selectors and contexts are resolved
// per accessor call, not here.
func Build(def *Definition) (*Node, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", entities.ErrInvalidDefinition)
	}
	if err := validate(def, ""); err != nil {
		return nil, err
	}
	root := &Node{}
	buildInto(root, def)
	return root, nil
}

// validate - walks the definition rejecting reserved or colliding slots
func validate(def *Definition, path string) error {
	for key, child := range def.Children {
		at := path + "." + key
		if key == "" {
			return fmt.Errorf("%w: empty child key at %q", entities.ErrInvalidDefinition, path)
		}
		if reservedKeys[key] {
			return fmt.Errorf("%w: %q is a reserved key", entities.ErrInvalidDefinition, at)
		}
		if child == nil {
			return fmt.Errorf("%w: nil child definition at %q", entities.ErrInvalidDefinition, at)
		}
		if _, dup := def.Props[key]; dup {
			return fmt.Errorf("%w: %q is both a child and a prop", entities.ErrInvalidDefinition, at)
		}
		if err := validate(child, at); err != nil {
			return err
		}
	}
	for name, d := range def.Props {
		at := path + "." + name
		if name == "" {
			return fmt.Errorf("%w: empty prop name at %q", entities.ErrInvalidDefinition, path)
		}
		if reservedKeys[name] {
			return fmt.Errorf("%w: %q is a reserved key", entities.ErrInvalidDefinition, at)
		}
		if d == nil {
			return fmt.Errorf("%w: nil descriptor at %q", entities.ErrInvalidDefinition, at)
		}
	}
	return nil
}

// buildInto - populates n from def. Shared by Build and Node.Render so
// that bound props always close over the node they live on.
func buildInto(n *Node, def *Definition) {
	n.scope = def.Scope
	n.reset = def.ResetScope
	n.at = def.At
	n.container = def.TestContainer
	if def.Context != nil {
		n.exec = def.Context
	}

	n.props = make(map[string]boundProp)
	for name, d := range def.Props {
		n.props[name] = bind(n, d)
	}
	for name, d := range defaultProps() {
		if _, overridden := n.props[name]; !overridden {
			n.props[name] = bind(n, d)
		}
	}

	n.children = make(map[string]*Node)
	for key, childDef := range def.Children {
		child := &Node{parent: n, key: key}
		buildInto(child, childDef)
		n.children[key] = child
	}
}

// bind - attaches a descriptor to a node, dispatching on the variant tag
func bind(n *Node, d *Descriptor) boundProp {
	switch d.Kind {
	case KindValue:
		return boundProp{kind: KindValue, value: d.Value}
	case KindAccessor:
		accessor := d.Accessor
		return boundProp{kind: KindAccessor, get: func() (any, error) {
			return accessor(n)
		}}
	case KindMethod:
		method := d.Method
		return boundProp{kind: KindMethod, call: func(args ...any) (any, error) {
			return method(n, args...)
		}}
	default:
		err := fmt.Errorf("%w: unknown descriptor kind %d", entities.ErrInvalidDefinition, d.Kind)
		return boundProp{kind: KindAccessor, get: func() (any, error) { return nil, err }}
	}
}

// Key returns the name this node is reachable under from its parent,
// empty for the root.
func (n *Node) Key() string {
	return n.key
}

// Parent returns the owning node, nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Child returns the named child node, or nil if the definition had no
// such key.
func (n *Node) Child(name string) *Node {
	return n.children[name]
}

// ChildKeys returns the node's child names in sorted order.
func (n *Node) ChildKeys() []string {
	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get evaluates the named value or accessor property.
func (n *Node) Get(name string) (any, error) {
	p, ok := n.props[name]
	if !ok {
		return nil, fmt.Errorf("no property %q on node %q", name, n.key)
	}
	switch p.kind {
	case KindValue:
		return p.value, nil
	case KindAccessor:
		return p.get()
	default:
		return nil, fmt.Errorf("property %q on node %q is a method, use Call", name, n.key)
	}
}

// Call invokes the named method property.
func (n *Node) Call(name string, args ...any) (any, error) {
	p, ok := n.props[name]
	if !ok {
		return nil, fmt.Errorf("no property %q on node %q", name, n.key)
	}
	if p.kind != KindMethod {
		return nil, fmt.Errorf("property %q on node %q is not a method, use Get", name, n.key)
	}
	return p.call(args...)
}
