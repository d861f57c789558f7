package pageobject

import "fmt"

// Typed wrappers over the node's property table. Each dispatches
// through the bound property, so a user override fully replaces the
// default behavior here too.

// Text returns the node's trimmed visible text.
func (n *Node) Text() (string, error) {
	v, err := n.Get("text")
	if err != nil {
		return "", err
	}
	return asString(v, "text")
}

// IsVisible reports whether the node's element is present and visible.
func (n *Node) IsVisible() (bool, error) {
	v, err := n.Get("isVisible")
	if err != nil {
		return false, err
	}
	return asBool(v, "isVisible")
}

// IsHidden reports whether the node's element is present and hidden.
func (n *Node) IsHidden() (bool, error) {
	v, err := n.Get("isHidden")
	if err != nil {
		return false, err
	}
	return asBool(v, "isHidden")
}

// Contains reports whether the node's text contains the needle,
// case-sensitively.
func (n *Node) Contains(needle string) (bool, error) {
	v, err := n.Call("contains", needle)
	if err != nil {
		return false, err
	}
	return asBool(v, "contains")
}

// Click enqueues a click on the node's element.
func (n *Node) Click() *Pending {
	return n.pendingFrom(n.Call("click"))
}

// ClickOn enqueues a click on the descendant with exactly this visible
// text.
func (n *Node) ClickOn(text string) *Pending {
	return n.pendingFrom(n.Call("clickOn", text))
}

// FillIn enqueues a fill: FillIn(value) targets the node's element,
// FillIn(clue, value) targets a matching form-field descendant.
func (n *Node) FillIn(args ...string) *Pending {
	return n.pendingFrom(n.Call("fillIn", asAny(args)...))
}

// Select enqueues an option selection, with the same call shapes as
// FillIn.
func (n *Node) Select(args ...string) *Pending {
	return n.pendingFrom(n.Call("select", asAny(args)...))
}

// pendingFrom - adapts a property result to a chainable handle, so
// overrides that return something else still chain from this node
func (n *Node) pendingFrom(v any, err error) *Pending {
	if p, ok := v.(*Pending); ok && p != nil {
		return p
	}
	return &Pending{node: n, err: err}
}

func asString(v any, name string) (string, error) {
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: want string, property returned %T", name, v)
	}
	return s, nil
}

func asBool(v any, name string) (bool, error) {
	if v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s: want bool, property returned %T", name, v)
	}
	return b, nil
}

func asAny(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}
