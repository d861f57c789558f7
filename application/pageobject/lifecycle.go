package pageobject

import (
	"fmt"

	"pageobject/domain/entities"
	"pageobject/domain/interfaces"
)

// SetContext attaches an execution context to this node. Resolution is
// dynamic, so every descendant built before this call sees the new
// context immediately. Attaching the same context twice is a no-op.
func (n *Node) SetContext(e interfaces.Execution) {
	n.exec = e
}

// RemoveContext detaches this node's execution context. Resolution
// falls back to the nearest ancestor with a context, then to the
// process-wide default.
func (n *Node) RemoveContext() {
	n.exec = nil
}

// Render rebuilds this node's subtree from a new definition, replacing
// children and properties in place. The parent link survives, and so
// does an attached context unless the new definition carries one.
func (n *Node) Render(def *Definition) error {
	if def == nil {
		return fmt.Errorf("%w: nil definition", entities.ErrInvalidDefinition)
	}
	if err := validate(def, n.key); err != nil {
		return err
	}
	exec := n.exec
	buildInto(n, def)
	if def.Context == nil {
		n.exec = exec
	}
	return nil
}
