package pageobject

import (
	"strings"

	"pageobject/domain/entities"
)

// ancestorScope - collects selector fragments from the root down to n.
// A resetScope node along the path discards every fragment above it and
// becomes the new base.
func ancestorScope(n *Node) string {
	var frags []string
	for cur := n; cur != nil; cur = cur.parent {
		if cur.scope != "" {
			frags = append(frags, cur.scope)
		}
		if cur.reset {
			break
		}
	}

	// collected leaf-to-root, emit root-to-leaf
	for i, j := 0, len(frags)-1; i < j; i, j = i+1, j-1 {
		frags[i], frags[j] = frags[j], frags[i]
	}
	return strings.Join(frags, " ")
}

// joinSelectors - space-joins the non-empty parts
func joinSelectors(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// resolve - computes the effective query for a descriptor call on this
// node. An empty composed selector is valid and means "anything within
// the container".
func (n *Node) resolve(local string, opts entities.Options) entities.Query {
	base := n
	if opts.Scope != "" {
		if local == "" {
			// no descriptor-local fragment, so the override stands in
			// for the node's own selector rather than nesting under it
			base = n.parent
			if n.reset {
				base = nil
			}
		}
		local = opts.Scope
	}

	var selector string
	if opts.ResetScope {
		selector = local
	} else {
		selector = joinSelectors(ancestorScope(base), local)
	}

	q := entities.Query{
		Selector: selector,
		Key:      opts.PageObjectKey,
	}

	if opts.At != nil {
		q.At = opts.At
	} else {
		q.At = n.at
	}

	if opts.TestContainer != "" {
		q.Container = opts.TestContainer
	} else {
		q.Container = n.testContainer()
	}

	return q
}

// testContainer - nearest container override on this node or an ancestor
func (n *Node) testContainer() string {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.container != "" {
			return cur.container
		}
	}
	return ""
}

// Query returns the query this node's own selector resolves to,
// optionally adjusted by per-call options.
func (n *Node) Query(opts ...entities.Options) entities.Query {
	var o entities.Options
	if len(opts) > 0 {
		o = opts[0]
	}
	return n.resolve("", o)
}
