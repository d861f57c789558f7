package pageobject

import (
	"context"
	"fmt"
	"strings"

	"pageobject/domain/entities"
	"pageobject/domain/interfaces"
)

// Built-in descriptor factories. Each takes the descriptor's own
// selector fragment plus optional resolution options and produces a
// descriptor that, once bound, resolves selector and context on every
// call.
//
// Match policy: when a resolved selector matches several elements and
// no index was given, the first match is used. Zero matches are an
// ErrElementNotFound only where an index makes the read strict.

// Text - computed accessor returning the trimmed visible text of the
// matched element
func Text(scope string, opts ...entities.Options) *Descriptor {
	o := pickOptions(opts)
	return &Descriptor{Kind: KindAccessor, Accessor: func(n *Node) (any, error) {
		q := n.resolve(scope, o)
		return n.runSync(func(ctx context.Context, e interfaces.Execution) (any, error) {
			return textOf(ctx, e, q)
		})
	}}
}

// IsVisible - computed accessor, true when at least one match is
// present and visible
func IsVisible(scope string, opts ...entities.Options) *Descriptor {
	o := pickOptions(opts)
	return &Descriptor{Kind: KindAccessor, Accessor: func(n *Node) (any, error) {
		q := n.resolve(scope, o)
		return n.runSync(func(ctx context.Context, e interfaces.Execution) (any, error) {
			cnt, err := e.Count(ctx, q)
			if err != nil {
				return false, err
			}
			if cnt == 0 || (q.At != nil && *q.At >= cnt) {
				return false, nil
			}
			return e.IsVisible(ctx, q)
		})
	}}
}

// IsHidden - computed accessor, true when a match is present and not
// visible, or when an index does not resolve to a visible element
func IsHidden(scope string, opts ...entities.Options) *Descriptor {
	o := pickOptions(opts)
	return &Descriptor{Kind: KindAccessor, Accessor: func(n *Node) (any, error) {
		q := n.resolve(scope, o)
		return n.runSync(func(ctx context.Context, e interfaces.Execution) (any, error) {
			cnt, err := e.Count(ctx, q)
			if err != nil {
				return false, err
			}
			if q.At != nil {
				if cnt == 0 || *q.At >= cnt {
					return true, nil
				}
			} else if cnt == 0 {
				return false, nil
			}
			visible, err := e.IsVisible(ctx, q)
			if err != nil {
				return false, err
			}
			return !visible, nil
		})
	}}
}

// Contains - method(needle), case-sensitive substring check against the
// matched element's trimmed text
func Contains(scope string, opts ...entities.Options) *Descriptor {
	o := pickOptions(opts)
	return &Descriptor{Kind: KindMethod, Method: func(n *Node, args ...any) (any, error) {
		needle, err := stringArg(args, 0, "contains")
		if err != nil {
			return false, err
		}
		q := n.resolve(scope, o)
		return n.runSync(func(ctx context.Context, e interfaces.Execution) (any, error) {
			text, err := textOf(ctx, e, q)
			if err != nil {
				return false, err
			}
			return strings.Contains(text, needle), nil
		})
	}}
}

// Clickable - method() clicking the matched element; existence is
// asserted before the click is enqueued
func Clickable(scope string, opts ...entities.Options) *Descriptor {
	o := pickOptions(opts)
	return &Descriptor{Kind: KindMethod, Method: func(n *Node, args ...any) (any, error) {
		q := n.resolve(scope, o)
		return n.runAsync(
			func(ctx context.Context, e interfaces.Execution) error {
				return e.AssertExists(ctx, q)
			},
			func(ctx context.Context, e interfaces.Execution) error {
				return e.Click(ctx, q)
			},
		), nil
	}}
}

// ClickOnText - method(text) clicking the first clickable descendant
// within the resolved scope whose visible text matches exactly
func ClickOnText(scope string, opts ...entities.Options) *Descriptor {
	o := pickOptions(opts)
	return &Descriptor{Kind: KindMethod, Method: func(n *Node, args ...any) (any, error) {
		text, err := stringArg(args, 0, "clickOn")
		if err != nil {
			return (*Pending)(nil), err
		}
		q := n.resolve(scope, o)
		return n.runAsync(
			func(ctx context.Context, e interfaces.Execution) error {
				return e.AssertTextExists(ctx, q, text)
			},
			func(ctx context.Context, e interfaces.Execution) error {
				return e.ClickText(ctx, q, text)
			},
		), nil
	}}
}

// Fillable - method(value) fills the matched element directly;
// method(clue, value) fills the first input, textarea or select
// descendant matching the clue, never the resolved element itself
func Fillable(scope string, opts ...entities.Options) *Descriptor {
	o := pickOptions(opts)
	return &Descriptor{Kind: KindMethod, Method: func(n *Node, args ...any) (any, error) {
		return fillWith(n, scope, o, args, func(ctx context.Context, e interfaces.Execution, q entities.Query, value string) error {
			return e.Fill(ctx, q, value)
		})
	}}
}

// Selectable - fill-style method choosing an option on a select
// element; supports the same value / clue+value call shapes as Fillable
func Selectable(scope string, opts ...entities.Options) *Descriptor {
	o := pickOptions(opts)
	return &Descriptor{Kind: KindMethod, Method: func(n *Node, args ...any) (any, error) {
		return fillWith(n, scope, o, args, func(ctx context.Context, e interfaces.Execution, q entities.Query, value string) error {
			return e.SelectOption(ctx, q, value)
		})
	}}
}

// Then - method exposing the host settle primitive for manual chaining
func Then() *Descriptor {
	return &Descriptor{Kind: KindMethod, Method: func(n *Node, args ...any) (any, error) {
		ctx := context.Background()
		if len(args) > 0 {
			if c, ok := args[0].(context.Context); ok {
				ctx = c
			}
		}
		return nil, n.Then(ctx)
	}}
}

// Value - plain value property
func Value(v any) *Descriptor {
	return &Descriptor{Kind: KindValue, Value: v}
}

// Accessor - custom computed property
func Accessor(fn func(n *Node) (any, error)) *Descriptor {
	return &Descriptor{Kind: KindAccessor, Accessor: fn}
}

// Method - custom method property
func Method(fn func(n *Node, args ...any) (any, error)) *Descriptor {
	return &Descriptor{Kind: KindMethod, Method: fn}
}

// defaultProps - the per-node default property table; injected for any
// name the user's definition does not override
func defaultProps() map[string]*Descriptor {
	return map[string]*Descriptor{
		"text":      Text(""),
		"isVisible": IsVisible(""),
		"isHidden":  IsHidden(""),
		"contains":  Contains(""),
		"clickOn":   ClickOnText(""),
		"click":     Clickable(""),
		"fillIn":    Fillable(""),
		"select":    Selectable(""),
		"then":      Then(),
	}
}

// fillWith - shared body of Fillable and Selectable. With two
// arguments the clue lookup is the assertion phase: it runs
// synchronously at enqueue time and only ever targets a descendant.
func fillWith(n *Node, scope string, o entities.Options, args []any, apply func(ctx context.Context, e interfaces.Execution, q entities.Query, value string) error) (*Pending, error) {
	q := n.resolve(scope, o)

	switch len(args) {
	case 1:
		value, err := stringArg(args, 0, "fillIn")
		if err != nil {
			return nil, err
		}
		return n.runAsync(
			func(ctx context.Context, e interfaces.Execution) error {
				return e.AssertExists(ctx, q)
			},
			func(ctx context.Context, e interfaces.Execution) error {
				return apply(ctx, e, q, value)
			},
		), nil
	case 2:
		clue, err := stringArg(args, 0, "fillIn")
		if err != nil {
			return nil, err
		}
		value, err := stringArg(args, 1, "fillIn")
		if err != nil {
			return nil, err
		}
		var target entities.Query
		return n.runAsync(
			func(ctx context.Context, e interfaces.Execution) error {
				found, err := e.FindByClue(ctx, q, clue)
				if err != nil {
					return err
				}
				target = found
				return nil
			},
			func(ctx context.Context, e interfaces.Execution) error {
				return apply(ctx, e, target, value)
			},
		), nil
	default:
		return nil, fmt.Errorf("fillIn: want (value) or (clue, value), got %d arguments", len(args))
	}
}

// textOf - strict-aware text read shared by text and contains
func textOf(ctx context.Context, e interfaces.Execution, q entities.Query) (string, error) {
	cnt, err := e.Count(ctx, q)
	if err != nil {
		return "", err
	}
	if q.At != nil && (cnt == 0 || *q.At >= cnt) {
		return "", notFound(q)
	}
	if cnt == 0 {
		return "", nil
	}
	text, err := e.Text(ctx, q)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func notFound(q entities.Query) error {
	if q.Key != "" {
		return fmt.Errorf("%w: %s (%s)", entities.ErrElementNotFound, q.Describe(), q.Key)
	}
	return fmt.Errorf("%w: %s", entities.ErrElementNotFound, q.Describe())
}

func pickOptions(opts []entities.Options) entities.Options {
	if len(opts) > 0 {
		return opts[0]
	}
	return entities.Options{}
}

func stringArg(args []any, i int, name string) (string, error) {
	if len(args) <= i {
		return "", fmt.Errorf("%s: missing argument %d", name, i)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("%s: argument %d must be a string, got %T", name, i, args[i])
	}
	return s, nil
}
