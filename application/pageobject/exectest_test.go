package pageobject

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pageobject/domain/entities"
)

// fakeElement is one DOM element in the scripted page
type fakeElement struct {
	text    string
	visible bool
}

// fakeExec is a scripted in-memory execution context. The DOM is a map
// from resolved selector string to its matching elements, so tests
// exercise the exact selectors the composer produces. Mutations only
// happen when the pending queue drains, mirroring the settle contract.
type fakeExec struct {
	dom map[string][]*fakeElement

	// clickableTexts maps a scope selector to the visible texts of its
	// clickable descendants
	clickableTexts map[string][]string

	// clueFields maps "scope|clue" to the concrete field selector a
	// clue lookup resolves to
	clueFields map[string]string

	queue   []func(ctx context.Context) error
	settles int

	// op log, including anything touched during Build
	ops []string

	// onClick and onClickText mutate the scripted DOM
	onClick     func(selector string)
	onClickText func(scope, text string)
}

func newFakeExec() *fakeExec {
	return &fakeExec{
		dom:            map[string][]*fakeElement{},
		clickableTexts: map[string][]string{},
		clueFields:     map[string]string{},
	}
}

func (f *fakeExec) sel(q entities.Query) string {
	s := q.Selector
	if q.Container != "" {
		s = q.Container + " " + s
	}
	return strings.TrimSpace(s)
}

func (f *fakeExec) log(format string, args ...any) {
	f.ops = append(f.ops, fmt.Sprintf(format, args...))
}

func (f *fakeExec) Count(ctx context.Context, q entities.Query) (int, error) {
	f.log("count %s", f.sel(q))
	return len(f.dom[f.sel(q)]), nil
}

func (f *fakeExec) AssertExists(ctx context.Context, q entities.Query) error {
	f.log("assert %s", f.sel(q))
	els := f.dom[f.sel(q)]
	idx := 0
	if q.At != nil {
		idx = *q.At
	}
	if idx >= len(els) {
		return fmt.Errorf("%w: %s", entities.ErrElementNotFound, f.sel(q))
	}
	return nil
}

func (f *fakeExec) AssertTextExists(ctx context.Context, q entities.Query, text string) error {
	f.log("assertText %s %q", f.sel(q), text)
	for _, t := range f.clickableTexts[f.sel(q)] {
		if t == text {
			return nil
		}
	}
	return fmt.Errorf("%w: text %q within %s", entities.ErrElementNotFound, text, f.sel(q))
}

func (f *fakeExec) FindByClue(ctx context.Context, q entities.Query, clue string) (entities.Query, error) {
	f.log("clue %s %q", f.sel(q), clue)
	field, ok := f.clueFields[f.sel(q)+"|"+clue]
	if !ok {
		return entities.Query{}, fmt.Errorf("%w: clue %q within %s", entities.ErrElementNotFound, clue, f.sel(q))
	}
	return entities.Query{Selector: field}, nil
}

func (f *fakeExec) element(q entities.Query) (*fakeElement, error) {
	els := f.dom[f.sel(q)]
	idx := 0
	if q.At != nil {
		idx = *q.At
	}
	if idx >= len(els) {
		return nil, fmt.Errorf("%w: %s", entities.ErrElementNotFound, f.sel(q))
	}
	return els[idx], nil
}

func (f *fakeExec) Text(ctx context.Context, q entities.Query) (string, error) {
	f.log("text %s", f.sel(q))
	el, err := f.element(q)
	if err != nil {
		return "", err
	}
	return el.text, nil
}

func (f *fakeExec) IsVisible(ctx context.Context, q entities.Query) (bool, error) {
	f.log("visible %s", f.sel(q))
	el, err := f.element(q)
	if err != nil {
		return false, err
	}
	return el.visible, nil
}

func (f *fakeExec) Click(ctx context.Context, q entities.Query) error {
	f.log("click %s", f.sel(q))
	if f.onClick != nil {
		f.onClick(f.sel(q))
	}
	return nil
}

func (f *fakeExec) ClickText(ctx context.Context, q entities.Query, text string) error {
	f.log("clickText %s %q", f.sel(q), text)
	if f.onClickText != nil {
		f.onClickText(f.sel(q), text)
	}
	return nil
}

func (f *fakeExec) Fill(ctx context.Context, q entities.Query, value string) error {
	f.log("fill %s = %q", f.sel(q), value)
	if els := f.dom[f.sel(q)]; len(els) > 0 {
		els[0].text = value
	}
	return nil
}

func (f *fakeExec) SelectOption(ctx context.Context, q entities.Query, value string) error {
	f.log("select %s = %q", f.sel(q), value)
	if els := f.dom[f.sel(q)]; len(els) > 0 {
		els[0].text = value
	}
	return nil
}

func (f *fakeExec) Enqueue(op func(ctx context.Context) error) {
	f.queue = append(f.queue, op)
}

func (f *fakeExec) Settle(ctx context.Context) error {
	f.settles++
	var errs []error
	for len(f.queue) > 0 {
		op := f.queue[0]
		f.queue = f.queue[1:]
		if err := op(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
