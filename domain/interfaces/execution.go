package interfaces

import (
	"context"

	"pageobject/domain/entities"
)

// Execution defines the collaborator that runs DOM operations for a
// page-object tree. Implementations own the real DOM access and the
// pending-action queue; the library never touches the DOM directly.
//
// When a query matches more than one element and Query.At is nil,
// implementations use the first match.
type Execution interface {
	// AssertExists fails with ErrElementNotFound if the query has no match
	AssertExists(ctx context.Context, q entities.Query) error

	// AssertTextExists fails with ErrElementNotFound if no clickable
	// descendant within the query's scope has exactly this visible text
	AssertTextExists(ctx context.Context, q entities.Query, text string) error

	// FindByClue locates an input, textarea or select descendant matching
	// the clue against data-testid, aria-label, placeholder, name or id,
	// in that priority order, and returns its concrete query
	FindByClue(ctx context.Context, q entities.Query, clue string) (entities.Query, error)

	// Count returns the number of elements matching the query,
	// ignoring Query.At
	Count(ctx context.Context, q entities.Query) (int, error)

	// Text returns the visible text content of the matched element
	Text(ctx context.Context, q entities.Query) (string, error)

	// IsVisible reports whether the matched element is visible
	IsVisible(ctx context.Context, q entities.Query) (bool, error)

	// Click clicks the matched element
	Click(ctx context.Context, q entities.Query) error

	// ClickText clicks the first clickable descendant within the query's
	// scope whose visible text matches exactly
	ClickText(ctx context.Context, q entities.Query, text string) error

	// Fill fills the matched form field with the value; on a select
	// element it selects the option with that value
	Fill(ctx context.Context, q entities.Query, value string) error

	// SelectOption selects the option with the given value
	SelectOption(ctx context.Context, q entities.Query, value string) error

	// Enqueue appends an operation to the pending-action queue and
	// returns immediately; queued operations run in FIFO order
	Enqueue(op func(ctx context.Context) error)

	// Settle runs every pending operation to completion and then waits
	// for the page to go quiescent
	Settle(ctx context.Context) error
}

// Inspector is an optional extension for execution contexts that can
// enumerate the interactive elements within a scope
type Inspector interface {
	// Elements lists interactive elements within the query's scope
	Elements(ctx context.Context, q entities.Query) ([]entities.Element, error)
}
