package entities

// Options tunes how a descriptor resolves its selector
type Options struct {
	// Scope overrides the descriptor's own selector for this property
	Scope string

	// At narrows the match to the element at this zero-based index
	// among all elements matching the resolved selector
	At *int

	// ResetScope makes the local selector replace the ancestor scope
	// instead of narrowing within it
	ResetScope bool

	// TestContainer overrides the root container the query runs in
	TestContainer string

	// PageObjectKey labels the property in error messages
	PageObjectKey string
}

// Query is a fully resolved DOM query: the composed CSS selector plus
// the narrowing that string rewriting cannot express
type Query struct {
	Selector  string
	At        *int
	Container string
	Key       string
}

// Describe - renders the query for error messages
func (q Query) Describe() string {
	s := q.Selector
	if s == "" {
		s = "*"
	}
	if q.Container != "" {
		s = q.Container + " " + s
	}
	return s
}

// Int - returns a pointer to the given int, for Options.At
func Int(i int) *int {
	return &i
}
