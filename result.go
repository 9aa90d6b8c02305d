package formz

// Result is the outcome of validating one field. An empty Error means the
// check passed. Results are plain values with no identity beyond their data.
type Result struct {
	// Key is the identifier of the validated field.
	Key string

	// Value is the content that was validated.
	Value string

	// Error is the failure message, or empty on success.
	Error string
}

// HasError reports whether the result carries an error message.
func (r Result) HasError() bool {
	return len(r.Error) > 0
}

// Notification is an immutable ordered aggregate of Results from one
// validation round. Insertion order is preserved and entries are never
// deduplicated by key; callers may intentionally validate a field twice.
type Notification struct {
	results []Result
}

// NewNotification builds a Notification from the given results,
// preserving their order.
func NewNotification(results ...Result) Notification {
	rs := make([]Result, len(results))
	copy(rs, results)
	return Notification{results: rs}
}

// Len returns the number of results held.
func (n Notification) Len() int {
	return len(n.results)
}

// Results returns a copy of the held results, in insertion order.
func (n Notification) Results() []Result {
	out := make([]Result, len(n.results))
	copy(out, n.results)
	return out
}

// HasErrors reports whether any held result carries an error.
func (n Notification) HasErrors() bool {
	for _, r := range n.results {
		if r.HasError() {
			return true
		}
	}
	return false
}

// MatchesError reports whether any held result's error equals text.
func (n Notification) MatchesError(text string) bool {
	for _, r := range n.results {
		if r.Error == text {
			return true
		}
	}
	return false
}

// Errors returns the subset of results that carry an error, in order.
func (n Notification) Errors() Notification {
	var out []Result
	for _, r := range n.results {
		if r.HasError() {
			out = append(out, r)
		}
	}
	return Notification{results: out}
}

// Valid returns the subset of results without an error, in order.
func (n Notification) Valid() Notification {
	var out []Result
	for _, r := range n.results {
		if !r.HasError() {
			out = append(out, r)
		}
	}
	return Notification{results: out}
}
