package formz

// Request carries one field check through the processing pipeline.
// Middleware stages see the snapshot being validated and the full pool,
// and may inspect or amend the result after the checker terminal runs.
type Request struct {
	// Target is the snapshot being validated.
	Target Snapshot

	// Pool contains snapshots of every tracked field, in pool order.
	// The checker validates Target against this set.
	Pool []Snapshot

	// Result is populated by the checker terminal. It is the zero value
	// for middleware running before the terminal.
	Result Result
}
