package formz

import "github.com/zoobzio/capitan"

// Field keys for formz events.
var (
	// KeyField is the identifier of the field an event concerns.
	KeyField = capitan.NewStringKey("field")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyRound is the sequence number of a validation round.
	KeyRound = capitan.NewIntKey("round")

	// KeyPending is the number of checks dispatched in a round.
	KeyPending = capitan.NewIntKey("pending")

	// KeyResults is the number of results in a joined round.
	KeyResults = capitan.NewIntKey("results")

	// KeyFields is the number of fields in a pool or schema.
	KeyFields = capitan.NewIntKey("fields")

	// KeyElapsed is the duration of a completed round.
	KeyElapsed = capitan.NewDurationKey("elapsed")

	// KeyDebounce is the configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")
)
