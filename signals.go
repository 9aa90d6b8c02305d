package formz

import "github.com/zoobzio/capitan"

// Field lifecycle signals.
var (
	// FieldChanged is emitted when a field's content is replaced.
	FieldChanged = capitan.NewSignal(
		"formz.field.changed",
		"Field content changed",
	)

	// FieldObserved is emitted when a subscriber attaches to a field's
	// change stream.
	FieldObserved = capitan.NewSignal(
		"formz.field.observed",
		"Subscriber attached to field stream",
	)
)

// Check signals.
var (
	// CheckRequired is emitted when a required-but-empty field
	// short-circuits past the checker.
	CheckRequired = capitan.NewSignal(
		"formz.check.required",
		"Required field empty, checker skipped",
	)

	// CheckFailed is emitted when a check produces an error result.
	CheckFailed = capitan.NewSignal(
		"formz.check.failed",
		"Check produced an error",
	)

	// CheckPassed is emitted when a check succeeds.
	CheckPassed = capitan.NewSignal(
		"formz.check.passed",
		"Check succeeded",
	)
)

// Round and watch signals.
var (
	// RoundDispatched is emitted when a validation round begins.
	RoundDispatched = capitan.NewSignal(
		"formz.round.dispatched",
		"Validation round dispatched",
	)

	// RoundJoined is emitted when every check in a round has settled.
	RoundJoined = capitan.NewSignal(
		"formz.round.joined",
		"Validation round joined",
	)

	// StateChanged is emitted when a Sentinel transitions between states.
	StateChanged = capitan.NewSignal(
		"formz.state.changed",
		"Sentinel state transition",
	)

	// WatchStarted is emitted when a live watch begins.
	WatchStarted = capitan.NewSignal(
		"formz.watch.started",
		"Live watch started",
	)

	// WatchStopped is emitted when a live watch stops.
	WatchStopped = capitan.NewSignal(
		"formz.watch.stopped",
		"Live watch stopped",
	)
)

// Schema signals.
var (
	// SchemaLoaded is emitted when a schema document parses and validates.
	SchemaLoaded = capitan.NewSignal(
		"formz.schema.loaded",
		"Field schema parsed",
	)

	// SchemaRejected is emitted when a schema document fails to parse
	// or validate.
	SchemaRejected = capitan.NewSignal(
		"formz.schema.rejected",
		"Field schema rejected",
	)
)
