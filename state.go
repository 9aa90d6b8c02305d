package formz

// State represents the round state of a Sentinel.
type State int32

const (
	// StateIdle indicates no validation round has been dispatched yet.
	StateIdle State = iota

	// StateDispatching indicates at least one round is in flight. A new
	// round entering before an earlier one settles keeps this state.
	StateDispatching

	// StateJoined indicates the most recent round has settled and no
	// rounds remain in flight.
	StateJoined
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDispatching:
		return "dispatching"
	case StateJoined:
		return "joined"
	default:
		return "unknown"
	}
}
