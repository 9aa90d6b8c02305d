package formz

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key validation events.
type MetricsProvider interface {
	// OnStateChange is called when the sentinel transitions between states.
	OnStateChange(from, to State)

	// OnRoundComplete is called when a validation round joins.
	// Results is the number of checks in the round; duration is the time
	// from dispatch to join.
	OnRoundComplete(results int, duration time.Duration)

	// OnResult is called for each settled check. Failed reports whether
	// the result carries an error.
	OnResult(field string, failed bool)

	// OnFieldChanged is called when a live watch receives a field change.
	OnFieldChanged()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStateChange(_, _ State)               {}
func (NoOpMetricsProvider) OnRoundComplete(_ int, _ time.Duration) {}
func (NoOpMetricsProvider) OnResult(_ string, _ bool)              {}
func (NoOpMetricsProvider) OnFieldChanged()                        {}
