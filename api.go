// Package formz provides reactive input tracking and validation primitives.
//
// The core types are FieldState, an observable holder of one field's
// content, and Sentinel, which runs a host-supplied Checker over a pool of
// fields and aggregates the outcomes.
//
// # FieldState
//
// A FieldState broadcasts an immutable Snapshot on every content change.
// Subscribing replays the current snapshot immediately, so late subscribers
// always observe the present state:
//
//	name, _ := formz.NewFieldState(formz.Field{ID: "name", Required: true})
//	changes := name.Observe(ctx)
//	name.SetContent(ctx, "ada")
//
// # Sentinel
//
// A Sentinel wraps the host's Checker with a required-field short circuit
// and runs it through a pipz pipeline:
//
//	Snapshot → Required short-circuit → Middleware → Checker → Result
//
// A required field with empty content never reaches the checker; it yields
// the translated required error directly. Checker failures are data: they
// are folded into the Result's error text and never propagate as errors.
//
// # Batch and live validation
//
// CheckAll validates every field in a pool concurrently and joins the
// results into a Notification that preserves pool order. The Watch*
// methods recompute on every change of any pooled field:
//
//	sentinel := formz.NewSentinel(check)
//	filled := sentinel.WatchFilled(ctx, pool)    // live bool
//	missing := sentinel.WatchMissing(ctx, pool)  // live required-and-empty snapshots
//	results := sentinel.WatchResults(ctx, pool)  // live per-field results
//
// # State Machine
//
// Sentinel maintains one of three states:
//
//   - Idle: no round dispatched yet
//   - Dispatching: at least one round in flight
//   - Joined: the most recent round has settled
//
// # Example
//
//	check := func(ctx context.Context, target formz.Snapshot, pool []formz.Snapshot) (formz.Result, error) {
//	    if target.ID == "email" && !strings.Contains(target.Content, "@") {
//	        return formz.Result{Key: target.ID, Value: target.Content, Error: "invalid email"}, nil
//	    }
//	    return formz.Result{Key: target.ID, Value: target.Content}, nil
//	}
//
//	sentinel := formz.NewSentinel(check).Concurrency(4)
//	notification := sentinel.CheckAll(ctx, pool)
//	if notification.HasErrors() {
//	    // drive UI feedback from notification.Errors()
//	}
package formz

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
	"golang.org/x/sync/errgroup"
)

// Checker is the host-supplied validation callback. It validates the target
// snapshot against the full pool and returns a Result whose Error is empty
// on success. It may suspend (network lookups, slow IO); the library places
// no bound on its duration. Returning an error is equivalent to returning a
// Result carrying the error text.
//
// Checkers operate on snapshots, not live FieldStates, so concurrent edits
// cannot race with an in-flight check.
type Checker func(ctx context.Context, target Snapshot, pool []Snapshot) (Result, error)

// checkerID is the pipeline terminal name.
const checkerID pipz.Name = "checker"

// Sentinel runs a Checker over tracked fields, layering a required-field
// short circuit, ordered concurrent batch validation, and live recomputation
// streams on top of the single host-supplied check.
type Sentinel struct {
	pipeline   pipz.Chainable[*Request]
	translator Translator
	clock      clockz.Clock
	metrics    MetricsProvider
	debounce   time.Duration
	limit      int
	outBuffer  int
	throttle   float64
	history    *notificationRing

	state    atomic.Int32
	rounds   atomic.Int64
	inflight atomic.Int64
	latest   atomic.Pointer[Notification]
}

// NewSentinel creates a Sentinel around the host's checker.
//
// Pipeline options (With*) wrap the checker with middleware. Instance
// configuration uses chainable methods:
//
//	sentinel := formz.NewSentinel(
//	    check,
//	    formz.WithMiddleware(formz.UseEffect("log", logFn)),
//	).Concurrency(4).Debounce(50 * time.Millisecond)
func NewSentinel(check Checker, opts ...Option) *Sentinel {
	terminal := pipz.Apply(checkerID, func(ctx context.Context, req *Request) (*Request, error) {
		result, err := check(ctx, req.Target, req.Pool)
		if err != nil {
			return nil, err
		}
		req.Result = result
		return req, nil
	})

	s := &Sentinel{
		pipeline:   buildPipeline(terminal, opts),
		translator: DefaultTranslator,
		clock:      clockz.RealClock,
	}
	s.state.Store(int32(StateIdle))

	return s
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Translator sets the message-key lookup used for the required error text.
// Default: DefaultTranslator.
func (s *Sentinel) Translator(t Translator) *Sentinel {
	s.translator = t
	return s
}

// Clock sets a custom clock for time operations.
// Use this with clockz.FakeClock for deterministic debounce testing.
func (s *Sentinel) Clock(clock clockz.Clock) *Sentinel {
	s.clock = clock
	return s
}

// Debounce sets the debounce duration for the live watches. Changes
// arriving within this duration are coalesced into a single recomputation.
// Default: 0, meaning every change recomputes immediately.
func (s *Sentinel) Debounce(d time.Duration) *Sentinel {
	s.debounce = d
	return s
}

// Concurrency bounds the number of checks a round runs at once.
// Default: 0, meaning every field in a pool is checked concurrently.
func (s *Sentinel) Concurrency(n int) *Sentinel {
	s.limit = n
	return s
}

// Buffer adds a buffering stage of the given size to the WatchResults
// output stream, absorbing bursts from overlapping rounds.
func (s *Sentinel) Buffer(size int) *Sentinel {
	s.outBuffer = size
	return s
}

// Throttle caps the WatchResults output stream at the given number of
// results per second.
func (s *Sentinel) Throttle(perSecond float64) *Sentinel {
	s.throttle = perSecond
	return s
}

// Metrics sets a metrics provider for observability integration.
func (s *Sentinel) Metrics(provider MetricsProvider) *Sentinel {
	s.metrics = provider
	return s
}

// HistorySize sets the number of recent notifications to retain.
// When set, History() returns up to this many recent round outcomes.
// Use 0 (default) to only retain the most recent via Latest().
func (s *Sentinel) HistorySize(n int) *Sentinel {
	s.history = newNotificationRing(n)
	return s
}

// State returns the current round state of the Sentinel.
func (s *Sentinel) State() State {
	return State(s.state.Load())
}

// Rounds returns the number of rounds dispatched so far.
func (s *Sentinel) Rounds() int64 {
	return s.rounds.Load()
}

// Latest returns the most recently joined round's notification and true,
// or the zero value and false if no round has joined yet.
func (s *Sentinel) Latest() (Notification, bool) {
	ptr := s.latest.Load()
	if ptr == nil {
		return Notification{}, false
	}
	return *ptr, true
}

// History returns the recent round notifications, oldest first.
// Returns nil if history is not enabled (see HistorySize).
func (s *Sentinel) History() []Notification {
	return s.history.all()
}

// Check validates one snapshot against the pool. A required field with
// empty content short-circuits to the translated required error without
// invoking the checker pipeline; required-but-empty is invalid regardless
// of what the checker would say. Checker and pipeline failures are folded
// into the returned Result; Check never returns an error.
func (s *Sentinel) Check(ctx context.Context, target Snapshot, pool []Snapshot) Result {
	if target.MissingRequired() {
		capitan.Emit(ctx, CheckRequired,
			KeyField.Field(target.ID),
		)
		if s.metrics != nil {
			s.metrics.OnResult(target.ID, true)
		}
		return Result{Key: target.ID, Value: target.Content, Error: s.translator.Lookup(RequiredErrorKey)}
	}

	req := &Request{Target: target, Pool: pool}
	processed, err := s.pipeline.Process(ctx, req)
	if err != nil {
		capitan.Emit(ctx, CheckFailed,
			KeyField.Field(target.ID),
			KeyError.Field(err.Error()),
		)
		if s.metrics != nil {
			s.metrics.OnResult(target.ID, true)
		}
		return Result{Key: target.ID, Value: target.Content, Error: err.Error()}
	}

	result := processed.Result
	if result.Key == "" {
		result.Key = target.ID
	}
	if result.Value == "" {
		result.Value = target.Content
	}

	if result.HasError() {
		capitan.Emit(ctx, CheckFailed,
			KeyField.Field(result.Key),
			KeyError.Field(result.Error),
		)
	} else {
		capitan.Emit(ctx, CheckPassed,
			KeyField.Field(result.Key),
		)
	}
	if s.metrics != nil {
		s.metrics.OnResult(result.Key, result.HasError())
	}

	return result
}

// CheckAll validates every field in the pool concurrently and joins the
// results into a Notification preserving pool order, regardless of
// per-field completion timing. It returns only after every check settles.
func (s *Sentinel) CheckAll(ctx context.Context, pool *FieldSet) Notification {
	start := s.clock.Now()
	snaps := pool.Snapshots()
	round := s.rounds.Add(1)

	s.beginRound(ctx, round, len(snaps))

	results := make([]Result, len(snaps))
	var g errgroup.Group
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}
	for i, snap := range snaps {
		g.Go(func() error {
			results[i] = s.Check(ctx, snap, snaps)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // Per-field failures are carried as Results

	notification := NewNotification(results...)
	s.endRound(ctx, round, notification, s.clock.Since(start))

	return notification
}

// beginRound tracks dispatch and transitions to StateDispatching.
func (s *Sentinel) beginRound(ctx context.Context, round int64, pending int) {
	s.inflight.Add(1)
	s.transitionState(ctx, s.State(), StateDispatching)
	capitan.Emit(ctx, RoundDispatched,
		KeyRound.Field(int(round)),
		KeyPending.Field(pending),
	)
}

// endRound records the outcome and transitions to StateJoined once no
// rounds remain in flight.
func (s *Sentinel) endRound(ctx context.Context, round int64, n Notification, elapsed time.Duration) {
	s.latest.Store(&n)
	s.history.push(n)

	if s.inflight.Add(-1) == 0 {
		s.transitionState(ctx, s.State(), StateJoined)
	}
	capitan.Emit(ctx, RoundJoined,
		KeyRound.Field(int(round)),
		KeyResults.Field(n.Len()),
		KeyElapsed.Field(elapsed),
	)
	if s.metrics != nil {
		s.metrics.OnRoundComplete(n.Len(), elapsed)
	}
}

// transitionState updates the state and emits a state change event if changed.
func (s *Sentinel) transitionState(ctx context.Context, oldState, newState State) {
	if oldState == newState {
		return
	}
	s.state.Store(int32(newState))
	capitan.Emit(ctx, StateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
	if s.metrics != nil {
		s.metrics.OnStateChange(oldState, newState)
	}
}
