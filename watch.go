package formz

import (
	"context"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/streamz"
)

// WatchFilled emits, after every change of any pooled field, whether the
// pool currently has no required-and-empty field. The replayed snapshot
// each subscription starts with counts as a change, so the current answer
// is emitted once per field immediately; the answer is therefore correct
// before any edit happens.
//
// The channel closes when ctx is canceled.
func (s *Sentinel) WatchFilled(ctx context.Context, pool *FieldSet) <-chan bool {
	out := make(chan bool, defaultObserveBuffer)
	changes := pool.Observe(ctx)

	capitan.Emit(ctx, WatchStarted,
		KeyFields.Field(pool.Len()),
		KeyDebounce.Field(s.debounce),
	)

	go func() {
		defer close(out)
		defer capitan.Emit(ctx, WatchStopped,
			KeyFields.Field(pool.Len()),
		)

		s.drive(ctx, changes, func() {
			select {
			case out <- pool.AllRequiredFilled():
			case <-ctx.Done():
			}
		})
	}()

	return out
}

// WatchMissing emits, after every change of any pooled field, the snapshot
// of each field that is currently required and empty, in pool order. A
// change round with nothing missing emits nothing.
//
// The channel closes when ctx is canceled.
func (s *Sentinel) WatchMissing(ctx context.Context, pool *FieldSet) <-chan Snapshot {
	out := make(chan Snapshot, defaultObserveBuffer)
	changes := pool.Observe(ctx)

	capitan.Emit(ctx, WatchStarted,
		KeyFields.Field(pool.Len()),
		KeyDebounce.Field(s.debounce),
	)

	go func() {
		defer close(out)
		defer capitan.Emit(ctx, WatchStopped,
			KeyFields.Field(pool.Len()),
		)

		s.drive(ctx, changes, func() {
			for _, snap := range pool.MissingRequired() {
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		})
	}()

	return out
}

// WatchResults re-runs CheckAll on every change of any pooled field and
// emits each Result individually, supporting continuous UI feedback rather
// than one-shot confirmation.
//
// A new change does not cancel an in-flight round; overlapping rounds all
// run to completion and may settle out of order. Each round's results are
// emitted contiguously and in pool order, so consumers can window the
// stream by round; Latest() always holds the most recently joined round as
// an aggregate. Rapid edits therefore fan out unbounded concurrent rounds
// unless Debounce or Concurrency is configured.
//
// The channel closes when ctx is canceled and all in-flight rounds have
// drained.
func (s *Sentinel) WatchResults(ctx context.Context, pool *FieldSet) <-chan Result {
	out := make(chan Result, defaultObserveBuffer)
	changes := pool.Observe(ctx)

	capitan.Emit(ctx, WatchStarted,
		KeyFields.Field(pool.Len()),
		KeyDebounce.Field(s.debounce),
	)

	var (
		emitMu sync.Mutex
		rounds sync.WaitGroup
	)

	go func() {
		defer func() {
			rounds.Wait()
			close(out)
			capitan.Emit(ctx, WatchStopped,
				KeyFields.Field(pool.Len()),
			)
		}()

		s.drive(ctx, changes, func() {
			rounds.Add(1)
			go func() {
				defer rounds.Done()
				notification := s.CheckAll(ctx, pool)

				// Serialize emission so each round's results appear as
				// one contiguous block in pool order.
				emitMu.Lock()
				defer emitMu.Unlock()
				for _, result := range notification.Results() {
					select {
					case out <- result:
					case <-ctx.Done():
						return
					}
				}
			}()
		})
	}()

	stream := (<-chan Result)(out)
	if s.outBuffer > 0 {
		stream = streamz.NewBuffer[Result](s.outBuffer).Process(ctx, stream)
	}
	if s.throttle > 0 {
		stream = streamz.NewThrottle[Result](s.throttle, streamz.RealClock).Process(ctx, stream)
	}
	return stream
}

// drive invokes recompute for changes until ctx is canceled or the change
// stream closes. With no debounce configured, every emission recomputes
// immediately; otherwise changes are coalesced with the debounce timer.
func (s *Sentinel) drive(ctx context.Context, changes <-chan Snapshot, recompute func()) {
	if s.debounce <= 0 {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				if s.metrics != nil {
					s.metrics.OnFieldChanged()
				}
				recompute()
			}
		}
	}

	var (
		timer      clockz.Timer
		timerC     <-chan time.Time
		hasPending bool
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case _, ok := <-changes:
			if !ok {
				// Stream closed, recompute any pending change
				if hasPending {
					recompute()
				}
				return
			}

			if s.metrics != nil {
				s.metrics.OnFieldChanged()
			}
			hasPending = true

			// Reset or start debounce timer
			if timer == nil {
				timer = s.clock.NewTimer(s.debounce)
				timerC = timer.C()
			} else {
				if !timer.Stop() {
					select {
					case <-timerC:
					default:
					}
				}
				timer.Reset(s.debounce)
			}

		case <-timerC:
			// A fired one-shot timer is spent; the next change arms a
			// fresh one.
			timer = nil
			timerC = nil
			if hasPending {
				recompute()
				hasPending = false
			}
		}
	}
}
