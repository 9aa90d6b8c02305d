package formz

import (
	"context"
	"fmt"
	"sync"
)

// FieldSet is an ordered pool of FieldStates with unique identifiers.
// The order given at construction is the order every aggregate operation
// reports results in.
type FieldSet struct {
	states []*FieldState
	byID   map[string]*FieldState
}

// NewFieldSet creates a FieldSet from the given states. Duplicate
// identifiers are rejected.
func NewFieldSet(states ...*FieldState) (*FieldSet, error) {
	byID := make(map[string]*FieldState, len(states))
	for _, fs := range states {
		if _, ok := byID[fs.ID()]; ok {
			return nil, fmt.Errorf("duplicate field identifier %q", fs.ID())
		}
		byID[fs.ID()] = fs
	}
	pool := make([]*FieldState, len(states))
	copy(pool, states)
	return &FieldSet{states: pool, byID: byID}, nil
}

// Len returns the number of fields in the set.
func (s *FieldSet) Len() int {
	return len(s.states)
}

// States returns the pooled states in pool order.
func (s *FieldSet) States() []*FieldState {
	out := make([]*FieldState, len(s.states))
	copy(out, s.states)
	return out
}

// Get returns the state for the given identifier.
func (s *FieldSet) Get(id string) (*FieldState, bool) {
	fs, ok := s.byID[id]
	return fs, ok
}

// Snapshots captures the current snapshot of every field, in pool order.
func (s *FieldSet) Snapshots() []Snapshot {
	out := make([]Snapshot, len(s.states))
	for i, fs := range s.states {
		out[i] = fs.Snapshot()
	}
	return out
}

// MissingRequired returns the snapshots of every field that is currently
// required and empty, in pool order.
func (s *FieldSet) MissingRequired() []Snapshot {
	var out []Snapshot
	for _, fs := range s.states {
		if snap := fs.Snapshot(); snap.MissingRequired() {
			out = append(out, snap)
		}
	}
	return out
}

// AllRequiredFilled reports whether no required field is currently empty.
func (s *FieldSet) AllRequiredFilled() bool {
	for _, fs := range s.states {
		if fs.Snapshot().MissingRequired() {
			return false
		}
	}
	return true
}

// Observe merges every field's change stream into a single channel. Each
// field contributes its replayed current snapshot immediately, then its
// subsequent changes. The merged channel closes once ctx is canceled and
// all forwarders have drained.
func (s *FieldSet) Observe(ctx context.Context) <-chan Snapshot {
	out := make(chan Snapshot)

	var wg sync.WaitGroup
	wg.Add(len(s.states))

	for _, fs := range s.states {
		ch := fs.Observe(ctx)
		go func(ch <-chan Snapshot) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case snap, ok := <-ch:
					if !ok {
						return
					}
					select {
					case out <- snap:
					case <-ctx.Done():
						return
					}
				}
			}
		}(ch)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
