package formz

import (
	"context"
	"fmt"
	"sync"

	"github.com/zoobzio/capitan"
)

// defaultObserveBuffer is the per-subscriber channel capacity.
const defaultObserveBuffer = 16

// FieldState holds the live content of one field and broadcasts an
// immutable Snapshot to every subscriber on each change. Content starts
// empty and is mutated only via SetContent; the library itself never
// writes to it.
type FieldState struct {
	field Field

	mu      sync.Mutex
	content string
	subs    []*subscription
}

type subscription struct {
	ch   chan Snapshot
	done <-chan struct{}
}

// NewFieldState creates a FieldState for the given field. The field
// metadata is mandatory and immutable for the life of the state; an empty
// identifier is rejected rather than degraded around later.
func NewFieldState(field Field) (*FieldState, error) {
	if field.ID == "" {
		return nil, fmt.Errorf("field identifier must not be empty")
	}
	return &FieldState{field: field}, nil
}

// Field returns the immutable field descriptor.
func (f *FieldState) Field() Field {
	return f.field
}

// ID returns the field identifier.
func (f *FieldState) ID() string {
	return f.field.ID
}

// Required reports whether the field must be non-empty to count as filled.
func (f *FieldState) Required() bool {
	return f.field.Required
}

// Content returns the current content.
func (f *FieldState) Content() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content
}

// Empty reports whether the current content is empty.
func (f *FieldState) Empty() bool {
	return len(f.Content()) == 0
}

// Snapshot returns an immutable copy of the current state.
func (f *FieldState) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *FieldState) snapshotLocked() Snapshot {
	return Snapshot{
		ID:       f.field.ID,
		Content:  f.content,
		Required: f.field.Required,
	}
}

// Is reports whether other refers to the same logical field. Identity is
// the identifier alone; content does not participate.
func (f *FieldState) Is(other *FieldState) bool {
	return other != nil && f.field.Same(other.field)
}

// SetContent replaces the content and publishes the post-mutation snapshot
// to every subscriber in subscription order. Setting the value already held
// still publishes; there is no dedup suppression. Delivery to a subscriber
// blocks until the subscriber's buffer accepts the snapshot, its
// subscription ends, or ctx is canceled.
func (f *FieldState) SetContent(ctx context.Context, content string) {
	f.mu.Lock()
	f.content = content
	snap := f.snapshotLocked()
	subs := make([]*subscription, len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()

	capitan.Emit(ctx, FieldChanged,
		KeyField.Field(snap.ID),
	)

	for _, sub := range subs {
		select {
		case sub.ch <- snap:
		case <-sub.done:
		case <-ctx.Done():
			return
		}
	}
}

// Observe returns a channel that immediately yields the current snapshot,
// then every subsequent change, until ctx is canceled. The replayed initial
// value means late subscribers always see the present state, not just
// future edits.
//
// The channel is never closed by the FieldState; consumers should select
// on ctx alongside it.
func (f *FieldState) Observe(ctx context.Context) <-chan Snapshot {
	sub := &subscription{
		ch:   make(chan Snapshot, defaultObserveBuffer),
		done: ctx.Done(),
	}

	f.mu.Lock()
	sub.ch <- f.snapshotLocked()
	f.subs = append(f.subs, sub)
	f.mu.Unlock()

	capitan.Emit(ctx, FieldObserved,
		KeyField.Field(f.field.ID),
	)

	go func() {
		<-ctx.Done()
		f.drop(sub)
	}()

	return sub.ch
}

// drop removes a subscription. The channel is left open so a publish
// holding an older subscriber list cannot send on a closed channel.
func (f *FieldState) drop(sub *subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.subs {
		if s == sub {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			return
		}
	}
}
