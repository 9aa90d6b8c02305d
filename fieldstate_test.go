package formz

import (
	"context"
	"testing"
	"time"
)

func recvSnapshot(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return Snapshot{}
	}
}

func TestFieldState_RejectsEmptyIdentifier(t *testing.T) {
	_, err := NewFieldState(Field{ID: ""})
	if err == nil {
		t.Fatal("expected error for empty identifier")
	}
}

func TestFieldState_ObserveReplaysCurrentValue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fs, err := NewFieldState(Field{ID: "name", Required: true})
	if err != nil {
		t.Fatalf("NewFieldState failed: %v", err)
	}

	// No edit has happened; the subscriber must still see the current
	// (empty) value immediately.
	ch := fs.Observe(ctx)
	snap := recvSnapshot(t, ch)

	if snap.ID != "name" {
		t.Errorf("expected id name, got %s", snap.ID)
	}
	if snap.Content != "" {
		t.Errorf("expected empty content, got %q", snap.Content)
	}
	if !snap.Required {
		t.Error("expected required snapshot")
	}
}

func TestFieldState_ObserveReplaysLatestToLateSubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fs, err := NewFieldState(Field{ID: "name"})
	if err != nil {
		t.Fatalf("NewFieldState failed: %v", err)
	}

	fs.SetContent(ctx, "ada")

	ch := fs.Observe(ctx)
	snap := recvSnapshot(t, ch)
	if snap.Content != "ada" {
		t.Errorf("expected ada, got %q", snap.Content)
	}
}

func TestFieldState_SetContentPublishesPostMutationValue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fs, err := NewFieldState(Field{ID: "name"})
	if err != nil {
		t.Fatalf("NewFieldState failed: %v", err)
	}

	ch := fs.Observe(ctx)
	recvSnapshot(t, ch) // replayed initial value

	fs.SetContent(ctx, "a")
	fs.SetContent(ctx, "b")
	fs.SetContent(ctx, "c")

	for _, want := range []string{"a", "b", "c"} {
		if got := recvSnapshot(t, ch).Content; got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestFieldState_IdenticalContentStillPublishes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fs, err := NewFieldState(Field{ID: "name"})
	if err != nil {
		t.Fatalf("NewFieldState failed: %v", err)
	}

	ch := fs.Observe(ctx)
	recvSnapshot(t, ch)

	fs.SetContent(ctx, "same")
	fs.SetContent(ctx, "same")

	first := recvSnapshot(t, ch)
	second := recvSnapshot(t, ch)
	if first.Content != "same" || second.Content != "same" {
		t.Errorf("expected two identical publishes, got %q and %q", first.Content, second.Content)
	}
}

func TestFieldState_SnapshotIsDecoupled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fs, err := NewFieldState(Field{ID: "name"})
	if err != nil {
		t.Fatalf("NewFieldState failed: %v", err)
	}
	fs.SetContent(ctx, "original")

	snap := fs.Snapshot()
	snap.Content = "mutated"

	if fs.Content() != "original" {
		t.Errorf("snapshot mutation leaked into state: %q", fs.Content())
	}
}

func TestFieldState_SubscribersReceiveInSubscriptionOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fs, err := NewFieldState(Field{ID: "name"})
	if err != nil {
		t.Fatalf("NewFieldState failed: %v", err)
	}

	first := fs.Observe(ctx)
	second := fs.Observe(ctx)
	recvSnapshot(t, first)
	recvSnapshot(t, second)

	fs.SetContent(ctx, "x")

	if got := recvSnapshot(t, first).Content; got != "x" {
		t.Errorf("first subscriber expected x, got %q", got)
	}
	if got := recvSnapshot(t, second).Content; got != "x" {
		t.Errorf("second subscriber expected x, got %q", got)
	}
}

func TestFieldState_CanceledSubscriberIsDropped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fs, err := NewFieldState(Field{ID: "name"})
	if err != nil {
		t.Fatalf("NewFieldState failed: %v", err)
	}

	subCtx, subCancel := context.WithCancel(ctx)
	ch := fs.Observe(subCtx)
	recvSnapshot(t, ch)
	subCancel()

	// Allow the drop goroutine to run
	time.Sleep(10 * time.Millisecond)

	// Publishing must not block on the dropped subscriber even once its
	// buffer would have filled.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < defaultObserveBuffer*2; i++ {
			fs.SetContent(ctx, "x")
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SetContent blocked on canceled subscriber")
	}
}

func TestFieldState_IdentityByIdentifier(t *testing.T) {
	a1, _ := NewFieldState(Field{ID: "a", Required: true})
	a2, _ := NewFieldState(Field{ID: "a", Required: false})
	b, _ := NewFieldState(Field{ID: "b"})

	if !a1.Is(a2) {
		t.Error("states with the same identifier must be the same logical field")
	}
	if a1.Is(b) {
		t.Error("states with different identifiers must differ")
	}
	if a1.Is(nil) {
		t.Error("nil is never the same field")
	}
}

func TestSnapshot_MissingRequired(t *testing.T) {
	if !(Snapshot{ID: "a", Required: true}).MissingRequired() {
		t.Error("required empty snapshot should be missing")
	}
	if (Snapshot{ID: "a", Required: true, Content: "x"}).MissingRequired() {
		t.Error("required filled snapshot should not be missing")
	}
	if (Snapshot{ID: "a"}).MissingRequired() {
		t.Error("optional empty snapshot should not be missing")
	}
}
