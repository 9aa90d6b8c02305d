package formz

import (
	"context"
	"testing"
)

func TestTagChecker_PassesValidContent(t *testing.T) {
	check := TagChecker(map[string]string{"email": "omitempty,email"})

	result, err := check(context.Background(), Snapshot{ID: "email", Content: "ada@example.com"}, nil)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.HasError() {
		t.Errorf("expected pass, got %q", result.Error)
	}
}

func TestTagChecker_FailsInvalidContent(t *testing.T) {
	check := TagChecker(map[string]string{"email": "omitempty,email"})

	result, err := check(context.Background(), Snapshot{ID: "email", Content: "not-an-email"}, nil)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !result.HasError() {
		t.Error("expected tag violation")
	}
	if result.Key != "email" || result.Value != "not-an-email" {
		t.Errorf("unexpected identity %q/%q", result.Key, result.Value)
	}
}

func TestTagChecker_UnlistedFieldAlwaysPasses(t *testing.T) {
	check := TagChecker(map[string]string{"email": "email"})

	result, err := check(context.Background(), Snapshot{ID: "other", Content: "anything"}, nil)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.HasError() {
		t.Errorf("expected pass for unlisted field, got %q", result.Error)
	}
}

func TestTagChecker_WithSentinelShortCircuit(t *testing.T) {
	ctx := context.Background()

	// The tag would pass the empty string, but required-ness wins.
	sentinel := NewSentinel(TagChecker(map[string]string{"email": "omitempty,email"}))

	result := sentinel.Check(ctx, Snapshot{ID: "email", Required: true}, nil)
	if result.Error != "required" {
		t.Errorf("expected required error, got %q", result.Error)
	}
}
