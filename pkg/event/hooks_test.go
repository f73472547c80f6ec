package event

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHooksNotifyFansOut(t *testing.T) {
	var first, second []Event
	hooks := Hooks{
		HookFunc(func(_ context.Context, ev Event) error {
			first = append(first, ev)
			return nil
		}),
		nil,
		HookFunc(func(_ context.Context, ev Event) error {
			second = append(second, ev)
			return nil
		}),
	}

	if err := hooks.Notify(context.Background(), Event{Type: TypeSearch, Query: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected both hooks notified, got %d/%d", len(first), len(second))
	}
}

func TestHooksNotifyJoinsErrors(t *testing.T) {
	errA := errors.New("sink a down")
	errB := errors.New("sink b down")
	hooks := Hooks{
		HookFunc(func(context.Context, Event) error { return errA }),
		HookFunc(func(context.Context, Event) error { return errB }),
	}

	err := hooks.Notify(context.Background(), Event{Type: TypeRegister})
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected joined error carrying both failures, got %v", err)
	}
}

func TestHooksNotifySkipsEmptyType(t *testing.T) {
	called := false
	hooks := Hooks{HookFunc(func(context.Context, Event) error {
		called = true
		return nil
	})}

	if err := hooks.Notify(context.Background(), Event{Type: "  "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("expected empty-type event to be dropped")
	}
}

func TestNormalizeEvent(t *testing.T) {
	ids := []string{"a", "b"}
	normalized := NormalizeEvent(Event{
		Type:      "  " + TypeUnregister + " ",
		ActionIDs: ids,
	})

	if normalized.Type != TypeUnregister {
		t.Fatalf("expected trimmed type, got %q", normalized.Type)
	}
	if normalized.OccurredAt.IsZero() {
		t.Fatalf("expected a default timestamp")
	}

	ids[0] = "mutated"
	if normalized.ActionIDs[0] != "a" {
		t.Fatalf("expected detached id list, got %v", normalized.ActionIDs)
	}
}

func TestNormalizeEventKeepsTimestamp(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	normalized := NormalizeEvent(Event{Type: TypeSearch, OccurredAt: at})
	if !normalized.OccurredAt.Equal(at) {
		t.Fatalf("expected explicit timestamp to survive, got %v", normalized.OccurredAt)
	}
}

func TestHooksEnabled(t *testing.T) {
	if (Hooks{}).Enabled() {
		t.Fatalf("expected empty hooks to be disabled")
	}
	if !(Hooks{HookFunc(nil)}).Enabled() {
		t.Fatalf("expected non-empty hooks to be enabled")
	}
}
