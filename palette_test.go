package palette

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-palette/pkg/event"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	store, err := New(Config{
		Actions: []Action{
			{ID: "file", Payload: "File"},
			{ID: "file.open", Parent: "file", Payload: "Open File"},
			{ID: "theme", Payload: "Theme"},
		},
	}, opts...)
	if err != nil {
		t.Fatalf("unexpected error constructing store: %v", err)
	}
	return store
}

func TestNewRequiresActions(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrActionsRequired) {
		t.Fatalf("expected ErrActionsRequired, got %v", err)
	}
}

func TestNewSeedsInitialState(t *testing.T) {
	store := newTestStore(t)

	state := store.GetState()
	if state.SearchQuery != "" {
		t.Fatalf("expected empty search query, got %q", state.SearchQuery)
	}
	if state.CurrentRootActionID != nil {
		t.Fatalf("expected nil current root, got %v", *state.CurrentRootActionID)
	}
	if state.VisualState != VisualStateHidden {
		t.Fatalf("expected hidden visual state, got %q", state.VisualState)
	}
	if len(state.Actions) != 3 {
		t.Fatalf("expected 3 registered actions, got %d", len(state.Actions))
	}
	if children := state.Actions["file"].Children; len(children) != 1 || children[0] != "file.open" {
		t.Fatalf("expected file to own file.open, got %v", children)
	}
}

func TestNewAppliesAnimationDefaults(t *testing.T) {
	store := newTestStore(t)
	if got := store.Options().Animations; got.EnterMs != 200 || got.ExitMs != 100 {
		t.Fatalf("expected default animations 200/100, got %+v", got)
	}

	store, err := New(Config{
		Actions: []Action{{ID: "root"}},
		Options: Options{Animations: Animations{EnterMs: 350}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.Options().Animations; got.EnterMs != 350 || got.ExitMs != 100 {
		t.Fatalf("expected partial override 350/100, got %+v", got)
	}
}

func TestOptionsReturnsDetachedCopy(t *testing.T) {
	store, err := New(Config{
		Actions: []Action{{ID: "root"}},
		Options: Options{Extra: map[string]any{"placeholder": "Type a command"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := store.Options()
	first.Extra["placeholder"] = "mutated"
	if got := store.Options().Extra["placeholder"]; got != "Type a command" {
		t.Fatalf("expected stored options to be isolated from caller mutation, got %v", got)
	}
}

func TestToggleTransitions(t *testing.T) {
	cases := []struct {
		from VisualState
		want VisualState
	}{
		{VisualStateHidden, VisualStateAnimatingIn},
		{VisualStateAnimatingOut, VisualStateAnimatingIn},
		{VisualStateAnimatingIn, VisualStateAnimatingOut},
		{VisualStateShowing, VisualStateAnimatingOut},
	}

	for _, tc := range cases {
		t.Run(string(tc.from), func(t *testing.T) {
			store := newTestStore(t)
			store.SetVisualState(ToVisualState(tc.from))
			store.Toggle()
			if got := store.GetState().VisualState; got != tc.want {
				t.Fatalf("toggle from %q: expected %q, got %q", tc.from, tc.want, got)
			}
		})
	}
}

func TestSetCurrentRootActionCopiesPointer(t *testing.T) {
	store := newTestStore(t)

	id := ActionID("file")
	store.SetCurrentRootAction(&id)
	id = "mutated"

	got := store.GetState().CurrentRootActionID
	if got == nil || *got != "file" {
		t.Fatalf("expected snapshot root to stay %q, got %v", "file", got)
	}

	store.SetCurrentRootAction(nil)
	if got := store.GetState().CurrentRootActionID; got != nil {
		t.Fatalf("expected nil root after reset, got %v", *got)
	}
}

func TestSearchRootVisualFlow(t *testing.T) {
	store := newTestStore(t)

	var queries []string
	unsubscribe := store.Subscribe(SelectorFunc(func(s State) any {
		return s.SearchQuery
	}), func(v any) {
		queries = append(queries, v.(string))
	})
	defer unsubscribe()

	store.SetSearch("op")
	store.Toggle()
	store.SetSearch("open")

	if len(queries) != 2 || queries[0] != "op" || queries[1] != "open" {
		t.Fatalf("expected query deliveries [op open], got %v", queries)
	}
}

func TestHooksObserveTransitions(t *testing.T) {
	var events []event.Event
	hook := event.HookFunc(func(_ context.Context, ev event.Event) error {
		events = append(events, ev)
		return nil
	})

	store := newTestStore(t, WithHooks(hook))
	store.SetSearch("theme")
	batch, err := store.RegisterActions(Action{ID: "theme.dark", Parent: "theme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.UnregisterActions(batch)

	// One register event from construction plus the three transitions above.
	if len(events) != 4 {
		t.Fatalf("expected 4 hook events, got %d", len(events))
	}
	if events[0].Type != event.TypeRegister || len(events[0].ActionIDs) != 3 {
		t.Fatalf("unexpected construction event: %+v", events[0])
	}
	if events[1].Type != event.TypeSearch || events[1].Query != "theme" {
		t.Fatalf("unexpected search event: %+v", events[1])
	}
	if events[2].Type != event.TypeRegister || events[2].BatchID != batch.ID {
		t.Fatalf("unexpected register event: %+v", events[2])
	}
	if events[3].Type != event.TypeUnregister || events[3].BatchID != batch.ID {
		t.Fatalf("unexpected unregister event: %+v", events[3])
	}
}

func TestHookErrorsDoNotAbortNotification(t *testing.T) {
	var logged []NotifyLogEvent
	logger := NotifyLoggerFunc(func(ev NotifyLogEvent) {
		logged = append(logged, ev)
	})
	failing := event.HookFunc(func(context.Context, event.Event) error {
		return errors.New("sink offline")
	})

	store := newTestStore(t, WithHooks(failing), WithNotifyLogger(logger))

	fired := false
	defer store.Subscribe(SelectorFunc(func(s State) any {
		return s.SearchQuery
	}), func(any) {
		fired = true
	})()

	store.SetSearch("x")
	if !fired {
		t.Fatalf("expected subscriber to fire despite hook failure")
	}
	if len(logged) == 0 {
		t.Fatalf("expected hook failure to be logged")
	}
}

func TestDecodeExtra(t *testing.T) {
	type hostExtras struct {
		Placeholder string `json:"placeholder"`
		MaxResults  int    `json:"maxResults"`
	}

	options := Options{Extra: map[string]any{
		"placeholder": "Run a command",
		"maxResults":  25,
	}}
	extras, err := DecodeExtra[hostExtras](options)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extras.Placeholder != "Run a command" || extras.MaxResults != 25 {
		t.Fatalf("unexpected decoded extras: %+v", extras)
	}

	options.Extra["unknown"] = true
	if _, err := DecodeExtra[hostExtras](options); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}
