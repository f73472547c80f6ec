// Package event fans out palette state transitions to observer hooks.
package event

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Transition types reported through hooks.
const (
	TypeRegister     = "actions.register"
	TypeUnregister   = "actions.unregister"
	TypeSearch       = "query.search"
	TypeRootChange   = "query.root-change"
	TypeVisualChange = "query.visual-change"
)

// Event describes one committed state transition. Fields beyond Type are
// populated per transition kind; unrelated fields stay zero.
type Event struct {
	Type         string
	BatchID      string
	ActionIDs    []string
	Query        string
	RootActionID string
	VisualState  string
	OccurredAt   time.Time
}

// Hook receives normalized transition events.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc allows plain functions to satisfy Hook.
type HookFunc func(ctx context.Context, event Event) error

// Notify dispatches to the underlying function.
func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Hooks fans out events to zero or more hooks.
type Hooks []Hook

// Enabled reports whether there are any hooks to notify.
func (h Hooks) Enabled() bool {
	return len(h) > 0
}

// Notify forwards the event to all hooks, returning a joined error if any
// fail. It normalizes the event and short-circuits when the type is missing.
func (h Hooks) Notify(ctx context.Context, event Event) error {
	if len(h) == 0 {
		return nil
	}

	normalized := NormalizeEvent(event)
	if normalized.Type == "" {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// NormalizeEvent trims whitespace, clones the id list, and ensures a
// timestamp is present.
func NormalizeEvent(event Event) Event {
	normalized := event
	normalized.Type = strings.TrimSpace(event.Type)
	normalized.BatchID = strings.TrimSpace(event.BatchID)
	normalized.RootActionID = strings.TrimSpace(event.RootActionID)
	normalized.VisualState = strings.TrimSpace(event.VisualState)
	if len(event.ActionIDs) > 0 {
		normalized.ActionIDs = append([]string{}, event.ActionIDs...)
	} else {
		normalized.ActionIDs = nil
	}
	if normalized.OccurredAt.IsZero() {
		normalized.OccurredAt = time.Now()
	}
	return normalized
}
