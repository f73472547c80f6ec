package palette

import (
	"github.com/goliatone/go-palette/pkg/event"
)

// ActionID uniquely identifies an action within the palette tree.
type ActionID string

// VisualState enumerates the open/close animation phases of the palette.
type VisualState string

const (
	// VisualStateHidden means the palette is fully closed.
	VisualStateHidden VisualState = "hidden"
	// VisualStateAnimatingIn means the palette is opening.
	VisualStateAnimatingIn VisualState = "animating-in"
	// VisualStateShowing means the palette is fully open.
	VisualStateShowing VisualState = "showing"
	// VisualStateAnimatingOut means the palette is closing.
	VisualStateAnimatingOut VisualState = "animating-out"
)

// Action is a named, optionally nested command entry. Payload carries the
// host's display data and is opaque to the store. Parent and Children are
// identifier references, never ownership pointers; the registry keeps both
// sides of the relation consistent on every commit.
type Action struct {
	ID       ActionID
	Payload  any
	Parent   ActionID
	Children []ActionID
}

// clone returns a copy with a detached Children slice. Payload is shared; the
// store treats it as immutable host data.
func (a Action) clone() Action {
	out := a
	if a.Children != nil {
		out.Children = append([]ActionID(nil), a.Children...)
	}
	return out
}

// State is the canonical snapshot. It is replaced wholesale on every
// transition and must be treated as read-only by callers; the Actions map is
// shared between snapshots that did not touch it.
type State struct {
	SearchQuery         string
	CurrentRootActionID *ActionID
	VisualState         VisualState
	Actions             map[ActionID]Action
}

// VisualStateUpdate is either a literal VisualState or a pure updater
// function, resolved against the committed value at transition time.
type VisualStateUpdate struct {
	value VisualState
	fn    func(VisualState) VisualState
}

// ToVisualState wraps a literal visual state.
func ToVisualState(v VisualState) VisualStateUpdate {
	return VisualStateUpdate{value: v}
}

// UpdateVisualState wraps an updater applied to the current visual state.
func UpdateVisualState(fn func(VisualState) VisualState) VisualStateUpdate {
	return VisualStateUpdate{fn: fn}
}

func (u VisualStateUpdate) resolve(old VisualState) VisualState {
	if u.fn != nil {
		return u.fn(old)
	}
	if u.value == "" {
		return old
	}
	return u.value
}

// Option configures a Store at construction.
type Option func(*storeConfig)

type storeConfig struct {
	logger NotifyLogger
	hooks  event.Hooks
	cache  SelectorCache
}

func applyOptions(opts []Option) storeConfig {
	cfg := storeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (c storeConfig) loggerOrNoop() NotifyLogger {
	if c.logger != nil {
		return c.logger
	}
	return noopNotifyLogger{}
}

// WithHooks attaches transition hooks notified after every commit.
func WithHooks(hooks ...event.Hook) Option {
	return func(cfg *storeConfig) {
		for _, hook := range hooks {
			if hook != nil {
				cfg.hooks = append(cfg.hooks, hook)
			}
		}
	}
}
