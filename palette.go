// Package palette implements the state core of a command palette: a single
// immutable-snapshot state container, a selector-scoped publisher that only
// fires callbacks when derived values structurally change, and a dynamically
// mutable action-tree registry with batch-scoped unregistration.
package palette

import (
	"context"
	"sync"

	"github.com/goliatone/go-palette/layering"
	"github.com/goliatone/go-palette/pkg/event"
)

// Store owns the committed snapshot and coordinates transitions, publication,
// and the action registry. All mutating operations commit a fresh snapshot
// and then notify once, so subscribers always observe the committed value.
type Store struct {
	mu        sync.RWMutex
	state     *State
	publisher *Publisher
	options   Options
	cfg       storeConfig
}

// New constructs a Store from the given config. At least one action is
// required; construction fails otherwise. Unset animation durations fall back
// to the defaults, merged once at construction.
func New(cfg Config, opts ...Option) (*Store, error) {
	if len(cfg.Actions) == 0 {
		return nil, ErrActionsRequired
	}

	s := &Store{
		state: &State{
			VisualState: VisualStateHidden,
			Actions:     map[ActionID]Action{},
		},
		options: layering.MergeLayers(cfg.Options, defaultOptions()),
		cfg:     applyOptions(opts),
	}
	s.cfg.logger = s.cfg.loggerOrNoop()
	s.publisher = NewPublisher(s.GetState, s.cfg.logger)

	if _, err := s.RegisterActions(cfg.Actions...); err != nil {
		return nil, err
	}
	return s, nil
}

// GetState returns a copy of the committed snapshot. The Actions map is
// shared copy-on-write with the store; treat it as read-only.
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.state
}

// Options returns a deep copy of the resolved construction options.
func (s *Store) Options() Options {
	return layering.Clone(s.options)
}

// Subscribe registers a selector/callback pair and returns an unsubscribe
// function. The callback fires only when the derived value structurally
// differs from the last one delivered; the first matching transition always
// fires because no prior value exists yet.
func (s *Store) Subscribe(selector Selector, onChange func(any)) func() {
	sub := s.publisher.Subscribe(selector, onChange)
	return func() {
		s.publisher.Unsubscribe(sub)
	}
}

// SubscribeExpr is a convenience that compiles src as an expr selector wired
// to the store's selector cache, then subscribes it.
func (s *Store) SubscribeExpr(src string, onChange func(any)) (func(), error) {
	var opts []ExprSelectorOption
	if s.cfg.cache != nil {
		opts = append(opts, ExprWithSelectorCache(s.cfg.cache))
	}
	selector, err := NewExprSelector(src, opts...)
	if err != nil {
		return nil, err
	}
	return s.Subscribe(selector, onChange), nil
}

// afterCommit runs once per committed transition, after the new snapshot is
// visible through GetState: hooks first, then subscriber notification. Hook
// errors are logged and never abort notification.
func (s *Store) afterCommit(ev event.Event) {
	if len(s.cfg.hooks) > 0 {
		if err := s.cfg.hooks.Notify(context.Background(), ev); err != nil {
			s.cfg.logger.LogNotify(NotifyLogEvent{
				Selector: "hooks",
				Err:      err,
			})
		}
	}
	s.publisher.Notify()
}
