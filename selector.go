package palette

import "fmt"

// Selector derives a scoped value from a state snapshot. Implementations must
// be pure over their input; the store invokes them once per committed
// transition.
type Selector interface {
	Select(state State) (any, error)
}

// SelectorFunc adapts a plain derivation function to Selector.
type SelectorFunc func(state State) any

// Select implements Selector.
func (f SelectorFunc) Select(state State) (any, error) {
	if f == nil {
		return nil, nil
	}
	return f(state), nil
}

// SelectorCache stores compiled selector programs keyed by source strings.
type SelectorCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithSelectorCache registers a program cache used by Store.SubscribeExpr.
func WithSelectorCache(cache SelectorCache) Option {
	return func(cfg *storeConfig) {
		cfg.cache = cache
	}
}

func selectorLabel(sel Selector) string {
	if sel == nil {
		return "unknown"
	}
	if labeled, ok := sel.(interface{ Label() string }); ok {
		return labeled.Label()
	}
	return fmt.Sprintf("%T", sel)
}

// stateBinding exposes a snapshot as the environment shared by all expression
// engines: searchQuery, currentRootActionId, visualState and actions.
func stateBinding(state State) map[string]any {
	actions := make(map[string]any, len(state.Actions))
	for id, action := range state.Actions {
		children := make([]any, len(action.Children))
		for i, child := range action.Children {
			children[i] = string(child)
		}
		actions[string(id)] = map[string]any{
			"id":       string(action.ID),
			"payload":  action.Payload,
			"parent":   string(action.Parent),
			"children": children,
		}
	}

	binding := map[string]any{
		"searchQuery": state.SearchQuery,
		"visualState": string(state.VisualState),
		"actions":     actions,
	}
	if state.CurrentRootActionID != nil {
		binding["currentRootActionId"] = string(*state.CurrentRootActionID)
	} else {
		binding["currentRootActionId"] = nil
	}
	return binding
}

// bindingKeys lists the environment names every engine declares.
var bindingKeys = []string{"searchQuery", "currentRootActionId", "visualState", "actions"}
