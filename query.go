package palette

import (
	"github.com/goliatone/go-palette/pkg/event"
)

// SetSearch replaces the query text and notifies subscribers.
func (s *Store) SetSearch(query string) {
	s.mu.Lock()
	cur := *s.state
	cur.SearchQuery = query
	s.state = &cur
	s.mu.Unlock()

	s.afterCommit(event.Event{
		Type:  event.TypeSearch,
		Query: query,
	})
}

// SetCurrentRootAction scopes the palette to the subtree rooted at id. A nil
// id restores the global root. The pointed-to value is copied so later caller
// mutation cannot reach the snapshot.
func (s *Store) SetCurrentRootAction(id *ActionID) {
	var next *ActionID
	if id != nil {
		v := *id
		next = &v
	}

	s.mu.Lock()
	cur := *s.state
	cur.CurrentRootActionID = next
	s.state = &cur
	s.mu.Unlock()

	ev := event.Event{Type: event.TypeRootChange}
	if next != nil {
		ev.RootActionID = string(*next)
	}
	s.afterCommit(ev)
}

// SetVisualState applies a visual-state update, either a fixed value or a
// function of the current value, resolved against the snapshot under lock.
func (s *Store) SetVisualState(update VisualStateUpdate) {
	s.mu.Lock()
	cur := *s.state
	cur.VisualState = update.resolve(cur.VisualState)
	s.state = &cur
	s.mu.Unlock()

	s.afterCommit(event.Event{
		Type:        event.TypeVisualChange,
		VisualState: string(cur.VisualState),
	})
}

// Toggle flips the palette between its opening and closing motions: hidden or
// animating-out begins animating-in, anything else begins animating-out.
func (s *Store) Toggle() {
	s.SetVisualState(UpdateVisualState(toggleVisualState))
}

func toggleVisualState(old VisualState) VisualState {
	switch old {
	case VisualStateHidden, VisualStateAnimatingOut:
		return VisualStateAnimatingIn
	default:
		return VisualStateAnimatingOut
	}
}
