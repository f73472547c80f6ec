package palette

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-palette/pkg/event"
)

// Batch is the explicit unregistration handle for one RegisterActions call.
// It captures exactly the ids of that call's input, never the whole map, so
// removal requests can be stored or replayed without hidden captured state.
type Batch struct {
	ID        string
	ActionIDs []ActionID
}

// RegisterActions merges a batch of actions into the committed tree.
//
// Parent references are validated in a read-only pass over both the committed
// map and the batch itself (a parent may arrive in the same call, in either
// order) before anything is copied or linked, so a missing parent rejects the
// whole call and leaves the committed state untouched. Ids already committed
// win over re-registrations; only genuinely new ids are added. Linking is
// idempotent: a parent's Children gains a child id at most once.
func (s *Store) RegisterActions(actions ...Action) (Batch, error) {
	batch := Batch{ID: uuid.NewString()}
	if len(actions) == 0 {
		return batch, nil
	}

	s.mu.Lock()
	cur := *s.state

	incoming := make(map[ActionID]Action, len(actions))
	ids := make([]ActionID, 0, len(actions))
	for _, action := range actions {
		if action.ID == "" {
			s.mu.Unlock()
			return Batch{}, ErrActionIDRequired
		}
		if _, dup := incoming[action.ID]; dup {
			s.mu.Unlock()
			return Batch{}, fmt.Errorf("%w: %s", ErrDuplicateActionID, action.ID)
		}
		incoming[action.ID] = action
		ids = append(ids, action.ID)
	}

	for _, action := range actions {
		if action.Parent == "" {
			continue
		}
		if _, ok := cur.Actions[action.Parent]; ok {
			continue
		}
		if _, ok := incoming[action.Parent]; ok {
			continue
		}
		s.mu.Unlock()
		return Batch{}, &ParentNotFoundError{Parent: action.Parent, Child: action.ID}
	}

	next := make(map[ActionID]Action, len(cur.Actions)+len(actions))
	for id, action := range cur.Actions {
		next[id] = action
	}
	for _, id := range ids {
		if _, exists := next[id]; exists {
			continue
		}
		next[id] = incoming[id].clone()
	}
	for _, action := range actions {
		if action.Parent == "" {
			continue
		}
		parent := next[action.Parent]
		if containsID(parent.Children, action.ID) {
			continue
		}
		parent = parent.clone()
		parent.Children = append(parent.Children, action.ID)
		next[action.Parent] = parent
	}

	cur.Actions = next
	s.state = &cur
	s.mu.Unlock()

	batch.ActionIDs = ids
	s.afterCommit(event.Event{
		Type:      event.TypeRegister,
		BatchID:   batch.ID,
		ActionIDs: actionIDStrings(ids),
	})
	return batch, nil
}

// UnregisterActions removes exactly the batch's ids from the committed map
// and detaches each from its parent's Children, looking the parent up fresh
// at unregistration time. Vanished parents are skipped silently; descendants
// of removed actions are orphaned, not removed. Calling it again with the
// same batch is a no-op.
func (s *Store) UnregisterActions(batch Batch) {
	if len(batch.ActionIDs) == 0 {
		return
	}

	s.mu.Lock()
	cur := *s.state

	next := make(map[ActionID]Action, len(cur.Actions))
	for id, action := range cur.Actions {
		next[id] = action
	}
	changed := false
	for _, id := range batch.ActionIDs {
		action, ok := next[id]
		if !ok {
			continue
		}
		if action.Parent != "" {
			if parent, ok := next[action.Parent]; ok && containsID(parent.Children, id) {
				parent = parent.clone()
				parent.Children = removeID(parent.Children, id)
				next[action.Parent] = parent
			}
		}
		delete(next, id)
		changed = true
	}

	if !changed {
		s.mu.Unlock()
		return
	}

	cur.Actions = next
	s.state = &cur
	s.mu.Unlock()

	s.afterCommit(event.Event{
		Type:      event.TypeUnregister,
		BatchID:   batch.ID,
		ActionIDs: actionIDStrings(batch.ActionIDs),
	})
}

func containsID(ids []ActionID, id ActionID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func removeID(ids []ActionID, id ActionID) []ActionID {
	out := make([]ActionID, 0, len(ids))
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func actionIDStrings(ids []ActionID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
