package palette

import (
	"errors"
	"fmt"
)

var (
	// ErrActionsRequired indicates a Config without initial actions.
	ErrActionsRequired = errors.New("palette: config requires at least one action")
	// ErrActionIDRequired indicates a registered action with an empty id.
	ErrActionIDRequired = errors.New("palette: action id must not be empty")
	// ErrDuplicateActionID indicates repeated ids within one registration batch.
	ErrDuplicateActionID = errors.New("palette: action ids must be unique within a batch")
	// ErrParentNotFound indicates a parent reference that resolves neither in
	// the committed map nor in the current batch.
	ErrParentNotFound = errors.New("palette: parent action not found")
)

// ParentNotFoundError reports which child referenced which missing parent.
// The registration that produced it commits nothing.
type ParentNotFoundError struct {
	Parent ActionID
	Child  ActionID
}

func (e *ParentNotFoundError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("palette: action %q references missing parent %q", e.Child, e.Parent)
}

func (e *ParentNotFoundError) Unwrap() error {
	return ErrParentNotFound
}

// SelectionError captures selector engine metadata alongside the originating
// error.
type SelectionError struct {
	Engine string
	Source string
	Err    error
}

func (e *SelectionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("palette: %s selector %s: %v", e.Engine, describeSource(e.Source), e.Err)
}

func (e *SelectionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeSource(source string) string {
	if source == "" {
		return "source=<empty>"
	}
	return fmt.Sprintf("source=%q", source)
}

func wrapSelectionError(engine, source string, err error) error {
	if err == nil {
		return nil
	}

	var selErr *SelectionError
	if errors.As(err, &selErr) {
		if selErr.Engine == "" {
			selErr.Engine = engine
		}
		if selErr.Source == "" {
			selErr.Source = source
		}
		return selErr
	}

	return &SelectionError{
		Engine: engine,
		Source: source,
		Err:    err,
	}
}
