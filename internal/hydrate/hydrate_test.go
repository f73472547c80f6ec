package hydrate

import (
	"errors"
	"strings"
	"testing"
)

type settings struct {
	Placeholder string `json:"placeholder"`
	MaxResults  int    `json:"maxResults"`
}

func TestDecodeBasic(t *testing.T) {
	decoder := NewDecoder[settings]()
	got, err := decoder.Decode(strings.NewReader(`{"placeholder":"Run","maxResults":5}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Placeholder != "Run" || got.MaxResults != 5 {
		t.Fatalf("unexpected decode result: %+v", got)
	}
}

func TestDecodeDisallowUnknownFields(t *testing.T) {
	decoder := NewDecoder[settings](DisallowUnknownFields[settings]())
	if _, err := decoder.Decode(strings.NewReader(`{"placeholder":"Run","bogus":true}`)); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}

func TestDecodePostHookValidation(t *testing.T) {
	errNegative := errors.New("maxResults must be positive")
	decoder := NewDecoder[settings](WithPostHook(func(s *settings) error {
		if s.MaxResults < 0 {
			return errNegative
		}
		return nil
	}))

	if _, err := decoder.Decode(strings.NewReader(`{"maxResults":-1}`)); !errors.Is(err, errNegative) {
		t.Fatalf("expected post-hook error, got %v", err)
	}

	got, err := decoder.Decode(strings.NewReader(`{"maxResults":3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MaxResults != 3 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestDecodePostHookMutation(t *testing.T) {
	decoder := NewDecoder[settings](WithPostHook(func(s *settings) error {
		if s.Placeholder == "" {
			s.Placeholder = "Type a command"
		}
		return nil
	}))

	got, err := decoder.Decode(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Placeholder != "Type a command" {
		t.Fatalf("expected post-hook default, got %q", got.Placeholder)
	}
}
