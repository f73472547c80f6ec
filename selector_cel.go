package palette

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
)

// CELSelectorOption configures a CEL selector instance.
type CELSelectorOption func(*celSelector)

// CELWithSelectorCache wires a SelectorCache into the CEL selector.
func CELWithSelectorCache(cache SelectorCache) CELSelectorOption {
	return func(s *celSelector) {
		s.cache = cache
	}
}

type celProgram struct {
	env     *celgo.Env
	program celgo.Program
}

// celSelector derives values using cel-go.
type celSelector struct {
	source  string
	cache   SelectorCache
	bundle  *celProgram
}

// NewCELSelector constructs a Selector backed by cel-go.
func NewCELSelector(source string, opts ...CELSelectorOption) (Selector, error) {
	if source == "" {
		return nil, wrapSelectionError("cel", source, fmt.Errorf("selector source must not be empty"))
	}
	s := &celSelector{source: source}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *celSelector) Label() string {
	return "cel:" + s.source
}

func (s *celSelector) Select(state State) (any, error) {
	bundle, err := s.loadOrCompile()
	if err != nil {
		return nil, err
	}
	out, _, err := bundle.program.Eval(stateBinding(state))
	if err != nil {
		return nil, wrapSelectionError("cel", s.source, err)
	}
	return out.Value(), nil
}

func (s *celSelector) loadOrCompile() (*celProgram, error) {
	if s.bundle != nil {
		return s.bundle, nil
	}
	if s.cache != nil {
		if cached, ok := s.cache.Get(s.source); ok {
			if bundle, ok := cached.(*celProgram); ok {
				return bundle, nil
			}
		}
	}

	opts := make([]celgo.EnvOption, 0, len(bindingKeys))
	for _, key := range bindingKeys {
		opts = append(opts, celgo.Variable(key, celgo.DynType))
	}
	env, err := celgo.NewEnv(opts...)
	if err != nil {
		return nil, wrapSelectionError("cel", s.source, err)
	}
	ast, issues := env.Parse(s.source)
	if issues != nil && issues.Err() != nil {
		return nil, wrapSelectionError("cel", s.source, issues.Err())
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, wrapSelectionError("cel", s.source, issues.Err())
	}
	prg, err := env.Program(checked)
	if err != nil {
		return nil, wrapSelectionError("cel", s.source, err)
	}

	bundle := &celProgram{env: env, program: prg}
	if s.cache != nil {
		s.cache.Set(s.source, bundle)
	} else {
		s.bundle = bundle
	}
	return bundle, nil
}
