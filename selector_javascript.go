package palette

import (
	"fmt"

	"github.com/dop251/goja"
)

// JSSelectorOption configures a JS selector instance.
type JSSelectorOption func(*jsSelector)

// JSWithSelectorCache wires a SelectorCache into the JS selector.
func JSWithSelectorCache(cache SelectorCache) JSSelectorOption {
	return func(s *jsSelector) {
		s.cache = cache
	}
}

// jsSelector derives values using goja.
type jsSelector struct {
	source  string
	cache   SelectorCache
	program *goja.Program
}

// NewJSSelector constructs a Selector backed by goja. The source is a single
// JS expression evaluated against the snapshot binding.
func NewJSSelector(source string, opts ...JSSelectorOption) (Selector, error) {
	if source == "" {
		return nil, wrapSelectionError("js", source, fmt.Errorf("selector source must not be empty"))
	}
	s := &jsSelector{source: source}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *jsSelector) Label() string {
	return "js:" + s.source
}

func (s *jsSelector) Select(state State) (any, error) {
	program, err := s.loadOrCompile()
	if err != nil {
		return nil, err
	}
	vm := goja.New()
	for key, value := range stateBinding(state) {
		if err := vm.Set(key, value); err != nil {
			return nil, wrapSelectionError("js", s.source, err)
		}
	}
	value, err := vm.RunProgram(program)
	if err != nil {
		return nil, wrapSelectionError("js", s.source, err)
	}
	return value.Export(), nil
}

func (s *jsSelector) loadOrCompile() (*goja.Program, error) {
	if s.program != nil {
		return s.program, nil
	}
	if s.cache != nil {
		if cached, ok := s.cache.Get(s.source); ok {
			if program, ok := cached.(*goja.Program); ok {
				return program, nil
			}
		}
	}
	program, err := goja.Compile("", wrapJSExpression(s.source), false)
	if err != nil {
		return nil, wrapSelectionError("js", s.source, err)
	}
	if s.cache != nil {
		s.cache.Set(s.source, program)
	} else {
		s.program = program
	}
	return program, nil
}

func wrapJSExpression(source string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", source)
}
