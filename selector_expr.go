package palette

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprSelectorOption configures an expr selector instance.
type ExprSelectorOption func(*exprSelector)

// ExprWithSelectorCache wires a SelectorCache into the expr selector.
func ExprWithSelectorCache(cache SelectorCache) ExprSelectorOption {
	return func(s *exprSelector) {
		s.cache = cache
	}
}

// exprSelector derives values using github.com/expr-lang/expr.
type exprSelector struct {
	source  string
	cache   SelectorCache
	program *exprvm.Program
}

// NewExprSelector constructs a Selector backed by expr-lang/expr. The source
// is compiled lazily on first selection and reused afterwards.
func NewExprSelector(source string, opts ...ExprSelectorOption) (Selector, error) {
	if source == "" {
		return nil, wrapSelectionError("expr", source, fmt.Errorf("selector source must not be empty"))
	}
	s := &exprSelector{source: source}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *exprSelector) Label() string {
	return "expr:" + s.source
}

// Select runs the compiled program against the snapshot binding.
func (s *exprSelector) Select(state State) (any, error) {
	program, err := s.loadOrCompile()
	if err != nil {
		return nil, err
	}
	result, err := exprlang.Run(program, stateBinding(state))
	if err != nil {
		return nil, wrapSelectionError("expr", s.source, err)
	}
	return result, nil
}

func (s *exprSelector) loadOrCompile() (*exprvm.Program, error) {
	if s.program != nil {
		return s.program, nil
	}
	if s.cache != nil {
		if cached, ok := s.cache.Get(s.source); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	program, err := exprlang.Compile(s.source,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, wrapSelectionError("expr", s.source, err)
	}
	if s.cache != nil {
		s.cache.Set(s.source, program)
	} else {
		s.program = program
	}
	return program, nil
}
