package palette

import "reflect"

// uninitialized is the sentinel stored as a subscriber's last derived value
// before its first collection. The type is unexported so no selector can ever
// produce a structurally equal value.
type uninitialized struct{}

// deepEqual compares derived values structurally: sequences order-sensitive,
// mappings by key and value regardless of insertion order. Derived values are
// assumed acyclic.
func deepEqual(a, b any) bool {
	if _, ok := a.(uninitialized); ok {
		return false
	}
	if _, ok := b.(uninitialized); ok {
		return false
	}
	return reflect.DeepEqual(a, b)
}
