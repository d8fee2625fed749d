package tilesort

import (
	"fmt"
)

// Order describes how elements of type E are ordered.
//
// With a nil Key elements are compared directly, and K must be the same
// type as E. With a nil Compare the natural ordering of K is used. Reverse
// swaps Less and Greater of the resulting comparison; equal elements keep
// their original relative order either way.
type Order[E, K any] struct {
	Key     KeyFunc[E, K]
	Compare CompareErrFunc[K]
	Reverse bool
}

// keyed pairs an element with its cached key for the duration of one sort call.
type keyed[E, K any] struct {
	elem E
	key  K
}

func typeName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))[1:]
}

// resolve validates the order and returns the effective comparator over keys.
func (o Order[E, K]) resolve() (CompareErrFunc[K], error) {
	if o.Key == nil {
		if _, same := any(CompareErrFunc[K](nil)).(CompareErrFunc[E]); !same {
			return nil, NewConfigurationError("Key", nil,
				fmt.Sprintf("a key function is required to compare %s by %s", typeName[E](), typeName[K]()))
		}
	}

	compare := o.Compare
	if compare == nil {
		natural, ok := naturalCompare[K]()
		if !ok {
			return nil, NewConfigurationError("Compare", nil,
				fmt.Sprintf("%s has no natural ordering, a Compare function is required", typeName[K]()))
		}
		compare = natural
	}
	return wrapCompare(compare, o.Reverse), nil
}

// wrapCompare normalizes results to an Ordering, applies reverse and tags
// errors and panics of the callable as comparison failures.
func wrapCompare[K any](compare CompareErrFunc[K], reverse bool) CompareErrFunc[K] {
	return func(a, b K) (_ int, err error) {
		defer recoverComparison(&err, "compare")
		c, err := compare(a, b)
		if err != nil {
			return 0, NewComparisonError(err, "compare")
		}
		o := orderingOf(c)
		if reverse {
			o = -o
		}
		return int(o), nil
	}
}

// byKey lifts a key comparator to cached records.
func byKey[E, K any](compare CompareErrFunc[K]) CompareErrFunc[keyed[E, K]] {
	return func(a, b keyed[E, K]) (int, error) {
		return compare(a.key, b.key)
	}
}
