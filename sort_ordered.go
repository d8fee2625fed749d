package tilesort

import (
	"cmp"
)

// Sort sorts a slice of any ordered type in place, in ascending order or
// descending when reverse is set. Equal elements keep their relative order.
func Sort[E cmp.Ordered](data []E, reverse bool) {
	// natural ordering cannot fail
	_ = newSorter[E, E](nil, orderedCompare[E], reverse, nil).Sort(data)
}

// Sorted returns a sorted copy of a slice of any ordered type.
func Sorted[E cmp.Ordered](data []E, reverse bool) []E {
	sorted, _ := newSorter[E, E](nil, orderedCompare[E], reverse, nil).Sorted(data)
	return sorted
}

// SortFunc sorts data in place as determined by the cmp function.
// A panic inside cmp is returned as a ComparisonError and data is left unchanged.
func SortFunc[E any](data []E, cmp CompareFunc[E], reverse bool) error {
	if cmp == nil {
		return NewConfigurationError("Compare", nil, "SortFunc requires a comparison function")
	}
	return newSorter[E, E](nil, Fallible(cmp), reverse, nil).Sort(data)
}

// SortedFunc returns a copy of data sorted as determined by the cmp function.
func SortedFunc[E any](data []E, cmp CompareFunc[E], reverse bool) ([]E, error) {
	if cmp == nil {
		return nil, NewConfigurationError("Compare", nil, "SortedFunc requires a comparison function")
	}
	return newSorter[E, E](nil, Fallible(cmp), reverse, nil).Sorted(data)
}

// SortKey sorts data in place by the natural ordering of the keys returned by key.
// key is called once per element. If it fails, data is left unchanged.
func SortKey[E any, K cmp.Ordered](data []E, key KeyFunc[E, K], reverse bool) error {
	if key == nil {
		return NewConfigurationError("Key", nil, "SortKey requires a key function")
	}
	return newSorter(key, orderedCompare[K], reverse, nil).Sort(data)
}

// SortedKey returns a copy of data sorted by the natural ordering of the keys returned by key.
func SortedKey[E any, K cmp.Ordered](data []E, key KeyFunc[E, K], reverse bool) ([]E, error) {
	if key == nil {
		return nil, NewConfigurationError("Key", nil, "SortedKey requires a key function")
	}
	return newSorter(key, orderedCompare[K], reverse, nil).Sorted(data)
}
