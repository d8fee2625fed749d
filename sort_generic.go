// Package tilesort implements a stable, cache-aware comparison sort.
//
// The input is cut into tiles that fit in cache, each tile is sorted on its
// own, and the sorted tiles are combined with a k-way merge. Sorting never
// touches the caller's slice until the result is complete, so a failing
// key or comparison function leaves the input exactly as it was.
package tilesort

import (
	"slices"
)

// Sorter sorts slices of E ordered by keys of type K.
// A Sorter is immutable once created and safe for concurrent use on
// distinct slices.
type Sorter[E, K any] struct {
	config  Config
	key     KeyFunc[E, K]
	compare CompareErrFunc[K]
}

// New creates a Sorter for the given order. config may be nil to use the
// defaults, or only set the non-default values desired.
//
// It returns a ConfigurationError when no ordering can be derived: Key is
// nil but K differs from E, or Compare is nil and K has no natural ordering.
func New[E, K any](order Order[E, K], config *Config) (*Sorter[E, K], error) {
	config = mergeConfig(config)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	compare, err := order.resolve()
	if err != nil {
		return nil, err
	}
	return &Sorter[E, K]{
		config:  *config,
		key:     order.Key,
		compare: compare,
	}, nil
}

// newSorter creates a Sorter from a comparator already known to be valid.
func newSorter[E, K any](key KeyFunc[E, K], compare CompareErrFunc[K], reverse bool, config *Config) *Sorter[E, K] {
	return &Sorter[E, K]{
		config:  *mergeConfig(config),
		key:     key,
		compare: wrapCompare(compare, reverse),
	}
}

// Sort sorts data in place.
// On error data is left unchanged and the error is a ComparisonError
// carrying the failure of the key or comparison function.
func (s *Sorter[E, K]) Sort(data []E) error {
	sorted, err := s.sort(data)
	if err != nil {
		return err
	}
	copy(data, sorted)
	return nil
}

// Sorted returns a new slice holding the elements of data in sorted order.
// data is never modified. On error the returned slice is nil.
func (s *Sorter[E, K]) Sorted(data []E) ([]E, error) {
	sorted, err := s.sort(data)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 && len(sorted) > 0 && &sorted[0] == &data[0] {
		sorted = slices.Clone(sorted)
	}
	if sorted == nil {
		sorted = []E{}
	}
	return sorted, nil
}

// sort computes the sorted order of data into storage that data does not
// share, except for inputs of fewer than two elements which need no work.
func (s *Sorter[E, K]) sort(data []E) (sorted []E, err error) {
	if len(data) == 0 {
		return data, nil
	}
	if s.key == nil {
		if len(data) == 1 {
			return data, nil
		}
		// resolve guarantees K is E here
		en := newEngine(as[E](s.compare), &s.config)
		return en.sort(slices.Clone(data))
	}

	// keys are extracted once per element and dropped with the records
	records := make([]keyed[E, K], len(data))
	for i, e := range data {
		k, err := s.extractKey(e)
		if err != nil {
			return nil, err
		}
		records[i] = keyed[E, K]{elem: e, key: k}
	}

	en := newEngine(byKey[E](s.compare), &s.config)
	records, err = en.sort(records)
	if err != nil {
		return nil, err
	}
	sorted = make([]E, len(records))
	for i, r := range records {
		sorted[i] = r.elem
	}
	return sorted, nil
}

// extractKey calls the key function, reporting its errors and panics as
// comparison failures.
func (s *Sorter[E, K]) extractKey(e E) (k K, err error) {
	defer recoverComparison(&err, "key")
	k, err = s.key(e)
	if err != nil {
		return k, NewComparisonError(err, "key")
	}
	return k, nil
}
