package tilesort

// Ordering is the outcome of comparing two elements.
type Ordering int

// Possible Ordering values. Comparison functions may return any integer,
// only the sign is significant.
const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// orderingOf folds the integer result of a comparison function into an Ordering.
func orderingOf(c int) Ordering {
	switch {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	}
	return Equal
}

func (o Ordering) String() string {
	switch o {
	case Less:
		return "Less"
	case Greater:
		return "Greater"
	}
	return "Equal"
}

// CompareFunc is a function type for comparing two items of type E.
// It must implement a strict weak ordering: reflexivity, antisymmetry, and transitivity.
// Returns a negative integer if a should be ordered before b, zero if they are equal,
// and a positive integer if a should be ordered after b.
// This follows the same semantics as cmp.Compare. A panic raised by the function
// is recovered and reported as a ComparisonError.
type CompareFunc[E any] func(a, b E) int

// CompareErrFunc is a fallible CompareFunc. Comparators backed by a scripting
// host use it to report an error raised by the host instead of panicking.
// A non-nil error aborts the sort.
type CompareErrFunc[E any] func(a, b E) (int, error)

// KeyFunc derives the comparison key K from an element E.
// It is called exactly once per element for each sort call.
// A non-nil error aborts the sort.
type KeyFunc[E, K any] func(E) (K, error)

// Fallible adapts an infallible CompareFunc to a CompareErrFunc.
func Fallible[E any](cmp CompareFunc[E]) CompareErrFunc[E] {
	if cmp == nil {
		return nil
	}
	return func(a, b E) (int, error) {
		return cmp(a, b), nil
	}
}

// KeyOf adapts an infallible key extractor to a KeyFunc.
func KeyOf[E, K any](key func(E) K) KeyFunc[E, K] {
	if key == nil {
		return nil
	}
	return func(e E) (K, error) {
		return key(e), nil
	}
}
