package tilesort

import (
	"cmp"
)

// IsSorted reports whether data is in ascending order, or descending when
// reverse is set.
func IsSorted[E cmp.Ordered](data []E, reverse bool) bool {
	return IsSortedFunc(data, cmp.Compare[E], reverse)
}

// IsSortedFunc reports whether no adjacent pair of data compares Greater
// under cmp, with cmp reversed when reverse is set.
func IsSortedFunc[E any](data []E, cmp CompareFunc[E], reverse bool) bool {
	for i := 1; i < len(data); i++ {
		o := orderingOf(cmp(data[i-1], data[i]))
		if reverse {
			o = -o
		}
		if o == Greater {
			return false
		}
	}
	return true
}
