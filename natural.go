package tilesort

import (
	"bytes"
	"cmp"
	"reflect"
)

func orderedCompare[T cmp.Ordered](a, b T) (int, error) {
	return cmp.Compare(a, b), nil
}

// as re-types fn once the caller has established that T and K are the same type.
func as[K, T any](fn CompareErrFunc[T]) CompareErrFunc[K] {
	return any(fn).(CompareErrFunc[K])
}

// naturalCompare returns the built-in ordering of K, and false if K has none.
//
// K has a natural ordering when it has a Compare(K) int method, is []byte,
// or its underlying kind is an integer, float or string. Floats order NaN
// before every other value, as cmp.Compare does.
func naturalCompare[K any]() (CompareErrFunc[K], bool) {
	var zero K
	if _, ok := any(zero).(interface{ Compare(K) int }); ok {
		return func(a, b K) (int, error) {
			return any(a).(interface{ Compare(K) int }).Compare(b), nil
		}, true
	}

	switch any(zero).(type) {
	case int:
		return as[K](orderedCompare[int]), true
	case int8:
		return as[K](orderedCompare[int8]), true
	case int16:
		return as[K](orderedCompare[int16]), true
	case int32:
		return as[K](orderedCompare[int32]), true
	case int64:
		return as[K](orderedCompare[int64]), true
	case uint:
		return as[K](orderedCompare[uint]), true
	case uint8:
		return as[K](orderedCompare[uint8]), true
	case uint16:
		return as[K](orderedCompare[uint16]), true
	case uint32:
		return as[K](orderedCompare[uint32]), true
	case uint64:
		return as[K](orderedCompare[uint64]), true
	case uintptr:
		return as[K](orderedCompare[uintptr]), true
	case float32:
		return as[K](orderedCompare[float32]), true
	case float64:
		return as[K](orderedCompare[float64]), true
	case string:
		return as[K](orderedCompare[string]), true
	case []byte:
		return as[K](func(a, b []byte) (int, error) {
			return bytes.Compare(a, b), nil
		}), true
	}

	return reflectCompare[K]()
}

// reflectCompare orders named types whose underlying kind is ordered,
// such as `type ID int64`.
func reflectCompare[K any]() (CompareErrFunc[K], bool) {
	t := reflect.TypeOf((*K)(nil)).Elem()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b K) (int, error) {
			return cmp.Compare(reflect.ValueOf(a).Int(), reflect.ValueOf(b).Int()), nil
		}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b K) (int, error) {
			return cmp.Compare(reflect.ValueOf(a).Uint(), reflect.ValueOf(b).Uint()), nil
		}, true
	case reflect.Float32, reflect.Float64:
		return func(a, b K) (int, error) {
			return cmp.Compare(reflect.ValueOf(a).Float(), reflect.ValueOf(b).Float()), nil
		}, true
	case reflect.String:
		return func(a, b K) (int, error) {
			return cmp.Compare(reflect.ValueOf(a).String(), reflect.ValueOf(b).String()), nil
		}, true
	}
	return nil, false
}
