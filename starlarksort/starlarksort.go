// Package starlarksort exposes tilesort to Starlark scripts.
//
// Scripts get a "tilesort" module with two builtins mirroring Python's
// list.sort and sorted:
//
//	tilesort.sort(list, key=None, reverse=False)
//	tilesort.sorted(iterable, key=None, reverse=False)
//
// Elements are never converted: the sorted list holds the very same
// starlark.Value instances as the input. Values are compared with
// Starlark's < operator, so mixed types fail the sort.
package starlarksort

import (
	"github.com/cockroachdb/errors"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"github.com/lanrat/tilesort"
)

// ModuleName is the name the module is predeclared under.
const ModuleName = "tilesort"

type binding struct {
	config *tilesort.Config
}

// Module returns the tilesort module. config may be nil to use the defaults.
func Module(config *tilesort.Config) *starlarkstruct.Module {
	b := &binding{config: config}
	return &starlarkstruct.Module{
		Name: ModuleName,
		Members: starlark.StringDict{
			"sort":   starlark.NewBuiltin(ModuleName+".sort", b.sort),
			"sorted": starlark.NewBuiltin(ModuleName+".sorted", b.sorted),
		},
	}
}

// Predeclared returns an environment binding the module to its name, for
// use with starlark.ExecFile.
func Predeclared(config *tilesort.Config) starlark.StringDict {
	return starlark.StringDict{ModuleName: Module(config)}
}

// Compare orders two Starlark values with the < operator.
func Compare(a, b starlark.Value) (int, error) {
	lt, err := starlark.Compare(syntax.LT, a, b)
	if err != nil {
		return 0, err
	}
	if lt {
		return -1, nil
	}
	gt, err := starlark.Compare(syntax.GT, a, b)
	if err != nil {
		return 0, err
	}
	if gt {
		return 1, nil
	}
	return 0, nil
}

// NewSorter builds a Sorter over Starlark values. key must be nil, None or
// a callable, which is invoked on thread once per element.
func NewSorter(thread *starlark.Thread, key starlark.Value, reverse bool, config *tilesort.Config) (*tilesort.Sorter[starlark.Value, starlark.Value], error) {
	order := tilesort.Order[starlark.Value, starlark.Value]{
		Compare: Compare,
		Reverse: reverse,
	}
	switch key := key.(type) {
	case nil, starlark.NoneType:
	case starlark.Callable:
		order.Key = func(v starlark.Value) (starlark.Value, error) {
			return starlark.Call(thread, key, starlark.Tuple{v}, nil)
		}
	default:
		return nil, tilesort.NewConfigurationError("key", key.Type(), "must be None or callable")
	}
	return tilesort.New(order, config)
}

// Sorted returns a new slice with values in sorted order. values is not modified.
func Sorted(thread *starlark.Thread, values []starlark.Value, key starlark.Value, reverse bool, config *tilesort.Config) ([]starlark.Value, error) {
	s, err := NewSorter(thread, key, reverse, config)
	if err != nil {
		return nil, err
	}
	return s.Sorted(values)
}

// sort implements tilesort.sort(list, key=None, reverse=False).
func (b *binding) sort(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var list *starlark.List
	var key starlark.Value
	var reverse bool
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "list", &list, "key?", &key, "reverse?", &reverse); err != nil {
		return nil, err
	}
	if list.Len() == 0 {
		return starlark.None, nil
	}

	// fail on frozen lists before running any script code
	if err := list.SetIndex(0, list.Index(0)); err != nil {
		return nil, errors.Wrapf(err, "%s", fn.Name())
	}

	sorted, err := b.sortedList(thread, list, key, reverse)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", fn.Name())
	}
	for i, v := range sorted {
		if err := list.SetIndex(i, v); err != nil {
			return nil, errors.Wrapf(err, "%s", fn.Name())
		}
	}
	return starlark.None, nil
}

// sortedList sorts a snapshot of list. The list is held under an open
// iterator until the sort completes, so a key function that tries to
// modify it fails instead of racing with the sort.
func (b *binding) sortedList(thread *starlark.Thread, list *starlark.List, key starlark.Value, reverse bool) ([]starlark.Value, error) {
	it := list.Iterate()
	defer it.Done()

	values := make([]starlark.Value, 0, list.Len())
	var v starlark.Value
	for it.Next(&v) {
		values = append(values, v)
	}
	return Sorted(thread, values, key, reverse, b.config)
}

// sorted implements tilesort.sorted(iterable, key=None, reverse=False).
func (b *binding) sorted(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var iterable starlark.Iterable
	var key starlark.Value
	var reverse bool
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "iterable", &iterable, "key?", &key, "reverse?", &reverse); err != nil {
		return nil, err
	}

	values, err := collect(iterable)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", fn.Name())
	}
	sorted, err := Sorted(thread, values, key, reverse, b.config)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", fn.Name())
	}
	return starlark.NewList(sorted), nil
}

// collect reads every element of iterable, releasing the iterator on return.
func collect(iterable starlark.Iterable) ([]starlark.Value, error) {
	var values []starlark.Value
	if s, ok := iterable.(starlark.Sequence); ok {
		values = make([]starlark.Value, 0, s.Len())
	}
	it := iterable.Iterate()
	defer it.Done()
	var v starlark.Value
	for it.Next(&v) {
		values = append(values, v)
	}
	if safe, ok := it.(interface{ Err() error }); ok {
		if err := safe.Err(); err != nil {
			return nil, err
		}
	}
	return values, nil
}
