package tilesort_test

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lanrat/tilesort"
)

var errHost = errors.New("host callable raised")

// failingCompare returns a comparator that fails on its nth call.
func failingCompare(n int) (tilesort.CompareErrFunc[int], *int) {
	calls := 0
	return func(a, b int) (int, error) {
		calls++
		if calls == n {
			return 0, errHost
		}
		return a - b, nil
	}, &calls
}

func TestFailedSortLeavesInputUnchanged(t *testing.T) {
	s, err := tilesort.New(tilesort.Order[int, int]{Compare: func() tilesort.CompareErrFunc[int] {
		cmp, _ := failingCompare(3)
		return cmp
	}()}, nil)
	require.NoError(t, err)

	data := []int{3, 1, 2}
	err = s.Sort(data)
	require.Error(t, err)
	require.True(t, tilesort.IsComparisonError(err))
	require.ErrorIs(t, err, errHost)
	require.Equal(t, []int{3, 1, 2}, data)
}

func TestFailedSortAtEveryComparison(t *testing.T) {
	for _, cfg := range configs {
		orig := make([]int, 300)
		for i := range orig {
			orig[i] = (i * 7919) % 301
		}

		// count the comparisons a successful sort needs
		count, total := failingCompare(-1)
		s, err := tilesort.New(tilesort.Order[int, int]{Compare: count}, cfg.config)
		require.NoError(t, err)
		require.NoError(t, s.Sort(slices.Clone(orig)))

		step := max(*total/50, 1)
		for n := 1; n <= *total; n += step {
			t.Run(fmt.Sprintf("%s/fail%d", cfg.name, n), func(t *testing.T) {
				cmp, _ := failingCompare(n)
				s, err := tilesort.New(tilesort.Order[int, int]{Compare: cmp}, cfg.config)
				require.NoError(t, err)

				data := slices.Clone(orig)
				err = s.Sort(data)
				require.ErrorIs(t, err, errHost)
				require.Equal(t, orig, data)

				cmp, _ = failingCompare(n)
				s, err = tilesort.New(tilesort.Order[int, int]{Compare: cmp}, cfg.config)
				require.NoError(t, err)
				sorted, err := s.Sorted(data)
				require.ErrorIs(t, err, errHost)
				require.Nil(t, sorted)
			})
		}
	}
}

func TestPanickingCompare(t *testing.T) {
	data := []string{"b", "a", "c"}
	err := tilesort.SortFunc(data, func(a, b string) int {
		if a == "c" || b == "c" {
			panic("cannot compare c")
		}
		return strings.Compare(a, b)
	}, false)

	var ce *tilesort.ComparisonError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "cannot compare c", ce.Cause)
	require.Contains(t, err.Error(), "cannot compare c")
	require.Equal(t, []string{"b", "a", "c"}, data)
}

func TestFailingKey(t *testing.T) {
	data := []int{5, 4, 3, 2, 1}
	err := tilesort.SortKey(data, func(x int) (int, error) {
		if x == 2 {
			return 0, errHost
		}
		return x, nil
	}, false)

	var ce *tilesort.ComparisonError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "key", ce.Context)
	require.ErrorIs(t, err, errHost)
	require.Equal(t, []int{5, 4, 3, 2, 1}, data)
}

func TestFailingKeyOnSingleton(t *testing.T) {
	_, err := tilesort.SortedKey([]int{1}, func(int) (int, error) { return 0, errHost }, false)
	require.ErrorIs(t, err, errHost)
}

func TestPanickingKey(t *testing.T) {
	got, err := tilesort.SortedKey([]int{1, 2}, tilesort.KeyOf(func(x int) int {
		if x == 2 {
			panic(errHost)
		}
		return x
	}), false)
	require.Nil(t, got)
	require.True(t, tilesort.IsComparisonError(err))
	require.ErrorIs(t, err, errHost)
}

type opaque struct {
	id int
}

func TestConfigurationErrors(t *testing.T) {
	// no natural ordering for a struct
	_, err := tilesort.New(tilesort.Order[opaque, opaque]{}, nil)
	require.True(t, tilesort.IsConfigurationError(err))
	var ce *tilesort.ConfigurationError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "Compare", ce.Field)

	// no natural ordering for an interface key
	_, err = tilesort.New(tilesort.Order[opaque, any]{
		Key: func(o opaque) (any, error) { return o.id, nil },
	}, nil)
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "Compare", ce.Field)

	// identity key across distinct types
	_, err = tilesort.New(tilesort.Order[opaque, int]{}, nil)
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "Key", ce.Field)

	// invalid engine settings
	_, err = tilesort.New(tilesort.Order[int, int]{}, &tilesort.Config{TileSize: -1})
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "TileSize", ce.Field)

	_, err = tilesort.New(tilesort.Order[int, int]{}, &tilesort.Config{Strategy: tilesort.TileStrategy(9)})
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "Strategy", ce.Field)

	require.True(t, tilesort.IsConfigurationError(tilesort.SortFunc[int]([]int{2, 1}, nil, false)))
	require.True(t, tilesort.IsConfigurationError(tilesort.SortKey[int, int]([]int{2, 1}, nil, false)))

	// a custom comparator makes any type sortable
	s, err := tilesort.New(tilesort.Order[opaque, opaque]{
		Compare: func(a, b opaque) (int, error) { return a.id - b.id, nil },
	}, nil)
	require.NoError(t, err)
	data := []opaque{{3}, {1}, {2}}
	require.NoError(t, s.Sort(data))
	require.Equal(t, []opaque{{1}, {2}, {3}}, data)
}

func TestLargestTileSize(t *testing.T) {
	for _, strategy := range []tilesort.TileStrategy{tilesort.FixedTiles, tilesort.NaturalRuns} {
		s, err := tilesort.New(tilesort.Order[int, int]{}, &tilesort.Config{TileSize: math.MaxInt, Strategy: strategy})
		require.NoError(t, err)

		data := []int{3, 1, 2}
		require.NoError(t, s.Sort(data), strategy.String())
		require.Equal(t, []int{1, 2, 3}, data)

		sorted, err := s.Sorted([]int{5, 4, 6, 4})
		require.NoError(t, err)
		require.Equal(t, []int{4, 4, 5, 6}, sorted)
	}
}

func TestParseTileStrategy(t *testing.T) {
	for in, expected := range map[string]tilesort.TileStrategy{
		"":        tilesort.FixedTiles,
		"fixed":   tilesort.FixedTiles,
		"RUNS":    tilesort.NaturalRuns,
		"natural": tilesort.NaturalRuns,
	} {
		got, err := tilesort.ParseTileStrategy(in)
		require.NoError(t, err, in)
		require.Equal(t, expected, got, in)
	}
	_, err := tilesort.ParseTileStrategy("radix")
	require.True(t, tilesort.IsConfigurationError(err))

	var s tilesort.TileStrategy
	require.NoError(t, s.UnmarshalText([]byte("runs")))
	require.Equal(t, tilesort.NaturalRuns, s)
	text, err := s.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "runs", string(text))
}
