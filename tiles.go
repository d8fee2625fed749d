package tilesort

import (
	"go.uber.org/zap"
)

// insertionBlock is the size of the blocks insertion sorted before the
// bottom-up merge inside a tile.
const insertionBlock = 16

// tile is the half-open index range [start, end) of an independently sorted block.
type tile struct {
	start, end int
}

func (t tile) len() int {
	return t.end - t.start
}

// engine runs one sort call over records of type R. It holds no state
// between calls.
type engine[R any] struct {
	compare  CompareErrFunc[R]
	tileSize int
	strategy TileStrategy
	log      *zap.Logger
}

func newEngine[R any](compare CompareErrFunc[R], config *Config) *engine[R] {
	return &engine[R]{
		compare:  compare,
		tileSize: config.TileSize,
		strategy: config.Strategy,
		log:      config.Logger,
	}
}

// sort orders buf, which the engine owns and may reorder, and returns the
// result. The result may share storage with buf. On error the returned
// slice is nil.
func (en *engine[R]) sort(buf []R) ([]R, error) {
	if len(buf) <= 1 {
		return buf, nil
	}

	var tiles []tile
	var err error
	switch en.strategy {
	case NaturalRuns:
		tiles, err = en.scanRuns(buf)
	default:
		tiles, err = en.sortTiles(buf)
	}
	if err != nil {
		return nil, err
	}

	en.log.Debug("tiles built",
		zap.Stringer("strategy", en.strategy),
		zap.Int("elements", len(buf)),
		zap.Int("tiles", len(tiles)))

	if len(tiles) == 1 {
		return buf, nil
	}
	return en.merge(buf, tiles)
}

// partition cuts [0, n) into consecutive tiles of size tileSize, the last
// one possibly shorter. tileSize is clamped to n so that any size accepted
// by Config.Validate stays clear of integer overflow.
func partition(n, tileSize int) []tile {
	if n == 0 {
		return nil
	}
	size := min(tileSize, n)
	tiles := make([]tile, 0, n/size+1)
	for start := 0; start < n; start += size {
		tiles = append(tiles, tile{start: start, end: min(start+size, n)})
	}
	return tiles
}

// sortTiles partitions buf into fixed size tiles and sorts each one in place.
func (en *engine[R]) sortTiles(buf []R) ([]tile, error) {
	tiles := partition(len(buf), en.tileSize)
	scratch := make([]R, min(en.tileSize, len(buf)))
	for _, t := range tiles {
		if err := en.sortTile(buf[t.start:t.end], scratch); err != nil {
			return nil, err
		}
	}
	return tiles, nil
}

// scanRuns cuts buf at every descent so that each tile is a maximal
// non-descending run. Equal neighbours stay in the same run.
func (en *engine[R]) scanRuns(buf []R) ([]tile, error) {
	var tiles []tile
	start := 0
	for i := 1; i < len(buf); i++ {
		c, err := en.compare(buf[i-1], buf[i])
		if err != nil {
			return nil, err
		}
		if c > 0 {
			tiles = append(tiles, tile{start: start, end: i})
			start = i
		}
	}
	return append(tiles, tile{start: start, end: len(buf)}), nil
}

// sortTile is a stable merge sort of data: insertion sort over small
// blocks, then bottom-up merges that ping-pong between data and scratch.
// Merges of two blocks that are already in order are a plain copy.
func (en *engine[R]) sortTile(data, scratch []R) error {
	n := len(data)
	for a := 0; a < n; a += insertionBlock {
		if err := en.insertionSort(data[a:min(a+insertionBlock, n)]); err != nil {
			return err
		}
	}

	src, dst := data, scratch[:n]
	inData := true
	for width := insertionBlock; width < n; width <<= 1 {
		for lo := 0; lo < n; lo += width << 1 {
			mid := min(lo+width, n)
			hi := min(lo+width<<1, n)
			if err := en.mergeRuns(src[lo:mid], src[mid:hi], dst[lo:hi]); err != nil {
				return err
			}
		}
		src, dst = dst, src
		inData = !inData
	}
	if !inData {
		copy(data, src)
	}
	return nil
}

// insertionSort stably sorts data, moving an element left only past
// strictly greater neighbours.
func (en *engine[R]) insertionSort(data []R) error {
	for i := 1; i < len(data); i++ {
		for j := i; j > 0; j-- {
			c, err := en.compare(data[j-1], data[j])
			if err != nil {
				return err
			}
			if c <= 0 {
				break
			}
			data[j-1], data[j] = data[j], data[j-1]
		}
	}
	return nil
}

// mergeRuns stably merges the sorted runs left and right into dst, taking
// from left on ties. len(dst) must equal len(left)+len(right).
func (en *engine[R]) mergeRuns(left, right, dst []R) error {
	if len(right) == 0 {
		copy(dst, left)
		return nil
	}
	c, err := en.compare(left[len(left)-1], right[0])
	if err != nil {
		return err
	}
	if c <= 0 {
		copy(dst, left)
		copy(dst[len(left):], right)
		return nil
	}

	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		c, err := en.compare(left[i], right[j])
		if err != nil {
			return err
		}
		if c <= 0 {
			dst[k] = left[i]
			i++
		} else {
			dst[k] = right[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], left[i:])
	copy(dst[k:], right[j:])
	return nil
}
