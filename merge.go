package tilesort

import (
	"go.uber.org/zap"

	"github.com/lanrat/tilesort/queue"
)

// tileCursor is the unread remainder of one sorted tile during the merge.
type tileCursor[R any] struct {
	data  []R
	pos   int
	index int // position of the tile in the input, breaks ties
}

func (c *tileCursor[R]) front() R {
	return c.data[c.pos]
}

// advance moves past the front and reports whether records remain.
func (c *tileCursor[R]) advance() bool {
	c.pos++
	return c.pos < len(c.data)
}

// merge performs a k-way merge of the sorted tiles of buf into a new slice.
// Among equal fronts the tile that came first in the input wins, which
// carries the stability of each tile over to the result.
func (en *engine[R]) merge(buf []R, tiles []tile) ([]R, error) {
	pq := queue.NewPriorityQueue(func(a, b *tileCursor[R]) (bool, error) {
		c, err := en.compare(a.front(), b.front())
		if err != nil {
			return false, err
		}
		return c < 0 || (c == 0 && a.index < b.index), nil
	}, len(tiles))

	for i, t := range tiles {
		if t.len() == 0 {
			continue
		}
		pq.Push(&tileCursor[R]{data: buf[t.start:t.end], index: i})
	}
	if err := pq.Err(); err != nil {
		return nil, err
	}

	en.log.Debug("merging tiles", zap.Int("fanIn", pq.Len()))

	out := make([]R, 0, len(buf))
	for pq.Len() > 1 {
		c := pq.Peek()
		out = append(out, c.front())
		if c.advance() {
			pq.PeekUpdate()
		} else {
			pq.Pop()
		}
		if err := pq.Err(); err != nil {
			return nil, err
		}
	}
	// the last tile needs no more comparisons
	if pq.Len() == 1 {
		c := pq.Pop()
		out = append(out, c.data[c.pos:]...)
	}
	return out, nil
}
