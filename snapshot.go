package swapmap

import (
	"maps"

	"github.com/hupe1980/swapmap/cell"
)

// snapshot is one immutable version of the key → cell mapping. Once published
// via Store.current its key set never changes; only the contents of the cells
// it points to may change, through cell.Cell.Store.
type snapshot[K comparable, V any] struct {
	cells map[K]*cell.Cell[V]
}

func newSnapshot[K comparable, V any](capacity int) *snapshot[K, V] {
	return &snapshot[K, V]{
		cells: make(map[K]*cell.Cell[V], capacity),
	}
}

func (s *snapshot[K, V]) lookup(key K) (*cell.Cell[V], bool) {
	c, ok := s.cells[key]
	return c, ok
}

func (s *snapshot[K, V]) size() int {
	return len(s.cells)
}

// withCell returns a copy of s with key bound to c. Every cell already
// present is shared by identity between s and the copy, so readers and
// fast-path writers working against s keep operating on the same cells.
func (s *snapshot[K, V]) withCell(key K, c *cell.Cell[V]) *snapshot[K, V] {
	next := newSnapshot[K, V](len(s.cells) + 1)
	maps.Copy(next.cells, s.cells)
	next.cells[key] = c
	return next
}

// withCells is the batch form of withCell: one clone for any number of new
// keys.
func (s *snapshot[K, V]) withCells(add map[K]*cell.Cell[V]) *snapshot[K, V] {
	next := newSnapshot[K, V](len(s.cells) + len(add))
	maps.Copy(next.cells, s.cells)
	maps.Copy(next.cells, add)
	return next
}

// without returns a copy of s with key removed.
func (s *snapshot[K, V]) without(key K) *snapshot[K, V] {
	next := newSnapshot[K, V](len(s.cells))
	for k, c := range s.cells {
		if k != key {
			next.cells[k] = c
		}
	}
	return next
}
