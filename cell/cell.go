// Package cell provides an atomically swappable, shared holder of a single value.
//
// A Cell is the leaf primitive of the swapmap store: every key owns one Cell,
// and updating the value under an existing key is a plain atomic pointer swap
// against that Cell. Readers that loaded a handle before a swap keep observing
// the value they read; the garbage collector keeps it alive for as long as any
// handle exists.
package cell

import "sync/atomic"

// Cell holds exactly one value of type V at a time and allows it to be
// replaced atomically. Replacement is implemented as an atomic swap of a
// pointer to a freshly allocated value, never as in-place mutation of memory
// a concurrent reader may be dereferencing.
//
// A zero Cell is not ready for use; create one with New.
type Cell[V any] struct {
	p atomic.Pointer[V]
}

// New creates a Cell holding v.
func New[V any](v V) *Cell[V] {
	c := &Cell[V]{}
	c.p.Store(&v)
	return c
}

// Load returns a handle to the currently held value. It never blocks and
// never observes a partially written value. The handle remains valid after
// later Store or Swap calls.
func (c *Cell[V]) Load() *V {
	return c.p.Load()
}

// Store installs v as the new current value. The previous value is reclaimed
// once no reader holds a handle to it. A Load that begins after Store returns
// observes v; a Load racing with Store may observe either value.
func (c *Cell[V]) Store(v V) {
	c.p.Store(&v)
}

// Swap installs v and returns the handle that was current before the swap.
func (c *Cell[V]) Swap(v V) *V {
	return c.p.Swap(&v)
}
