package swapmap

import (
	"iter"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/swapmap/cell"
)

// Store is a thread-safe, in-memory key-value store optimized for read-heavy
// workloads with occasional writes.
//
// Reads never block: Get loads the currently published snapshot with a single
// atomic load and reads the entry's cell with another. Writes to an existing
// key are lock-free as well. Only inserts of a new key (and Delete/Clear)
// serialize on the structural mutex, and even those never make a concurrent
// reader wait.
//
// Concurrent inserts to the same key resolve by last-writer-wins: whichever
// cell swap physically executes last is what subsequent reads observe. The
// store makes no attempt to detect or serialize such races.
type Store[K comparable, V any] struct {
	current atomic.Pointer[snapshot[K, V]]

	// structuralMu serializes mutations that change the key set. Get and
	// same-key Insert never take it.
	structuralMu sync.Mutex

	metrics MetricsCollector
	logger  *Logger
}

// New creates an empty store.
func New[K comparable, V any](optFns ...Option) *Store[K, V] {
	return NewWithCapacity[K, V](0, optFns...)
}

// NewWithCapacity creates an empty store pre-sized for capacity entries.
// It behaves identically to New in every observable way; the hint only
// avoids early rehashing of the initial snapshot.
func NewWithCapacity[K comparable, V any](capacity int, optFns ...Option) *Store[K, V] {
	opts := applyOptions(optFns)

	s := &Store[K, V]{
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}
	s.current.Store(newSnapshot[K, V](capacity))

	return s
}

// Get returns the value stored under key. The boolean reports whether the
// key was present; absence is not an error and is the expected result for
// keys never inserted.
//
// Get never blocks and never touches the structural mutex: it performs one
// atomic load of the current snapshot, one map lookup and one atomic load of
// the entry's cell.
func (s *Store[K, V]) Get(key K) (V, bool) {
	if c, ok := s.current.Load().lookup(key); ok {
		s.metrics.RecordGet(true)
		return *c.Load(), true
	}

	var zero V
	s.metrics.RecordGet(false)
	return zero, false
}

// GetHandle is Get returning the shared handle instead of a copy of the
// value. The handle stays valid and unchanged even after later inserts
// replace the value under key; it is a stable view of one historical read.
// The pointed-to value must be treated as read-only.
func (s *Store[K, V]) GetHandle(key K) (*V, bool) {
	if c, ok := s.current.Load().lookup(key); ok {
		s.metrics.RecordGet(true)
		return c.Load(), true
	}

	s.metrics.RecordGet(false)
	return nil, false
}

// Contains reports whether key is present, without reading its value.
func (s *Store[K, V]) Contains(key K) bool {
	_, ok := s.current.Load().lookup(key)
	return ok
}

// Len returns the number of keys in the currently published snapshot.
func (s *Store[K, V]) Len() int {
	return s.current.Load().size()
}

// Insert publishes value under key so that subsequent Get calls observe it.
//
// If the key already exists, Insert swaps the contents of its cell and
// returns without any locking; the cell's own atomic swap makes concurrent
// Get and Insert on that key race-free by construction. Only a genuinely new
// key takes the structural mutex, clones the current snapshot, and publishes
// the clone atomically. Readers keep operating against whichever snapshot
// they loaded.
//
// Two concurrent Inserts to the same key resolve by last-writer-wins. If a
// concurrent Delete or Clear removes the key while the fast-path swap is in
// flight, Insert detects it and re-publishes the value under the structural
// mutex instead of losing it to an unpublished cell.
func (s *Store[K, V]) Insert(key K, value V) {
	start := time.Now()

	// Fast path: the key already has a cell; swapping its contents needs no
	// coordination with the snapshot or with other keys.
	if c, ok := s.current.Load().lookup(key); ok {
		c.Store(value)
		// A Delete or Clear may have published a snapshot without the key
		// between the load and the store above, leaving the value in a cell
		// no current snapshot maps. Confirm the published snapshot still
		// holds this cell; otherwise insert under the lock.
		if c2, ok := s.current.Load().lookup(key); ok && c2 == c {
			s.metrics.RecordInsert(true, time.Since(start))
			return
		}
	}

	s.structuralMu.Lock()
	defer s.structuralMu.Unlock()

	// Re-check under the lock: another writer may have created the cell
	// between the load above and lock acquisition. Skipping this would
	// discard that writer's entry when we publish our clone. Structural
	// mutations are excluded while the lock is held, so this cell cannot
	// be unpublished before the store lands.
	cur := s.current.Load()
	if c, ok := cur.lookup(key); ok {
		c.Store(value)
		s.metrics.RecordInsert(false, time.Since(start))
		return
	}

	next := cur.withCell(key, cell.New(value))
	s.current.Store(next)

	s.metrics.RecordInsert(false, time.Since(start))
	s.logger.LogPublish(next.size())
}

// BatchInsert inserts every entry of items. Keys that already exist take the
// same lock-free path as Insert; all new keys are added with a single clone
// and publish under one acquisition of the structural mutex, amortizing the
// O(n) copy across the batch.
func (s *Store[K, V]) BatchInsert(items map[K]V) {
	if len(items) == 0 {
		return
	}

	start := time.Now()

	cur := s.current.Load()
	swapped := make(map[K]*cell.Cell[V], len(items))
	var missing map[K]V
	for k, v := range items {
		if c, ok := cur.lookup(k); ok {
			c.Store(v)
			swapped[k] = c
			continue
		}
		if missing == nil {
			missing = make(map[K]V, len(items))
		}
		missing[k] = v
	}

	// Same publication check as Insert: any swapped cell that a concurrent
	// Delete or Clear unpublished must be re-inserted under the lock.
	if len(swapped) > 0 {
		cur = s.current.Load()
		for k, c := range swapped {
			if c2, ok := cur.lookup(k); !ok || c2 != c {
				if missing == nil {
					missing = make(map[K]V, len(items))
				}
				missing[k] = items[k]
			}
		}
	}

	if missing == nil {
		s.metrics.RecordBatchInsert(len(items), 0, time.Since(start))
		return
	}

	s.structuralMu.Lock()
	defer s.structuralMu.Unlock()

	// Same mandatory re-check as Insert, per missing key.
	cur = s.current.Load()
	fresh := make(map[K]*cell.Cell[V], len(missing))
	for k, v := range missing {
		if c, ok := cur.lookup(k); ok {
			c.Store(v)
			continue
		}
		fresh[k] = cell.New(v)
	}
	if len(fresh) == 0 {
		s.metrics.RecordBatchInsert(len(items), 0, time.Since(start))
		return
	}

	next := cur.withCells(fresh)
	s.current.Store(next)

	s.metrics.RecordBatchInsert(len(items), len(fresh), time.Since(start))
	s.logger.LogPublish(next.size())
}

// Delete removes key from the store and reports whether it was present.
// Readers holding an older snapshot or a handle from Get keep their view;
// only snapshots published after Delete lack the key.
func (s *Store[K, V]) Delete(key K) bool {
	start := time.Now()

	s.structuralMu.Lock()
	defer s.structuralMu.Unlock()

	cur := s.current.Load()
	if _, ok := cur.lookup(key); !ok {
		return false
	}

	next := cur.without(key)
	s.current.Store(next)

	s.metrics.RecordDelete(time.Since(start))
	s.logger.LogDelete(next.size())
	return true
}

// Clear removes all keys by publishing a fresh empty snapshot.
func (s *Store[K, V]) Clear() {
	s.structuralMu.Lock()
	defer s.structuralMu.Unlock()

	s.current.Store(newSnapshot[K, V](0))
	s.logger.LogClear()
}

// All returns an iterator over the entries of one consistent snapshot, the
// one published at the moment All was called. Keys never appear or disappear
// mid-iteration. Each value is read from its cell when visited, so a
// concurrent same-key Insert may be observed.
func (s *Store[K, V]) All() iter.Seq2[K, V] {
	snap := s.current.Load()
	return func(yield func(K, V) bool) {
		for k, c := range snap.cells {
			if !yield(k, *c.Load()) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys of one consistent snapshot.
func (s *Store[K, V]) Keys() iter.Seq[K] {
	snap := s.current.Load()
	return func(yield func(K) bool) {
		for k := range snap.cells {
			if !yield(k) {
				return
			}
		}
	}
}
