package swapmap

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// LoadFunc computes the value for a key that is not in the store.
type LoadFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Loader is a read-through wrapper around a Store. A hit is served from the
// store's lock-free read path; on a miss the load function runs, its result
// is inserted, and concurrent misses for the same key are collapsed into a
// single load via singleflight.
type Loader[K comparable, V any] struct {
	store *Store[K, V]
	load  LoadFunc[K, V]
	group singleflight.Group
}

// NewLoader creates a Loader around store using load for misses.
func NewLoader[K comparable, V any](store *Store[K, V], load LoadFunc[K, V]) *Loader[K, V] {
	return &Loader[K, V]{
		store: store,
		load:  load,
	}
}

// GetOrLoad returns the value stored under key, computing and inserting it
// on a miss. While one load for a key is in flight, other GetOrLoad calls
// for that key wait for it and share its result instead of loading again.
//
// A failed load stores nothing; the error is returned to every waiter
// wrapped with the key.
//
// Flights are keyed by the %#v form of the key, which spells out type and
// field names; distinct keys of the same type must have distinct %#v forms.
func (l *Loader[K, V]) GetOrLoad(ctx context.Context, key K) (V, error) {
	if v, ok := l.store.Get(key); ok {
		return v, nil
	}

	v, err, _ := l.group.Do(fmt.Sprintf("%#v", key), func() (any, error) {
		// Re-check inside the flight: a racing Insert or an earlier flight
		// may have stored the key already.
		if v, ok := l.store.Get(key); ok {
			return v, nil
		}

		v, err := l.load(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("swapmap: load %v: %w", key, err)
		}

		l.store.Insert(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return v.(V), nil
}
