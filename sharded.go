package swapmap

import (
	"hash/maphash"
	"iter"
)

// MaxShards bounds the shard count of a Sharded store.
const MaxShards = 256

// Sharded partitions keys across independent Stores to bound the cost of
// structural writes. Each shard has its own structural mutex and its own
// snapshot, so a new-key insert clones and locks only the owning shard.
//
// Observable semantics are identical to a single Store; sharding only
// changes contention and the size of the snapshot cloned per new key.
type Sharded[K comparable, V any] struct {
	shards []*Store[K, V]
	seed   maphash.Seed
}

// NewSharded creates an empty sharded store with numShards shards.
// numShards is clamped to [1, MaxShards].
func NewSharded[K comparable, V any](numShards int, optFns ...Option) *Sharded[K, V] {
	if numShards < 1 {
		numShards = 1
	}
	if numShards > MaxShards {
		numShards = MaxShards
	}

	shards := make([]*Store[K, V], numShards)
	for i := range shards {
		shards[i] = New[K, V](optFns...)
	}

	return &Sharded[K, V]{
		shards: shards,
		seed:   maphash.MakeSeed(),
	}
}

// NumShards returns the number of shards.
func (s *Sharded[K, V]) NumShards() int {
	return len(s.shards)
}

func (s *Sharded[K, V]) shardIndex(key K) int {
	return int(maphash.Comparable(s.seed, key) % uint64(len(s.shards)))
}

func (s *Sharded[K, V]) shard(key K) *Store[K, V] {
	return s.shards[s.shardIndex(key)]
}

// Get returns the value stored under key. See Store.Get.
func (s *Sharded[K, V]) Get(key K) (V, bool) {
	return s.shard(key).Get(key)
}

// GetHandle returns the shared handle stored under key. See Store.GetHandle.
func (s *Sharded[K, V]) GetHandle(key K) (*V, bool) {
	return s.shard(key).GetHandle(key)
}

// Contains reports whether key is present.
func (s *Sharded[K, V]) Contains(key K) bool {
	return s.shard(key).Contains(key)
}

// Insert publishes value under key on the owning shard. See Store.Insert.
func (s *Sharded[K, V]) Insert(key K, value V) {
	s.shard(key).Insert(key, value)
}

// BatchInsert groups items by owning shard and batch-inserts per shard, one
// structural publish per shard at most.
func (s *Sharded[K, V]) BatchInsert(items map[K]V) {
	if len(items) == 0 {
		return
	}

	buckets := make([]map[K]V, len(s.shards))
	for k, v := range items {
		i := s.shardIndex(k)
		if buckets[i] == nil {
			buckets[i] = make(map[K]V)
		}
		buckets[i][k] = v
	}

	for i, bucket := range buckets {
		if bucket != nil {
			s.shards[i].BatchInsert(bucket)
		}
	}
}

// Delete removes key from the owning shard and reports whether it was
// present.
func (s *Sharded[K, V]) Delete(key K) bool {
	return s.shard(key).Delete(key)
}

// Clear removes all keys from all shards. Clears are per shard; a concurrent
// reader may briefly observe some shards cleared and others not.
func (s *Sharded[K, V]) Clear() {
	for _, shard := range s.shards {
		shard.Clear()
	}
}

// Len returns the total number of keys across all shards.
func (s *Sharded[K, V]) Len() int {
	n := 0
	for _, shard := range s.shards {
		n += shard.Len()
	}
	return n
}

// All returns an iterator over all entries, shard by shard. Each shard
// contributes one consistent snapshot; there is no cross-shard snapshot.
func (s *Sharded[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, shard := range s.shards {
			for k, v := range shard.All() {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// Keys returns an iterator over all keys, shard by shard.
func (s *Sharded[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, shard := range s.shards {
			for k := range shard.Keys() {
				if !yield(k) {
					return
				}
			}
		}
	}
}
