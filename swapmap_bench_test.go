package swapmap

import (
	"strconv"
	"sync/atomic"
	"testing"
)

func prefill(n int) (*Store[string, int], []string) {
	s := NewWithCapacity[string, int](n)
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = "key-" + strconv.Itoa(i)
		s.Insert(keys[i], i)
	}
	return s, keys
}

func BenchmarkStoreGet(b *testing.B) {
	s, keys := prefill(1024)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = s.Get(keys[i%len(keys)])
			i++
		}
	})
}

func BenchmarkStoreGetHandle(b *testing.B) {
	s, keys := prefill(1024)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = s.GetHandle(keys[i%len(keys)])
			i++
		}
	})
}

func BenchmarkStoreInsertFastPath(b *testing.B) {
	s, keys := prefill(1024)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			s.Insert(keys[i%len(keys)], i)
			i++
		}
	})
}

// BenchmarkStoreStructuralInsert measures the slow path against a store of
// fixed size: every iteration adds one new key and removes it again, so each
// op pays two snapshot clones of 1024 entries.
func BenchmarkStoreStructuralInsert(b *testing.B) {
	s, _ := prefill(1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := "fresh-" + strconv.Itoa(i)
		s.Insert(key, i)
		s.Delete(key)
	}
}

func BenchmarkStoreMixedReadWrite(b *testing.B) {
	s, keys := prefill(1024)

	var counter atomic.Int64
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			n := counter.Add(1)
			key := keys[int(n)%len(keys)]
			if n%10 == 0 {
				s.Insert(key, int(n))
			} else {
				_, _ = s.Get(key)
			}
		}
	})
}

func BenchmarkShardedInsertFastPath(b *testing.B) {
	s := NewSharded[string, int](8)
	keys := make([]string, 1024)
	for i := range keys {
		keys[i] = "key-" + strconv.Itoa(i)
		s.Insert(keys[i], i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			s.Insert(keys[i%len(keys)], i)
			i++
		}
	})
}
