// Package swapmap provides a generic, thread-safe, in-memory key-value store
// optimized for read-heavy workloads with occasional writes.
//
// Store is the main export. It supports the two operations a shared map
// needs, Get and Insert, plus structural helpers (Delete, BatchInsert, Clear,
// Len, iteration). Its thread safety comes from composing two primitives:
// an atomically swappable snapshot of the whole mapping, and one atomically
// swappable cell per key (package cell).
//
// # Reads
//
// Get loads the current snapshot with one atomic load, looks the key up, and
// reads the entry's cell with another atomic load. It never takes a lock and
// is safe to call from any number of goroutines concurrently with any other
// operation. A reader is never invalidated mid-traversal: snapshots are never
// edited in place.
//
// # Insertion
//
// There are two scenarios to consider: inserting a value under a new key, and
// inserting a new value for an existing key.
//
// Inserting under a new key changes the key set, which may reallocate and
// rearrange the underlying map. To keep readers consistent the store never
// does this in place: it takes an internal mutex (serializing structural
// writers only), re-checks that the key is still new, clones the current
// snapshot, adds a fresh cell, and publishes the clone atomically. The clone
// is O(n) in the number of keys; that is the deliberate price of lock-free
// reads.
//
//	s := swapmap.New[string, int64]()
//	s.Insert("qwerty", 12345)
//	v0, _ := s.Get("qwerty")
//	s.Insert("asdfgh", 67890)
//	v1, _ := s.Get("asdfgh")
//	// v0 == 12345, v1 == 67890
//
// Inserting under an existing key does not change the key set, so the store
// short-circuits: it swaps the contents of the key's cell directly, skipping
// lock acquisition and the O(n) clone entirely.
//
// This performance trade-off is what introduces last-writer-wins behavior for
// concurrent insertions to the same key: whichever swap physically executes
// last is what subsequent reads observe. The store never produces a torn or
// mixed value, but it makes no attempt to serialize such races. Callers that
// need stronger per-key write ordering must provide it themselves.
//
// # Handles
//
// GetHandle returns a pointer to the value read instead of a copy. The
// pointed-to value is immutable from the store's perspective: a later Insert
// swaps in a new allocation rather than mutating the old one, so a handle
// remains a valid historical read for as long as the caller keeps it.
//
// # Failure model
//
// A missing key is not an error; Get reports it through its boolean result.
// If a writer panics inside the structural critical section, the mutex is
// released by defer and the half-built clone is discarded unpublished, so the
// published snapshot stays intact; the panic itself propagates to the caller
// rather than being swallowed.
package swapmap
