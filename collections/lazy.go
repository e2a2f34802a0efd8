package collections

import (
	"iter"
	"sync"
)

// Populate builds the backing collection for a [LazyCollection].
// It is called with no arguments, at most once per successful
// initialization, and may fail.
type Populate[K comparable, V any] func() (Collection[K, V], error)

// LazyCollection presents the full [Collection] surface while deferring
// construction of the real collection until the first operation that needs
// data. After that it is a pure pass-through: every call is forwarded to
// the backing collection with identical arguments, and the result is
// returned unchanged.
//
//	orders := collections.NewLazy(func() (collections.Collection[string, Order], error) {
//	    return fetchOrders(customerID)
//	})
//	// nothing fetched yet
//	if orders.IsNotEmpty() { // populate runs here, once
//	    ...
//	}
//
// # Initialization
//
// The populate function runs exactly once for any sequence of operations,
// no matter which operation comes first. [LazyCollection.IsInitialized] is
// the one operation that never triggers it.
//
// If populate fails, the proxy stays uninitialized and the next operation
// retries from scratch; populate must therefore be safe to call again
// after a failure. The error from the most recent failed attempt is
// available via [LazyCollection.Err]. Callers that want the error in hand
// rather than a zero-valued result can force initialization up front:
//
//	if err := orders.Initialize(); err != nil {
//	    return err
//	}
//
// After a failed attempt, read operations return zero values and mutations
// are no-ops until a retry succeeds.
//
// # Concurrency
//
// The check-then-populate-then-set sequence is guarded by a mutex, so
// concurrent first access populates exactly once; racers block until the
// winning initializer finishes. This is a deliberate strengthening of the
// Doctrine contract, which assumes single-threaded access. Delegated
// operations themselves are not synchronized: once initialized, a
// LazyCollection is only as goroutine-safe as its backing collection.
type LazyCollection[K comparable, V any] struct {
	mu          sync.Mutex
	populate    Populate[K, V]
	backing     Collection[K, V]
	initialized bool
	err         error
}

// NewLazy creates an uninitialized proxy that will call populate on first
// use to obtain its backing collection.
func NewLazy[K comparable, V any](populate Populate[K, V]) *LazyCollection[K, V] {
	return &LazyCollection[K, V]{populate: populate}
}

// IsInitialized reports whether the backing collection has been built.
// It never triggers initialization.
func (c *LazyCollection[K, V]) IsInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Initialize builds the backing collection if it has not been built yet,
// returning the populate error on failure. It is a no-op once the proxy is
// initialized. Calling Initialize is never required — any operation
// triggers the same code path — but it is the way to observe a populate
// failure directly.
func (c *LazyCollection[K, V]) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialize()
}

// Err returns the error from the most recent failed initialization
// attempt, or nil if the proxy is initialized or untouched.
func (c *LazyCollection[K, V]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// initialize runs the populate function once. c.mu must be held.
// On failure the initialized flag stays false so a later call retries.
func (c *LazyCollection[K, V]) initialize() error {
	if c.initialized {
		return nil
	}
	if c.populate == nil {
		c.err = ErrNoPopulate
		return c.err
	}
	backing, err := c.populate()
	if err != nil {
		c.err = err
		return err
	}
	if backing == nil {
		c.err = ErrNilBacking
		return c.err
	}
	c.backing = backing
	c.initialized = true
	c.err = nil
	return nil
}

// collection initializes if needed and hands out the backing collection.
// ok is false when initialization failed; the error is left in c.err.
func (c *LazyCollection[K, V]) collection() (Collection[K, V], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.initialize(); err != nil {
		return nil, false
	}
	return c.backing, true
}

// ─────────────────────────────────────────────────────────────────────────────
// Delegation — every method below ensures initialization, then forwards.
// ─────────────────────────────────────────────────────────────────────────────

// Count returns the number of entries.
func (c *LazyCollection[K, V]) Count() int {
	b, ok := c.collection()
	if !ok {
		return 0
	}
	return b.Count()
}

// IsEmpty reports whether the collection contains no entries.
func (c *LazyCollection[K, V]) IsEmpty() bool {
	b, ok := c.collection()
	if !ok {
		return true
	}
	return b.IsEmpty()
}

// IsNotEmpty reports whether the collection has at least one entry.
func (c *LazyCollection[K, V]) IsNotEmpty() bool {
	b, ok := c.collection()
	if !ok {
		return false
	}
	return b.IsNotEmpty()
}

// Contains reports whether any entry's value equals value.
func (c *LazyCollection[K, V]) Contains(value V) bool {
	b, ok := c.collection()
	if !ok {
		return false
	}
	return b.Contains(value)
}

// Has reports whether an entry exists under key.
func (c *LazyCollection[K, V]) Has(key K) bool {
	b, ok := c.collection()
	if !ok {
		return false
	}
	return b.Has(key)
}

// Get returns the value stored under key together with a presence flag.
func (c *LazyCollection[K, V]) Get(key K) (V, bool) {
	b, ok := c.collection()
	if !ok {
		var zero V
		return zero, false
	}
	return b.Get(key)
}

// Set stores value under key on the backing collection.
func (c *LazyCollection[K, V]) Set(key K, value V) {
	if b, ok := c.collection(); ok {
		b.Set(key, value)
	}
}

// Add appends value to the backing collection and reports whether an entry
// was added.
func (c *LazyCollection[K, V]) Add(value V) bool {
	b, ok := c.collection()
	if !ok {
		return false
	}
	return b.Add(value)
}

// Remove deletes the entry under key, returning its value and whether the
// entry existed.
func (c *LazyCollection[K, V]) Remove(key K) (V, bool) {
	b, ok := c.collection()
	if !ok {
		var zero V
		return zero, false
	}
	return b.Remove(key)
}

// RemoveValue deletes the first entry whose value equals value and reports
// whether an entry was removed.
func (c *LazyCollection[K, V]) RemoveValue(value V) bool {
	b, ok := c.collection()
	if !ok {
		return false
	}
	return b.RemoveValue(value)
}

// Clear removes all entries from the backing collection.
// The proxy stays initialized: clearing does not undo initialization.
func (c *LazyCollection[K, V]) Clear() {
	if b, ok := c.collection(); ok {
		b.Clear()
	}
}

// Keys returns all keys in insertion order.
func (c *LazyCollection[K, V]) Keys() []K {
	b, ok := c.collection()
	if !ok {
		return []K{}
	}
	return b.Keys()
}

// Values returns all values in insertion order.
func (c *LazyCollection[K, V]) Values() []V {
	b, ok := c.collection()
	if !ok {
		return []V{}
	}
	return b.Values()
}

// Pairs returns all entries in insertion order.
func (c *LazyCollection[K, V]) Pairs() []Pair[K, V] {
	b, ok := c.collection()
	if !ok {
		return []Pair[K, V]{}
	}
	return b.Pairs()
}

// Slice returns a contiguous range of entries starting at offset with at
// most length entries.
func (c *LazyCollection[K, V]) Slice(offset, length int) []Pair[K, V] {
	b, ok := c.collection()
	if !ok {
		return []Pair[K, V]{}
	}
	return b.Slice(offset, length)
}

// First rewinds the backing collection's cursor and returns the first value.
func (c *LazyCollection[K, V]) First() (V, bool) {
	b, ok := c.collection()
	if !ok {
		var zero V
		return zero, false
	}
	return b.First()
}

// Last moves the backing collection's cursor to the end and returns the
// last value.
func (c *LazyCollection[K, V]) Last() (V, bool) {
	b, ok := c.collection()
	if !ok {
		var zero V
		return zero, false
	}
	return b.Last()
}

// Current returns the value at the backing collection's cursor.
func (c *LazyCollection[K, V]) Current() (V, bool) {
	b, ok := c.collection()
	if !ok {
		var zero V
		return zero, false
	}
	return b.Current()
}

// Key returns the key at the backing collection's cursor.
func (c *LazyCollection[K, V]) Key() (K, bool) {
	b, ok := c.collection()
	if !ok {
		var zero K
		return zero, false
	}
	return b.Key()
}

// Next advances the backing collection's cursor and returns the new
// current value.
func (c *LazyCollection[K, V]) Next() (V, bool) {
	b, ok := c.collection()
	if !ok {
		var zero V
		return zero, false
	}
	return b.Next()
}

// Exists reports whether at least one entry satisfies fn.
func (c *LazyCollection[K, V]) Exists(fn func(K, V) bool) bool {
	b, ok := c.collection()
	if !ok {
		return false
	}
	return b.Exists(fn)
}

// Every reports whether all entries satisfy fn.
func (c *LazyCollection[K, V]) Every(fn func(K, V) bool) bool {
	b, ok := c.collection()
	if !ok {
		return true
	}
	return b.Every(fn)
}

// Find returns the first entry satisfying fn.
func (c *LazyCollection[K, V]) Find(fn func(K, V) bool) (K, V, bool) {
	b, ok := c.collection()
	if !ok {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	return b.Find(fn)
}

// Filter returns a new collection with only the entries for which fn
// returns true. The result is of the backing collection's kind, fully
// realized — it is not itself lazy.
func (c *LazyCollection[K, V]) Filter(fn func(K, V) bool) Collection[K, V] {
	b, ok := c.collection()
	if !ok {
		return NewOrderedMap[K, V]()
	}
	return b.Filter(fn)
}

// MapValues returns a new collection with every value transformed by fn,
// keys preserved. The result is not itself lazy.
func (c *LazyCollection[K, V]) MapValues(fn func(V) V) Collection[K, V] {
	b, ok := c.collection()
	if !ok {
		return NewOrderedMap[K, V]()
	}
	return b.MapValues(fn)
}

// Reduce left-folds the values into a single value of the same type,
// starting from initial.
func (c *LazyCollection[K, V]) Reduce(fn func(carry, value V) V, initial V) V {
	b, ok := c.collection()
	if !ok {
		return initial
	}
	return b.Reduce(fn, initial)
}

// Partition splits the collection in two: entries satisfying fn, and
// entries that do not. Neither result is itself lazy.
func (c *LazyCollection[K, V]) Partition(fn func(K, V) bool) (Collection[K, V], Collection[K, V]) {
	b, ok := c.collection()
	if !ok {
		return NewOrderedMap[K, V](), NewOrderedMap[K, V]()
	}
	return b.Partition(fn)
}

// IndexOf returns the key of the first entry whose value equals value.
func (c *LazyCollection[K, V]) IndexOf(value V) (K, bool) {
	b, ok := c.collection()
	if !ok {
		var zero K
		return zero, false
	}
	return b.IndexOf(value)
}

// Each calls fn for every entry in insertion order.
func (c *LazyCollection[K, V]) Each(fn func(K, V)) {
	if b, ok := c.collection(); ok {
		b.Each(fn)
	}
}

// Entries returns a live sequence over the backing collection's entries.
// Calling Entries triggers initialization; ranging the sequence reflects
// the backing collection's state at that moment.
func (c *LazyCollection[K, V]) Entries() iter.Seq2[K, V] {
	b, ok := c.collection()
	if !ok {
		return func(func(K, V) bool) {}
	}
	return b.Entries()
}
