package collections

import "iter"

// Collection is the capability set shared by every collection in this
// package. [OrderedMap] implements it directly; [LazyCollection] implements
// it by forwarding each call to a backing OrderedMap it builds on first use.
//
// Accept Collection in your own functions and interfaces so that callers may
// hand you an eager or a lazy collection interchangeably — the two are
// indistinguishable through this interface.
//
// Keys are unique and entries keep their insertion order. Overwriting an
// existing key via [Collection.Set] keeps the entry's original position.
type Collection[K comparable, V any] interface {
	// Count returns the number of entries.
	Count() int

	// IsEmpty reports whether the collection contains no entries.
	IsEmpty() bool

	// IsNotEmpty reports whether the collection has at least one entry.
	IsNotEmpty() bool

	// Contains reports whether any entry's value equals value
	// (compared with reflect.DeepEqual).
	Contains(value V) bool

	// Has reports whether an entry exists under key.
	Has(key K) bool

	// Get returns the value stored under key together with a presence flag.
	Get(key K) (V, bool)

	// Set stores value under key, inserting a new entry or overwriting an
	// existing one in place.
	Set(key K, value V)

	// Add appends value under an automatically minted key and reports
	// whether an entry was added. Collections without a key sequence
	// (map-like collections) report false.
	Add(value V) bool

	// Remove deletes the entry under key, returning its value and whether
	// the entry existed.
	Remove(key K) (V, bool)

	// RemoveValue deletes the first entry whose value equals value and
	// reports whether an entry was removed.
	RemoveValue(value V) bool

	// Clear removes all entries.
	Clear()

	// Keys returns all keys in insertion order.
	Keys() []K

	// Values returns all values in insertion order.
	Values() []V

	// Pairs returns all entries in insertion order.
	Pairs() []Pair[K, V]

	// Slice returns a contiguous range of entries starting at offset with at
	// most length entries. A negative offset counts from the end; a negative
	// length means "to the end". The result is a snapshot, not a live view.
	Slice(offset, length int) []Pair[K, V]

	// First rewinds the internal cursor and returns the first value.
	First() (V, bool)

	// Last moves the internal cursor to the end and returns the last value.
	Last() (V, bool)

	// Current returns the value at the internal cursor.
	Current() (V, bool)

	// Key returns the key at the internal cursor.
	Key() (K, bool)

	// Next advances the internal cursor and returns the new current value.
	// It reports false once the cursor moves past the last entry.
	Next() (V, bool)

	// Exists reports whether at least one entry satisfies fn.
	Exists(fn func(K, V) bool) bool

	// Every reports whether all entries satisfy fn.
	// It is vacuously true on an empty collection.
	Every(fn func(K, V) bool) bool

	// Find returns the first entry satisfying fn.
	Find(fn func(K, V) bool) (K, V, bool)

	// Filter returns a new, fully realized collection containing only the
	// entries for which fn returns true, keys preserved.
	Filter(fn func(K, V) bool) Collection[K, V]

	// MapValues returns a new, fully realized collection with every value
	// transformed by fn, keys preserved. For transformations that change the
	// value type, use the package-level [Map] function.
	MapValues(fn func(V) V) Collection[K, V]

	// Reduce left-folds the values into a single value of the same type,
	// starting from initial. For folds that change the type, use the
	// package-level [Reduce] function.
	Reduce(fn func(carry, value V) V, initial V) V

	// Partition splits the collection in two: entries satisfying fn, and
	// entries that do not. Both results are fully realized, keys preserved.
	Partition(fn func(K, V) bool) (Collection[K, V], Collection[K, V])

	// IndexOf returns the key of the first entry whose value equals value
	// (compared with reflect.DeepEqual).
	IndexOf(value V) (K, bool)

	// Each calls fn for every entry in insertion order.
	Each(fn func(K, V))

	// Entries returns a live sequence over the collection's entries.
	// Each ranging of the sequence reflects the collection's state at that
	// moment, not a snapshot taken when Entries was called.
	Entries() iter.Seq2[K, V]
}

// Compile-time interface checks.
var (
	_ Collection[string, int] = (*OrderedMap[string, int])(nil)
	_ Collection[string, int] = (*LazyCollection[string, int])(nil)
)
