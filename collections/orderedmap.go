package collections

import (
	"encoding/json"
	"fmt"
	"iter"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OrderedMap is the concrete, mutable backing collection: a keyed collection
// whose entries keep their insertion order, like a PHP array. Keys are
// unique; overwriting a key via [OrderedMap.Set] keeps the entry's original
// position.
//
// Storage is a wk8/go-ordered-map, which gives O(1) insert, lookup and
// delete while preserving order through a linked list. The capability layer
// on top (slicing, cursor traversal, functional operations) is this
// package's.
//
// # Map-like and list-like use
//
//	m := collections.NewOrderedMap[string, int]()
//	m.Set("a", 1)
//	m.Set("b", 2)
//
//	l := collections.NewList("x", "y") // int keys 0, 1
//	l.Add("z")                         // appended under key 2
//
// # Value equality
//
// Contains, RemoveValue and IndexOf compare values with reflect.DeepEqual,
// the closest Go analogue to PHP's strict comparison for arbitrary types.
//
// An OrderedMap is not safe for concurrent use.
type OrderedMap[K comparable, V any] struct {
	entries *orderedmap.OrderedMap[K, V]

	// Internal cursor shared by First/Last/Current/Key/Next, like PHP's
	// array pointer. Not started until the first cursor operation.
	cursor  *orderedmap.Pair[K, V]
	started bool

	// nextKey mints keys for Add. Nil on map-like collections.
	// Must eventually produce a key not present in the collection.
	nextKey func() K
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

// NewOrderedMap creates an empty map-like collection.
// Add is unsupported on it (there is no way to mint a key of type K);
// use [NewList] for a collection with append semantics.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{entries: orderedmap.New[K, V]()}
}

// NewList creates a list-like collection holding values under sequential
// int keys. Add mints the next free key from a monotonic counter.
func NewList[V any](values ...V) *OrderedMap[int, V] {
	next := 0
	l := NewOrderedMap[int, V]()
	l.nextKey = func() int {
		k := next
		next++
		return k
	}
	for _, v := range values {
		l.Add(v)
	}
	return l
}

// FromSlice creates a list-like collection from a slice.
// The slice itself is not retained.
func FromSlice[V any](values []V) *OrderedMap[int, V] {
	return NewList(values...)
}

// FromPairs creates a map-like collection from entries, in order.
// Later entries overwrite earlier ones with the same key.
func FromPairs[K comparable, V any](pairs []Pair[K, V]) *OrderedMap[K, V] {
	m := NewOrderedMap[K, V]()
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// derived creates an empty collection of the same kind as m, sharing m's
// key sequence so that Add keeps working on filtered/mapped results.
func (m *OrderedMap[K, V]) derived() *OrderedMap[K, V] {
	d := NewOrderedMap[K, V]()
	d.nextKey = m.nextKey
	return d
}

// ─────────────────────────────────────────────────────────────────────────────
// Size & membership
// ─────────────────────────────────────────────────────────────────────────────

// Count returns the number of entries.
func (m *OrderedMap[K, V]) Count() int { return m.entries.Len() }

// IsEmpty reports whether the collection contains no entries.
func (m *OrderedMap[K, V]) IsEmpty() bool { return m.entries.Len() == 0 }

// IsNotEmpty reports whether the collection has at least one entry.
func (m *OrderedMap[K, V]) IsNotEmpty() bool { return m.entries.Len() > 0 }

// Contains reports whether any entry's value equals value.
func (m *OrderedMap[K, V]) Contains(value V) bool {
	_, ok := m.IndexOf(value)
	return ok
}

// Has reports whether an entry exists under key.
func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.entries.Get(key)
	return ok
}

// ─────────────────────────────────────────────────────────────────────────────
// Keyed access & mutation
// ─────────────────────────────────────────────────────────────────────────────

// Get returns the value stored under key together with a presence flag.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	return m.entries.Get(key)
}

// Set stores value under key. An existing entry is overwritten in place,
// keeping its original position; a new entry is appended.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	m.entries.Set(key, value)
}

// Add appends value under the next key from the collection's key sequence,
// skipping keys that are already taken. Reports false on map-like
// collections, which have no key sequence.
func (m *OrderedMap[K, V]) Add(value V) bool {
	if m.nextKey == nil {
		return false
	}
	key := m.nextKey()
	for m.Has(key) {
		key = m.nextKey()
	}
	m.entries.Set(key, value)
	return true
}

// Remove deletes the entry under key, returning its value and whether the
// entry existed.
func (m *OrderedMap[K, V]) Remove(key K) (V, bool) {
	return m.entries.Delete(key)
}

// RemoveValue deletes the first entry whose value equals value and reports
// whether an entry was removed.
func (m *OrderedMap[K, V]) RemoveValue(value V) bool {
	key, ok := m.IndexOf(value)
	if !ok {
		return false
	}
	m.entries.Delete(key)
	return true
}

// Clear removes all entries and resets the internal cursor.
// The key sequence of a list-like collection is not rewound: keys minted
// after a Clear continue from where the counter left off.
func (m *OrderedMap[K, V]) Clear() {
	m.entries = orderedmap.New[K, V]()
	m.cursor = nil
	m.started = false
}

// ─────────────────────────────────────────────────────────────────────────────
// Bulk read
// ─────────────────────────────────────────────────────────────────────────────

// Keys returns all keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	out := make([]K, 0, m.entries.Len())
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Values returns all values in insertion order.
func (m *OrderedMap[K, V]) Values() []V {
	out := make([]V, 0, m.entries.Len())
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

// Pairs returns all entries in insertion order.
func (m *OrderedMap[K, V]) Pairs() []Pair[K, V] {
	out := make([]Pair[K, V], 0, m.entries.Len())
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		out = append(out, Pair[K, V]{Key: p.Key, Value: p.Value})
	}
	return out
}

// Slice returns a contiguous range of entries starting at offset with at
// most length entries. A negative offset counts from the end; a negative
// length means "to the end". The result is a snapshot, not a live view.
func (m *OrderedMap[K, V]) Slice(offset, length int) []Pair[K, V] {
	total := m.entries.Len()
	if offset < 0 {
		offset = total + offset
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []Pair[K, V]{}
	}
	end := total
	if length >= 0 && offset+length < total {
		end = offset + length
	}
	out := make([]Pair[K, V], 0, end-offset)
	i := 0
	for p := m.entries.Oldest(); p != nil && i < end; p = p.Next() {
		if i >= offset {
			out = append(out, Pair[K, V]{Key: p.Key, Value: p.Value})
		}
		i++
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Cursor traversal
// ─────────────────────────────────────────────────────────────────────────────
//
// The cursor is a single shared position, like PHP's internal array pointer.
// It starts at the first entry, and Next advances it until it runs off the
// end. Cursor position after removing the entry it points at is undefined;
// Clear resets it.

// current returns the entry under the cursor, starting the cursor at the
// first entry on first use.
func (m *OrderedMap[K, V]) current() *orderedmap.Pair[K, V] {
	if !m.started {
		m.cursor = m.entries.Oldest()
		m.started = true
	}
	return m.cursor
}

// First rewinds the cursor and returns the first value.
func (m *OrderedMap[K, V]) First() (V, bool) {
	m.cursor = m.entries.Oldest()
	m.started = true
	return m.Current()
}

// Last moves the cursor to the end and returns the last value.
func (m *OrderedMap[K, V]) Last() (V, bool) {
	m.cursor = m.entries.Newest()
	m.started = true
	return m.Current()
}

// Current returns the value at the cursor.
func (m *OrderedMap[K, V]) Current() (V, bool) {
	p := m.current()
	if p == nil {
		var zero V
		return zero, false
	}
	return p.Value, true
}

// Key returns the key at the cursor.
func (m *OrderedMap[K, V]) Key() (K, bool) {
	p := m.current()
	if p == nil {
		var zero K
		return zero, false
	}
	return p.Key, true
}

// Next advances the cursor and returns the new current value.
// It reports false once the cursor moves past the last entry.
func (m *OrderedMap[K, V]) Next() (V, bool) {
	if p := m.current(); p != nil {
		m.cursor = p.Next()
	}
	return m.Current()
}

// ─────────────────────────────────────────────────────────────────────────────
// Functional operations
// ─────────────────────────────────────────────────────────────────────────────

// Exists reports whether at least one entry satisfies fn.
func (m *OrderedMap[K, V]) Exists(fn func(K, V) bool) bool {
	_, _, ok := m.Find(fn)
	return ok
}

// Every reports whether all entries satisfy fn.
func (m *OrderedMap[K, V]) Every(fn func(K, V) bool) bool {
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return false
		}
	}
	return true
}

// Find returns the first entry satisfying fn.
func (m *OrderedMap[K, V]) Find(fn func(K, V) bool) (K, V, bool) {
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		if fn(p.Key, p.Value) {
			return p.Key, p.Value, true
		}
	}
	var zeroK K
	var zeroV V
	return zeroK, zeroV, false
}

// Filter returns a new collection with only the entries for which fn
// returns true, keys preserved.
func (m *OrderedMap[K, V]) Filter(fn func(K, V) bool) Collection[K, V] {
	out := m.derived()
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		if fn(p.Key, p.Value) {
			out.Set(p.Key, p.Value)
		}
	}
	return out
}

// MapValues returns a new collection with every value transformed by fn,
// keys preserved.
//
// For transformation to a different value type, use the package-level [Map]
// function.
func (m *OrderedMap[K, V]) MapValues(fn func(V) V) Collection[K, V] {
	out := m.derived()
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		out.Set(p.Key, fn(p.Value))
	}
	return out
}

// Reduce left-folds the values into a single value of the same type,
// starting from initial.
//
// For folds that change the type, use the package-level [Reduce] function.
func (m *OrderedMap[K, V]) Reduce(fn func(carry, value V) V, initial V) V {
	result := initial
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		result = fn(result, p.Value)
	}
	return result
}

// Partition splits the collection in two: entries satisfying fn, and
// entries that do not. Keys are preserved in both results.
func (m *OrderedMap[K, V]) Partition(fn func(K, V) bool) (Collection[K, V], Collection[K, V]) {
	pass := m.derived()
	fail := m.derived()
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		if fn(p.Key, p.Value) {
			pass.Set(p.Key, p.Value)
		} else {
			fail.Set(p.Key, p.Value)
		}
	}
	return pass, fail
}

// IndexOf returns the key of the first entry whose value equals value.
func (m *OrderedMap[K, V]) IndexOf(value V) (K, bool) {
	key, _, ok := m.Find(func(_ K, v V) bool {
		return reflect.DeepEqual(v, value)
	})
	return key, ok
}

// ─────────────────────────────────────────────────────────────────────────────
// Iteration
// ─────────────────────────────────────────────────────────────────────────────

// Each calls fn for every entry in insertion order.
func (m *OrderedMap[K, V]) Each(fn func(K, V)) {
	for p := m.entries.Oldest(); p != nil; p = p.Next() {
		fn(p.Key, p.Value)
	}
}

// Entries returns a live sequence over the collection's entries. Each
// ranging of the sequence walks the collection's state at that moment.
func (m *OrderedMap[K, V]) Entries() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for p := m.entries.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Serialisation
// ─────────────────────────────────────────────────────────────────────────────

// ToJSON serialises the collection to a JSON object whose members appear in
// insertion order.
func (m *OrderedMap[K, V]) ToJSON() ([]byte, error) {
	return json.Marshal(m.entries)
}

// String returns a JSON representation of the collection.
// It implements [fmt.Stringer].
func (m *OrderedMap[K, V]) String() string {
	b, err := m.ToJSON()
	if err != nil {
		return fmt.Sprintf("%v", m.Pairs())
	}
	return string(b)
}
