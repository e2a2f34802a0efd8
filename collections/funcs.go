package collections

import "iter"

// This file contains package-level generic functions for operations that
// transform a Collection[K, V] into a collection with a different value
// type (V ≠ U).
//
// Go generics do not allow methods to introduce their own type parameters,
// so these operations must be stand-alone functions. They consume the
// Entries sequence and therefore accept eager and lazy collections alike
// (calling one on a LazyCollection triggers its initialization).

// Map applies fn to every entry and returns a new OrderedMap with the same
// keys in the same order and transformed values.
//
//	labels := collections.Map(users, func(id string, u User) string {
//	    return u.Name
//	})
func Map[K comparable, V, U any](c Collection[K, V], fn func(K, V) U) *OrderedMap[K, U] {
	out := NewOrderedMap[K, U]()
	for k, v := range c.Entries() {
		out.Set(k, fn(k, v))
	}
	return out
}

// Reduce left-folds Collection[K, V] into a single value of type U.
//
//	total := collections.Reduce(cart,
//	    func(acc float64, _ string, item Item) float64 { return acc + item.Price },
//	    0.0)
func Reduce[K comparable, V, U any](c Collection[K, V], fn func(U, K, V) U, initial U) U {
	result := initial
	for k, v := range c.Entries() {
		result = fn(result, k, v)
	}
	return result
}

// GroupBy groups entries by the comparable key G extracted by fn.
// Keys and insertion order are preserved within each group.
//
//	byStatus := collections.GroupBy(orders,
//	    func(_ string, o Order) string { return o.Status })
func GroupBy[K comparable, V any, G comparable](c Collection[K, V], fn func(K, V) G) map[G]*OrderedMap[K, V] {
	groups := make(map[G]*OrderedMap[K, V])
	for k, v := range c.Entries() {
		g := fn(k, v)
		if groups[g] == nil {
			groups[g] = NewOrderedMap[K, V]()
		}
		groups[g].Set(k, v)
	}
	return groups
}

// Combine creates an OrderedMap from equal-length key and value slices.
// Returns [ErrMismatchedLengths] if len(keys) != len(values).
//
//	m, _ := collections.Combine([]string{"a", "b"}, []int{1, 2})
func Combine[K comparable, V any](keys []K, values []V) (*OrderedMap[K, V], error) {
	if len(keys) != len(values) {
		return nil, ErrMismatchedLengths
	}
	out := NewOrderedMap[K, V]()
	for i, k := range keys {
		out.Set(k, values[i])
	}
	return out, nil
}

// Collect drains a key/value sequence into a new OrderedMap.
// Later entries overwrite earlier ones with the same key.
func Collect[K comparable, V any](seq iter.Seq2[K, V]) *OrderedMap[K, V] {
	out := NewOrderedMap[K, V]()
	for k, v := range seq {
		out.Set(k, v)
	}
	return out
}
