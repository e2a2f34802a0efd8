// Package collections provides a generic, insertion-ordered, keyed
// Collection type and a lazily-initialized collection proxy, inspired by
// Doctrine's doctrine/collections (ArrayCollection and
// AbstractLazyCollection).
//
// # Overview
//
// The central abstraction is the [Collection] interface: a keyed collection
// whose keys are unique and whose entries keep their insertion order, the
// way a PHP array does. Two implementations ship with the package:
//
//   - [OrderedMap] — the concrete backing collection. Map-like use keys
//     entries by any comparable type; list-like use (via [NewList] or
//     [FromSlice]) appends under automatically minted int keys.
//   - [LazyCollection] — a proxy that defers building its backing
//     collection until the first operation that needs data, then forwards
//     every call to it unchanged.
//
// # Laziness
//
// A LazyCollection is created with a populate function and nothing else:
//
//	users := collections.NewLazy(func() (collections.Collection[string, User], error) {
//	    return loadUsersFromDB() // runs once, on first access
//	})
//
//	users.IsInitialized() // false — no work done yet
//	users.Count()         // populate runs here, exactly once
//	users.Get("alice")    // plain delegation, no second populate
//
// Populate runs at most once per proxy. If it fails, the proxy stays
// uninitialized and the next operation retries; the error is available via
// [LazyCollection.Err], or directly from an explicit
// [LazyCollection.Initialize] call.
//
// # Type-transforming operations
//
// Go generics do not allow methods to introduce new type parameters, so
// operations that change the value type are exposed as package-level
// functions:
//
//	// Method-based (value type preserved):
//	prices.MapValues(func(p float64) float64 { return p * 1.2 })
//
//	// Package-level (string values, fully typed, keys preserved):
//	collections.Map(prices, func(_ string, p float64) string {
//	    return fmt.Sprintf("%.2f", p)
//	})
//
// Package-level functions: [Map], [Reduce], [GroupBy], [Combine], [Collect].
// All of them consume the [Collection.Entries] sequence, so they behave
// identically on eager and lazy collections.
//
// # Portability
//
// The API mirrors Doctrine's Collection contract where Go allows:
//
//   - contains/containsKey → [Collection.Contains] / [Collection.Has]
//   - add/set/remove/removeElement → Add/Set/Remove/RemoveValue
//   - exists/forAll → [Collection.Exists] / [Collection.Every]
//   - first/last/current/key/next → the cursor family (a single shared
//     internal cursor, like PHP's array pointer)
//
// Operations that Doctrine reports with null or false use (value, ok)
// returns here; errors are reserved for initialization failures.
package collections
