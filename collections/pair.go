package collections

import "fmt"

// Pair is a single (key, value) entry of a collection.
// It is the element type produced by [Collection.Pairs], [Collection.Slice]
// and [FromPairs].
//
// Portability note: this maps to a PHP key => value pair; in Python to a
// (key, value) tuple from dict.items().
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// String returns a human-readable representation: "(key, value)".
func (p Pair[K, V]) String() string {
	return fmt.Sprintf("(%v, %v)", p.Key, p.Value)
}
