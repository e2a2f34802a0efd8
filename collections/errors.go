package collections

import "errors"

// Sentinel errors returned by Collection operations.
var (
	// ErrNoPopulate is returned by LazyCollection.Initialize when the proxy
	// was created without a populate function.
	ErrNoPopulate = errors.New("collections: lazy collection has no populate function")

	// ErrNilBacking is returned when a populate function reports success but
	// produces a nil backing collection.
	ErrNilBacking = errors.New("collections: populate returned a nil collection")

	// ErrMismatchedLengths is returned by Combine when the key and value
	// slices have different lengths.
	ErrMismatchedLengths = errors.New("collections: keys and values must have the same length")
)
