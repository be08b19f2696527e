// Package sentinel holds the storage-level facts that stores report and
// services translate into domain errors.
package sentinel

import "errors"

var (
	// ErrNotFound: no request, data sourcing or dataset with that key.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a uniqueness rule rejected the write, such as a second
	// non-final data sourcing for one dimension.
	ErrConflict = errors.New("conflict")
)
