package out

import "errors"

// Sentinel errors repositories report through, so services can react
// without knowing the backing store.
var (
	// ErrDuplicate signals a uniqueness violation (e.g. email already
	// registered).
	ErrDuplicate = errors.New("duplicate entry")
)
