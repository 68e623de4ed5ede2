package geodata

import "errors"

// Error kinds for the loading layer. Callers match them with errors.Is;
// every loader error wraps exactly one of these.
var (
	// ErrDataAccess marks an unreadable shapefile path, an unreachable
	// URL, or a failed read.
	ErrDataAccess = errors.New("data access error")

	// ErrFormat marks structurally broken input: missing required
	// columns or attributes, unparseable numbers, non-polygon shapes.
	ErrFormat = errors.New("format error")
)
