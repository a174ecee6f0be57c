package bubble

import "errors"

var (
	// ErrInvalidTopology reports that a structural precondition of an
	// operation does not hold. Operations returning it leave the cluster
	// unchanged.
	ErrInvalidTopology = errors.New("invalid topology")

	// ErrDegenerateGeometry reports input geometry the engine cannot use,
	// such as a curve with fewer than two points or zero enclosed area.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrNotFound reports a reference to an entity that is not part of the
	// cluster.
	ErrNotFound = errors.New("not found")
)
