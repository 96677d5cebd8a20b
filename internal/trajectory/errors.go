package trajectory

import "errors"

// Domain errors for trajectory evaluation.
var (
	// ErrNotImplemented indicates a generation hook that was not provided.
	ErrNotImplemented = errors.New("trajectory: generator not implemented")

	// ErrNoWaypoints indicates an operation that needs at least one waypoint.
	ErrNoWaypoints = errors.New("trajectory: waypoint set is empty")

	// ErrDimensionMismatch indicates a current-state vector whose length does
	// not match the waypoint dimension.
	ErrDimensionMismatch = errors.New("trajectory: dimension mismatch between state and waypoints")
)
