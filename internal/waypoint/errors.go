package waypoint

import (
	"errors"
	"fmt"
)

// Domain errors for waypoint operations.
var (
	// ErrDimensionMismatch indicates a coordinate length that conflicts with an
	// already fixed dimension.
	ErrDimensionMismatch = errors.New("waypoint: dimension mismatch")

	// ErrTypeMismatch indicates a payload of a different kind than the one
	// already fixed on the waypoint.
	ErrTypeMismatch = errors.New("waypoint: payload kind mismatch")

	// ErrSizeMismatch indicates parallel batches of unequal length.
	ErrSizeMismatch = errors.New("waypoint: batch sizes differ")

	// ErrInvalidArgument indicates a negative time, a non-positive divisor or an
	// empty waypoint in a batch.
	ErrInvalidArgument = errors.New("waypoint: invalid argument")

	// ErrNotFound indicates an exact-time lookup miss.
	ErrNotFound = errors.New("waypoint: no waypoint at requested time")

	// ErrNoOrientation indicates an orientation request on a kind that has none.
	ErrNoOrientation = errors.New("waypoint: kind carries no orientation")

	// ErrIndexOutOfRange indicates an index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("waypoint: index out of range")
)

// DimensionError reports the expected and offered coordinate lengths.
type DimensionError struct {
	Index int // position in a batch, -1 for single values
	Want  int
	Got   int
}

func (e *DimensionError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("waypoint: dimension mismatch at index %d: want %d, got %d", e.Index, e.Want, e.Got)
	}
	return fmt.Sprintf("waypoint: dimension mismatch: want %d, got %d", e.Want, e.Got)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}
