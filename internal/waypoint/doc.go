// Package waypoint provides time-indexed reference points and ordered
// collections of them.
//
//   - [Waypoint]: a coordinate vector with an optional time, an optional
//     orientation and a payload [Kind] fixed on first assignment
//   - [Set]: a dimension-consistent, time-ordered collection of waypoints with
//     flattened views for matrix export
//
// # Example
//
//	wps, err := waypoint.NewSetFromTimedVectors(
//		[]waypoint.Vector{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}},
//		[]float64{0.0, 1.1, 2.1},
//	)
//	pos, err := wps.AtTime(1.1) // [2 2 2]
//	m := wps.AsMatrix(true, false) // 4x3, times in row 0
//
// # Errors
//
// Rejected mutations never modify the receiver. The returned error wraps one of
// the sentinel errors in this package and can be tested with [errors.Is].
//
// # Thread Safety
//
// Neither type is safe for concurrent use. Callers driving a control loop from
// several goroutines must serialize access themselves.
package waypoint
