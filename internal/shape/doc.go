// Package shape provides concrete trajectory generators for
// [trajectory.Evaluator]:
//
//   - [NewLinear]: piecewise-linear position, constant velocity per segment
//   - [NewMinJerk]: quintic minimum-jerk blend, at rest at every waypoint
//
// Both pass through every waypoint at its time, hold the first waypoint
// before the first time and report [trajectory.StatusFinished] from the last
// time on.
//
// # Usage
//
//	ev := trajectory.New(shape.NewMinJerk(), wps)
//	st, err := ev.Evaluate(&ref, trajectory.UseInternalClock)
//
// In closed loop a shape only finishes once the measured position is within
// Tolerance of the final waypoint.
package shape
