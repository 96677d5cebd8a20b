// Package trajectory turns a waypoint set and a time into position, velocity
// and acceleration references for a control loop.
//
// An [Evaluator] owns a [waypoint.Set] and a restartable [Clock] and delegates
// the numeric work to a [Generator]. Concrete trajectory shapes implement
// Generator; embed [Unimplemented] to inherit an explicit "not implemented"
// result for the hook a shape does not support.
//
// # Clock
//
// Passing [UseInternalClock] as time makes the evaluator use its own clock.
// The first such call after arming starts the clock and reports
// [StatusStart]; later calls report the generator's status. When the
// generator reports [StatusFinished] the clock re-arms, so the next call
// starts again from zero. Any other time value is passed through verbatim and
// leaves the clock alone.
//
// # Usage
//
//	ev := trajectory.New(shape.NewMinJerk(), wps)
//	var ref trajectory.Reference
//	for {
//		st, err := ev.Evaluate(&ref, trajectory.UseInternalClock)
//		if st.Failed() { ... }
//		// feed ref.Position etc. to the controller
//		if st == trajectory.StatusFinished { break }
//	}
//
// # Thread Safety
//
// Evaluator instances are NOT thread-safe. Use one evaluator per control
// loop or serialize access externally.
package trajectory
