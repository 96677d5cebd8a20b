// Package plant closes the loop around a [trajectory.Evaluator]: a simulated
// mechanism is driven by a tracking controller whose setpoints come from
// closed-loop evaluation.
//
//   - [System]: ODE model, dx/dt = f(x, u, t)
//   - [PointMass]: per-axis damped double integrator
//   - [RK4]: fixed-step Runge-Kutta integrator
//   - [Tracker]: PID with acceleration feed-forward
//   - [Loop]: runs evaluator, controller and integrator in lock step
//
// # Example
//
//	ev := trajectory.New(shape.NewMinJerk(), wps)
//	loop := plant.New(ev, plant.NewPointMass(3), plant.NewTracker(3, 40, 0, 12))
//	loop.AddMetric(plant.NewTrackingError())
//	res, err := loop.Run(ctx, x0, plant.DefaultConfig())
//
// The loop state is the position followed by the velocity, so a mechanism of
// waypoint dimension D has a 2D state vector.
package plant
