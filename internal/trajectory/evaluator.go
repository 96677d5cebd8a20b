package trajectory

import (
	"fmt"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/trajgen/internal/waypoint"
)

// tracer writes to trace with key 'trajgen.trajectory'
func tracer() tracing.Trace {
	return tracing.Select("trajgen.trajectory")
}

// UseInternalClock asks an evaluation to take its time from the evaluator's
// clock.
const UseInternalClock = -1.0

// Evaluator combines a waypoint set, a restartable clock and a generator.
type Evaluator struct {
	gen     Generator
	wps     *waypoint.Set
	clock   *Clock
	last    Status
	lastT   float64
	scratch Reference
}

type Option func(*Evaluator)

// WithNow replaces the clock's time source.
func WithNow(now func() time.Time) Option {
	return func(e *Evaluator) {
		e.clock = NewClock(now)
	}
}

// New returns an armed evaluator. A nil generator behaves like
// Unimplemented; a nil set is replaced by an empty one.
func New(gen Generator, wps *waypoint.Set, opts ...Option) *Evaluator {
	if gen == nil {
		gen = Unimplemented{}
	}
	if wps == nil {
		wps = waypoint.NewSet()
	}
	e := &Evaluator{
		gen:   gen,
		wps:   wps,
		clock: NewClock(nil),
		last:  StatusOK,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate computes the open-loop reference at time t, or at the internal
// clock time when t is UseInternalClock. desired is left untouched when the
// result is StatusError.
func (e *Evaluator) Evaluate(desired *Reference, t float64) (Status, error) {
	t, started := e.resolve(t)
	e.scratch.reset(e.wps.Dimension())
	st, err := e.gen.Generate(e.wps, t, &e.scratch)
	return e.complete(desired, st, err, started)
}

// EvaluateClosedLoop computes the reference at time t given the measured
// state current. Empty vectors in current are allowed; non-empty ones must
// match the waypoint dimension.
func (e *Evaluator) EvaluateClosedLoop(desired *Reference, current Reference, t float64) (Status, error) {
	if err := e.checkCurrent(current); err != nil {
		e.last = StatusError
		return StatusError, err
	}
	t, started := e.resolve(t)
	e.scratch.reset(e.wps.Dimension())
	st, err := e.gen.GenerateClosedLoop(e.wps, t, current, &e.scratch)
	return e.complete(desired, st, err, started)
}

func (e *Evaluator) resolve(t float64) (float64, bool) {
	if t != UseInternalClock {
		e.lastT = t
		return t, false
	}
	elapsed, started := e.clock.Elapsed()
	if started {
		tracer().Debugf("clock started")
	}
	e.lastT = elapsed
	return elapsed, started
}

func (e *Evaluator) complete(desired *Reference, st Status, err error, started bool) (Status, error) {
	e.last = st
	if st == StatusError {
		if err == nil {
			err = fmt.Errorf("trajectory: generator reported error at t=%g", e.lastT)
		}
		tracer().Errorf("evaluation at t=%g failed: %v", e.lastT, err)
		if started {
			// no successful tick yet, the next one starts over
			e.clock.Arm()
		}
		return st, err
	}

	if desired != nil {
		desired.copyFrom(e.scratch)
	}
	switch {
	case st == StatusFinished:
		tracer().Debugf("trajectory finished at t=%g, re-arming clock", e.lastT)
		e.clock.Arm()
	case started && st.inFlight():
		st = StatusStart
		e.last = st
	}
	return st, err
}

func (e *Evaluator) checkCurrent(current Reference) error {
	dim := e.wps.Dimension()
	for _, v := range []waypoint.Vector{current.Position, current.Velocity, current.Acceleration} {
		if len(v) != 0 && len(v) != dim {
			tracer().Errorf("current state has dimension %d, waypoints have %d", len(v), dim)
			return fmt.Errorf("%w: want %d, got %d", ErrDimensionMismatch, dim, len(v))
		}
	}
	return nil
}

// SetWaypoints replaces the waypoint set and re-arms the clock.
func (e *Evaluator) SetWaypoints(wps *waypoint.Set) {
	if wps == nil {
		wps = waypoint.NewSet()
	}
	e.wps = wps
	e.clock.Arm()
	e.last = StatusOK
}

// Waypoints returns a copy of the waypoint set, or StatusError and
// ErrNoWaypoints when it is empty.
func (e *Evaluator) Waypoints() (*waypoint.Set, Status, error) {
	if e.wps.IsEmpty() {
		return nil, StatusError, ErrNoWaypoints
	}
	return e.wps.Clone(), StatusOK, nil
}

// Rearm restarts the clock on the next clock-driven evaluation.
func (e *Evaluator) Rearm() {
	e.clock.Arm()
	e.last = StatusOK
}

// State reports the clock phase. ClockFinished means the latest evaluation
// completed the trajectory; the clock is armed again at that point.
func (e *Evaluator) State() ClockState {
	if !e.clock.Armed() {
		return ClockRunning
	}
	if e.last == StatusFinished {
		return ClockFinished
	}
	return ClockArmed
}

// LastTime returns the time used by the latest evaluation.
func (e *Evaluator) LastTime() float64 { return e.lastT }

// LastStatus returns the status of the latest evaluation.
func (e *Evaluator) LastStatus() Status { return e.last }
