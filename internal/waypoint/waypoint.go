package waypoint

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/num/quat"
)

// tracer writes to trace with key 'trajgen.waypoint'
func tracer() tracing.Trace {
	return tracing.Select("trajgen.waypoint")
}

// TimeUnset is reported by Time for a waypoint whose time was never set.
const TimeUnset = -1.0

// Waypoint is a coordinate vector with an optional time and, for poses and
// orientations, a rotation. The payload kind is fixed by the first successful
// Set and the dimension by the first non-empty one.
//
// Waypoints have value semantics: assignment copies the struct, Clone copies
// the coordinate buffer as well. The zero value is an empty waypoint of kind
// KindNone.
type Waypoint struct {
	coords Vector
	time   float64
	timed  bool
	rot    quat.Number
	kind   Kind
	name   string
}

// New returns an empty waypoint.
func New() Waypoint {
	return Waypoint{}
}

// NewVector returns a plain-vector waypoint without time.
func NewVector(v Vector) Waypoint {
	return FromPayload(PlainVector(v))
}

// NewVectorAt returns a plain-vector waypoint at time t.
func NewVectorAt(v Vector, t float64) (Waypoint, error) {
	return FromPayloadAt(PlainVector(v), t)
}

// FromPayload returns a waypoint carrying p, without time.
func FromPayload(p Payload) Waypoint {
	var w Waypoint
	// cannot fail on an empty waypoint
	_ = w.Set(p)
	return w
}

// FromPayloadAt returns a waypoint carrying p at time t.
func FromPayloadAt(p Payload, t float64) (Waypoint, error) {
	var w Waypoint
	if err := w.SetAt(p, t); err != nil {
		return New(), err
	}
	return w, nil
}

// Set replaces the coordinates (and orientation) with p. The time is kept.
func (w *Waypoint) Set(p Payload) error {
	return w.set(p, 0, false)
}

// SetAt replaces the coordinates with p and the time with t.
func (w *Waypoint) SetAt(p Payload, t float64) error {
	return w.set(p, t, true)
}

func (w *Waypoint) set(p Payload, t float64, withTime bool) error {
	if p == nil {
		return fmt.Errorf("%w: nil payload", ErrInvalidArgument)
	}
	if w.kind != KindNone && p.Kind() != w.kind {
		tracer().Errorf("cannot set %s payload on %s waypoint", p.Kind(), w.kind)
		return fmt.Errorf("%w: waypoint is %s, payload is %s", ErrTypeMismatch, w.kind, p.Kind())
	}
	coords, rot, _ := flatten(p)
	if len(w.coords) != 0 && len(coords) != len(w.coords) {
		tracer().Errorf("new waypoint dimension (%d) does not match current dimension (%d), doing nothing",
			len(coords), len(w.coords))
		return &DimensionError{Index: -1, Want: len(w.coords), Got: len(coords)}
	}
	if withTime && !(t >= 0) {
		tracer().Errorf("rejecting waypoint time %g", t)
		return fmt.Errorf("%w: time must be >= 0, got %g", ErrInvalidArgument, t)
	}

	w.kind = p.Kind()
	w.coords = coords
	w.rot = rot
	w.name = ""
	if f, ok := p.(Frame); ok {
		w.name = f.Name
	}
	if withTime {
		w.time = t
		w.timed = true
	}
	return nil
}

// SetTime sets the time. Negative times are rejected and leave the waypoint
// unchanged.
func (w *Waypoint) SetTime(t float64) error {
	if !(t >= 0) {
		tracer().Errorf("rejecting waypoint time %g", t)
		return fmt.Errorf("%w: time must be >= 0, got %g", ErrInvalidArgument, t)
	}
	w.time = t
	w.timed = true
	return nil
}

// Get returns a copy of the coordinates. With includeTime the result of Time
// is prepended, so an unset time reads as TimeUnset.
func (w Waypoint) Get(includeTime bool) Vector {
	if !includeTime {
		return w.coords.Clone()
	}
	v := make(Vector, 0, len(w.coords)+1)
	v = append(v, w.Time())
	return append(v, w.coords...)
}

// Time returns the waypoint time or TimeUnset.
func (w Waypoint) Time() float64 {
	if !w.timed {
		return TimeUnset
	}
	return w.time
}

func (w Waypoint) HasTime() bool { return w.timed }

// Rotation returns the orientation of pose, orientation and frame waypoints.
// Other kinds report ErrNoOrientation together with the identity rotation.
func (w Waypoint) Rotation() (quat.Number, error) {
	if !w.HasRotation() {
		tracer().Infof("rotation requested on %s waypoint", w.kind)
		return Identity, fmt.Errorf("%w: %s", ErrNoOrientation, w.kind)
	}
	return w.rot, nil
}

func (w Waypoint) HasRotation() bool {
	switch w.kind {
	case KindPose, KindOrientation, KindFrame:
		return true
	}
	return false
}

func (w Waypoint) Dimension() int { return len(w.coords) }
func (w Waypoint) Kind() Kind     { return w.kind }

// Payload rebuilds the typed payload. Empty waypoints return nil.
func (w Waypoint) Payload() Payload {
	if w.kind == KindNone {
		return nil
	}
	p, err := PayloadOf(w.kind, w.coords)
	if err != nil {
		return nil
	}
	if f, ok := p.(Frame); ok {
		f.Name = w.name
		return f
	}
	return p
}

func (w Waypoint) Clone() Waypoint {
	c := w
	c.coords = w.coords.Clone()
	return c
}

// Equal compares coordinates only; time and orientation are ignored.
func (w Waypoint) Equal(other Waypoint) bool {
	return w.coords.Equal(other.coords)
}

// Add returns a plain-vector waypoint holding the coordinate sum.
func (w Waypoint) Add(other Waypoint) (Waypoint, error) {
	if err := w.sameDimension(other); err != nil {
		return New(), err
	}
	return NewVector(w.coords.Add(other.coords)), nil
}

// Sub returns a plain-vector waypoint holding the coordinate difference.
func (w Waypoint) Sub(other Waypoint) (Waypoint, error) {
	if err := w.sameDimension(other); err != nil {
		return New(), err
	}
	return NewVector(w.coords.Sub(other.coords)), nil
}

// Scale returns a plain-vector waypoint holding the scaled coordinates.
func (w Waypoint) Scale(factor float64) Waypoint {
	return NewVector(w.coords.Scale(factor))
}

// Div returns a plain-vector waypoint holding the coordinates divided by
// divisor, which must be positive.
func (w Waypoint) Div(divisor float64) (Waypoint, error) {
	if !(divisor > 0) {
		tracer().Errorf("refusing to divide waypoint by %g", divisor)
		return New(), fmt.Errorf("%w: divisor must be > 0, got %g", ErrInvalidArgument, divisor)
	}
	return NewVector(w.coords.Scale(1 / divisor)), nil
}

func (w Waypoint) sameDimension(other Waypoint) error {
	if w.Dimension() != other.Dimension() {
		tracer().Errorf("waypoint dimensions do not match: %d ~= %d", w.Dimension(), other.Dimension())
		return &DimensionError{Index: -1, Want: w.Dimension(), Got: other.Dimension()}
	}
	return nil
}

func (w Waypoint) String() string {
	if !w.timed {
		return fmt.Sprintf("%s%s", w.kind, w.coords)
	}
	return fmt.Sprintf("%s%s@%g", w.kind, w.coords, w.time)
}
