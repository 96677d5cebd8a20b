package trajectory

import "github.com/san-kum/trajgen/internal/waypoint"

// Reference is a position/velocity/acceleration triple. It is used both for
// desired references and for the measured state of the controlled system.
type Reference struct {
	Position     waypoint.Vector
	Velocity     waypoint.Vector
	Acceleration waypoint.Vector
}

// NewReference returns a zero reference of dimension dim.
func NewReference(dim int) Reference {
	return Reference{
		Position:     waypoint.Zero(dim),
		Velocity:     waypoint.Zero(dim),
		Acceleration: waypoint.Zero(dim),
	}
}

func (r Reference) Clone() Reference {
	return Reference{
		Position:     r.Position.Clone(),
		Velocity:     r.Velocity.Clone(),
		Acceleration: r.Acceleration.Clone(),
	}
}

// reset zeroes r to dimension dim, reusing buffers of the right length.
func (r *Reference) reset(dim int) {
	r.Position = zeroed(r.Position, dim)
	r.Velocity = zeroed(r.Velocity, dim)
	r.Acceleration = zeroed(r.Acceleration, dim)
}

// copyFrom overwrites r with src, reusing buffers of the right length.
func (r *Reference) copyFrom(src Reference) {
	r.Position = copied(r.Position, src.Position)
	r.Velocity = copied(r.Velocity, src.Velocity)
	r.Acceleration = copied(r.Acceleration, src.Acceleration)
}

func zeroed(v waypoint.Vector, dim int) waypoint.Vector {
	if len(v) != dim {
		return waypoint.Zero(dim)
	}
	for i := range v {
		v[i] = 0
	}
	return v
}

func copied(dst, src waypoint.Vector) waypoint.Vector {
	if len(dst) != len(src) {
		return src.Clone()
	}
	copy(dst, src)
	return dst
}

// Generator computes references from a waypoint set. Both hooks receive a
// desired reference pre-sized to the waypoint dimension and zeroed; they
// must return one of the six Status values.
type Generator interface {
	// Generate is the open-loop hook: time alone drives the reference.
	Generate(wps *waypoint.Set, t float64, desired *Reference) (Status, error)

	// GenerateClosedLoop additionally sees the measured state of the
	// controlled system.
	GenerateClosedLoop(wps *waypoint.Set, t float64, current Reference, desired *Reference) (Status, error)
}

// Unimplemented reports StatusError and ErrNotImplemented from both hooks.
// Embed it in a generator that supports only one evaluation mode.
type Unimplemented struct{}

func (Unimplemented) Generate(*waypoint.Set, float64, *Reference) (Status, error) {
	return StatusError, ErrNotImplemented
}

func (Unimplemented) GenerateClosedLoop(*waypoint.Set, float64, Reference, *Reference) (Status, error) {
	return StatusError, ErrNotImplemented
}
