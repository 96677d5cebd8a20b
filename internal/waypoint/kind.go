package waypoint

import (
	"fmt"

	"gonum.org/v1/gonum/num/quat"
)

// Kind tags the payload a waypoint was constructed from.
type Kind int

const (
	KindNone Kind = iota
	KindVector
	KindPose
	KindOrientation
	KindWrench
	KindFrame
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindVector:
		return "vector"
	case KindPose:
		return "pose"
	case KindOrientation:
		return "orientation"
	case KindWrench:
		return "wrench"
	case KindFrame:
		return "frame"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k := KindVector; k <= KindFrame; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("%w: unknown kind %q", ErrInvalidArgument, name)
}

// Identity is the neutral rotation.
var Identity = quat.Number{Real: 1}

// Payload is the sealed set of things a waypoint can carry: PlainVector,
// Pose, Orientation, Wrench and Frame.
type Payload interface {
	Kind() Kind
	isPayload()
}

// PlainVector is an arbitrary-length coordinate vector.
type PlainVector Vector

// Pose is a position with orientation. Coordinates: [x y z qw qx qy qz].
type Pose struct {
	Position    [3]float64
	Orientation quat.Number
}

// Orientation is a bare rotation. Coordinates: [qw qx qy qz].
type Orientation struct {
	Rotation quat.Number
}

// Wrench is a force/torque pair. Coordinates: [fx fy fz tx ty tz].
type Wrench struct {
	Force  [3]float64
	Torque [3]float64
}

// Frame is a named pose. Coordinates follow Pose.
type Frame struct {
	Name        string
	Position    [3]float64
	Orientation quat.Number
}

func (PlainVector) Kind() Kind { return KindVector }
func (Pose) Kind() Kind        { return KindPose }
func (Orientation) Kind() Kind { return KindOrientation }
func (Wrench) Kind() Kind      { return KindWrench }
func (Frame) Kind() Kind       { return KindFrame }

func (PlainVector) isPayload() {}
func (Pose) isPayload()        {}
func (Orientation) isPayload() {}
func (Wrench) isPayload()      {}
func (Frame) isPayload()       {}

// fixedDimension returns the coordinate length of a kind, or -1 when the kind
// accepts any length.
func fixedDimension(k Kind) int {
	switch k {
	case KindPose, KindFrame:
		return 7
	case KindOrientation:
		return 4
	case KindWrench:
		return 6
	}
	return -1
}

func quatCoords(q quat.Number) []float64 {
	return []float64{q.Real, q.Imag, q.Jmag, q.Kmag}
}

func coordsQuat(v []float64) quat.Number {
	return quat.Number{Real: v[0], Imag: v[1], Jmag: v[2], Kmag: v[3]}
}

// flatten splits a payload into its coordinate vector and, when present, its
// orientation.
func flatten(p Payload) (coords Vector, rot quat.Number, hasRot bool) {
	switch p := p.(type) {
	case PlainVector:
		return Vector(p).Clone(), Identity, false
	case Pose:
		coords = append(Vector{p.Position[0], p.Position[1], p.Position[2]}, quatCoords(p.Orientation)...)
		return coords, p.Orientation, true
	case Orientation:
		return Vector(quatCoords(p.Rotation)), p.Rotation, true
	case Wrench:
		return Vector{p.Force[0], p.Force[1], p.Force[2], p.Torque[0], p.Torque[1], p.Torque[2]}, Identity, false
	case Frame:
		coords = append(Vector{p.Position[0], p.Position[1], p.Position[2]}, quatCoords(p.Orientation)...)
		return coords, p.Orientation, true
	}
	panic(fmt.Sprintf("waypoint: unhandled payload %T", p))
}

// PayloadOf rebuilds a payload of kind k from its flat coordinates.
func PayloadOf(k Kind, v Vector) (Payload, error) {
	if want := fixedDimension(k); want >= 0 && len(v) != want {
		return nil, &DimensionError{Index: -1, Want: want, Got: len(v)}
	}
	switch k {
	case KindVector:
		return PlainVector(v.Clone()), nil
	case KindPose:
		return Pose{Position: [3]float64{v[0], v[1], v[2]}, Orientation: coordsQuat(v[3:])}, nil
	case KindOrientation:
		return Orientation{Rotation: coordsQuat(v)}, nil
	case KindWrench:
		return Wrench{Force: [3]float64{v[0], v[1], v[2]}, Torque: [3]float64{v[3], v[4], v[5]}}, nil
	case KindFrame:
		return Frame{Position: [3]float64{v[0], v[1], v[2]}, Orientation: coordsQuat(v[3:])}, nil
	}
	return nil, fmt.Errorf("%w: no payload for kind %s", ErrInvalidArgument, k)
}
