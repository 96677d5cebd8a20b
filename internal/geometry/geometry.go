// Package geometry converts between flat coordinate vectors and richer
// pose and orientation representations. Everything here is a pure function.
//
// Quaternions are gonum quat.Number values with Real as the scalar part.
// Euler angles use the roll-pitch-yaw (X-Y-Z extrinsic) convention.
package geometry

import (
	"fmt"
	"math"

	"github.com/san-kum/trajgen/internal/waypoint"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// Normalize returns q scaled to unit length. The zero quaternion maps to the
// identity.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return waypoint.Identity
	}
	return quat.Scale(1/n, q)
}

// QuatFromRPY builds a unit quaternion from roll, pitch and yaw in radians.
func QuatFromRPY(roll, pitch, yaw float64) quat.Number {
	sr, cr := math.Sincos(roll / 2)
	sp, cp := math.Sincos(pitch / 2)
	sy, cy := math.Sincos(yaw / 2)
	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}

// RPY returns roll, pitch and yaw of q in radians.
func RPY(q quat.Number) (roll, pitch, yaw float64) {
	q = Normalize(q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	roll = math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))
	sinp := 2 * (w*y - z*x)
	switch {
	case sinp >= 1:
		pitch = math.Pi / 2
	case sinp <= -1:
		pitch = -math.Pi / 2
	default:
		pitch = math.Asin(sinp)
	}
	yaw = math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
	return roll, pitch, yaw
}

// Rotate applies q to v.
func Rotate(q quat.Number, v [3]float64) [3]float64 {
	q = Normalize(q)
	p := quat.Number{Imag: v[0], Jmag: v[1], Kmag: v[2]}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return [3]float64{r.Imag, r.Jmag, r.Kmag}
}

// RotationMatrix returns the 3x3 rotation matrix of q.
func RotationMatrix(q quat.Number) *mat.Dense {
	q = Normalize(q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return mat.NewDense(3, 3, []float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	})
}

// Transform returns the 4x4 homogeneous transform of p.
func Transform(p waypoint.Pose) *mat.Dense {
	r := RotationMatrix(p.Orientation)
	t := mat.NewDense(4, 4, nil)
	t.Slice(0, 3, 0, 3).(*mat.Dense).Copy(r)
	for i := 0; i < 3; i++ {
		t.Set(i, 3, p.Position[i])
	}
	t.Set(3, 3, 1)
	return t
}

// PoseFromVector reads [x y z qw qx qy qz] or [x y z roll pitch yaw].
func PoseFromVector(v waypoint.Vector) (waypoint.Pose, error) {
	switch len(v) {
	case 7:
		return waypoint.Pose{
			Position:    [3]float64{v[0], v[1], v[2]},
			Orientation: Normalize(quat.Number{Real: v[3], Imag: v[4], Jmag: v[5], Kmag: v[6]}),
		}, nil
	case 6:
		return waypoint.Pose{
			Position:    [3]float64{v[0], v[1], v[2]},
			Orientation: QuatFromRPY(v[3], v[4], v[5]),
		}, nil
	}
	return waypoint.Pose{}, fmt.Errorf("%w: pose needs 6 or 7 components, got %d",
		waypoint.ErrDimensionMismatch, len(v))
}

// VectorFromPose flattens p to [x y z qw qx qy qz].
func VectorFromPose(p waypoint.Pose) waypoint.Vector {
	q := p.Orientation
	return waypoint.Vector{p.Position[0], p.Position[1], p.Position[2], q.Real, q.Imag, q.Jmag, q.Kmag}
}
