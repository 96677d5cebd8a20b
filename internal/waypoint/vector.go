package waypoint

import (
	"fmt"
	"math"
	"strings"
)

// Vector is a flat coordinate vector.
type Vector []float64

// Zero returns a zero vector of length n.
func Zero(n int) Vector {
	return make(Vector, n)
}

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

const errLengthMismatch = "waypoint: vector lengths do not match"

func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Add returns v + other. It panics if the lengths differ.
func (v Vector) Add(other Vector) Vector {
	if len(v) != len(other) {
		panic(errLengthMismatch)
	}
	result := make(Vector, len(v))
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub returns v - other. It panics if the lengths differ.
func (v Vector) Sub(other Vector) Vector {
	if len(v) != len(other) {
		panic(errLengthMismatch)
	}
	result := make(Vector, len(v))
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

func (v Vector) Scale(factor float64) Vector {
	result := make(Vector, len(v))
	for i := range v {
		result[i] = v[i] * factor
	}
	return result
}

// Equal reports whether v and other have the same length and components.
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%g", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
