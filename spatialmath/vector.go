// Package spatialmath defines vector algebra, quaternion rotations, and
// composable reference frames for rigid-body math in 3D Euclidean space.
//
// All three types are immutable values: every operation returns a new value
// and nothing is mutated in place, so they are safe to share across
// goroutines without synchronization.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// equalityThreshold is the tolerance scale used by the AlmostEqual methods.
const equalityThreshold = 1e-10

// Vector is a 3-component real vector.
type Vector struct {
	X float64
	Y float64
	Z float64
}

// NewVector creates a Vector from its three components.
func NewVector(x, y, z float64) Vector {
	return Vector{x, y, z}
}

// NewZeroVector returns the zero vector, the additive identity.
func NewZeroVector() Vector {
	return Vector{}
}

// XAxis returns the x unit basis vector.
func XAxis() Vector {
	return Vector{X: 1}
}

// YAxis returns the y unit basis vector.
func YAxis() Vector {
	return Vector{Y: 1}
}

// ZAxis returns the z unit basis vector.
func ZAxis() Vector {
	return Vector{Z: 1}
}

// Add returns the component-wise sum of v and o.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference of v and o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Negate returns the vector pointing opposite to v.
func (v Vector) Negate() Vector {
	return NewZeroVector().Sub(v)
}

// Scale returns v with each component multiplied by c.
func (v Vector) Scale(c float64) Vector {
	return Vector{c * v.X, c * v.Y, c * v.Z}
}

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the right-handed cross product of v and o.
func (v Vector) Cross(o Vector) Vector {
	return Vector{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Norm2 returns the squared length (quadrance) of v.
func (v Vector) Norm2() float64 {
	return v.Dot(v)
}

// Norm returns the length of v.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.Norm2())
}

// Distance returns the distance between the points v and o.
func (v Vector) Distance(o Vector) float64 {
	return v.Sub(o).Norm()
}

// Distance2 returns the squared distance between the points v and o.
func (v Vector) Distance2(o Vector) float64 {
	return v.Sub(o).Norm2()
}

// Normalize returns the unit vector in v's direction. The second return is
// false when v has exactly zero length and no direction exists.
func (v Vector) Normalize() (Vector, bool) {
	n := v.Norm()
	if n == 0 {
		return Vector{}, false
	}
	return v.Scale(1 / n), true
}

// DirectionFrom returns the unit vector pointing from o toward v, or false
// when the two points coincide exactly.
func (v Vector) DirectionFrom(o Vector) (Vector, bool) {
	return v.Sub(o).Normalize()
}

// AlmostEqual reports whether each component of o is within tolerance of the
// corresponding component of v. The tolerance scales with the magnitude of
// the receiver only, so the relation is deliberately not symmetric.
func (v Vector) AlmostEqual(o Vector) bool {
	threshold := math.Max(1, v.Norm2()) * equalityThreshold
	d := v.Sub(o)
	return d.X*d.X < threshold && d.Y*d.Y < threshold && d.Z*d.Z < threshold
}

// R3 converts v to a golang/geo r3.Vector.
func (v Vector) R3() r3.Vector {
	return r3.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

// NewVectorFromR3 converts a golang/geo r3.Vector to a Vector.
func NewVectorFromR3(v r3.Vector) Vector {
	return Vector{v.X, v.Y, v.Z}
}
