package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"

	"github.com/nphollon/geo3d/utils"
)

// Quaternion is the quaternion Real + Imag.X*i + Imag.Y*j + Imag.Z*k.
//
// A unit quaternion encodes a rotation, but unit norm is not enforced:
// general quaternions, including zero, are valid values for every operation.
// The Rotate operator rescales by the quadrance so that non-unit quaternions
// still rotate without stretching, and treats the zero quaternion as the
// identity rotation.
type Quaternion struct {
	Real float64
	Imag Vector
}

// NewQuaternion creates a Quaternion from its four components.
func NewQuaternion(w, x, y, z float64) Quaternion {
	return Quaternion{w, Vector{x, y, z}}
}

// NewZeroRotation returns the identity quaternion (1, 0, 0, 0).
func NewZeroRotation() Quaternion {
	return Quaternion{Real: 1}
}

// NewXRotation returns the rotation by theta radians counter-clockwise about
// the x axis, following the right-hand rule.
func NewXRotation(theta float64) Quaternion {
	return Quaternion{math.Cos(theta / 2), Vector{X: math.Sin(theta / 2)}}
}

// NewYRotation returns the rotation by theta radians counter-clockwise about
// the y axis.
func NewYRotation(theta float64) Quaternion {
	return Quaternion{math.Cos(theta / 2), Vector{Y: math.Sin(theta / 2)}}
}

// NewZRotation returns the rotation by theta radians counter-clockwise about
// the z axis.
func NewZRotation(theta float64) Quaternion {
	return Quaternion{math.Cos(theta / 2), Vector{Z: math.Sin(theta / 2)}}
}

// NewXRotationDegrees is NewXRotation with the angle given in degrees.
func NewXRotationDegrees(degrees float64) Quaternion {
	return NewXRotation(utils.DegToRad(degrees))
}

// NewYRotationDegrees is NewYRotation with the angle given in degrees.
func NewYRotationDegrees(degrees float64) Quaternion {
	return NewYRotation(utils.DegToRad(degrees))
}

// NewZRotationDegrees is NewZRotation with the angle given in degrees.
func NewZRotationDegrees(degrees float64) Quaternion {
	return NewZRotation(utils.DegToRad(degrees))
}

// NewQuaternionFromAxisAngle returns the rotation by angle radians about the
// given axis. The second return is false when the axis is the zero vector.
func NewQuaternionFromAxisAngle(axis Vector, angle float64) (Quaternion, bool) {
	unit, ok := axis.Normalize()
	if !ok {
		return Quaternion{}, false
	}
	return Quaternion{math.Cos(angle / 2), unit.Scale(math.Sin(angle / 2))}, true
}

// NewQuaternionFromRotationVector interprets v as a rotation vector, whose
// direction is the axis and whose length is the angle in radians. The zero
// vector maps to the identity rotation.
func NewQuaternionFromRotationVector(v Vector) Quaternion {
	q, ok := NewQuaternionFromAxisAngle(v, v.Norm())
	if !ok {
		return NewZeroRotation()
	}
	return q
}

// RotationBetween returns the quaternion rotating the direction of u onto the
// direction of v; the lengths of both inputs are ignored. Aligned inputs give
// the identity. For exactly anti-parallel inputs the rotation axis is ill
// defined, so v is nudged off the shared line and the computation retried;
// the axis chosen in that case is numerically arbitrary but valid.
func RotationBetween(u, v Vector) Quaternion {
	c := u.Cross(v)
	angle := math.Atan2(c.Norm(), u.Dot(v))
	if angle == 0 {
		return NewZeroRotation()
	}
	if c.Norm() == 0 {
		nudge := Vector{X: 1e-10}
		if u.Y == 0 && u.Z == 0 {
			// u lies on the x axis, so an x nudge would stay on the line.
			nudge = Vector{Z: -1e-10}
		}
		return RotationBetween(u, v.Add(nudge))
	}
	return NewQuaternionFromRotationVector(c.Scale(angle / c.Norm()))
}

// Conjugate returns q with its imaginary part negated.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{q.Real, q.Imag.Negate()}
}

// Add returns the component-wise sum of q and o. Addition is interpolation
// math, not rotation composition; composing rotations uses Mul or Compose.
func (q Quaternion) Add(o Quaternion) Quaternion {
	return Quaternion{q.Real + o.Real, q.Imag.Add(o.Imag)}
}

// Scale returns q with all four components multiplied by f.
func (q Quaternion) Scale(f float64) Quaternion {
	return Quaternion{f * q.Real, q.Imag.Scale(f)}
}

// Mul returns the Hamilton product q ⊗ o. As a rotation it applies o first
// and the receiver second.
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return NewQuaternionFromNumber(quat.Mul(q.Number(), o.Number()))
}

// Compose returns o ⊗ q, the rotation applying the receiver first and o
// second. It is Mul with the operands flipped; pipelines that read left to
// right usually want this order.
func (q Quaternion) Compose(o Quaternion) Quaternion {
	return o.Mul(q)
}

// Norm2 returns the squared norm (quadrance) of q.
func (q Quaternion) Norm2() float64 {
	return q.Real*q.Real + q.Imag.Norm2()
}

// Norm returns the norm of q.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.Norm2())
}

// Rotate applies q's rotation to v, computing q ⊗ v ⊗ conj(q) and rescaling
// by the inverse quadrance so the output keeps v's length even for non-unit
// q. The zero quaternion rotates as the identity.
func (q Quaternion) Rotate(v Vector) Vector {
	n2 := q.Norm2()
	if n2 == 0 {
		return v
	}
	qn := q.Number()
	vn := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(qn, vn), quat.Conj(qn))
	return Vector{r.Imag, r.Jmag, r.Kmag}.Scale(1 / n2)
}

// ReverseRotate applies the inverse of q's rotation to v.
func (q Quaternion) ReverseRotate(v Vector) Vector {
	return q.Conjugate().Rotate(v)
}

// AlmostEqual reports whether each of o's four components is within tolerance
// of q's. As with Vector.AlmostEqual, the tolerance scales with the magnitude
// of the receiver only.
func (q Quaternion) AlmostEqual(o Quaternion) bool {
	threshold := math.Max(1, q.Norm2()) * equalityThreshold
	dw := q.Real - o.Real
	d := q.Imag.Sub(o.Imag)
	return dw*dw < threshold && d.X*d.X < threshold && d.Y*d.Y < threshold && d.Z*d.Z < threshold
}

// Similar reports whether q and o encode the same rotation, ignoring any
// difference in overall scale or sign. Zero quaternions are similar only to
// quaternions they are AlmostEqual to.
func (q Quaternion) Similar(o Quaternion) bool {
	if q.AlmostEqual(o) {
		return true
	}
	if q.Norm2() <= 0 || o.Norm2() <= 0 {
		return false
	}
	// q and o encode the same rotation exactly when their quotient is a pure
	// scalar.
	d := q.Mul(o.Conjugate())
	return d.Imag.Norm2()/d.Norm2() < equalityThreshold
}

// RotationVector converts q to a rotation vector, inverting
// NewQuaternionFromRotationVector. A zero imaginary part yields the zero
// vector.
func (q Quaternion) RotationVector() Vector {
	n := q.Imag.Norm()
	if n == 0 {
		return q.Imag
	}
	return q.Imag.Scale(2 * math.Acos(q.Real) / n)
}

// Angle returns the rotation angle of q in radians. The atan2 form keeps
// precision where 2*acos(Real) degrades, near Real = ±1.
func (q Quaternion) Angle() float64 {
	return 2 * math.Atan2(q.Imag.Norm(), q.Real)
}

// Axis returns the unit rotation axis of q, defaulting to the x axis when
// the imaginary part is zero and no axis is encoded.
func (q Quaternion) Axis() Vector {
	axis, ok := q.Imag.Normalize()
	if !ok {
		return XAxis()
	}
	return axis
}

// Number converts q to a gonum quat.Number.
func (q Quaternion) Number() quat.Number {
	return quat.Number{Real: q.Real, Imag: q.Imag.X, Jmag: q.Imag.Y, Kmag: q.Imag.Z}
}

// NewQuaternionFromNumber converts a gonum quat.Number to a Quaternion.
func NewQuaternionFromNumber(n quat.Number) Quaternion {
	return Quaternion{n.Real, Vector{n.Imag, n.Jmag, n.Kmag}}
}

// Mgl64 converts q to a mathgl quaternion.
func (q Quaternion) Mgl64() mgl64.Quat {
	return mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag.X, q.Imag.Y, q.Imag.Z}}
}

// NewQuaternionFromMgl64 converts a mathgl quaternion to a Quaternion.
func NewQuaternionFromMgl64(q mgl64.Quat) Quaternion {
	return Quaternion{q.W, Vector{q.V.X(), q.V.Y(), q.V.Z()}}
}
