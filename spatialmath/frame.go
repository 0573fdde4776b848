package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Frame is the pose of one coordinate system relative to a parent: a
// position and an orientation. Orientation is typically a unit quaternion;
// no normalization is enforced, and callers supplying non-unit orientations
// get the quadrance-rescaled rotation behavior documented on
// Quaternion.Rotate.
type Frame struct {
	Position    Vector
	Orientation Quaternion
}

// NewFrame creates a Frame from a position and an orientation.
func NewFrame(position Vector, orientation Quaternion) Frame {
	return Frame{position, orientation}
}

// NewZeroFrame returns the identity pose, coincident with its parent.
func NewZeroFrame() Frame {
	return Frame{Orientation: NewZeroRotation()}
}

// AlmostEqual reports whether f and o are the same pose: positions within
// tolerance and orientations encoding the same rotation, regardless of how
// each orientation quaternion is scaled.
func (f Frame) AlmostEqual(o Frame) bool {
	return f.Position.AlmostEqual(o.Position) && f.Orientation.Similar(o.Orientation)
}

// TransformInto converts a point from the parent's coordinates into f's own.
func (f Frame) TransformInto(pointInParent Vector) Vector {
	return f.Orientation.ReverseRotate(pointInParent.Sub(f.Position))
}

// TransformOutOf converts a point from f's own coordinates into the
// parent's.
func (f Frame) TransformOutOf(pointInFrame Vector) Vector {
	return f.Orientation.Rotate(pointInFrame).Add(f.Position)
}

// Compose chains poses: if f is "parent relative to world" and child is
// "child relative to parent", the result is "child relative to world".
// Composition is associative under AlmostEqual.
func (f Frame) Compose(child Frame) Frame {
	return Frame{
		Position:    f.TransformOutOf(child.Position),
		Orientation: f.Orientation.Mul(child.Orientation),
	}
}

// Mul is Compose with the operands flipped: f.Mul(o) == o.Compose(f).
func (f Frame) Mul(o Frame) Frame {
	return o.Compose(f)
}

// Inverse returns the pose of the parent relative to f, so that
// f.Compose(f.Inverse()) is the identity pose.
func (f Frame) Inverse() Frame {
	return Frame{
		Position:    f.Orientation.ReverseRotate(f.Position.Negate()),
		Orientation: f.Orientation.Conjugate(),
	}
}

// SetPosition returns a copy of f with its position replaced.
func (f Frame) SetPosition(position Vector) Frame {
	f.Position = position
	return f
}

// SetOrientation returns a copy of f with its orientation replaced.
func (f Frame) SetOrientation(orientation Quaternion) Frame {
	f.Orientation = orientation
	return f
}

// IntrinsicNudge translates f by delta expressed in f's own coordinates.
func (f Frame) IntrinsicNudge(delta Vector) Frame {
	return f.SetPosition(f.Position.Add(f.Orientation.Rotate(delta)))
}

// ExtrinsicNudge translates f by delta expressed in the parent's
// coordinates.
func (f Frame) ExtrinsicNudge(delta Vector) Frame {
	return f.SetPosition(f.Position.Add(delta))
}

// IntrinsicRotate rotates f by delta about f's own local axes.
func (f Frame) IntrinsicRotate(delta Quaternion) Frame {
	return f.SetOrientation(f.Orientation.Mul(delta))
}

// ExtrinsicRotate rotates f by delta about the parent's axes.
func (f Frame) ExtrinsicRotate(delta Quaternion) Frame {
	return f.SetOrientation(delta.Mul(f.Orientation))
}

// Mat4 returns the affine transform matrix equivalent to f: translate by
// position after rotating by orientation, so that multiplying a point gives
// the same result as TransformOutOf. The orientation is normalized first; a
// zero orientation contributes the identity rotation.
func (f Frame) Mat4() mgl64.Mat4 {
	rot := mgl64.Ident4()
	if f.Orientation.Norm2() != 0 {
		rot = f.Orientation.Mgl64().Normalize().Mat4()
	}
	return mgl64.Translate3D(f.Position.X, f.Position.Y, f.Position.Z).Mul4(rot)
}

// DualQuaternion converts f to a dual quaternion whose real part is the
// orientation and whose dual part carries half the translation, the usual
// rigid-transform encoding. Exact for unit orientations.
func (f Frame) DualQuaternion() dualquat.Number {
	r := f.Orientation.Number()
	t := quat.Number{Imag: f.Position.X, Jmag: f.Position.Y, Kmag: f.Position.Z}
	return dualquat.Number{Real: r, Dual: quat.Scale(0.5, quat.Mul(t, r))}
}

// NewFrameFromDualQuaternion recovers a Frame from a rigid-transform dual
// quaternion with a unit real part.
func NewFrameFromDualQuaternion(dq dualquat.Number) Frame {
	t := quat.Scale(2, quat.Mul(dq.Dual, quat.Conj(dq.Real)))
	return Frame{
		Position:    Vector{t.Imag, t.Jmag, t.Kmag},
		Orientation: NewQuaternionFromNumber(dq.Real),
	}
}
