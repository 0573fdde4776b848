package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"github.com/nphollon/geo3d/utils"
)

var sampleQuaternions = []Quaternion{
	NewZeroRotation(),
	NewQuaternion(0, 0, 0, 0),
	NewQuaternion(1, 2, -3, 1),
	NewQuaternion(-4, -1, 1, 5),
	NewXRotation(math.Pi / 3),
	NewYRotation(-math.Pi / 5),
	NewZRotation(3 * math.Pi / 4),
	NewQuaternionFromRotationVector(NewVector(0.1, -0.2, 0.3)),
}

var sampleVectors = []Vector{
	NewZeroVector(),
	XAxis(),
	NewVector(1, 2, 3),
	NewVector(-0.5, 0.25, -4),
}

func TestQuaternionConstruction(t *testing.T) {
	test.That(t, NewQuaternion(1, 2, 3, 4), test.ShouldResemble, Quaternion{1, Vector{2, 3, 4}})
	test.That(t, NewZeroRotation(), test.ShouldResemble, Quaternion{1, Vector{}})

	q := NewXRotation(math.Pi / 2)
	test.That(t, q.Real, test.ShouldAlmostEqual, math.Sqrt2/2)
	test.That(t, q.Imag.X, test.ShouldAlmostEqual, math.Sqrt2/2)
	test.That(t, q.Imag.Y, test.ShouldEqual, 0)
	test.That(t, q.Imag.Z, test.ShouldEqual, 0)

	test.That(t, NewXRotationDegrees(90), test.ShouldResemble, NewXRotation(utils.DegToRad(90)))
	test.That(t, NewYRotationDegrees(45), test.ShouldResemble, NewYRotation(utils.DegToRad(45)))
	test.That(t, NewZRotationDegrees(-30), test.ShouldResemble, NewZRotation(utils.DegToRad(-30)))
}

func TestQuaternionArithmetic(t *testing.T) {
	test.That(t,
		NewQuaternion(0, 1, 1, 5).Add(NewQuaternion(1, 1, 2, -1)),
		test.ShouldResemble, NewQuaternion(1, 2, 3, 4))

	test.That(t,
		NewQuaternion(1, 2, -3, 1).Mul(NewQuaternion(-4, -1, 1, 5)),
		test.ShouldResemble, NewQuaternion(-4, -25, 2, 0))

	// Compose flips the operand order of Mul.
	p := NewQuaternion(1, 2, -3, 1)
	q := NewQuaternion(-4, -1, 1, 5)
	test.That(t, p.Compose(q), test.ShouldResemble, q.Mul(p))

	test.That(t, NewQuaternion(1, 2, 3, 4).Conjugate(), test.ShouldResemble, NewQuaternion(1, -2, -3, -4))
	test.That(t, NewQuaternion(1, 2, 3, 4).Scale(-2), test.ShouldResemble, NewQuaternion(-2, -4, -6, -8))

	test.That(t, NewQuaternion(1, 2, 3, 4).Norm2(), test.ShouldEqual, 30)
	test.That(t, NewQuaternion(0, 3, 0, 4).Norm(), test.ShouldEqual, 5)
}

func TestMulAssociativity(t *testing.T) {
	for _, p := range sampleQuaternions {
		for _, q := range sampleQuaternions {
			for _, r := range sampleQuaternions {
				left := p.Mul(q.Mul(r))
				right := p.Mul(q).Mul(r)
				test.That(t, left.AlmostEqual(right), test.ShouldBeTrue)
			}
		}
	}
}

func TestRotate(t *testing.T) {
	// 90 degrees about x, via a non-unit quaternion; the quadrance rescale
	// keeps the output length.
	rotated := NewQuaternion(1, 1, 0, 0).Rotate(YAxis())
	test.That(t, rotated.AlmostEqual(ZAxis()), test.ShouldBeTrue)

	rotated = NewXRotation(math.Pi/2).Rotate(YAxis())
	test.That(t, rotated.AlmostEqual(ZAxis()), test.ShouldBeTrue)

	rotated = NewZRotation(math.Pi/2).Rotate(XAxis())
	test.That(t, rotated.AlmostEqual(YAxis()), test.ShouldBeTrue)

	// The zero quaternion rotates as the identity rather than dividing by a
	// zero quadrance.
	test.That(t, NewQuaternion(0, 0, 0, 0).Rotate(XAxis()), test.ShouldResemble, XAxis())
}

func TestRotateLengthPreservation(t *testing.T) {
	for _, q := range sampleQuaternions {
		for _, v := range sampleVectors {
			rotated := q.Rotate(v)
			test.That(t, utils.Float64AlmostEqual(rotated.Norm(), v.Norm(), 1e-8), test.ShouldBeTrue)
		}
	}
}

func TestReverseRotate(t *testing.T) {
	for _, q := range sampleQuaternions {
		for _, v := range sampleVectors {
			roundTripped := q.ReverseRotate(q.Rotate(v))
			test.That(t, roundTripped.AlmostEqual(v) || v.AlmostEqual(roundTripped), test.ShouldBeTrue)
		}
	}
}

func TestQuaternionAlmostEqual(t *testing.T) {
	q := NewQuaternion(1, 2, 3, 4)
	test.That(t, q.AlmostEqual(q), test.ShouldBeTrue)
	test.That(t, q.AlmostEqual(NewQuaternion(1, 2, 3, 4.0001)), test.ShouldBeFalse)

	// Unit-scale threshold is sqrt(1e-10) per component.
	id := NewZeroRotation()
	test.That(t, id.AlmostEqual(NewQuaternion(1, 0, 0.99e-5, 0)), test.ShouldBeTrue)
	test.That(t, id.AlmostEqual(NewQuaternion(1, 0, 1.01e-5, 0)), test.ShouldBeFalse)
}

func TestSimilar(t *testing.T) {
	q := NewZRotation(math.Pi / 3)

	// Any nonzero rescaling, including sign flips, encodes the same rotation.
	test.That(t, q.Similar(q.Scale(-1)), test.ShouldBeTrue)
	test.That(t, q.Similar(q.Scale(2.5)), test.ShouldBeTrue)
	test.That(t, q.Similar(NewZRotation(math.Pi/3+1e-3)), test.ShouldBeFalse)
	test.That(t, q.Similar(NewYRotation(math.Pi/3)), test.ShouldBeFalse)

	zero := NewQuaternion(0, 0, 0, 0)
	test.That(t, zero.Similar(zero), test.ShouldBeTrue)
	test.That(t, zero.Similar(NewZeroRotation()), test.ShouldBeFalse)
	test.That(t, NewZeroRotation().Similar(zero), test.ShouldBeFalse)
}

func TestRotationBetween(t *testing.T) {
	q := RotationBetween(XAxis(), YAxis())
	test.That(t, q.Similar(NewZRotation(math.Pi/2)), test.ShouldBeTrue)
	test.That(t, q.Rotate(XAxis()).AlmostEqual(YAxis()), test.ShouldBeTrue)

	// Lengths are ignored.
	q = RotationBetween(NewVector(3, 0, 0), NewVector(0, 0, -7))
	test.That(t, q.Similar(NewYRotation(math.Pi/2)), test.ShouldBeTrue)

	// Aligned vectors need no rotation.
	test.That(t, RotationBetween(XAxis(), XAxis().Scale(4)), test.ShouldResemble, NewZeroRotation())

	// Anti-parallel vectors have no preferred axis; the nudge picks +y for a
	// flip along x.
	q = RotationBetween(XAxis(), NewVector(-1, 0, 0))
	test.That(t, q.AlmostEqual(NewQuaternion(0, 0, 1, 0)), test.ShouldBeTrue)
	test.That(t, q.Rotate(XAxis()).AlmostEqual(NewVector(-1, 0, 0)), test.ShouldBeTrue)

	// A flip along the nudge axis itself still resolves.
	q = RotationBetween(ZAxis(), NewVector(0, 0, -1))
	test.That(t, q.Rotate(ZAxis()).AlmostEqual(NewVector(0, 0, -1)), test.ShouldBeTrue)
}

func TestAxisAngle(t *testing.T) {
	q, ok := NewQuaternionFromAxisAngle(NewVector(0, 0, 2), math.Pi/2)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, q.AlmostEqual(NewZRotation(math.Pi/2)), test.ShouldBeTrue)

	_, ok = NewQuaternionFromAxisAngle(NewZeroVector(), math.Pi/2)
	test.That(t, ok, test.ShouldBeFalse)

	test.That(t, NewQuaternionFromRotationVector(NewZeroVector()), test.ShouldResemble, NewZeroRotation())

	v := NewVector(0.1, -0.2, 0.3)
	roundTripped := NewQuaternionFromRotationVector(v).RotationVector()
	test.That(t, roundTripped.AlmostEqual(v), test.ShouldBeTrue)

	test.That(t, NewZeroRotation().RotationVector(), test.ShouldResemble, NewZeroVector())
}

func TestAngleAxis(t *testing.T) {
	q := NewYRotation(1.25)
	test.That(t, q.Angle(), test.ShouldAlmostEqual, 1.25)
	test.That(t, q.Axis().AlmostEqual(YAxis()), test.ShouldBeTrue)

	// The atan2 form holds precision for small angles where acos degrades.
	small := NewXRotation(1e-8)
	test.That(t, utils.Float64AlmostEqual(small.Angle(), 1e-8, 1e-16), test.ShouldBeTrue)

	// No axis is encoded in a scalar quaternion; x is the default.
	test.That(t, NewZeroRotation().Axis(), test.ShouldResemble, XAxis())
}

func TestQuaternionInterop(t *testing.T) {
	q := NewQuaternion(0.5, -1.5, 2.5, -3.5)
	test.That(t, q.Number(), test.ShouldResemble, quat.Number{Real: 0.5, Imag: -1.5, Jmag: 2.5, Kmag: -3.5})
	test.That(t, NewQuaternionFromNumber(q.Number()), test.ShouldResemble, q)

	m := q.Mgl64()
	test.That(t, m.W, test.ShouldEqual, 0.5)
	test.That(t, NewQuaternionFromMgl64(m), test.ShouldResemble, q)
}
