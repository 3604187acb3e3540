package xrmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

const degToRad = math.Pi / 180.0

func toNumber(q Quaternion) quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

func fromNumber(n quat.Number) Quaternion {
	return Quaternion{X: n.Imag, Y: n.Jmag, Z: n.Kmag, W: n.Real}
}

// Multiply returns the Hamilton product a ⊗ b:
//
//	x = aw·bx + ax·bw + ay·bz − az·by
//	y = aw·by − ax·bz + ay·bw + az·bx
//	z = aw·bz + ax·by − ay·bx + az·bw
//	w = aw·bw − ax·bx − ay·by − az·bz
//
// The product is not commutative. NaN and Inf propagate.
func Multiply(a, b Quaternion) Quaternion {
	return fromNumber(quat.Mul(toNumber(a), toNumber(b)))
}

// Conjugate returns (−x, −y, −z, w).
func Conjugate(q Quaternion) Quaternion {
	return fromNumber(quat.Conj(toNumber(q)))
}

// RotateVector rotates v by q as q ⊗ (v, 0) ⊗ conj(q).
// The result is scaled by |q|² when q is not unit-norm.
func RotateVector(v Vector3, q Quaternion) Vector3 {
	p := Quaternion{X: v.X, Y: v.Y, Z: v.Z}
	r := Multiply(Multiply(q, p), Conjugate(q))
	return Vector3{X: r.X, Y: r.Y, Z: r.Z}
}

// FromEuler builds a unit quaternion from a yaw about the vertical (Y) axis
// and a pitch about the lateral (X) axis, both in degrees.
//
// The result is qPitch ⊗ qYaw: yaw is applied first, then pitch. Calibration
// files in the field are tuned against this order, do not swap it.
func FromEuler(yawDeg, pitchDeg float64) Quaternion {
	halfYaw := yawDeg * degToRad / 2
	halfPitch := pitchDeg * degToRad / 2

	qYaw := Quaternion{Y: math.Sin(halfYaw), W: math.Cos(halfYaw)}
	qPitch := Quaternion{X: math.Sin(halfPitch), W: math.Cos(halfPitch)}

	return Multiply(qPitch, qYaw)
}

// Transform rotates p by rotation, then offsets its position by translation.
// The orientation is composed as rotation ⊗ p.Orientation.
func Transform(p Pose, rotation Quaternion, translation Vector3) Pose {
	return Pose{
		Orientation: Multiply(rotation, p.Orientation),
		Position:    RotateVector(p.Position, rotation).Add(translation),
	}
}
