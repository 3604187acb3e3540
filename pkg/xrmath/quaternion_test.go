package xrmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

func assertVector(t *testing.T, want, got Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, "x")
	assert.InDelta(t, want.Y, got.Y, tolerance, "y")
	assert.InDelta(t, want.Z, got.Z, tolerance, "z")
}

func assertQuaternion(t *testing.T, want, got Quaternion) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, "x")
	assert.InDelta(t, want.Y, got.Y, tolerance, "y")
	assert.InDelta(t, want.Z, got.Z, tolerance, "z")
	assert.InDelta(t, want.W, got.W, tolerance, "w")
}

func TestMultiply(t *testing.T) {
	a := Quaternion{X: 1, Y: 2, Z: 3, W: 4}
	b := Quaternion{X: 5, Y: 6, Z: 7, W: 8}

	tests := []struct {
		name string
		l, r Quaternion
		want Quaternion
	}{
		{name: "a*b", l: a, r: b, want: Quaternion{X: 24, Y: 48, Z: 48, W: -6}},
		{name: "b*a", l: b, r: a, want: Quaternion{X: 32, Y: 32, Z: 56, W: -6}},
		{name: "identity left", l: Identity(), r: a, want: a},
		{name: "identity right", l: a, r: Identity(), want: a},
		{name: "i*j=k", l: Quaternion{X: 1}, r: Quaternion{Y: 1}, want: Quaternion{Z: 1}},
		{name: "j*i=-k", l: Quaternion{Y: 1}, r: Quaternion{X: 1}, want: Quaternion{Z: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertQuaternion(t, tt.want, Multiply(tt.l, tt.r))
		})
	}
}

func TestMultiplyPropagatesNaN(t *testing.T) {
	got := Multiply(Quaternion{X: math.NaN(), W: 1}, Identity())
	assert.True(t, math.IsNaN(got.X))

	got = Multiply(Quaternion{W: math.Inf(1)}, Identity())
	assert.True(t, math.IsInf(got.W, 1))
}

func TestConjugate(t *testing.T) {
	assert.Equal(t, Quaternion{X: -1, Y: -2, Z: -3, W: 4}, Conjugate(Quaternion{X: 1, Y: 2, Z: 3, W: 4}))
}

func TestRotateVectorIdentity(t *testing.T) {
	identity := FromEuler(0, 0)
	assertQuaternion(t, Identity(), identity)

	for _, v := range []Vector3{
		{},
		{X: 1},
		{X: 1, Y: 2, Z: 3},
		{X: -0.5, Y: 1e6, Z: -1e-6},
	} {
		assertVector(t, v, RotateVector(v, identity))
	}
}

func TestFromEuler(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float64
		in, want   Vector3
	}{
		{name: "yaw 180", yaw: 180, in: Vector3{X: 1}, want: Vector3{X: -1}},
		{name: "yaw 90", yaw: 90, in: Vector3{Z: 1}, want: Vector3{X: 1}},
		{name: "yaw -90", yaw: -90, in: Vector3{Z: 1}, want: Vector3{X: -1}},
		{name: "pitch 90", pitch: 90, in: Vector3{Y: 1}, want: Vector3{Z: 1}},
		{name: "pitch -90", pitch: -90, in: Vector3{Z: 1}, want: Vector3{Y: 1}},
		// yaw first carries +Z onto +X, where pitch about X has no effect.
		// The reverse order would land on -Y.
		{name: "yaw then pitch", yaw: 90, pitch: 90, in: Vector3{Z: 1}, want: Vector3{X: 1}},
		{name: "full turn", yaw: 360, in: Vector3{X: 1, Y: 2, Z: 3}, want: Vector3{X: 1, Y: 2, Z: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := FromEuler(tt.yaw, tt.pitch)
			assert.InDelta(t, 1.0, q.Norm(), tolerance)
			assertVector(t, tt.want, RotateVector(tt.in, q))
		})
	}
}

func TestFromEulerOrder(t *testing.T) {
	yaw := FromEuler(30, 0)
	pitch := FromEuler(0, 45)

	assertQuaternion(t, Multiply(pitch, yaw), FromEuler(30, 45))
	assert.NotEqual(t, Multiply(yaw, pitch), FromEuler(30, 45))
}

func TestRotateVectorNonUnit(t *testing.T) {
	q := Quaternion{W: 2}
	assertVector(t, Vector3{X: 4, Y: 8, Z: 12}, RotateVector(Vector3{X: 1, Y: 2, Z: 3}, q))
}

func TestTransform(t *testing.T) {
	p := Pose{
		Orientation: Identity(),
		Position:    Vector3{X: 1, Y: 2, Z: 3},
	}
	rotation := FromEuler(180, 0)
	got := Transform(p, rotation, Vector3{Y: -0.25})

	assertVector(t, Vector3{X: -1, Y: 1.75, Z: -3}, got.Position)
	assertQuaternion(t, rotation, got.Orientation)
}

func TestApproxEqual(t *testing.T) {
	q := FromEuler(90, 0)
	assert.True(t, q.ApproxEqual(Quaternion{Y: math.Sqrt2 / 2, W: math.Sqrt2 / 2}, 1e-12))
	assert.False(t, q.ApproxEqual(Quaternion{Y: -math.Sqrt2 / 2, W: -math.Sqrt2 / 2}, 1e-12))

	v := Vector3{X: 1, Y: 2, Z: 3}
	assert.True(t, v.ApproxEqual(Vector3{X: 1 + 1e-9, Y: 2, Z: 3}, 1e-6))
	assert.False(t, v.ApproxEqual(Vector3{X: 1, Y: 2, Z: 3.1}, 1e-6))
}
