package xrmath

import "math"

// Vector3 is a position or direction in a right-handed frame, in meters.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// ApproxEqual reports whether every component of v and o differs by at
// most tol.
func (v Vector3) ApproxEqual(o Vector3, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol && math.Abs(v.Z-o.Z) <= tol
}

// Quaternion is a rotation stored as (x, y, z, w), w being the scalar part.
//
// Only quaternions built by FromEuler are guaranteed to be unit-norm. Callers
// composing arbitrary orientations must normalize them first.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Identity returns the rotation that leaves every vector unchanged.
func Identity() Quaternion {
	return Quaternion{W: 1}
}

// Norm returns |q|.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// ApproxEqual compares component-wise. q and -q are the same rotation but
// are not approximately equal here.
func (q Quaternion) ApproxEqual(o Quaternion, tol float64) bool {
	return math.Abs(q.X-o.X) <= tol && math.Abs(q.Y-o.Y) <= tol &&
		math.Abs(q.Z-o.Z) <= tol && math.Abs(q.W-o.W) <= tol
}

// Pose is a rigid placement: an orientation followed by a position.
type Pose struct {
	Orientation Quaternion `json:"orientation"`
	Position    Vector3    `json:"position"`
}
