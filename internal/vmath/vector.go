// Package vmath holds the numeric policies raymath lacks: shortest-arc slerp,
// tolerant comparisons, orthonormal bases and transform composition on top of raylib's
// vector types.
package vmath

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Abs returns |x|.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Sqrt is a float32 square root.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// NearlyEqual reports whether |a-b| <= eps.
func NearlyEqual(a, b, eps float32) bool {
	return Abs(a-b) <= eps
}

// Vector3NearlyEqual compares two vectors component-wise within eps.
func Vector3NearlyEqual(a, b rl.Vector3, eps float32) bool {
	return NearlyEqual(a.X, b.X, eps) && NearlyEqual(a.Y, b.Y, eps) && NearlyEqual(a.Z, b.Z, eps)
}

// IsZero reports whether every component of v is exactly zero.
func IsZero(v rl.Vector3) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Component returns the axis-th component (0 = X, 1 = Y, otherwise Z).
func Component(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Basis builds an orthonormal basis whose first axis is dir. A zero dir yields the
// world axes.
func Basis(dir rl.Vector3) [3]rl.Vector3 {
	u := rl.Vector3Normalize(dir)
	if IsZero(u) {
		return [3]rl.Vector3{{X: 1}, {Y: 1}, {Z: 1}}
	}
	// Pick the world axis least aligned with u as a helper.
	helper := rl.Vector3{X: 1}
	if Abs(u.X) > 0.9 {
		helper = rl.Vector3{Y: 1}
	}
	v := rl.Vector3Normalize(rl.Vector3CrossProduct(u, helper))
	w := rl.Vector3CrossProduct(u, v)
	return [3]rl.Vector3{u, v, w}
}
