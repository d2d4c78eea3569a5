package vmath

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SlerpEpsilon is how close to 1 the quaternion dot product may get before Slerp
// falls back to normalized linear interpolation.
const SlerpEpsilon = 1e-3

// QuaternionDot returns the 4D dot product of a and b.
func QuaternionDot(a, b rl.Quaternion) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// QuaternionNormalize returns q with unit length. A zero quaternion becomes identity.
func QuaternionNormalize(q rl.Quaternion) rl.Quaternion {
	l := Sqrt(QuaternionDot(q, q))
	if l == 0 {
		return rl.QuaternionIdentity()
	}
	inv := 1 / l
	return rl.Quaternion{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Slerp spherically interpolates from a to b along the shortest arc.
func Slerp(a, b rl.Quaternion, t float32) rl.Quaternion {
	cos := QuaternionDot(a, b)
	if cos < 0 {
		b = rl.Quaternion{X: -b.X, Y: -b.Y, Z: -b.Z, W: -b.W}
		cos = -cos
	}

	var wa, wb float32
	if cos >= 1-SlerpEpsilon {
		wa, wb = 1-t, t
		return QuaternionNormalize(rl.Quaternion{
			X: a.X*wa + b.X*wb,
			Y: a.Y*wa + b.Y*wb,
			Z: a.Z*wa + b.Z*wb,
			W: a.W*wa + b.W*wb,
		})
	}

	theta := math.Acos(float64(cos))
	sin := math.Sin(theta)
	wa = float32(math.Sin(float64(1-t)*theta) / sin)
	wb = float32(math.Sin(float64(t)*theta) / sin)
	return rl.Quaternion{
		X: a.X*wa + b.X*wb,
		Y: a.Y*wa + b.Y*wb,
		Z: a.Z*wa + b.Z*wb,
		W: a.W*wa + b.W*wb,
	}
}
