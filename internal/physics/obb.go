package physics

import (
	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, half-extents and an orientation.
func NewOBB(center, halfSize rl.Vector3, rotation rl.Quaternion) OBB {
	rotation = vmath.QuaternionNormalize(rotation)
	return OBB{
		Center:   center,
		HalfSize: halfSize,
		Axes: [3]rl.Vector3{
			rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, rotation)),
			rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, rotation)),
			rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, rotation)),
		},
	}
}

// NewAABBasOBB creates an axis-aligned OBB (no rotation)
func NewAABBasOBB(center, size rl.Vector3) OBB {
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2},
		Axes: [3]rl.Vector3{
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
	}
}

// NewSweptSphereOBB returns the box enclosing a sphere of the given radius swept from
// start along delta. Its first axis follows the motion.
func NewSweptSphereOBB(start, delta rl.Vector3, radius float32) OBB {
	axes := vmath.Basis(delta)
	half := rl.Vector3Length(delta) / 2
	return OBB{
		Center:   rl.Vector3Add(start, rl.Vector3Scale(delta, 0.5)),
		HalfSize: rl.Vector3{X: half + radius, Y: radius, Z: radius},
		Axes:     axes,
	}
}

// Bounds returns the world AABB around the box.
func (o OBB) Bounds() AABB {
	ext := rl.Vector3{
		X: o.HalfSize.X*absf(o.Axes[0].X) + o.HalfSize.Y*absf(o.Axes[1].X) + o.HalfSize.Z*absf(o.Axes[2].X),
		Y: o.HalfSize.X*absf(o.Axes[0].Y) + o.HalfSize.Y*absf(o.Axes[1].Y) + o.HalfSize.Z*absf(o.Axes[2].Y),
		Z: o.HalfSize.X*absf(o.Axes[0].Z) + o.HalfSize.Y*absf(o.Axes[1].Z) + o.HalfSize.Z*absf(o.Axes[2].Z),
	}
	return AABB{Min: rl.Vector3Subtract(o.Center, ext), Max: rl.Vector3Add(o.Center, ext)}
}

// radiusOnAxis projects the half-extents onto axis.
func (o OBB) radiusOnAxis(axis rl.Vector3) float32 {
	return o.HalfSize.X*absf(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*absf(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*absf(rl.Vector3DotProduct(o.Axes[2], axis))
}

func absf(x float32) float32 {
	return vmath.Abs(x)
}
