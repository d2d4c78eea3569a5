package physics

import (
	"math"

	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Mesh     *CollisionMesh
	Triangle int
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// RayAABB intersects a ray with box using the slab method. dir need not be normalized;
// Distance is measured in multiples of dir. A ray starting inside the box hits the
// exit face.
func RayAABB(origin, dir rl.Vector3, box AABB, maxDistance float32) (RaycastHit, bool) {
	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o := vmath.Component(origin, axis)
		d := vmath.Component(dir, axis)
		lo := vmath.Component(box.Min, axis)
		hi := vmath.Component(box.Max, axis)

		if d == 0 {
			if o < lo || o > hi {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	if tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(dir, t))

	// Calculate normal based on which face was hit
	var normal rl.Vector3
	epsilon := float32(0.001)
	if absf(point.X-box.Min.X) < epsilon {
		normal = rl.Vector3{X: -1, Y: 0, Z: 0}
	} else if absf(point.X-box.Max.X) < epsilon {
		normal = rl.Vector3{X: 1, Y: 0, Z: 0}
	} else if absf(point.Y-box.Min.Y) < epsilon {
		normal = rl.Vector3{X: 0, Y: -1, Z: 0}
	} else if absf(point.Y-box.Max.Y) < epsilon {
		normal = rl.Vector3{X: 0, Y: 1, Z: 0}
	} else if absf(point.Z-box.Min.Z) < epsilon {
		normal = rl.Vector3{X: 0, Y: 0, Z: -1}
	} else {
		normal = rl.Vector3{X: 0, Y: 0, Z: 1}
	}

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// RayTriangle intersects a ray with triangle a, b, c (Möller–Trumbore). Both sides of
// the triangle are hit; Normal is the triangle's front normal.
func RayTriangle(origin, dir, a, b, c rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	const eps = 1e-7

	e1 := rl.Vector3Subtract(b, a)
	e2 := rl.Vector3Subtract(c, a)
	p := rl.Vector3CrossProduct(dir, e2)
	det := rl.Vector3DotProduct(e1, p)
	if det > -eps && det < eps {
		// Ray parallel to the triangle plane.
		return RaycastHit{}, false
	}
	inv := 1 / det

	s := rl.Vector3Subtract(origin, a)
	u := rl.Vector3DotProduct(s, p) * inv
	if u < 0 || u > 1 {
		return RaycastHit{}, false
	}
	q := rl.Vector3CrossProduct(s, e1)
	v := rl.Vector3DotProduct(dir, q) * inv
	if v < 0 || u+v > 1 {
		return RaycastHit{}, false
	}

	t := rl.Vector3DotProduct(e2, q) * inv
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	return RaycastHit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(dir, t)),
		Normal:   triangleNormal(a, b, c),
		Distance: t,
	}, true
}
