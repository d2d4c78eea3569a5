package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Triangle represents a single triangle with precomputed normal
type Triangle struct {
	V0, V1, V2 rl.Vector3
	Normal     rl.Vector3
}

// NewTriangle computes the CCW face normal of a, b, c.
func NewTriangle(a, b, c rl.Vector3) Triangle {
	return Triangle{V0: a, V1: b, V2: c, Normal: triangleNormal(a, b, c)}
}

// Bounds returns the AABB of the triangle.
func (t Triangle) Bounds() AABB {
	return AABBFromPoints(t.V0, t.V1, t.V2)
}

func triangleNormal(a, b, c rl.Vector3) rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a)))
}

// closestPointOnTriangle finds the closest point on a triangle to point p
func closestPointOnTriangle(p, a, b, c rl.Vector3) rl.Vector3 {
	// Check if P in vertex region outside A
	ab := rl.Vector3Subtract(b, a)
	ac := rl.Vector3Subtract(c, a)
	ap := rl.Vector3Subtract(p, a)

	d1 := rl.Vector3DotProduct(ab, ap)
	d2 := rl.Vector3DotProduct(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a // barycentric coordinates (1,0,0)
	}

	// Check if P in vertex region outside B
	bp := rl.Vector3Subtract(p, b)
	d3 := rl.Vector3DotProduct(ab, bp)
	d4 := rl.Vector3DotProduct(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b // barycentric coordinates (0,1,0)
	}

	// Check if P in edge region of AB
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return rl.Vector3Add(a, rl.Vector3Scale(ab, v)) // barycentric coordinates (1-v,v,0)
	}

	// Check if P in vertex region outside C
	cp := rl.Vector3Subtract(p, c)
	d5 := rl.Vector3DotProduct(ab, cp)
	d6 := rl.Vector3DotProduct(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c // barycentric coordinates (0,0,1)
	}

	// Check if P in edge region of AC
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return rl.Vector3Add(a, rl.Vector3Scale(ac, w)) // barycentric coordinates (1-w,0,w)
	}

	// Check if P in edge region of BC
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return rl.Vector3Add(b, rl.Vector3Scale(rl.Vector3Subtract(c, b), w)) // barycentric coordinates (0,1-w,w)
	}

	// P inside face region
	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return rl.Vector3Add(a, rl.Vector3Add(rl.Vector3Scale(ab, v), rl.Vector3Scale(ac, w)))
}

// pointInTriangle reports whether p, assumed to lie in the triangle's plane, is inside
// or on the border of a, b, c.
func pointInTriangle(p, a, b, c rl.Vector3) bool {
	v0 := rl.Vector3Subtract(c, a)
	v1 := rl.Vector3Subtract(b, a)
	v2 := rl.Vector3Subtract(p, a)

	d00 := rl.Vector3DotProduct(v0, v0)
	d01 := rl.Vector3DotProduct(v0, v1)
	d02 := rl.Vector3DotProduct(v0, v2)
	d11 := rl.Vector3DotProduct(v1, v1)
	d12 := rl.Vector3DotProduct(v1, v2)

	denom := d00*d11 - d01*d01
	if denom == 0 {
		return false
	}
	inv := 1 / denom
	u := (d11*d02 - d01*d12) * inv
	v := (d00*d12 - d01*d02) * inv
	return u >= 0 && v >= 0 && u+v <= 1
}

// lowestRoot solves a*x² + b*x + c = 0 and returns the smallest root in (0, maxR).
func lowestRoot(a, b, c, maxR float32) (float32, bool) {
	det := b*b - 4*a*c
	if det < 0 || a == 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(det)))
	r1 := (-b - sq) / (2 * a)
	r2 := (-b + sq) / (2 * a)
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	if r1 > 0 && r1 < maxR {
		return r1, true
	}
	if r2 > 0 && r2 < maxR {
		return r2, true
	}
	return 0, false
}
