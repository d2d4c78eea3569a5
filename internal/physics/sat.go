package physics

import (
	"math"

	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AxisEpsilon is the length under which a candidate separating axis (usually the cross
// product of two parallel edges) is skipped.
const AxisEpsilon = 1e-4

// TestSeparatingAxis runs the separating axis test between triangle a, b, c and box.
// separated is true when a separating axis exists, i.e. there is no collision. A box
// touching the triangle with zero overlap is separated. When
// separated is false, normal and depth describe the axis of least overlap, with normal
// pointing from the triangle toward the box.
//
// dir is the direction the box is moving in. A box moving out of the triangle's front
// side is reported as separated whatever the overlap, so movers never snag on surfaces
// they are leaving.
func TestSeparatingAxis(dir, a, b, c rl.Vector3, box OBB) (separated bool, normal rl.Vector3, depth float32) {
	triNormal := triangleNormal(a, b, c)
	if rl.Vector3DotProduct(dir, triNormal) > 0 {
		return true, rl.Vector3{}, 0
	}

	edges := [3]rl.Vector3{
		rl.Vector3Subtract(b, a),
		rl.Vector3Subtract(c, b),
		rl.Vector3Subtract(a, c),
	}

	best := float32(math.MaxFloat32)
	var bestAxis rl.Vector3

	// test returns false when axis separates the shapes. Intervals that only touch
	// count as separated.
	test := func(axis rl.Vector3) bool {
		if rl.Vector3Length(axis) < AxisEpsilon {
			return true
		}
		axis = rl.Vector3Normalize(axis)

		tMin, tMax := projectTriangle(axis, a, b, c)
		bMin, bMax := projectOBB(axis, box)
		o := overlap(tMin, tMax, bMin, bMax)
		if o <= 0 {
			return false
		}
		if o < best {
			best = o
			// Push the box out through whichever end of the triangle's interval is closer.
			if tMax-bMin > bMax-tMin {
				axis = rl.Vector3Negate(axis)
			}
			bestAxis = axis
		}
		return true
	}

	if !test(triNormal) {
		return true, rl.Vector3{}, 0
	}
	for i := 0; i < 3; i++ {
		if !test(box.Axes[i]) {
			return true, rl.Vector3{}, 0
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !test(rl.Vector3CrossProduct(box.Axes[i], edges[j])) {
				return true, rl.Vector3{}, 0
			}
		}
	}

	if vmath.IsZero(bestAxis) {
		// Every axis was degenerate; nothing to separate along.
		return true, rl.Vector3{}, 0
	}
	return false, bestAxis, best
}

// projectTriangle returns the interval covered by the triangle on axis.
func projectTriangle(axis, a, b, c rl.Vector3) (float32, float32) {
	pa := rl.Vector3DotProduct(a, axis)
	pb := rl.Vector3DotProduct(b, axis)
	pc := rl.Vector3DotProduct(c, axis)
	return min(pa, pb, pc), max(pa, pb, pc)
}

// projectOBB returns the interval covered by the box on axis.
func projectOBB(axis rl.Vector3, box OBB) (float32, float32) {
	c := rl.Vector3DotProduct(box.Center, axis)
	r := box.radiusOnAxis(axis)
	return c - r, c + r
}

// overlap is the shortest distance either interval must move to stop overlapping the
// other; negative means there is a gap.
func overlap(aMin, aMax, bMin, bMax float32) float32 {
	return min(aMax-bMin, bMax-aMin)
}
