package physics

import (
	"fmt"

	"gamecore/internal/arena"
	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SlideConfig tunes CollideAndSlide. Distances are in eSpace units, where the mover
// is a unit sphere.
type SlideConfig struct {
	// MaxDepth is how many slides may follow the first impact.
	MaxDepth int
	// SkinDistance is the gap left between the mover and the surface it hits.
	SkinDistance float32
	// MinSlideLengthSq stops sliding once the remaining motion is this short.
	MinSlideLengthSq float32
}

// DefaultSlideConfig allows a single slide after the first impact.
func DefaultSlideConfig() SlideConfig {
	return SlideConfig{
		MaxDepth:         1,
		SkinDistance:     0.005,
		MinSlideLengthSq: 0.005 * 0.005,
	}
}

// SlideResult is the outcome of one Slide call.
type SlideResult struct {
	Position rl.Vector3
	// Iterations counts the sweeps run against the world.
	Iterations int
	// Hit is set when any sweep touched geometry.
	Hit bool
	// Normal is the last slide plane normal in world space.
	Normal rl.Vector3
	// Mesh is the geometry behind the last contact.
	Mesh *CollisionMesh
}

// sweepHit is the earliest contact of a swept unit sphere, in eSpace.
type sweepHit struct {
	t     float32
	point rl.Vector3
	mesh  *CollisionMesh
}

// Slider runs collide-and-slide queries. It reuses its scratch arena across calls and
// is not safe for concurrent use; give each goroutine its own.
type Slider struct {
	cfg        SlideConfig
	candidates *arena.Arena[Triangle]
	owners     *arena.Arena[*CollisionMesh]
}

func NewSlider(cfg SlideConfig) *Slider {
	return &Slider{
		cfg:        cfg,
		candidates: arena.New[Triangle](64),
		owners:     arena.New[*CollisionMesh](64),
	}
}

// Config returns the slider's settings.
func (s *Slider) Config() SlideConfig {
	return s.cfg
}

// CollideAndSlide moves an ellipsoid with the given radii from position by delta
// through world and returns where it ends up.
// It builds a fresh Slider, and its scratch arenas, on every call; per-frame callers
// should keep a Slider and call Slide instead.
func CollideAndSlide(radii, position, delta rl.Vector3, world *World) rl.Vector3 {
	return NewSlider(DefaultSlideConfig()).Slide(radii, position, delta, world).Position
}

// Slide is CollideAndSlide with the full result. Radii must all be positive.
func (s *Slider) Slide(radii, position, delta rl.Vector3, world *World) SlideResult {
	if radii.X <= 0 || radii.Y <= 0 || radii.Z <= 0 {
		panic(fmt.Sprintf("physics: ellipsoid radii must be positive, got %v", radii))
	}

	result := SlideResult{Position: rl.Vector3Add(position, delta)}

	ePos := rl.Vector3Divide(position, radii)
	eVel := rl.Vector3Divide(delta, radii)

	for depth := 0; ; depth++ {
		result.Iterations++
		hit, found := s.sweep(ePos, eVel, radii, world)
		if !found {
			if depth > 0 {
				result.Position = rl.Vector3Multiply(rl.Vector3Add(ePos, eVel), radii)
			}
			return result
		}
		result.Hit = true
		result.Mesh = hit.mesh

		dest := rl.Vector3Add(ePos, eVel)
		newBase := ePos

		// Stop just short of the contact and pull the contact point back by the same
		// amount so the slide plane stays consistent with the new center.
		dist := hit.t * rl.Vector3Length(eVel)
		if dist >= s.cfg.SkinDistance {
			dir := rl.Vector3Normalize(eVel)
			newBase = rl.Vector3Add(ePos, rl.Vector3Scale(dir, dist-s.cfg.SkinDistance))
			hit.point = rl.Vector3Subtract(hit.point, rl.Vector3Scale(dir, s.cfg.SkinDistance))
		}

		slideNormal := rl.Vector3Normalize(rl.Vector3Subtract(newBase, hit.point))
		plane := Plane{Normal: slideNormal, Distance: rl.Vector3DotProduct(slideNormal, hit.point)}
		newDest := rl.Vector3Subtract(dest, rl.Vector3Scale(slideNormal, plane.SignedDistance(dest)))
		slide := rl.Vector3Subtract(newDest, hit.point)

		result.Position = rl.Vector3Multiply(newBase, radii)
		result.Normal = rl.Vector3Normalize(rl.Vector3Divide(slideNormal, radii))

		if rl.Vector3LengthSqr(slide) < s.cfg.MinSlideLengthSq || depth >= s.cfg.MaxDepth {
			return result
		}

		ePos = newBase
		eVel = slide
	}
}

// sweep finds the earliest contact of the unit sphere at ePos moving by eVel against
// the world triangles near the motion.
func (s *Slider) sweep(ePos, eVel, radii rl.Vector3, world *World) (sweepHit, bool) {
	s.candidates.Freeze()
	s.owners.Freeze()
	defer s.candidates.Unfreeze()
	defer s.owners.Unfreeze()

	tris, owners := s.gather(ePos, eVel, radii, world)
	box := NewSweptSphereOBB(ePos, eVel, 1)

	best := sweepHit{t: 1}
	found := false
	for i := range tris {
		tri := &tris[i]
		if separated, _, _ := TestSeparatingAxis(eVel, tri.V0, tri.V1, tri.V2, box); separated {
			continue
		}
		t, point, ok := sweepSphereTriangle(ePos, eVel, tri, best.t)
		if !ok {
			continue
		}
		if !found || t < best.t {
			best = sweepHit{t: t, point: point, mesh: owners[i]}
			found = true
		}
	}
	return best, found
}

// gather copies the world triangles touching the swept ellipsoid into the scratch
// arenas, converted to eSpace, along with the mesh each came from.
func (s *Slider) gather(ePos, eVel, radii rl.Vector3, world *World) ([]Triangle, []*CollisionMesh) {
	start := rl.Vector3Multiply(ePos, radii)
	end := rl.Vector3Multiply(rl.Vector3Add(ePos, eVel), radii)
	query := AABBFromPoints(start, end).Expand(radii)

	n := 0
	world.eachTriangle(query, func(*CollisionMesh, int) { n++ })
	tris := s.candidates.Alloc(n)[:0]
	owners := s.owners.Alloc(n)[:0]
	world.eachTriangle(query, func(m *CollisionMesh, i int) {
		t := &m.Triangles[i]
		tris = append(tris, NewTriangle(rl.Vector3Divide(t.V0, radii), rl.Vector3Divide(t.V1, radii), rl.Vector3Divide(t.V2, radii)))
		owners = append(owners, m)
	})
	return tris, owners
}

// sweepSphereTriangle sweeps a unit sphere from base along vel against tri and returns
// the first time of impact in [0, maxT] with the contact point. Triangles the sphere
// is moving away from are ignored.
func sweepSphereTriangle(base, vel rl.Vector3, tri *Triangle, maxT float32) (float32, rl.Vector3, bool) {
	n := tri.Normal
	if vmath.IsZero(n) || rl.Vector3DotProduct(n, vel) > 0 {
		return 0, rl.Vector3{}, false
	}

	signedDist := rl.Vector3DotProduct(n, rl.Vector3Subtract(base, tri.V0))
	nDotVel := rl.Vector3DotProduct(n, vel)

	var t0, t1 float32
	embedded := false
	if nDotVel == 0 {
		if vmath.Abs(signedDist) >= 1 {
			return 0, rl.Vector3{}, false
		}
		embedded = true
		t0, t1 = 0, 1
	} else {
		t0 = (-1 - signedDist) / nDotVel
		t1 = (1 - signedDist) / nDotVel
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > 1 || t1 < 0 {
			return 0, rl.Vector3{}, false
		}
		t0 = rl.Clamp(t0, 0, 1)
	}

	// The sphere first touches the plane inside the triangle: that is the contact.
	if !embedded && t0 <= maxT {
		p := rl.Vector3Add(rl.Vector3Subtract(base, n), rl.Vector3Scale(vel, t0))
		if pointInTriangle(p, tri.V0, tri.V1, tri.V2) {
			return t0, p, true
		}
	}

	// Otherwise it can only touch a vertex or an edge.
	t := maxT
	var point rl.Vector3
	found := false
	velSq := rl.Vector3LengthSqr(vel)

	for _, p := range [3]rl.Vector3{tri.V0, tri.V1, tri.V2} {
		b := 2 * rl.Vector3DotProduct(vel, rl.Vector3Subtract(base, p))
		c := rl.Vector3LengthSqr(rl.Vector3Subtract(p, base)) - 1
		if r, ok := lowestRoot(velSq, b, c, t); ok {
			t = r
			point = p
			found = true
		}
	}

	for _, e := range [3][2]rl.Vector3{{tri.V0, tri.V1}, {tri.V1, tri.V2}, {tri.V2, tri.V0}} {
		edge := rl.Vector3Subtract(e[1], e[0])
		baseToVertex := rl.Vector3Subtract(e[0], base)
		edgeSq := rl.Vector3LengthSqr(edge)
		edgeDotVel := rl.Vector3DotProduct(edge, vel)
		edgeDotBTV := rl.Vector3DotProduct(edge, baseToVertex)

		a := edgeSq*-velSq + edgeDotVel*edgeDotVel
		b := edgeSq*(2*rl.Vector3DotProduct(vel, baseToVertex)) - 2*edgeDotVel*edgeDotBTV
		c := edgeSq*(1-rl.Vector3LengthSqr(baseToVertex)) + edgeDotBTV*edgeDotBTV

		r, ok := lowestRoot(a, b, c, t)
		if !ok {
			continue
		}
		f := (edgeDotVel*r - edgeDotBTV) / edgeSq
		if f >= 0 && f <= 1 {
			t = r
			point = rl.Vector3Add(e[0], rl.Vector3Scale(edge, f))
			found = true
		}
	}

	return t, point, found
}
