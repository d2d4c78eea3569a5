package physics

import (
	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CollisionMesh is static collision geometry placed in the world. Its triangles are
// stored in world space; moving the mesh means calling SetTransform.
type CollisionMesh struct {
	Name       string
	Polyhedron *Polyhedron
	Transform  rl.Matrix
	Triangles  []Triangle
	Bounds     AABB

	triBounds []AABB
}

// NewCollisionMesh places poly in the world with transform.
func NewCollisionMesh(name string, poly *Polyhedron, transform rl.Matrix) *CollisionMesh {
	m := &CollisionMesh{Name: name, Polyhedron: poly}
	m.SetTransform(transform)
	return m
}

// NewTriangleMesh wraps world-space triangles that did not come from a polyhedron.
func NewTriangleMesh(name string, tris []Triangle) *CollisionMesh {
	m := &CollisionMesh{Name: name, Transform: rl.MatrixIdentity()}
	m.setTriangles(tris)
	return m
}

// SetTransform re-places the mesh. Only meshes built from a polyhedron can move.
func (m *CollisionMesh) SetTransform(transform rl.Matrix) {
	m.Transform = transform
	if m.Polyhedron == nil {
		return
	}

	// A mirroring transform flips winding; swap two corners to keep normals outward.
	mirrored := rl.MatrixDeterminant(transform) < 0

	world := make([]rl.Vector3, len(m.Polyhedron.Vertices))
	for i, v := range m.Polyhedron.Vertices {
		world[i] = rl.Vector3Transform(v, transform)
	}

	tris := make([]Triangle, 0, m.Polyhedron.TriangleCount())
	for _, face := range m.Polyhedron.Faces {
		for _, t := range face.Triangles {
			a, b, c := world[t[0]], world[t[1]], world[t[2]]
			if mirrored {
				b, c = c, b
			}
			tris = append(tris, NewTriangle(a, b, c))
		}
	}
	m.setTriangles(tris)
}

func (m *CollisionMesh) setTriangles(tris []Triangle) {
	m.Triangles = tris
	m.triBounds = make([]AABB, len(tris))
	m.Bounds = EmptyAABB()
	for i := range tris {
		m.triBounds[i] = tris[i].Bounds()
		m.Bounds = m.Bounds.Union(m.triBounds[i])
	}
}

// TriangleCount returns the number of triangles in the collider
func (m *CollisionMesh) TriangleCount() int {
	return len(m.Triangles)
}

// World is the set of static collision meshes movers collide against. It is read-only
// while movement queries run.
type World struct {
	Meshes []*CollisionMesh
}

func NewWorld() *World {
	return &World{}
}

func (w *World) Add(m *CollisionMesh) {
	w.Meshes = append(w.Meshes, m)
}

func (w *World) Remove(m *CollisionMesh) {
	for i, existing := range w.Meshes {
		if existing == m {
			w.Meshes = append(w.Meshes[:i], w.Meshes[i+1:]...)
			return
		}
	}
}

// TriangleCount returns the total number of triangles across all meshes.
func (w *World) TriangleCount() int {
	n := 0
	for _, m := range w.Meshes {
		n += len(m.Triangles)
	}
	return n
}

// eachTriangle calls fn for every triangle whose bounds touch query.
func (w *World) eachTriangle(query AABB, fn func(m *CollisionMesh, i int)) {
	if w == nil {
		return
	}
	for _, m := range w.Meshes {
		if !m.Bounds.Intersects(query) {
			continue
		}
		for i := range m.Triangles {
			if m.triBounds[i].Intersects(query) {
				fn(m, i)
			}
		}
	}
}

// Raycast returns the closest triangle hit along the ray within maxDistance.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)
	if vmath.IsZero(direction) || w == nil {
		return RaycastHit{}, false
	}

	closest := RaycastHit{Distance: maxDistance}
	hit := false

	for _, m := range w.Meshes {
		if _, ok := RayAABB(origin, direction, m.Bounds, closest.Distance); !ok {
			continue
		}
		for i := range m.Triangles {
			tri := &m.Triangles[i]
			h, ok := RayTriangle(origin, direction, tri.V0, tri.V1, tri.V2, closest.Distance)
			if !ok || (hit && h.Distance >= closest.Distance) {
				continue
			}
			h.Mesh = m
			h.Triangle = i
			closest = h
			hit = true
		}
	}

	return closest, hit
}

// ResolveOBB pushes box out of every world triangle it overlaps, one triangle at a
// time along the least-overlap axis. It returns the total push and whether any
// triangle was touched.
func (w *World) ResolveOBB(box OBB) (rl.Vector3, bool) {
	var total rl.Vector3
	hit := false

	w.eachTriangle(box.Bounds(), func(m *CollisionMesh, i int) {
		tri := &m.Triangles[i]
		separated, normal, depth := TestSeparatingAxis(rl.Vector3{}, tri.V0, tri.V1, tri.V2, box)
		if separated {
			return
		}
		push := rl.Vector3Scale(normal, depth)
		box.Center = rl.Vector3Add(box.Center, push)
		total = rl.Vector3Add(total, push)
		hit = true
	})

	return total, hit
}

// SphereOverlap returns the push that moves a sphere out of every triangle it
// intersects, taking the largest push per axis across triangles.
func (w *World) SphereOverlap(center rl.Vector3, radius float32) (rl.Vector3, bool) {
	var total rl.Vector3
	hit := false

	r := rl.Vector3{X: radius, Y: radius, Z: radius}
	query := AABB{Min: rl.Vector3Subtract(center, r), Max: rl.Vector3Add(center, r)}

	w.eachTriangle(query, func(m *CollisionMesh, i int) {
		push, ok := sphereTriangle(center, radius, &m.Triangles[i])
		if !ok {
			return
		}
		if vmath.Abs(push.X) > vmath.Abs(total.X) {
			total.X = push.X
		}
		if vmath.Abs(push.Y) > vmath.Abs(total.Y) {
			total.Y = push.Y
		}
		if vmath.Abs(push.Z) > vmath.Abs(total.Z) {
			total.Z = push.Z
		}
		hit = true
	})

	return total, hit
}

// sphereTriangle returns the push out of tri for a sphere that intersects it.
func sphereTriangle(center rl.Vector3, radius float32, tri *Triangle) (rl.Vector3, bool) {
	closest := closestPointOnTriangle(center, tri.V0, tri.V1, tri.V2)

	diff := rl.Vector3Subtract(center, closest)
	distSq := rl.Vector3DotProduct(diff, diff)
	if distSq >= radius*radius {
		return rl.Vector3{}, false
	}

	dist := vmath.Sqrt(distSq)
	if dist < 0.0001 {
		// Center is on the triangle, push along normal
		return rl.Vector3Scale(tri.Normal, radius), true
	}
	return rl.Vector3Scale(diff, (radius-dist)/dist), true
}
