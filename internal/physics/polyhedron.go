package physics

import (
	"fmt"

	"gamecore/internal/arena"
	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// NormalEpsilon is the per-component tolerance under which two triangle normals are
// treated as the same face direction.
const NormalEpsilon = 1e-4

// Plane is the set of points p with dot(Normal, p) == Distance.
type Plane struct {
	Normal   rl.Vector3
	Distance float32
}

// SignedDistance is positive on the side the normal points to.
func (p Plane) SignedDistance(point rl.Vector3) float32 {
	return rl.Vector3DotProduct(p.Normal, point) - p.Distance
}

// Edge joins vertices A and B (A < B). Faces holds the indices of the faces that
// share it; the second slot is -1 for an edge on only one face.
type Edge struct {
	A, B  int
	Faces [2]int
}

// Face is one planar polygon of a polyhedron. Edges lists its boundary only;
// Triangles keeps the source triangles that tile it.
type Face struct {
	Plane     Plane
	Edges     []int
	Triangles [][3]int
}

// Polyhedron is collision geometry built from a triangle list. It is not modified
// after BuildPolyhedron returns.
type Polyhedron struct {
	Vertices []rl.Vector3
	Edges    []Edge
	Faces    []Face
}

// TriangleCount returns the number of source triangles across all faces.
func (p *Polyhedron) TriangleCount() int {
	n := 0
	for i := range p.Faces {
		n += len(p.Faces[i].Triangles)
	}
	return n
}

// Bounds returns the local-space AABB of the vertices.
func (p *Polyhedron) Bounds() AABB {
	return AABBFromPoints(p.Vertices...)
}

// poolEdge is one slot of the flat scratch edge pool. Slots are grouped by face so
// counting shared diagonals never leaves the face's own segment.
type poolEdge struct {
	a, b  int
	count int
}

// PolyhedronBuilder keeps its scratch arenas and lookup maps between builds. It is not
// safe for concurrent use.
type PolyhedronBuilder struct {
	edges   *arena.Arena[poolEdge]
	ints    *arena.Arena[int]
	normals *arena.Arena[rl.Vector3]

	shared map[[2]int]int
	seen   map[rl.Vector3]int
}

// NewPolyhedronBuilder returns a builder sized for meshes of roughly triangles
// triangles. The arenas grow when a larger mesh comes along.
func NewPolyhedronBuilder(triangles int) *PolyhedronBuilder {
	return &PolyhedronBuilder{
		edges:   arena.New[poolEdge](3 * triangles),
		ints:    arena.New[int](4 * triangles),
		normals: arena.New[rl.Vector3](triangles),
		shared:  make(map[[2]int]int, triangles),
		seen:    make(map[rl.Vector3]int, triangles),
	}
}

// BuildPolyhedron groups the triangles of a CCW triangle list into planar faces.
// Degenerate input (no vertices, no indices, an index count that is not a multiple of
// three, or an index out of range) panics.
func BuildPolyhedron(vertices []rl.Vector3, indices []int) *Polyhedron {
	return NewPolyhedronBuilder(len(indices) / 3).Build(vertices, indices)
}

// Build is BuildPolyhedron using the builder's scratch memory.
func (pb *PolyhedronBuilder) Build(vertices []rl.Vector3, indices []int) *Polyhedron {
	if len(vertices) == 0 || len(indices) == 0 {
		panic("physics: BuildPolyhedron needs vertices and indices")
	}
	if len(indices)%3 != 0 {
		panic(fmt.Sprintf("physics: index count %d is not a multiple of 3", len(indices)))
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(vertices) {
			panic(fmt.Sprintf("physics: index %d out of range [0,%d)", idx, len(vertices)))
		}
	}

	pb.edges.Freeze()
	pb.ints.Freeze()
	pb.normals.Freeze()
	defer pb.edges.Unfreeze()
	defer pb.ints.Unfreeze()
	defer pb.normals.Unfreeze()
	clear(pb.shared)
	clear(pb.seen)

	poly := &Polyhedron{}
	remap := pb.weld(poly, vertices)

	triCount := len(indices) / 3
	groupNormals := pb.normals.Alloc(triCount)[:0]
	groupOf := pb.ints.Alloc(triCount)
	groupSize := pb.ints.Alloc(triCount)

	for t := 0; t < triCount; t++ {
		a := poly.Vertices[remap[indices[3*t]]]
		b := poly.Vertices[remap[indices[3*t+1]]]
		c := poly.Vertices[remap[indices[3*t+2]]]
		n := rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a)))
		if vmath.IsZero(n) {
			// Zero-area triangle: contributes no face.
			groupOf[t] = -1
			continue
		}

		g := -1
		for i, gn := range groupNormals {
			if vmath.Vector3NearlyEqual(gn, n, NormalEpsilon) {
				g = i
				break
			}
		}
		if g < 0 {
			g = len(groupNormals)
			groupNormals = append(groupNormals, n)
		}
		groupOf[t] = g
		groupSize[g]++
	}

	// Each face owns a segment of 3*triangles slots in the flat pool.
	groups := len(groupNormals)
	start := pb.ints.Alloc(groups + 1)
	for g := 0; g < groups; g++ {
		start[g+1] = start[g] + 3*groupSize[g]
	}
	pool := pb.edges.Alloc(start[groups])
	used := pb.ints.Alloc(groups)

	poly.Faces = make([]Face, groups)
	for t := 0; t < triCount; t++ {
		g := groupOf[t]
		if g < 0 {
			continue
		}
		tri := [3]int{remap[indices[3*t]], remap[indices[3*t+1]], remap[indices[3*t+2]]}
		poly.Faces[g].Triangles = append(poly.Faces[g].Triangles, tri)

		seg := pool[start[g] : start[g]+used[g]]
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			found := false
			for i := range seg {
				if seg[i].a == a && seg[i].b == b {
					seg[i].count++
					found = true
					break
				}
			}
			if !found {
				pool[start[g]+used[g]] = poolEdge{a: a, b: b, count: 1}
				used[g]++
				seg = pool[start[g] : start[g]+used[g]]
			}
		}
	}

	shared := pb.shared
	for g := 0; g < groups; g++ {
		face := &poly.Faces[g]
		for _, e := range pool[start[g] : start[g]+used[g]] {
			if e.count != 1 {
				// Diagonal between two triangles of the same face.
				continue
			}
			key := [2]int{e.a, e.b}
			if idx, ok := shared[key]; ok && poly.Edges[idx].Faces[1] < 0 {
				poly.Edges[idx].Faces[1] = g
				face.Edges = append(face.Edges, idx)
				continue
			}
			shared[key] = len(poly.Edges)
			face.Edges = append(face.Edges, len(poly.Edges))
			poly.Edges = append(poly.Edges, Edge{A: e.a, B: e.b, Faces: [2]int{g, -1}})
		}

		anchor := poly.Vertices[face.Triangles[0][0]]
		if len(face.Edges) > 0 {
			anchor = poly.Vertices[poly.Edges[face.Edges[0]].A]
		}
		face.Plane = Plane{Normal: groupNormals[g], Distance: rl.Vector3DotProduct(groupNormals[g], anchor)}
	}

	return poly
}

// weld copies the distinct vertex positions into poly and returns the index remap.
func (pb *PolyhedronBuilder) weld(poly *Polyhedron, vertices []rl.Vector3) []int {
	remap := pb.ints.Alloc(len(vertices))
	seen := pb.seen
	for i, v := range vertices {
		if idx, ok := seen[v]; ok {
			remap[i] = idx
			continue
		}
		seen[v] = len(poly.Vertices)
		remap[i] = len(poly.Vertices)
		poly.Vertices = append(poly.Vertices, v)
	}
	return remap
}

var boxIndices = []int{
	0, 3, 2, 0, 2, 1, // -Z
	4, 5, 6, 4, 6, 7, // +Z
	0, 4, 7, 0, 7, 3, // -X
	1, 2, 6, 1, 6, 5, // +X
	0, 1, 5, 0, 5, 4, // -Y
	3, 7, 6, 3, 6, 2, // +Y
}

// BoxPolyhedron returns an axis-aligned box of the given size centered on the origin.
func BoxPolyhedron(size rl.Vector3) *Polyhedron {
	x, y, z := size.X/2, size.Y/2, size.Z/2
	vertices := []rl.Vector3{
		{X: -x, Y: -y, Z: -z}, {X: x, Y: -y, Z: -z}, {X: x, Y: y, Z: -z}, {X: -x, Y: y, Z: -z},
		{X: -x, Y: -y, Z: z}, {X: x, Y: -y, Z: z}, {X: x, Y: y, Z: z}, {X: -x, Y: y, Z: z},
	}
	return BuildPolyhedron(vertices, boxIndices)
}
