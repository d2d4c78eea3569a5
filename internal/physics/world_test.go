package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollisionMeshFromPolyhedron(t *testing.T) {
	vertices, indices := unitCube()
	poly := BuildPolyhedron(vertices, indices)

	m := NewCollisionMesh("crate", poly, rl.MatrixTranslate(10, 0, 0))

	assert.Equal(t, 12, m.TriangleCount())
	assert.InDelta(t, 9, m.Bounds.Min.X, 1e-5)
	assert.InDelta(t, 11, m.Bounds.Max.X, 1e-5)

	m.SetTransform(rl.MatrixIdentity())
	assert.InDelta(t, -1, m.Bounds.Min.X, 1e-5)
}

func TestCollisionMeshMirroredKeepsNormalsOutward(t *testing.T) {
	vertices, indices := unitCube()
	poly := BuildPolyhedron(vertices, indices)

	for name, transform := range map[string]rl.Matrix{
		"identity": rl.MatrixIdentity(),
		"mirrorX":  rl.MatrixScale(-1, 1, 1),
		"mirrorXY": rl.MatrixScale(-1, -1, 2),
	} {
		t.Run(name, func(t *testing.T) {
			m := NewCollisionMesh("cube", poly, transform)
			center := rl.Vector3Lerp(m.Bounds.Min, m.Bounds.Max, 0.5)
			for i, tri := range m.Triangles {
				centroid := rl.Vector3Divide(rl.Vector3Add(rl.Vector3Add(tri.V0, tri.V1), tri.V2), rl.Vector3{X: 3, Y: 3, Z: 3})
				out := rl.Vector3Subtract(centroid, center)
				assert.Greater(t, rl.Vector3DotProduct(tri.Normal, out), float32(0), "triangle %d faces inward", i)
			}
		})
	}
}

func TestWorldTriangleCount(t *testing.T) {
	w := NewWorld()
	assert.Equal(t, 0, w.TriangleCount())

	w.Add(wallWorld().Meshes[0])
	w.Add(floorWorld().Meshes[0])
	assert.Equal(t, 4, w.TriangleCount())
}

func TestWorldResolveOBB(t *testing.T) {
	w := floorWorld()

	push, hit := w.ResolveOBB(NewAABBasOBB(rl.Vector3{Y: 0.5}, rl.Vector3{X: 2, Y: 2, Z: 2}))
	require.True(t, hit)
	assert.InDelta(t, 0, push.X, 1e-5)
	assert.InDelta(t, 0.5, push.Y, 1e-5)
	assert.InDelta(t, 0, push.Z, 1e-5)

	_, hit = w.ResolveOBB(NewAABBasOBB(rl.Vector3{Y: 5}, rl.Vector3{X: 2, Y: 2, Z: 2}))
	assert.False(t, hit)
}

func TestSweptSphereOBBEnclosesMotion(t *testing.T) {
	box := NewSweptSphereOBB(rl.Vector3{}, rl.Vector3{X: 4}, 1)
	bounds := box.Bounds()

	assert.InDelta(t, -1, bounds.Min.X, 1e-5)
	assert.InDelta(t, 5, bounds.Max.X, 1e-5)
	assert.InDelta(t, 1, bounds.Max.Y, 1e-5)
	assert.InDelta(t, 1, bounds.Max.Z, 1e-5)

	still := NewSweptSphereOBB(rl.Vector3{Y: 2}, rl.Vector3{}, 0.5)
	assert.Equal(t, AABB{Min: rl.Vector3{X: -0.5, Y: 1.5, Z: -0.5}, Max: rl.Vector3{X: 0.5, Y: 2.5, Z: 0.5}}, still.Bounds())
}

func TestAABBHelpers(t *testing.T) {
	box := AABBFromPoints(rl.Vector3{X: 1, Y: 2, Z: 3}, rl.Vector3{X: -1, Y: 0, Z: 5})
	assert.Equal(t, rl.Vector3{X: -1, Y: 0, Z: 3}, box.Min)
	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 5}, box.Max)

	other := AABB{Min: rl.Vector3{X: 0.5, Z: 3}, Max: rl.Vector3{X: 2.5, Y: 2, Z: 5}}
	assert.True(t, box.Intersects(other))
	assert.False(t, box.Intersects(AABB{Min: rl.Vector3{X: 3}, Max: rl.Vector3{X: 4, Y: 1, Z: 4}}))
}

func TestWorldSphereOverlap(t *testing.T) {
	w := floorWorld()

	push, hit := w.SphereOverlap(rl.Vector3{X: 3, Y: 0.25, Z: 2}, 1)
	require.True(t, hit)
	assert.InDelta(t, 0.75, push.Y, 1e-5)
	assert.InDelta(t, 0, push.X, 1e-5)

	push, hit = w.SphereOverlap(rl.Vector3{X: 3, Z: 2}, 0.5)
	require.True(t, hit)
	assert.InDelta(t, 0.5, push.Y, 1e-5, "a center on the surface leaves along the normal")

	_, hit = w.SphereOverlap(rl.Vector3{Y: 2}, 1)
	assert.False(t, hit)
}
