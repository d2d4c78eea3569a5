package assets

import (
	"errors"
	"testing"

	"gamecore/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadMesh is a unit quad in the XZ plane facing +Y.
func quadMesh(indexed bool) rl.Mesh {
	if indexed {
		vertices := []float32{0, 0, 0, 0, 0, 1, 1, 0, 1, 1, 0, 0}
		indices := []uint16{0, 1, 2, 0, 2, 3}
		return rl.Mesh{VertexCount: 4, TriangleCount: 2, Vertices: &vertices[0], Indices: &indices[0]}
	}
	vertices := []float32{
		0, 0, 0, 0, 0, 1, 1, 0, 1,
		0, 0, 0, 1, 0, 1, 1, 0, 0,
	}
	return rl.Mesh{VertexCount: 6, TriangleCount: 2, Vertices: &vertices[0]}
}

func TestMeshGeometryIndexed(t *testing.T) {
	vertices, indices, err := MeshGeometry(quadMesh(true))
	require.NoError(t, err)

	assert.Len(t, vertices, 4)
	assert.Equal(t, rl.Vector3{X: 1, Z: 1}, vertices[2])
	assert.Equal(t, []int{0, 1, 2, 0, 2, 3}, indices)
}

func TestMeshGeometryNonIndexed(t *testing.T) {
	vertices, indices, err := MeshGeometry(quadMesh(false))
	require.NoError(t, err)

	assert.Len(t, vertices, 6)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, indices)

	// Both layouts weld into the same single-face polyhedron.
	poly := physics.BuildPolyhedron(vertices, indices)
	assert.Len(t, poly.Vertices, 4)
	require.Len(t, poly.Faces, 1)
	assert.InDelta(t, 1, poly.Faces[0].Plane.Normal.Y, 1e-6)
}

func TestMeshGeometryRejectsBadIndices(t *testing.T) {
	vertices := []float32{0, 0, 0, 1, 0, 0, 0, 0, 1}
	indices := []uint16{0, 1, 7}
	mesh := rl.Mesh{VertexCount: 3, TriangleCount: 1, Vertices: &vertices[0], Indices: &indices[0]}

	_, _, err := MeshGeometry(mesh)
	assert.Error(t, err)

	v, i, err := MeshGeometry(rl.Mesh{})
	assert.NoError(t, err)
	assert.Empty(t, v)
	assert.Empty(t, i)
}

func TestModelPolyhedra(t *testing.T) {
	meshes := []rl.Mesh{quadMesh(true), {}, quadMesh(false)}
	model := rl.Model{
		Transform: rl.MatrixTranslate(0, 2, 0),
		MeshCount: int32(len(meshes)),
		Meshes:    &meshes[0],
	}

	polys, err := ModelPolyhedra(model, physics.NewPolyhedronBuilder(4))
	require.NoError(t, err)
	require.Len(t, polys, 2, "the empty mesh is skipped")
	for _, p := range polys {
		assert.Equal(t, 2, p.TriangleCount())
		assert.InDelta(t, 2, p.Bounds().Min.Y, 1e-6)
	}

	_, err = ModelPolyhedra(rl.Model{}, physics.NewPolyhedronBuilder(1))
	assert.True(t, errors.Is(err, ErrNoMeshes))
}
