package assets

import (
	"fmt"
	"unsafe"

	"gamecore/internal/logging"
	"gamecore/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MeshGeometry copies the positions and triangle indices out of a raylib mesh. A mesh
// without an index buffer is treated as a plain triangle list.
func MeshGeometry(mesh rl.Mesh) ([]rl.Vector3, []int, error) {
	if mesh.Vertices == nil || mesh.VertexCount <= 0 {
		return nil, nil, nil
	}

	raw := unsafe.Slice(mesh.Vertices, mesh.VertexCount*3)
	vertices := make([]rl.Vector3, mesh.VertexCount)
	for i := range vertices {
		vertices[i] = rl.Vector3{X: raw[i*3], Y: raw[i*3+1], Z: raw[i*3+2]}
	}

	var indices []int
	if mesh.Indices != nil {
		// Indexed mesh
		raw := unsafe.Slice(mesh.Indices, mesh.TriangleCount*3)
		indices = make([]int, len(raw))
		for i, idx := range raw {
			if int(idx) >= len(vertices) {
				return nil, nil, fmt.Errorf("index %d out of range for %d vertices", idx, len(vertices))
			}
			indices[i] = int(idx)
		}
	} else {
		// Non-indexed mesh - vertices are already in triangle order
		indices = make([]int, len(vertices)/3*3)
		for i := range indices {
			indices[i] = i
		}
	}
	return vertices, indices, nil
}

// ModelPolyhedra builds one polyhedron per mesh of model, in model space (the
// model's own transform applied). Meshes without triangles are skipped.
func ModelPolyhedra(model rl.Model, builder *physics.PolyhedronBuilder) ([]*physics.Polyhedron, error) {
	if model.MeshCount <= 0 || model.Meshes == nil {
		return nil, ErrNoMeshes
	}

	log := logging.For("assets")
	var polys []*physics.Polyhedron
	for i, mesh := range unsafe.Slice(model.Meshes, model.MeshCount) {
		vertices, indices, err := MeshGeometry(mesh)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		if len(indices) == 0 {
			log.Warn().Int("mesh", i).Msg("Skipping mesh without triangles")
			continue
		}
		for j := range vertices {
			vertices[j] = rl.Vector3Transform(vertices[j], model.Transform)
		}
		polys = append(polys, builder.Build(vertices, indices))
	}
	if len(polys) == 0 {
		return nil, ErrNoMeshes
	}
	return polys, nil
}

// LoadCollision loads the model at path and returns its collision polyhedra.
func LoadCollision(path string) ([]*physics.Polyhedron, error) {
	polys, err := ModelPolyhedra(LoadModel(path), physics.NewPolyhedronBuilder(256))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log := logging.For("assets")
	tris := 0
	for _, p := range polys {
		tris += p.TriangleCount()
	}
	log.Info().Str("path", path).Int("polyhedra", len(polys)).Int("triangles", tris).Msg("Built collision")
	return polys, nil
}
