package components

import (
	"gamecore/internal/engine"
	"gamecore/internal/physics"
)

// MeshCollider places a polyhedron in the scene's collision world.
// This is for STATIC geometry: moving the object needs a SyncTransform call.
type MeshCollider struct {
	engine.BaseComponent
	Polyhedron *physics.Polyhedron

	mesh *physics.CollisionMesh
}

func NewMeshCollider(poly *physics.Polyhedron) *MeshCollider {
	return &MeshCollider{Polyhedron: poly}
}

func (m *MeshCollider) Start() {
	g := m.GetGameObject()
	if g == nil || g.Scene == nil || m.Polyhedron == nil || m.mesh != nil {
		return
	}
	m.mesh = physics.NewCollisionMesh(g.Name, m.Polyhedron, g.WorldMatrix())
	g.Scene.AddCollisionMesh(g, m.mesh)
}

// SyncTransform re-places the collision mesh at the object's current world transform.
func (m *MeshCollider) SyncTransform() {
	if m.mesh == nil {
		return
	}
	m.mesh.SetTransform(m.GetGameObject().WorldMatrix())
}

// Mesh returns the registered collision mesh, nil before Start.
func (m *MeshCollider) Mesh() *physics.CollisionMesh {
	return m.mesh
}

// TriangleCount returns the number of triangles in the collider
func (m *MeshCollider) TriangleCount() int {
	if m.Polyhedron == nil {
		return 0
	}
	return m.Polyhedron.TriangleCount()
}

// Bounds returns the world-space bounds, or an empty box before Start.
func (m *MeshCollider) Bounds() physics.AABB {
	if m.mesh == nil {
		return physics.EmptyAABB()
	}
	return m.mesh.Bounds
}
