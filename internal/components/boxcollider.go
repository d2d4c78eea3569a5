package components

import (
	"gamecore/internal/engine"
	"gamecore/internal/physics"
	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BoxCollider is a box around the object. A static box becomes collision geometry;
// a dynamic one is pushed out of the scene's geometry every frame.
type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
	Static bool

	mesh *physics.CollisionMesh
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

func (b *BoxCollider) Start() {
	g := b.GetGameObject()
	if !b.Static || g == nil || g.Scene == nil || b.mesh != nil {
		return
	}
	transform := vmath.Then(rl.MatrixTranslate(b.Offset.X, b.Offset.Y, b.Offset.Z), g.WorldMatrix())
	b.mesh = physics.NewCollisionMesh(g.Name, physics.BoxPolyhedron(b.Size), transform)
	g.Scene.AddCollisionMesh(g, b.mesh)
}

func (b *BoxCollider) Update(deltaTime float32) {
	if b.Static {
		return
	}
	g := b.GetGameObject()
	if g == nil || g.Scene == nil {
		return
	}
	if push, hit := g.Scene.Collision.ResolveOBB(b.GetOBB()); hit {
		g.SetWorldPosition(rl.Vector3Add(g.WorldPosition(), push))
	}
}

// GetOBB returns the world-space box, following the object's rotation and scale.
func (b *BoxCollider) GetOBB() physics.OBB {
	g := b.GetGameObject()
	rot := g.WorldRotation()
	scale := g.WorldScale()
	offset := rl.Vector3RotateByQuaternion(rl.Vector3Multiply(b.Offset, scale), rot)
	half := rl.Vector3Scale(rl.Vector3Multiply(b.Size, scale), 0.5)
	return physics.NewOBB(rl.Vector3Add(g.WorldPosition(), offset), half, rot)
}

// GetAABB returns the world-space bounds of the box.
func (b *BoxCollider) GetAABB() physics.AABB {
	return b.GetOBB().Bounds()
}
