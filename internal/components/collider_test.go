package components

import (
	"testing"

	"gamecore/internal/engine"
	"gamecore/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFloorScene returns a started scene with a 100x100 floor whose top is at y=0.
func newFloorScene(t *testing.T) (*engine.Scene, *engine.GameObject) {
	t.Helper()
	scene := engine.NewScene("test")
	floor := engine.NewGameObject("floor")
	floor.Transform.Position = rl.Vector3{Y: -0.5}
	floor.AddComponent(NewMeshCollider(physics.BoxPolyhedron(rl.Vector3{X: 100, Y: 1, Z: 100})))
	scene.AddGameObject(floor)
	scene.Start()
	return scene, floor
}

func TestMeshColliderRegistersOnStart(t *testing.T) {
	scene, floor := newFloorScene(t)

	mc := engine.GetComponent[*MeshCollider](floor)
	require.NotNil(t, mc)
	require.NotNil(t, mc.Mesh())

	assert.Equal(t, 12, mc.TriangleCount())
	assert.Equal(t, 12, scene.Collision.TriangleCount())
	assert.Equal(t, floor, scene.MeshOwner(mc.Mesh()))
	assert.InDelta(t, 0, mc.Bounds().Max.Y, 1e-5)
	assert.InDelta(t, -1, mc.Bounds().Min.Y, 1e-5)

	// Starting again must not register a second copy.
	mc.Start()
	assert.Equal(t, 12, scene.Collision.TriangleCount())
}

func TestMeshColliderSyncTransform(t *testing.T) {
	_, floor := newFloorScene(t)
	mc := engine.GetComponent[*MeshCollider](floor)

	floor.Transform.Position = rl.Vector3{Y: 2}
	mc.SyncTransform()

	assert.InDelta(t, 2.5, mc.Bounds().Max.Y, 1e-5)
}

func TestMeshColliderWithoutScene(t *testing.T) {
	obj := engine.NewGameObject("loose")
	mc := NewMeshCollider(physics.BoxPolyhedron(rl.Vector3{X: 1, Y: 1, Z: 1}))
	obj.AddComponent(mc)
	obj.Start()

	assert.Nil(t, mc.Mesh())
	assert.Equal(t, physics.EmptyAABB(), mc.Bounds())
	mc.SyncTransform()
}

func TestStaticBoxColliderIsRaycastable(t *testing.T) {
	scene := engine.NewScene("test")
	crate := engine.NewGameObject("crate")
	crate.Transform.Position = rl.Vector3{X: 4}
	box := NewBoxCollider(rl.Vector3{X: 2, Y: 2, Z: 2})
	box.Static = true
	crate.AddComponent(box)
	scene.AddGameObject(crate)
	scene.Start()

	hit, ok := scene.Raycast(rl.Vector3{Y: 0.3, Z: 0.1}, rl.Vector3{X: 1}, 100)
	require.True(t, ok)
	assert.Equal(t, crate, hit.GameObject)
	assert.InDelta(t, 3, hit.Distance, 1e-4)
	assert.InDelta(t, -1, hit.Normal.X, 1e-5)
}

func TestDynamicBoxColliderDepenetrates(t *testing.T) {
	scene, _ := newFloorScene(t)

	crate := engine.NewGameObject("crate")
	crate.Transform.Position = rl.Vector3{X: 10, Y: 0.3, Z: 2}
	crate.AddComponent(NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	scene.AddGameObject(crate)

	scene.Update(1.0 / 60)

	assert.InDelta(t, 0.5, crate.Transform.Position.Y, 1e-4)
	assert.InDelta(t, 10, crate.Transform.Position.X, 1e-4)
}

func TestBoxColliderOBBFollowsRotation(t *testing.T) {
	obj := engine.NewGameObject("crate")
	obj.Transform.Position = rl.Vector3{X: 1}
	obj.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, rl.Pi/2)
	box := NewBoxCollider(rl.Vector3{X: 2, Y: 2, Z: 4})
	box.Offset = rl.Vector3{X: 1}
	obj.AddComponent(box)

	obb := box.GetOBB()
	// +X rotated a quarter turn about Y points along -Z.
	assert.InDelta(t, 1, obb.Center.X, 1e-5)
	assert.InDelta(t, -1, obb.Center.Z, 1e-5)

	bounds := box.GetAABB()
	assert.InDelta(t, 4, bounds.Max.X-bounds.Min.X, 1e-4)
	assert.InDelta(t, 2, bounds.Max.Z-bounds.Min.Z, 1e-4)
}

func TestSphereColliderDepenetrates(t *testing.T) {
	scene, _ := newFloorScene(t)

	ball := engine.NewGameObject("ball")
	ball.Transform.Position = rl.Vector3{X: 3, Y: 0.2, Z: 2}
	ball.AddComponent(NewSphereCollider(0.5))
	scene.AddGameObject(ball)

	scene.Update(1.0 / 60)

	assert.InDelta(t, 0.5, ball.Transform.Position.Y, 1e-4)
	assert.InDelta(t, 3, ball.Transform.Position.X, 1e-4)

	// Resting on the surface it stays put.
	scene.Update(1.0 / 60)
	assert.InDelta(t, 0.5, ball.Transform.Position.Y, 1e-4)
}
