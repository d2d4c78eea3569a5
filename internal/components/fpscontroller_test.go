package components

import (
	"testing"

	"gamecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFPSControllerFliesWithoutCharacterController(t *testing.T) {
	obj := engine.NewGameObject("ghost")
	fps := NewFPSController()
	obj.AddComponent(fps)
	obj.Start()

	fps.Step(FPSInput{Forward: 1}, 0.5)
	assert.InDelta(t, 0, obj.Transform.Position.X, 1e-5)
	assert.InDelta(t, -3, obj.Transform.Position.Z, 1e-5)

	fps.Step(FPSInput{Forward: 1, Right: 1}, 0.5)
	// Diagonal input is normalized.
	assert.InDelta(t, 3/1.41421356, obj.Transform.Position.X, 1e-4)
}

func TestFPSControllerLook(t *testing.T) {
	fps := NewFPSController()
	obj := engine.NewGameObject("player")
	obj.AddComponent(fps)

	fps.Step(FPSInput{LookDelta: rl.Vector2{Y: -10000}}, 0.016)
	assert.Equal(t, float32(89), fps.Pitch)

	fps.Pitch = 0
	fps.Step(FPSInput{LookDelta: rl.Vector2{X: 900}}, 0.016)
	assert.InDelta(t, 0, fps.Yaw, 1e-4)
	x, y, z := fps.GetLookDirection()
	assert.InDelta(t, 1, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, 0, z, 1e-5)
}

func TestFPSControllerDrivesCharacterController(t *testing.T) {
	scene, _ := newFloorScene(t)

	player := engine.NewGameObject("player")
	player.Transform.Position = rl.Vector3{X: 3, Y: 0.95, Z: 2}
	cc := NewCharacterController()
	fps := NewFPSController()
	fps.Input = func() FPSInput { return FPSInput{} }
	player.AddComponent(cc)
	player.AddComponent(fps)
	scene.AddGameObject(player)
	player.Start()

	for i := 0; i < 30; i++ {
		scene.Update(1.0 / 60)
	}
	require.True(t, cc.IsGrounded())
	rest := player.Transform.Position.Y

	fps.Step(FPSInput{Forward: 1, Jump: true}, 1.0/60)
	assert.False(t, cc.IsGrounded())
	assert.Greater(t, player.Transform.Position.Y, rest)
	assert.Less(t, player.Transform.Position.Z, float32(2))
	assert.Greater(t, cc.GetVelocity().Y, float32(0))
}

func TestCameraFollowsLookProvider(t *testing.T) {
	player := engine.NewGameObject("player")
	player.Transform.Position = rl.Vector3{Y: 1}
	player.AddComponent(NewFPSController())
	cam := NewCamera()
	player.AddComponent(cam)

	rc := cam.GetRaylibCamera()
	assert.InDelta(t, 1.7, rc.Position.Y, 1e-5)
	assert.InDelta(t, -1, rc.Target.Z-rc.Position.Z, 1e-5)
	assert.Equal(t, float32(60), rc.Fovy)

	// A child camera keeps its own offset and the parent's look.
	head := engine.NewGameObject("head")
	head.Transform.Position = rl.Vector3{Y: 0.5}
	child := NewCamera()
	head.AddComponent(child)
	player.AddChild(head)

	rc = child.GetRaylibCamera()
	assert.InDelta(t, 1.5, rc.Position.Y, 1e-5)
	assert.InDelta(t, -1, rc.Target.Z-rc.Position.Z, 1e-5)
}

func TestCameraUsesRotationWithoutLookProvider(t *testing.T) {
	obj := engine.NewGameObject("cam")
	obj.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, rl.Pi/2)
	cam := NewCamera()
	obj.AddComponent(cam)

	rc := cam.GetRaylibCamera()
	// -Z turned a quarter turn left faces -X.
	assert.InDelta(t, -1, rc.Target.X-rc.Position.X, 1e-5)
	assert.InDelta(t, 0, rc.Target.Z-rc.Position.Z, 1e-5)

	assert.Equal(t, rl.Camera3D{}, NewCamera().GetRaylibCamera())
}

func TestShooterSpawnsBall(t *testing.T) {
	scene, _ := newFloorScene(t)

	player := engine.NewGameObject("player")
	player.Transform.Position = rl.Vector3{Y: 1}
	fps := NewFPSController()
	fps.Input = func() FPSInput { return FPSInput{} }
	player.AddComponent(fps)
	shooter := NewShooter()
	firing := true
	shooter.Fire = func() bool { return firing }
	player.AddComponent(shooter)
	scene.AddGameObject(player)
	player.Start()

	scene.Update(0.01)
	scene.Update(0.01) // still cooling down

	shots := scene.FindByTag("shot")
	if assert.Len(t, shots, 1) {
		ball := shots[0]
		assert.Equal(t, "Shot_1", ball.Name)
		rb := engine.GetComponent[*Rigidbody](ball)
		if assert.NotNil(t, rb) {
			assert.InDelta(t, -30, rb.Velocity.Z, 0.5)
		}
		assert.NotNil(t, engine.GetComponent[*SphereCollider](ball))
	}

	firing = false
	scene.Update(1)
	assert.Len(t, scene.FindByTag("shot"), 1)

	assert.Nil(t, NewShooter().Shoot())
}
