package components

import (
	"fmt"

	"gamecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shooter fires bouncing balls along the FPSController's look direction.
type Shooter struct {
	engine.BaseComponent
	Cooldown float32
	Speed    float32
	Radius   float32

	// Fire overrides the left mouse button when set.
	Fire func() bool

	sinceShot   float32
	shotCounter int
}

func NewShooter() *Shooter {
	return &Shooter{
		Cooldown:  0.15,
		Speed:     30,
		Radius:    0.25,
		sinceShot: 0.15,
	}
}

func (s *Shooter) Update(deltaTime float32) {
	s.sinceShot += deltaTime
	fire := s.Fire
	if fire == nil {
		fire = func() bool { return rl.IsMouseButtonDown(rl.MouseLeftButton) }
	}
	if fire() && s.sinceShot >= s.Cooldown {
		s.Shoot()
		s.sinceShot = 0
	}
}

// Shoot spawns one ball into the scene and returns it, or nil when the object has
// no FPSController or is not in a scene.
func (s *Shooter) Shoot() *engine.GameObject {
	g := s.GetGameObject()
	if g == nil || g.Scene == nil {
		return nil
	}
	fps := engine.GetComponent[*FPSController](g)
	if fps == nil {
		return nil
	}

	s.shotCounter++

	x, y, z := fps.GetLookDirection()
	lookDir := rl.Vector3{X: x, Y: y, Z: z}
	eye := g.WorldPosition()
	eye.Y += fps.GetEyeHeight()
	spawnPos := rl.Vector3Add(eye, rl.Vector3Scale(lookDir, 1))

	sphere := engine.NewGameObject(fmt.Sprintf("Shot_%d", s.shotCounter))
	sphere.Tags = append(sphere.Tags, "shot")
	sphere.Transform.Position = spawnPos
	sphere.AddComponent(NewMeshRenderer(MeshSphere, rl.Orange, rl.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius}))
	sphere.AddComponent(NewSphereCollider(s.Radius))

	rb := NewRigidbody()
	rb.Bounciness = 0.6
	rb.Friction = 0.1
	rb.Velocity = rl.Vector3Scale(lookDir, s.Speed)
	sphere.AddComponent(rb)

	g.Scene.AddGameObject(sphere)
	sphere.Start()
	return sphere
}
