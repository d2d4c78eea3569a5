package components

import (
	"gamecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SphereCollider keeps a sphere around the object out of the scene's geometry.
type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset rl.Vector3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{
		Radius: radius,
		Offset: rl.Vector3{},
	}
}

func (s *SphereCollider) Update(deltaTime float32) {
	g := s.GetGameObject()
	if g == nil || g.Scene == nil {
		return
	}
	if push, hit := g.Scene.Collision.SphereOverlap(s.GetCenter(), s.Radius); hit {
		g.SetWorldPosition(rl.Vector3Add(g.WorldPosition(), push))
	}
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	g := s.GetGameObject()
	return rl.Vector3Add(g.WorldPosition(), s.Offset)
}
