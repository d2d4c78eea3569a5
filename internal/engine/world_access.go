package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// RaycastResult is a scene raycast hit resolved to the object that owns the geometry.
type RaycastResult struct {
	GameObject *GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// Raycast casts against the scene's collision world.
func (s *Scene) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastResult, bool) {
	hit, ok := s.Collision.Raycast(origin, direction, maxDistance)
	if !ok {
		return RaycastResult{}, false
	}
	return RaycastResult{
		GameObject: s.MeshOwner(hit.Mesh),
		Point:      hit.Point,
		Normal:     hit.Normal,
		Distance:   hit.Distance,
	}, true
}
