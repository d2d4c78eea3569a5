package engine

import "gamecore/internal/physics"

type Scene struct {
	Name        string
	GameObjects []*GameObject
	// Collision holds the static geometry character controllers slide against.
	Collision *physics.World

	uidMap     map[uint64]*GameObject
	meshOwners map[*physics.CollisionMesh]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		Collision:   physics.NewWorld(),
		uidMap:      make(map[uint64]*GameObject),
		meshOwners:  make(map[*physics.CollisionMesh]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.uidMap[g.UID] = g
}

// RemoveGameObject removes g and its children, along with any collision geometry
// they registered.
func (s *Scene) RemoveGameObject(g *GameObject) {
	for _, c := range g.Children {
		s.RemoveGameObject(c)
	}
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			break
		}
	}
	delete(s.uidMap, g.UID)
	for mesh, owner := range s.meshOwners {
		if owner == g {
			s.RemoveCollisionMesh(mesh)
		}
	}
	if g.Scene == s {
		g.Scene = nil
	}
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

// AddCollisionMesh registers static geometry owned by g.
func (s *Scene) AddCollisionMesh(g *GameObject, mesh *physics.CollisionMesh) {
	if s.Collision == nil {
		s.Collision = physics.NewWorld()
	}
	if s.meshOwners == nil {
		s.meshOwners = make(map[*physics.CollisionMesh]*GameObject)
	}
	s.Collision.Add(mesh)
	s.meshOwners[mesh] = g
}

func (s *Scene) RemoveCollisionMesh(mesh *physics.CollisionMesh) {
	if s.Collision != nil {
		s.Collision.Remove(mesh)
	}
	delete(s.meshOwners, mesh)
}

// MeshOwner returns the object that registered mesh, or nil.
func (s *Scene) MeshOwner(mesh *physics.CollisionMesh) *GameObject {
	return s.meshOwners[mesh]
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}
