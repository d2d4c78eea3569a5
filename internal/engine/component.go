package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// LookProvider is implemented by components that control camera look direction.
type LookProvider interface {
	GetLookDirection() (x, y, z float32)
	GetEyeHeight() float32
}

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// ControllerHit describes a surface a character controller ran into during a move.
type ControllerHit struct {
	Other  *GameObject // owner of the geometry, nil for unowned meshes
	Normal rl.Vector3
	Motion rl.Vector3 // the move that was blocked
}

// ControllerHitHandler is implemented by components that want to hear about the
// surfaces their object's character controller touches.
type ControllerHitHandler interface {
	OnControllerHit(hit ControllerHit)
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
