package components

import (
	"gamecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Rotator spins an object around Axis, carrying its MeshCollider along.
type Rotator struct {
	engine.BaseComponent
	Speed float32 // degrees per second
	Axis  rl.Vector3

	angle float32
	base  rl.Quaternion
}

func NewRotator(speed float32) *Rotator {
	return &Rotator{Speed: speed, Axis: rl.Vector3{Y: 1}}
}

func (r *Rotator) Start() {
	if g := r.GetGameObject(); g != nil {
		r.base = g.Transform.Rotation
	}
}

func (r *Rotator) Update(deltaTime float32) {
	g := r.GetGameObject()
	if g == nil {
		return
	}
	r.angle += r.Speed * deltaTime
	if r.angle > 360 {
		r.angle -= 360
	}
	if r.angle < -360 {
		r.angle += 360
	}

	spin := rl.QuaternionFromAxisAngle(r.Axis, r.angle*rl.Deg2rad)
	g.Transform.Rotation = rl.QuaternionMultiply(spin, r.base)

	if mc := engine.GetComponent[*MeshCollider](g); mc != nil {
		mc.SyncTransform()
	}
}

// Angle returns the current spin in degrees.
func (r *Rotator) Angle() float32 {
	return r.angle
}
