package components

import (
	"gamecore/internal/engine"
	"gamecore/internal/physics"
	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.3 // units/sec - below this, object might sleep
	SleepAngularThreshold  = 1.0 // deg/sec - below this, object might sleep
	SleepTimeThreshold     = 0.3 // seconds of low velocity before sleeping
)

// Rigidbody is a simple dynamic body: it falls, and bounces off the scene's static
// geometry using the object's SphereCollider or BoxCollider as its shape.
type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // degrees per second on each axis
	Bounciness      float32    // 0 = no bounce, 1 = perfect bounce
	Friction        float32    // 0 = ice, 1 = stops immediately
	AngularDamping  float32    // how fast rotation slows down
	UseGravity      bool
	Gravity         float32
	IsKinematic     bool // moves but doesn't get pushed by physics

	// Sleep state - sleeping objects skip physics simulation
	IsSleeping bool
	sleepTimer float32 // time spent below velocity threshold
	CanSleep   bool    // whether this object can sleep (default true)
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Bounciness:     0.5,
		Friction:       0.1,
		AngularDamping: 0.98, // slight damping each frame
		UseGravity:     true,
		Gravity:        9.81,
		CanSleep:       true,
	}
}

func (r *Rigidbody) Update(deltaTime float32) {
	g := r.GetGameObject()
	if g == nil || r.IsKinematic || r.IsSleeping {
		return
	}

	var accel rl.Vector3
	if r.UseGravity {
		accel.Y = -r.Gravity
	}
	var delta rl.Vector3
	r.Velocity, delta = physics.Integrate(r.Velocity, accel, deltaTime)
	g.Transform.Position = rl.Vector3Add(g.Transform.Position, delta)

	if push, hit := r.depenetrate(g); hit {
		g.Transform.Position = rl.Vector3Add(g.Transform.Position, push)
		r.bounce(rl.Vector3Normalize(push))
	}

	if !vmath.IsZero(r.AngularVelocity) {
		spin := rl.Vector3Scale(r.AngularVelocity, deltaTime*rl.Deg2rad)
		step := rl.QuaternionFromEuler(spin.X, spin.Y, spin.Z)
		g.Transform.Rotation = vmath.QuaternionNormalize(rl.QuaternionMultiply(step, g.Transform.Rotation))
		r.AngularVelocity = rl.Vector3Scale(r.AngularVelocity, r.AngularDamping)
	}

	r.TrySleep(deltaTime)
}

// depenetrate returns the push out of the scene geometry for the object's shape.
func (r *Rigidbody) depenetrate(g *engine.GameObject) (rl.Vector3, bool) {
	if g.Scene == nil {
		return rl.Vector3{}, false
	}
	if sc := engine.GetComponent[*SphereCollider](g); sc != nil {
		return g.Scene.Collision.SphereOverlap(sc.GetCenter(), sc.Radius)
	}
	if bc := engine.GetComponent[*BoxCollider](g); bc != nil && !bc.Static {
		return g.Scene.Collision.ResolveOBB(bc.GetOBB())
	}
	return rl.Vector3{}, false
}

// bounce reflects the velocity component going into the surface with normal n.
func (r *Rigidbody) bounce(n rl.Vector3) {
	vn := rl.Vector3DotProduct(r.Velocity, n)
	if vn >= 0 {
		return
	}
	normal := rl.Vector3Scale(n, vn)
	tangent := rl.Vector3Subtract(r.Velocity, normal)
	r.Velocity = rl.Vector3Subtract(rl.Vector3Scale(tangent, 1-r.Friction), rl.Vector3Scale(normal, r.Bounciness))
}

// AddImpulse changes the velocity directly and wakes the body.
func (r *Rigidbody) AddImpulse(impulse rl.Vector3) {
	r.Velocity = rl.Vector3Add(r.Velocity, impulse)
	r.Wake()
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// TrySleep checks if the rigidbody should go to sleep based on velocity
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping {
		return
	}

	speed := rl.Vector3Length(r.Velocity)
	angSpeed := rl.Vector3Length(r.AngularVelocity)

	if speed < SleepVelocityThreshold && angSpeed < SleepAngularThreshold {
		r.sleepTimer += deltaTime

		// Apply extra damping when nearly at rest to reduce jitter
		dampFactor := float32(0.9)
		r.Velocity = rl.Vector3Scale(r.Velocity, dampFactor)
		r.AngularVelocity = rl.Vector3Scale(r.AngularVelocity, dampFactor)

		if r.sleepTimer >= SleepTimeThreshold {
			r.IsSleeping = true
			r.Velocity = rl.Vector3{}
			r.AngularVelocity = rl.Vector3{}
		}
	} else {
		r.sleepTimer = 0
	}
}
