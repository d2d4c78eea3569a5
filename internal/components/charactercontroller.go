package components

import (
	"math"

	"gamecore/internal/engine"
	"gamecore/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// groundProbe is how far below the feet SimpleMove looks for ground when a move ends
// without touching it.
const groundProbe = 0.05

// groundStick is the downward speed a grounded character keeps so the next move
// still meets the floor.
const groundStick = 0.1

// CharacterController moves its object as an ellipsoid that collides and slides
// against the scene's static geometry. Similar to Unity's CharacterController.
type CharacterController struct {
	engine.BaseComponent

	Radii      rl.Vector3 // ellipsoid radii, centered on the object's position
	SlopeLimit float32    // steepest walkable slope in degrees
	UseGravity bool
	Gravity    float32 // positive = down
	Slide      physics.SlideConfig

	// Landed fires when the character touches walkable ground after being airborne.
	Landed engine.Event

	velocity   rl.Vector3
	isGrounded bool
	ground     engine.GameObjectRef
	slider     *physics.Slider
}

func NewCharacterController() *CharacterController {
	return &CharacterController{
		Radii:      rl.Vector3{X: 0.4, Y: 0.9, Z: 0.4},
		SlopeLimit: 45.0,
		UseGravity: true,
		Gravity:    20.0,
		Slide:      physics.DefaultSlideConfig(),
	}
}

func (c *CharacterController) Start() {
	c.slider = physics.NewSlider(c.Slide)
}

func (c *CharacterController) world() *physics.World {
	g := c.GetGameObject()
	if g == nil || g.Scene == nil {
		return nil
	}
	return g.Scene.Collision
}

func (c *CharacterController) getSlider() *physics.Slider {
	if c.slider == nil || c.slider.Config() != c.Slide {
		c.slider = physics.NewSlider(c.Slide)
	}
	return c.slider
}

// Move moves the character by motion, horizontal part first, and returns the
// displacement that actually happened.
func (c *CharacterController) Move(motion rl.Vector3) rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}
	world := c.world()
	slider := c.getSlider()

	wasGrounded := c.isGrounded
	c.isGrounded = false

	start := g.WorldPosition()
	pos := start

	horizontal := rl.Vector3{X: motion.X, Z: motion.Z}
	if horizontal.X != 0 || horizontal.Z != 0 {
		res := slider.Slide(c.Radii, pos, horizontal, world)
		pos = res.Position
		if res.Hit {
			c.notifyHit(g, res, horizontal)
		}
	}

	if motion.Y != 0 {
		vertical := rl.Vector3{Y: motion.Y}
		res := slider.Slide(c.Radii, pos, vertical, world)
		pos = res.Position
		if res.Hit {
			switch {
			case c.walkable(res.Normal):
				c.setGround(g, res.Mesh)
				if c.velocity.Y < 0 {
					c.velocity.Y = 0
				}
			case res.Normal.Y < 0 && c.velocity.Y > 0:
				// Head hit a ceiling.
				c.velocity.Y = 0
			}
			c.notifyHit(g, res, vertical)
		}
	}

	if !c.isGrounded && c.velocity.Y <= 0 {
		probe := slider.Slide(c.Radii, pos, rl.Vector3{Y: -groundProbe}, world)
		if probe.Hit && c.walkable(probe.Normal) {
			c.setGround(g, probe.Mesh)
		}
	}
	if !c.isGrounded {
		c.ground.Clear()
	}

	g.SetWorldPosition(pos)
	if c.isGrounded && !wasGrounded {
		c.Landed.Invoke()
	}
	return rl.Vector3Subtract(pos, start)
}

// SimpleMove walks at speed (horizontal, units per second) and applies gravity.
func (c *CharacterController) SimpleMove(speed rl.Vector3, deltaTime float32) {
	c.velocity.X = speed.X
	c.velocity.Z = speed.Z

	var accel rl.Vector3
	if c.UseGravity {
		if c.isGrounded && c.velocity.Y <= 0 {
			c.velocity.Y = -groundStick
		} else {
			accel.Y = -c.Gravity
		}
	}

	var delta rl.Vector3
	c.velocity, delta = physics.Integrate(c.velocity, accel, deltaTime)
	c.Move(delta)
}

func (c *CharacterController) walkable(normal rl.Vector3) bool {
	return normal.Y > float32(math.Cos(float64(c.SlopeLimit)*math.Pi/180))
}

func (c *CharacterController) setGround(g *engine.GameObject, mesh *physics.CollisionMesh) {
	c.isGrounded = true
	if g.Scene != nil && mesh != nil {
		c.ground.Set(g.Scene.MeshOwner(mesh))
	}
}

func (c *CharacterController) notifyHit(g *engine.GameObject, res physics.SlideResult, motion rl.Vector3) {
	hit := engine.ControllerHit{Normal: res.Normal, Motion: motion}
	if g.Scene != nil && res.Mesh != nil {
		hit.Other = g.Scene.MeshOwner(res.Mesh)
	}
	for _, comp := range g.Components() {
		if h, ok := comp.(engine.ControllerHitHandler); ok {
			h.OnControllerHit(hit)
		}
	}
}

// IsGrounded returns whether the character is on walkable ground
func (c *CharacterController) IsGrounded() bool {
	return c.isGrounded
}

// Ground returns the object the character stands on, or nil.
func (c *CharacterController) Ground() *engine.GameObject {
	g := c.GetGameObject()
	if g == nil {
		return nil
	}
	return c.ground.Get(g.Scene)
}

// GetVelocity returns the current velocity
func (c *CharacterController) GetVelocity() rl.Vector3 {
	return c.velocity
}

// SetVelocityY sets the vertical velocity (for jumping)
func (c *CharacterController) SetVelocityY(vy float32) {
	c.velocity.Y = vy
	if vy > 0 {
		c.isGrounded = false
	}
}
