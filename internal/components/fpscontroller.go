package components

import (
	"math"

	"gamecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FPSInput is one frame of player input.
type FPSInput struct {
	Forward, Right float32 // -1..1
	LookDelta      rl.Vector2
	Jump           bool
}

// ReadFPSInput samples the keyboard and mouse.
func ReadFPSInput() FPSInput {
	var in FPSInput
	if rl.IsKeyDown(rl.KeyW) {
		in.Forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Right++
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Right--
	}
	in.LookDelta = rl.GetMouseDelta()
	in.Jump = rl.IsKeyPressed(rl.KeySpace)
	return in
}

// FPSController turns input into look angles and drives the object's
// CharacterController.
type FPSController struct {
	engine.BaseComponent
	Yaw          float32
	Pitch        float32
	MoveSpeed    float32
	LookSpeed    float32
	JumpStrength float32
	EyeHeight    float32 // above the controller's center

	// Input overrides the keyboard and mouse when set.
	Input func() FPSInput

	controller *CharacterController
}

func NewFPSController() *FPSController {
	return &FPSController{
		Yaw:          -90.0,
		Pitch:        0,
		MoveSpeed:    6.0,
		LookSpeed:    0.1,
		JumpStrength: 8.0,
		EyeHeight:    0.7,
	}
}

func (f *FPSController) Start() {
	if g := f.GetGameObject(); g != nil {
		f.controller = engine.GetComponent[*CharacterController](g)
	}
}

func (f *FPSController) Update(deltaTime float32) {
	read := f.Input
	if read == nil {
		read = ReadFPSInput
	}
	f.Step(read(), deltaTime)
}

// Step applies one frame of input.
func (f *FPSController) Step(in FPSInput, deltaTime float32) {
	g := f.GetGameObject()
	if g == nil {
		return
	}

	f.Yaw += in.LookDelta.X * f.LookSpeed
	f.Pitch -= in.LookDelta.Y * f.LookSpeed
	f.Pitch = min(max(f.Pitch, -89), 89)

	forward, right := f.getDirections()
	moveDir := rl.Vector3Add(rl.Vector3Scale(forward, in.Forward), rl.Vector3Scale(right, in.Right))

	// Normalize diagonal movement
	if l := rl.Vector3Length(moveDir); l > 0 {
		moveDir = rl.Vector3Scale(moveDir, 1/l)
	}
	speed := rl.Vector3Scale(moveDir, f.MoveSpeed)

	if f.controller == nil {
		// No controller: fly without collision.
		g.Transform.Position = rl.Vector3Add(g.Transform.Position, rl.Vector3Scale(speed, deltaTime))
		return
	}

	if in.Jump && f.controller.IsGrounded() {
		f.controller.SetVelocityY(f.JumpStrength)
	}
	f.controller.SimpleMove(speed, deltaTime)
}

func (f *FPSController) getDirections() (forward, right rl.Vector3) {
	yawRad := float64(f.Yaw) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(math.Cos(yawRad)),
		Z: float32(math.Sin(yawRad)),
	}
	right = rl.Vector3{
		X: float32(-math.Sin(yawRad)),
		Z: float32(math.Cos(yawRad)),
	}
	return
}

// GetLookDirection implements engine.LookProvider
func (f *FPSController) GetLookDirection() (x, y, z float32) {
	yawRad := float64(f.Yaw) * math.Pi / 180
	pitchRad := float64(f.Pitch) * math.Pi / 180
	return float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		float32(math.Sin(pitchRad)),
		float32(math.Sin(yawRad) * math.Cos(pitchRad))
}

// GetEyeHeight implements engine.LookProvider
func (f *FPSController) GetEyeHeight() float32 {
	return f.EyeHeight
}
