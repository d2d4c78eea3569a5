package components

import (
	"gamecore/internal/animation"
	"gamecore/internal/engine"
	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Animator plays skeletal animations on an armature and keeps the sampled bone
// matrices and skinning palette for the renderer.
type Animator struct {
	engine.BaseComponent
	Armature *animation.Armature
	Speed    float32
	Loop     bool

	// Finished fires once when a non-looping animation reaches its end.
	Finished engine.EventWithArg[*animation.Animation]

	state *animation.State
	pose  []rl.Matrix
	skin  []rl.Matrix
}

func NewAnimator(arm *animation.Armature) *Animator {
	a := &Animator{Armature: arm, Speed: 1, Loop: true}
	a.allocate()
	return a
}

func (a *Animator) allocate() {
	n := len(a.Armature.Bones)
	if len(a.pose) != n {
		a.pose = make([]rl.Matrix, n)
		a.skin = make([]rl.Matrix, n)
		a.Armature.BindPose(a.pose)
		animation.SkinningMatrices(a.pose, a.Armature, a.skin)
	}
}

// Play starts anim from the beginning using the animator's Speed and Loop.
func (a *Animator) Play(anim *animation.Animation) {
	a.allocate()
	a.state = animation.NewState(a.Armature, anim, a.Loop)
	a.state.Speed = a.Speed
	a.state.Restart()
	a.sample()
}

// Stop returns the armature to its bind pose.
func (a *Animator) Stop() {
	a.state = nil
	a.Armature.BindPose(a.pose)
	animation.SkinningMatrices(a.pose, a.Armature, a.skin)
}

func (a *Animator) Update(deltaTime float32) {
	if a.state == nil {
		return
	}
	wasFinished := a.state.Finished()
	a.state.Speed = a.Speed
	a.state.Advance(deltaTime)
	a.sample()
	if !wasFinished && a.state.Finished() {
		a.Finished.Invoke(a.state.Animation)
	}
}

func (a *Animator) sample() {
	animation.SampleAnimationInto(a.state, a.pose)
	animation.SkinningMatrices(a.pose, a.Armature, a.skin)
}

// Current returns the playing animation, or nil.
func (a *Animator) Current() *animation.Animation {
	if a.state == nil {
		return nil
	}
	return a.state.Animation
}

// Time returns the playback position in ticks.
func (a *Animator) Time() float32 {
	if a.state == nil {
		return 0
	}
	return a.state.Time
}

// Pose returns the model-space bone matrices from the last sample.
func (a *Animator) Pose() []rl.Matrix {
	return a.pose
}

// Skin returns the skinning palette from the last sample.
func (a *Animator) Skin() []rl.Matrix {
	return a.skin
}

// BoneWorldMatrix returns the named bone's transform in world space.
func (a *Animator) BoneWorldMatrix(name string) (rl.Matrix, bool) {
	i := a.Armature.BoneIndex(name)
	if i < 0 {
		return rl.MatrixIdentity(), false
	}
	m := a.pose[i]
	if g := a.GetGameObject(); g != nil {
		m = vmath.Then(m, g.WorldMatrix())
	}
	return m, true
}

// DrawSkeleton draws a line from every bone to its parent.
func (a *Animator) DrawSkeleton(color rl.Color) {
	world := rl.MatrixIdentity()
	if g := a.GetGameObject(); g != nil {
		world = g.WorldMatrix()
	}
	for i := 1; i < len(a.pose); i++ {
		parent := a.Armature.Bones[i].ParentID
		if parent == 0 {
			continue
		}
		from := rl.Vector3Transform(vmath.Translation(a.pose[parent]), world)
		to := rl.Vector3Transform(vmath.Translation(a.pose[i]), world)
		rl.DrawLine3D(from, to, color)
	}
}
