package animation

import (
	"fmt"

	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultTicksPerSecond is used when an animation does not say how fast it plays.
const DefaultTicksPerSecond = 30

type keyValue interface {
	rl.Vector3 | rl.Quaternion
}

// Key is a value at a point in time, measured in ticks.
type Key[T keyValue] struct {
	Time  float32
	Value T
}

type (
	VectorKey     = Key[rl.Vector3]
	QuaternionKey = Key[rl.Quaternion]
)

// Channel animates one bone. Each component keeps its own sorted key list.
type Channel struct {
	Positions []VectorKey
	Rotations []QuaternionKey
	Scales    []VectorKey
}

// ConstantChannel holds a single pose for the whole animation.
func ConstantChannel(position rl.Vector3, rotation rl.Quaternion, scale rl.Vector3) Channel {
	return Channel{
		Positions: []VectorKey{{Value: position}},
		Rotations: []QuaternionKey{{Value: rotation}},
		Scales:    []VectorKey{{Value: scale}},
	}
}

// BindChannel holds a bone still in its bind pose.
func BindChannel(bind rl.Matrix) Channel {
	return ConstantChannel(vmath.DecomposeTRS(bind))
}

// Pose interpolates the channel at ticks. Before the first key the first key is used,
// after the last key the last one.
func (c *Channel) Pose(ticks float32) (rl.Vector3, rl.Quaternion, rl.Vector3) {
	pos := sampleKeys(c.Positions, ticks, rl.Vector3Lerp)
	rot := sampleKeys(c.Rotations, ticks, vmath.Slerp)
	scale := sampleKeys(c.Scales, ticks, rl.Vector3Lerp)
	return pos, rot, scale
}

// Local returns the bone-to-parent matrix at ticks.
func (c *Channel) Local(ticks float32) rl.Matrix {
	return vmath.ComposeTRS(c.Pose(ticks))
}

func (c *Channel) complete() bool {
	return len(c.Positions) > 0 && len(c.Rotations) > 0 && len(c.Scales) > 0
}

// Animation is a keyframed clip with one channel per bone; channel i drives bone i.
type Animation struct {
	Name           string
	Duration       float32
	TicksPerSecond float32
	Channels       []Channel
}

// Validate reports whether the animation can be sampled against boneCount bones.
func (a *Animation) Validate(boneCount int) error {
	if len(a.Channels) != boneCount {
		return fmt.Errorf("animation %q has %d channels, armature has %d bones", a.Name, len(a.Channels), boneCount)
	}
	for i := range a.Channels {
		if !a.Channels[i].complete() {
			return fmt.Errorf("animation %q: bone %d is missing position, rotation or scale keys", a.Name, i)
		}
	}
	return nil
}

// Seconds returns the clip length in seconds.
func (a *Animation) Seconds() float32 {
	return a.Duration / a.ticksPerSecond()
}

func (a *Animation) ticksPerSecond() float32 {
	if a.TicksPerSecond > 0 {
		return a.TicksPerSecond
	}
	return DefaultTicksPerSecond
}

// RemapChannels reorders channels indexed by source bone into bone-ID order. Bones
// that no source channel drives, the root sentinel included, hold their bind pose.
func RemapChannels(channels []Channel, remap []int, arm *Armature) []Channel {
	out := make([]Channel, len(arm.Bones))
	filled := make([]bool, len(arm.Bones))
	for src, ch := range channels {
		if src >= len(remap) || remap[src] < 0 {
			continue
		}
		out[remap[src]] = ch
		filled[remap[src]] = true
	}
	for i := range out {
		if !filled[i] {
			out[i] = BindChannel(arm.Bones[i].Bind)
		}
	}
	return out
}
