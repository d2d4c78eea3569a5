package assets

import (
	"fmt"
	"unsafe"

	"gamecore/internal/animation"
	"gamecore/internal/logging"
	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// cString reads a NUL-terminated fixed-size name.
func cString[T int8 | uint8](name [32]T) string {
	b := make([]byte, 0, len(name))
	for _, c := range name {
		if c == 0 {
			break
		}
		b = append(b, byte(c))
	}
	return string(b)
}

// ModelSkeleton returns the bones and bind pose of model, nil when it has none.
func ModelSkeleton(model rl.Model) ([]rl.BoneInfo, []rl.Transform) {
	if model.BoneCount <= 0 || model.Bones == nil || model.BindPose == nil {
		return nil, nil
	}
	return unsafe.Slice(model.Bones, model.BoneCount), unsafe.Slice(model.BindPose, model.BoneCount)
}

// AnimationFrames returns the name, bones and per-frame poses of a raylib animation.
func AnimationFrames(anim rl.ModelAnimation) (string, []rl.BoneInfo, [][]rl.Transform) {
	if anim.BoneCount <= 0 || anim.Bones == nil {
		return cString(anim.Name), nil, nil
	}
	bones := unsafe.Slice(anim.Bones, anim.BoneCount)
	var frames [][]rl.Transform
	if anim.FrameCount > 0 && anim.FramePoses != nil {
		poses := unsafe.Slice(anim.FramePoses, anim.FrameCount)
		frames = make([][]rl.Transform, len(poses))
		for i, p := range poses {
			frames[i] = unsafe.Slice(p, anim.BoneCount)
		}
	}
	return cString(anim.Name), bones, frames
}

// localPoses turns model-space bone transforms into parent-relative matrices.
func localPoses(bones []rl.BoneInfo, global []rl.Transform) ([]rl.Matrix, error) {
	if len(bones) != len(global) {
		return nil, fmt.Errorf("%d bones but %d transforms", len(bones), len(global))
	}
	world := make([]rl.Matrix, len(global))
	for i, t := range global {
		world[i] = vmath.ComposeTRS(t.Translation, t.Rotation, t.Scale)
	}
	local := make([]rl.Matrix, len(bones))
	for i, b := range bones {
		p := int(b.Parent)
		switch {
		case p < 0:
			local[i] = world[i]
		case p >= len(bones) || p == i:
			return nil, fmt.Errorf("bone %d (%q) has invalid parent %d", i, cString(b.Name), p)
		default:
			local[i] = vmath.Then(world[i], rl.MatrixInvert(world[p]))
		}
	}
	return local, nil
}

// ArmatureFromBindPose builds an armature from raylib's bone list and model-space
// bind pose. remap maps each raylib bone index to its armature bone ID.
func ArmatureFromBindPose(bones []rl.BoneInfo, bind []rl.Transform) (*animation.Armature, []int, error) {
	if len(bones) == 0 {
		return nil, nil, ErrNoSkeleton
	}
	local, err := localPoses(bones, bind)
	if err != nil {
		return nil, nil, err
	}
	src := make([]animation.SourceBone, len(bones))
	for i, b := range bones {
		src[i] = animation.SourceBone{Name: cString(b.Name), Parent: int(b.Parent), Bind: local[i]}
	}
	return animation.NewArmatureBreadthFirst(src)
}

// AnimationFromFrames converts baked frame poses into keyframes, one key per frame
// per bone, at one tick per frame.
func AnimationFromFrames(name string, bones []rl.BoneInfo, frames [][]rl.Transform, remap []int, arm *animation.Armature, ticksPerSecond float32) (*animation.Animation, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("animation %q has no frames", name)
	}
	if len(bones) != len(remap) {
		return nil, fmt.Errorf("animation %q has %d bones, skeleton has %d", name, len(bones), len(remap))
	}

	channels := make([]animation.Channel, len(bones))
	for f, pose := range frames {
		local, err := localPoses(bones, pose)
		if err != nil {
			return nil, fmt.Errorf("animation %q frame %d: %w", name, f, err)
		}
		tick := float32(f)
		for i := range bones {
			t, r, s := vmath.DecomposeTRS(local[i])
			ch := &channels[i]
			if n := len(ch.Rotations); n > 0 && vmath.QuaternionDot(ch.Rotations[n-1].Value, r) < 0 {
				// Keep neighbouring keys in the same hemisphere.
				r = rl.Quaternion{X: -r.X, Y: -r.Y, Z: -r.Z, W: -r.W}
			}
			ch.Positions = append(ch.Positions, animation.VectorKey{Time: tick, Value: t})
			ch.Rotations = append(ch.Rotations, animation.QuaternionKey{Time: tick, Value: r})
			ch.Scales = append(ch.Scales, animation.VectorKey{Time: tick, Value: s})
		}
	}

	anim := &animation.Animation{
		Name:           name,
		Duration:       float32(len(frames)),
		TicksPerSecond: ticksPerSecond,
		Channels:       animation.RemapChannels(channels, remap, arm),
	}
	if err := anim.Validate(len(arm.Bones)); err != nil {
		return nil, err
	}
	return anim, nil
}

// LoadSkeleton loads the model at path and builds its armature.
func LoadSkeleton(path string) (*animation.Armature, []int, error) {
	arm, remap, err := ArmatureFromBindPose(ModelSkeleton(LoadModel(path)))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return arm, remap, nil
}

// LoadAnimations converts every animation stored in path for the given skeleton.
// Animations that do not fit the skeleton are skipped with a warning. Unnamed or
// repeated names get the animation's index so every result is unique.
func LoadAnimations(path string, arm *animation.Armature, remap []int, ticksPerSecond float32) []*animation.Animation {
	log := logging.For("assets")
	var out []*animation.Animation
	seen := make(map[string]bool)
	for i, raw := range LoadModelAnimations(path) {
		name, bones, frames := AnimationFrames(raw)
		switch {
		case name == "":
			name = fmt.Sprintf("anim%d", i)
		case seen[name]:
			name = fmt.Sprintf("%s.%d", name, i)
		}
		seen[name] = true
		anim, err := AnimationFromFrames(name, bones, frames, remap, arm, ticksPerSecond)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Skipping animation")
			continue
		}
		out = append(out, anim)
	}
	return out
}
