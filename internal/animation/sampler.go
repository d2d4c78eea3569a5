package animation

import (
	"fmt"
	"sort"

	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SampleAnimation returns the world transform of every bone at the state's current
// time. boneCount must match both the armature and the animation.
func SampleAnimation(state *State, boneCount int) []rl.Matrix {
	out := make([]rl.Matrix, boneCount)
	SampleAnimationInto(state, out)
	return out
}

// SampleAnimationInto is SampleAnimation writing into a caller-owned buffer, one
// matrix per bone. It panics when the armature, the animation and out disagree on the
// bone count, or when a channel lacks keys.
func SampleAnimationInto(state *State, out []rl.Matrix) {
	arm, anim := state.Armature, state.Animation
	if arm == nil || anim == nil {
		panic("animation: state has no armature or animation")
	}
	if len(arm.Bones) != len(out) {
		panic(fmt.Sprintf("animation: armature has %d bones, asked for %d", len(arm.Bones), len(out)))
	}
	if err := anim.Validate(len(out)); err != nil {
		panic("animation: " + err.Error())
	}

	ticks := state.Time
	for i := range out {
		local := anim.Channels[i].Local(ticks)
		if i == 0 {
			out[0] = local
			continue
		}
		parent := arm.Bones[i].ParentID
		if parent < 0 || parent >= i {
			panic(fmt.Sprintf("animation: bone %d has parent %d, armature is not breadth-first", i, parent))
		}
		out[i] = vmath.Then(local, out[parent])
	}
}

// sampleKeys interpolates between the keys bracketing ticks.
func sampleKeys[T keyValue](keys []Key[T], ticks float32, interp func(a, b T, t float32) T) T {
	prev, next, f := bracket(keys, ticks)
	if prev == next {
		return keys[prev].Value
	}
	return interp(keys[prev].Value, keys[next].Value, f)
}

// bracket finds the first key at or after ticks and the key before it. Past the last
// key both indices are the last key.
func bracket[T keyValue](keys []Key[T], ticks float32) (prev, next int, f float32) {
	if len(keys) == 1 {
		return 0, 0, 0
	}
	next = sort.Search(len(keys), func(i int) bool { return keys[i].Time >= ticks })
	if next == len(keys) {
		return next - 1, next - 1, 0
	}
	if next == 0 {
		return 0, 0, 0
	}
	prev = next - 1
	span := keys[next].Time - keys[prev].Time
	if span <= 0 {
		return prev, next, 0
	}
	return prev, next, (ticks - keys[prev].Time) / span
}
