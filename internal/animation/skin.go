package animation

import (
	"fmt"

	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SkinningMatrices combines sampled bone transforms with the inverse bind pose, giving
// the matrices that move mesh-space vertices into their animated position.
func SkinningMatrices(world []rl.Matrix, arm *Armature, out []rl.Matrix) {
	if len(world) != len(arm.Bones) || len(out) != len(arm.Bones) {
		panic(fmt.Sprintf("animation: skinning %d bones with %d poses into %d slots", len(arm.Bones), len(world), len(out)))
	}
	for i := range out {
		out[i] = vmath.Then(arm.Bones[i].InverseBind, world[i])
	}
}
