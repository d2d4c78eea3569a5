package animation

import (
	"testing"

	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, chain().Validate())

	assert.Error(t, (&Armature{}).Validate())

	bad := chain()
	bad.Bones[0].ParentID = 1
	assert.Error(t, bad.Validate())

	bad = chain()
	bad.Bones[2].ParentID = 2
	assert.ErrorContains(t, bad.Validate(), "lower")

	bad = chain()
	bad.Bones[2].ID = 7
	assert.Error(t, bad.Validate())
}

func TestNewArmatureBreadthFirst(t *testing.T) {
	src := []SourceBone{
		{Name: "hips", Parent: -1, Bind: rl.MatrixTranslate(0, 1, 0)},
		{Name: "hand", Parent: 2, Bind: rl.MatrixTranslate(0, 0.5, 0)},
		{Name: "arm", Parent: 0, Bind: rl.MatrixTranslate(0.3, 0.6, 0)},
		{Name: "head", Parent: 0, Bind: rl.MatrixTranslate(0, 0.7, 0)},
	}

	arm, remap, err := NewArmatureBreadthFirst(src)
	require.NoError(t, err)
	require.NoError(t, arm.Validate())

	assert.Equal(t, []int{1, 4, 2, 3}, remap)
	assert.Len(t, arm.Bones, 5)
	assert.Equal(t, RootName, arm.Bones[0].Name)
	assert.Equal(t, "hand", arm.Bones[4].Name)
	assert.Equal(t, 2, arm.Bones[4].ParentID)
	assert.Equal(t, 4, arm.BoneIndex("hand"))
	assert.Equal(t, -1, arm.BoneIndex("tail"))

	// Inverse bind undoes the accumulated rest pose.
	bind := make([]rl.Matrix, len(arm.Bones))
	arm.BindPose(bind)
	for i := range bind {
		assert.InDeltaSlice(t, matrixElems(rl.MatrixIdentity()), matrixElems(vmath.Then(arm.Bones[i].InverseBind, bind[i])), 1e-5, "bone %d", i)
	}
	tip := vmath.Translation(bind[4])
	assert.InDelta(t, 0.3, tip.X, 1e-5)
	assert.InDelta(t, 2.1, tip.Y, 1e-5)
}

func TestNewArmatureBreadthFirstRejectsBadParents(t *testing.T) {
	_, _, err := NewArmatureBreadthFirst([]SourceBone{{Name: "a", Parent: 3}})
	assert.Error(t, err)

	_, _, err = NewArmatureBreadthFirst([]SourceBone{{Name: "self", Parent: 0}})
	assert.Error(t, err)

	_, _, err = NewArmatureBreadthFirst([]SourceBone{
		{Name: "root", Parent: -1},
		{Name: "a", Parent: 2},
		{Name: "b", Parent: 1},
	})
	assert.ErrorContains(t, err, "cycle")
}

func TestSkinningMatricesAtRest(t *testing.T) {
	arm, _, err := NewArmatureBreadthFirst([]SourceBone{
		{Name: "spine", Parent: -1, Bind: rl.MatrixTranslate(0, 1, 0)},
		{Name: "neck", Parent: 0, Bind: vmath.ComposeTRS(rl.Vector3{Y: 1}, rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, 0.5), one)},
	})
	require.NoError(t, err)

	pose := make([]rl.Matrix, len(arm.Bones))
	arm.BindPose(pose)
	skin := make([]rl.Matrix, len(arm.Bones))
	SkinningMatrices(pose, arm, skin)

	for i := range skin {
		assert.InDeltaSlice(t, matrixElems(rl.MatrixIdentity()), matrixElems(skin[i]), 1e-5, "bone %d", i)
	}

	assert.Panics(t, func() { SkinningMatrices(pose[:1], arm, skin) })
}

func TestRemapChannels(t *testing.T) {
	arm, remap, err := NewArmatureBreadthFirst([]SourceBone{
		{Name: "child", Parent: 1, Bind: rl.MatrixTranslate(0, 2, 0)},
		{Name: "parent", Parent: -1, Bind: rl.MatrixTranslate(1, 0, 0)},
	})
	require.NoError(t, err)

	moving := ConstantChannel(rl.Vector3{Z: 4}, rl.QuaternionIdentity(), one)
	channels := RemapChannels([]Channel{moving}, remap, arm)

	require.Len(t, channels, 3)
	require.NoError(t, (&Animation{Channels: channels}).Validate(3))
	assert.Equal(t, moving, channels[remap[0]])

	pos, _, _ := channels[remap[1]].Pose(0)
	assert.Equal(t, rl.Vector3{X: 1}, pos, "undriven bones keep their bind pose")
}

func matrixElems(m rl.Matrix) []float32 {
	e := vmath.Elements(m)
	return e[:]
}
