package bake

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"gamecore/internal/animation"
	"gamecore/internal/physics"
	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func testRig(t *testing.T) (*animation.Armature, *animation.Animation) {
	t.Helper()
	arm, remap, err := animation.NewArmatureBreadthFirst([]animation.SourceBone{
		{Name: "spine", Parent: -1, Bind: rl.MatrixTranslate(0, 1, 0)},
		{Name: "head", Parent: 0, Bind: rl.MatrixTranslate(0, 0.8, 0)},
	})
	require.NoError(t, err)

	one := rl.Vector3{X: 1, Y: 1, Z: 1}
	nod := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, 0.4)
	channels := []animation.Channel{
		animation.ConstantChannel(rl.Vector3{Y: 1}, rl.QuaternionIdentity(), one),
		{
			Positions: []animation.VectorKey{{Value: rl.Vector3{Y: 0.8}}},
			Rotations: []animation.QuaternionKey{{Time: 0, Value: rl.QuaternionIdentity()}, {Time: 12, Value: nod}},
			Scales:    []animation.VectorKey{{Value: one}},
		},
	}
	return arm, &animation.Animation{
		Name:           "nod",
		Duration:       12,
		TicksPerSecond: 24,
		Channels:       animation.RemapChannels(channels, remap, arm),
	}
}

func testBundle(t *testing.T) Bundle {
	arm, anim := testRig(t)
	b := NewBundle("rig.glb")
	b.Polyhedra = append(b.Polyhedra, FromPolyhedron("crate", physics.BoxPolyhedron(rl.Vector3{X: 1, Y: 2, Z: 3})))
	b.Armature = FromArmature(arm)
	b.Animations = append(b.Animations, FromAnimation(anim))
	return b
}

func TestBundleSurvivesEncoding(t *testing.T) {
	arm, anim := testRig(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testBundle(t)))
	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "rig.glb", decoded.Source)

	c, err := decoded.Unpack()
	require.NoError(t, err)

	box := c.Polyhedra["crate"]
	require.NotNil(t, box)
	want := physics.BoxPolyhedron(rl.Vector3{X: 1, Y: 2, Z: 3})
	assert.Equal(t, want.Vertices, box.Vertices)
	assert.Equal(t, want.Edges, box.Edges)
	assert.Equal(t, want.Faces, box.Faces)

	require.NotNil(t, c.Armature)
	require.Len(t, c.Armature.Bones, len(arm.Bones))
	for i := range arm.Bones {
		assert.Equal(t, arm.Bones[i].Name, c.Armature.Bones[i].Name)
		assert.Equal(t, arm.Bones[i].ParentID, c.Armature.Bones[i].ParentID)
		assert.InDeltaSlice(t, matrixElems(arm.Bones[i].InverseBind), matrixElems(c.Armature.Bones[i].InverseBind), 1e-6)
	}

	// Sampling the decoded clip gives the same pose as the original.
	got := c.Animations["nod"]
	require.NotNil(t, got)
	for _, ticks := range []float32{0, 5, 12} {
		a := animation.NewState(arm, anim, false)
		a.Time = ticks
		b := animation.NewState(c.Armature, got, false)
		b.Time = ticks
		wantPose := animation.SampleAnimation(a, len(arm.Bones))
		gotPose := animation.SampleAnimation(b, len(arm.Bones))
		for i := range wantPose {
			assert.InDeltaSlice(t, matrixElems(wantPose[i]), matrixElems(gotPose[i]), 1e-6, "ticks %v bone %d", ticks, i)
		}
	}
}

func TestDecodeRejectsOtherVersions(t *testing.T) {
	b := testBundle(t)
	b.Version = Version + 1

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, b))
	_, err := Decode(&buf)
	assert.True(t, errors.Is(err, ErrVersion))

	_, err = Decode(bytes.NewReader([]byte{0xc1}))
	assert.Error(t, err)
}

func TestUnpackRejectsCorruptData(t *testing.T) {
	b := testBundle(t)
	b.Polyhedra[0].Faces[0].Triangles[0][1] = 99
	_, err := b.Unpack()
	assert.ErrorContains(t, err, "missing vertex")

	b = testBundle(t)
	b.Polyhedra[0].Edges[0].B = -1
	_, err = b.Unpack()
	assert.Error(t, err)

	b = testBundle(t)
	b.Armature.Bones[2].Parent = 2
	_, err = b.Unpack()
	assert.ErrorContains(t, err, "armature")

	b = testBundle(t)
	b.Animations[0].Channels = b.Animations[0].Channels[:1]
	_, err = b.Unpack()
	assert.Error(t, err)
}

func TestUnpackChecksEdgeFaces(t *testing.T) {
	b := testBundle(t)
	b.Polyhedra[0].Edges[3].Faces[1] = len(b.Polyhedra[0].Faces)
	_, err := b.Unpack()
	assert.ErrorContains(t, err, "missing face")

	b = testBundle(t)
	b.Polyhedra[0].Edges[3].Faces[0] = -2
	_, err = b.Unpack()
	assert.ErrorContains(t, err, "missing face")

	b = testBundle(t)
	b.Polyhedra[0].Edges[3].Faces[1] = -1
	c, err := b.Unpack()
	require.NoError(t, err, "-1 is an open boundary, not a corrupt index")
	assert.Equal(t, -1, c.Polyhedra["crate"].Edges[3].Faces[1])
}

func TestUnpackRejectsDuplicateNames(t *testing.T) {
	b := testBundle(t)
	b.Polyhedra = append(b.Polyhedra, FromPolyhedron("crate", physics.BoxPolyhedron(rl.Vector3{X: 2, Y: 2, Z: 2})))
	_, err := b.Unpack()
	assert.ErrorContains(t, err, `duplicate polyhedron "crate"`)

	b = testBundle(t)
	b.Animations = append(b.Animations, b.Animations[0])
	_, err = b.Unpack()
	assert.ErrorContains(t, err, `duplicate animation "nod"`)
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "rig.bake")

	require.NoError(t, WriteFile(path, testBundle(t)))
	b, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, b.Polyhedra, 1)
	assert.Len(t, b.Animations, 1)

	// Overwriting keeps a single, complete file.
	empty := NewBundle("")
	require.NoError(t, WriteFile(path, empty))
	b, err = ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, b.Polyhedra)
	assert.Nil(t, b.Armature)

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.bake"))
	assert.Error(t, err)
}

func TestBundleFieldNames(t *testing.T) {
	raw, err := msgpack.Marshal(NewBundle("x"))
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, msgpack.Unmarshal(raw, &generic))
	assert.EqualValues(t, Version, generic["version"])
	assert.Equal(t, "x", generic["source"])
	assert.NotContains(t, generic, "armature")
}

func matrixElems(m rl.Matrix) []float32 {
	e := vmath.Elements(m)
	return e[:]
}
