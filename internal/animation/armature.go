package animation

import (
	"fmt"

	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RootName is the name given to the sentinel bone inserted at index 0.
const RootName = "__root"

// Bone is one joint of an armature. Bind is the rest transform relative to the parent;
// InverseBind maps mesh space into the bone's space for skinning.
type Bone struct {
	ID          int
	ParentID    int
	Name        string
	Bind        rl.Matrix
	InverseBind rl.Matrix
}

// Armature is a bone tree flattened breadth-first: bone 0 is a root sentinel and
// every other bone comes after its parent.
type Armature struct {
	Bones []Bone
}

// Validate checks the ordering that single-pass composition relies on.
func (a *Armature) Validate() error {
	if len(a.Bones) == 0 {
		return fmt.Errorf("armature has no bones")
	}
	if a.Bones[0].ID != 0 || a.Bones[0].ParentID != 0 {
		return fmt.Errorf("bone 0 must be the root sentinel, got id %d parent %d", a.Bones[0].ID, a.Bones[0].ParentID)
	}
	for i := 1; i < len(a.Bones); i++ {
		b := &a.Bones[i]
		if b.ID != i {
			return fmt.Errorf("bone %d (%q) has id %d", i, b.Name, b.ID)
		}
		if b.ParentID < 0 || b.ParentID >= b.ID {
			return fmt.Errorf("bone %d (%q) has parent %d, want 0 <= parent < %d", i, b.Name, b.ParentID, b.ID)
		}
	}
	return nil
}

func (a *Armature) mustValidate() {
	if err := a.Validate(); err != nil {
		panic("animation: " + err.Error())
	}
}

// BoneIndex returns the ID of the bone called name, or -1.
func (a *Armature) BoneIndex(name string) int {
	for i := range a.Bones {
		if a.Bones[i].Name == name {
			return i
		}
	}
	return -1
}

// BindPose writes the world-space rest transform of every bone into out.
func (a *Armature) BindPose(out []rl.Matrix) {
	a.mustValidate()
	if len(out) != len(a.Bones) {
		panic(fmt.Sprintf("animation: bind pose buffer holds %d matrices, armature has %d bones", len(out), len(a.Bones)))
	}
	out[0] = a.Bones[0].Bind
	for i := 1; i < len(a.Bones); i++ {
		out[i] = vmath.Then(a.Bones[i].Bind, out[a.Bones[i].ParentID])
	}
}

// ComputeInverseBind sets every InverseBind from the bind pose.
func (a *Armature) ComputeInverseBind() {
	world := make([]rl.Matrix, len(a.Bones))
	a.BindPose(world)
	for i := range a.Bones {
		a.Bones[i].InverseBind = rl.MatrixInvert(world[i])
	}
}

// SourceBone is a bone as an importer sees it: Parent indexes the source slice and is
// negative for roots.
type SourceBone struct {
	Name   string
	Parent int
	Bind   rl.Matrix
}

// NewArmatureBreadthFirst orders bones breadth-first behind a root sentinel and
// computes inverse bind matrices. The returned slice maps each source index to its
// bone ID.
func NewArmatureBreadthFirst(bones []SourceBone) (*Armature, []int, error) {
	children := make([][]int, len(bones))
	var roots []int
	for i, b := range bones {
		switch {
		case b.Parent < 0:
			roots = append(roots, i)
		case b.Parent >= len(bones) || b.Parent == i:
			return nil, nil, fmt.Errorf("bone %d (%q): invalid parent %d", i, b.Name, b.Parent)
		default:
			children[b.Parent] = append(children[b.Parent], i)
		}
	}

	arm := &Armature{Bones: make([]Bone, 1, len(bones)+1)}
	arm.Bones[0] = Bone{Name: RootName, Bind: rl.MatrixIdentity(), InverseBind: rl.MatrixIdentity()}

	remap := make([]int, len(bones))
	for i := range remap {
		remap[i] = -1
	}

	type queued struct{ src, parent int }
	queue := make([]queued, 0, len(bones))
	for _, r := range roots {
		queue = append(queue, queued{src: r, parent: 0})
	}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]

		id := len(arm.Bones)
		remap[q.src] = id
		arm.Bones = append(arm.Bones, Bone{
			ID:       id,
			ParentID: q.parent,
			Name:     bones[q.src].Name,
			Bind:     bones[q.src].Bind,
		})
		for _, c := range children[q.src] {
			queue = append(queue, queued{src: c, parent: id})
		}
	}

	for i, id := range remap {
		if id < 0 {
			return nil, nil, fmt.Errorf("bone %d (%q) is part of a parent cycle", i, bones[i].Name)
		}
	}

	arm.ComputeInverseBind()
	return arm, remap, nil
}
