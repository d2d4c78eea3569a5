package bake

import (
	"fmt"

	"gamecore/internal/animation"
	"gamecore/internal/physics"
	"gamecore/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type (
	Vec3 [3]float32
	Quat [4]float32
	// Mat4 is column-major.
	Mat4 [16]float32
)

func vec3(v rl.Vector3) Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

func (v Vec3) Vector3() rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func quat(q rl.Quaternion) Quat {
	return Quat{q.X, q.Y, q.Z, q.W}
}

func (q Quat) Quaternion() rl.Quaternion {
	return rl.Quaternion{X: q[0], Y: q[1], Z: q[2], W: q[3]}
}

type BakedEdge struct {
	A     int    `msgpack:"a"`
	B     int    `msgpack:"b"`
	Faces [2]int `msgpack:"faces"`
}

type BakedFace struct {
	Normal    Vec3     `msgpack:"normal"`
	Distance  float32  `msgpack:"distance"`
	Edges     []int    `msgpack:"edges"`
	Triangles [][3]int `msgpack:"triangles"`
}

type BakedPolyhedron struct {
	Name     string      `msgpack:"name"`
	Vertices []Vec3      `msgpack:"vertices"`
	Edges    []BakedEdge `msgpack:"edges"`
	Faces    []BakedFace `msgpack:"faces"`
}

func FromPolyhedron(name string, p *physics.Polyhedron) BakedPolyhedron {
	bp := BakedPolyhedron{
		Name:     name,
		Vertices: make([]Vec3, len(p.Vertices)),
		Edges:    make([]BakedEdge, len(p.Edges)),
		Faces:    make([]BakedFace, len(p.Faces)),
	}
	for i, v := range p.Vertices {
		bp.Vertices[i] = vec3(v)
	}
	for i, e := range p.Edges {
		bp.Edges[i] = BakedEdge{A: e.A, B: e.B, Faces: e.Faces}
	}
	for i, f := range p.Faces {
		bp.Faces[i] = BakedFace{
			Normal:    vec3(f.Plane.Normal),
			Distance:  f.Plane.Distance,
			Edges:     f.Edges,
			Triangles: f.Triangles,
		}
	}
	return bp
}

// Polyhedron rebuilds the polyhedron. Indices are checked so a corrupt file cannot
// produce out-of-range lookups later; an edge face of -1 marks an open boundary.
func (bp BakedPolyhedron) Polyhedron() (*physics.Polyhedron, error) {
	p := &physics.Polyhedron{
		Vertices: make([]rl.Vector3, len(bp.Vertices)),
		Edges:    make([]physics.Edge, len(bp.Edges)),
		Faces:    make([]physics.Face, len(bp.Faces)),
	}
	for i, v := range bp.Vertices {
		p.Vertices[i] = v.Vector3()
	}
	for i, e := range bp.Edges {
		if !inRange(e.A, len(p.Vertices)) || !inRange(e.B, len(p.Vertices)) {
			return nil, fmt.Errorf("polyhedron %q: edge %d references a missing vertex", bp.Name, i)
		}
		for _, f := range e.Faces {
			if f != -1 && !inRange(f, len(bp.Faces)) {
				return nil, fmt.Errorf("polyhedron %q: edge %d references missing face %d", bp.Name, i, f)
			}
		}
		p.Edges[i] = physics.Edge{A: e.A, B: e.B, Faces: e.Faces}
	}
	for i, f := range bp.Faces {
		for _, e := range f.Edges {
			if !inRange(e, len(p.Edges)) {
				return nil, fmt.Errorf("polyhedron %q: face %d references missing edge %d", bp.Name, i, e)
			}
		}
		for _, t := range f.Triangles {
			for _, v := range t {
				if !inRange(v, len(p.Vertices)) {
					return nil, fmt.Errorf("polyhedron %q: face %d references missing vertex %d", bp.Name, i, v)
				}
			}
		}
		p.Faces[i] = physics.Face{
			Plane:     physics.Plane{Normal: f.Normal.Vector3(), Distance: f.Distance},
			Edges:     f.Edges,
			Triangles: f.Triangles,
		}
	}
	return p, nil
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}

type BakedBone struct {
	Name   string `msgpack:"name"`
	Parent int    `msgpack:"parent"`
	Bind   Mat4   `msgpack:"bind"`
}

// BakedArmature keeps bones in armature order, sentinel included. Inverse binds are
// recomputed on load.
type BakedArmature struct {
	Bones []BakedBone `msgpack:"bones"`
}

func FromArmature(a *animation.Armature) *BakedArmature {
	ba := &BakedArmature{Bones: make([]BakedBone, len(a.Bones))}
	for i, b := range a.Bones {
		ba.Bones[i] = BakedBone{Name: b.Name, Parent: b.ParentID, Bind: vmath.Elements(b.Bind)}
	}
	return ba
}

func (ba *BakedArmature) Armature() (*animation.Armature, error) {
	a := &animation.Armature{Bones: make([]animation.Bone, len(ba.Bones))}
	for i, b := range ba.Bones {
		a.Bones[i] = animation.Bone{ID: i, ParentID: b.Parent, Name: b.Name, Bind: vmath.FromElements(b.Bind)}
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	a.ComputeInverseBind()
	return a, nil
}

type BakedVectorKey struct {
	Time  float32 `msgpack:"t"`
	Value Vec3    `msgpack:"v"`
}

type BakedQuaternionKey struct {
	Time  float32 `msgpack:"t"`
	Value Quat    `msgpack:"v"`
}

type BakedChannel struct {
	Positions []BakedVectorKey     `msgpack:"positions"`
	Rotations []BakedQuaternionKey `msgpack:"rotations"`
	Scales    []BakedVectorKey     `msgpack:"scales"`
}

type BakedAnimation struct {
	Name           string         `msgpack:"name"`
	Duration       float32        `msgpack:"duration"`
	TicksPerSecond float32        `msgpack:"ticksPerSecond"`
	Channels       []BakedChannel `msgpack:"channels"`
}

func FromAnimation(a *animation.Animation) BakedAnimation {
	ba := BakedAnimation{
		Name:           a.Name,
		Duration:       a.Duration,
		TicksPerSecond: a.TicksPerSecond,
		Channels:       make([]BakedChannel, len(a.Channels)),
	}
	for i, ch := range a.Channels {
		bc := &ba.Channels[i]
		for _, k := range ch.Positions {
			bc.Positions = append(bc.Positions, BakedVectorKey{Time: k.Time, Value: vec3(k.Value)})
		}
		for _, k := range ch.Rotations {
			bc.Rotations = append(bc.Rotations, BakedQuaternionKey{Time: k.Time, Value: quat(k.Value)})
		}
		for _, k := range ch.Scales {
			bc.Scales = append(bc.Scales, BakedVectorKey{Time: k.Time, Value: vec3(k.Value)})
		}
	}
	return ba
}

func (ba BakedAnimation) Animation() *animation.Animation {
	a := &animation.Animation{
		Name:           ba.Name,
		Duration:       ba.Duration,
		TicksPerSecond: ba.TicksPerSecond,
		Channels:       make([]animation.Channel, len(ba.Channels)),
	}
	for i, bc := range ba.Channels {
		ch := &a.Channels[i]
		ch.Positions = make([]animation.VectorKey, len(bc.Positions))
		for j, k := range bc.Positions {
			ch.Positions[j] = animation.VectorKey{Time: k.Time, Value: k.Value.Vector3()}
		}
		ch.Rotations = make([]animation.QuaternionKey, len(bc.Rotations))
		for j, k := range bc.Rotations {
			ch.Rotations[j] = animation.QuaternionKey{Time: k.Time, Value: k.Value.Quaternion()}
		}
		ch.Scales = make([]animation.VectorKey, len(bc.Scales))
		for j, k := range bc.Scales {
			ch.Scales[j] = animation.VectorKey{Time: k.Time, Value: k.Value.Vector3()}
		}
	}
	return a
}

// Contents is a bundle turned back into engine types.
type Contents struct {
	Polyhedra  map[string]*physics.Polyhedron
	Armature   *animation.Armature
	Animations map[string]*animation.Animation
}

// Unpack converts every part of b and checks the animations against the armature.
// Polyhedron and animation names must be unique within the bundle.
func (b Bundle) Unpack() (Contents, error) {
	c := Contents{
		Polyhedra:  make(map[string]*physics.Polyhedron, len(b.Polyhedra)),
		Animations: make(map[string]*animation.Animation, len(b.Animations)),
	}
	for _, bp := range b.Polyhedra {
		if _, dup := c.Polyhedra[bp.Name]; dup {
			return Contents{}, fmt.Errorf("duplicate polyhedron %q", bp.Name)
		}
		p, err := bp.Polyhedron()
		if err != nil {
			return Contents{}, err
		}
		c.Polyhedra[bp.Name] = p
	}
	if b.Armature != nil {
		arm, err := b.Armature.Armature()
		if err != nil {
			return Contents{}, fmt.Errorf("armature: %w", err)
		}
		c.Armature = arm
	}
	for _, ba := range b.Animations {
		if _, dup := c.Animations[ba.Name]; dup {
			return Contents{}, fmt.Errorf("duplicate animation %q", ba.Name)
		}
		a := ba.Animation()
		if c.Armature != nil {
			if err := a.Validate(len(c.Armature.Bones)); err != nil {
				return Contents{}, err
			}
		}
		c.Animations[a.Name] = a
	}
	return c, nil
}
