package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum is the six inward-facing planes of a view volume: left, right, bottom,
// top, near and far.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum extracts the planes from a combined view-projection matrix (view
// applied first) using the Gribb/Hartmann method.
func NewFrustum(vp rl.Matrix) Frustum {
	row1 := [4]float32{vp.M0, vp.M4, vp.M8, vp.M12}
	row2 := [4]float32{vp.M1, vp.M5, vp.M9, vp.M13}
	row3 := [4]float32{vp.M2, vp.M6, vp.M10, vp.M14}
	row4 := [4]float32{vp.M3, vp.M7, vp.M11, vp.M15}

	var f Frustum
	f.Planes[0] = framePlane(row4, row1, 1)
	f.Planes[1] = framePlane(row4, row1, -1)
	f.Planes[2] = framePlane(row4, row2, 1)
	f.Planes[3] = framePlane(row4, row2, -1)
	f.Planes[4] = framePlane(row4, row3, 1)
	f.Planes[5] = framePlane(row4, row3, -1)
	return f
}

// framePlane builds row4 + sign*row as a normalized Plane.
func framePlane(row4, row [4]float32, sign float32) Plane {
	n := rl.Vector3{
		X: row4[0] + sign*row[0],
		Y: row4[1] + sign*row[1],
		Z: row4[2] + sign*row[2],
	}
	d := row4[3] + sign*row[3]

	length := rl.Vector3Length(n)
	if length == 0 {
		return Plane{Normal: n, Distance: -d}
	}
	return Plane{Normal: rl.Vector3Scale(n, 1/length), Distance: -d / length}
}

// CameraFrustum builds the frustum of a raylib camera for a viewport aspect ratio.
func CameraFrustum(camera rl.Camera3D, aspect, near, far float32) Frustum {
	view := rl.GetCameraMatrix(camera)
	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, near, far)
	} else {
		halfH := camera.Fovy / 2
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, near, far)
	}
	return NewFrustum(rl.MatrixMultiply(view, proj))
}

// ContainsSphere reports whether a sphere is inside or touching the frustum.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}

// IntersectsAABB is conservative: a box near a frustum corner may pass while
// being outside.
func (f *Frustum) IntersectsAABB(box AABB) bool {
	for i := range f.Planes {
		p := &f.Planes[i]
		// Corner furthest along the plane normal.
		far := box.Min
		if p.Normal.X > 0 {
			far.X = box.Max.X
		}
		if p.Normal.Y > 0 {
			far.Y = box.Max.Y
		}
		if p.Normal.Z > 0 {
			far.Z = box.Max.Z
		}
		if p.SignedDistance(far) < 0 {
			return false
		}
	}
	return true
}
