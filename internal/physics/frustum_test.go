package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func lookDownNegZ() Frustum {
	view := rl.MatrixLookAt(rl.Vector3{}, rl.Vector3{Z: -1}, rl.Vector3{Y: 1})
	proj := rl.MatrixPerspective(90*rl.Deg2rad, 1, 0.1, 100)
	return NewFrustum(rl.MatrixMultiply(view, proj))
}

func TestFrustumContainsPoint(t *testing.T) {
	f := lookDownNegZ()

	tests := []struct {
		name  string
		point rl.Vector3
		want  bool
	}{
		{"ahead", rl.Vector3{Z: -10}, true},
		{"behind", rl.Vector3{Z: 10}, false},
		{"inside 90 degree cone", rl.Vector3{X: 4, Z: -5}, true},
		{"outside to the left", rl.Vector3{X: -6, Z: -5}, false},
		{"above", rl.Vector3{Y: 6, Z: -5}, false},
		{"past far plane", rl.Vector3{Z: -200}, false},
		{"before near plane", rl.Vector3{Z: -0.05}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ContainsPoint(tt.point); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestFrustumSphereAndBox(t *testing.T) {
	f := lookDownNegZ()

	// Center is behind the camera but the sphere reaches past the near plane.
	if !f.ContainsSphere(rl.Vector3{Z: 1}, 2) {
		t.Error("sphere reaching into view should be contained")
	}
	if f.ContainsSphere(rl.Vector3{Z: 5}, 1) {
		t.Error("sphere behind camera should be culled")
	}

	straddling := AABB{Min: rl.Vector3{X: -20, Y: -1, Z: -6}, Max: rl.Vector3{X: -4, Y: 1, Z: -4}}
	if !f.IntersectsAABB(straddling) {
		t.Error("box crossing the left plane should intersect")
	}
	behind := AABB{Min: rl.Vector3{X: -1, Y: -1, Z: 2}, Max: rl.Vector3{X: 1, Y: 1, Z: 4}}
	if f.IntersectsAABB(behind) {
		t.Error("box behind camera should not intersect")
	}
}
