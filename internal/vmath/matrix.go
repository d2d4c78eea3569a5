package vmath

import rl "github.com/gen2brain/raylib-go/raylib"

// ComposeTRS builds translation ∘ rotation ∘ scale as one affine matrix: a point is
// scaled, then rotated, then translated.
func ComposeTRS(translation rl.Vector3, rotation rl.Quaternion, scale rl.Vector3) rl.Matrix {
	m := rl.MatrixMultiply(rl.MatrixScale(scale.X, scale.Y, scale.Z), rl.QuaternionToMatrix(rotation))
	return rl.MatrixMultiply(m, rl.MatrixTranslate(translation.X, translation.Y, translation.Z))
}

// Then returns the matrix applying first and then second. In column-vector notation
// this is second·first; raylib's MatrixMultiply takes its operands in application
// order.
func Then(first, second rl.Matrix) rl.Matrix {
	return rl.MatrixMultiply(first, second)
}

// Elements flattens m in raylib's column-major storage order.
func Elements(m rl.Matrix) [16]float32 {
	return [16]float32{
		m.M0, m.M1, m.M2, m.M3,
		m.M4, m.M5, m.M6, m.M7,
		m.M8, m.M9, m.M10, m.M11,
		m.M12, m.M13, m.M14, m.M15,
	}
}

// FromElements is the inverse of Elements.
func FromElements(e [16]float32) rl.Matrix {
	return rl.Matrix{
		M0: e[0], M1: e[1], M2: e[2], M3: e[3],
		M4: e[4], M5: e[5], M6: e[6], M7: e[7],
		M8: e[8], M9: e[9], M10: e[10], M11: e[11],
		M12: e[12], M13: e[13], M14: e[14], M15: e[15],
	}
}

// Translation returns the translation column of an affine matrix.
func Translation(m rl.Matrix) rl.Vector3 {
	return rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}
}

// DecomposeTRS splits an affine matrix built by ComposeTRS back into its parts.
// Scale is the length of each basis column, so rotated non-uniform scale survives
// the round trip; rl.MatrixDecompose measures rows instead. Shear is not recovered
// and a negative determinant is folded into the X scale.
func DecomposeTRS(m rl.Matrix) (rl.Vector3, rl.Quaternion, rl.Vector3) {
	t := Translation(m)

	x := rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2}
	y := rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6}
	z := rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10}
	s := rl.Vector3{X: rl.Vector3Length(x), Y: rl.Vector3Length(y), Z: rl.Vector3Length(z)}
	if rl.MatrixDeterminant(m) < 0 {
		s.X = -s.X
	}
	if s.X == 0 || s.Y == 0 || s.Z == 0 {
		return t, rl.QuaternionIdentity(), s
	}

	x = rl.Vector3Scale(x, 1/s.X)
	y = rl.Vector3Scale(y, 1/s.Y)
	z = rl.Vector3Scale(z, 1/s.Z)
	rot := rl.Matrix{
		M0: x.X, M1: x.Y, M2: x.Z,
		M4: y.X, M5: y.Y, M6: y.Z,
		M8: z.X, M9: z.Y, M10: z.Z,
		M15: 1,
	}
	return t, QuaternionNormalize(rl.QuaternionFromMatrix(rot)), s
}
