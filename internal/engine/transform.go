package engine

import rl "github.com/gen2brain/raylib-go/raylib"

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

func NewTransform() Transform {
	return Transform{Scale: rl.Vector3{X: 1, Y: 1, Z: 1}}
}

// Matrix builds the pose as scale, then rotation (X, Y, Z), then translation.
func (t Transform) Matrix() rl.Matrix {
	scale := rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z)
	rotX := rl.MatrixRotateX(t.Rotation.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(t.Rotation.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(t.Rotation.Z * rl.Deg2rad)
	rot := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
	translate := rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), translate)
}

// TranslationOf returns the translation column of a pose matrix.
func TranslationOf(m rl.Matrix) rl.Vector3 {
	return rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}
}
