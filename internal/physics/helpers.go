package physics

import rl "github.com/gen2brain/raylib-go/raylib"

func minVec(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)}
}

func maxVec(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
