package physics

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestRayPlaneHitsFloor(t *testing.T) {
	ray := rl.Ray{Position: rl.Vector3{X: 0, Y: 2, Z: 0}, Direction: rl.Vector3{X: 0, Y: -1, Z: 0}}

	dist, ok := RayPlane(ray, rl.Vector3{}, rl.Vector3{X: 0, Y: 1, Z: 0})
	if !ok {
		t.Fatal("Expected ray pointing down to hit the floor")
	}
	if !near(dist, 2) {
		t.Errorf("Expected distance 2, got %f", dist)
	}
}

func TestRayPlaneBehindOrigin(t *testing.T) {
	ray := rl.Ray{Position: rl.Vector3{X: 0, Y: 2, Z: 0}, Direction: rl.Vector3{X: 0, Y: 1, Z: 0}}

	if _, ok := RayPlane(ray, rl.Vector3{}, rl.Vector3{X: 0, Y: 1, Z: 0}); ok {
		t.Error("Plane behind the ray origin should not be hit")
	}
}

func TestRayPlaneParallel(t *testing.T) {
	ray := rl.Ray{Position: rl.Vector3{X: 0, Y: 2, Z: 0}, Direction: rl.Vector3{X: 1, Y: 0, Z: 0}}

	if _, ok := RayPlane(ray, rl.Vector3{}, rl.Vector3{X: 0, Y: 1, Z: 0}); ok {
		t.Error("Parallel ray should not hit the plane")
	}
}

func TestRayAABB(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{X: 0, Y: 0, Z: -5}, rl.Vector3{X: 2, Y: 2, Z: 2})

	tests := []struct {
		name     string
		ray      rl.Ray
		maxDist  float32
		wantHit  bool
		wantDist float32
	}{
		{
			name:     "straight on",
			ray:      rl.Ray{Direction: rl.Vector3{Z: -1}},
			maxDist:  100,
			wantHit:  true,
			wantDist: 4,
		},
		{
			name:    "miss to the side",
			ray:     rl.Ray{Position: rl.Vector3{X: 3}, Direction: rl.Vector3{Z: -1}},
			maxDist: 100,
		},
		{
			name:    "beyond max distance",
			ray:     rl.Ray{Direction: rl.Vector3{Z: -1}},
			maxDist: 3,
		},
		{
			name:     "origin inside reports exit",
			ray:      rl.Ray{Position: rl.Vector3{Z: -5}, Direction: rl.Vector3{Z: -1}},
			maxDist:  100,
			wantHit:  true,
			wantDist: 1,
		},
		{
			name:    "pointing away",
			ray:     rl.Ray{Direction: rl.Vector3{Z: 1}},
			maxDist: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, ok := RayAABB(tt.ray, box, tt.maxDist)
			if ok != tt.wantHit {
				t.Fatalf("Expected hit=%v, got %v", tt.wantHit, ok)
			}
			if ok && !near(dist, tt.wantDist) {
				t.Errorf("Expected distance %f, got %f", tt.wantDist, dist)
			}
		})
	}
}

func TestAABBTransformTranslates(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1})
	moved := box.Transform(rl.MatrixTranslate(2, 3, 4))

	c := moved.Center()
	if !near(c.X, 2) || !near(c.Y, 3) || !near(c.Z, 4) {
		t.Errorf("Expected center (2,3,4), got %+v", c)
	}
	s := moved.Size()
	if !near(s.X, 1) || !near(s.Y, 1) || !near(s.Z, 1) {
		t.Errorf("Expected unit size, got %+v", s)
	}
}

func TestAABBContainsAndIntersects(t *testing.T) {
	a := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})
	b := NewAABBFromCenter(rl.Vector3{X: 1.5}, rl.Vector3{X: 2, Y: 2, Z: 2})
	c := NewAABBFromCenter(rl.Vector3{X: 5}, rl.Vector3{X: 1, Y: 1, Z: 1})

	if !a.Contains(rl.Vector3{X: 0.5}) {
		t.Error("Point inside box should be contained")
	}
	if a.Contains(rl.Vector3{X: 1.5}) {
		t.Error("Point outside box should not be contained")
	}
	if !a.Intersects(b) {
		t.Error("Overlapping boxes should intersect")
	}
	if a.Intersects(c) {
		t.Error("Separated boxes should not intersect")
	}
}
