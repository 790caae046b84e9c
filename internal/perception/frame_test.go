package perception

import (
	"math"
	"testing"

	"arplace/internal/camera"
	"arplace/internal/engine"
	"arplace/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func nearf(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) < float64(tol)
}

// testFrame looks from (0,2,4) at the origin through an 800x600 viewport.
func testFrame() *Frame {
	device := camera.NewLookingAt(rl.Vector3{X: 0, Y: 2, Z: 4}, rl.Vector3{}, 60)
	return &Frame{
		Camera: device.GetRaylibCamera(),
		Width:  800,
		Height: 600,
		Scene:  engine.NewScene("Test"),
	}
}

func floorPlane(extent float32) PlaneAnchor {
	return PlaneAnchor{
		ID:        engine.AnchorIDFromName("floor"),
		Name:      "floor",
		Alignment: Horizontal,
		Extent:    rl.Vector2{X: extent, Y: extent},
	}
}

func screenOf(t *testing.T, f *Frame, p rl.Vector3) rl.Vector2 {
	t.Helper()
	pt, ok := f.WorldToScreen(p)
	if !ok {
		t.Fatalf("Point %+v should be in front of the camera", p)
	}
	return pt
}

func TestWorldToScreenCenter(t *testing.T) {
	f := testFrame()

	pt := screenOf(t, f, rl.Vector3{})
	if !nearf(pt.X, 400, 0.5) || !nearf(pt.Y, 300, 0.5) {
		t.Errorf("Expected look target at viewport center, got %+v", pt)
	}

	if _, ok := f.WorldToScreen(rl.Vector3{X: 0, Y: 2, Z: 10}); ok {
		t.Error("Point behind the camera should not project")
	}
}

func TestScreenRayRoundTrip(t *testing.T) {
	f := testFrame()
	target := rl.Vector3{X: 0.5, Y: 0, Z: -0.25}

	ray, ok := f.ScreenRay(screenOf(t, f, target))
	if !ok {
		t.Fatal("Expected a ray for an in-viewport point")
	}

	dist, ok := physics.RayPlane(ray, rl.Vector3{}, rl.Vector3{Y: 1})
	if !ok {
		t.Fatal("Ray should hit the floor")
	}
	hit := physics.PointAlong(ray, dist)
	if !nearf(hit.X, target.X, 1e-2) || !nearf(hit.Z, target.Z, 1e-2) {
		t.Errorf("Expected ray to land on %+v, got %+v", target, hit)
	}
}

func TestRayCastBoundedAndInfinite(t *testing.T) {
	f := testFrame()
	f.Planes = []PlaneAnchor{floorPlane(2)}

	center := screenOf(t, f, rl.Vector3{})
	results := f.RayCast(center, ExistingPlaneUsingGeometry|ExistingPlane)
	if len(results) != 2 {
		t.Fatalf("Expected bounded and infinite hits, got %d", len(results))
	}
	if results[0].Kind != ExistingPlaneUsingGeometry || results[1].Kind != ExistingPlane {
		t.Errorf("Unexpected kinds: %v, %v", results[0].Kind, results[1].Kind)
	}

	wantDist := float32(math.Sqrt(20))
	for _, r := range results {
		if !nearf(r.Distance, wantDist, 1e-2) {
			t.Errorf("Expected distance %f, got %f", wantDist, r.Distance)
		}
		pos := r.Position()
		if !nearf(pos.X, 0, 1e-2) || !nearf(pos.Y, 0, 1e-3) || !nearf(pos.Z, 0, 1e-2) {
			t.Errorf("Expected hit at origin, got %+v", pos)
		}
		if r.Alignment != Horizontal {
			t.Errorf("Expected horizontal alignment, got %v", r.Alignment)
		}
		if r.PlaneAnchor != f.Planes[0].ID {
			t.Error("Plane hits should carry the plane's anchor ID")
		}
	}
}

func TestRayCastOutsideExtentOnlyInfinite(t *testing.T) {
	f := testFrame()
	f.Planes = []PlaneAnchor{floorPlane(2)}
	pt := screenOf(t, f, rl.Vector3{X: 2.5, Y: 0, Z: 0})

	if got := f.RayCast(pt, ExistingPlaneUsingGeometry); len(got) != 0 {
		t.Errorf("Expected no bounded hit outside the extent, got %d", len(got))
	}
	if got := f.RayCast(pt, ExistingPlane); len(got) != 1 {
		t.Errorf("Expected one infinite hit, got %d", len(got))
	}
}

func TestRayCastEstimatedNearToFar(t *testing.T) {
	f := testFrame()
	f.Estimated = []EstimatedSurface{
		{Alignment: Vertical, Point: rl.Vector3{Z: -3}},
		{Alignment: Horizontal},
	}
	center := screenOf(t, f, rl.Vector3{})

	results := f.RayCast(center, EstimatedHorizontalPlane|EstimatedVerticalPlane)
	if len(results) != 2 {
		t.Fatalf("Expected 2 estimated hits, got %d", len(results))
	}
	if results[0].Kind != EstimatedHorizontalPlane || results[1].Kind != EstimatedVerticalPlane {
		t.Errorf("Expected horizontal then vertical, got %v then %v", results[0].Kind, results[1].Kind)
	}
	if results[0].Distance >= results[1].Distance {
		t.Error("Results should be ordered near to far")
	}
	if !results[0].PlaneAnchor.IsZero() {
		t.Error("Estimated hits should not carry a plane anchor")
	}

	onlyV := f.RayCast(center, EstimatedVerticalPlane)
	if len(onlyV) != 1 || onlyV[0].Alignment != Vertical {
		t.Errorf("Kind filter should leave only the vertical estimate, got %+v", onlyV)
	}
}

func TestRayCastOutsideViewport(t *testing.T) {
	f := testFrame()
	f.Planes = []PlaneAnchor{floorPlane(100)}
	f.Estimated = []EstimatedSurface{{Alignment: Horizontal}}

	for _, pt := range []rl.Vector2{{X: -1, Y: 10}, {X: 10, Y: 601}, {X: 900, Y: 10}} {
		if got := f.RayCast(pt, ExistingPlane|EstimatedHorizontalPlane); got != nil {
			t.Errorf("Expected no candidates for %+v, got %d", pt, len(got))
		}
	}
}

func TestVerticalPlaneContains(t *testing.T) {
	wall := PlaneAnchor{
		Alignment: Vertical,
		Center:    rl.Vector3{X: 0, Y: 1, Z: -2},
		Extent:    rl.Vector2{X: 2, Y: 2},
	}

	n := wall.Normal()
	if !nearf(n.Z, 1, 1e-5) {
		t.Errorf("Expected wall normal +Z, got %+v", n)
	}
	if !wall.Contains(rl.Vector3{X: 0.9, Y: 1.9, Z: -2}) {
		t.Error("Point inside the wall patch should be contained")
	}
	if wall.Contains(rl.Vector3{X: 0, Y: 2.5, Z: -2}) {
		t.Error("Point above the wall patch should not be contained")
	}

	turned := wall
	turned.Yaw = 90
	n = turned.Normal()
	if !nearf(n.X, 1, 1e-5) || !nearf(n.Z, 0, 1e-5) {
		t.Errorf("Expected yawed wall normal +X, got %+v", n)
	}
}

func TestHitTransformUpIsNormal(t *testing.T) {
	tests := []struct {
		name      string
		alignment Alignment
		yaw       float32
		want      rl.Vector3
	}{
		{"floor", Horizontal, 0, rl.Vector3{Y: 1}},
		{"turned floor", Horizontal, 30, rl.Vector3{Y: 1}},
		{"wall", Vertical, 0, rl.Vector3{Z: 1}},
		{"side wall", Vertical, 90, rl.Vector3{X: 1}},
		{"back-facing wall", Vertical, 180, rl.Vector3{Z: -1}},
	}

	point := rl.Vector3{X: 1, Y: 2, Z: -3}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := hitTransform(point, tt.alignment, tt.yaw)

			up := rl.Vector3Subtract(rl.Vector3Transform(rl.Vector3{Y: 1}, m), point)
			if !nearf(up.X, tt.want.X, 1e-5) || !nearf(up.Y, tt.want.Y, 1e-5) || !nearf(up.Z, tt.want.Z, 1e-5) {
				t.Errorf("Expected local +Y %+v, got %+v", tt.want, up)
			}
			if got := rl.Vector3Transform(rl.Vector3{}, m); got != point {
				t.Errorf("Expected origin at %+v, got %+v", point, got)
			}
		})
	}
}

func TestWallRayHitFacesCamera(t *testing.T) {
	f := testFrame()
	f.Planes = []PlaneAnchor{{
		Alignment: Vertical,
		Center:    rl.Vector3{Y: 1, Z: -2},
		Extent:    rl.Vector2{X: 4, Y: 2},
	}}
	target := rl.Vector3{X: 0.5, Y: 1, Z: -2}

	results := f.RayCast(screenOf(t, f, target), ExistingPlaneUsingGeometry)
	if len(results) != 1 {
		t.Fatalf("Expected one wall hit, got %d", len(results))
	}
	pos := results[0].Position()
	if !nearf(pos.X, target.X, 1e-2) || !nearf(pos.Y, target.Y, 1e-2) || !nearf(pos.Z, target.Z, 1e-3) {
		t.Errorf("Expected hit at %+v, got %+v", target, pos)
	}
	m := results[0].WorldTransform
	if m.M6 < 0.99 {
		t.Errorf("Expected the wall hit's local +Y to point at the room, got (%f, %f, %f)", m.M4, m.M5, m.M6)
	}
}

func TestScreenRayCenterIsForward(t *testing.T) {
	f := testFrame()

	ray, ok := f.ScreenRay(rl.Vector2{X: 400, Y: 300})
	if !ok {
		t.Fatal("Expected a ray through the viewport center")
	}
	want := rl.Vector3Normalize(rl.Vector3{Y: -2, Z: -4})
	if !nearf(ray.Direction.X, want.X, 1e-5) || !nearf(ray.Direction.Y, want.Y, 1e-5) || !nearf(ray.Direction.Z, want.Z, 1e-5) {
		t.Errorf("Expected direction %+v, got %+v", want, ray.Direction)
	}
	if ray.Position != f.Camera.Position {
		t.Errorf("Ray should start at the camera, got %+v", ray.Position)
	}

	// Right of center is +X and above center is up for this camera.
	right, _ := f.ScreenRay(rl.Vector2{X: 700, Y: 300})
	if right.Direction.X <= 0 {
		t.Errorf("Expected a ray right of center to lean +X, got %+v", right.Direction)
	}
	top, _ := f.ScreenRay(rl.Vector2{X: 400, Y: 10})
	if top.Direction.Y <= ray.Direction.Y {
		t.Errorf("Expected a ray above center to climb, got %+v", top.Direction)
	}
}

func TestTurnedPlaneContains(t *testing.T) {
	table := PlaneAnchor{
		Alignment: Horizontal,
		Extent:    rl.Vector2{X: 2, Y: 0.5},
		Yaw:       90,
	}

	// Turned a quarter, the long side runs along world Z.
	if !table.Contains(rl.Vector3{Z: 0.9}) {
		t.Error("Point along the turned long side should be contained")
	}
	if table.Contains(rl.Vector3{X: 0.9}) {
		t.Error("Point past the turned short side should not be contained")
	}
}

func boxObject(name string, pos rl.Vector3) *engine.VirtualObject {
	obj := engine.NewVirtualObject(name)
	obj.Transform.Position = pos
	obj.Root.Bounds = physics.NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})
	return obj
}

func TestHitTestBoundsNearestFirst(t *testing.T) {
	f := testFrame()
	far := boxObject("far", rl.Vector3{X: 0, Y: -1, Z: -2})
	nearObj := boxObject("near", rl.Vector3{})
	aside := boxObject("aside", rl.Vector3{X: 3})
	nearObj.Root.AddChild(engine.NewNode("empty"))

	f.Scene.AddObject(far)
	f.Scene.AddObject(nearObj)
	f.Scene.AddObject(aside)

	nodes := f.HitTestBounds(screenOf(t, f, rl.Vector3{}))
	if len(nodes) != 2 {
		t.Fatalf("Expected 2 node hits, got %d", len(nodes))
	}
	if nodes[0] != nearObj.Root || nodes[1] != far.Root {
		t.Errorf("Expected near then far, got %s then %s", nodes[0].Name, nodes[1].Name)
	}
}

func TestHitTestBoundsChildNode(t *testing.T) {
	f := testFrame()
	obj := engine.NewVirtualObject("lamp")
	obj.Transform.Position = rl.Vector3{X: -1}
	shade := engine.NewNode("shade")
	shade.Offset = rl.Vector3{X: 1}
	shade.Bounds = physics.NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 0.4, Y: 0.4, Z: 0.4})
	obj.Root.AddChild(shade)
	f.Scene.AddObject(obj)

	nodes := f.HitTestBounds(screenOf(t, f, rl.Vector3{}))
	if len(nodes) != 1 || nodes[0] != shade {
		t.Fatalf("Expected the offset child node to be hit, got %d nodes", len(nodes))
	}
}

func TestHitTestBoundsWithoutScene(t *testing.T) {
	f := testFrame()
	f.Scene = nil

	if nodes := f.HitTestBounds(rl.Vector2{X: 400, Y: 300}); nodes != nil {
		t.Error("A frame without a scene should hit nothing")
	}
}
