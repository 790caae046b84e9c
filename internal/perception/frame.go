package perception

import (
	"math"
	"sort"

	"arplace/internal/engine"
	"arplace/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Clip distances match raylib's defaults for screen rays.
const (
	nearClip = 0.01
	farClip  = 1000.0
)

// PlaneAnchor is a detected plane patch. Extent is the patch size along the
// plane's local X axis and along its second in-plane axis (local Z for
// horizontal planes, world up for vertical ones).
type PlaneAnchor struct {
	ID        engine.AnchorID
	Name      string
	Alignment Alignment
	Center    rl.Vector3
	Extent    rl.Vector2
	Yaw       float32 // Degrees about world Y
}

func (p PlaneAnchor) Normal() rl.Vector3 {
	return surfaceNormal(p.Alignment, p.Yaw)
}

func (p PlaneAnchor) axes() (u, v rl.Vector3) {
	u = yawAxis(p.Yaw)
	if p.Alignment == Vertical {
		v = rl.Vector3{Y: 1}
	} else {
		v = yawForward(p.Yaw)
	}
	return u, v
}

// Contains reports whether point, assumed to lie on the plane, falls inside
// the observed patch.
func (p PlaneAnchor) Contains(point rl.Vector3) bool {
	u, v := p.axes()
	d := rl.Vector3Subtract(point, p.Center)
	return absf(rl.Vector3DotProduct(d, u)) <= p.Extent.X/2 &&
		absf(rl.Vector3DotProduct(d, v)) <= p.Extent.Y/2
}

// Corners returns the patch outline in drawing order.
func (p PlaneAnchor) Corners() [4]rl.Vector3 {
	u, v := p.axes()
	hu := rl.Vector3Scale(u, p.Extent.X/2)
	hv := rl.Vector3Scale(v, p.Extent.Y/2)
	return [4]rl.Vector3{
		rl.Vector3Subtract(rl.Vector3Subtract(p.Center, hu), hv),
		rl.Vector3Subtract(rl.Vector3Add(p.Center, hu), hv),
		rl.Vector3Add(rl.Vector3Add(p.Center, hu), hv),
		rl.Vector3Add(rl.Vector3Subtract(p.Center, hu), hv),
	}
}

// EstimatedSurface is an unbounded surface inferred from depth data, with no
// plane anchor behind it.
type EstimatedSurface struct {
	Alignment Alignment
	Point     rl.Vector3
	Yaw       float32
}

func (e EstimatedSurface) Normal() rl.Vector3 {
	return surfaceNormal(e.Alignment, e.Yaw)
}

func (e EstimatedSurface) Kind() HitKind {
	if e.Alignment == Vertical {
		return EstimatedVerticalPlane
	}
	return EstimatedHorizontalPlane
}

// yawAxis is world +X turned counter-clockwise about +Y by yaw degrees.
func yawAxis(yaw float32) rl.Vector3 {
	sin, cos := math.Sincos(float64(yaw) * math.Pi / 180)
	return rl.Vector3{X: float32(cos), Z: float32(-sin)}
}

// yawForward is world +Z turned by the same rotation as yawAxis.
func yawForward(yaw float32) rl.Vector3 {
	sin, cos := math.Sincos(float64(yaw) * math.Pi / 180)
	return rl.Vector3{X: float32(sin), Z: float32(cos)}
}

func surfaceNormal(a Alignment, yaw float32) rl.Vector3 {
	if a == Horizontal {
		return rl.Vector3{Y: 1}
	}
	return yawForward(yaw)
}

// hitTransform orients the hit so local +Y is the surface normal and local +X
// runs along the plane's yawed X axis. The basis is written out column by
// column, which is the layout Vector3Transform reads.
func hitTransform(point rl.Vector3, a Alignment, yaw float32) rl.Matrix {
	x := yawAxis(yaw)
	y := surfaceNormal(a, yaw)
	z := rl.Vector3CrossProduct(x, y)
	return rl.Matrix{
		M0: x.X, M4: y.X, M8: z.X, M12: point.X,
		M1: x.Y, M5: y.Y, M9: z.Y, M13: point.Y,
		M2: x.Z, M6: y.Z, M10: z.Z, M14: point.Z,
		M15: 1,
	}
}

// Frame is a simulated perception frame: a device camera looking at a fixed
// set of detected planes, estimated surfaces and scene objects.
type Frame struct {
	Camera    rl.Camera3D
	Width     int32
	Height    int32
	Planes    []PlaneAnchor
	Estimated []EstimatedSurface
	Scene     *engine.Scene
}

// basis returns the camera's forward, right and up unit vectors.
func (f *Frame) basis() (forward, right, up rl.Vector3) {
	forward = rl.Vector3Normalize(rl.Vector3Subtract(f.Camera.Target, f.Camera.Position))
	right = rl.Vector3CrossProduct(forward, f.Camera.Up)
	if rl.Vector3Length(right) == 0 {
		right = rl.Vector3{X: 1}
	}
	right = rl.Vector3Normalize(right)
	up = rl.Vector3CrossProduct(right, forward)
	return forward, right, up
}

// halfExtents is the view half-width and half-height at unit depth.
func (f *Frame) halfExtents() (w, h float32) {
	h = float32(math.Tan(float64(f.Camera.Fovy) * math.Pi / 360))
	w = h * float32(f.Width) / float32(f.Height)
	return w, h
}

func (f *Frame) inViewport(point rl.Vector2) bool {
	return f.Width > 0 && f.Height > 0 &&
		point.X >= 0 && point.Y >= 0 &&
		point.X <= float32(f.Width) && point.Y <= float32(f.Height)
}

// ScreenRay returns the world-space ray through a viewport pixel.
func (f *Frame) ScreenRay(point rl.Vector2) (rl.Ray, bool) {
	if !f.inViewport(point) {
		return rl.Ray{}, false
	}

	x := 2*point.X/float32(f.Width) - 1
	y := 1 - 2*point.Y/float32(f.Height)

	forward, right, up := f.basis()
	hw, hh := f.halfExtents()
	dir := rl.Vector3Add(forward, rl.Vector3Scale(right, x*hw))
	dir = rl.Vector3Add(dir, rl.Vector3Scale(up, y*hh))

	return rl.Ray{
		Position:  f.Camera.Position,
		Direction: rl.Vector3Normalize(dir),
	}, true
}

// WorldToScreen projects a world point into viewport pixels. It reports false
// for points behind the camera.
func (f *Frame) WorldToScreen(p rl.Vector3) (rl.Vector2, bool) {
	if f.Width <= 0 || f.Height <= 0 {
		return rl.Vector2{}, false
	}
	forward, right, up := f.basis()
	d := rl.Vector3Subtract(p, f.Camera.Position)
	depth := rl.Vector3DotProduct(d, forward)
	if depth <= nearClip {
		return rl.Vector2{}, false
	}

	hw, hh := f.halfExtents()
	x := rl.Vector3DotProduct(d, right) / (depth * hw)
	y := rl.Vector3DotProduct(d, up) / (depth * hh)
	return rl.Vector2{
		X: (x + 1) / 2 * float32(f.Width),
		Y: (1 - y) / 2 * float32(f.Height),
	}, true
}

// RayCast returns every surface of the requested kinds that the screen ray
// through point crosses, nearest first. A detected plane can appear twice,
// once bounded and once infinite, when both kinds are requested.
func (f *Frame) RayCast(point rl.Vector2, kinds HitKind) []Candidate {
	ray, ok := f.ScreenRay(point)
	if !ok {
		return nil
	}

	var out []Candidate

	if kinds.Has(ExistingPlaneUsingGeometry | ExistingPlane) {
		for _, p := range f.Planes {
			t, ok := physics.RayPlane(ray, p.Center, p.Normal())
			if !ok || t > farClip {
				continue
			}
			hit := physics.PointAlong(ray, t)
			c := Candidate{
				WorldTransform: hitTransform(hit, p.Alignment, p.Yaw),
				Distance:       t,
				Alignment:      p.Alignment,
				PlaneAnchor:    p.ID,
			}
			if kinds.Has(ExistingPlaneUsingGeometry) && p.Contains(hit) {
				c.Kind = ExistingPlaneUsingGeometry
				out = append(out, c)
			}
			if kinds.Has(ExistingPlane) {
				c.Kind = ExistingPlane
				out = append(out, c)
			}
		}
	}

	for _, e := range f.Estimated {
		if !kinds.Has(e.Kind()) {
			continue
		}
		t, ok := physics.RayPlane(ray, e.Point, e.Normal())
		if !ok || t > farClip {
			continue
		}
		out = append(out, Candidate{
			Kind:           e.Kind(),
			WorldTransform: hitTransform(physics.PointAlong(ray, t), e.Alignment, e.Yaw),
			Distance:       t,
			Alignment:      e.Alignment,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out
}

type nodeHit struct {
	node     *engine.Node
	distance float32
}

// HitTestBounds returns the nodes whose world bounding boxes the screen ray
// through point crosses, nearest first. Nodes without bounds are skipped.
func (f *Frame) HitTestBounds(point rl.Vector2) []*engine.Node {
	if f.Scene == nil {
		return nil
	}
	ray, ok := f.ScreenRay(point)
	if !ok {
		return nil
	}

	var hits []nodeHit
	var visit func(n *engine.Node, parent rl.Matrix)
	visit = func(n *engine.Node, parent rl.Matrix) {
		box, world := n.WorldBounds(parent)
		if n.Bounds != (physics.AABB{}) {
			if d, ok := physics.RayAABB(ray, box, farClip); ok {
				hits = append(hits, nodeHit{node: n, distance: d})
			}
		}
		for _, c := range n.Children {
			visit(c, world)
		}
	}

	for _, obj := range f.Scene.Objects {
		if obj.Root != nil {
			visit(obj.Root, obj.WorldTransform())
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].distance < hits[j].distance
	})

	nodes := make([]*engine.Node, len(hits))
	for i, h := range hits {
		nodes[i] = h.node
	}
	return nodes
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
