// Package hittest resolves screen points to scene objects and to the surface
// location a point refers to.
package hittest

import (
	"arplace/internal/engine"
	"arplace/internal/perception"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultHeightTolerance is how far, in scene units, an infinite horizontal
// plane may sit from the object's current height and still be accepted.
const DefaultHeightTolerance = 0.05

// exactKinds is the first query: bounded planes plus both estimates, so the
// estimated-plane fallback can reuse the same results.
const exactKinds = perception.ExistingPlaneUsingGeometry |
	perception.EstimatedVerticalPlane |
	perception.EstimatedHorizontalPlane

// ResolvedHit is the single surface location a screen point resolved to.
type ResolvedHit struct {
	WorldTransform rl.Matrix
	Alignment      perception.Alignment
	Kind           perception.HitKind
}

// Position is the world location of the hit.
func (h ResolvedHit) Position() rl.Vector3 {
	return engine.TranslationOf(h.WorldTransform)
}

func resolved(c perception.Candidate) (ResolvedHit, bool) {
	return ResolvedHit{
		WorldTransform: c.WorldTransform,
		Alignment:      c.Alignment,
		Kind:           c.Kind,
	}, true
}

// Options narrows which surfaces ResolveHit may return.
type Options struct {
	// InfinitePlane lets detected planes count beyond their observed boundary.
	InfinitePlane bool
	// ObjectHeight is the world Y of the object being placed, if any. Infinite
	// horizontal planes far from it are skipped.
	ObjectHeight *float32
	Allowed      perception.AlignmentSet
}

// DefaultOptions allows both alignments with infinite planes off.
func DefaultOptions() Options {
	return Options{Allowed: perception.BothAlignments}
}

// WithObjectHeight returns a copy of o that filters infinite horizontal
// planes against y.
func (o Options) WithObjectHeight(y float32) Options {
	o.ObjectHeight = &y
	return o
}

// Picker answers the two screen-point questions a gesture layer asks: which
// object is under the finger, and which surface location the finger means.
type Picker struct {
	Caster          perception.RayCaster
	Bounds          perception.BoundsHitTester
	Scene           *engine.Scene
	HeightTolerance float32
}

// NewPicker returns a Picker using DefaultHeightTolerance.
func NewPicker(caster perception.RayCaster, bounds perception.BoundsHitTester, scene *engine.Scene) *Picker {
	return &Picker{
		Caster:          caster,
		Bounds:          bounds,
		Scene:           scene,
		HeightTolerance: DefaultHeightTolerance,
	}
}

// ObjectAt returns the nearest registered object whose bounding volume is
// under point, or nil.
func (p *Picker) ObjectAt(point rl.Vector2) *engine.VirtualObject {
	if p.Bounds == nil || p.Scene == nil {
		return nil
	}
	for _, n := range p.Bounds.HitTestBounds(point) {
		if obj := p.Scene.ObjectContainingNode(n); obj != nil {
			return obj
		}
	}
	return nil
}

// ResolveHit picks the one surface location point refers to. Observed plane
// geometry always wins; then, if allowed, planes extended to infinity; then
// estimated surfaces. It reports false when nothing matches.
func (p *Picker) ResolveHit(point rl.Vector2, opts Options) (ResolvedHit, bool) {
	if opts.Allowed.IsEmpty() {
		return ResolvedHit{}, false
	}

	results := p.Caster.RayCast(point, exactKinds)

	for _, c := range results {
		if c.Kind == perception.ExistingPlaneUsingGeometry && opts.Allowed.Contains(c.Alignment) {
			return resolved(c)
		}
	}

	if opts.InfinitePlane {
		if hit, ok := p.infinitePlaneHit(point, opts); ok {
			return hit, true
		}
	}

	return estimatedHit(results, opts.Allowed)
}

func (p *Picker) infinitePlaneHit(point rl.Vector2, opts Options) (ResolvedHit, bool) {
	for _, c := range p.Caster.RayCast(point, perception.ExistingPlane) {
		if c.Kind != perception.ExistingPlane || !opts.Allowed.Contains(c.Alignment) {
			continue
		}
		if c.Alignment == perception.Vertical {
			return resolved(c)
		}
		if opts.ObjectHeight == nil || p.nearHeight(*opts.ObjectHeight, c.Position().Y) {
			return resolved(c)
		}
	}
	return ResolvedHit{}, false
}

func (p *Picker) nearHeight(objectY, planeY float32) bool {
	return objectY > planeY-p.HeightTolerance && objectY < planeY+p.HeightTolerance
}

func estimatedHit(results []perception.Candidate, allowed perception.AlignmentSet) (ResolvedHit, bool) {
	var h, v *perception.Candidate
	for i := range results {
		switch results[i].Kind {
		case perception.EstimatedHorizontalPlane:
			if h == nil {
				h = &results[i]
			}
		case perception.EstimatedVerticalPlane:
			if v == nil {
				v = &results[i]
			}
		}
	}

	horizontal := allowed.Contains(perception.Horizontal)
	vertical := allowed.Contains(perception.Vertical)

	var pick *perception.Candidate
	switch {
	case horizontal && !vertical:
		pick = h
	case vertical && !horizontal:
		// Things meant for walls can still stand on a horizontal surface.
		pick = v
		if pick == nil {
			pick = h
		}
	case horizontal && vertical:
		switch {
		case h != nil && v != nil:
			// Equal distances go to the horizontal estimate.
			pick = v
			if h.Distance <= v.Distance {
				pick = h
			}
		case h != nil:
			pick = h
		default:
			pick = v
		}
	}

	if pick == nil {
		return ResolvedHit{}, false
	}
	return resolved(*pick)
}
