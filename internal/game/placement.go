package game

import (
	"fmt"

	"arplace/internal/engine"
	"arplace/internal/hittest"
	"arplace/internal/perception"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// wallTag marks objects that only hang on vertical surfaces.
const wallTag = "wall"

// PlaceAll anchors every object in the scene at its starting transform.
func (g *Game) PlaceAll() {
	for _, obj := range g.Fixture.Scene.Objects {
		g.Binder.Rebind(obj)
	}
}

// optionsFor narrows the current hit options for obj.
func (g *Game) optionsFor(obj *engine.VirtualObject) hittest.Options {
	opts := g.Options.WithObjectHeight(obj.Transform.Position.Y)
	if obj.HasTag(wallTag) {
		opts.Allowed = opts.Allowed.Without(perception.Horizontal)
	}
	return opts
}

// Grab selects the object under point. It returns false when the point
// hits no object.
func (g *Game) Grab(point rl.Vector2) bool {
	obj := g.Picker.ObjectAt(point)
	if obj == nil {
		g.Selected = nil
		g.dragging = false
		return false
	}
	g.Selected = obj
	g.dragging = true
	g.grabStart = UndoState{
		Type:     UndoMove,
		Object:   obj,
		Position: obj.Transform.Position,
		Rotation: obj.Transform.Rotation,
	}
	g.setStatus("Picked %s", obj.Name)
	return true
}

// DragTo moves the selected object onto the surface under point. The object
// stays where it was when no surface resolves.
func (g *Game) DragTo(point rl.Vector2) bool {
	if g.Selected == nil || !g.dragging {
		return false
	}

	hit, ok := g.Picker.ResolveHit(point, g.optionsFor(g.Selected))
	if !ok {
		g.hasHit = false
		return false
	}

	g.Selected.SetWorldPosition(hit.WorldTransform)
	g.lastHit = hit
	g.hasHit = true
	return true
}

// Drop ends the drag and re-anchors the object where it landed.
func (g *Game) Drop() {
	if g.Selected == nil {
		return
	}
	obj := g.Selected
	g.dragging = false
	g.Selected = nil
	g.hasHit = false

	if g.grabStart.Object == obj && g.grabStart.Position != obj.Transform.Position {
		g.pushUndo(g.grabStart)
	}
	g.grabStart = UndoState{}

	g.Binder.Rebind(obj)
}

// Remove takes obj out of the scene together with its anchor.
func (g *Game) Remove(obj *engine.VirtualObject) bool {
	if obj == nil || obj.Scene != g.Fixture.Scene {
		return false
	}
	if g.Selected == obj {
		g.Selected = nil
		g.dragging = false
	}
	g.pushUndo(UndoState{
		Type:     UndoRemove,
		Object:   obj,
		Position: obj.Transform.Position,
		Rotation: obj.Transform.Rotation,
	})
	g.Binder.Release(obj)
	g.Fixture.Scene.RemoveObject(obj)
	g.setStatus("Removed %s", obj.Name)
	return true
}

// SetAlignment enables or disables one alignment for future drags.
func (g *Game) SetAlignment(a perception.Alignment, on bool) {
	if on {
		g.Options.Allowed = g.Options.Allowed.With(a)
	} else {
		g.Options.Allowed = g.Options.Allowed.Without(a)
	}
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
}
