package game

import (
	"arplace/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const maxUndoStack = 50

type UndoActionType int

const (
	UndoMove UndoActionType = iota
	UndoRemove
)

// UndoState captures enough to put an object back where it was.
type UndoState struct {
	Type     UndoActionType
	Object   *engine.VirtualObject
	Position rl.Vector3
	Rotation rl.Vector3
}

func (g *Game) pushUndo(state UndoState) {
	// Cap stack size
	if len(g.undoStack) >= maxUndoStack {
		g.undoStack = g.undoStack[1:]
	}
	g.undoStack = append(g.undoStack, state)
}

// Undo reverts the last move or removal and re-anchors the object at the
// restored transform.
func (g *Game) Undo() bool {
	if len(g.undoStack) == 0 || g.dragging {
		return false
	}
	state := g.undoStack[len(g.undoStack)-1]
	g.undoStack = g.undoStack[:len(g.undoStack)-1]

	obj := state.Object
	obj.Transform.Position = state.Position
	obj.Transform.Rotation = state.Rotation

	switch state.Type {
	case UndoMove:
		g.setStatus("Moved %s back", obj.Name)
	case UndoRemove:
		g.Fixture.Scene.AddObject(obj)
		g.setStatus("Restored %s", obj.Name)
	}

	g.Binder.Rebind(obj)
	return true
}
