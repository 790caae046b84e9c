package game

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"arplace/internal/anchor"
	"arplace/internal/config"
	"arplace/internal/engine"
	"arplace/internal/hittest"
	"arplace/internal/perception"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Game struct {
	Config  config.Config
	Fixture *perception.Fixture
	Picker  *hittest.Picker
	Session *anchor.MemorySession
	Binder  *anchor.Binder
	Options hittest.Options

	Selected *engine.VirtualObject
	dragging bool

	grabStart UndoState
	undoStack []UndoState

	lastHit hittest.ResolvedHit
	hasHit  bool
	status  string
}

// New loads the configured fixture and wires a game around it.
func New(cfg config.Config) (*Game, error) {
	fx, err := perception.LoadFixture(cfg.FixturePath)
	if err != nil {
		return nil, err
	}

	layout, err := perception.LoadLayout(cfg.LayoutPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		n := layout.Apply(fx.Scene)
		log.Printf("Restored %d placements from %s", n, cfg.LayoutPath)
	}

	return NewWithFixture(cfg, fx), nil
}

func NewWithFixture(cfg config.Config, fx *perception.Fixture) *Game {
	session := anchor.NewMemorySession()
	picker := hittest.NewPicker(fx.Frame, fx.Frame, fx.Scene)
	picker.HeightTolerance = cfg.HeightTolerance

	g := &Game{
		Config:  cfg,
		Fixture: fx,
		Picker:  picker,
		Session: session,
		Binder:  anchor.NewBinder(session),
		Options: cfg.HitOptions(),
	}
	g.Binder.OnRebound.AddListener(func(obj *engine.VirtualObject) {
		p := obj.Transform.Position
		log.Printf("%s anchored at (%.2f, %.2f, %.2f) as %s", obj.Name, p.X, p.Y, p.Z, obj.Anchor)
	})
	return g
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(g.Config.WindowWidth, g.Config.WindowHeight, "arplace")
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)
	initRayguiStyle()

	g.PlaceAll()
	g.setStatus("Drag objects onto a surface")

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) Update() {
	deltaTime := rl.GetFrameTime()
	frame := g.Fixture.Frame

	frame.Width = int32(rl.GetScreenWidth())
	frame.Height = int32(rl.GetScreenHeight())

	g.Fixture.Device.Update(deltaTime)
	frame.Camera = g.Fixture.Device.GetRaylibCamera()

	mouse := rl.GetMousePosition()
	if mouseInPanel(mouse) && !g.dragging {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		g.Grab(mouse)
	}
	if g.dragging && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		g.DragTo(mouse)
	}
	if g.dragging && rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		g.Drop()
	}

	if rl.IsKeyPressed(rl.KeyDelete) || rl.IsKeyPressed(rl.KeyBackspace) {
		g.Remove(g.Picker.ObjectAt(mouse))
	}

	if (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyLeftSuper)) && rl.IsKeyPressed(rl.KeyZ) {
		g.Undo()
	}
	if (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyLeftSuper)) && rl.IsKeyPressed(rl.KeyS) {
		if err := g.SaveLayout(); err != nil {
			log.Printf("save layout: %v", err)
			g.setStatus("Save failed: %v", err)
		}
	}
}

func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBgDark)

	rl.BeginMode3D(g.Fixture.Frame.Camera)
	g.drawPlanes()
	g.drawEstimates()
	g.drawObjects()
	g.drawAnchors()
	if g.hasHit {
		drawHitMarker(g.lastHit)
	}
	rl.EndMode3D()

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) drawPlanes() {
	for _, p := range g.Fixture.Frame.Planes {
		color, ok := g.Fixture.PlaneColors[p.ID]
		if !ok {
			color = rl.LightGray
		}
		c := p.Corners()
		fill := rl.Fade(color, 0.6)
		// Both windings so the quad shows from either side.
		rl.DrawTriangle3D(c[0], c[1], c[2], fill)
		rl.DrawTriangle3D(c[0], c[2], c[3], fill)
		rl.DrawTriangle3D(c[0], c[2], c[1], fill)
		rl.DrawTriangle3D(c[0], c[3], c[2], fill)
		for i := range c {
			rl.DrawLine3D(c[i], c[(i+1)%len(c)], color)
		}
	}
}

func (g *Game) drawEstimates() {
	for _, e := range g.Fixture.Frame.Estimated {
		end := rl.Vector3Add(e.Point, rl.Vector3Scale(e.Normal(), 0.25))
		rl.DrawLine3D(e.Point, end, colorAccentLight)
		rl.DrawSphere(e.Point, 0.02, colorAccentLight)
	}
}

func (g *Game) drawObjects() {
	for _, obj := range g.Fixture.Scene.Objects {
		parent := obj.WorldTransform()
		var walk func(n *engine.Node, parent rl.Matrix)
		walk = func(n *engine.Node, parent rl.Matrix) {
			box, world := n.WorldBounds(parent)
			if box.Size() != (rl.Vector3{}) {
				rl.DrawCubeV(box.Center(), box.Size(), n.Color)
				wire := rl.DarkGray
				if obj == g.Selected {
					wire = colorAccent
				}
				rl.DrawCubeWiresV(box.Center(), box.Size(), wire)
			}
			for _, child := range n.Children {
				walk(child, world)
			}
		}
		if obj.Root != nil {
			walk(obj.Root, parent)
		}
	}
}

func (g *Game) drawAnchors() {
	for _, a := range g.Session.Anchors() {
		rl.DrawSphere(a.Position(), 0.015, rl.Red)
	}
}

func drawHitMarker(hit hittest.ResolvedHit) {
	pos := hit.Position()
	// Local +Y of a hit is the surface normal.
	m := hit.WorldTransform
	up := rl.Vector3Scale(rl.Vector3Normalize(rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6}), 0.15)
	rl.DrawSphere(pos, 0.025, rl.Yellow)
	rl.DrawLine3D(pos, rl.Vector3Add(pos, up), rl.Yellow)
}

func (g *Game) SaveLayout() error {
	if err := perception.SaveLayout(g.Config.LayoutPath, g.Fixture.Scene); err != nil {
		return err
	}
	g.setStatus("Saved layout to %s", g.Config.LayoutPath)
	return nil
}

// statusLine summarises the active placement options.
func (g *Game) statusLine() string {
	return fmt.Sprintf("Alignments: %s  Infinite: %t  Tolerance: %.2f  Anchors: %d",
		g.Options.Allowed, g.Options.InfinitePlane, g.Picker.HeightTolerance, g.Session.Len())
}
