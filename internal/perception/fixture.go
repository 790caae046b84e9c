package perception

import (
	"encoding/json"
	"fmt"
	"os"

	"arplace/internal/camera"
	"arplace/internal/engine"
	"arplace/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---

type FixtureFile struct {
	Camera    cameraDef    `json:"camera"`
	Viewport  viewportDef  `json:"viewport"`
	Planes    []planeDef   `json:"planes"`
	Estimated []surfaceDef `json:"estimated,omitempty"`
	Objects   []objectDef  `json:"objects,omitempty"`
}

type cameraDef struct {
	Position [3]float32 `json:"position"`
	Target   [3]float32 `json:"target"`
	Fovy     float32    `json:"fovy,omitempty"`
}

type viewportDef struct {
	Width  int32 `json:"width"`
	Height int32 `json:"height"`
}

type planeDef struct {
	Name      string     `json:"name"`
	ID        string     `json:"id,omitempty"`
	Alignment string     `json:"alignment"`
	Center    [3]float32 `json:"center"`
	Extent    [2]float32 `json:"extent"`
	Yaw       float32    `json:"yaw,omitempty"`
	Color     string     `json:"color,omitempty"`
}

type surfaceDef struct {
	Alignment string     `json:"alignment"`
	Point     [3]float32 `json:"point"`
	Yaw       float32    `json:"yaw,omitempty"`
}

type objectDef struct {
	Name     string     `json:"name"`
	Tags     []string   `json:"tags,omitempty"`
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation,omitempty"`
	Size     [3]float32 `json:"size"`
	Color    string     `json:"color,omitempty"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.LightGray
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// Fixture is a loaded simulated frame plus the scene it hit-tests against.
type Fixture struct {
	Frame       *Frame
	Scene       *engine.Scene
	Device      *camera.Device
	PlaneColors map[engine.AnchorID]rl.Color
}

// --- Loading ---

func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	fx, err := ParseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("load fixture %s: %w", path, err)
	}
	return fx, nil
}

func ParseFixture(data []byte) (*Fixture, error) {
	var ff FixtureFile
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	if ff.Viewport.Width <= 0 || ff.Viewport.Height <= 0 {
		return nil, fmt.Errorf("viewport must be positive, got %dx%d", ff.Viewport.Width, ff.Viewport.Height)
	}

	device := camera.NewLookingAt(vec3(ff.Camera.Position), vec3(ff.Camera.Target), ff.Camera.Fovy)
	scene := engine.NewScene("Fixture")

	fx := &Fixture{
		Frame: &Frame{
			Camera: device.GetRaylibCamera(),
			Width:  ff.Viewport.Width,
			Height: ff.Viewport.Height,
			Scene:  scene,
		},
		Scene:       scene,
		Device:      device,
		PlaneColors: make(map[engine.AnchorID]rl.Color, len(ff.Planes)),
	}

	for i, def := range ff.Planes {
		plane, err := loadPlane(i, def)
		if err != nil {
			return nil, err
		}
		fx.Frame.Planes = append(fx.Frame.Planes, plane)
		fx.PlaneColors[plane.ID] = lookupColor(def.Color)
	}

	for i, def := range ff.Estimated {
		a, err := ParseAlignment(def.Alignment)
		if err != nil {
			return nil, fmt.Errorf("estimated surface %d: %w", i, err)
		}
		fx.Frame.Estimated = append(fx.Frame.Estimated, EstimatedSurface{
			Alignment: a,
			Point:     vec3(def.Point),
			Yaw:       def.Yaw,
		})
	}

	for _, def := range ff.Objects {
		scene.AddObject(loadObject(def))
	}

	return fx, nil
}

func loadPlane(i int, def planeDef) (PlaneAnchor, error) {
	a, err := ParseAlignment(def.Alignment)
	if err != nil {
		return PlaneAnchor{}, fmt.Errorf("plane %d (%s): %w", i, def.Name, err)
	}

	var id engine.AnchorID
	switch {
	case def.ID != "":
		id, err = engine.ParseAnchorID(def.ID)
		if err != nil {
			return PlaneAnchor{}, fmt.Errorf("plane %d (%s): bad id: %w", i, def.Name, err)
		}
	case def.Name != "":
		id = engine.AnchorIDFromName(def.Name)
	default:
		id = engine.NewAnchorID()
	}

	return PlaneAnchor{
		ID:        id,
		Name:      def.Name,
		Alignment: a,
		Center:    vec3(def.Center),
		Extent:    rl.Vector2{X: def.Extent[0], Y: def.Extent[1]},
		Yaw:       def.Yaw,
	}, nil
}

// loadObject builds a single-box object whose origin sits at the bottom
// face, so placing it on a surface hit rests it on that surface.
func loadObject(def objectDef) *engine.VirtualObject {
	obj := engine.NewVirtualObject(def.Name)
	obj.Tags = def.Tags
	obj.Transform.Position = vec3(def.Position)
	obj.Transform.Rotation = vec3(def.Rotation)

	size := vec3(def.Size)
	if size == (rl.Vector3{}) {
		size = rl.Vector3{X: 0.2, Y: 0.2, Z: 0.2}
	}
	obj.Root.Bounds = physics.NewAABBFromCenter(rl.Vector3{Y: size.Y / 2}, size)
	obj.Root.Color = lookupColor(def.Color)
	return obj
}
