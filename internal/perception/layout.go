package perception

import (
	"encoding/json"
	"fmt"
	"os"

	"arplace/internal/engine"
)

// LayoutFile records where each object in a scene was last placed.
type LayoutFile struct {
	Objects []placementDef `json:"objects"`
}

type placementDef struct {
	Name     string     `json:"name"`
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
}

func SaveLayout(path string, scene *engine.Scene) error {
	var lf LayoutFile
	for _, o := range scene.Objects {
		p, r := o.Transform.Position, o.Transform.Rotation
		lf.Objects = append(lf.Objects, placementDef{
			Name:     o.Name,
			Position: [3]float32{p.X, p.Y, p.Z},
			Rotation: [3]float32{r.X, r.Y, r.Z},
		})
	}

	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}

func LoadLayout(path string) (*LayoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var lf LayoutFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	return &lf, nil
}

// Apply moves each named object to its saved transform and returns how many
// were moved. Names missing from the scene are skipped.
func (l *LayoutFile) Apply(scene *engine.Scene) int {
	moved := 0
	for _, def := range l.Objects {
		o := scene.FindByName(def.Name)
		if o == nil {
			continue
		}
		o.Transform.Position = vec3(def.Position)
		o.Transform.Rotation = vec3(def.Rotation)
		moved++
	}
	return moved
}
