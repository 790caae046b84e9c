package perception

import (
	"fmt"
	"strings"

	"arplace/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HitKind is a bit set of ray-cast result types. A single candidate carries
// exactly one bit; a query passes the union of the kinds it wants back.
type HitKind uint8

const (
	// ExistingPlaneUsingGeometry hits a detected plane inside its observed boundary.
	ExistingPlaneUsingGeometry HitKind = 1 << iota
	// ExistingPlane hits a detected plane treated as infinitely large.
	ExistingPlane
	// EstimatedHorizontalPlane hits a horizontal surface inferred without a plane anchor.
	EstimatedHorizontalPlane
	// EstimatedVerticalPlane hits a vertical surface inferred without a plane anchor.
	EstimatedVerticalPlane
)

func (k HitKind) Has(other HitKind) bool {
	return k&other != 0
}

func (k HitKind) String() string {
	names := []struct {
		kind HitKind
		name string
	}{
		{ExistingPlaneUsingGeometry, "existingPlaneUsingGeometry"},
		{ExistingPlane, "existingPlane"},
		{EstimatedHorizontalPlane, "estimatedHorizontalPlane"},
		{EstimatedVerticalPlane, "estimatedVerticalPlane"},
	}
	var parts []string
	for _, n := range names {
		if k.Has(n.kind) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

type Alignment uint8

const (
	Horizontal Alignment = iota
	Vertical
)

func (a Alignment) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Alignment(%d)", uint8(a))
	}
}

func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("unknown alignment %q", s)
	}
}

// AlignmentSet is a set of allowed surface alignments.
type AlignmentSet uint8

// BothAlignments allows horizontal and vertical surfaces.
var BothAlignments = NewAlignmentSet(Horizontal, Vertical)

func NewAlignmentSet(alignments ...Alignment) AlignmentSet {
	var s AlignmentSet
	for _, a := range alignments {
		s |= 1 << a
	}
	return s
}

func (s AlignmentSet) Contains(a Alignment) bool {
	return s&(1<<a) != 0
}

func (s AlignmentSet) IsEmpty() bool {
	return s == 0
}

func (s AlignmentSet) With(a Alignment) AlignmentSet {
	return s | 1<<a
}

func (s AlignmentSet) Without(a Alignment) AlignmentSet {
	return s &^ (1 << a)
}

func (s AlignmentSet) String() string {
	var parts []string
	for _, a := range []Alignment{Horizontal, Vertical} {
		if s.Contains(a) {
			parts = append(parts, a.String())
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// UnmarshalText parses a comma separated list such as "horizontal,vertical".
// An empty string or "none" yields the empty set.
func (s *AlignmentSet) UnmarshalText(text []byte) error {
	var out AlignmentSet
	raw := strings.TrimSpace(string(text))
	if raw == "" || strings.EqualFold(raw, "none") {
		*s = out
		return nil
	}
	for _, part := range strings.Split(raw, ",") {
		a, err := ParseAlignment(part)
		if err != nil {
			return err
		}
		out = out.With(a)
	}
	*s = out
	return nil
}

func (s AlignmentSet) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Candidate is one ray-cast result. Candidates are produced per query and
// never mutated by the consumer.
type Candidate struct {
	Kind           HitKind
	WorldTransform rl.Matrix
	Distance       float32 // From the camera, in scene units
	Alignment      Alignment
	PlaneAnchor    engine.AnchorID // Zero for estimated surfaces
}

// Position returns the candidate's world-space hit point.
func (c Candidate) Position() rl.Vector3 {
	return engine.TranslationOf(c.WorldTransform)
}

// RayCaster answers screen-point ray casts against the current frame.
// Results are ordered near to far.
type RayCaster interface {
	RayCast(point rl.Vector2, kinds HitKind) []Candidate
}

// BoundsHitTester intersects a screen point with the bounding volumes of the
// scene's renderable nodes, nearest first.
type BoundsHitTester interface {
	HitTestBounds(point rl.Vector2) []*engine.Node
}
