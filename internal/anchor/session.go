// Package anchor keeps each virtual object bound to exactly one anchor in the
// tracking session.
package anchor

import (
	"sync"

	"arplace/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Session is the tracking session's anchor table. It owns anchor lifetime.
type Session interface {
	AddAnchor(transform rl.Matrix) engine.AnchorID
	RemoveAnchor(id engine.AnchorID)
}

type Anchor struct {
	ID        engine.AnchorID
	Transform rl.Matrix
}

func (a Anchor) Position() rl.Vector3 {
	return engine.TranslationOf(a.Transform)
}

// MemorySession is an in-process Session. Anchors are listed in the order
// they were added.
type MemorySession struct {
	mu      sync.Mutex
	anchors map[engine.AnchorID]Anchor
	order   []engine.AnchorID
}

func NewMemorySession() *MemorySession {
	return &MemorySession{
		anchors: make(map[engine.AnchorID]Anchor),
	}
}

func (s *MemorySession) AddAnchor(transform rl.Matrix) engine.AnchorID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.anchors == nil {
		s.anchors = make(map[engine.AnchorID]Anchor)
	}
	id := engine.NewAnchorID()
	s.anchors[id] = Anchor{ID: id, Transform: transform}
	s.order = append(s.order, id)
	return id
}

// RemoveAnchor drops id from the session. Unknown IDs are ignored.
func (s *MemorySession) RemoveAnchor(id engine.AnchorID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.anchors[id]; !ok {
		return
	}
	delete(s.anchors, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *MemorySession) Anchor(id engine.AnchorID) (Anchor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.anchors[id]
	return a, ok
}

func (s *MemorySession) Anchors() []Anchor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Anchor, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.anchors[id])
	}
	return out
}

func (s *MemorySession) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.anchors)
}
