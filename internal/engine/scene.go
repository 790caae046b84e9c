package engine

// Scene is the node→object registry. Picking walks a hit node up to its root
// and looks the root up here to find which VirtualObject it belongs to.
type Scene struct {
	Name    string
	Objects []*VirtualObject
	uidMap  map[uint64]*VirtualObject
	roots   map[*Node]*VirtualObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:    name,
		Objects: make([]*VirtualObject, 0),
		uidMap:  make(map[uint64]*VirtualObject),
		roots:   make(map[*Node]*VirtualObject),
	}
}

func (s *Scene) AddObject(o *VirtualObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*VirtualObject)
	}
	if s.roots == nil {
		s.roots = make(map[*Node]*VirtualObject)
	}
	o.Scene = s
	s.Objects = append(s.Objects, o)
	s.uidMap[o.UID] = o
	if o.Root != nil {
		s.roots[o.Root] = o
	}
}

func (s *Scene) RemoveObject(o *VirtualObject) {
	for i, obj := range s.Objects {
		if obj == o {
			s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
			delete(s.uidMap, o.UID)
			if o.Root != nil {
				delete(s.roots, o.Root)
			}
			o.Scene = nil
			return
		}
	}
}

func (s *Scene) FindByUID(uid uint64) *VirtualObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *VirtualObject {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*VirtualObject {
	var result []*VirtualObject
	for _, o := range s.Objects {
		if o.HasTag(tag) {
			result = append(result, o)
		}
	}
	return result
}

// ObjectContainingNode returns the registered object whose node tree holds n,
// or nil if n belongs to nothing in this scene.
func (s *Scene) ObjectContainingNode(n *Node) *VirtualObject {
	for cur := n; cur != nil; cur = cur.Parent {
		if o, ok := s.roots[cur]; ok {
			return o
		}
	}
	return nil
}
