package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

func newUID() uint64 {
	return nextUID.Add(1)
}

// VirtualObject is a movable object placed in the tracked scene.
//
// Anchor is a lookup key into the tracking session's anchor table. The session
// owns the anchor; the object only remembers which one is bound to it.
type VirtualObject struct {
	UID       uint64
	Name      string
	Tags      []string
	Transform Transform
	Root      *Node
	Anchor    AnchorID
	Scene     *Scene
}

func NewVirtualObject(name string) *VirtualObject {
	obj := &VirtualObject{
		UID:       newUID(),
		Name:      name,
		Transform: NewTransform(),
	}
	obj.Root = NewNode(name)
	return obj
}

// WorldTransform is the object's current pose in world space.
func (o *VirtualObject) WorldTransform() rl.Matrix {
	return o.Transform.Matrix()
}

// SetWorldPosition moves the object so its origin sits at the translation of m,
// leaving rotation and scale alone.
func (o *VirtualObject) SetWorldPosition(m rl.Matrix) {
	o.Transform.Position = TranslationOf(m)
}

func (o *VirtualObject) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Nodes returns every node under Root, depth first.
func (o *VirtualObject) Nodes() []*Node {
	if o.Root == nil {
		return nil
	}
	var out []*Node
	o.Root.Walk(func(n *Node) {
		out = append(out, n)
	})
	return out
}
