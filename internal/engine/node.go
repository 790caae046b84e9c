package engine

import (
	"arplace/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is one renderable part of a VirtualObject. Bounds is the node's
// bounding box in its own local space; picking only ever tests against it.
type Node struct {
	UID      uint64
	Name     string
	Offset   rl.Vector3 // Local position relative to the parent node
	Bounds   physics.AABB
	Color    rl.Color
	Parent   *Node
	Children []*Node
}

func NewNode(name string) *Node {
	return &Node{
		UID:      newUID(),
		Name:     name,
		Color:    rl.White,
		Children: make([]*Node, 0),
	}
}

func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Walk visits n and all its descendants, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// LocalMatrix is the node's offset from its parent.
func (n *Node) LocalMatrix() rl.Matrix {
	return rl.MatrixTranslate(n.Offset.X, n.Offset.Y, n.Offset.Z)
}

// WorldBounds returns the node's bounding box in world space given the
// world matrix of its parent (or of the owning object for the root).
func (n *Node) WorldBounds(parent rl.Matrix) (physics.AABB, rl.Matrix) {
	world := rl.MatrixMultiply(n.LocalMatrix(), parent)
	return n.Bounds.Transform(world), world
}
