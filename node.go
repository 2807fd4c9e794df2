package marquee

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// nodeIDCounter is a plain counter; the tick loop is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene element. Containers group children under a
// shared transform; bodies additionally carry a Shape and a collision Layer
// and are what ray queries test against.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y, Z                float64
	ScaleX, ScaleY, ScaleZ float64
	Rotation               float64 // radians about the Z axis

	// Computed, refreshed by UpdateWorldTransforms.
	worldTransform mgl64.Mat4
	inverseWorld   mgl64.Mat4
	transformDirty bool

	// Collision
	Visible bool
	Layer   Layer
	Shape   Shape

	// Metadata
	UserData any

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.ScaleZ = 1
	n.Visible = true
	n.worldTransform = mgl64.Ident4()
	n.inverseWorld = mgl64.Ident4()
	n.transformDirty = true
}

// NewContainer creates a node with no collision geometry.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Layer: LayerNone}
	nodeDefaults(n)
	return n
}

// NewBody creates a node whose shape is tested by ray queries on the given layer.
func NewBody(name string, shape Shape, layer Layer) *Node {
	n := &Node{Name: name, Shape: shape, Layer: layer}
	nodeDefaults(n)
	return n
}

// AddChild attaches child under n, detaching it from any previous parent.
// Panics on a nil child or when child is n or one of n's ancestors.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("marquee: nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	for p := n; p != nil; p = p.Parent {
		if p == child {
			panic("marquee: node cycle")
		}
	}
	child.detach()
	child.Parent = n
	n.children = append(n.children, child)
	child.invalidate()
}

// RemoveChild detaches child. Panics when child is not a child of n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("marquee: remove of foreign child")
	}
	child.detach()
	child.invalidate()
}

// RemoveFromParent detaches n. It does nothing for a root.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Children returns the child list. Callers must not modify it.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns len(Children()).
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Dispose detaches n and releases it with its whole subtree. Disposed
// nodes drop their shapes and are never hit by a ray. Repeat calls are
// no-ops.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.release()
}

func (n *Node) release() {
	for _, c := range n.children {
		c.release()
	}
	*n = Node{Name: n.Name, disposed: true}
}

// IsDisposed reports whether Dispose has run on n or an ancestor.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// detach unlinks n from its parent's child list and clears n.Parent.
func (n *Node) detach() {
	p := n.Parent
	if p == nil {
		return
	}
	if i := slices.Index(p.children, n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.Parent = nil
}

// invalidate flags n's subtree for a world transform recompute.
func (n *Node) invalidate() {
	n.transformDirty = true
	for _, c := range n.children {
		c.invalidate()
	}
}
