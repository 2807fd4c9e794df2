package marquee

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// computeLocalTransform computes the local matrix from the node's transform
// properties.
//
// Composition order:
//
//	Scale -> RotateZ -> Translate(X, Y, Z)
func computeLocalTransform(n *Node) mgl64.Mat4 {
	m := mgl64.Translate3D(n.X, n.Y, n.Z)
	if n.Rotation != 0 {
		m = m.Mul4(mgl64.HomogRotate3DZ(n.Rotation))
	}
	if n.ScaleX != 1 || n.ScaleY != 1 || n.ScaleZ != 1 {
		m = m.Mul4(mgl64.Scale3D(n.ScaleX, n.ScaleY, n.ScaleZ))
	}
	return m
}

// invertTransform returns the inverse of m, or the identity matrix if m is
// singular (a zero scale collapses the node, and it can never be hit anyway).
func invertTransform(m mgl64.Mat4) mgl64.Mat4 {
	if math.Abs(m.Det()) < 1e-12 {
		return mgl64.Ident4()
	}
	return m.Inv()
}

// updateWorldTransform recomputes a node's world and inverse-world matrices.
// parentRecomputed forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform mgl64.Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = parentTransform.Mul4(computeLocalTransform(n))
		n.inverseWorld = invertTransform(n.worldTransform)
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, recompute)
	}
}

// UpdateWorldTransforms refreshes the world matrices of root and every
// descendant whose transform (or whose ancestor's transform) changed.
// Ray queries read world matrices, so call this after moving nodes and
// before scanning.
func UpdateWorldTransforms(root *Node) {
	updateWorldTransform(root, mgl64.Ident4(), false)
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.X = x
	n.Y = y
	n.Z = z
	n.transformDirty = true
}

// SetScale sets the node's per-axis scale and marks it dirty.
func (n *Node) SetScale(sx, sy, sz float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.ScaleZ = sz
	n.transformDirty = true
}

// SetRotation sets the node's rotation about Z (in radians) and marks it dirty.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// MarkDirty forces recomputation on the next UpdateWorldTransforms.
// Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldTransform returns the node's world matrix as of the last refresh.
func (n *Node) WorldTransform() mgl64.Mat4 {
	return n.worldTransform
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(p Vec3) Vec3 {
	return mgl64.TransformCoordinate(p, n.inverseWorld)
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p Vec3) Vec3 {
	return mgl64.TransformCoordinate(p, n.worldTransform)
}

// rayToLocal expresses a world ray in this node's local space. The
// direction is not renormalized, so a ray parameter t names the same point
// in both spaces.
func (n *Node) rayToLocal(r Ray) Ray {
	return Ray{
		Origin: mgl64.TransformCoordinate(r.Origin, n.inverseWorld),
		Dir:    mgl64.TransformNormal(r.Dir, n.inverseWorld),
	}
}
