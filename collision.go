package marquee

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// QueryFilter scopes a ray query. Only bodies whose Layer intersects Layers
// are considered; Exclude, when set, can reject individual bodies.
type QueryFilter struct {
	Layers  Layer
	Exclude func(*Node) bool
}

// GlyphFilter accepts glyph colliders only.
var GlyphFilter = QueryFilter{Layers: LayerGlyph}

func (f QueryFilter) accepts(n *Node) bool {
	if n.Layer&f.Layers == 0 {
		return false
	}
	if f.Exclude != nil && f.Exclude(n) {
		return false
	}
	return true
}

// RayHit describes one ray/body intersection in world space.
type RayHit struct {
	Node     *Node
	Distance float64
	Point    Vec3
}

// RayCaster is the collision backend consumed by the scan. It answers
// whether a ray strikes any body accepted by filter. A non-nil error is a
// backend failure; callers treat it as a miss.
type RayCaster interface {
	CastRay(ray Ray, maxDist float64, filter QueryFilter) (RayHit, bool, error)
}

// IntersectionVisitor is implemented by backends that can report every
// intersection along a ray. fn returns false to stop early.
type IntersectionVisitor interface {
	ForEachIntersection(ray Ray, maxDist float64, filter QueryFilter, fn func(RayHit) bool) error
}

// Refresher is implemented by backends that cache scene state between
// ticks. Refresh is called once per tick after world transforms update.
type Refresher interface {
	Refresh()
}

// collider is a body with its world-space bounding box cached for the
// broad phase.
type collider struct {
	node   *Node
	bounds Box
}

// SceneCaster answers ray queries against the bodies of a node tree. Each
// body's shape is tested in the body's local space by transforming the ray
// with the inverse world matrix.
type SceneCaster struct {
	root      *Node
	colliders []collider
}

// NewSceneCaster creates a caster over root's subtree. Call Refresh after
// the tree or its transforms change.
func NewSceneCaster(root *Node) *SceneCaster {
	c := &SceneCaster{root: root}
	c.Refresh()
	return c
}

// Refresh re-collects bodies and their world bounds. World transforms must
// already be up to date.
func (c *SceneCaster) Refresh() {
	c.colliders = c.collect(c.root, c.colliders[:0])
}

// Len returns the number of bodies collected by the last Refresh.
func (c *SceneCaster) Len() int {
	return len(c.colliders)
}

// collect walks the tree in DFS order, appending visible bodies to buf.
// Invisible subtrees and collapsed (zero-scale) bodies are skipped.
func (c *SceneCaster) collect(n *Node, buf []collider) []collider {
	if n == nil || !n.Visible || n.disposed {
		return buf
	}
	if n.Shape != nil && n.Layer != LayerNone && math.Abs(n.worldTransform.Det()) >= 1e-12 {
		buf = append(buf, collider{node: n, bounds: worldBounds(n)})
	}
	for _, child := range n.children {
		buf = c.collect(child, buf)
	}
	return buf
}

// CastRay returns the nearest hit among accepted bodies.
func (c *SceneCaster) CastRay(ray Ray, maxDist float64, filter QueryFilter) (RayHit, bool, error) {
	var best RayHit
	found := false
	limit := maxDist
	err := c.ForEachIntersection(ray, maxDist, filter, func(h RayHit) bool {
		if h.Distance <= limit {
			best, found, limit = h, true, h.Distance
		}
		return true
	})
	return best, found, err
}

// ForEachIntersection reports every accepted body the ray enters within
// maxDist, in collection order.
func (c *SceneCaster) ForEachIntersection(ray Ray, maxDist float64, filter QueryFilter, fn func(RayHit) bool) error {
	for i := range c.colliders {
		col := &c.colliders[i]
		if !filter.accepts(col.node) {
			continue
		}
		if _, ok := col.bounds.IntersectRay(ray, maxDist); !ok {
			continue
		}
		local := col.node.rayToLocal(ray)
		t, ok := col.node.Shape.IntersectRay(local, maxDist)
		if !ok {
			continue
		}
		if !fn(RayHit{Node: col.node, Distance: t, Point: ray.At(t)}) {
			return nil
		}
	}
	return nil
}

// worldBounds transforms the eight corners of a body's local bounds into
// world space and returns their enclosing box.
func worldBounds(n *Node) Box {
	lb := n.Shape.Bounds()
	out := Box{
		Min: Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	for i := 0; i < 8; i++ {
		corner := lb.Min
		if i&1 != 0 {
			corner[0] = lb.Max[0]
		}
		if i&2 != 0 {
			corner[1] = lb.Max[1]
		}
		if i&4 != 0 {
			corner[2] = lb.Max[2]
		}
		w := mgl64.TransformCoordinate(corner, n.worldTransform)
		out = out.Union(Box{Min: w, Max: w})
	}
	return out
}
