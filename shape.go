package marquee

import "math"

// Ray is a half-line starting at Origin and travelling along Dir. Dir does
// not need to be normalized; intersection distances are in units of Dir.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Shape is collision geometry in a body's local coordinates.
type Shape interface {
	// IntersectRay returns the smallest t in [0, maxDist] where r enters
	// the shape, or false if it never does.
	IntersectRay(r Ray, maxDist float64) (float64, bool)
	// Bounds returns the local-space bounding box.
	Bounds() Box
}

// --- Box ---

// Box is an axis-aligned box in local coordinates.
type Box struct {
	Min, Max Vec3
}

// NewBox returns the box spanning the two corners in any order.
func NewBox(a, b Vec3) Box {
	return Box{
		Min: Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])},
		Max: Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])},
	}
}

// Empty reports whether the box has no volume on some axis.
func (b Box) Empty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// Size returns the box extent along each axis.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside the box. Points on a face are inside.
func (b Box) Contains(p Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Vec3{math.Min(b.Min[0], o.Min[0]), math.Min(b.Min[1], o.Min[1]), math.Min(b.Min[2], o.Min[2])},
		Max: Vec3{math.Max(b.Max[0], o.Max[0]), math.Max(b.Max[1], o.Max[1]), math.Max(b.Max[2], o.Max[2])},
	}
}

// Bounds returns b.
func (b Box) Bounds() Box { return b }

// IntersectRay implements the slab test. An axis-parallel ray that lies
// outside a slab misses; one inside it leaves the interval unchanged.
func (b Box) IntersectRay(r Ray, maxDist float64) (float64, bool) {
	tmin, tmax := 0.0, maxDist
	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Dir[axis]
		if d == 0 {
			if o < b.Min[axis] || o > b.Max[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (b.Min[axis] - o) * inv
		t2 := (b.Max[axis] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// --- Sphere ---

// Sphere is a ball in local coordinates.
type Sphere struct {
	Center Vec3
	Radius float64
}

// Bounds returns the sphere's bounding box.
func (s Sphere) Bounds() Box {
	r := Vec3{s.Radius, s.Radius, s.Radius}
	return Box{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

// IntersectRay solves |o + t·d - c|² = r² for the nearest t in range.
// A ray starting inside the sphere hits at t = 0.
func (s Sphere) IntersectRay(r Ray, maxDist float64) (float64, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Dir.Dot(r.Dir)
	if a == 0 {
		return 0, false
	}
	c := oc.Dot(oc) - s.Radius*s.Radius
	if c <= 0 {
		return 0, true
	}
	b := oc.Dot(r.Dir)
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	t := (-b - math.Sqrt(disc)) / a
	if t < 0 || t > maxDist {
		return 0, false
	}
	return t, true
}

// --- Compound ---

// Compound is a union of boxes with a cached overall bound. Glyph geometry
// is a Compound of one box per run of ink pixels.
type Compound struct {
	parts  []Box
	bounds Box
}

// NewCompound builds a compound shape from parts. Empty parts are dropped.
func NewCompound(parts ...Box) *Compound {
	c := &Compound{parts: make([]Box, 0, len(parts))}
	for _, p := range parts {
		if p.Empty() {
			continue
		}
		if len(c.parts) == 0 {
			c.bounds = p
		} else {
			c.bounds = c.bounds.Union(p)
		}
		c.parts = append(c.parts, p)
	}
	return c
}

// Parts returns the component boxes. The returned slice MUST NOT be mutated.
func (c *Compound) Parts() []Box {
	return c.parts
}

// Bounds returns the union of all parts.
func (c *Compound) Bounds() Box {
	return c.bounds
}

// IntersectRay tests the cached bound first, then returns the nearest part hit.
func (c *Compound) IntersectRay(r Ray, maxDist float64) (float64, bool) {
	if len(c.parts) == 0 {
		return 0, false
	}
	if _, ok := c.bounds.IntersectRay(r, maxDist); !ok {
		return 0, false
	}
	best, hit := maxDist, false
	for _, p := range c.parts {
		if t, ok := p.IntersectRay(r, best); ok {
			best, hit = t, true
		}
	}
	return best, hit
}
