package marquee

import "math"

// Frame is the per-tick context threaded from the scan to the visibility
// sync. The scanner is the only writer of Lit; the sync only reads it.
type Frame struct {
	Tick uint64
	DT   float64
	Lit  *LitSet
	// Rays is the number of queries issued this tick and Failures the
	// number the backend reported as errors (counted as misses).
	Rays     int
	Failures int
}

// Scanner fires one ray per grid cell and records which cells strike
// glyph geometry.
type Scanner struct {
	caster RayCaster
	dir    Vec3
	filter QueryFilter
}

// NewScanner creates a scanner that casts from each cell along dir,
// restricted to glyph colliders.
func NewScanner(caster RayCaster, dir Vec3) *Scanner {
	return &Scanner{caster: caster, dir: dir, filter: GlyphFilter}
}

// SetCaster replaces the collision backend.
func (s *Scanner) SetCaster(c RayCaster) {
	s.caster = c
}

// Scan rebuilds f.Lit from scratch for the current geometry.
func (s *Scanner) Scan(grid *Grid, f *Frame) {
	f.Rays, f.Failures = ScanCells(s.caster, grid, s.dir, s.filter, f.Lit)
}

// ScanCells resets lit and casts one unbounded ray per cell of grid along
// dir. Backend errors count as misses. It returns the number of rays cast
// and the number that failed.
func ScanCells(caster RayCaster, grid *Grid, dir Vec3, filter QueryFilter, lit *LitSet) (rays, failures int) {
	lit.Reset()
	if caster == nil {
		return 0, 0
	}
	maxDist := math.Inf(1)
	grid.ForEachCell(func(c *LightCell) {
		rays++
		_, hit, err := caster.CastRay(Ray{Origin: c.Position, Dir: dir}, maxDist, filter)
		if err != nil {
			failures++
			return
		}
		if hit {
			lit.Add(c.Cell())
		}
	})
	return rays, failures
}
