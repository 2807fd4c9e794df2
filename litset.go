package marquee

import (
	"fmt"
	"math/bits"
	"strings"
)

// LitSet is the set of grid addresses whose ray struck glyph geometry. It
// is a dense bitset over the grid's address space.
type LitSet struct {
	width, height int
	words         []uint64
	count         int
}

// NewLitSet creates an empty set for a width×height grid.
func NewLitSet(width, height int) *LitSet {
	return &LitSet{
		width:  width,
		height: height,
		words:  make([]uint64, (width*height+63)/64),
	}
}

// Reset empties the set.
func (s *LitSet) Reset() {
	clear(s.words)
	s.count = 0
}

// Add inserts c. Panics when c lies outside the address space.
func (s *LitSet) Add(c Cell) {
	if c.Col < 0 || c.Col >= s.width || c.Row < 0 || c.Row >= s.height {
		panic(fmt.Sprintf("marquee: lit cell %v out of range for %dx%d grid", c, s.width, s.height))
	}
	i := c.Row*s.width + c.Col
	w, b := i/64, uint64(1)<<(i%64)
	if s.words[w]&b == 0 {
		s.words[w] |= b
		s.count++
	}
}

// Contains reports whether c is lit. Addresses outside the grid are never lit.
func (s *LitSet) Contains(c Cell) bool {
	if c.Col < 0 || c.Col >= s.width || c.Row < 0 || c.Row >= s.height {
		return false
	}
	i := c.Row*s.width + c.Col
	return s.words[i/64]&(uint64(1)<<(i%64)) != 0
}

// Len returns the number of lit cells.
func (s *LitSet) Len() int {
	return s.count
}

// Width returns the grid width the set was built for.
func (s *LitSet) Width() int { return s.width }

// Height returns the grid height the set was built for.
func (s *LitSet) Height() int { return s.height }

// Cells returns the lit addresses in row-major order.
func (s *LitSet) Cells() []Cell {
	out := make([]Cell, 0, s.count)
	for w, word := range s.words {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			i := w*64 + b
			out = append(out, Cell{Col: i % s.width, Row: i / s.width})
			word &^= 1 << b
		}
	}
	return out
}

// Equal reports whether s and o hold the same addresses over the same grid.
func (s *LitSet) Equal(o *LitSet) bool {
	if s.width != o.width || s.height != o.height || s.count != o.count {
		return false
	}
	for i := range s.words {
		if s.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// CopyFrom overwrites s with o. Both must share dimensions.
func (s *LitSet) CopyFrom(o *LitSet) {
	if s.width != o.width || s.height != o.height {
		panic("marquee: lit set dimensions differ")
	}
	copy(s.words, o.words)
	s.count = o.count
}

// String renders the set as rows of '#' (lit) and '.' (dark).
func (s *LitSet) String() string {
	var sb strings.Builder
	sb.Grow((s.width + 1) * s.height)
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			if s.Contains(Cell{Col: col, Row: row}) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
