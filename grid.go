package marquee

import "fmt"

// LightHandle is the rendering side of one LED. Sync calls SetVisible on
// every bound handle once per tick.
type LightHandle interface {
	SetVisible(visible bool)
}

// LightCell is one LED. Its address and position never change; only
// Visible is rewritten, once per tick.
type LightCell struct {
	Key      Key
	Col, Row int
	Position Vec3
	Handle   LightHandle
	Visible  bool
}

// Cell returns the cell's grid address.
func (c *LightCell) Cell() Cell {
	return Cell{Col: c.Col, Row: c.Row}
}

// Grid is the fixed W×H array of light cells. Every address in
// [0,W)×[0,H) has exactly one cell for the grid's lifetime.
type Grid struct {
	width, height int
	cells         *arena[LightCell]
}

// NewGrid creates every cell of the configured grid in row-major order.
func NewGrid(cfg Config) *Grid {
	g := &Grid{
		width:  cfg.GridWidth,
		height: cfg.GridHeight,
		cells:  newArena[LightCell](cfg.GridWidth * cfg.GridHeight),
	}
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			k, c := g.cells.insert(LightCell{
				Col:      col,
				Row:      row,
				Position: cfg.CellPosition(col, row),
			})
			c.Key = k
		}
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns W×H.
func (g *Grid) Len() int { return g.cells.len() }

// InBounds reports whether (col, row) addresses a cell.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// At returns the cell at (col, row). Panics when the address is outside
// the grid, which means a caller computed an address from the wrong
// configuration.
func (g *Grid) At(col, row int) *LightCell {
	if !g.InBounds(col, row) {
		panic(fmt.Sprintf("marquee: cell (%d,%d) out of range for %dx%d grid", col, row, g.width, g.height))
	}
	c, _ := g.cells.get(g.keyFor(col, row))
	return c
}

// keyFor relies on cells being inserted row-major into a fresh arena and
// never removed.
func (g *Grid) keyFor(col, row int) Key {
	return Key(row*g.width + col + 1)
}

// ForEachCell calls fn for every cell in row-major order.
func (g *Grid) ForEachCell(fn func(*LightCell)) {
	g.cells.each(func(_ Key, c *LightCell) { fn(c) })
}

// Bind attaches a rendering handle to the cell at (col, row).
func (g *Grid) Bind(col, row int, h LightHandle) {
	g.At(col, row).Handle = h
}

// BindAll attaches the handle returned by fn to every cell.
func (g *Grid) BindAll(fn func(*LightCell) LightHandle) {
	g.ForEachCell(func(c *LightCell) { c.Handle = fn(c) })
}
