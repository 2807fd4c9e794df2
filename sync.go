package marquee

// SyncStats summarizes one visibility pass.
type SyncStats struct {
	Written int // cells written (always W×H)
	Visible int // cells switched on
	Changed int // cells whose visibility differs from the previous tick
}

// Sync sets every cell visible iff its address is in lit, and pushes the
// value to the cell's handle when one is bound. Every cell is written,
// including cells that were already dark.
func Sync(grid *Grid, lit *LitSet) SyncStats {
	var st SyncStats
	grid.ForEachCell(func(c *LightCell) {
		on := lit.Contains(c.Cell())
		if on != c.Visible {
			st.Changed++
		}
		c.Visible = on
		if c.Handle != nil {
			c.Handle.SetVisible(on)
		}
		st.Written++
		if on {
			st.Visible++
		}
	})
	return st
}
