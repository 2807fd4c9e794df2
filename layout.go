package marquee

// Placement is one glyph in a layout: the asset to spawn and its x offset
// along the stage. Index is the rune's position in the source text.
type Placement struct {
	AssetID string
	Offset  float64
	Rune    rune
	Index   int
}

// LayoutResult is the ordered placement list for one text string.
type LayoutResult struct {
	Placements []Placement
	// Width is the total advance consumed, including whitespace.
	Width float64
	// Runes is the number of characters laid out, including whitespace.
	Runes int
}

// Layout places each character of text at a running offset that starts at
// baseOffset and grows by each character's advance. Whitespace advances
// without emitting a placement. Layout has no side effects; identical
// inputs yield identical results.
func Layout(text string, cat *Catalog, baseOffset float64) LayoutResult {
	if cat == nil {
		cat = DefaultCatalog()
	}
	var res LayoutResult
	offset := baseOffset
	i := 0
	for _, r := range text {
		e := cat.Resolve(r)
		if e.Visible() {
			res.Placements = append(res.Placements, Placement{
				AssetID: e.AssetID,
				Offset:  offset,
				Rune:    r,
				Index:   i,
			})
		}
		offset += e.Advance
		i++
	}
	res.Width = offset - baseOffset
	res.Runes = i
	return res
}
