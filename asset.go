package marquee

import (
	"errors"
	"fmt"
	"image"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrGlyphNotFound is returned by loaders that have no geometry for an asset id.
var ErrGlyphNotFound = errors.New("marquee: glyph asset not found")

// GlyphAsset is loaded glyph geometry in glyph-local coordinates. The
// glyph's left ink edge sits at x=0 and its baseline cell at y=0.
type GlyphAsset struct {
	ID    string
	Shape Shape
}

// AssetLoader resolves glyph asset ids to geometry. A failed load is not
// fatal: the stage skips that glyph and keeps the rest of the batch.
type AssetLoader interface {
	LoadGlyph(assetID string) (*GlyphAsset, error)
}

// --- MapLoader ---

// MapLoader serves assets from an in-memory table.
type MapLoader map[string]Shape

// LoadGlyph returns the shape registered under assetID.
func (m MapLoader) LoadGlyph(assetID string) (*GlyphAsset, error) {
	s, ok := m[assetID]
	if !ok {
		return nil, fmt.Errorf("load glyph %q: %w", assetID, ErrGlyphNotFound)
	}
	return &GlyphAsset{ID: assetID, Shape: s}, nil
}

// --- BitmapLoader ---

// BitmapLoader voxelizes glyphs from a bitmap font face: every horizontal
// run of ink pixels becomes one box of GlyphScale height and GlyphDepth
// thickness, centered on z=0. Loaded assets are cached by id.
type BitmapLoader struct {
	face  *basicfont.Face
	scale float64
	depth float64
	cache map[string]*GlyphAsset
}

// NewBitmapLoader creates a loader over the 7×13 basic font.
func NewBitmapLoader(scale, depth float64) *BitmapLoader {
	return &BitmapLoader{
		face:  basicfont.Face7x13,
		scale: scale,
		depth: depth,
		cache: make(map[string]*GlyphAsset),
	}
}

// LoadGlyph returns the voxelized glyph for a single-character asset id, or
// the hollow fallback box for FallbackAssetID.
func (l *BitmapLoader) LoadGlyph(assetID string) (*GlyphAsset, error) {
	if a, ok := l.cache[assetID]; ok {
		return a, nil
	}
	var parts []Box
	if assetID == FallbackAssetID {
		parts = l.notdefParts()
	} else {
		r, size := utf8.DecodeRuneInString(assetID)
		if r == utf8.RuneError || size != len(assetID) {
			return nil, fmt.Errorf("load glyph %q: %w", assetID, ErrGlyphNotFound)
		}
		var err error
		parts, err = l.rasterParts(r)
		if err != nil {
			return nil, fmt.Errorf("load glyph %q: %w", assetID, err)
		}
	}
	a := &GlyphAsset{ID: assetID, Shape: NewCompound(parts...)}
	l.cache[assetID] = a
	return a, nil
}

// rasterParts converts the face's mask for r into boxes, one per ink run.
func (l *BitmapLoader) rasterParts(r rune) ([]Box, error) {
	dot := fixed.P(0, l.face.Ascent)
	dr, mask, maskp, _, ok := font.Face(l.face).Glyph(dot, r)
	if !ok || mask == nil {
		return nil, ErrGlyphNotFound
	}
	ink := inkBounds(mask, maskp, dr.Dx(), dr.Dy())
	if ink.Empty() {
		return nil, ErrGlyphNotFound
	}
	height := dr.Dy()
	var parts []Box
	for py := 0; py < height; py++ {
		run := -1
		for px := 0; px <= dr.Dx(); px++ {
			on := px < dr.Dx() && inked(mask, maskp, px, py)
			switch {
			case on && run < 0:
				run = px
			case !on && run >= 0:
				parts = append(parts, l.pixelRun(run-ink.Min.X, px-ink.Min.X, height-1-py))
				run = -1
			}
		}
	}
	return parts, nil
}

// notdefParts outlines a 4×9 pixel box.
func (l *BitmapLoader) notdefParts() []Box {
	const w, h = 4, 9
	parts := []Box{
		l.pixelRun(0, w, 0),
		l.pixelRun(0, w, h-1),
	}
	for y := 1; y < h-1; y++ {
		parts = append(parts, l.pixelRun(0, 1, y), l.pixelRun(w-1, w, y))
	}
	return parts
}

// pixelRun returns the box covering pixel columns [x0, x1) of pixel row y,
// counted up from the bottom of the glyph cell.
func (l *BitmapLoader) pixelRun(x0, x1, y int) Box {
	s, d := l.scale, l.depth/2
	return Box{
		Min: Vec3{float64(x0) * s, float64(y) * s, -d},
		Max: Vec3{float64(x1) * s, float64(y+1) * s, d},
	}
}

func inked(mask image.Image, maskp image.Point, x, y int) bool {
	_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
	return a >= 0x8000
}

// inkBounds returns the pixel rectangle covering all inked pixels.
func inkBounds(mask image.Image, maskp image.Point, w, h int) image.Rectangle {
	var out image.Rectangle
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !inked(mask, maskp, x, y) {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if out.Empty() {
				out = px
			} else {
				out = out.Union(px)
			}
		}
	}
	return out
}
