package marquee

import (
	"fmt"
	"unicode"
)

// FallbackAssetID names the glyph drawn for characters the catalog does
// not know. Loaders render it as a hollow box.
const FallbackAssetID = "notdef"

// GlyphEntry is one catalog row: the glyph asset to spawn and the
// horizontal advance consumed by the character. An empty AssetID means the
// character advances without producing a glyph (whitespace).
type GlyphEntry struct {
	AssetID string
	Advance float64
}

// Visible reports whether the entry spawns a glyph.
func (e GlyphEntry) Visible() bool {
	return e.AssetID != ""
}

// Catalog maps characters to glyph entries. Resolve never fails.
type Catalog struct {
	entries  map[rune]GlyphEntry
	fallback GlyphEntry
	space    GlyphEntry
}

// NewCatalog builds a catalog from entries keyed by uppercase letters or
// other characters. fallbackAdvance and spaceAdvance must be positive.
// Panics on a non-positive advance, which is a configuration bug.
func NewCatalog(entries map[rune]GlyphEntry, fallbackAdvance, spaceAdvance float64) *Catalog {
	if fallbackAdvance <= 0 || spaceAdvance <= 0 {
		panic("marquee: catalog advances must be positive")
	}
	c := &Catalog{
		entries:  make(map[rune]GlyphEntry, len(entries)),
		fallback: GlyphEntry{AssetID: FallbackAssetID, Advance: fallbackAdvance},
		space:    GlyphEntry{Advance: spaceAdvance},
	}
	for r, e := range entries {
		if e.Advance <= 0 {
			panic(fmt.Sprintf("marquee: catalog advance for %q must be positive", r))
		}
		c.entries[unicode.ToUpper(r)] = e
	}
	return c
}

// Resolve returns the entry for r. Letters are case-insensitive,
// whitespace advances without a glyph, and anything else unknown maps to
// the fallback entry.
func (c *Catalog) Resolve(r rune) GlyphEntry {
	if unicode.IsSpace(r) {
		return c.space
	}
	if e, ok := c.entries[unicode.ToUpper(r)]; ok {
		return e
	}
	return c.fallback
}

// Fallback returns the entry used for unsupported characters.
func (c *Catalog) Fallback() GlyphEntry {
	return c.fallback
}

// Len returns the number of explicitly supported characters.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// defaultAdvances holds the built-in advance widths in world units. The
// asset id of each entry is the character itself.
var defaultAdvances = map[rune]float64{
	'A': 0.57, 'B': 0.50, 'C': 0.52, 'D': 0.54, 'E': 0.47, 'F': 0.45,
	'G': 0.55, 'H': 0.55, 'I': 0.36, 'J': 0.42, 'K': 0.52, 'L': 0.44,
	'M': 0.60, 'N': 0.55, 'O': 0.57, 'P': 0.49, 'Q': 0.57, 'R': 0.51,
	'S': 0.48, 'T': 0.48, 'U': 0.54, 'V': 0.55, 'W': 0.60, 'X': 0.54,
	'Y': 0.52, 'Z': 0.49,

	'0': 0.50, '1': 0.42, '2': 0.50, '3': 0.50, '4': 0.50,
	'5': 0.50, '6': 0.50, '7': 0.50, '8': 0.50, '9': 0.50,

	'!': 0.30, '?': 0.46, '.': 0.28, ',': 0.28, ':': 0.28, ';': 0.28,
	'-': 0.40, '+': 0.48, '=': 0.48, '*': 0.46, '/': 0.44, '\'': 0.26,
	'"': 0.38, '(': 0.34, ')': 0.34, '#': 0.52, '&': 0.56, '@': 0.60,
	'%': 0.56, '$': 0.50, '_': 0.50, '<': 0.46, '>': 0.46,
}

const (
	defaultFallbackAdvance = 0.30
	defaultSpaceAdvance    = 0.30
)

var defaultCatalog = func() *Catalog {
	entries := make(map[rune]GlyphEntry, len(defaultAdvances))
	for r, adv := range defaultAdvances {
		entries[r] = GlyphEntry{AssetID: string(r), Advance: adv}
	}
	return NewCatalog(entries, defaultFallbackAdvance, defaultSpaceAdvance)
}()

// DefaultCatalog returns the built-in catalog covering A–Z, 0–9 and common
// punctuation. The catalog is shared and must not be modified.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}
