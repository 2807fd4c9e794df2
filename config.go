package marquee

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("marquee: invalid config")

// Config holds the constants the pipeline depends on. Start from
// DefaultConfig and override fields, or load JSON with LoadConfig.
type Config struct {
	// Grid dimensions in cells.
	GridWidth  int `json:"gridWidth"`
	GridHeight int `json:"gridHeight"`
	// CellPitch is the world distance between adjacent columns and rows.
	CellPitch float64 `json:"cellPitch"`
	// GridOrigin is the world position of cell (0, 0). Columns grow along
	// +X and rows along -Y.
	GridOrigin Vec3 `json:"gridOrigin"`
	// ScanDirection is the direction every scan ray travels.
	ScanDirection Vec3 `json:"scanDirection"`

	// ScrollVelocity is the leftward stage speed in world units per
	// second. Zero freezes the stage.
	ScrollVelocity float64 `json:"scrollVelocity"`
	// BaseOffset is the x offset of the first character on the stage.
	BaseOffset float64 `json:"baseOffset"`
	// StageBaseX, StageY and StageZ place glyphs relative to the stage.
	StageBaseX float64 `json:"stageBaseX"`
	StageY     float64 `json:"stageY"`
	StageZ     float64 `json:"stageZ"`

	// GlyphScale is the world size of one glyph bitmap pixel and
	// GlyphDepth the glyph thickness along Z.
	GlyphScale float64 `json:"glyphScale"`
	GlyphDepth float64 `json:"glyphDepth"`

	// The stage recycles once its translation drops below
	// -(BaseOffset + margin), with margin = RecycleLeadOut +
	// RecyclePerGlyph*runes unless RecycleMargin is set.
	RecycleLeadOut  float64                                `json:"recycleLeadOut"`
	RecyclePerGlyph float64                                `json:"recyclePerGlyph"`
	RecycleMargin   func(runes int, width float64) float64 `json:"-"`

	// InitialText is committed before the first tick.
	InitialText string `json:"initialText"`
	// MaxTextLength caps committed text in runes; 0 means unlimited.
	MaxTextLength int `json:"maxTextLength"`
	// Backboard adds a scene-layer panel behind the glyphs.
	Backboard bool `json:"backboard"`

	// Catalog resolves characters; nil selects DefaultCatalog.
	Catalog *Catalog `json:"-"`
}

// DefaultConfig returns the reference configuration: a 101×25 grid at
// 0.04 pitch spanning x∈[0,4], scanned along -Z toward glyphs at z=0.
func DefaultConfig() Config {
	return Config{
		GridWidth:       101,
		GridHeight:      25,
		CellPitch:       0.04,
		GridOrigin:      Vec3{0, 0.98, 1},
		ScanDirection:   Vec3{0, 0, -1},
		ScrollVelocity:  0.8,
		BaseOffset:      2.2,
		StageY:          0.1,
		GlyphScale:      0.06,
		GlyphDepth:      0.1,
		RecycleLeadOut:  1.0,
		RecyclePerGlyph: 0.5,
		InitialText:     "HELLO",
		MaxTextLength:   64,
		Backboard:       true,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.GridWidth <= 0 || c.GridHeight <= 0:
		return fmt.Errorf("%w: grid %dx%d must be positive", ErrInvalidConfig, c.GridWidth, c.GridHeight)
	case !(c.CellPitch > 0):
		return fmt.Errorf("%w: cell pitch %v must be positive", ErrInvalidConfig, c.CellPitch)
	case c.ScanDirection.Len() == 0 || math.IsNaN(c.ScanDirection.Len()):
		return fmt.Errorf("%w: scan direction must be non-zero", ErrInvalidConfig)
	case c.ScrollVelocity < 0 || math.IsNaN(c.ScrollVelocity):
		return fmt.Errorf("%w: scroll velocity %v must not be negative", ErrInvalidConfig, c.ScrollVelocity)
	case !(c.GlyphScale > 0) || !(c.GlyphDepth > 0):
		return fmt.Errorf("%w: glyph scale and depth must be positive", ErrInvalidConfig)
	case c.MaxTextLength < 0:
		return fmt.Errorf("%w: max text length %d must not be negative", ErrInvalidConfig, c.MaxTextLength)
	}
	if c.RecycleMargin == nil && c.BaseOffset+c.RecycleLeadOut <= 0 {
		return fmt.Errorf("%w: recycle threshold must lie left of the stage origin", ErrInvalidConfig)
	}
	return nil
}

// margin returns the distance past BaseOffset the stage scrolls before
// recycling, for text of the given rune count and layout width.
func (c Config) margin(runes int, width float64) float64 {
	if c.RecycleMargin != nil {
		return c.RecycleMargin(runes, width)
	}
	return c.RecycleLeadOut + c.RecyclePerGlyph*float64(runes)
}

// RecycleThreshold returns the stage x-translation below which the stage
// recycles. Longer text scrolls further.
func (c Config) RecycleThreshold(runes int, width float64) float64 {
	return -(c.BaseOffset + c.margin(runes, width))
}

// RecycleTime returns the scroll time from a fresh batch to recycling, or
// +Inf when the stage does not move.
func (c Config) RecycleTime(runes int, width float64) float64 {
	if c.ScrollVelocity <= 0 {
		return math.Inf(1)
	}
	return (c.BaseOffset + c.margin(runes, width)) / c.ScrollVelocity
}

// CellPosition maps a grid address to its world position.
func (c Config) CellPosition(col, row int) Vec3 {
	return c.GridOrigin.Add(Vec3{float64(col) * c.CellPitch, -float64(row) * c.CellPitch, 0})
}

func (c Config) catalog() *Catalog {
	if c.Catalog != nil {
		return c.Catalog
	}
	return DefaultCatalog()
}

// LoadConfig parses JSON over DefaultConfig, so omitted fields keep their
// defaults, and validates the result.
func LoadConfig(jsonData []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a JSON config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return LoadConfig(data)
}
