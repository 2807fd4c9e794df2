package marquee

import (
	"github.com/tanema/gween/ease"
)

// GlyphInstance is one spawned glyph. Instances are owned by the Stage and
// live exactly as long as their batch.
type GlyphInstance struct {
	Key     Key
	AssetID string
	Batch   uint64
	// Index is the rune position of the glyph in the committed text.
	Index int
	Node  *Node
}

// Stage owns the live glyph batch for the committed text and scrolls it
// leftward. It is the only component that creates or destroys glyph
// instances.
type Stage struct {
	cfg     Config
	catalog *Catalog
	loader  AssetLoader
	emit    func(Event)

	node      *Node
	instances *arena[GlyphInstance]
	batch     uint64
	text      string
	layout    LayoutResult
	threshold float64
	scroll    *TweenGroup
	elapsed   float64 // seconds scrolled in this batch
	duration  float64 // seconds from origin to threshold
	recycles  uint64
}

func newStage(cfg Config, loader AssetLoader, emit func(Event)) *Stage {
	if emit == nil {
		emit = func(Event) {}
	}
	return &Stage{
		cfg:       cfg,
		catalog:   cfg.catalog(),
		loader:    loader,
		emit:      emit,
		node:      NewContainer("stage"),
		instances: newArena[GlyphInstance](32),
	}
}

// Node returns the stage container. All glyph bodies are its children and
// share its scroll translation.
func (s *Stage) Node() *Node {
	return s.node
}

// Text returns the text of the live batch.
func (s *Stage) Text() string {
	return s.text
}

// Batch returns the live batch number; 0 before the first Replace.
func (s *Stage) Batch() uint64 {
	return s.batch
}

// Layout returns the layout of the live batch.
func (s *Stage) Layout() LayoutResult {
	return s.layout
}

// Threshold returns the x-translation at which the live batch recycles.
func (s *Stage) Threshold() float64 {
	return s.threshold
}

// OffsetX returns the current stage x-translation.
func (s *Stage) OffsetX() float64 {
	return s.node.X
}

// Recycles returns how many times the stage has scrolled out and respawned.
func (s *Stage) Recycles() uint64 {
	return s.recycles
}

// Len returns the number of live glyph instances.
func (s *Stage) Len() int {
	return s.instances.len()
}

// Instance returns the live instance stored under k.
func (s *Stage) Instance(k Key) (*GlyphInstance, bool) {
	return s.instances.get(k)
}

// Each calls fn for every live glyph instance.
func (s *Stage) Each(fn func(*GlyphInstance)) {
	s.instances.each(func(_ Key, g *GlyphInstance) { fn(g) })
}

// Replace destroys the live batch and spawns a new one for text. Glyphs
// whose asset fails to load are skipped; the rest of the batch spawns.
func (s *Stage) Replace(text string) {
	s.despawn()

	s.batch++
	s.text = text
	s.layout = Layout(text, s.catalog, s.cfg.BaseOffset)
	s.node.SetPosition(0, 0, 0)

	for _, p := range s.layout.Placements {
		asset, err := s.loader.LoadGlyph(p.AssetID)
		if err == nil && (asset == nil || asset.Shape == nil) {
			err = ErrGlyphNotFound
		}
		if err != nil {
			Logger().Warn("marquee: glyph skipped", "asset", p.AssetID, "index", p.Index, "batch", s.batch, "err", err)
			s.emit(Event{Type: EventGlyphSkipped, Batch: s.batch, AssetID: p.AssetID, Index: p.Index, Err: err})
			continue
		}

		body := NewBody(p.AssetID, asset.Shape, LayerGlyph)
		body.SetPosition(s.cfg.StageBaseX+p.Offset, s.cfg.StageY, s.cfg.StageZ)
		s.node.AddChild(body)

		key, inst := s.instances.insert(GlyphInstance{
			AssetID: p.AssetID,
			Batch:   s.batch,
			Index:   p.Index,
			Node:    body,
		})
		inst.Key = key
		body.UserData = key
		s.emit(Event{
			Type: EventGlyphSpawned, Batch: s.batch, Key: key, AssetID: p.AssetID, Index: p.Index,
			Position: Vec3{body.X, body.Y, body.Z},
		})
	}

	s.threshold = s.cfg.RecycleThreshold(s.layout.Runes, s.layout.Width)
	s.startScroll()

	Logger().Debug("marquee: batch spawned", "batch", s.batch, "glyphs", s.instances.len(), "threshold", s.threshold)
	s.emit(Event{Type: EventBatchSpawned, Batch: s.batch, Text: text, Glyphs: s.instances.len()})
}

// Tick scrolls the stage by ScrollVelocity·dt. When the translation
// reaches the recycle threshold the current text is respawned from the
// start, and the part of dt past the threshold is applied to the new
// batch. Tick reports whether it recycled.
func (s *Stage) Tick(dt float64) bool {
	if s.scroll == nil || dt <= 0 {
		return false
	}
	s.advance(dt)
	if !s.scroll.Done {
		return false
	}
	over := s.elapsed - s.duration
	s.recycles++
	Logger().Debug("marquee: stage recycled", "batch", s.batch, "recycles", s.recycles, "carry", over)
	s.emit(Event{Type: EventStageRecycled, Batch: s.batch, Text: s.text})
	s.Replace(s.text)
	if over > 0 && s.scroll != nil {
		s.advance(over)
	}
	return true
}

// advance moves the scroll tween forward without checking for a recycle.
// An overshoot that finishes the new tween recycles on the next Tick.
func (s *Stage) advance(dt float64) {
	s.elapsed += dt
	s.scroll.Update(float32(dt))
}

// startScroll begins a linear tween from the stage origin to the
// threshold, paced so the stage moves at ScrollVelocity.
func (s *Stage) startScroll() {
	s.scroll = nil
	s.elapsed, s.duration = 0, 0
	if s.cfg.ScrollVelocity <= 0 {
		return
	}
	if s.threshold >= 0 {
		Logger().Warn("marquee: recycle threshold is not left of the stage origin; scrolling disabled", "threshold", s.threshold)
		return
	}
	s.duration = -s.threshold / s.cfg.ScrollVelocity
	s.scroll = TweenX(s.node, s.threshold, float32(s.duration), ease.Linear)
}

// despawn disposes every instance of the live batch.
func (s *Stage) despawn() {
	if s.batch == 0 {
		return
	}
	n := s.instances.len()
	s.instances.each(func(k Key, g *GlyphInstance) {
		g.Node.Dispose()
		s.emit(Event{Type: EventGlyphDespawned, Batch: g.Batch, Key: k, AssetID: g.AssetID, Index: g.Index})
	})
	s.instances.clear()
	s.emit(Event{Type: EventBatchDespawned, Batch: s.batch, Text: s.text, Glyphs: n})
}
