package marquee

import (
	"fmt"
	"time"
)

// Stats is a readout of the most recent tick.
type Stats struct {
	Tick     uint64
	Batch    uint64
	Glyphs   int
	Recycles uint64
	Rays     int
	Failures int
	Lit      int
	Changed  int
}

// String formats the stats for a status line.
func (s Stats) String() string {
	return fmt.Sprintf("tick %d  batch %d  glyphs %d  lit %d/%d rays  recycles %d",
		s.Tick, s.Batch, s.Glyphs, s.Lit, s.Rays, s.Recycles)
}

// Marquee is the top-level object that owns the node tree, the glyph
// stage, the LED grid and the per-tick scan.
type Marquee struct {
	cfg   Config
	root  *Node
	stage *Stage
	board *Node
	grid  *Grid

	caster  RayCaster
	scanner *Scanner
	frame   Frame
	inbox   inbox
	store   EntityStore
	debug   bool
	stats   Stats
}

// New creates a marquee for cfg. A nil loader selects a BitmapLoader sized
// by cfg.GlyphScale and cfg.GlyphDepth. cfg.InitialText, when set, is
// committed for the first tick.
func New(cfg Config, loader AssetLoader) (*Marquee, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if loader == nil {
		loader = NewBitmapLoader(cfg.GlyphScale, cfg.GlyphDepth)
	}
	m := &Marquee{
		cfg:  cfg,
		root: NewContainer("root"),
		grid: NewGrid(cfg),
	}
	m.stage = newStage(cfg, loader, m.emit)
	m.root.AddChild(m.stage.Node())
	if cfg.Backboard {
		m.board = newBackboard(cfg)
		m.root.AddChild(m.board)
	}
	sc := NewSceneCaster(m.root)
	m.caster = sc
	m.scanner = NewScanner(sc, cfg.ScanDirection)
	m.frame.Lit = NewLitSet(cfg.GridWidth, cfg.GridHeight)
	if cfg.InitialText != "" {
		m.Commit(cfg.InitialText)
	}
	return m, nil
}

// newBackboard builds a scene-layer panel behind the glyphs spanning the
// grid. Scan rays cross it but the glyph filter ignores it.
func newBackboard(cfg Config) *Node {
	w := float64(cfg.GridWidth) * cfg.CellPitch
	h := float64(cfg.GridHeight) * cfg.CellPitch
	top := cfg.GridOrigin.Y() + cfg.CellPitch/2
	left := cfg.GridOrigin.X() - cfg.CellPitch/2
	back := cfg.StageZ - cfg.GlyphDepth*2
	box := NewBox(
		Vec3{left, top - h, back - cfg.GlyphDepth},
		Vec3{left + w, top, back},
	)
	return NewBody("backboard", box, LayerScene)
}

// Config returns the configuration the marquee was built with.
func (m *Marquee) Config() Config {
	return m.cfg
}

// Root returns the root of the node tree.
func (m *Marquee) Root() *Node {
	return m.root
}

// Stage returns the glyph stage.
func (m *Marquee) Stage() *Stage {
	return m.stage
}

// Grid returns the LED grid.
func (m *Marquee) Grid() *Grid {
	return m.grid
}

// Backboard returns the scene-layer panel, or nil when disabled.
func (m *Marquee) Backboard() *Node {
	return m.board
}

// Lit returns the lit set of the most recent tick. It is rebuilt in place
// by the next Update.
func (m *Marquee) Lit() *LitSet {
	return m.frame.Lit
}

// Text returns the most recently applied text.
func (m *Marquee) Text() string {
	return m.stage.Text()
}

// Stats returns the readout of the most recent tick.
func (m *Marquee) Stats() Stats {
	return m.stats
}

// Commit queues text for the next tick. Only the latest commit before a
// tick is applied. Safe to call from any goroutine.
func (m *Marquee) Commit(text string) {
	if m.cfg.MaxTextLength > 0 {
		text = truncateRunes(text, m.cfg.MaxTextLength)
	}
	if m.inbox.post(text) {
		Logger().Debug("marquee: pending commit replaced", "text", text)
	}
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// SetRayCaster replaces the collision backend. A nil caster restores the
// built-in scene caster.
func (m *Marquee) SetRayCaster(c RayCaster) {
	if c == nil {
		c = NewSceneCaster(m.root)
	}
	m.caster = c
	m.scanner.SetCaster(c)
}

// SetEntityStore sets the optional ECS bridge.
func (m *Marquee) SetEntityStore(store EntityStore) {
	m.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// use panics, the stage batch is checked each tick and per-tick timing is
// logged at debug level.
func (m *Marquee) SetDebugMode(enabled bool) {
	m.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Marquee debug flag so node
// operations, which lack a Marquee pointer, can check it cheaply.
var globalDebug bool

func (m *Marquee) emit(ev Event) {
	if m.store != nil {
		m.store.EmitEvent(ev)
	}
}

// Update advances one tick: apply the pending commit, scroll the stage,
// refresh world transforms, scan the grid and sync LED visibility.
func (m *Marquee) Update(dt float64) {
	var st debugStats
	var t0 time.Time
	if m.debug {
		t0 = time.Now()
	}

	if text, ok := m.inbox.take(); ok {
		Logger().Info("marquee: text committed", "text", text)
		m.emit(Event{Type: EventTextCommitted, Batch: m.stage.Batch() + 1, Text: text})
		m.stage.Replace(text)
	}
	m.stage.Tick(dt)
	UpdateWorldTransforms(m.root)
	if r, ok := m.caster.(Refresher); ok {
		r.Refresh()
	}

	if m.debug {
		debugCheckBatch(m.stage)
		st.stageTime = time.Since(t0)
		t0 = time.Now()
	}

	m.frame.Tick++
	m.frame.DT = dt
	m.scanner.Scan(m.grid, &m.frame)

	if m.debug {
		st.scanTime = time.Since(t0)
		t0 = time.Now()
	}

	sync := Sync(m.grid, m.frame.Lit)

	if m.debug {
		st.syncTime = time.Since(t0)
		m.debugLog(st)
	}

	m.stats = Stats{
		Tick:     m.frame.Tick,
		Batch:    m.stage.Batch(),
		Glyphs:   m.stage.Len(),
		Recycles: m.stage.Recycles(),
		Rays:     m.frame.Rays,
		Failures: m.frame.Failures,
		Lit:      m.frame.Lit.Len(),
		Changed:  sync.Changed,
	}
}
