package marquee

import (
	"errors"
	"strings"
	"testing"
)

const tick = 1.0 / 60

func newTestMarquee(t *testing.T, cfg Config) *Marquee {
	t.Helper()
	cfg.InitialText = ""
	m, err := New(cfg, boxLoader())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridWidth = 0
	if _, err := New(cfg, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestScenarioABLightsCell55x10(t *testing.T) {
	m := newTestMarquee(t, DefaultConfig())
	m.Commit("AB")
	m.Update(tick)

	if m.Stage().Len() != 2 {
		t.Fatalf("glyphs = %d, want 2", m.Stage().Len())
	}
	if !m.Lit().Contains(Cell{55, 10}) {
		t.Errorf("cell (55,10) should be lit:\n%s", m.Lit())
	}
	if !m.Grid().At(55, 10).Visible {
		t.Error("cell (55,10) LED should be visible")
	}
	// Nothing is left of the first glyph or above the glyph tops.
	if m.Lit().Contains(Cell{10, 10}) || m.Lit().Contains(Cell{60, 0}) {
		t.Error("cells away from the glyphs should be dark")
	}
	if m.Text() != "AB" {
		t.Errorf("Text = %q", m.Text())
	}
}

func TestScenarioEmptyString(t *testing.T) {
	m := newTestMarquee(t, DefaultConfig())
	m.Commit("HELLO")
	m.Update(tick)
	if m.Lit().Len() == 0 {
		t.Fatal("HELLO should light cells")
	}

	m.Commit("")
	m.Update(tick)
	if m.Stage().Len() != 0 {
		t.Errorf("glyphs = %d, want 0", m.Stage().Len())
	}
	if m.Lit().Len() != 0 {
		t.Errorf("lit = %d, want 0 (backboard must not light cells)", m.Lit().Len())
	}
	visible := 0
	m.Grid().ForEachCell(func(c *LightCell) {
		if c.Visible {
			visible++
		}
	})
	if visible != 0 {
		t.Errorf("visible LEDs = %d, want 0", visible)
	}
}

func TestBitmapGlyphsLightCells(t *testing.T) {
	cfg := DefaultConfig()
	m, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	m.Update(tick)
	if m.Text() != "HELLO" {
		t.Errorf("initial text = %q", m.Text())
	}
	if m.Stage().Len() != 5 || m.Lit().Len() == 0 {
		t.Errorf("glyphs = %d, lit = %d", m.Stage().Len(), m.Lit().Len())
	}
	for _, c := range m.Lit().Cells() {
		if c.Col < 50 {
			t.Fatalf("cell %v lit left of the text start", c)
		}
	}
}

func TestLitSetMatchesVisibilityEveryTick(t *testing.T) {
	m := newTestMarquee(t, DefaultConfig())
	m.Commit("MARQUEE")
	for i := 0; i < 120; i++ {
		m.Update(tick)
		m.Grid().ForEachCell(func(c *LightCell) {
			if c.Visible != m.Lit().Contains(c.Cell()) {
				t.Fatalf("tick %d: cell %v visible = %v", i, c.Cell(), c.Visible)
			}
		})
	}
}

func TestScrollMovesLitCellsLeft(t *testing.T) {
	m := newTestMarquee(t, DefaultConfig())
	m.Commit("I")
	m.Update(tick)
	minCol := func() int {
		min := m.Grid().Width()
		for _, c := range m.Lit().Cells() {
			if c.Col < min {
				min = c.Col
			}
		}
		return min
	}
	start := minCol()
	for i := 0; i < 60; i++ {
		m.Update(tick)
	}
	// 0.8 units in one second is 20 columns at 0.04 pitch.
	if moved := start - minCol(); moved < 19 || moved > 21 {
		t.Errorf("lit edge moved %d columns, want ~20", moved)
	}
}

func TestCommitLatestWinsPerTick(t *testing.T) {
	m := newTestMarquee(t, DefaultConfig())
	rec := &eventRecorder{}
	m.SetEntityStore(rec)
	m.Commit("FIRST")
	m.Commit("SECOND")
	m.Update(tick)
	if m.Text() != "SECOND" {
		t.Errorf("Text = %q, want SECOND", m.Text())
	}
	if rec.count(EventTextCommitted) != 1 || rec.count(EventBatchSpawned) != 1 {
		t.Errorf("commit events = %d, batch events = %d", rec.count(EventTextCommitted), rec.count(EventBatchSpawned))
	}
	if rec.events[0].Type != EventTextCommitted {
		t.Errorf("first event = %v, want text-committed", rec.events[0].Type)
	}
}

func TestCommitTruncates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTextLength = 3
	m := newTestMarquee(t, cfg)
	m.Commit("HÉLLO")
	m.Update(tick)
	if m.Text() != "HÉL" {
		t.Errorf("Text = %q, want HÉL", m.Text())
	}
}

func TestTextPersistsAcrossRecycle(t *testing.T) {
	m := newTestMarquee(t, DefaultConfig())
	m.Commit("AB")
	for i := 0; i < 400 && m.Stats().Recycles == 0; i++ {
		m.Update(tick)
	}
	st := m.Stats()
	if st.Recycles != 1 {
		t.Fatalf("recycles = %d, want 1", st.Recycles)
	}
	if m.Text() != "AB" || st.Glyphs != 2 || st.Batch != 2 {
		t.Errorf("after recycle: text %q, glyphs %d, batch %d", m.Text(), st.Glyphs, st.Batch)
	}
}

func TestStats(t *testing.T) {
	m := newTestMarquee(t, DefaultConfig())
	m.Commit("AB")
	m.Update(tick)
	m.Update(tick)
	st := m.Stats()
	if st.Tick != 2 {
		t.Errorf("Tick = %d", st.Tick)
	}
	if st.Rays != 101*25 {
		t.Errorf("Rays = %d, want %d", st.Rays, 101*25)
	}
	if st.Lit != m.Lit().Len() || st.Glyphs != 2 || st.Failures != 0 {
		t.Errorf("stats = %+v", st)
	}
	if s := st.String(); !strings.Contains(s, "glyphs 2") {
		t.Errorf("String = %q", s)
	}
}

func TestSetRayCaster(t *testing.T) {
	m := newTestMarquee(t, DefaultConfig())
	m.Commit("AB")

	m.SetRayCaster(failingCaster{})
	m.Update(tick)
	if m.Lit().Len() != 0 || m.Stats().Failures != 101*25 {
		t.Errorf("lit = %d, failures = %d", m.Lit().Len(), m.Stats().Failures)
	}

	lit := &oracleCaster{rects: []Box{NewBox(Vec3{0, 0, 0}, Vec3{0.1, 1, 0})}}
	m.SetRayCaster(lit)
	m.Update(tick)
	// Columns 0-2 of every row.
	if m.Lit().Len() != 3*25 {
		t.Errorf("oracle lit = %d, want %d", m.Lit().Len(), 3*25)
	}

	m.SetRayCaster(nil)
	m.Update(tick)
	if !m.Lit().Contains(Cell{54, 10}) && !m.Lit().Contains(Cell{53, 10}) {
		t.Errorf("restored scene caster should see the glyphs:\n%s", m.Lit())
	}
}

func TestBackboard(t *testing.T) {
	m := newTestMarquee(t, DefaultConfig())
	b := m.Backboard()
	if b == nil || b.Layer != LayerScene {
		t.Fatal("backboard should be a scene-layer body")
	}
	m.Update(tick)
	sc := NewSceneCaster(m.Root())
	ray := Ray{Origin: DefaultConfig().CellPosition(0, 0), Dir: Vec3{0, 0, -1}}
	if _, ok, _ := sc.CastRay(ray, 1e9, QueryFilter{Layers: LayerScene}); !ok {
		t.Error("every scan ray should cross the backboard")
	}

	cfg := DefaultConfig()
	cfg.Backboard = false
	if newTestMarquee(t, cfg).Backboard() != nil {
		t.Error("backboard disabled")
	}
}
