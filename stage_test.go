package marquee

import (
	"errors"
	"testing"
)

// glyphBox is the synthetic glyph used by stage and marquee tests: a slab
// 0.32 wide and 0.5 tall whose left face sits slightly left of the glyph
// origin.
var glyphBox = NewBox(Vec3{-0.02, 0, -0.05}, Vec3{0.3, 0.5, 0.05})

// boxLoader serves glyphBox for every default catalog asset and the fallback.
func boxLoader() MapLoader {
	l := MapLoader{FallbackAssetID: glyphBox}
	for r := range defaultAdvances {
		l[string(r)] = glyphBox
	}
	return l
}

type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) EmitEvent(ev Event) {
	r.events = append(r.events, ev)
}

func (r *eventRecorder) count(typ EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func newTestStage(cfg Config, loader AssetLoader) (*Stage, *eventRecorder) {
	rec := &eventRecorder{}
	return newStage(cfg, loader, rec.EmitEvent), rec
}

func TestStageReplaceSpawnsBatch(t *testing.T) {
	s, rec := newTestStage(DefaultConfig(), boxLoader())
	s.Replace("A B")

	if s.Batch() != 1 {
		t.Errorf("Batch = %d, want 1", s.Batch())
	}
	if s.Len() != 2 || s.Node().NumChildren() != 2 {
		t.Fatalf("instances = %d, children = %d; want 2", s.Len(), s.Node().NumChildren())
	}
	if s.Text() != "A B" {
		t.Errorf("Text = %q", s.Text())
	}

	var xs []float64
	s.Each(func(g *GlyphInstance) {
		if g.Batch != 1 {
			t.Errorf("instance batch = %d", g.Batch)
		}
		if g.Node.Parent != s.Node() || g.Node.Layer != LayerGlyph {
			t.Error("glyph body should be a glyph-layer child of the stage")
		}
		if k, ok := g.Node.UserData.(Key); !ok || k != g.Key {
			t.Errorf("UserData = %v, want key %d", g.Node.UserData, g.Key)
		}
		assertNear(t, "y", g.Node.Y, 0.1)
		assertNear(t, "z", g.Node.Z, 0)
		xs = append(xs, g.Node.X)
	})
	assertNear(t, "A x", xs[0], 2.2)
	assertNear(t, "B x", xs[1], 2.2+0.57+0.30)

	if rec.count(EventGlyphSpawned) != 2 || rec.count(EventBatchSpawned) != 1 {
		t.Errorf("events = %v", rec.events)
	}
	if rec.count(EventBatchDespawned) != 0 {
		t.Error("first batch has nothing to despawn")
	}
}

func TestStageReplaceDestroysPreviousBatch(t *testing.T) {
	s, rec := newTestStage(DefaultConfig(), boxLoader())
	s.Replace("HELLO")
	var old []*Node
	s.Each(func(g *GlyphInstance) { old = append(old, g.Node) })

	s.Replace("HI")

	if s.Batch() != 2 || s.Len() != 2 {
		t.Fatalf("batch = %d, len = %d", s.Batch(), s.Len())
	}
	for _, n := range old {
		if !n.IsDisposed() {
			t.Error("old glyph should be disposed")
		}
	}
	s.Each(func(g *GlyphInstance) {
		if g.Batch != 2 {
			t.Errorf("instance from batch %d survived", g.Batch)
		}
	})
	if rec.count(EventGlyphDespawned) != 5 || rec.count(EventBatchDespawned) != 1 {
		t.Errorf("despawn events: glyph %d, batch %d", rec.count(EventGlyphDespawned), rec.count(EventBatchDespawned))
	}
	if s.Node().NumChildren() != 2 {
		t.Errorf("stage children = %d, want 2", s.Node().NumChildren())
	}
}

func TestStageSkipsFailingAsset(t *testing.T) {
	loader := boxLoader()
	delete(loader, "B")
	s, rec := newTestStage(DefaultConfig(), loader)
	s.Replace("ABC")

	if s.Len() != 2 {
		t.Fatalf("instances = %d, want 2", s.Len())
	}
	var assets []string
	s.Each(func(g *GlyphInstance) { assets = append(assets, g.AssetID) })
	if assets[0] != "A" || assets[1] != "C" {
		t.Errorf("assets = %v, want [A C]", assets)
	}
	if rec.count(EventGlyphSkipped) != 1 {
		t.Fatalf("skipped events = %d, want 1", rec.count(EventGlyphSkipped))
	}
	for _, ev := range rec.events {
		if ev.Type == EventGlyphSkipped {
			if ev.AssetID != "B" || ev.Index != 1 || !errors.Is(ev.Err, ErrGlyphNotFound) {
				t.Errorf("skip event = %+v", ev)
			}
		}
	}
	// C keeps its layout offset even though B was skipped.
	c, _ := s.Instance(2)
	if c == nil {
		t.Fatal("instance 2 missing")
	}
	assertNear(t, "C x", c.Node.X, 2.2+0.57+0.50)
}

type nilShapeLoader struct{}

func (nilShapeLoader) LoadGlyph(id string) (*GlyphAsset, error) {
	return &GlyphAsset{ID: id}, nil
}

func TestStageSkipsNilShape(t *testing.T) {
	s, rec := newTestStage(DefaultConfig(), nilShapeLoader{})
	s.Replace("AB")
	if s.Len() != 0 || rec.count(EventGlyphSkipped) != 2 {
		t.Errorf("len = %d, skipped = %d", s.Len(), rec.count(EventGlyphSkipped))
	}
}

func TestStageEmptyText(t *testing.T) {
	s, rec := newTestStage(DefaultConfig(), boxLoader())
	s.Replace("XYZ")
	s.Replace("")
	if s.Len() != 0 || s.Node().NumChildren() != 0 {
		t.Errorf("instances = %d, want 0", s.Len())
	}
	if s.Text() != "" {
		t.Errorf("Text = %q", s.Text())
	}
	if rec.count(EventBatchSpawned) != 2 {
		t.Error("empty text still counts as a batch")
	}
}

func TestStageTickScrollsLeft(t *testing.T) {
	s, _ := newTestStage(DefaultConfig(), boxLoader())
	s.Replace("AB")
	const dt = 1.0 / 60
	for i := 0; i < 60; i++ {
		s.Tick(dt)
	}
	// One second at 0.8 units/s; float32 tween accumulation.
	if x := s.OffsetX(); x > -0.799 || x < -0.801 {
		t.Errorf("OffsetX after 1s = %v, want ~-0.8", x)
	}
}

func TestStageZeroDTNoop(t *testing.T) {
	s, _ := newTestStage(DefaultConfig(), boxLoader())
	s.Replace("AB")
	if s.Tick(0) || s.OffsetX() != 0 {
		t.Error("zero dt should not move the stage")
	}
}

func TestStageFrozenWhenVelocityZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScrollVelocity = 0
	s, _ := newTestStage(cfg, boxLoader())
	s.Replace("AB")
	for i := 0; i < 1000; i++ {
		if s.Tick(0.1) {
			t.Fatal("frozen stage recycled")
		}
	}
	if s.OffsetX() != 0 {
		t.Errorf("OffsetX = %v, want 0", s.OffsetX())
	}
}

func TestStageRecycleTiming(t *testing.T) {
	cfg := DefaultConfig()
	s, rec := newTestStage(cfg, boxLoader())
	s.Replace("AB")
	assertNear(t, "threshold", s.Threshold(), -4.2)

	const dt = 1.0 / 60
	// (2.2 + 1.0 + 0.5·2) / 0.8 = 5.25 s = 315 ticks.
	want := int(cfg.RecycleTime(2, s.Layout().Width)/dt + 0.5)
	ticks := 0
	for !s.Tick(dt) {
		ticks++
		if ticks > 2*want {
			t.Fatal("stage never recycled")
		}
		if s.OffsetX() < s.Threshold()-1e-4 {
			t.Fatalf("offset %v passed threshold %v without recycling", s.OffsetX(), s.Threshold())
		}
	}
	ticks++
	if ticks < want-1 || ticks > want+1 {
		t.Errorf("recycled after %d ticks, want %d±1", ticks, want)
	}

	// Only the overshoot of the recycling tick carries into the new batch.
	if x := s.OffsetX(); x > 0 || x < -cfg.ScrollVelocity*dt {
		t.Errorf("OffsetX after recycle = %v, want within one tick of 0", x)
	}
	if s.Recycles() != 1 || s.Batch() != 2 {
		t.Errorf("recycles = %d, batch = %d", s.Recycles(), s.Batch())
	}
	if s.Text() != "AB" || s.Len() != 2 {
		t.Errorf("recycle should respawn the same text: %q, %d glyphs", s.Text(), s.Len())
	}
	if rec.count(EventStageRecycled) != 1 {
		t.Error("missing recycle event")
	}
}

func TestStageThresholdScalesWithGlyphCount(t *testing.T) {
	s, _ := newTestStage(DefaultConfig(), boxLoader())
	prev := 0.0
	for _, text := range []string{"A", "ABCD", "ABCDEFGHIJ", "ABCDEFGHIJKLMNOPQRST"} {
		s.Replace(text)
		th := s.Threshold()
		assertNear(t, text, th, -3.2-0.5*float64(len(text)))
		if th >= prev {
			t.Errorf("threshold for %q = %v, want below %v", text, th, prev)
		}
		prev = th
	}
}

func TestStageCustomMargin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecycleMargin = func(_ int, width float64) float64 { return width }
	s, _ := newTestStage(cfg, boxLoader())
	s.Replace("AB")
	assertNear(t, "threshold", s.Threshold(), -(2.2 + 1.07))
}

func TestStageRecycleCarriesOvershoot(t *testing.T) {
	cfg := DefaultConfig()
	s, _ := newTestStage(cfg, boxLoader())
	s.Replace("AB")
	// Threshold -4.2 at 0.8/s is 5.25 s; a 5.5 s tick overshoots by 0.25 s.
	if !s.Tick(5.5) {
		t.Fatal("coarse tick should recycle")
	}
	if x := s.OffsetX(); x > -0.199 || x < -0.201 {
		t.Errorf("OffsetX after recycle = %v, want ~-0.2", x)
	}
	if s.Recycles() != 1 || s.Len() != 2 {
		t.Errorf("recycles = %d, glyphs = %d", s.Recycles(), s.Len())
	}
}

func TestStageCommitResetsCarry(t *testing.T) {
	s, _ := newTestStage(DefaultConfig(), boxLoader())
	s.Replace("AB")
	s.Tick(1)
	s.Replace("AB")
	if s.OffsetX() != 0 {
		t.Errorf("OffsetX after replace = %v, want 0", s.OffsetX())
	}
	if s.Tick(5.2) {
		t.Error("fresh batch should not recycle before its own duration")
	}
}
