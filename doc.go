// Package marquee is a raycast LED marquee simulator. A fixed grid of light
// cells sits in front of a row of 3D glyph bodies; every tick each cell fires
// one ray into the scene and lights up when it strikes glyph geometry.
//
// # Quick start
//
//	cfg := marquee.DefaultConfig()
//	m, err := marquee.New(cfg, nil) // nil loader uses the bitmap glyph set
//	if err != nil {
//		log.Fatal(err)
//	}
//	m.Commit("HELLO")
//	for i := 0; i < 60; i++ {
//		m.Update(1.0 / 60)
//	}
//	fmt.Print(m.Lit())
//
// # Tick order
//
// [Marquee.Update] drains the pending commit, advances the [Stage] scroll
// tween, refreshes world transforms, scans the [Grid] with one ray per
// cell, then syncs every [LightCell] visibility from the resulting
// [LitSet]. A text commit replaces the whole glyph batch and restarts the
// scroll; when the batch scrolls past the recycle threshold the same text
// is rebuilt at the start position.
//
// # Collision
//
// Rays are answered by a [RayCaster]. The default [SceneCaster] walks the
// node tree and intersects [Box], [Sphere] and [Compound] shapes in world
// space. Glyph bodies sit on [LayerGlyph]; scenery such as the backboard
// sits on [LayerScene] and never lights a cell. Replace the backend with
// [Marquee.SetRayCaster].
//
// # Logging
//
// The package is silent by default. Install a *slog.Logger with
// [SetLogger] to see commits, recycles, skipped glyphs and, in debug mode,
// per-tick timings.
//
// # Integrations
//
// Lifecycle events reach an [EntityStore]. Sub-packages provide a donburi
// mirror (marquee/ecs), a tcell front end (marquee/terminal), an Ebitengine
// window (marquee/window) and beep audio cues (marquee/chime).
package marquee
