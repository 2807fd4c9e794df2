package marquee

import (
	"fmt"
	"time"
)

// debugStats holds per-tick timing. Only populated when debug mode is on.
type debugStats struct {
	stageTime time.Duration
	scanTime  time.Duration
	syncTime  time.Duration
}

// debugLog reports tick timing at debug level.
func (m *Marquee) debugLog(st debugStats) {
	if !m.debug {
		return
	}
	Logger().Debug("marquee: tick",
		"tick", m.frame.Tick,
		"stage", st.stageTime,
		"scan", st.scanTime,
		"sync", st.syncTime,
		"rays", m.frame.Rays,
		"lit", m.frame.Lit.Len(),
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("marquee debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckBatch panics if any stage child is not a live instance of the
// current batch.
func debugCheckBatch(s *Stage) {
	if s.node.NumChildren() != s.instances.len() {
		panic(fmt.Sprintf("marquee debug: stage has %d glyph nodes but %d instances", s.node.NumChildren(), s.instances.len()))
	}
	s.instances.each(func(k Key, g *GlyphInstance) {
		if g.Batch != s.batch {
			panic(fmt.Sprintf("marquee debug: instance %d belongs to batch %d, live batch is %d", k, g.Batch, s.batch))
		}
		if g.Node.IsDisposed() || g.Node.Parent != s.node {
			panic(fmt.Sprintf("marquee debug: instance %d node detached from stage", k))
		}
	})
}
