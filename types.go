package marquee

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3D vector used for positions, directions, and extents
// throughout the API.
type Vec3 = mgl64.Vec3

// Cell addresses one light in the LED grid. Column 0 is the left edge and
// row 0 the top edge.
type Cell struct {
	Col, Row int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Key is a stable arena index. Keys are assigned sequentially from 1; the
// zero Key never refers to a live record.
type Key uint32

// Layer is a collision layer bitmask. Ray queries are filtered by layer so
// the scan only ever sees glyph geometry.
type Layer uint32

const (
	LayerGlyph Layer = 1 << iota // glyph colliders owned by the stage
	LayerScene                   // unrelated scene geometry (backboard, props)

	LayerNone Layer = 0
	LayerAll  Layer = ^Layer(0)
)

// EventType identifies a lifecycle event forwarded to an EntityStore.
type EventType uint8

const (
	EventTextCommitted  EventType = iota // a committed string was taken from the inbox
	EventBatchSpawned                    // a new glyph batch is live
	EventBatchDespawned                  // the previous batch was destroyed
	EventGlyphSpawned                    // one glyph instance was created
	EventGlyphDespawned                  // one glyph instance was destroyed
	EventGlyphSkipped                    // a glyph asset failed to load and was left out
	EventStageRecycled                   // the stage scrolled past its threshold and respawned
)

var eventTypeNames = [...]string{
	EventTextCommitted:  "text-committed",
	EventBatchSpawned:   "batch-spawned",
	EventBatchDespawned: "batch-despawned",
	EventGlyphSpawned:   "glyph-spawned",
	EventGlyphDespawned: "glyph-despawned",
	EventGlyphSkipped:   "glyph-skipped",
	EventStageRecycled:  "stage-recycled",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}
