package marquee

// EntityStore is the interface for optional ECS integration.
// When set on a Marquee, lifecycle events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event Event)
}

// Event carries lifecycle data for the ECS bridge. Fields not relevant to
// Type are zero.
type Event struct {
	Type  EventType
	Batch uint64
	// Text is set for commit, batch and recycle events.
	Text string
	// Glyphs is the instance count for batch events.
	Glyphs int
	// Glyph fields (valid for EventGlyphSpawned, EventGlyphDespawned,
	// EventGlyphSkipped).
	Key      Key
	AssetID  string
	Index    int
	Position Vec3
	// Err is the load failure for EventGlyphSkipped.
	Err error
}

// multiStore fans events out to several stores in order.
type multiStore []EntityStore

func (s multiStore) EmitEvent(ev Event) {
	for _, st := range s {
		st.EmitEvent(ev)
	}
}

// MultiStore returns an EntityStore forwarding every event to each non-nil
// store in order.
func MultiStore(stores ...EntityStore) EntityStore {
	out := make(multiStore, 0, len(stores))
	for _, s := range stores {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
