package ecs

import (
	"github.com/phanxgames/marquee"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// LifecycleEventType is the Donburi event type for marquee lifecycle events.
// Subscribe to this in your ECS systems to receive commits, batch spawns,
// skipped glyphs and recycles.
var LifecycleEventType = events.NewEventType[marquee.Event]()

// GlyphData mirrors one live glyph instance.
type GlyphData struct {
	Key     marquee.Key
	AssetID string
	Batch   uint64
	Index   int
	// Position is the spawn position relative to the stage.
	Position marquee.Vec3
}

// Glyph is the component attached to every mirrored glyph entity.
var Glyph = donburi.NewComponentType[GlyphData]()

// GlyphQuery matches every mirrored glyph entity.
var GlyphQuery = donburi.NewQuery(filter.Contains(Glyph))

// DonburiStore is an EntityStore backed by a Donburi world. Every event is
// published to LifecycleEventType; glyph spawn and despawn events also
// create and remove a Glyph entity, so the world always holds exactly the
// live batch.
type DonburiStore struct {
	world    donburi.World
	entities map[marquee.Key]donburi.Entity
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Lifecycle events are published to LifecycleEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{
		world:    world,
		entities: make(map[marquee.Key]donburi.Entity),
	}
}

// EmitEvent implements marquee.EntityStore.
func (s *DonburiStore) EmitEvent(event marquee.Event) {
	switch event.Type {
	case marquee.EventGlyphSpawned:
		e := s.world.Create(Glyph)
		Glyph.SetValue(s.world.Entry(e), GlyphData{
			Key:      event.Key,
			AssetID:  event.AssetID,
			Batch:    event.Batch,
			Index:    event.Index,
			Position: event.Position,
		})
		s.entities[event.Key] = e
	case marquee.EventGlyphDespawned:
		if e, ok := s.entities[event.Key]; ok {
			if s.world.Valid(e) {
				s.world.Remove(e)
			}
			delete(s.entities, event.Key)
		}
	}
	LifecycleEventType.Publish(s.world, event)
}

// Entity returns the entity mirroring the glyph instance stored under key.
func (s *DonburiStore) Entity(key marquee.Key) (donburi.Entity, bool) {
	e, ok := s.entities[key]
	return e, ok
}

// Len returns the number of mirrored glyph entities.
func (s *DonburiStore) Len() int {
	return len(s.entities)
}
