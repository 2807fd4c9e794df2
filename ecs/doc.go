// Package ecs provides ECS adapters for marquee's lifecycle events.
//
// The primary adapter is [NewDonburiStore], which bridges marquee lifecycle
// events (text commits, batch spawns, skipped glyphs, recycles) into a
// [Donburi] world as typed events, and mirrors every live glyph instance as
// an entity carrying the [Glyph] component.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	m.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
