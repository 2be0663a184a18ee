// Package ecs provides ECS adapters for raypick's interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges raypick handler
// deliveries (click, pointerenter, pointermissed and the rest) into a
// [Donburi] world as typed events. Subscribe to [InteractionEventType] in
// your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.Events().SetEntityStore(store)
//
// Only nodes with a non-zero EntityID and at least one handler produce
// events; pointermissed reaches only nodes that handle it.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
