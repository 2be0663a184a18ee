package ecs

import (
	"github.com/phanxgames/raypick"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for raypick interaction
// events.
var InteractionEventType = events.NewEventType[raypick.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) raypick.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event raypick.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
