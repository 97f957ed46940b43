package ecs

import (
	"github.com/phanxgames/courtboard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// BoardEventType is the Donburi event type for board events.
var BoardEventType = events.NewEventType[courtboard.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Board
// events are published to BoardEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) courtboard.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event courtboard.Event) {
	BoardEventType.Publish(s.world, event)
}
