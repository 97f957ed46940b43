package courtboard

// EventSink receives every board mutation. The Surface is one sink; the
// ecs package adapts a Donburi world as another.
type EventSink interface {
	EmitEvent(event Event)
}

// EventType identifies a board mutation.
type EventType uint8

const (
	EventCatalogSelected    EventType = iota // active catalog changed (a scenario event follows)
	EventScenarioSelected                    // scenario loaded, entities reset, strokes cleared
	EventPositionsReset                      // entities restored to the scenario template
	EventEntityMoved                         // one entity got a new position
	EventModeChanged                         // input mode toggled
	EventStrokeColorChanged                  // color for new strokes changed
	EventStrokeStarted                       // a stroke was appended
	EventStrokeUpdated                       // the open stroke's trailing point moved
	EventStrokeFinished                      // the open stroke was frozen
	EventStrokeDiscarded                     // the open stroke was removed
	EventStrokesCleared                      // all strokes removed
)

var eventTypeNames = [...]string{
	EventCatalogSelected:    "catalog-selected",
	EventScenarioSelected:   "scenario-selected",
	EventPositionsReset:     "positions-reset",
	EventEntityMoved:        "entity-moved",
	EventModeChanged:        "mode-changed",
	EventStrokeColorChanged: "stroke-color-changed",
	EventStrokeStarted:      "stroke-started",
	EventStrokeUpdated:      "stroke-updated",
	EventStrokeFinished:     "stroke-finished",
	EventStrokeDiscarded:    "stroke-discarded",
	EventStrokesCleared:     "strokes-cleared",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event carries the state a sink needs to react to one mutation.
type Event struct {
	Type     EventType
	Catalog  Catalog
	Scenario string
	Mode     InputMode
	// Entity fields (valid for EventEntityMoved)
	EntityID string
	X, Y     float64
	// Stroke fields (valid for the stroke events)
	Stroke int // index into Board.Strokes
	Color  string
}
