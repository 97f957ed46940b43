package ecs

import (
	"log/slog"

	"github.com/phanxgames/courtboard"

	"github.com/yohamta/donburi"
)

// Tally counts board events by type.
type Tally struct {
	Counts map[courtboard.EventType]int
	Last   courtboard.Event
	Total  int
}

// TallyComponent holds the journal's Tally on its entity.
var TallyComponent = donburi.NewComponentType[Tally]()

// Journal is an ECS system that logs the board event stream and keeps a
// running Tally on an entity of its own.
type Journal struct {
	world  donburi.World
	logger *slog.Logger
	entity donburi.Entity
}

// NewJournal subscribes a journal to BoardEventType in world. A nil logger
// uses slog.Default.
func NewJournal(world donburi.World, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	j := &Journal{world: world, logger: logger}
	j.entity = world.Create(TallyComponent)
	TallyComponent.SetValue(world.Entry(j.entity), Tally{Counts: map[courtboard.EventType]int{}})
	BoardEventType.Subscribe(world, j.record)
	return j
}

// Update delivers the events queued since the last call.
func (j *Journal) Update() {
	BoardEventType.ProcessEvents(j.world)
}

// Tally returns a copy of the counts so far.
func (j *Journal) Tally() Tally {
	t := TallyComponent.Get(j.world.Entry(j.entity))
	out := Tally{Counts: make(map[courtboard.EventType]int, len(t.Counts)), Last: t.Last, Total: t.Total}
	for k, v := range t.Counts {
		out.Counts[k] = v
	}
	return out
}

func (j *Journal) record(w donburi.World, e courtboard.Event) {
	t := TallyComponent.Get(w.Entry(j.entity))
	t.Counts[e.Type]++
	t.Total++
	t.Last = e

	attrs := []any{"type", e.Type.String(), "catalog", e.Catalog.String(), "scenario", e.Scenario}
	switch e.Type {
	case courtboard.EventEntityMoved:
		attrs = append(attrs, "entity", e.EntityID, "x", e.X, "y", e.Y)
	case courtboard.EventStrokeStarted, courtboard.EventStrokeUpdated,
		courtboard.EventStrokeFinished, courtboard.EventStrokeDiscarded:
		attrs = append(attrs, "stroke", e.Stroke, "color", e.Color)
	case courtboard.EventStrokeColorChanged:
		attrs = append(attrs, "color", e.Color)
	case courtboard.EventModeChanged:
		attrs = append(attrs, "mode", e.Mode.String())
	}
	// Move updates arrive every frame of a gesture.
	if e.Type == courtboard.EventStrokeUpdated {
		j.logger.Debug("board event", attrs...)
		return
	}
	j.logger.Info("board event", attrs...)
}
