package courtboard

import (
	"errors"
	"fmt"
)

// UserStroke is an annotation arrow drawn by the user. Points is a flat
// x,y sequence whose length is always even and at least 4.
type UserStroke struct {
	Points []float64 `json:"points"`
	Color  string    `json:"color"`
}

// Board is the scene state: the single owner of the active catalog and
// scenario, the live entity positions, the user strokes, the input mode and
// the stroke color. Every mutation is synchronous and total, and is
// published to the registered sinks after it has been applied.
//
// Board is not safe for concurrent use; it belongs to the game loop.
type Board struct {
	playbook *Playbook

	catalog  Catalog
	scenario Scenario // private deep copy of the active template
	entities []Entity

	strokes    []UserStroke
	strokeOpen bool // last stroke is still being drawn

	mode  InputMode
	color string

	sinks []EventSink
}

// NewBoard creates a board showing the first singles scenario, in move mode,
// with the yellow annotation color. p must hold a singles scenario, as every
// playbook built by NewPlaybook or the Load functions does.
func NewBoard(p *Playbook) (*Board, error) {
	if p == nil {
		return nil, errors.New("courtboard: nil playbook")
	}
	first, err := p.FirstOf(CatalogSingles)
	if err != nil {
		return nil, fmt.Errorf("new board: %w", err)
	}
	b := &Board{playbook: p, catalog: CatalogSingles, color: StrokeYellow}
	b.load(first)
	return b, nil
}

// AddSink registers a sink for mutation events.
func (b *Board) AddSink(sink EventSink) {
	b.sinks = append(b.sinks, sink)
}

// RemoveSink unregisters a sink. No-op if it was never added.
func (b *Board) RemoveSink(sink EventSink) {
	for i, s := range b.sinks {
		if s == sink {
			b.sinks = append(b.sinks[:i], b.sinks[i+1:]...)
			return
		}
	}
}

func (b *Board) emit(e Event) {
	e.Catalog = b.catalog
	e.Scenario = b.scenario.Name
	e.Mode = b.mode
	for _, s := range b.sinks {
		s.EmitEvent(e)
	}
}

// --- Reads ---

// Playbook returns the store the board selects scenarios from.
func (b *Board) Playbook() *Playbook {
	return b.playbook
}

// Catalog returns the active catalog.
func (b *Board) Catalog() Catalog {
	return b.catalog
}

// Scenario returns a copy of the active scenario template.
func (b *Board) Scenario() Scenario {
	return b.scenario.clone()
}

// ScenarioRef returns the identity of the active scenario.
func (b *Board) ScenarioRef() ScenarioRef {
	return ScenarioRef{Catalog: b.catalog, Name: b.scenario.Name}
}

// ScenarioNames lists the scenarios of the active catalog.
func (b *Board) ScenarioNames() []string {
	return b.playbook.Names(b.catalog)
}

// Entities returns a copy of the live entity list.
func (b *Board) Entities() []Entity {
	return cloneEntities(b.entities)
}

// Entity returns the live entity with the given id.
func (b *Board) Entity(id string) (Entity, bool) {
	for _, e := range b.entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// Strokes returns a copy of the user strokes in drawing order.
func (b *Board) Strokes() []UserStroke {
	out := make([]UserStroke, len(b.strokes))
	for i, s := range b.strokes {
		out[i] = UserStroke{Points: append([]float64(nil), s.Points...), Color: s.Color}
	}
	return out
}

// StrokeOpen reports whether the last stroke is still being drawn.
func (b *Board) StrokeOpen() bool {
	return b.strokeOpen
}

// Mode returns the input mode.
func (b *Board) Mode() InputMode {
	return b.mode
}

// StrokeColor returns the color used for newly started strokes.
func (b *Board) StrokeColor() string {
	return b.color
}

// --- Scenario selection ---

// SelectCatalog activates a catalog and loads its first scenario. Strokes
// are cleared and entities reset. An unknown catalog leaves the board as is.
func (b *Board) SelectCatalog(c Catalog) error {
	first, err := b.playbook.FirstOf(c)
	if err != nil {
		return err
	}
	b.catalog = c
	b.scenario = first
	b.emit(Event{Type: EventCatalogSelected})
	b.load(first)
	return nil
}

// SelectScenario loads the named scenario of the active catalog. A scenario
// that only exists in the other catalog is refused.
func (b *Board) SelectScenario(name string) error {
	s, err := b.playbook.Scenario(ScenarioRef{Catalog: b.catalog, Name: name})
	if err != nil {
		return err
	}
	b.load(s)
	return nil
}

// load installs s as the active scenario. s must already be a private copy.
func (b *Board) load(s Scenario) {
	b.scenario = s
	b.entities = cloneEntities(s.Positions)
	b.strokes = nil
	b.strokeOpen = false
	b.emit(Event{Type: EventScenarioSelected})
}

// ResetEntityPositions restores every entity to the scenario template.
// Strokes are kept.
func (b *Board) ResetEntityPositions() {
	b.entities = cloneEntities(b.scenario.Positions)
	b.emit(Event{Type: EventPositionsReset})
}

// MoveEntity sets the position of one entity. The input mode is not checked
// here; the drag controller gates on it.
func (b *Board) MoveEntity(id string, x, y float64) error {
	for i := range b.entities {
		if b.entities[i].ID == id {
			b.entities[i].X = x
			b.entities[i].Y = y
			b.emit(Event{Type: EventEntityMoved, EntityID: id, X: x, Y: y})
			return nil
		}
	}
	return &NotFoundError{Kind: "entity", Name: id}
}

// --- Mode and color ---

// SetMode switches between moving entities and annotating.
func (b *Board) SetMode(m InputMode) {
	if b.mode == m {
		return
	}
	b.mode = m
	b.emit(Event{Type: EventModeChanged})
}

// ToggleMode flips the input mode and returns the new one.
func (b *Board) ToggleMode() InputMode {
	if b.mode == ModeAnnotate {
		b.SetMode(ModeMove)
	} else {
		b.SetMode(ModeAnnotate)
	}
	return b.mode
}

// SetStrokeColor sets the color of strokes started from now on.
func (b *Board) SetStrokeColor(color string) {
	if b.color == color {
		return
	}
	b.color = color
	b.emit(Event{Type: EventStrokeColorChanged, Color: color})
}

// --- Strokes ---

// BeginStroke appends a degenerate stroke at (x, y) in the current color and
// opens it. A stroke left open by a lost release is frozen first.
func (b *Board) BeginStroke(x, y float64) {
	if b.strokeOpen {
		_ = b.EndStroke()
	}
	b.strokes = append(b.strokes, UserStroke{
		Points: []float64{x, y, x, y},
		Color:  b.color,
	})
	b.strokeOpen = true
	b.emit(Event{Type: EventStrokeStarted, Stroke: len(b.strokes) - 1, X: x, Y: y, Color: b.color})
}

// SetStrokeEnd replaces the trailing point of the open stroke. The leading
// point stays where the gesture started.
func (b *Board) SetStrokeEnd(x, y float64) error {
	if !b.strokeOpen {
		return ErrInvalidGesture
	}
	last := len(b.strokes) - 1
	pts := b.strokes[last].Points
	pts[len(pts)-2] = x
	pts[len(pts)-1] = y
	b.emit(Event{Type: EventStrokeUpdated, Stroke: last, X: x, Y: y, Color: b.strokes[last].Color})
	return nil
}

// EndStroke freezes the open stroke.
func (b *Board) EndStroke() error {
	if !b.strokeOpen {
		return ErrInvalidGesture
	}
	b.strokeOpen = false
	last := len(b.strokes) - 1
	pts := b.strokes[last].Points
	b.emit(Event{Type: EventStrokeFinished, Stroke: last,
		X: pts[len(pts)-2], Y: pts[len(pts)-1], Color: b.strokes[last].Color})
	return nil
}

// DiscardStroke removes the open stroke.
func (b *Board) DiscardStroke() error {
	if !b.strokeOpen {
		return ErrInvalidGesture
	}
	last := len(b.strokes) - 1
	color := b.strokes[last].Color
	b.strokes = b.strokes[:last]
	b.strokeOpen = false
	b.emit(Event{Type: EventStrokeDiscarded, Stroke: last, Color: color})
	return nil
}

// ClearStrokes removes every stroke, including one still being drawn.
func (b *Board) ClearStrokes() {
	b.strokes = nil
	b.strokeOpen = false
	b.emit(Event{Type: EventStrokesCleared})
}
