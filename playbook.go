package courtboard

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Catalog file names inside a playbook directory.
const (
	SinglesFile = "singlesPlaybook.json"
	DoublesFile = "doublesPlaybook.json"
)

//go:embed playbooks/singlesPlaybook.json
var defaultSingles []byte

//go:embed playbooks/doublesPlaybook.json
var defaultDoubles []byte

// Entity is a player or the ball. The entity with ID "ball" is drawn as a
// plain circle; every other entity is a player icon.
type Entity struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	Label string  `json:"label,omitempty"`
}

// IsBall reports whether e is rendered as the ball.
func (e Entity) IsBall() bool {
	return e.ID == BallID
}

// BallID is the reserved entity id of the ball.
const BallID = "ball"

// GuidanceLine is an authored coaching arrow. Points is a flat x,y sequence.
type GuidanceLine struct {
	Points []float64 `json:"points"`
	Stroke string    `json:"stroke"`
	Dash   []float64 `json:"dash,omitempty"`
}

// Scenario is one named tactical setup.
type Scenario struct {
	Name      string         `json:"name"`
	Positions []Entity       `json:"positions"`
	Lines     []GuidanceLine `json:"lines,omitempty"`
	Tip       string         `json:"tip"`
}

// clone deep-copies s so that nothing handed out aliases the store.
func (s Scenario) clone() Scenario {
	out := Scenario{Name: s.Name, Tip: s.Tip}
	out.Positions = cloneEntities(s.Positions)
	if s.Lines != nil {
		out.Lines = make([]GuidanceLine, len(s.Lines))
		for i, l := range s.Lines {
			out.Lines[i] = GuidanceLine{
				Points: append([]float64(nil), l.Points...),
				Stroke: l.Stroke,
			}
			if l.Dash != nil {
				out.Lines[i].Dash = append([]float64(nil), l.Dash...)
			}
		}
	}
	return out
}

func cloneEntities(src []Entity) []Entity {
	if src == nil {
		return nil
	}
	out := make([]Entity, len(src))
	copy(out, src)
	return out
}

// ScenarioRef identifies a scenario. Names are only unique within a catalog.
type ScenarioRef struct {
	Catalog Catalog
	Name    string
}

func (r ScenarioRef) String() string {
	return r.Catalog.String() + "/" + r.Name
}

// Playbook is the read-only store of both catalogs.
type Playbook struct {
	catalogs [2][]Scenario
}

// NewPlaybook builds a store from already decoded catalogs. Both must be
// non-empty. The scenarios are copied.
func NewPlaybook(singles, doubles []Scenario) (*Playbook, error) {
	p := &Playbook{}
	for _, c := range []struct {
		catalog   Catalog
		scenarios []Scenario
	}{{CatalogSingles, singles}, {CatalogDoubles, doubles}} {
		if len(c.scenarios) == 0 {
			return nil, fmt.Errorf("playbook: catalog %s is empty", c.catalog)
		}
		list := make([]Scenario, len(c.scenarios))
		for i, s := range c.scenarios {
			list[i] = s.clone()
		}
		p.catalogs[c.catalog] = list
	}
	return p, nil
}

// LoadPlaybook parses the singles and doubles catalog documents.
func LoadPlaybook(singlesJSON, doublesJSON []byte) (*Playbook, error) {
	singles, err := parseCatalog(SinglesFile, singlesJSON)
	if err != nil {
		return nil, err
	}
	doubles, err := parseCatalog(DoublesFile, doublesJSON)
	if err != nil {
		return nil, err
	}
	return NewPlaybook(singles, doubles)
}

// LoadPlaybookDir reads singlesPlaybook.json and doublesPlaybook.json from dir.
func LoadPlaybookDir(dir string) (*Playbook, error) {
	singles, err := os.ReadFile(filepath.Join(dir, SinglesFile))
	if err != nil {
		return nil, fmt.Errorf("playbook: %w", err)
	}
	doubles, err := os.ReadFile(filepath.Join(dir, DoublesFile))
	if err != nil {
		return nil, fmt.Errorf("playbook: %w", err)
	}
	return LoadPlaybook(singles, doubles)
}

// DefaultPlaybook returns the catalogs compiled into the binary.
func DefaultPlaybook() (*Playbook, error) {
	return LoadPlaybook(defaultSingles, defaultDoubles)
}

func parseCatalog(name string, data []byte) ([]Scenario, error) {
	var scenarios []Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("playbook: parse %s: %w", name, err)
	}
	return scenarios, nil
}

// All returns every scenario of the catalog in authored order.
func (p *Playbook) All(c Catalog) ([]Scenario, error) {
	if !c.Valid() {
		return nil, &NotFoundError{Kind: "catalog", Name: c.String()}
	}
	src := p.catalogs[c]
	out := make([]Scenario, len(src))
	for i, s := range src {
		out[i] = s.clone()
	}
	return out, nil
}

// FirstOf returns the first scenario of the catalog.
func (p *Playbook) FirstOf(c Catalog) (Scenario, error) {
	if !c.Valid() {
		return Scenario{}, &NotFoundError{Kind: "catalog", Name: c.String()}
	}
	if len(p.catalogs[c]) == 0 {
		return Scenario{}, &NotFoundError{Kind: "scenario", Name: c.String() + " (empty catalog)"}
	}
	return p.catalogs[c][0].clone(), nil
}

// Scenario looks a scenario up by catalog and name.
func (p *Playbook) Scenario(ref ScenarioRef) (Scenario, error) {
	if !ref.Catalog.Valid() {
		return Scenario{}, &NotFoundError{Kind: "catalog", Name: ref.Catalog.String()}
	}
	for _, s := range p.catalogs[ref.Catalog] {
		if s.Name == ref.Name {
			return s.clone(), nil
		}
	}
	return Scenario{}, &NotFoundError{Kind: "scenario", Name: ref.String()}
}

// Names returns the scenario names of the catalog in authored order.
func (p *Playbook) Names(c Catalog) []string {
	if !c.Valid() {
		return nil
	}
	names := make([]string, len(p.catalogs[c]))
	for i, s := range p.catalogs[c] {
		names[i] = s.Name
	}
	return names
}
