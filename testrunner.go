package courtboard

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a script. Coordinates are court
// coordinates.
type testStep struct {
	Action string  `json:"action"`
	Name   string  `json:"name,omitempty"`
	Color  string  `json:"color,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"catalog": true, "scenario": true, "mode": true, "color": true,
	"reset": true, "clear": true, "drag": true, "stroke": true,
	"export": true, "wait": true,
}

// TestRunner sequences board commands and injected gestures across frames
// for automated visual checks. Attach to a Surface via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	exports   []string
}

// LoadTestScript parses a JSON script and returns a TestRunner ready to be
// attached to a Surface via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the surface. The runner's step
// method is called from Surface.Update before input processing each frame.
func (s *Surface) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Exports returns the paths written by export steps so far.
func (r *TestRunner) Exports() []string {
	return r.exports
}

// step advances the runner by one frame. Called from Surface.Update.
func (r *TestRunner) step(s *Surface) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	r.run(s, st)

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) run(s *Surface, st testStep) {
	log := s.logger.With("step", r.cursor, "action", st.Action)
	if !knownActions[st.Action] {
		log.Warn("script: unknown action skipped")
		return
	}

	var err error
	switch st.Action {
	case "catalog":
		var c Catalog
		if c, err = ParseCatalog(st.Name); err == nil {
			err = s.SelectCatalog(c)
		}
	case "scenario":
		err = s.SelectScenario(st.Name)
	case "mode":
		var m InputMode
		if m, err = ParseInputMode(st.Name); err == nil {
			s.SetMode(m)
		}
	case "color":
		if _, err = ParseColor(st.Color); err == nil {
			s.SetStrokeColor(st.Color)
		}
	case "reset":
		s.ResetPositions()
	case "clear":
		s.ClearStrokes()
	case "drag", "stroke":
		// Both are the same gesture; the board's mode decides what it does.
		if st.Action == "stroke" && s.board.Mode() != ModeAnnotate {
			s.SetMode(ModeAnnotate)
		} else if st.Action == "drag" && s.board.Mode() != ModeMove {
			s.SetMode(ModeMove)
		}
		// A press and release alone never leave the dead zone, so a drag
		// needs at least one move in between.
		frames := max(st.Frames, 3)
		s.InjectCourtDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "export":
		var path string
		if path, err = s.Export(); err == nil {
			r.exports = append(r.exports, path)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	if err != nil {
		log.Warn("script: step failed", "err", err)
	}
}
