package courtboard

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// runScript steps the runner and feeds injected input the way Update does,
// without touching real input.
func runScript(t *testing.T, s *Surface, r *TestRunner, maxFrames int) int {
	t.Helper()
	s.SetTestRunner(r)
	for frame := 1; frame <= maxFrames; frame++ {
		r.step(s)
		s.processInjectedInput()
		if r.Done() {
			return frame
		}
	}
	t.Fatalf("script not done after %d frames", maxFrames)
	return 0
}

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{"steps":[
		{"action":"catalog","name":"doubles"},
		{"action":"drag","fromX":240,"fromY":560,"toX":200,"toY":400,"frames":5},
		{"action":"wait","frames":3}
	]}`)
	r, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	if len(r.steps) != 3 {
		t.Fatalf("steps = %d", len(r.steps))
	}
	if st := r.steps[1]; st.Action != "drag" || st.FromX != 240 || st.ToY != 400 || st.Frames != 5 {
		t.Errorf("drag step = %+v", st)
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`{broken`))
	if err == nil || !strings.HasPrefix(err.Error(), "parse test script") {
		t.Errorf("err = %v", err)
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps":[]}`))
	if err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestRunnerCommands(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	r, err := LoadTestScript([]byte(`{"steps":[
		{"action":"catalog","name":"doubles"},
		{"action":"scenario","name":"Both Back Defense"},
		{"action":"color","color":"#ffffff"},
		{"action":"mode","name":"annotate"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	frames := runScript(t, s, r, 10)
	if frames != 4 {
		t.Errorf("frames = %d, want 4", frames)
	}
	b := s.Board()
	if b.Catalog() != CatalogDoubles || b.Scenario().Name != "Both Back Defense" {
		t.Errorf("board at %v", b.ScenarioRef())
	}
	if b.StrokeColor() != StrokeWhite || b.Mode() != ModeAnnotate {
		t.Errorf("color=%q mode=%v", b.StrokeColor(), b.Mode())
	}
}

func TestRunnerDragAndStroke(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	r, err := LoadTestScript([]byte(`{"steps":[
		{"action":"drag","fromX":215,"fromY":560,"toX":100,"toY":100,"frames":4},
		{"action":"stroke","fromX":10,"fromY":20,"toX":50,"toY":80,"frames":3},
		{"action":"drag","fromX":140,"fromY":45,"toX":150,"toY":60,"frames":3}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r, 30)

	b := s.Board()
	if e, _ := b.Entity("P1"); e.X != 100 || e.Y != 100 {
		t.Errorf("P1 = (%v,%v)", e.X, e.Y)
	}
	strokes := b.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("strokes = %d, want 1", len(strokes))
	}
	want := []float64{10, 20, 50, 80}
	for i, v := range want {
		if strokes[0].Points[i] != v {
			t.Errorf("points = %v, want %v", strokes[0].Points, want)
			break
		}
	}
	// The last drag switched back to move mode.
	if b.Mode() != ModeMove {
		t.Errorf("mode = %v", b.Mode())
	}
	if e, _ := b.Entity("P2"); e.X != 150 || e.Y != 60 {
		t.Errorf("P2 = (%v,%v)", e.X, e.Y)
	}
}

func TestRunnerWait(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	r, _ := LoadTestScript([]byte(`{"steps":[
		{"action":"wait","frames":3},
		{"action":"clear"}
	]}`))
	s.SetTestRunner(r)

	r.step(s) // wait, counts as frame 1
	if r.cursor != 1 {
		t.Fatalf("cursor = %d", r.cursor)
	}
	r.step(s)
	r.step(s)
	if r.cursor != 1 {
		t.Errorf("advanced while waiting: cursor = %d", r.cursor)
	}
	r.step(s)
	if r.cursor != 2 || !r.Done() {
		t.Errorf("cursor=%d done=%v", r.cursor, r.Done())
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	r, _ := LoadTestScript([]byte(`{"steps":[
		{"action":"drag","fromX":215,"fromY":560,"toX":100,"toY":100,"frames":5},
		{"action":"reset"}
	]}`))
	s.SetTestRunner(r)

	r.step(s)
	if s.PendingInput() != 5 {
		t.Fatalf("pending = %d, want 5", s.PendingInput())
	}
	r.step(s)
	if r.cursor != 1 {
		t.Error("runner advanced with input still queued")
	}
	drain(s)
	r.step(s)
	if r.cursor != 2 {
		t.Errorf("cursor = %d", r.cursor)
	}
	if e, _ := s.Board().Entity("P1"); e.X != 215 {
		t.Errorf("reset step did not run: P1.X = %v", e.X)
	}
}

func TestRunnerBadStepsWarn(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSurface(t, SurfaceConfig{Logger: slog.New(slog.NewTextHandler(&buf, nil))})
	r, _ := LoadTestScript([]byte(`{"steps":[
		{"action":"teleport"},
		{"action":"scenario","name":"I-Formation"},
		{"action":"color","color":"bogus"},
		{"action":"mode","name":"sideways"},
		{"action":"export"}
	]}`))
	runScript(t, s, r, 10)

	out := buf.String()
	if !strings.Contains(out, "unknown action skipped") {
		t.Error("unknown action not logged")
	}
	if got := strings.Count(out, "script: step failed"); got != 4 {
		t.Errorf("failed steps logged = %d, want 4\n%s", got, out)
	}
	if len(r.Exports()) != 0 {
		t.Errorf("exports = %v", r.Exports())
	}
	if s.Board().StrokeColor() != StrokeYellow {
		t.Error("bad color applied")
	}
}

func TestRunnerDragDefaultFrames(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	r, err := LoadTestScript([]byte(`{"steps":[
		{"action":"drag","fromX":215,"fromY":560,"toX":100,"toY":100},
		{"action":"drag","fromX":140,"fromY":45,"toX":150,"toY":60,"frames":1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r, 20)

	b := s.Board()
	if e, _ := b.Entity("P1"); e.X != 100 || e.Y != 100 {
		t.Errorf("P1 = (%v,%v), want (100,100)", e.X, e.Y)
	}
	if e, _ := b.Entity("P2"); e.X != 150 || e.Y != 60 {
		t.Errorf("P2 = (%v,%v), want (150,60)", e.X, e.Y)
	}
}
