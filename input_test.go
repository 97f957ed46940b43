package courtboard

import (
	"testing"
)

func newTestSurface(t *testing.T, cfg SurfaceConfig) *Surface {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}
	return NewSurface(newBoard(t), cfg)
}

// courtPoint converts court coordinates to window coordinates.
func courtPoint(s *Surface, x, y float64) (float64, float64) {
	return s.CourtToScreen(x, y)
}

// buttonCenter returns the window center of a sidebar control.
func buttonCenter(t *testing.T, s *Surface, name string) (float64, float64) {
	t.Helper()
	b := s.Button(name)
	if b == nil {
		t.Fatalf("no button %q", name)
	}
	return b.X + b.Width/2, b.Y + b.Height/2
}

// drain feeds every queued injected event through the pointer state machine.
func drain(s *Surface) int {
	n := 0
	for s.processInjectedInput() {
		n++
	}
	return n
}

// --- Hit shapes ---

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 30, Height: 40}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},  // top-left corner
		{40, 60, true},  // bottom-right corner
		{25, 40, true},  // center
		{9, 20, false},  // left of
		{41, 20, false}, // right of
		{10, 19, false}, // above
		{10, 61, false}, // below
	}
	for _, tt := range tests {
		got := r.Contains(tt.x, tt.y)
		if got != tt.want {
			t.Errorf("HitRect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 10}
	tests := []struct {
		x, y float64
		want bool
	}{
		{50, 50, true},  // center
		{60, 50, true},  // on edge
		{50, 40, true},  // on edge (top)
		{57, 57, true},  // inside (dist ~9.9)
		{58, 58, false}, // outside (dist ~11.3)
		{61, 50, false}, // just outside
	}
	for _, tt := range tests {
		got := c.Contains(tt.x, tt.y)
		if got != tt.want {
			t.Errorf("HitCircle.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

// --- Hit testing ---

func TestHitTestPieces(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})

	tests := []struct {
		name   string
		cx, cy float64
		want   string
	}{
		{"player center", 215, 560, "P1"},
		{"player head", 215, 546, "P1"},
		{"ball", 225, 548, "ball"},
		{"opponent", 140, 45, "P2"},
		{"empty court", 200, 300, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := courtPoint(s, tt.cx, tt.cy)
			got := s.hitTest(sx, sy)
			name := ""
			if got != nil {
				name = got.Name
			}
			if name != tt.want {
				t.Errorf("hitTest = %q, want %q", name, tt.want)
			}
		})
	}
}

func TestHitTestTopmostPiece(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	s.SetPiecePosition(BallID, 215, 560) // on top of P1
	sx, sy := courtPoint(s, 215, 560)
	if got := s.hitTest(sx, sy); got == nil || got.Name != BallID {
		t.Errorf("hitTest = %v, want ball (painted last)", got)
	}
}

func TestHitTestSkipsNonInteractable(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	s.Piece("P1").Interactable = false
	sx, sy := courtPoint(s, 215, 565)
	if got := s.hitTest(sx, sy); got != nil {
		t.Errorf("hitTest = %q, want nil", got.Name)
	}
	s.Piece("P1").Interactable = true
	s.Piece("P1").Visible = false
	if got := s.hitTest(sx, sy); got != nil {
		t.Errorf("hidden piece hit: %q", got.Name)
	}
}

func TestHitTestButtons(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	x, y := buttonCenter(t, s, ctlDoubles)
	if got := s.hitTest(x, y); got == nil || got.Name != ctlDoubles {
		t.Errorf("hitTest = %v, want doubles tab", got)
	}
	if got := s.hitTest(5, 5); got != nil {
		t.Errorf("sidebar margin hit %q", got.Name)
	}
	// Swatches are round: the corner of the bounding box misses.
	sw := s.Button(swatchPrefix + StrokeRed)
	if got := s.hitTest(sw.X+1, sw.Y+1); got != nil {
		t.Errorf("swatch corner hit %q", got.Name)
	}
}

// --- Pointer state machine ---

func TestClickFiresOnSameNode(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	var clicks []string
	for _, name := range []string{ctlReset, ctlClear} {
		b := s.Button(name)
		next := b.OnClick
		b.OnClick = func(ctx ClickContext) {
			clicks = append(clicks, ctx.Node.Name)
			next(ctx)
		}
	}

	x, y := buttonCenter(t, s, ctlReset)
	s.processPointer(0, x, y, true, MouseButtonLeft)
	s.processPointer(0, x+1, y, true, MouseButtonLeft) // inside dead zone
	s.processPointer(0, x+1, y, false, MouseButtonLeft)
	if len(clicks) != 1 || clicks[0] != ctlReset {
		t.Errorf("clicks = %v", clicks)
	}

	// Press on one button, release on another: no click.
	ox, oy := buttonCenter(t, s, ctlClear)
	s.processPointer(0, x, y, true, MouseButtonLeft)
	s.processPointer(0, ox, oy, false, MouseButtonLeft)
	if len(clicks) != 1 {
		t.Errorf("clicks = %v, want no second click", clicks)
	}
}

func TestDragDeadZone(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{DragDeadZone: 5})
	starts := 0
	p1 := s.Piece("P1")
	next := p1.OnDragStart
	p1.OnDragStart = func(ctx DragContext) {
		starts++
		next(ctx)
	}

	x, y := courtPoint(s, 215, 560)
	s.processPointer(0, x, y, true, MouseButtonLeft)
	s.processPointer(0, x+3, y+3, true, MouseButtonLeft) // 4.2px
	if starts != 0 {
		t.Fatal("drag started inside the dead zone")
	}
	s.processPointer(0, x+4, y+4, true, MouseButtonLeft) // 5.7px
	if starts != 1 {
		t.Errorf("drag starts = %d, want 1", starts)
	}
	s.processPointer(0, x+10, y+10, true, MouseButtonLeft)
	if starts != 1 {
		t.Errorf("drag started twice")
	}
}

func TestDragStartCoversFullDelta(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	var deltas []Vec2
	p1 := s.Piece("P1")
	p1.OnDragStart = func(ctx DragContext) { deltas = append(deltas, Vec2{ctx.DeltaX, ctx.DeltaY}) }
	p1.OnDrag = func(ctx DragContext) { deltas = append(deltas, Vec2{ctx.DeltaX, ctx.DeltaY}) }

	x, y := courtPoint(s, 215, 560)
	s.processPointer(0, x, y, true, MouseButtonLeft)
	s.processPointer(0, x+10, y, true, MouseButtonLeft)
	s.processPointer(0, x+15, y+5, true, MouseButtonLeft)

	want := []Vec2{{10, 0}, {5, 5}}
	if len(deltas) != len(want) {
		t.Fatalf("deltas = %v, want %v", deltas, want)
	}
	for i := range want {
		if deltas[i] != want[i] {
			t.Errorf("delta %d = %v, want %v", i, deltas[i], want[i])
		}
	}
}

func TestPointerMoveReportsButtonState(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	var downs []bool
	s.OnPointerMove(func(ctx PointerContext) { downs = append(downs, ctx.Down) })

	x, y := courtPoint(s, 200, 300)
	s.processPointer(0, x, y, false, MouseButtonLeft)
	s.processPointer(0, x+5, y, false, MouseButtonLeft) // hover
	s.processPointer(0, x+5, y, true, MouseButtonLeft)
	s.processPointer(0, x+9, y, true, MouseButtonLeft) // held
	s.processPointer(0, x+9, y, true, MouseButtonLeft) // no movement

	// The first hover moves away from the origin.
	want := []bool{false, false, true}
	if len(downs) != len(want) {
		t.Fatalf("moves = %v, want %v", downs, want)
	}
	for i := range want {
		if downs[i] != want[i] {
			t.Errorf("move %d Down = %v, want %v", i, downs[i], want[i])
		}
	}
}

func TestPointerContextCoordinates(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	var got PointerContext
	s.OnPointerDown(func(ctx PointerContext) { got = ctx })

	sx, sy := courtPoint(s, 220, 565)
	s.processPointer(0, sx, sy, true, MouseButtonLeft)

	if got.Node == nil || got.Node.Name != "P1" {
		t.Fatalf("node = %v", got.Node)
	}
	if got.CourtX != 220 || got.CourtY != 565 || !got.InCourt {
		t.Errorf("court = (%v,%v) in=%v", got.CourtX, got.CourtY, got.InCourt)
	}
	if got.LocalX != 5 || got.LocalY != 5 {
		t.Errorf("local = (%v,%v), want (5,5)", got.LocalX, got.LocalY)
	}
	if got.GlobalX != sx || got.GlobalY != sy {
		t.Errorf("global = (%v,%v)", got.GlobalX, got.GlobalY)
	}

	s.processPointer(0, sx, sy, false, MouseButtonLeft)
	s.processPointer(0, 10, 10, true, MouseButtonLeft)
	if got.InCourt {
		t.Error("sidebar press reported in court")
	}
}

func TestButtonKeptFromPress(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	var buttons []MouseButton
	s.OnPointerUp(func(ctx PointerContext) { buttons = append(buttons, ctx.Button) })

	x, y := courtPoint(s, 200, 300)
	s.processPointer(0, x, y, true, MouseButtonRight)
	s.processPointer(0, x, y, false, MouseButtonLeft)
	if len(buttons) != 1 || buttons[0] != MouseButtonRight {
		t.Errorf("buttons = %v", buttons)
	}
}

func TestCapturePointer(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	p2 := s.Piece("P2")
	var hits []string
	s.OnPointerDown(func(ctx PointerContext) {
		if ctx.Node != nil {
			hits = append(hits, ctx.Node.Name)
		}
	})

	s.CapturePointer(0, p2)
	x, y := courtPoint(s, 215, 560) // over P1
	s.processPointer(0, x, y, true, MouseButtonLeft)
	s.processPointer(0, x, y, false, MouseButtonLeft)
	// Release clears the capture.
	s.processPointer(0, x, y, true, MouseButtonLeft)

	if len(hits) != 2 || hits[0] != "P2" || hits[1] != "P1" {
		t.Errorf("hits = %v, want [P2 P1]", hits)
	}

	s.CapturePointer(maxPointers, p2) // out of range is ignored
	s.ReleasePointer(-1)
}

func TestCapturedDisposedNodeDropped(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	dead := NewButton("dead", "", Rect{Width: 10, Height: 10})
	dead.Dispose()
	s.CapturePointer(0, dead)

	var got *Node
	s.OnPointerDown(func(ctx PointerContext) { got = ctx.Node })
	x, y := courtPoint(s, 215, 560)
	s.processPointer(0, x, y, true, MouseButtonLeft)
	if got == nil || got.Name != "P1" {
		t.Errorf("node = %v, want P1", got)
	}
	if s.captured[0] != nil {
		t.Error("disposed capture kept")
	}
}

// --- Handler registry ---

func TestCallbackHandleRemove(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	var a, b int
	ha := s.OnPointerDown(func(PointerContext) { a++ })
	s.OnPointerDown(func(PointerContext) { b++ })

	x, y := courtPoint(s, 200, 300)
	s.processPointer(0, x, y, true, MouseButtonLeft)
	s.processPointer(0, x, y, false, MouseButtonLeft)

	ha.Remove()
	ha.Remove() // second remove is a no-op
	s.processPointer(0, x, y, true, MouseButtonLeft)

	if a != 1 || b != 2 {
		t.Errorf("a=%d b=%d, want 1 and 2", a, b)
	}
	CallbackHandle{}.Remove()
}

func TestCallbackHandleRemoveEachKind(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	before := [3]int{
		len(s.handlers.pointerDown), len(s.handlers.pointerUp), len(s.handlers.pointerMove),
	}
	handles := []CallbackHandle{
		s.OnPointerDown(func(PointerContext) {}),
		s.OnPointerUp(func(PointerContext) {}),
		s.OnPointerMove(func(PointerContext) {}),
	}
	for _, h := range handles {
		h.Remove()
	}
	after := [3]int{
		len(s.handlers.pointerDown), len(s.handlers.pointerUp), len(s.handlers.pointerMove),
	}
	if before != after {
		t.Errorf("handler counts %v, want %v", after, before)
	}
}

func TestLoseFocusResetsPointers(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	ups := 0
	s.OnPointerUp(func(PointerContext) { ups++ })

	x, y := courtPoint(s, 200, 300)
	s.processPointer(0, x, y, true, MouseButtonLeft)
	s.CapturePointer(0, s.Piece("P1"))
	s.loseFocus()

	if s.pointers[0].down || s.captured[0] != nil {
		t.Error("pointer state kept after focus loss")
	}
	// The release that arrives later is not a pointer-up.
	s.processPointer(0, x, y, false, MouseButtonLeft)
	if ups != 0 {
		t.Errorf("ups = %d", ups)
	}
}
