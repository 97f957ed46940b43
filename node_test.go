package courtboard

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestNewPiece(t *testing.T) {
	tests := []struct {
		name     string
		e        Entity
		kind     NodeKind
		hitLocal Vec2
	}{
		{"player", Entity{ID: "P1", X: 10, Y: 20, Color: "#3498db", Label: "You"}, NodeKindPlayer, Vec2{12, 11}},
		{"ball", Entity{ID: BallID, X: 5, Y: 5, Color: "yellow"}, NodeKindBall, Vec2{0, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewPiece(tt.e)
			if n.Kind != tt.kind || n.Name != tt.e.ID {
				t.Errorf("kind=%v name=%q", n.Kind, n.Name)
			}
			if n.X != tt.e.X || n.Y != tt.e.Y {
				t.Errorf("pos = (%v,%v)", n.X, n.Y)
			}
			if n.Label != tt.e.Label {
				t.Errorf("label = %q", n.Label)
			}
			if !n.InCourtSpace() {
				t.Error("piece should live in court space")
			}
			if !n.HitShape.Contains(tt.hitLocal.X, tt.hitLocal.Y) {
				t.Errorf("hit shape misses %+v", tt.hitLocal)
			}
			if !n.Visible || !n.Interactable || !n.Draggable {
				t.Error("new piece should be visible and draggable")
			}
		})
	}
}

func TestNewPieceBadColor(t *testing.T) {
	n := NewPiece(Entity{ID: "P1", Color: "teal-ish"})
	if n.Color != ColorWhite {
		t.Errorf("color = %+v, want white fallback", n.Color)
	}
}

func TestNewButton(t *testing.T) {
	b := NewButton("cmd:x", "X", Rect{X: 10, Y: 20, Width: 100, Height: 30})
	if b.InCourtSpace() || b.Draggable {
		t.Error("button should be a window-space click target")
	}
	if b.Bounds() != (Rect{X: 10, Y: 20, Width: 100, Height: 30}) {
		t.Errorf("bounds = %+v", b.Bounds())
	}
	lx, ly := b.localPoint(110, 50)
	if !b.HitShape.Contains(lx, ly) {
		t.Error("bottom-right corner should hit")
	}
	lx, ly = b.localPoint(111, 50)
	if b.HitShape.Contains(lx, ly) {
		t.Error("point right of the button should miss")
	}
}

func TestNodeIDsUnique(t *testing.T) {
	a := NewPiece(Entity{ID: "P1"})
	b := NewPiece(Entity{ID: "P1"})
	if a.ID == 0 || a.ID == b.ID {
		t.Errorf("ids %d and %d", a.ID, b.ID)
	}
}

func TestNodeDispose(t *testing.T) {
	n := NewPiece(Entity{ID: "P1"})
	n.OnDrag = func(DragContext) {}
	g := TweenPosition(n, 10, 10, 1, ease.Linear)

	n.Dispose()
	if !n.IsDisposed() || n.ID != 0 {
		t.Error("not disposed")
	}
	if n.OnDrag != nil || n.HitShape != nil {
		t.Error("callbacks or hit shape kept")
	}
	if !g.Done {
		t.Error("tween not stopped")
	}
	n.Dispose() // idempotent
}

func TestNodeSetPositionStopsTween(t *testing.T) {
	n := NewPiece(Entity{ID: "P1"})
	g := TweenPosition(n, 100, 100, 1, ease.Linear)
	n.SetPosition(3, 4)
	if !g.Done || n.tween != nil {
		t.Error("tween still running")
	}
	g.Update(0.5)
	if n.X != 3 || n.Y != 4 {
		t.Errorf("stopped tween moved node to (%v,%v)", n.X, n.Y)
	}
}
