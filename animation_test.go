package courtboard

import (
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionLinear(t *testing.T) {
	n := NewPiece(Entity{ID: "P1", X: 0, Y: 100})
	g := TweenPosition(n, 100, 0, 1.0, ease.Linear)

	g.Update(0.5)
	if !approxEqual(n.X, 50, 0.01) || !approxEqual(n.Y, 50, 0.01) {
		t.Errorf("halfway = (%v,%v), want (50,50)", n.X, n.Y)
	}
	if g.Done {
		t.Error("done at halfway")
	}

	g.Update(0.6)
	if n.X != 100 || n.Y != 0 {
		t.Errorf("end = (%v,%v), want (100,0)", n.X, n.Y)
	}
	if !g.Done {
		t.Error("not done past duration")
	}
	if n.tween != nil {
		t.Error("finished tween still attached to node")
	}
}

func TestTweenPositionReplacesRunning(t *testing.T) {
	n := NewPiece(Entity{ID: "P1"})
	first := TweenPosition(n, 100, 100, 1, ease.Linear)
	second := TweenPosition(n, -100, -100, 1, ease.Linear)

	if !first.Done {
		t.Error("first tween should stop")
	}
	first.Update(0.5)
	second.Update(0.5)
	if n.X >= 0 {
		t.Errorf("x = %v, the stopped tween still writes", n.X)
	}
}

func TestTweenGroupDisposedTarget(t *testing.T) {
	n := NewPiece(Entity{ID: "P1"})
	g := TweenPosition(n, 100, 100, 1, ease.Linear)
	n.disposed = true
	g.Update(0.5)
	if !g.Done || n.X != 0 {
		t.Errorf("done=%v x=%v", g.Done, n.X)
	}
}

func TestAnimatePieceSnaps(t *testing.T) {
	s := newTestSurface(t, SurfaceConfig{})
	n := s.Piece("P1")

	s.animatePiece(n, 1, 2, 0)
	if n.X != 1 || n.Y != 2 || len(s.tweens) != 0 {
		t.Errorf("zero duration: (%v,%v) tweens=%d", n.X, n.Y, len(s.tweens))
	}
	s.animatePiece(n, 1, 2, time.Second)
	if len(s.tweens) != 0 {
		t.Error("piece already in place should not tween")
	}
	s.animatePiece(n, 50, 60, time.Second)
	if len(s.tweens) != 1 || n.X != 1 {
		t.Errorf("tweens=%d x=%v", len(s.tweens), n.X)
	}
}
