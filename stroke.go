package courtboard

import (
	"errors"
	"log/slog"
)

type strokeState uint8

const (
	strokeIdle strokeState = iota
	strokeDrawing
)

// StrokeCapture turns a pointer gesture on the court into a straight
// annotation arrow. It is a two-state machine (idle, drawing) that only
// leaves idle while the board is in ModeAnnotate.
type StrokeCapture struct {
	board  *Board
	state  strokeState
	policy AbandonPolicy
	logger *slog.Logger
}

// NewStrokeCapture creates an idle capture for board. A nil logger uses
// slog.Default.
func NewStrokeCapture(board *Board, policy AbandonPolicy, logger *slog.Logger) *StrokeCapture {
	if logger == nil {
		logger = slog.Default()
	}
	return &StrokeCapture{board: board, policy: policy, logger: logger}
}

// Drawing reports whether a stroke gesture is in progress.
func (c *StrokeCapture) Drawing() bool {
	return c.state == strokeDrawing
}

// Policy returns the abandon policy.
func (c *StrokeCapture) Policy() AbandonPolicy {
	return c.policy
}

// Start begins a stroke at (x, y). Ignored outside ModeAnnotate. Returns
// whether a stroke was started.
func (c *StrokeCapture) Start(x, y float64) bool {
	if c.board.Mode() != ModeAnnotate {
		return false
	}
	c.board.BeginStroke(x, y)
	c.state = strokeDrawing
	return true
}

// Move points the open stroke at (x, y). Ignored while idle. If the board
// has left ModeAnnotate the gesture is abandoned instead.
func (c *StrokeCapture) Move(x, y float64) {
	if c.state != strokeDrawing {
		return
	}
	if c.board.Mode() != ModeAnnotate {
		c.Abandon()
		return
	}
	if err := c.board.SetStrokeEnd(x, y); err != nil {
		c.absorb("move", err)
	}
}

// End freezes the open stroke and returns to idle. If the board has left
// ModeAnnotate the gesture is abandoned instead.
func (c *StrokeCapture) End() {
	if c.state != strokeDrawing {
		return
	}
	if c.board.Mode() != ModeAnnotate {
		c.Abandon()
		return
	}
	c.finish()
}

// Abandon ends a gesture that lost its pointer release, per the policy.
func (c *StrokeCapture) Abandon() {
	if c.state != strokeDrawing {
		return
	}
	if c.policy == AbandonCommit {
		c.finish()
		return
	}
	c.state = strokeIdle
	if err := c.board.DiscardStroke(); err != nil {
		c.absorb("discard", err)
	}
}

func (c *StrokeCapture) finish() {
	c.state = strokeIdle
	if err := c.board.EndStroke(); err != nil {
		c.absorb("end", err)
	}
}

// Reset returns to idle without touching the board. Used when the board has
// already dropped the strokes (scenario change, clear).
func (c *StrokeCapture) Reset() {
	c.state = strokeIdle
}

func (c *StrokeCapture) absorb(op string, err error) {
	if errors.Is(err, ErrInvalidGesture) {
		c.state = strokeIdle
		c.logger.Debug("stroke gesture ignored", "op", op)
		return
	}
	c.logger.Warn("stroke gesture failed", "op", op, "err", err)
}
