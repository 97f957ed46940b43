package courtboard

import (
	"log/slog"
)

// PieceLocator exposes the on-surface position of entity pieces. The
// Surface implements it; the drag controller reads the final position from
// it instead of trusting pointer deltas.
type PieceLocator interface {
	PiecePosition(id string) (x, y float64, ok bool)
	SetPiecePosition(id string, x, y float64)
}

type dragState uint8

const (
	dragIdle dragState = iota
	dragDragging
)

// DragController commits a piece drag to the board. It is a two-state
// machine (idle, dragging) that only leaves idle while the board is in
// ModeMove.
type DragController struct {
	board    *Board
	pieces   PieceLocator
	state    dragState
	entityID string
	policy   AbandonPolicy
	logger   *slog.Logger
}

// NewDragController creates an idle controller. A nil logger uses
// slog.Default.
func NewDragController(board *Board, pieces PieceLocator, policy AbandonPolicy, logger *slog.Logger) *DragController {
	if logger == nil {
		logger = slog.Default()
	}
	return &DragController{board: board, pieces: pieces, policy: policy, logger: logger}
}

// Dragging reports whether a drag is in progress.
func (d *DragController) Dragging() bool {
	return d.state == dragDragging
}

// EntityID returns the id of the entity being dragged, or "".
func (d *DragController) EntityID() string {
	if d.state != dragDragging {
		return ""
	}
	return d.entityID
}

// Begin starts dragging the entity. Refused in ModeAnnotate or for an id
// the board does not know.
func (d *DragController) Begin(id string) bool {
	if d.board.Mode() != ModeMove {
		return false
	}
	if _, ok := d.board.Entity(id); !ok {
		d.logger.Debug("drag refused", "entity", id, "reason", "unknown entity")
		return false
	}
	d.state = dragDragging
	d.entityID = id
	return true
}

// End reads the piece's final position and moves the entity there. If the
// board has left ModeMove the drag is abandoned instead.
func (d *DragController) End() error {
	if d.state != dragDragging {
		d.logger.Debug("drag end ignored", "reason", "no drag in progress")
		return nil
	}
	if d.board.Mode() != ModeMove {
		return d.Abandon()
	}
	return d.commit()
}

func (d *DragController) commit() error {
	id := d.entityID
	d.state = dragIdle
	d.entityID = ""

	x, y, ok := d.pieces.PiecePosition(id)
	if !ok {
		return &NotFoundError{Kind: "entity", Name: id}
	}
	return d.board.MoveEntity(id, x, y)
}

// Abandon ends a drag that lost its pointer release, per the policy. With
// AbandonDiscard the piece goes back to the entity's board position.
func (d *DragController) Abandon() error {
	if d.state != dragDragging {
		return nil
	}
	if d.policy == AbandonCommit {
		return d.commit()
	}
	id := d.entityID
	d.state = dragIdle
	d.entityID = ""
	if e, ok := d.board.Entity(id); ok {
		d.pieces.SetPiecePosition(id, e.X, e.Y)
	}
	return nil
}

// Reset returns to idle without touching board or pieces.
func (d *DragController) Reset() {
	d.state = dragIdle
	d.entityID = ""
}
