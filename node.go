package courtboard

// HitShape is used for custom hit testing regions in node-local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data. Global coordinates are window
// pixels; court coordinates are relative to the court canvas origin.
type PointerContext struct {
	Node      *Node
	GlobalX   float64
	GlobalY   float64
	CourtX    float64
	CourtY    float64
	LocalX    float64
	LocalY    float64
	InCourt   bool // the pointer is over the court canvas
	Down      bool // a button is held (move events only)
	Button    MouseButton
	PointerID int
}

// ClickContext carries click event data.
type ClickContext struct {
	Node      *Node
	GlobalX   float64
	GlobalY   float64
	CourtX    float64
	CourtY    float64
	Button    MouseButton
	PointerID int
}

// DragContext carries drag event data. Deltas are in pixels since the
// previous drag event; court and window pixels share the same scale.
type DragContext struct {
	Node      *Node
	GlobalX   float64
	GlobalY   float64
	CourtX    float64
	CourtY    float64
	StartX    float64
	StartY    float64
	DeltaX    float64
	DeltaY    float64
	InCourt   bool
	Button    MouseButton
	PointerID int
}

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic: the board is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// NodeKind selects how a node is drawn and in which space it lives.
type NodeKind uint8

const (
	NodeKindPlayer NodeKind = iota // player icon, court space, anchored at its entity position
	NodeKindBall                   // ball circle, court space
	NodeKindButton                 // sidebar control, window space, anchored at its top-left corner
)

// Node is an interactive element of the surface: an entity piece on the
// court or a sidebar control. A single flat struct is used for both kinds.
type Node struct {
	// Identity
	ID   uint32
	Name string // entity id for pieces, control name for buttons
	Kind NodeKind

	// Position: court coordinates for pieces, window coordinates for buttons.
	X, Y          float64
	Width, Height float64 // buttons only

	// Appearance
	Color    Color
	Label    string
	Selected bool // buttons: drawn highlighted

	// Interaction
	Visible      bool
	Interactable bool
	Draggable    bool
	HitShape     HitShape

	// Per-node callbacks (nil by default)
	OnClick     func(ClickContext)
	OnDragStart func(DragContext)
	OnDrag      func(DragContext)
	OnDragEnd   func(DragContext)

	tween    *TweenGroup
	disposed bool
}

// Piece hit areas, relative to the entity position.
var (
	playerHit = HitRect{X: -13, Y: -16, Width: 26, Height: 28}
	ballHit   = HitCircle{Radius: 9}
)

// NewPiece creates the court node for an entity.
func NewPiece(e Entity) *Node {
	n := &Node{
		ID:           nextNodeID(),
		Name:         e.ID,
		Kind:         NodeKindPlayer,
		X:            e.X,
		Y:            e.Y,
		Color:        colorOrWhite(e.Color),
		Label:        e.Label,
		Visible:      true,
		Interactable: true,
		Draggable:    true,
		HitShape:     playerHit,
	}
	if e.IsBall() {
		n.Kind = NodeKindBall
		n.HitShape = ballHit
	}
	return n
}

// NewButton creates a clickable sidebar control covering bounds.
func NewButton(name, label string, bounds Rect) *Node {
	return &Node{
		ID:           nextNodeID(),
		Name:         name,
		Kind:         NodeKindButton,
		X:            bounds.X,
		Y:            bounds.Y,
		Width:        bounds.Width,
		Height:       bounds.Height,
		Color:        ColorWhite,
		Label:        label,
		Visible:      true,
		Interactable: true,
		HitShape:     HitRect{Width: bounds.Width, Height: bounds.Height},
	}
}

// InCourtSpace reports whether the node is positioned in court coordinates.
func (n *Node) InCourtSpace() bool {
	return n.Kind != NodeKindButton
}

// Bounds returns the button rectangle in window coordinates.
func (n *Node) Bounds() Rect {
	return Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// SetPosition moves the node and stops any running tween on it.
func (n *Node) SetPosition(x, y float64) {
	n.StopTween()
	n.X = x
	n.Y = y
}

// StopTween cancels a running position tween, leaving the node where it is.
func (n *Node) StopTween() {
	if n.tween != nil {
		n.tween.Done = true
		n.tween = nil
	}
}

// Dispose marks the node dead and drops its callbacks.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true
	n.ID = 0
	n.StopTween()
	n.HitShape = nil
	n.OnClick = nil
	n.OnDragStart = nil
	n.OnDrag = nil
	n.OnDragEnd = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// localPoint converts a point in the node's space to node-local coordinates.
func (n *Node) localPoint(x, y float64) (float64, float64) {
	return x - n.X, y - n.Y
}
