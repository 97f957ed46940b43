package courtboard

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 2.0 // pixels
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64 // window coordinates
	startY   float64
	lastX    float64
	lastY    float64
	hitNode  *Node
	dragging bool
	button   MouseButton // button captured at press time
}

// --- Handler registry ---

type handlerKind uint8

const (
	handlerPointerDown handlerKind = iota
	handlerPointerUp
	handlerPointerMove
)

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	pointerDown []pointerHandler
	pointerUp   []pointerHandler
	pointerMove []pointerHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered surface-level callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind handlerKind
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case handlerPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, h.id, func(p pointerHandler) uint32 { return p.id })
	case handlerPointerUp:
		h.reg.pointerUp = removeHandler(h.reg.pointerUp, h.id, func(p pointerHandler) uint32 { return p.id })
	case handlerPointerMove:
		h.reg.pointerMove = removeHandler(h.reg.pointerMove, h.id, func(p pointerHandler) uint32 { return p.id })
	}
}

func removeHandler[T any](s []T, id uint32, idOf func(T) uint32) []T {
	for i := range s {
		if idOf(s[i]) == id {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Surface-level event registration ---

// OnPointerDown registers a callback for pointer down events anywhere.
func (s *Surface) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerDown = append(s.handlers.pointerDown, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: handlerPointerDown}
}

// OnPointerUp registers a callback for pointer up events anywhere.
func (s *Surface) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerUp = append(s.handlers.pointerUp, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: handlerPointerUp}
}

// OnPointerMove registers a callback for pointer moves, with or without a
// held button (see PointerContext.Down).
func (s *Surface) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerMove = append(s.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, kind: handlerPointerMove}
}

// CapturePointer routes all events for pointerID to the given node.
func (s *Surface) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// ReleasePointer stops routing events for pointerID to a captured node.
func (s *Surface) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Surface) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Hit testing ---

func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape == nil {
		return false
	}
	return n.HitShape.Contains(lx, ly)
}

// hitTest finds the topmost interactable node at window point (sx, sy).
// Pieces are painted after the sidebar, so they are tested first, last
// piece first.
func (s *Surface) hitTest(sx, sy float64) *Node {
	cx, cy := s.ScreenToCourt(sx, sy)
	if courtCanvas.Contains(cx, cy) {
		for i := len(s.pieces) - 1; i >= 0; i-- {
			n := s.pieces[i]
			if !n.Visible || !n.Interactable {
				continue
			}
			lx, ly := n.localPoint(cx, cy)
			if nodeContainsLocal(n, lx, ly) {
				return n
			}
		}
		return nil
	}
	for i := len(s.buttons) - 1; i >= 0; i-- {
		n := s.buttons[i]
		if !n.Visible || !n.Interactable {
			continue
		}
		lx, ly := n.localPoint(sx, sy)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Surface.Update to handle mouse and touch input.
func (s *Surface) processInput() {
	if !ebiten.IsFocused() {
		s.loseFocus()
		return
	}
	s.processMousePointer()
	s.processTouchPointers()
}

// processMousePointer handles mouse input (pointer 0).
func (s *Surface) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	// If the pointer is already down, keep the stored button.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Surface) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Surface) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// loseFocus abandons gestures in progress and forgets held pointers. The
// release that ends them will never be delivered to an unfocused window.
func (s *Surface) loseFocus() {
	s.abandonGestures("focus lost")
	for i := range s.pointers {
		s.pointers[i] = pointerState{lastX: s.pointers[i].lastX, lastY: s.pointers[i].lastY}
		s.captured[i] = nil
	}
}

// processPointer runs the pointer state machine for a single pointer. sx, sy
// are window coordinates.
func (s *Surface) processPointer(pointerID int, sx, sy float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointerID]

	var target *Node
	if c := s.captured[pointerID]; c != nil && c.IsDisposed() {
		if s.debug {
			s.debugCheckDisposed(c, "pointer capture")
		}
		s.captured[pointerID] = nil
	}
	if s.captured[pointerID] != nil {
		target = s.captured[pointerID]
	} else {
		target = s.hitTest(sx, sy)
	}

	if pressed && !ps.down {
		ps.down = true
		ps.button = button
		ps.startX = sx
		ps.startY = sy
		ps.lastX = sx
		ps.lastY = sy
		ps.hitNode = target
		ps.dragging = false

		s.firePointerDown(target, pointerID, sx, sy, ps.button)
	} else if !pressed && ps.down {
		if ps.dragging {
			s.fireDragEnd(ps.hitNode, pointerID, sx, sy, ps.startX, ps.startY,
				sx-ps.lastX, sy-ps.lastY, ps.button)
		} else if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, pointerID, sx, sy, ps.button)
		}

		s.firePointerUp(target, pointerID, sx, sy, ps.button)

		s.captured[pointerID] = nil
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
		ps.lastX = sx
		ps.lastY = sy
	} else if pressed && ps.down {
		if sx != ps.lastX || sy != ps.lastY {
			s.firePointerMove(target, pointerID, sx, sy, ps.button, true)
			if !ps.dragging {
				dx := sx - ps.startX
				dy := sy - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					s.fireDragStart(ps.hitNode, pointerID, sx, sy, ps.startX, ps.startY,
						sx-ps.startX, sy-ps.startY, ps.button)
					// The drag start already covered the movement so far.
					ps.lastX = sx
					ps.lastY = sy
					return
				}
			}
			if ps.dragging {
				s.fireDrag(ps.hitNode, pointerID, sx, sy, ps.startX, ps.startY,
					sx-ps.lastX, sy-ps.lastY, ps.button)
			}
		}
		ps.lastX = sx
		ps.lastY = sy
	} else if !pressed && !ps.down {
		if sx != ps.lastX || sy != ps.lastY {
			s.firePointerMove(target, pointerID, sx, sy, button, false)
			ps.lastX = sx
			ps.lastY = sy
		}
	}
}

// --- Keyboard ---

// shortcut binds a key to a surface command.
type shortcut struct {
	key ebiten.Key
	run func(s *Surface)
}

var shortcuts = []shortcut{
	{ebiten.KeyTab, func(s *Surface) { s.cycleCatalog() }},
	{ebiten.KeyArrowUp, func(s *Surface) { s.stepScenario(-1) }},
	{ebiten.KeyArrowDown, func(s *Surface) { s.stepScenario(1) }},
	{ebiten.Key1, func(s *Surface) { s.SetStrokeColor(StrokePresets[0]) }},
	{ebiten.Key2, func(s *Surface) { s.SetStrokeColor(StrokePresets[1]) }},
	{ebiten.Key3, func(s *Surface) { s.SetStrokeColor(StrokePresets[2]) }},
	{ebiten.KeyD, func(s *Surface) { s.ToggleMode() }},
	{ebiten.KeyR, func(s *Surface) { s.ResetPositions() }},
	{ebiten.KeyE, func(s *Surface) { _, _ = s.Export() }},
	{ebiten.KeyC, func(s *Surface) { s.ClearStrokes() }},
}

// processKeys runs the commands whose key went down this frame.
func (s *Surface) processKeys() {
	for _, sc := range shortcuts {
		if inpututil.IsKeyJustPressed(sc.key) {
			sc.run(s)
		}
	}
}

// --- Event dispatch ---

func (s *Surface) pointerContext(node *Node, pointerID int, sx, sy float64, button MouseButton) PointerContext {
	cx, cy := s.ScreenToCourt(sx, sy)
	ctx := PointerContext{
		Node: node, GlobalX: sx, GlobalY: sy, CourtX: cx, CourtY: cy,
		InCourt: courtCanvas.Contains(cx, cy),
		Button:  button, PointerID: pointerID,
	}
	if node != nil {
		if node.InCourtSpace() {
			ctx.LocalX, ctx.LocalY = node.localPoint(cx, cy)
		} else {
			ctx.LocalX, ctx.LocalY = node.localPoint(sx, sy)
		}
	}
	return ctx
}

func (s *Surface) dragContext(node *Node, pointerID int, sx, sy, startX, startY, dx, dy float64, button MouseButton) DragContext {
	cx, cy := s.ScreenToCourt(sx, sy)
	return DragContext{
		Node: node, GlobalX: sx, GlobalY: sy, CourtX: cx, CourtY: cy,
		StartX: startX, StartY: startY, DeltaX: dx, DeltaY: dy,
		InCourt: courtCanvas.Contains(cx, cy),
		Button:  button, PointerID: pointerID,
	}
}

func (s *Surface) firePointerDown(node *Node, pointerID int, sx, sy float64, button MouseButton) {
	ctx := s.pointerContext(node, pointerID, sx, sy, button)
	for _, h := range s.handlers.pointerDown {
		h.fn(ctx)
	}
}

func (s *Surface) firePointerUp(node *Node, pointerID int, sx, sy float64, button MouseButton) {
	ctx := s.pointerContext(node, pointerID, sx, sy, button)
	for _, h := range s.handlers.pointerUp {
		h.fn(ctx)
	}
}

func (s *Surface) firePointerMove(node *Node, pointerID int, sx, sy float64, button MouseButton, down bool) {
	ctx := s.pointerContext(node, pointerID, sx, sy, button)
	ctx.Down = down
	for _, h := range s.handlers.pointerMove {
		h.fn(ctx)
	}
}

func (s *Surface) fireClick(node *Node, pointerID int, sx, sy float64, button MouseButton) {
	cx, cy := s.ScreenToCourt(sx, sy)
	ctx := ClickContext{
		Node: node, GlobalX: sx, GlobalY: sy, CourtX: cx, CourtY: cy,
		Button: button, PointerID: pointerID,
	}
	if node != nil && node.OnClick != nil {
		node.OnClick(ctx)
	}
}

func (s *Surface) fireDragStart(node *Node, pointerID int, sx, sy, startX, startY, dx, dy float64, button MouseButton) {
	ctx := s.dragContext(node, pointerID, sx, sy, startX, startY, dx, dy, button)
	if node != nil && node.OnDragStart != nil {
		node.OnDragStart(ctx)
	}
}

func (s *Surface) fireDrag(node *Node, pointerID int, sx, sy, startX, startY, dx, dy float64, button MouseButton) {
	ctx := s.dragContext(node, pointerID, sx, sy, startX, startY, dx, dy, button)
	if node != nil && node.OnDrag != nil {
		node.OnDrag(ctx)
	}
}

func (s *Surface) fireDragEnd(node *Node, pointerID int, sx, sy, startX, startY, dx, dy float64, button MouseButton) {
	ctx := s.dragContext(node, pointerID, sx, sy, startX, startY, dx, dy, button)
	if node != nil && node.OnDragEnd != nil {
		node.OnDragEnd(ctx)
	}
}
