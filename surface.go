package courtboard

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// SurfaceConfig configures a Surface. The zero value is usable.
type SurfaceConfig struct {
	ExportDir    string        // directory for exported PNGs; "" means the working directory
	Abandon      AbandonPolicy // what a gesture that loses its release does
	DragDeadZone float64       // pixels; 0 uses the default
	ResetTween   time.Duration // reset animation length; 0 snaps
	Logger       *slog.Logger  // nil uses slog.Default
	Debug        bool
}

// Surface draws a Board in a window and feeds pointer and keyboard input
// back into it. It owns the gesture controllers, the entity pieces and the
// sidebar controls, and it is the board's render sink.
type Surface struct {
	board  *Board
	cfg    SurfaceConfig
	logger *slog.Logger
	debug  bool

	strokes       *StrokeCapture
	drags         *DragController
	strokePointer int
	grab          Vec2 // offset from the pointer to the dragged piece

	pieces  []*Node
	buttons []*Node
	layout  sidebarLayout
	tweens  []*TweenGroup

	fonts   *fontSet
	fontErr error
	stage   *ebiten.Image
	status  string

	// Input state
	handlers     handlerRegistry
	captured     [maxPointers]*Node
	pointers     [maxPointers]pointerState
	dragDeadZone float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticPointerEvent

	testRunner *TestRunner
	updateFunc func() error
	running    bool
}

// NewSurface creates a surface for board and registers it as a sink.
func NewSurface(board *Board, cfg SurfaceConfig) *Surface {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Surface{
		board:        board,
		cfg:          cfg,
		logger:       logger,
		debug:        cfg.Debug,
		dragDeadZone: cfg.DragDeadZone,
	}
	if s.dragDeadZone <= 0 {
		s.dragDeadZone = defaultDragDeadZone
	}
	s.strokes = NewStrokeCapture(board, cfg.Abandon, logger)
	s.drags = NewDragController(board, s, cfg.Abandon, logger)

	s.OnPointerDown(s.strokeDown)
	s.OnPointerMove(s.strokeMove)
	s.OnPointerUp(s.strokeUp)

	board.AddSink(s)
	s.syncScenario()
	return s
}

// Board returns the board the surface shows.
func (s *Surface) Board() *Board {
	return s.board
}

// StrokeCapture returns the annotation gesture controller.
func (s *Surface) StrokeCapture() *StrokeCapture {
	return s.strokes
}

// DragController returns the piece drag controller.
func (s *Surface) DragController() *DragController {
	return s.drags
}

// Pieces returns the entity pieces in paint order. The returned slice MUST
// NOT be mutated.
func (s *Surface) Pieces() []*Node {
	return s.pieces
}

// Piece returns the piece for an entity id, or nil.
func (s *Surface) Piece(id string) *Node {
	for _, n := range s.pieces {
		if n.Name == id {
			return n
		}
	}
	return nil
}

// Button returns the sidebar control with the given name, or nil.
func (s *Surface) Button(name string) *Node {
	for _, n := range s.buttons {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Status returns the last message shown under the sidebar commands.
func (s *Surface) Status() string {
	return s.status
}

// SetUpdateFunc sets a callback run at the end of every Update.
func (s *Surface) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDebugMode enables per-frame timing logs.
func (s *Surface) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// --- Coordinates ---

// ScreenToCourt converts window coordinates to court coordinates.
func (s *Surface) ScreenToCourt(x, y float64) (float64, float64) {
	return x - courtOrigin.X, y - courtOrigin.Y
}

// CourtToScreen converts court coordinates to window coordinates.
func (s *Surface) CourtToScreen(x, y float64) (float64, float64) {
	return x + courtOrigin.X, y + courtOrigin.Y
}

// --- PieceLocator ---

// PiecePosition returns where the piece for id currently sits on the court.
func (s *Surface) PiecePosition(id string) (float64, float64, bool) {
	n := s.Piece(id)
	if n == nil {
		return 0, 0, false
	}
	return n.X, n.Y, true
}

// SetPiecePosition places the piece for id without touching the board.
func (s *Surface) SetPiecePosition(id string, x, y float64) {
	if n := s.Piece(id); n != nil {
		n.SetPosition(x, y)
	}
}

// --- EventSink ---

// EmitEvent keeps pieces and controls in step with the board.
func (s *Surface) EmitEvent(e Event) {
	switch e.Type {
	case EventScenarioSelected:
		// The strokes are gone and every piece is replaced, so no gesture
		// can continue.
		s.strokes.Reset()
		s.drags.Reset()
		s.syncScenario()
	case EventPositionsReset:
		if s.drags.Dragging() {
			s.drags.Reset()
		}
		for _, ent := range s.board.entities {
			if n := s.Piece(ent.ID); n != nil {
				s.animatePiece(n, ent.X, ent.Y, s.cfg.ResetTween)
			}
		}
	case EventEntityMoved:
		s.SetPiecePosition(e.EntityID, e.X, e.Y)
	case EventModeChanged:
		s.abandonGestures("mode change")
		s.applyMode()
	case EventStrokeColorChanged:
		s.refreshButtons()
	case EventStrokesCleared:
		s.strokes.Reset()
	}
}

// syncScenario replaces the pieces and the sidebar for the active scenario.
func (s *Surface) syncScenario() {
	for _, n := range s.pieces {
		n.Dispose()
	}
	s.pieces = s.pieces[:0]
	for _, e := range s.board.entities {
		n := NewPiece(e)
		s.attachPiece(n)
		s.pieces = append(s.pieces, n)
	}
	for i := range s.pointers {
		if s.pointers[i].hitNode != nil && s.pointers[i].hitNode.IsDisposed() {
			s.pointers[i].hitNode = nil
		}
		if s.captured[i] != nil && s.captured[i].IsDisposed() {
			s.captured[i] = nil
		}
	}
	s.rebuildButtons()
	s.applyMode()
}

// applyMode makes pieces draggable only while moving.
func (s *Surface) applyMode() {
	move := s.board.Mode() == ModeMove
	for _, n := range s.pieces {
		n.Interactable = move
		n.Draggable = move
	}
	s.refreshButtons()
}

// abandonGestures ends any gesture in progress per the abandon policy.
func (s *Surface) abandonGestures(reason string) {
	if s.strokes.Drawing() {
		s.logger.Debug("stroke abandoned", "reason", reason, "policy", s.strokes.Policy())
		s.strokes.Abandon()
	}
	if s.drags.Dragging() {
		id := s.drags.EntityID()
		s.logger.Debug("drag abandoned", "entity", id, "reason", reason)
		if err := s.drags.Abandon(); err != nil {
			s.logger.Warn("drag abandon failed", "entity", id, "err", err)
		}
	}
}

// --- Gesture routing ---

func (s *Surface) attachPiece(n *Node) {
	n.OnDragStart = func(ctx DragContext) {
		if !n.Draggable || !s.drags.Begin(n.Name) {
			return
		}
		n.StopTween()
		sx, sy := s.ScreenToCourt(ctx.StartX, ctx.StartY)
		s.grab = Vec2{X: n.X - sx, Y: n.Y - sy}
		n.X = ctx.CourtX + s.grab.X
		n.Y = ctx.CourtY + s.grab.Y
	}
	n.OnDrag = func(ctx DragContext) {
		if s.drags.EntityID() != n.Name {
			return
		}
		if !ctx.InCourt {
			s.abandonGestures("left court")
			return
		}
		n.X = ctx.CourtX + s.grab.X
		n.Y = ctx.CourtY + s.grab.Y
	}
	n.OnDragEnd = func(ctx DragContext) {
		if s.drags.EntityID() != n.Name {
			return
		}
		if ctx.InCourt {
			n.X = ctx.CourtX + s.grab.X
			n.Y = ctx.CourtY + s.grab.Y
		}
		if err := s.drags.End(); err != nil {
			s.logger.Warn("drag end failed", "entity", n.Name, "err", err)
		}
	}
}

func (s *Surface) strokeDown(ctx PointerContext) {
	if !ctx.InCourt || ctx.Button != MouseButtonLeft || s.strokes.Drawing() {
		return
	}
	if s.strokes.Start(ctx.CourtX, ctx.CourtY) {
		s.strokePointer = ctx.PointerID
	}
}

func (s *Surface) strokeMove(ctx PointerContext) {
	if !ctx.Down || !s.strokes.Drawing() || ctx.PointerID != s.strokePointer {
		return
	}
	if !ctx.InCourt {
		s.abandonGestures("left court")
		return
	}
	s.strokes.Move(ctx.CourtX, ctx.CourtY)
}

func (s *Surface) strokeUp(ctx PointerContext) {
	if !s.strokes.Drawing() || ctx.PointerID != s.strokePointer {
		return
	}
	if ctx.InCourt {
		s.strokes.Move(ctx.CourtX, ctx.CourtY)
	}
	s.strokes.End()
}

// --- Sidebar ---

func (s *Surface) rebuildButtons() {
	for _, b := range s.buttons {
		b.Dispose()
	}
	s.buttons = s.buttons[:0]

	names := s.board.ScenarioNames()
	s.layout = layoutSidebar(len(names))
	l := s.layout

	add := func(name, label string, r Rect, fn func()) *Node {
		n := NewButton(name, label, r)
		n.OnClick = func(ClickContext) { fn() }
		s.buttons = append(s.buttons, n)
		return n
	}

	add(ctlSingles, "Singles", l.Tabs[0], func() { _ = s.SelectCatalog(CatalogSingles) })
	add(ctlDoubles, "Doubles", l.Tabs[1], func() { _ = s.SelectCatalog(CatalogDoubles) })
	for i, r := range l.Rows {
		name := names[i]
		add(scenarioPrefix+name, name, r, func() { _ = s.SelectScenario(name) })
	}
	for i, r := range l.Swatches {
		c := StrokePresets[i]
		sw := add(swatchPrefix+c, "", r, func() { s.SetStrokeColor(c) })
		sw.Color = colorOrWhite(c)
		sw.HitShape = HitCircle{CenterX: r.Width / 2, CenterY: r.Height / 2, Radius: r.Width / 2}
	}
	add(ctlToggleMode, "", l.Commands[0], func() { s.ToggleMode() })
	add(ctlReset, "Reset Players", l.Commands[1], func() { s.ResetPositions() })
	add(ctlExport, "Export PNG", l.Commands[2], func() { _, _ = s.Export() })
	add(ctlClear, "Clear Board", l.Commands[3], func() { s.ClearStrokes() })

	s.refreshButtons()
}

// refreshButtons updates highlight and labels from the board.
func (s *Surface) refreshButtons() {
	catalog := s.board.Catalog()
	scenario := s.board.scenario.Name
	color := s.board.StrokeColor()
	for _, b := range s.buttons {
		switch {
		case b.Name == ctlSingles:
			b.Selected = catalog == CatalogSingles
		case b.Name == ctlDoubles:
			b.Selected = catalog == CatalogDoubles
		case strings.HasPrefix(b.Name, scenarioPrefix):
			b.Selected = b.Name[len(scenarioPrefix):] == scenario
		case strings.HasPrefix(b.Name, swatchPrefix):
			b.Selected = b.Name[len(swatchPrefix):] == color
		case b.Name == ctlToggleMode:
			b.Selected = s.board.Mode() == ModeAnnotate
			if b.Selected {
				b.Label = "Drawing: ON"
			} else {
				b.Label = "Drawing: OFF"
			}
		}
	}
}

// --- Commands ---

// SelectCatalog switches catalog from the UI. Errors are logged and returned.
func (s *Surface) SelectCatalog(c Catalog) error {
	if err := s.board.SelectCatalog(c); err != nil {
		s.logger.Warn("select catalog failed", "catalog", c, "err", err)
		return err
	}
	s.logger.Info("catalog selected", "catalog", c, "scenario", s.board.scenario.Name)
	return nil
}

// SelectScenario switches scenario within the active catalog.
func (s *Surface) SelectScenario(name string) error {
	if err := s.board.SelectScenario(name); err != nil {
		s.logger.Warn("select scenario failed", "scenario", name, "err", err)
		return err
	}
	s.logger.Info("scenario selected", "ref", s.board.ScenarioRef())
	return nil
}

// cycleCatalog switches to the other catalog.
func (s *Surface) cycleCatalog() {
	next := Catalogs[(int(s.board.Catalog())+1)%len(Catalogs)]
	_ = s.SelectCatalog(next)
}

// stepScenario selects the scenario delta rows away, wrapping around.
func (s *Surface) stepScenario(delta int) {
	names := s.board.ScenarioNames()
	if len(names) == 0 {
		return
	}
	cur := 0
	for i, n := range names {
		if n == s.board.scenario.Name {
			cur = i
			break
		}
	}
	next := ((cur+delta)%len(names) + len(names)) % len(names)
	_ = s.SelectScenario(names[next])
}

// SetMode sets the input mode. A gesture in progress is abandoned first.
func (s *Surface) SetMode(m InputMode) {
	if m != s.board.Mode() {
		s.abandonGestures("mode change")
	}
	s.board.SetMode(m)
}

// ToggleMode flips between moving pieces and annotating.
func (s *Surface) ToggleMode() InputMode {
	s.abandonGestures("mode change")
	return s.board.ToggleMode()
}

// SetStrokeColor sets the color of the next stroke.
func (s *Surface) SetStrokeColor(color string) {
	s.board.SetStrokeColor(color)
}

// ResetPositions puts every piece back on its scenario position.
func (s *Surface) ResetPositions() {
	s.board.ResetEntityPositions()
}

// ClearStrokes removes all annotations.
func (s *Surface) ClearStrokes() {
	s.board.ClearStrokes()
}

func (s *Surface) setStatus(format string, args ...any) {
	s.status = fmt.Sprintf(format, args...)
}

// --- Frame ---

// Update processes input and advances animations. Call it from the game's
// Update.
func (s *Surface) Update() error {
	s.running = true
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	dt := float32(1.0 / float64(ebiten.TPS()))
	s.updateTweens(dt)

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.processInjectedInput() {
		s.processInput()
		s.processKeys()
	}

	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}

	if s.debug {
		s.debugLog(debugStats{phase: "update", elapsed: time.Since(t0),
			pieces: len(s.pieces), strokes: len(s.board.strokes), tweens: len(s.tweens)})
	}
	return nil
}

// Draw renders the sidebar, the title, the court canvas and the tip.
func (s *Surface) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.ensureFonts()

	screen.Fill(backgroundColor.toRGBA())
	s.drawSidebar(screen)
	s.drawTitle(screen)

	stage := s.renderStage()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(courtOrigin.X, courtOrigin.Y)
	screen.DrawImage(stage, op)

	s.drawTip(screen)

	if s.debug {
		s.debugLog(debugStats{phase: "draw", elapsed: time.Since(t0),
			pieces: len(s.pieces), strokes: len(s.board.strokes), tweens: len(s.tweens)})
	}
}

func (s *Surface) ensureFonts() {
	if s.fonts != nil || s.fontErr != nil {
		return
	}
	s.fonts, s.fontErr = loadFonts()
	if s.fontErr != nil {
		s.logger.Error("fonts unavailable, text disabled", "err", s.fontErr)
	}
}
