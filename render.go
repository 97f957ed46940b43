package courtboard

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Window chrome colors.
var (
	backgroundColor = colorOrWhite("#121212")
	sidebarColor    = colorOrWhite("#1e272e")
	buttonColor     = colorOrWhite("#2c3e50")
	selectedColor   = colorOrWhite("#3498db")
	drawingColor    = colorOrWhite("#e67e22")
	mutedTextColor  = colorOrWhite("#bdc3c7")
	tipColor        = colorOrWhite("#2d3436")
)

const arcSegments = 6

// --- Primitives ---

func strokeSegment(dst *ebiten.Image, s Segment, width float64, c Color) {
	vector.StrokeLine(dst, float32(s.X0), float32(s.Y0), float32(s.X1), float32(s.Y1),
		float32(width), c.toRGBA(), true)
}

func fillRect(dst *ebiten.Image, r Rect, c Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
		c.toRGBA(), true)
}

func strokeRect(dst *ebiten.Image, r Rect, width float64, c Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
		float32(width), c.toRGBA(), true)
}

func fillCircle(dst *ebiten.Image, cx, cy, r float64, c Color) {
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r), c.toRGBA(), true)
}

func strokeCircle(dst *ebiten.Image, cx, cy, r, width float64, c Color) {
	vector.StrokeCircle(dst, float32(cx), float32(cy), float32(r), float32(width), c.toRGBA(), true)
}

// fillRoundRect fills r with rounded corners.
func fillRoundRect(dst *ebiten.Image, r Rect, radius float64, c Color) {
	fillPolygon(dst, roundRectPoints(r.X, r.Y, r.Width, r.Height, radius, arcSegments), c)
}

// strokeRoundRect outlines r with rounded corners.
func strokeRoundRect(dst *ebiten.Image, r Rect, radius, width float64, c Color) {
	pts := roundRectPoints(r.X, r.Y, r.Width, r.Height, radius, arcSegments)
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		strokeSegment(dst, Segment{X0: a.X, Y0: a.Y, X1: b.X, Y1: b.Y}, width, c)
	}
}

// drawArrow strokes a polyline and puts a filled pointer at its last point.
// The pointer is never dashed.
func drawArrow(dst *ebiten.Image, points, dash []float64, width, pointer float64, c Color) {
	for _, seg := range dashSegments(points, dash) {
		strokeSegment(dst, seg, width, c)
	}
	last, ok := lastSegment(points)
	if !ok {
		return
	}
	head := arrowHead(last.X0, last.Y0, last.X1, last.Y1, pointer, pointer)
	fillPolygon(dst, head[:], c)
}

// --- Court canvas ---

// renderStage composes the court canvas: court, guidance, user strokes and
// pieces, in that order. The same image is shown on screen and exported.
func (s *Surface) renderStage() *ebiten.Image {
	if s.stage == nil {
		s.stage = ebiten.NewImage(CourtWidth, CourtHeight)
	}
	s.stage.Clear()
	drawCourt(s.stage)
	drawGuidance(s.stage, s.board.scenario.Lines)
	drawStrokes(s.stage, s.board.strokes)
	for _, n := range s.pieces {
		if n.Visible {
			s.drawPiece(s.stage, n)
		}
	}
	return s.stage
}

func drawCourt(dst *ebiten.Image) {
	dst.Fill(grassColor.toRGBA())
	fillRect(dst, courtRect, surfaceColor)
	strokeRect(dst, courtRect, courtBorderWidth, ColorWhite)
	for _, l := range courtLines {
		strokeSegment(dst, l.Segment, l.Width, l.Color)
	}
}

func drawGuidance(dst *ebiten.Image, lines []GuidanceLine) {
	for _, l := range lines {
		drawArrow(dst, l.Points, l.Dash, guideWidth, guidePointer,
			colorOrWhite(l.Stroke).WithAlpha(guideOpacity))
	}
}

func drawStrokes(dst *ebiten.Image, strokes []UserStroke) {
	for _, st := range strokes {
		drawArrow(dst, st.Points, nil, userStrokeWidth, userStrokePointer, colorOrWhite(st.Color))
	}
}

func (s *Surface) drawPiece(dst *ebiten.Image, n *Node) {
	if n.Kind == NodeKindBall {
		fillCircle(dst, n.X, n.Y, ballRadius, ballColor)
		strokeCircle(dst, n.X, n.Y, ballRadius, 1, ballOutline)
		return
	}
	body := Rect{X: n.X + playerBody.X, Y: n.Y + playerBody.Y, Width: playerBody.Width, Height: playerBody.Height}
	fillRoundRect(dst, body, playerBodyRadius, n.Color)
	strokeRoundRect(dst, body, playerBodyRadius, 1, ColorWhite)

	fillCircle(dst, n.X, n.Y+playerHeadY, playerHeadRadius, skinColor)
	strokeCircle(dst, n.X, n.Y+playerHeadY, playerHeadRadius, 1, ColorWhite)

	hat := Rect{X: n.X + playerCap.X, Y: n.Y + playerCap.Y, Width: playerCap.Width, Height: playerCap.Height}
	fillRoundRect(dst, hat, playerCapRadius, n.Color)

	if n.Label != "" && s.fonts != nil {
		drawText(dst, s.fonts.label, n.Label, n.X+labelBox.X, n.Y+labelBox.Y, labelBox.Width,
			TextAlignCenter, ColorWhite)
	}
}

// --- Window ---

func (s *Surface) drawSidebar(dst *ebiten.Image) {
	fillRect(dst, Rect{Width: sidebarWidth, Height: ScreenHeight}, sidebarColor)
	if s.fonts == nil {
		return
	}
	drawText(dst, s.fonts.title, "TennisIQ Pro", sidebarPad, sidebarTitleY-s.fonts.title.lh/2,
		sidebarWidth-2*sidebarPad, TextAlignLeft, ColorWhite)
	drawText(dst, s.fonts.button, "Pencil Color", sidebarPad, s.layout.ColorY,
		sidebarWidth-2*sidebarPad, TextAlignLeft, mutedTextColor)

	for _, b := range s.buttons {
		if b.Visible {
			s.drawButton(dst, b)
		}
	}

	if s.status != "" {
		y := s.layout.Commands[len(s.layout.Commands)-1].Y + commandHeight + commandGap
		drawTextBox(dst, s.fonts.body, s.status,
			Rect{X: sidebarPad, Y: y, Width: sidebarWidth - 2*sidebarPad, Height: ScreenHeight - y - sidebarPad},
			TextAlignLeft, mutedTextColor)
	}
}

func (s *Surface) drawButton(dst *ebiten.Image, b *Node) {
	r := b.Bounds()
	if strings.HasPrefix(b.Name, swatchPrefix) {
		cx, cy := r.X+r.Width/2, r.Y+r.Height/2
		fillCircle(dst, cx, cy, r.Width/2, b.Color)
		if b.Selected {
			strokeCircle(dst, cx, cy, r.Width/2, 2, ColorWhite)
		}
		return
	}
	bg := buttonColor
	if b.Selected {
		bg = selectedColor
		if b.Name == ctlToggleMode {
			bg = drawingColor
		}
	}
	fillRoundRect(dst, r, 6, bg)
	drawTextBox(dst, s.fonts.button, b.Label, r, TextAlignCenter, ColorWhite)
}

func (s *Surface) drawTitle(dst *ebiten.Image) {
	fillRoundRect(dst, titleRect, titleRect.Height/2, buttonColor)
	if s.fonts != nil {
		drawTextBox(dst, s.fonts.button, s.board.scenario.Name, titleRect, TextAlignCenter, ColorWhite)
	}
}

func (s *Surface) drawTip(dst *ebiten.Image) {
	tip := s.board.scenario.Tip
	if tip == "" {
		return
	}
	fillRoundRect(dst, tipRect, 8, tipColor)
	if s.fonts != nil {
		inner := Rect{X: tipRect.X + 12, Y: tipRect.Y, Width: tipRect.Width - 24, Height: tipRect.Height}
		drawTextBox(dst, s.fonts.body, "Coach's Tip: "+tip, inner, TextAlignLeft, ColorWhite)
	}
}
