package courtboard

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// TextAlign controls horizontal placement of a line within its box.
type TextAlign uint8

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("courtboard: failed to parse TTF data: %w", err)
	}
	return newTTFFont(source, size), nil
}

func newTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{
		face: face,
		size: size,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// --- Font set ---

// fontSet holds the faces the surface draws with, all from the Go fonts.
type fontSet struct {
	label  *TTFFont // piece labels, bold 11px
	title  *TTFFont // sidebar title and scenario pill
	button *TTFFont
	body   *TTFFont // coaching tip
}

func loadFonts() (*fontSet, error) {
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("courtboard: load bold font: %w", err)
	}
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("courtboard: load regular font: %w", err)
	}
	return &fontSet{
		label:  newTTFFont(bold, labelSize),
		title:  newTTFFont(bold, sidebarTitleSize),
		button: newTTFFont(bold, buttonTextSize),
		body:   newTTFFont(regular, buttonTextSize),
	}, nil
}

// --- Layout ---

// wrapText breaks s into lines no wider than width, on spaces. A single word
// wider than width gets a line of its own. Existing newlines are kept.
func wrapText(f Font, s string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if cw, _ := f.MeasureString(candidate); cw > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// alignOffset returns the x offset of a line of width w in a box of width
// boxW.
func alignOffset(align TextAlign, w, boxW float64) float64 {
	switch align {
	case TextAlignCenter:
		return (boxW - w) / 2
	case TextAlignRight:
		return boxW - w
	}
	return 0
}

// drawText draws one line with its top-left at (x, y), aligned within boxW.
func drawText(dst *ebiten.Image, f *TTFFont, s string, x, y, boxW float64, align TextAlign, c Color) {
	w, _ := f.MeasureString(s)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x+alignOffset(align, w, boxW), y)
	op.ColorScale.ScaleWithColor(c.toRGBA())
	text.Draw(dst, s, f.face, op)
}

// drawTextBox draws wrapped text in box, vertically centered.
func drawTextBox(dst *ebiten.Image, f *TTFFont, s string, box Rect, align TextAlign, c Color) {
	lines := wrapText(f, s, box.Width)
	y := box.Y + (box.Height-float64(len(lines))*f.lh)/2
	for _, line := range lines {
		drawText(dst, f, line, box.X, y, box.Width, align, c)
		y += f.lh
	}
}
