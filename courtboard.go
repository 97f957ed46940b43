package courtboard

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the fallback for colors that fail to parse.
var ColorWhite = Color{1, 1, 1, 1}

// ParseColor parses a CSS color string: #rgb, #rrggbb, #rrggbbaa, a CSS
// color keyword or "transparent". Matching is case-insensitive.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return Color{}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
			A: float64(c.A) / 255,
		}, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("parse color %q: unknown color", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("parse color %q: bad length", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// colorOrWhite parses s and falls back to white, which is how the court
// renders a color it does not understand.
func colorOrWhite(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		return ColorWhite
	}
	return c
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: to8(c.R * c.A),
		G: to8(c.G * c.A),
		B: to8(c.B * c.A),
		A: to8(c.A),
	}
}

// colorRGBA implements the color.Color interface for image.Fill and the
// vector helpers.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

// to8 maps [0, 1] to a rounded byte.
func to8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D point in court coordinates unless stated otherwise.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Catalog names one of the two scenario collections.
type Catalog uint8

const (
	CatalogSingles Catalog = iota // "singles"
	CatalogDoubles                // "doubles"
)

// Catalogs lists every catalog in display order.
var Catalogs = []Catalog{CatalogSingles, CatalogDoubles}

func (c Catalog) String() string {
	switch c {
	case CatalogSingles:
		return "singles"
	case CatalogDoubles:
		return "doubles"
	default:
		return fmt.Sprintf("catalog(%d)", uint8(c))
	}
}

// Valid reports whether c is one of the two known catalogs.
func (c Catalog) Valid() bool {
	return c == CatalogSingles || c == CatalogDoubles
}

// ParseCatalog maps a catalog wire name to its Catalog.
func ParseCatalog(name string) (Catalog, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "singles":
		return CatalogSingles, nil
	case "doubles":
		return CatalogDoubles, nil
	}
	return 0, &NotFoundError{Kind: "catalog", Name: name}
}

// InputMode selects what a pointer gesture on the court does. The two modes
// are mutually exclusive: entities can be dragged only in ModeMove and
// strokes can be drawn only in ModeAnnotate.
type InputMode uint8

const (
	ModeMove     InputMode = iota // drag entities
	ModeAnnotate                  // draw annotation arrows
)

func (m InputMode) String() string {
	if m == ModeAnnotate {
		return "annotate"
	}
	return "move"
}

// ParseInputMode maps "move" or "annotate" to an InputMode.
func ParseInputMode(s string) (InputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "move":
		return ModeMove, nil
	case "annotate", "draw":
		return ModeAnnotate, nil
	}
	return 0, fmt.Errorf("parse input mode %q: want move or annotate", s)
}

// AbandonPolicy decides what happens to a gesture that ends without a
// pointer release: the pointer left the court, the window lost focus, or the
// mode or scenario changed underneath it.
type AbandonPolicy uint8

const (
	// AbandonCommit treats the abandoned gesture as a normal gesture-end.
	AbandonCommit AbandonPolicy = iota
	// AbandonDiscard drops the in-progress stroke or reverts the dragged piece.
	AbandonDiscard
)

func (p AbandonPolicy) String() string {
	if p == AbandonDiscard {
		return "discard"
	}
	return "commit"
}

// ParseAbandonPolicy maps "commit" or "discard" to an AbandonPolicy.
func ParseAbandonPolicy(s string) (AbandonPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "commit", "end":
		return AbandonCommit, nil
	case "discard":
		return AbandonDiscard, nil
	}
	return 0, fmt.Errorf("parse abandon policy %q: want commit or discard", s)
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// Preset annotation colors offered by the sidebar.
const (
	StrokeYellow = "#f1c40f"
	StrokeRed    = "#e74c3c"
	StrokeWhite  = "#ffffff"
)

// StrokePresets lists the preset annotation colors in sidebar order.
var StrokePresets = []string{StrokeYellow, StrokeRed, StrokeWhite}
