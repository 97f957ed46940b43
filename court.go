package courtboard

// Court canvas size in pixels. Entity and stroke coordinates live in this
// space, with the origin at the canvas top-left.
const (
	CourtWidth  = 400
	CourtHeight = 600
)

var courtCanvas = Rect{Width: CourtWidth, Height: CourtHeight}

var (
	grassColor   = colorOrWhite("#4b8b3b")
	surfaceColor = colorOrWhite("#3b729f")
	netColor     = colorOrWhite("#111")
	skinColor    = colorOrWhite("#f3c39a")
	ballColor    = colorOrWhite("yellow")
	ballOutline  = colorOrWhite("black")
)

// courtRect is the playing surface, outlined by the doubles lines.
var courtRect = Rect{X: 50, Y: 50, Width: 300, Height: 500}

const courtBorderWidth = 2

// courtLine is one painted line of the court diagram.
type courtLine struct {
	Segment
	Width float64
	Color Color
}

// courtLines are drawn over the surface in order. The net is a dark band
// with a thin white core.
var courtLines = []courtLine{
	{Segment{X0: 85, Y0: 50, X1: 85, Y1: 550}, 2, ColorWhite},     // left singles sideline
	{Segment{X0: 315, Y0: 50, X1: 315, Y1: 550}, 2, ColorWhite},   // right singles sideline
	{Segment{X0: 85, Y0: 160, X1: 315, Y1: 160}, 3, ColorWhite},   // far service line
	{Segment{X0: 85, Y0: 440, X1: 315, Y1: 440}, 3, ColorWhite},   // near service line
	{Segment{X0: 200, Y0: 160, X1: 200, Y1: 440}, 3, ColorWhite},  // center service line
	{Segment{X0: 45, Y0: 300, X1: 355, Y1: 300}, 6, netColor},     // net band
	{Segment{X0: 45, Y0: 300, X1: 355, Y1: 300}, 1, ColorWhite},   // net core
}

// Piece shapes, relative to the entity position.
var (
	playerBody = Rect{X: -12, Y: -2, Width: 24, Height: 12}
	playerCap  = Rect{X: -5, Y: -14, Width: 10, Height: 4}
	labelBox   = Rect{X: -25, Y: 15, Width: 50}
)

const (
	playerBodyRadius = 5
	playerCapRadius  = 2
	playerHeadY      = -8
	playerHeadRadius = 7
	ballRadius       = 8
	labelSize        = 11
)

// Arrow styles.
const (
	guideWidth        = 2
	guidePointer      = 6
	guideOpacity      = 0.5
	userStrokeWidth   = 3
	userStrokePointer = 10
)

// --- Window layout ---

// Window size in pixels. The sidebar runs down the left edge; the court
// canvas sits to its right below the title.
const (
	ScreenWidth  = 760
	ScreenHeight = 760
	sidebarWidth = 320
)

var (
	courtOrigin = Vec2{X: 340, Y: 70}
	titleRect   = Rect{X: 440, Y: 18, Width: 200, Height: 36}
	tipRect     = Rect{X: 340, Y: 680, Width: CourtWidth, Height: 70}
)

const (
	sidebarPad       = 20
	tabHeight        = 36
	tabGap           = 5
	rowHeight        = 32
	rowGap           = 4
	maxScenarioRows  = 10
	swatchSize       = 25
	swatchGap        = 10
	commandHeight    = 36
	commandGap       = 8
	sidebarTitleSize = 20
	buttonTextSize   = 14
)

// Control names. Scenario rows are named scenarioPrefix + scenario name.
const (
	ctlSingles      = "tab:singles"
	ctlDoubles      = "tab:doubles"
	ctlToggleMode   = "cmd:mode"
	ctlReset        = "cmd:reset"
	ctlExport       = "cmd:export"
	ctlClear        = "cmd:clear"
	scenarioPrefix  = "scenario:"
	swatchPrefix    = "color:"
	sidebarTitleY   = 24
	tabsY           = 60
	listY           = tabsY + tabHeight + 14
	sectionGap      = 18
	colorTitleSpace = 22
)

// sidebarLayout holds the rectangles of the sidebar controls, in window
// coordinates.
type sidebarLayout struct {
	Tabs      [2]Rect
	Rows      []Rect
	ColorY    float64 // baseline of the color section title
	Swatches  [3]Rect
	Commands  [4]Rect
	TotalRows int // rows that did not fit are not laid out
}

// layoutSidebar places the controls for a catalog with n scenarios.
func layoutSidebar(n int) sidebarLayout {
	var l sidebarLayout
	inner := float64(sidebarWidth - 2*sidebarPad)

	tabW := (inner - tabGap) / 2
	l.Tabs[0] = Rect{X: sidebarPad, Y: tabsY, Width: tabW, Height: tabHeight}
	l.Tabs[1] = Rect{X: sidebarPad + tabW + tabGap, Y: tabsY, Width: tabW, Height: tabHeight}

	l.TotalRows = n
	if n > maxScenarioRows {
		n = maxScenarioRows
	}
	y := float64(listY)
	for i := 0; i < n; i++ {
		l.Rows = append(l.Rows, Rect{X: sidebarPad, Y: y, Width: inner, Height: rowHeight})
		y += rowHeight + rowGap
	}

	y += sectionGap
	l.ColorY = y
	y += colorTitleSpace
	for i := range l.Swatches {
		l.Swatches[i] = Rect{
			X: sidebarPad + float64(i)*(swatchSize+swatchGap), Y: y,
			Width: swatchSize, Height: swatchSize,
		}
	}
	y += swatchSize + sectionGap

	for i := range l.Commands {
		l.Commands[i] = Rect{X: sidebarPad, Y: y, Width: inner, Height: commandHeight}
		y += commandHeight + commandGap
	}
	return l
}
