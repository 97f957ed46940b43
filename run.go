package courtboard

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit is returned from an update func to end Run cleanly.
var ErrQuit = errors.New("courtboard: quit")

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int // 0 uses ScreenWidth
	Height  int // 0 uses ScreenHeight
	ShowFPS bool
}

// game adapts a Surface to ebiten.Game.
type game struct {
	surface *Surface
	fps     *fpsOverlay
}

func (g *game) Update() error {
	if g.fps != nil {
		g.fps.update(1.0 / float64(ebiten.TPS()))
	}
	return g.surface.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout keeps the logical screen fixed; Ebitengine scales it to the window.
func (g *game) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Run opens a window and runs the surface until the window closes or the
// update func returns an error. ErrQuit ends the loop without an error.
func Run(s *Surface, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = ScreenWidth
	}
	if h <= 0 {
		h = ScreenHeight
	}
	title := cfg.Title
	if title == "" {
		title = "Courtboard"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &game{surface: s}
	if cfg.ShowFPS {
		g.fps = &fpsOverlay{}
	}
	err := ebiten.RunGame(g)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}
