// Package ebitenview hosts the renderer in an ebiten window.
package ebitenview

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"wireview/internal/input"
	"wireview/internal/render"
)

// Options configures the window
type Options struct {
	Title         string
	Width, Height int
	Background    color.RGBA
	Interval      time.Duration
}

var keymap = map[ebiten.Key]input.Key{
	ebiten.KeyW:          input.PitchUp,
	ebiten.KeyS:          input.PitchDown,
	ebiten.KeyA:          input.YawLeft,
	ebiten.KeyD:          input.YawRight,
	ebiten.KeyQ:          input.RollLeft,
	ebiten.KeyE:          input.RollRight,
	ebiten.KeyArrowUp:    input.ZoomIn,
	ebiten.KeyArrowDown:  input.ZoomOut,
	ebiten.KeyArrowLeft:  input.PanLeft,
	ebiten.KeyArrowRight: input.PanRight,
	ebiten.KeyPageUp:     input.PanUp,
	ebiten.KeyPageDown:   input.PanDown,
	ebiten.KeyR:          input.Reset,
}

type game struct {
	r     *render.Renderer
	opts  Options
	lines []render.Line
	keys  []ebiten.Key
}

// Run opens the window and blocks until it is closed or Escape is pressed.
// ebiten drives the tick rate from opts.Interval.
func Run(r *render.Renderer, opts Options, logger *slog.Logger) error {
	tps := int(time.Second / opts.Interval)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetTPS(max(tps, 1))

	logger.Info("window opened", "backend", "ebiten", "tps", tps)
	err := ebiten.RunGame(&game{r: r, opts: opts})
	logger.Info("window closed")
	if err == ebiten.Termination {
		return nil
	}
	return err
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	held := g.r.Keys()
	if !ebiten.IsFocused() {
		held.Clear()
	}
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if a, ok := keymap[k]; ok {
			held.Press(a)
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if a, ok := keymap[k]; ok {
			held.Release(a)
		}
	}

	g.lines = g.r.Frame()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Background)

	cx, cy := float32(g.opts.Width)/2, float32(g.opts.Height)/2
	for _, l := range g.lines {
		vector.StrokeLine(screen,
			cx+float32(l.A.X), cy-float32(l.A.Y),
			cx+float32(l.B.X), cy-float32(l.B.Y),
			1, l.Color, true)
	}

	cam, stats := g.r.Camera(), g.r.Stats()
	y := 4
	for _, line := range render.Controls {
		ebitenutil.DebugPrintAt(screen, line, 8, y)
		y += 16
	}
	y = 4
	for _, line := range render.Telemetry(cam, stats) {
		ebitenutil.DebugPrintAt(screen, line, g.opts.Width-200, y)
		y += 16
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.Width, g.opts.Height
}
