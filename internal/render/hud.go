package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"wireview/internal/camera"
)

// Controls lists the key bindings shared by every host window
var Controls = []string{
	"W/S: rotate around X",
	"A/D: rotate around Y",
	"Q/E: rotate around Z",
	"Up/Down: zoom in/out",
	"Left/Right: pan left/right",
	"PgUp/PgDn: pan up/down",
	"R: reset view",
	"Esc: exit",
}

// Telemetry formats the camera's current state and the last frame's counts
func Telemetry(cam *camera.Camera, stats FrameStats) []string {
	s := cam.Current()
	return []string{
		fmt.Sprintf("Rotation X: %.3f", s.RotationX),
		fmt.Sprintf("Rotation Y: %.3f", s.RotationY),
		fmt.Sprintf("Rotation Z: %.3f", s.RotationZ),
		fmt.Sprintf("Zoom: %.3f", s.Zoom),
		fmt.Sprintf("Pan: %.0f, %.0f", s.PanX, s.PanY),
		fmt.Sprintf("Objects: %d", stats.Meshes),
		fmt.Sprintf("Lines: %d (culled %d)", stats.Lines, stats.Culled),
	}
}

// Title is a one-line summary suitable for a window title bar
func Title(base string, cam *camera.Camera, stats FrameStats) string {
	s := cam.Current()
	return fmt.Sprintf("%s | rot %.2f %.2f %.2f | zoom %.2f | %d lines",
		base, s.RotationX, s.RotationY, s.RotationZ, s.Zoom, stats.Lines)
}

const hudLineHeight = 15

// DrawHUD writes the controls in the top left corner and the telemetry in the
// top right corner of img
func DrawHUD(img *image.RGBA, cam *camera.Camera, stats FrameStats, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: face}

	b := img.Bounds()
	left := b.Min.X + 10
	y := b.Min.Y + 20
	for _, line := range Controls {
		d.Dot = fixed.P(left, y)
		d.DrawString(line)
		y += hudLineHeight
	}

	telemetry := Telemetry(cam, stats)
	var widest fixed.Int26_6
	for _, line := range telemetry {
		widest = max(widest, d.MeasureString(line))
	}
	right := b.Max.X - 10 - widest.Ceil()
	y = b.Min.Y + 20
	for _, line := range telemetry {
		d.Dot = fixed.P(right, y)
		d.DrawString(line)
		y += hudLineHeight
	}
}
