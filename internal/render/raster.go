package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"wireview/internal/math3d"
)

// DrawLine draws a line on the image from (x1, y1) to (x2, y2) with a DDA stepper.
// Pixels outside the image are skipped.
func DrawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps == 0 {
		setPixel(img, x1, y1, col)
		return
	}

	xInc := dx / steps
	yInc := dy / steps

	x := float64(x1)
	y := float64(y1)

	for i := 0; i <= int(steps); i++ {
		setPixel(img, int(math.Round(x)), int(math.Round(y)), col)
		x += xInc
		y += yInc
	}
}

func setPixel(img *image.RGBA, x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}.In(img.Rect)) {
		return
	}
	offset := img.PixOffset(x, y)
	img.Pix[offset] = col.R
	img.Pix[offset+1] = col.G
	img.Pix[offset+2] = col.B
	img.Pix[offset+3] = col.A
}

// ImageCanvas rasterises screen-space lines onto an RGBA image. Screen space is
// centred on the image with Y pointing up.
type ImageCanvas struct {
	Image *image.RGBA
}

// NewImageCanvas returns a canvas of the given size filled with bg
func NewImageCanvas(width, height int, bg color.RGBA) *ImageCanvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	return &ImageCanvas{Image: img}
}

// ToPixel converts a screen point to image coordinates
func (c *ImageCanvas) ToPixel(p math3d.ScreenPoint) (int, int) {
	b := c.Image.Bounds()
	return int(math.Round(float64(b.Dx())/2 + p.X)), int(math.Round(float64(b.Dy())/2 - p.Y))
}

// DrawLine rasterises the screen-space segment a-b
func (c *ImageCanvas) DrawLine(a, b math3d.ScreenPoint, col color.RGBA) {
	x1, y1 := c.ToPixel(a)
	x2, y2 := c.ToPixel(b)
	DrawLine(c.Image, x1, y1, x2, y2, col)
}
