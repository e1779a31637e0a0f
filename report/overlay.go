// Package report renders tuning diagnostics for layout analysis: a
// bounding-box overlay on the page image, line-height and heading-count
// charts, and an HTML report tying them together with the configuration
// that produced them.
package report

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/momomsr/PDFOCR/model"
)

// Overlay colors per line level.
var (
	colorParagraph = color.RGBA{R: 0, G: 160, B: 0, A: 255}
	colorH1        = color.RGBA{R: 0, G: 0, B: 220, A: 255}
	colorH2        = color.RGBA{R: 220, G: 0, B: 0, A: 255}
)

// levelColor maps a line level to its overlay color: paragraphs green,
// H1 blue, H2 red.
func levelColor(level model.Level) color.RGBA {
	switch level {
	case model.LevelH1:
		return colorH1
	case model.LevelH2:
		return colorH2
	default:
		return colorParagraph
	}
}

// Overlay copies img and draws each classified line's quad outline
// colored by level, with a small level label above the box.
func Overlay(img image.Image, lines []model.ClassifiedLine) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)

	for _, line := range lines {
		col := levelColor(line.Level)
		drawQuad(out, line.Box, col)
		drawLabel(out, line.Level.String(), int(line.Box.Left()), int(line.Box.Top())-3, col)
	}
	return out
}

// drawQuad outlines the quad by connecting its corners in order.
func drawQuad(dst *image.RGBA, q model.Quad, col color.RGBA) {
	for i := 0; i < 4; i++ {
		a := q[i]
		b := q[(i+1)%4]
		drawSegment(dst, a.X, a.Y, b.X, b.Y, col)
	}
}

// drawSegment draws a line between two points by stepping along the
// longer axis.
func drawSegment(dst *image.RGBA, x0, y0, x1, y1 float64, col color.RGBA) {
	dx := x1 - x0
	dy := y1 - y0

	steps := absf(dx)
	if absf(dy) > steps {
		steps = absf(dy)
	}
	n := int(steps)
	if n < 1 {
		n = 1
	}

	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		dst.Set(int(x0+t*dx+0.5), int(y0+t*dy+0.5), col)
	}
}

// drawLabel renders small text with the baseline at (x, y).
func drawLabel(dst *image.RGBA, text string, x, y int, col color.RGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
