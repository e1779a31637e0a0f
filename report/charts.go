package report

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/momomsr/PDFOCR/layout"
)

const (
	chartMargin   = 20
	histogramBins = 20
)

var (
	colorBar    = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	colorMedian = color.RGBA{R: 0, G: 0, B: 220, A: 255}
	colorMarkH2 = color.RGBA{R: 230, G: 140, B: 0, A: 255}
	colorMarkH1 = color.RGBA{R: 220, G: 0, B: 0, A: 255}
	colorAxis   = color.RGBA{R: 40, G: 40, B: 40, A: 255}
)

// Histogram renders the page's line-height distribution with vertical
// markers at the median height and the H1/H2 thresholds derived from
// cfg. Returns nil when the page has no line heights.
func Histogram(stats layout.PageStats, cfg layout.HeadingConfig, width, height int) *image.RGBA {
	if len(stats.LineHeights) == 0 {
		return nil
	}

	img := newChart(width, height)

	maxH := stats.LineHeights[0]
	for _, h := range stats.LineHeights {
		if h > maxH {
			maxH = h
		}
	}
	// Keep the H1 marker on the chart even when no line reaches it.
	if m := stats.MedianHeight * cfg.H1Ratio; m > maxH {
		maxH = m
	}
	if maxH <= 0 {
		maxH = 1
	}
	scale := maxH * 1.05

	// Bin the heights.
	counts := make([]int, histogramBins)
	maxCount := 1
	for _, h := range stats.LineHeights {
		bin := int(h / scale * histogramBins)
		if bin >= histogramBins {
			bin = histogramBins - 1
		}
		counts[bin]++
		if counts[bin] > maxCount {
			maxCount = counts[bin]
		}
	}

	plotW := width - 2*chartMargin
	plotH := height - 2*chartMargin
	barW := plotW / histogramBins

	for i, c := range counts {
		if c == 0 {
			continue
		}
		barH := c * plotH / maxCount
		x0 := chartMargin + i*barW
		fillRect(img, x0, height-chartMargin-barH, barW-1, barH, colorBar)
	}

	marker := func(value float64, col color.RGBA, label string) {
		x := chartMargin + int(value/scale*float64(plotW))
		for y := chartMargin; y < height-chartMargin; y++ {
			img.Set(x, y, col)
		}
		drawLabel(img, label, x+2, chartMargin+10, col)
	}
	marker(stats.MedianHeight, colorMedian, "median")
	marker(stats.MedianHeight*cfg.H2Ratio, colorMarkH2, "H2")
	marker(stats.MedianHeight*cfg.H1Ratio, colorMarkH1, "H1")

	drawAxes(img, width, height)
	return img
}

// HeadingCounts renders per-page H1/H2 counts as paired bars.
func HeadingCounts(stats []layout.PageStats, width, height int) *image.RGBA {
	if len(stats) == 0 {
		return nil
	}

	img := newChart(width, height)

	maxCount := 1
	for _, s := range stats {
		if s.H1Count > maxCount {
			maxCount = s.H1Count
		}
		if s.H2Count > maxCount {
			maxCount = s.H2Count
		}
	}

	plotW := width - 2*chartMargin
	plotH := height - 2*chartMargin
	group := plotW / len(stats)
	barW := group / 3
	if barW < 1 {
		barW = 1
	}

	for i, s := range stats {
		x0 := chartMargin + i*group
		if s.H1Count > 0 {
			h := s.H1Count * plotH / maxCount
			fillRect(img, x0, height-chartMargin-h, barW, h, colorH1)
		}
		if s.H2Count > 0 {
			h := s.H2Count * plotH / maxCount
			fillRect(img, x0+barW+1, height-chartMargin-h, barW, h, colorH2)
		}
		drawLabel(img, fmt.Sprintf("%d", i+1), x0, height-chartMargin+12, colorAxis)
	}

	drawAxes(img, width, height)
	return img
}

func newChart(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func fillRect(dst *image.RGBA, x, y, w, h int, col color.RGBA) {
	draw.Draw(dst, image.Rect(x, y, x+w, y+h), image.NewUniform(col), image.Point{}, draw.Src)
}

func drawAxes(img *image.RGBA, width, height int) {
	for x := chartMargin; x <= width-chartMargin; x++ {
		img.Set(x, height-chartMargin, colorAxis)
	}
	for y := chartMargin; y <= height-chartMargin; y++ {
		img.Set(chartMargin, y, colorAxis)
	}
}
