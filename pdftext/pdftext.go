// Package pdftext extracts positioned text lines from born-digital PDFs.
//
// Scanned PDFs need OCR, but PDFs with embedded text carry exact glyph
// positions already. This package groups a page's positioned characters
// into text lines and synthesizes the same line representation the OCR
// path produces, so layout analysis runs identically on both sources.
//
// Use [NeedsOCR] to decide per document whether the embedded text is
// usable or the pages should be rasterized and OCRed instead.
package pdftext

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	pdfocr "github.com/momomsr/PDFOCR"
	"github.com/momomsr/PDFOCR/model"
)

// Extractor turns embedded PDF text into positioned lines
type Extractor struct {
	// RowTolerance is the baseline Y distance (in points) within which
	// characters belong to the same text line
	// Default: 3.0
	RowTolerance float64

	// WordSpaceMultiplier is the fraction of the font size a horizontal
	// gap must exceed to become a word boundary
	// Default: 0.3
	WordSpaceMultiplier float64
}

// NewExtractor creates an extractor with sensible defaults
func NewExtractor() *Extractor {
	return &Extractor{
		RowTolerance:        3.0,
		WordSpaceMultiplier: 0.3,
	}
}

// ExtractPages reads every page of the PDF at path and returns pipeline
// input pages with synthesized lines. Pages that fail to parse are
// returned empty rather than failing the whole document.
func (e *Extractor) ExtractPages(path string) ([]pdfocr.Page, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	pages := make([]pdfocr.Page, 0, totalPages)

	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		width, height := mediaBoxSize(page)
		out := pdfocr.Page{Number: i, Width: width, Height: height}

		if !page.V.IsNull() {
			out.Lines = e.buildLines(page.Content().Text, height)
		}
		pages = append(pages, out)
	}

	return pages, nil
}

// buildLines groups positioned characters into text lines. PDF Y grows
// upward from the page bottom; the produced quads use image coordinates
// (Y down from the page top), matching the OCR path.
func (e *Extractor) buildLines(chars []pdf.Text, pageHeight float64) []model.Line {
	if len(chars) == 0 {
		return nil
	}

	rows := e.groupRows(chars)

	lines := make([]model.Line, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].X < row[j].X
		})

		var sb strings.Builder
		left := row[0].X
		right := row[0].X + row[0].W
		baseline := row[0].Y
		fontSize := row[0].FontSize

		for i, ch := range row {
			if i > 0 {
				prev := row[i-1]
				gap := ch.X - (prev.X + prev.W)
				if gap > e.WordSpaceMultiplier*maxFloat(ch.FontSize, 1) &&
					!strings.HasSuffix(sb.String(), " ") {
					sb.WriteString(" ")
				}
			}
			sb.WriteString(ch.S)

			if ch.X+ch.W > right {
				right = ch.X + ch.W
			}
			if ch.FontSize > fontSize {
				fontSize = ch.FontSize
			}
		}

		// Approximate the line box from the baseline and font size.
		top := pageHeight - (baseline + fontSize)
		lines = append(lines, model.Line{
			Box:        model.RectQuad(left, top, right-left, fontSize),
			Text:       strings.TrimSpace(sb.String()),
			Confidence: 1.0, // embedded text, not recognized
		})
	}

	return lines
}

// groupRows buckets characters by baseline Y within RowTolerance,
// ordered top of page first.
func (e *Extractor) groupRows(chars []pdf.Text) [][]pdf.Text {
	sorted := make([]pdf.Text, len(chars))
	copy(sorted, chars)
	// Descending Y: PDF coordinates put the page top at high Y.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y > sorted[j].Y
	})

	var rows [][]pdf.Text
	for _, ch := range sorted {
		if len(rows) > 0 {
			last := rows[len(rows)-1]
			if last[0].Y-ch.Y <= e.RowTolerance {
				rows[len(rows)-1] = append(last, ch)
				continue
			}
		}
		rows = append(rows, []pdf.Text{ch})
	}
	return rows
}

// mediaBoxSize returns the page dimensions in points, walking up the
// page tree for inherited /MediaBox entries. Falls back to US Letter
// when no box is found.
func mediaBoxSize(page pdf.Page) (width, height float64) {
	for v := page.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.IsNull() || box.Len() != 4 {
			continue
		}
		width = box.Index(2).Float64() - box.Index(0).Float64()
		height = box.Index(3).Float64() - box.Index(1).Float64()
		return width, height
	}
	return 612, 792
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// DefaultOCRMinContent is the default minimum character count before the
// embedded text is considered unusable and OCR should run instead.
const DefaultOCRMinContent = 50

// NeedsOCR checks whether extracted text is too short or too corrupted
// to be useful, meaning the caller should rasterize the pages and run
// OCR instead. Pass minContentLen <= 0 to use DefaultOCRMinContent.
func NeedsOCR(text string, minContentLen int) bool {
	if minContentLen <= 0 {
		minContentLen = DefaultOCRMinContent
	}

	text = strings.TrimSpace(text)
	if len(text) < minContentLen {
		return true
	}

	return ReplacementCharRatio(text) > 0.05
}

// ReplacementCharRatio returns the fraction of runes that are the
// Unicode replacement character, a strong signal of broken font
// encodings in the embedded text.
func ReplacementCharRatio(text string) float64 {
	if text == "" {
		return 0
	}

	total := 0
	bad := 0
	for _, r := range text {
		total++
		if r == '�' {
			bad++
		}
	}
	return float64(bad) / float64(total)
}
