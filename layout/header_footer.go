package layout

import (
	"regexp"
	"sort"
	"strings"

	"github.com/momomsr/PDFOCR/model"
)

// HeaderFooterConfig holds configuration for repeating header and
// footer detection across pages.
type HeaderFooterConfig struct {
	// RegionRatio is the fraction of the page height at the top and at
	// the bottom considered the header and footer zones
	// Default: 0.1
	RegionRatio float64

	// MinOccurrenceRatio is the minimum fraction of pages a line must
	// repeat on to count as a header or footer
	// Default: 0.5
	MinOccurrenceRatio float64

	// PositionTolerance is the maximum top-edge difference, as a
	// fraction of the page height, for repeats to count as the same
	// position
	// Default: 0.01
	PositionTolerance float64

	// MinPages is the minimum number of pages required for detection
	// Default: 2
	MinPages int
}

// DefaultHeaderFooterConfig returns sensible default configuration.
func DefaultHeaderFooterConfig() HeaderFooterConfig {
	return HeaderFooterConfig{
		RegionRatio:        0.1,
		MinOccurrenceRatio: 0.5,
		PositionTolerance:  0.01,
		MinPages:           2,
	}
}

// PageLines is one page's lines with the page dimensions, the input to
// cross-page header/footer detection.
type PageLines struct {
	Lines  []model.Line
	Width  float64
	Height float64
}

// RepeatingLine is a line that repeats across pages in the header or
// footer zone.
type RepeatingLine struct {
	// Text is the representative text, "[page number]" for page
	// number sequences
	Text string

	// IsPageNumber reports whether the repeats form a page number
	// sequence
	IsPageNumber bool

	// Confidence is the detection confidence in [0, 1], driven by the
	// occurrence ratio
	Confidence float64

	// PageIndices lists the pages (0-based) the line repeats on
	PageIndices []int
}

// HeaderFooterResult contains detected repeating lines per zone.
type HeaderFooterResult struct {
	Headers []RepeatingLine
	Footers []RepeatingLine

	config HeaderFooterConfig
}

// HeaderFooterDetector finds lines that repeat across pages near the
// page top or bottom, typically running titles and page numbers, so
// they can be removed before block building.
type HeaderFooterDetector struct {
	config HeaderFooterConfig
}

// NewHeaderFooterDetector creates a detector with default configuration.
func NewHeaderFooterDetector() *HeaderFooterDetector {
	return &HeaderFooterDetector{config: DefaultHeaderFooterConfig()}
}

// NewHeaderFooterDetectorWithConfig creates a detector with custom
// configuration.
func NewHeaderFooterDetectorWithConfig(config HeaderFooterConfig) *HeaderFooterDetector {
	return &HeaderFooterDetector{config: config}
}

// candidate is one in-zone line occurrence.
type candidate struct {
	text      string
	top       float64 // fraction of the page height
	pageIndex int
}

// Detect analyzes lines from multiple pages and reports repeating
// headers and footers. With fewer than MinPages pages nothing is
// detected.
func (d *HeaderFooterDetector) Detect(pages []PageLines) *HeaderFooterResult {
	result := &HeaderFooterResult{config: d.config}
	if len(pages) < d.config.MinPages {
		return result
	}

	var headerCands, footerCands []candidate
	for i, page := range pages {
		if page.Height <= 0 {
			continue
		}
		headerLimit := d.config.RegionRatio * page.Height
		footerLimit := page.Height - headerLimit

		for _, line := range page.Lines {
			text := strings.TrimSpace(line.Text)
			if text == "" {
				continue
			}
			c := candidate{
				text:      text,
				top:       line.Box.Top() / page.Height,
				pageIndex: i,
			}
			switch {
			case line.Box.Top() < headerLimit:
				headerCands = append(headerCands, c)
			case line.Box.Bottom() > footerLimit:
				footerCands = append(footerCands, c)
			}
		}
	}

	result.Headers = d.repeating(headerCands, len(pages))
	result.Footers = d.repeating(footerCands, len(pages))
	return result
}

// repeating groups candidates by digit-normalized text and keeps the
// groups that recur at a consistent position on enough pages.
func (d *HeaderFooterDetector) repeating(cands []candidate, totalPages int) []RepeatingLine {
	groups := make(map[string][]candidate)
	for _, c := range cands {
		groups[normalizeDigits(c.text)] = append(groups[normalizeDigits(c.text)], c)
	}

	minPages := int(float64(totalPages) * d.config.MinOccurrenceRatio)
	if minPages < 2 {
		minPages = 2
	}

	var found []RepeatingLine
	for normalized, group := range groups {
		// Single stray characters are noise, not headers.
		if len(normalized) <= 1 && !isPageNumberPattern(normalized) {
			continue
		}

		pageSet := make(map[int]bool)
		for _, c := range group {
			pageSet[c.pageIndex] = true
		}
		if len(pageSet) < minPages {
			continue
		}
		if !d.consistentPosition(group) {
			continue
		}

		isPageNum := isPageNumberPattern(normalized) || sequentialNumbers(group)
		text := group[0].text
		if isPageNum {
			text = "[page number]"
		}

		indices := make([]int, 0, len(pageSet))
		for idx := range pageSet {
			indices = append(indices, idx)
		}
		sort.Ints(indices)

		found = append(found, RepeatingLine{
			Text:         text,
			IsPageNumber: isPageNum,
			Confidence:   float64(len(pageSet)) / float64(totalPages),
			PageIndices:  indices,
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Confidence > found[j].Confidence
	})
	return found
}

// consistentPosition checks that the group's occurrences share a top
// edge within the tolerance.
func (d *HeaderFooterDetector) consistentPosition(group []candidate) bool {
	if len(group) < 2 {
		return false
	}
	ref := group[0].top
	for _, c := range group[1:] {
		diff := c.top - ref
		if diff < 0 {
			diff = -diff
		}
		if diff > d.config.PositionTolerance {
			return false
		}
	}
	return true
}

// Filter removes the lines of page pageIndex that match a detected
// header or footer for that page.
func (r *HeaderFooterResult) Filter(pageIndex int, lines []model.Line, pageHeight float64) []model.Line {
	if r == nil || !r.HasAny() || pageHeight <= 0 {
		return lines
	}

	headerLimit := r.config.RegionRatio * pageHeight
	footerLimit := pageHeight - headerLimit

	filtered := make([]model.Line, 0, len(lines))
	for _, line := range lines {
		switch {
		case line.Box.Top() < headerLimit && matchesAny(r.Headers, pageIndex, line.Text):
		case line.Box.Bottom() > footerLimit && matchesAny(r.Footers, pageIndex, line.Text):
		default:
			filtered = append(filtered, line)
		}
	}
	return filtered
}

// HasAny reports whether any headers or footers were detected.
func (r *HeaderFooterResult) HasAny() bool {
	return r != nil && (len(r.Headers) > 0 || len(r.Footers) > 0)
}

// Summary returns a human-readable description of the detections.
func (r *HeaderFooterResult) Summary() string {
	if !r.HasAny() {
		return "no headers or footers detected"
	}

	var parts []string
	if len(r.Headers) > 0 {
		texts := make([]string, len(r.Headers))
		for i, h := range r.Headers {
			texts[i] = h.Text
		}
		parts = append(parts, "headers: "+strings.Join(texts, ", "))
	}
	if len(r.Footers) > 0 {
		texts := make([]string, len(r.Footers))
		for i, f := range r.Footers {
			texts[i] = f.Text
		}
		parts = append(parts, "footers: "+strings.Join(texts, ", "))
	}
	return strings.Join(parts, "; ")
}

func matchesAny(regions []RepeatingLine, pageIndex int, text string) bool {
	text = strings.TrimSpace(text)
	for _, region := range regions {
		if !containsInt(region.PageIndices, pageIndex) {
			continue
		}
		if region.IsPageNumber && isPageNumberPattern(normalizeDigits(text)) {
			return true
		}
		if normalizeDigits(text) == normalizeDigits(region.Text) || text == region.Text {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

var digitRun = regexp.MustCompile(`\d+`)

// normalizeDigits replaces digit runs with a placeholder so "Page 3"
// and "Page 17" compare equal.
func normalizeDigits(text string) string {
	return digitRun.ReplaceAllString(text, "#")
}

// isPageNumberPattern checks a digit-normalized text against common
// page number layouts.
func isPageNumberPattern(normalized string) bool {
	patterns := []string{
		"#",
		"page #",
		"- # -",
		"# of #",
		"page # of #",
		"#/#",
		"p. #",
		"p.#",
		"seite #",
	}

	trimmed := strings.TrimSpace(normalized)
	for _, pattern := range patterns {
		if strings.EqualFold(trimmed, pattern) {
			return true
		}
	}
	return false
}

// sequentialNumbers checks whether the group's embedded numbers mostly
// increase by one, the signature of page numbering inside a running
// title.
func sequentialNumbers(group []candidate) bool {
	if len(group) < 2 {
		return false
	}

	var numbers []int
	for _, c := range group {
		for _, match := range digitRun.FindAllString(c.text, -1) {
			n := 0
			for _, ch := range match {
				n = n*10 + int(ch-'0')
			}
			numbers = append(numbers, n)
		}
	}
	if len(numbers) < 2 {
		return false
	}

	sort.Ints(numbers)
	sequential := 0
	for i := 1; i < len(numbers); i++ {
		if numbers[i]-numbers[i-1] == 1 {
			sequential++
		}
	}
	return sequential >= len(numbers)/2
}
