// Package layout reconstructs the logical structure of a scanned page
// from OCR line output: heading classification and paragraph block merging.
package layout

import (
	"sort"
	"unicode"

	"github.com/momomsr/PDFOCR/model"
)

// ExtraRules toggles the secondary signals a line must show (in addition
// to its height) to classify as an H2 heading. Each rule is independently
// toggleable; with all rules disabled H2 can never trigger.
type ExtraRules struct {
	// Centered fires when the line's horizontal center is within 5% of
	// the page width from the page center
	Centered bool

	// AllCaps fires when the line text is fully uppercase
	AllCaps bool

	// BigGap fires when the vertical gap to the previous line exceeds
	// 80% of the median line height
	BigGap bool
}

// HeadingConfig holds configuration for line classification
type HeadingConfig struct {
	// H1Ratio is the height multiple of the median line height a line
	// must exceed (strictly) to classify as H1
	// Default: 1.8
	H1Ratio float64

	// H2Ratio is the height multiple of the median line height a line
	// must exceed (strictly) to be considered for H2
	// Default: 1.4
	H2Ratio float64

	// Extra are the secondary H2 signals
	// Default: all enabled
	Extra ExtraRules
}

// DefaultHeadingConfig returns sensible default configuration
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		H1Ratio: 1.8,
		H2Ratio: 1.4,
		Extra: ExtraRules{
			Centered: true,
			AllCaps:  true,
			BigGap:   true,
		},
	}
}

// Classification is the result of classifying one page's lines
type Classification struct {
	// Lines are the classified lines, in input order
	Lines []model.ClassifiedLine

	// MedianHeight is the median line height of the page
	MedianHeight float64

	// PageWidth is the page pixel width used for classification
	PageWidth float64

	// Config is the configuration used for classification
	Config HeadingConfig
}

// Classifier assigns a structural level (h1, h2, p) to each line of a page
// based on its height relative to the page's median line height plus a
// handful of shape and position heuristics.
type Classifier struct {
	config HeadingConfig
}

// NewClassifier creates a classifier with default configuration
func NewClassifier() *Classifier {
	return &Classifier{
		config: DefaultHeadingConfig(),
	}
}

// NewClassifierWithConfig creates a classifier with custom configuration
func NewClassifierWithConfig(config HeadingConfig) *Classifier {
	return &Classifier{
		config: config,
	}
}

// Classify assigns a level to each line and computes the page's median
// line height. Input order is preserved. Classification depends on input
// order only through the running previous-line bottom used for gap
// detection; it holds no state across calls.
//
// The H1 rule is checked first and wins ties: a line taller than
// H1Ratio x median is H1 regardless of the H2 rule. A line is H2 only if
// it is not H1, is taller than H2Ratio x median, is narrower than 75% of
// the page width, and at least one enabled extra rule fires.
func (c *Classifier) Classify(lines []model.Line, pageWidth float64) *Classification {
	result := &Classification{
		PageWidth: pageWidth,
		Config:    c.config,
	}
	if len(lines) == 0 {
		return result
	}

	heights := make([]float64, len(lines))
	for i, line := range lines {
		heights[i] = line.Box.Height()
	}
	medianH := median(heights)

	result.Lines = make([]model.ClassifiedLine, 0, len(lines))
	result.MedianHeight = medianH

	prevBottom := 0.0
	for i, line := range lines {
		h := heights[i]
		gap := line.Box.Top() - prevBottom
		prevBottom = line.Box.Bottom()

		level := model.LevelParagraph
		switch {
		case h > c.config.H1Ratio*medianH:
			level = model.LevelH1
		case h > c.config.H2Ratio*medianH &&
			line.Box.Width() < 0.75*pageWidth &&
			c.extraRuleFires(line, pageWidth, gap, medianH):
			level = model.LevelH2
		}

		result.Lines = append(result.Lines, model.ClassifiedLine{
			Line:   line,
			Level:  level,
			Height: h,
		})
	}

	return result
}

// extraRuleFires reports whether at least one enabled H2 extra rule holds
func (c *Classifier) extraRuleFires(line model.Line, pageWidth, gap, medianH float64) bool {
	if c.config.Extra.Centered {
		center := line.Box.CenterX()
		if abs(center-pageWidth/2) < 0.05*pageWidth {
			return true
		}
	}
	if c.config.Extra.AllCaps && isAllCaps(line.Text) {
		return true
	}
	if c.config.Extra.BigGap && gap > 0.8*medianH {
		return true
	}
	return false
}

// median returns the statistical median: for even counts, the average of
// the two middle values. The input slice is not modified.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// isAllCaps reports whether the text is fully uppercase: it contains at
// least one uppercase letter and no lowercase letters.
func isAllCaps(text string) bool {
	hasUpper := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Classification methods

// LineCount returns the number of classified lines
func (c *Classification) LineCount() int {
	if c == nil {
		return 0
	}
	return len(c.Lines)
}

// CountByLevel returns the number of lines classified at the given level
func (c *Classification) CountByLevel(level model.Level) int {
	if c == nil {
		return 0
	}

	count := 0
	for _, line := range c.Lines {
		if line.Level == level {
			count++
		}
	}
	return count
}

// H1Count returns the number of H1 lines
func (c *Classification) H1Count() int {
	return c.CountByLevel(model.LevelH1)
}

// H2Count returns the number of H2 lines
func (c *Classification) H2Count() int {
	return c.CountByLevel(model.LevelH2)
}

// Heights returns the computed height of every line, in input order
func (c *Classification) Heights() []float64 {
	if c == nil || len(c.Lines) == 0 {
		return nil
	}

	heights := make([]float64, len(c.Lines))
	for i, line := range c.Lines {
		heights[i] = line.Height
	}
	return heights
}
