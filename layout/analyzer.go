package layout

import (
	"errors"
	"fmt"

	"github.com/momomsr/PDFOCR/model"
)

// Config holds the combined configuration for one page analysis run.
// It is read-only for the duration of a page's processing.
type Config struct {
	// Heading is the line classification configuration
	Heading HeadingConfig

	// Block is the block building configuration
	Block BlockConfig
}

// DefaultConfig returns a configuration with sensible defaults for
// typical scanned book and report pages.
func DefaultConfig() Config {
	return Config{
		Heading: DefaultHeadingConfig(),
		Block:   DefaultBlockConfig(),
	}
}

// Validate reports configuration misuse. The analyzer itself never fails
// on a misconfigured run; classification stays consistent with the stated
// precedence (H1 checked before H2, first match wins). Callers should
// validate before invocation instead of relying on that behavior.
func (c Config) Validate() error {
	var errs []error

	if c.Heading.H1Ratio <= 1.0 {
		errs = append(errs, fmt.Errorf("h1 ratio %.2f must be greater than 1.0", c.Heading.H1Ratio))
	}
	if c.Heading.H2Ratio <= 1.0 {
		errs = append(errs, fmt.Errorf("h2 ratio %.2f must be greater than 1.0", c.Heading.H2Ratio))
	}
	if c.Heading.H2Ratio >= c.Heading.H1Ratio {
		errs = append(errs, fmt.Errorf("h2 ratio %.2f is not below h1 ratio %.2f: the H2 rule can never fire because H1 is checked first and wins ties",
			c.Heading.H2Ratio, c.Heading.H1Ratio))
	}
	if c.Block.MergeGapRatio < 0 {
		errs = append(errs, fmt.Errorf("merge gap ratio %.2f must be non-negative", c.Block.MergeGapRatio))
	}
	if c.Block.IndentTolerance < 0 {
		errs = append(errs, fmt.Errorf("indent tolerance %.2f must be non-negative", c.Block.IndentTolerance))
	}

	return errors.Join(errs...)
}

// PageStats holds per-page diagnostic statistics for reporting
type PageStats struct {
	// MedianHeight is the page's median line height
	MedianHeight float64

	// LineHeights are the per-line heights, in reading order
	LineHeights []float64

	// H1Count is the number of lines classified as H1
	H1Count int

	// H2Count is the number of lines classified as H2
	H2Count int
}

// PageResult is the full analysis output for one page
type PageResult struct {
	// Blocks is the ordered block sequence for the page
	Blocks []model.Block

	// Lines are the classified lines, in reading order
	Lines []model.ClassifiedLine

	// MedianHeight is the page's median line height
	MedianHeight float64

	// Stats are the per-page diagnostics
	Stats PageStats
}

// Analyzer runs line classification followed by block building for one
// page at a time. It holds no state across pages; pages are independent
// and may be analyzed concurrently with separate or shared Analyzers
// (the configuration is never mutated).
type Analyzer struct {
	classifier *Classifier
	builder    *BlockBuilder
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config Config) *Analyzer {
	return &Analyzer{
		classifier: NewClassifierWithConfig(config.Heading),
		builder:    NewBlockBuilderWithConfig(config.Block),
	}
}

// AnalyzePage classifies the page's lines and merges them into blocks.
// Lines must already be in reading order (see LineOrderer). The function
// is total over well-formed input: an empty page yields an empty result.
func (a *Analyzer) AnalyzePage(lines []model.Line, pageWidth float64) *PageResult {
	classification := a.classifier.Classify(lines, pageWidth)
	blocks := a.builder.Build(classification.Lines, classification.MedianHeight, pageWidth)

	return &PageResult{
		Blocks:       blocks,
		Lines:        classification.Lines,
		MedianHeight: classification.MedianHeight,
		Stats: PageStats{
			MedianHeight: classification.MedianHeight,
			LineHeights:  classification.Heights(),
			H1Count:      classification.H1Count(),
			H2Count:      classification.H2Count(),
		},
	}
}

// BlockCount returns the number of blocks in the result
func (r *PageResult) BlockCount() int {
	if r == nil {
		return 0
	}
	return len(r.Blocks)
}

// Headings returns the heading blocks, in page order
func (r *PageResult) Headings() []model.Block {
	if r == nil {
		return nil
	}

	var result []model.Block
	for _, b := range r.Blocks {
		if b.IsHeading() {
			result = append(result, b)
		}
	}
	return result
}
