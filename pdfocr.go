// Package pdfocr reconstructs document structure from OCR page output.
//
// Given the recognized text lines of a scanned page (quadrilateral boxes,
// text, confidence), the pipeline classifies each line as a heading or
// body text and merges adjacent body lines into paragraph blocks:
//
//	pipeline := pdfocr.NewPipeline()
//	out := pipeline.ProcessPage(pdfocr.Page{
//	    Number: 1,
//	    Width:  2480,
//	    Height: 3508,
//	    Lines:  lines,
//	})
//	for _, block := range out.Blocks {
//	    fmt.Println(block.ToMarkdown())
//	}
//
// Pages are independent; batches run concurrently:
//
//	outputs, err := pipeline.ProcessPages(ctx, pages)
//
// Tuning and cleanup are configured with options:
//
//	patterns := pdfocr.Must(pdfocr.CompileCleanup([]string{`\f`}))
//	pipeline := pdfocr.NewPipeline(
//	    pdfocr.WithConfig(config),
//	    pdfocr.WithColumnDetection(2),
//	    pdfocr.WithCleanup(patterns...),
//	)
//
// The layout heuristics themselves live in the layout package; line
// sources (OCR, native PDF text) live in the ocr and pdftext packages.
package pdfocr

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/momomsr/PDFOCR/layout"
	"github.com/momomsr/PDFOCR/model"
)

// Page is one page of input: its pixel dimensions and detected lines.
// Lines may be in raw detection order; the pipeline establishes reading
// order before analysis.
type Page struct {
	// Number is the 1-based page number
	Number int

	// Width and Height are the page pixel dimensions
	Width, Height float64

	// Lines are the recognized text lines
	Lines []model.Line
}

// PageOutput is the analysis result for one page
type PageOutput struct {
	// Number is the 1-based page number, matching the input page
	Number int

	// Blocks is the ordered block sequence
	Blocks []model.Block

	// Lines are the classified lines in reading order
	Lines []model.ClassifiedLine

	// Stats are the per-page diagnostics
	Stats layout.PageStats
}

// Pipeline runs ordering, classification, block building, and text
// cleanup for pages. A Pipeline is immutable after construction and safe
// for concurrent use.
type Pipeline struct {
	config       layout.Config
	orderer      layout.LineOrderer
	cleanup      []CleanupPattern
	workers      int
	headerFooter *layout.HeaderFooterDetector
}

// NewPipeline creates a pipeline. Without options it uses the default
// layout configuration, positional line ordering, no cleanup patterns,
// and one worker per CPU for batch processing.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		config:  layout.DefaultConfig(),
		orderer: layout.NewLineOrderer(false, 1),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns the pipeline's layout configuration
func (p *Pipeline) Config() layout.Config {
	return p.config
}

// ProcessPage analyzes a single page. It is a pure, synchronous
// transformation: no I/O, no shared mutable state, no error conditions.
func (p *Pipeline) ProcessPage(page Page) PageOutput {
	ordered := p.orderer.Order(page.Lines)

	analyzer := layout.NewAnalyzerWithConfig(p.config)
	result := analyzer.AnalyzePage(ordered, page.Width)

	blocks := result.Blocks
	if len(p.cleanup) > 0 {
		blocks = p.cleanBlocks(blocks)
	}

	return PageOutput{
		Number: page.Number,
		Blocks: blocks,
		Lines:  result.Lines,
		Stats:  result.Stats,
	}
}

// ProcessPages analyzes a batch of pages concurrently and returns the
// outputs in input order. Pages are independent, so the only coordination
// is collecting results. Cancellation applies at page granularity: pages
// already analyzed when the context is cancelled are discarded and the
// context error returned.
func (p *Pipeline) ProcessPages(ctx context.Context, pages []Page) ([]PageOutput, error) {
	if len(pages) == 0 {
		return nil, ctx.Err()
	}

	workers := p.workers
	if workers > len(pages) {
		workers = len(pages)
	}
	if workers < 1 {
		workers = 1
	}

	pages = p.stripHeadersFooters(pages)

	outputs := make([]PageOutput, len(pages))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				outputs[i] = p.ProcessPage(pages[i])
			}
		}()
	}

	var cancelled error
feed:
	for i := range pages {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case indices <- i:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		}
	}
	close(indices)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}
	return outputs, nil
}

// stripHeadersFooters removes lines repeating across pages near the
// page top or bottom (running titles, page numbers) when header/footer
// removal is enabled. Detection needs the whole batch, so single-page
// ProcessPage calls are unaffected.
func (p *Pipeline) stripHeadersFooters(pages []Page) []Page {
	if p.headerFooter == nil || len(pages) < 2 {
		return pages
	}

	input := make([]layout.PageLines, len(pages))
	for i, page := range pages {
		input[i] = layout.PageLines{
			Lines:  page.Lines,
			Width:  page.Width,
			Height: page.Height,
		}
	}

	result := p.headerFooter.Detect(input)
	if !result.HasAny() {
		return pages
	}

	stripped := make([]Page, len(pages))
	for i, page := range pages {
		stripped[i] = Page{
			Number: page.Number,
			Width:  page.Width,
			Height: page.Height,
			Lines:  result.Filter(i, page.Lines, page.Height),
		}
	}
	return stripped
}

// cleanBlocks applies the configured cleanup patterns to every block's
// text and normalizes the result to NFC. OCR output frequently mixes
// composed and decomposed forms of accented characters.
func (p *Pipeline) cleanBlocks(blocks []model.Block) []model.Block {
	cleaned := make([]model.Block, len(blocks))
	for i, b := range blocks {
		text := b.Text
		for _, pattern := range p.cleanup {
			text = pattern.re.ReplaceAllString(text, "")
		}
		cleaned[i] = model.Block{Type: b.Type, Text: norm.NFC.String(text)}
	}
	return cleaned
}

// DocumentStats aggregates metrics across a processed batch
type DocumentStats struct {
	// Pages is the number of pages processed
	Pages int

	// Lines is the total number of recognized lines
	Lines int

	// AverageConfidence is the mean recognition confidence across all
	// lines, 0 when there are no lines
	AverageConfidence float64
}

// CollectStats aggregates batch metrics from page outputs
func CollectStats(outputs []PageOutput) DocumentStats {
	stats := DocumentStats{Pages: len(outputs)}

	sum := 0.0
	for _, out := range outputs {
		stats.Lines += len(out.Lines)
		for _, line := range out.Lines {
			sum += line.Confidence
		}
	}
	if stats.Lines > 0 {
		stats.AverageConfidence = sum / float64(stats.Lines)
	}
	return stats
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
