package pdfocr

import (
	"fmt"
	"regexp"

	"github.com/momomsr/PDFOCR/layout"
)

// Option configures a Pipeline
type Option func(*Pipeline)

// WithConfig sets the layout configuration. Use layout.Config.Validate
// beforehand to catch misuse such as an H2 ratio at or above the H1
// ratio; the pipeline itself never fails on a misconfigured run.
func WithConfig(config layout.Config) Option {
	return func(p *Pipeline) {
		p.config = config
	}
}

// WithColumnDetection orders lines by clustering them into up to
// maxColumns columns before analysis. With maxColumns < 2 this is
// equivalent to positional ordering.
func WithColumnDetection(maxColumns int) Option {
	return func(p *Pipeline) {
		p.orderer = layout.NewLineOrderer(true, maxColumns)
	}
}

// WithLineOrderer sets a custom reading-order strategy
func WithLineOrderer(orderer layout.LineOrderer) Option {
	return func(p *Pipeline) {
		p.orderer = orderer
	}
}

// WithCleanup sets regex cleanup patterns. Every match is removed from
// each produced block's text, and the result is normalized to NFC.
func WithCleanup(patterns ...CleanupPattern) Option {
	return func(p *Pipeline) {
		p.cleanup = patterns
	}
}

// WithHeaderFooterRemoval drops lines that repeat across the batch near
// the page top or bottom (running titles, page numbers) before
// analysis. It applies to ProcessPages only, since detection compares
// pages against each other.
func WithHeaderFooterRemoval() Option {
	return func(p *Pipeline) {
		p.headerFooter = layout.NewHeaderFooterDetector()
	}
}

// WithHeaderFooterConfig is WithHeaderFooterRemoval with custom
// detection thresholds.
func WithHeaderFooterConfig(config layout.HeaderFooterConfig) Option {
	return func(p *Pipeline) {
		p.headerFooter = layout.NewHeaderFooterDetectorWithConfig(config)
	}
}

// WithWorkers sets the number of concurrent workers used by
// ProcessPages. Values below 1 fall back to a single worker.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		p.workers = n
	}
}

// CleanupPattern is a compiled text cleanup rule
type CleanupPattern struct {
	re *regexp.Regexp
}

// String returns the pattern source
func (c CleanupPattern) String() string {
	return c.re.String()
}

// CompileCleanup compiles a list of regular expressions into cleanup
// patterns. It fails on the first invalid expression.
func CompileCleanup(exprs []string) ([]CleanupPattern, error) {
	patterns := make([]CleanupPattern, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid cleanup pattern %q: %w", expr, err)
		}
		patterns = append(patterns, CleanupPattern{re: re})
	}
	return patterns, nil
}
