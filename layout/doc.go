// Package layout reconstructs the logical structure of a scanned page
// from OCR output: which lines are headings (H1/H2) versus body text,
// and how consecutive body lines merge into paragraph blocks.
//
// # Pipeline
//
// Analysis runs two stages per page, both pure and synchronous:
//
//   - [Classifier] assigns each line a level (h1, h2, p) from its height
//     relative to the page's median line height plus shape and position
//     heuristics.
//   - [BlockBuilder] walks the classified lines in reading order and
//     merges adjacent paragraph lines into blocks using left-edge
//     alignment and vertical-gap thresholds. Headings become single-line
//     blocks and are never merged.
//
// The [Analyzer] orchestrates both stages:
//
//	analyzer := layout.NewAnalyzer()
//	result := analyzer.AnalyzePage(lines, pageWidth)
//	for _, block := range result.Blocks {
//	    fmt.Println(block.Type, block.Text)
//	}
//
// # Reading order
//
// Both stages require lines in reading order: columns left to right,
// lines top to bottom within a column. [LineOrderer] provides two
// strategies for establishing that order from raw detection output:
// [ColumnOrderer] (horizontal-center clustering) and [PositionalOrderer]
// (plain top-to-bottom sort).
//
// # Configuration
//
// Each stage has its own configuration with defaults:
//
//	config := layout.DefaultConfig()
//	config.Heading.H1Ratio = 2.0
//	config.Block.KeepLineBreaks = true
//	analyzer := layout.NewAnalyzerWithConfig(config)
//
// Configuration is read-only during a page's processing. Misuse (for
// example an H2 ratio at or above the H1 ratio) is reported by
// [Config.Validate]; the analyzer itself never fails on it.
package layout
