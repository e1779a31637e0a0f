package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/momomsr/PDFOCR/model"
)

// BlockConfig holds configuration for block building
type BlockConfig struct {
	// MergeGapRatio is the maximum vertical gap between consecutive
	// paragraph lines, as a multiple of the median line height, for the
	// lines to merge into the same block
	// Default: 1.2
	MergeGapRatio float64

	// IndentTolerance is the maximum left-edge difference between
	// consecutive paragraph lines, as a fraction of the page width,
	// for the lines to merge into the same block
	// Default: 0.04
	IndentTolerance float64

	// HyphenMerge removes a trailing hyphen when joining a line with a
	// continuation that starts with a lowercase letter
	// Default: true
	HyphenMerge bool

	// KeepLineBreaks joins merged lines with newlines instead of spaces
	// Default: false
	KeepLineBreaks bool
}

// DefaultBlockConfig returns sensible default configuration
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		MergeGapRatio:   1.2,
		IndentTolerance: 0.04,
		HyphenMerge:     true,
		KeepLineBreaks:  false,
	}
}

// BlockBuilder merges a page's classified lines into blocks. Runs of
// adjacent paragraph lines with aligned left edges and small vertical
// gaps become one paragraph block; heading lines become single-line
// blocks of their own and are never merged with neighbors.
type BlockBuilder struct {
	config BlockConfig
}

// NewBlockBuilder creates a block builder with default configuration
func NewBlockBuilder() *BlockBuilder {
	return &BlockBuilder{
		config: DefaultBlockConfig(),
	}
}

// NewBlockBuilderWithConfig creates a block builder with custom configuration
func NewBlockBuilderWithConfig(config BlockConfig) *BlockBuilder {
	return &BlockBuilder{
		config: config,
	}
}

// Build walks the classified lines in order and produces the page's
// ordered block sequence. medianHeight must be the median line height
// reported by the classifier for the same lines.
//
// Two consecutive paragraph lines land in the same block iff their
// left-edge difference is at most IndentTolerance x pageWidth and the
// vertical gap between them is at most MergeGapRatio x medianHeight.
// Violating either threshold starts a new block.
func (b *BlockBuilder) Build(lines []model.ClassifiedLine, medianHeight, pageWidth float64) []model.Block {
	var blocks []model.Block
	var para []model.ClassifiedLine
	var prevBottom, prevLeft float64

	for _, line := range lines {
		left := line.Box.Left()
		top := line.Box.Top()

		if line.Level != model.LevelParagraph {
			if len(para) > 0 {
				blocks = append(blocks, b.paragraphBlock(para))
				para = nil
			}
			blocks = append(blocks, model.Block{Type: line.Level, Text: line.Text})
			prevBottom = line.Box.Bottom()
			prevLeft = left
			continue
		}

		if len(para) == 0 {
			para = append(para, line)
			prevBottom = line.Box.Bottom()
			prevLeft = left
			continue
		}

		gap := top - prevBottom
		if abs(left-prevLeft) <= b.config.IndentTolerance*pageWidth &&
			gap <= b.config.MergeGapRatio*medianHeight {
			para = append(para, line)
		} else {
			blocks = append(blocks, b.paragraphBlock(para))
			para = []model.ClassifiedLine{line}
		}
		prevBottom = line.Box.Bottom()
		prevLeft = left
	}

	if len(para) > 0 {
		blocks = append(blocks, b.paragraphBlock(para))
	}

	return blocks
}

// paragraphBlock merges a buffered run of paragraph lines into one block
func (b *BlockBuilder) paragraphBlock(para []model.ClassifiedLine) model.Block {
	return model.Block{
		Type: model.LevelParagraph,
		Text: b.mergeText(para),
	}
}

// mergeText concatenates the text of a run of lines. When hyphen merging
// is enabled, a fragment ending in a literal hyphen followed by a line
// starting with a lowercase letter is joined directly with the hyphen
// removed (de-hyphenation across the line break); the de-hyphenated
// fragment can itself end in a hyphen and chain into the next line.
// All other lines join with a newline (KeepLineBreaks) or a single space.
func (b *BlockBuilder) mergeText(lines []model.ClassifiedLine) string {
	var fragments []string
	for _, line := range lines {
		t := line.Text
		if len(fragments) > 0 && b.config.HyphenMerge &&
			strings.HasSuffix(fragments[len(fragments)-1], "-") &&
			startsLower(t) {
			prev := fragments[len(fragments)-1]
			fragments[len(fragments)-1] = prev[:len(prev)-1] + t
		} else {
			fragments = append(fragments, t)
		}
	}

	sep := " "
	if b.config.KeepLineBreaks {
		sep = "\n"
	}
	return strings.Join(fragments, sep)
}

// startsLower reports whether the first character of the text is a
// lowercase letter. Empty text is not lowercase.
func startsLower(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	return r != utf8.RuneError && unicode.IsLower(r)
}
