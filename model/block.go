package model

import "strings"

// Block is one unit of reconstructed page structure: a heading or a
// merged paragraph. Headings are always single-line blocks; paragraph
// blocks carry the merged text of a run of adjacent body lines.
type Block struct {
	// Type is the block's structural level
	Type Level

	// Text is the final merged text content
	Text string
}

// IsHeading returns true if the block is an H1 or H2 heading
func (b Block) IsHeading() bool {
	return b.Type.IsHeading()
}

// WordCount returns an approximate word count for the block text
func (b Block) WordCount() int {
	return len(strings.Fields(b.Text))
}

// ToMarkdown returns the block rendered as a markdown fragment
func (b Block) ToMarkdown() string {
	return b.Type.MarkdownPrefix() + b.Text
}
