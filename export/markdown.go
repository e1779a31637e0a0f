// Package export serializes reconstructed page blocks to output formats.
package export

import (
	"io"
	"strings"

	"github.com/momomsr/PDFOCR/model"
)

// Markdown renders the blocks of all pages as a single markdown
// document. H1 blocks become "# " headings, H2 blocks "## " headings,
// paragraph blocks plain text; every block is followed by a blank line.
func Markdown(pages [][]model.Block) string {
	var lines []string
	for _, page := range pages {
		for _, block := range page {
			lines = append(lines, block.ToMarkdown())
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

// WriteMarkdown writes the markdown rendering of pages to w.
func WriteMarkdown(w io.Writer, pages [][]model.Block) error {
	_, err := io.WriteString(w, Markdown(pages))
	return err
}
