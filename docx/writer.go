// Package docx writes minimal DOCX (Office Open XML) documents.
//
// The writer produces just enough WordprocessingML for reconstructed
// page blocks: Heading 1 and Heading 2 styled paragraphs for headings
// and aligned body paragraphs for merged text. The output opens in
// Word, LibreOffice and Google Docs.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/momomsr/PDFOCR/model"
)

// nsW is the WordprocessingML main namespace
const nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Alignment is a WordprocessingML paragraph justification value.
type Alignment string

// Paragraph alignment values (<w:jc w:val="...">).
const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// Options controls document rendering.
type Options struct {
	// Alignment applies to body paragraphs; headings are always
	// left-aligned
	Alignment Alignment
}

// DefaultOptions returns options with justified body paragraphs.
func DefaultOptions() Options {
	return Options{Alignment: AlignJustify}
}

// Write serializes the blocks of all pages as a DOCX document to w.
func Write(w io.Writer, pages [][]model.Block, opts Options) error {
	if opts.Alignment == "" {
		opts.Alignment = AlignJustify
	}

	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", documentXML(pages, opts)},
	}

	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", part.name, err)
		}
		if _, err := io.WriteString(f, part.content); err != nil {
			return fmt.Errorf("writing %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

// documentXML builds word/document.xml from the page blocks.
func documentXML(pages [][]model.Block, opts Options) string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:document xmlns:w="` + nsW + `"><w:body>`)

	for _, page := range pages {
		for _, block := range page {
			writeParagraph(&sb, block, opts)
		}
	}

	sb.WriteString(`</w:body></w:document>`)
	return sb.String()
}

// writeParagraph emits one <w:p> element for a block.
func writeParagraph(sb *strings.Builder, block model.Block, opts Options) {
	sb.WriteString(`<w:p><w:pPr>`)
	switch block.Type {
	case model.LevelH1:
		sb.WriteString(`<w:pStyle w:val="Heading1"/>`)
	case model.LevelH2:
		sb.WriteString(`<w:pStyle w:val="Heading2"/>`)
	default:
		sb.WriteString(`<w:jc w:val="` + string(opts.Alignment) + `"/>`)
	}
	sb.WriteString(`</w:pPr><w:r><w:t xml:space="preserve">`)
	_ = xml.EscapeText(sb, []byte(block.Text))
	sb.WriteString(`</w:t></w:r></w:p>`)
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

// stylesXML declares the Normal, Heading1 and Heading2 paragraph styles.
// Sizes are half-points.
const stylesXML = xml.Header + `<w:styles xmlns:w="` + nsW + `">` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal">` +
	`<w:name w:val="Normal"/>` +
	`</w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1">` +
	`<w:name w:val="heading 1"/>` +
	`<w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:outlineLvl w:val="0"/><w:spacing w:before="240" w:after="120"/></w:pPr>` +
	`<w:rPr><w:b/><w:sz w:val="32"/></w:rPr>` +
	`</w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2">` +
	`<w:name w:val="heading 2"/>` +
	`<w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:outlineLvl w:val="1"/><w:spacing w:before="200" w:after="100"/></w:pPr>` +
	`<w:rPr><w:b/><w:sz w:val="26"/></w:rPr>` +
	`</w:style>` +
	`</w:styles>`
