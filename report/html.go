package report

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"

	"golang.org/x/net/html"

	"github.com/momomsr/PDFOCR/layout"
)

// WriteHTML writes a tuning report: the configuration that produced the
// analysis, per-page statistics, and the diagnostic images keyed by
// name (referenced by base name, so the report expects to live next to
// them).
func WriteHTML(w io.Writer, cfg layout.Config, stats []layout.PageStats, images map[string]string) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := el("html")
	doc.AppendChild(root)

	head := el("head")
	head.AppendChild(el("title", text("Tuning Report")))
	root.AppendChild(head)

	body := el("body")
	root.AppendChild(body)

	body.AppendChild(el("h1", text("Tuning Report")))

	body.AppendChild(el("h2", text("Settings")))
	body.AppendChild(configTable(cfg))

	if len(stats) > 0 {
		body.AppendChild(el("h2", text("Pages")))
		body.AppendChild(statsTable(stats))
	}

	names := make([]string, 0, len(images))
	for name := range images {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		body.AppendChild(el("h3", text(name)))
		img := el("img")
		img.Attr = []html.Attribute{
			{Key: "src", Val: filepath.Base(images[name])},
			{Key: "alt", Val: name},
		}
		body.AppendChild(img)
	}

	return html.Render(w, doc)
}

// configTable renders every tunable setting as a name/value row.
func configTable(cfg layout.Config) *html.Node {
	rows := []struct {
		name  string
		value string
	}{
		{"h1_ratio", formatFloat(cfg.Heading.H1Ratio)},
		{"h2_ratio", formatFloat(cfg.Heading.H2Ratio)},
		{"centered_rule", strconv.FormatBool(cfg.Heading.Extra.Centered)},
		{"all_caps_rule", strconv.FormatBool(cfg.Heading.Extra.AllCaps)},
		{"big_gap_rule", strconv.FormatBool(cfg.Heading.Extra.BigGap)},
		{"merge_gap_ratio", formatFloat(cfg.Block.MergeGapRatio)},
		{"indent_tolerance", formatFloat(cfg.Block.IndentTolerance)},
		{"hyphen_merge", strconv.FormatBool(cfg.Block.HyphenMerge)},
		{"keep_line_breaks", strconv.FormatBool(cfg.Block.KeepLineBreaks)},
	}

	table := el("table")
	for _, row := range rows {
		table.AppendChild(el("tr",
			el("th", text(row.name)),
			el("td", text(row.value)),
		))
	}
	return table
}

// statsTable renders per-page line and heading counts.
func statsTable(stats []layout.PageStats) *html.Node {
	table := el("table")
	table.AppendChild(el("tr",
		el("th", text("page")),
		el("th", text("lines")),
		el("th", text("median height")),
		el("th", text("h1")),
		el("th", text("h2")),
	))

	for i, s := range stats {
		table.AppendChild(el("tr",
			el("td", text(strconv.Itoa(i+1))),
			el("td", text(strconv.Itoa(len(s.LineHeights)))),
			el("td", text(formatFloat(s.MedianHeight))),
			el("td", text(strconv.Itoa(s.H1Count))),
			el("td", text(strconv.Itoa(s.H2Count))),
		))
	}
	return table
}

func el(tag string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
