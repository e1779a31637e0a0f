package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pdfocr "github.com/momomsr/PDFOCR"
	"github.com/momomsr/PDFOCR/docx"
	"github.com/momomsr/PDFOCR/export"
	"github.com/momomsr/PDFOCR/layout"
	"github.com/momomsr/PDFOCR/model"
	"github.com/momomsr/PDFOCR/ocr"
	"github.com/momomsr/PDFOCR/pdftext"
	"github.com/momomsr/PDFOCR/report"
)

func convertCmd() *cobra.Command {
	var (
		out         string
		configPath  string
		format      string
		align       string
		h1Ratio     float64
		h2Ratio     float64
		ruleCenter  bool
		ruleCaps    bool
		ruleGap     bool
		mergeGap    float64
		indentTol   float64
		hyphenMerge bool
		keepBreaks  bool
		columns     bool
		maxColumns  int
		cleanup     []string
		minText     int
		reportDir   string
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "convert <pdf>",
		Short: "Convert a PDF into structured markdown or DOCX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pdfPath := args[0]
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			s := defaultSettings()
			if configPath != "" {
				var err error
				if s, err = loadSettings(configPath); err != nil {
					return err
				}
			}

			// Explicit flags override the settings file.
			f := cmd.Flags()
			if f.Changed("h1-ratio") {
				s.HeadingH1 = h1Ratio
			}
			if f.Changed("h2-ratio") {
				s.HeadingH2 = h2Ratio
			}
			if f.Changed("rule-centered") {
				s.ExtraRules.Centered = ruleCenter
			}
			if f.Changed("rule-all-caps") {
				s.ExtraRules.AllCaps = ruleCaps
			}
			if f.Changed("rule-big-gap") {
				s.ExtraRules.BigGap = ruleGap
			}
			if f.Changed("merge-gap") {
				s.MergeGap = mergeGap
			}
			if f.Changed("indent-tolerance") {
				s.IndentTolerance = indentTol
			}
			if f.Changed("hyphen-merge") {
				s.HyphenMerge = hyphenMerge
			}
			if f.Changed("keep-line-breaks") {
				s.KeepLineBreaks = keepBreaks
			}
			if f.Changed("columns") {
				s.ColumnDetection = columns
			}
			if f.Changed("max-columns") {
				s.MaxColumns = maxColumns
			}
			if f.Changed("format") {
				s.OutputFormat = format
			}
			if f.Changed("align") {
				s.TextAlignment = align
			}
			if f.Changed("clean") {
				s.RegexCleanup = cleanup
			}

			cfg := s.layoutConfig()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger.Info("extracting embedded text", "input", pdfPath)
			pages, err := pdftext.NewExtractor().ExtractPages(pdfPath)
			if err != nil {
				return fmt.Errorf("extracting text from %s: %w", pdfPath, err)
			}

			warnIfSparse(logger, pages, minText)

			opts := []pdfocr.Option{pdfocr.WithConfig(cfg)}
			if s.ColumnDetection {
				opts = append(opts, pdfocr.WithColumnDetection(s.MaxColumns))
			}
			if len(s.RegexCleanup) > 0 {
				patterns, err := pdfocr.CompileCleanup(s.RegexCleanup)
				if err != nil {
					return err
				}
				opts = append(opts, pdfocr.WithCleanup(patterns...))
			}
			if workers > 0 {
				opts = append(opts, pdfocr.WithWorkers(workers))
			}

			pipe := pdfocr.NewPipeline(opts...)
			outputs, err := pipe.ProcessPages(cmd.Context(), pages)
			if err != nil {
				return err
			}

			blocks := make([][]model.Block, len(outputs))
			stats := make([]layout.PageStats, len(outputs))
			for i, o := range outputs {
				blocks[i] = o.Blocks
				stats[i] = o.Stats
			}

			if out == "" {
				out = strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + outputExt(s.OutputFormat)
			}
			if err := writeOutput(out, s, blocks); err != nil {
				return err
			}
			logger.Info("wrote output", "path", out, "format", s.OutputFormat)

			if reportDir != "" {
				if err := writeReport(reportDir, cfg, stats); err != nil {
					return err
				}
				logger.Info("wrote tuning report", "dir", reportDir)
			}

			doc := pdfocr.CollectStats(outputs)
			logger.Info("done",
				"pages", doc.Pages,
				"lines", doc.Lines,
				"avg_confidence", doc.AverageConfidence)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file path (default: input name with the format extension)")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML settings file; flags override its values")
	cmd.Flags().StringVar(&format, "format", "markdown", "output format: markdown|docx")
	cmd.Flags().StringVar(&align, "align", "justify", "DOCX paragraph alignment: justify|left|center|right")
	cmd.Flags().Float64Var(&h1Ratio, "h1-ratio", 1.8, "H1 height threshold as a multiple of the median line height")
	cmd.Flags().Float64Var(&h2Ratio, "h2-ratio", 1.4, "H2 height threshold as a multiple of the median line height")
	cmd.Flags().BoolVar(&ruleCenter, "rule-centered", true, "let centered lines qualify as H2")
	cmd.Flags().BoolVar(&ruleCaps, "rule-all-caps", true, "let all-caps lines qualify as H2")
	cmd.Flags().BoolVar(&ruleGap, "rule-big-gap", true, "let lines after a large vertical gap qualify as H2")
	cmd.Flags().Float64Var(&mergeGap, "merge-gap", 1.2, "paragraph merge gap as a multiple of the median line height")
	cmd.Flags().Float64Var(&indentTol, "indent-tolerance", 0.04, "left-edge alignment tolerance as a fraction of the page width")
	cmd.Flags().BoolVar(&hyphenMerge, "hyphen-merge", true, "join hyphenated line breaks")
	cmd.Flags().BoolVar(&keepBreaks, "keep-line-breaks", false, "keep line breaks inside paragraph blocks")
	cmd.Flags().BoolVar(&columns, "columns", true, "detect multi-column layouts")
	cmd.Flags().IntVar(&maxColumns, "max-columns", 2, "maximum number of columns to detect")
	cmd.Flags().StringSliceVar(&cleanup, "clean", nil, "regex patterns removed from block text")
	cmd.Flags().IntVar(&minText, "min-text", pdftext.DefaultOCRMinContent, "minimum embedded text length before suggesting OCR")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "write a tuning report (charts + HTML) into this directory")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent page workers (default: number of CPUs)")
	return cmd
}

// warnIfSparse flags documents whose embedded text is too thin to
// trust, pointing at the OCR build when it is not compiled in.
func warnIfSparse(logger *slog.Logger, pages []pdfocr.Page, minText int) {
	var sb strings.Builder
	for _, page := range pages {
		for _, line := range page.Lines {
			sb.WriteString(line.Text)
			sb.WriteString(" ")
		}
	}
	if !pdftext.NeedsOCR(sb.String(), minText) {
		return
	}

	client, err := ocr.New()
	if err != nil {
		logger.Warn("little usable embedded text found; results may be incomplete", "hint", err)
		return
	}
	client.Close()
	logger.Warn("little usable embedded text found; rasterize the pages and use the ocr package for better results")
}

func outputExt(format string) string {
	if format == "docx" {
		return ".docx"
	}
	return ".md"
}

func writeOutput(path string, s settings, blocks [][]model.Block) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch s.OutputFormat {
	case "docx":
		return docx.Write(f, blocks, docx.Options{Alignment: docxAlignment(s.TextAlignment)})
	case "markdown", "md":
		return export.WriteMarkdown(f, blocks)
	default:
		return fmt.Errorf("unknown output format %q", s.OutputFormat)
	}
}

func docxAlignment(align string) docx.Alignment {
	switch align {
	case "left":
		return docx.AlignLeft
	case "center":
		return docx.AlignCenter
	case "right":
		return docx.AlignRight
	default:
		return docx.AlignJustify
	}
}

// writeReport renders the tuning charts and the HTML report for the
// first page's height distribution and all pages' heading counts.
func writeReport(dir string, cfg layout.Config, stats []layout.PageStats) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	images := map[string]string{}

	if len(stats) > 0 {
		if img := report.Histogram(stats[0], cfg.Heading, 640, 400); img != nil {
			path := filepath.Join(dir, "line_heights.png")
			if err := writePNG(path, img); err != nil {
				return err
			}
			images["histogram"] = path
		}
	}
	if img := report.HeadingCounts(stats, 640, 400); img != nil {
		path := filepath.Join(dir, "heading_counts.png")
		if err := writePNG(path, img); err != nil {
			return err
		}
		images["heading_counts"] = path
	}

	f, err := os.Create(filepath.Join(dir, "report.html"))
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()
	return report.WriteHTML(f, cfg, stats, images)
}

func writePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
