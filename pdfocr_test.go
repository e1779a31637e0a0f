package pdfocr

import (
	"context"
	"reflect"
	"strconv"
	"testing"

	"golang.org/x/text/unicode/norm"

	"github.com/momomsr/PDFOCR/layout"
	"github.com/momomsr/PDFOCR/model"
)

func makeLine(text string, x, y, w, h float64) model.Line {
	return model.Line{
		Box:        model.RectQuad(x, y, w, h),
		Text:       text,
		Confidence: 0.8,
	}
}

func testPage(number int) Page {
	return Page{
		Number: number,
		Width:  1000,
		Height: 1400,
		Lines: []model.Line{
			makeLine("body one", 100, 100, 400, 10),
			makeLine("body two", 100, 112, 400, 10),
			makeLine("TITLE", 400, 160, 200, 25),
		},
	}
}

func TestProcessPage(t *testing.T) {
	pipeline := NewPipeline()
	out := pipeline.ProcessPage(testPage(3))

	if out.Number != 3 {
		t.Errorf("Number = %d, want 3", out.Number)
	}
	want := []model.Block{
		{Type: model.LevelParagraph, Text: "body one body two"},
		{Type: model.LevelH1, Text: "TITLE"},
	}
	if !reflect.DeepEqual(out.Blocks, want) {
		t.Errorf("Blocks = %v, want %v", out.Blocks, want)
	}
	if out.Stats.H1Count != 1 {
		t.Errorf("H1Count = %d, want 1", out.Stats.H1Count)
	}
}

func TestProcessPageOrdersLines(t *testing.T) {
	// Input out of reading order: the pipeline must sort before analysis.
	pipeline := NewPipeline()
	page := Page{
		Number: 1,
		Width:  1000,
		Lines: []model.Line{
			makeLine("second", 100, 112, 400, 10),
			makeLine("first", 100, 100, 400, 10),
		},
	}

	out := pipeline.ProcessPage(page)
	if len(out.Blocks) != 1 || out.Blocks[0].Text != "first second" {
		t.Errorf("Blocks = %v, want one block %q", out.Blocks, "first second")
	}
}

func TestProcessPageColumnDetection(t *testing.T) {
	pipeline := NewPipeline(WithColumnDetection(2))
	page := Page{
		Number: 1,
		Width:  1000,
		Lines: []model.Line{
			makeLine("L1", 50, 100, 300, 10),
			makeLine("R1", 600, 100, 300, 10),
			makeLine("L2", 50, 112, 300, 10),
			makeLine("R2", 600, 112, 300, 10),
		},
	}

	out := pipeline.ProcessPage(page)

	// Left column first, then right column; the column jump splits blocks
	// on the indent threshold.
	if len(out.Blocks) != 2 {
		t.Fatalf("Got %d blocks, want 2", len(out.Blocks))
	}
	if out.Blocks[0].Text != "L1 L2" {
		t.Errorf("Block 0 = %q, want %q", out.Blocks[0].Text, "L1 L2")
	}
	if out.Blocks[1].Text != "R1 R2" {
		t.Errorf("Block 1 = %q, want %q", out.Blocks[1].Text, "R1 R2")
	}
}

func TestProcessPageCleanup(t *testing.T) {
	patterns := Must(CompileCleanup([]string{`\[\d+\]`}))
	pipeline := NewPipeline(WithCleanup(patterns...))

	page := Page{
		Number: 1,
		Width:  1000,
		Lines: []model.Line{
			makeLine("text with[1] markers[2]", 100, 100, 400, 10),
		},
	}

	out := pipeline.ProcessPage(page)
	if out.Blocks[0].Text != "text with markers" {
		t.Errorf("Text = %q, want %q", out.Blocks[0].Text, "text with markers")
	}
}

func TestProcessPageCleanupNormalizes(t *testing.T) {
	patterns := Must(CompileCleanup([]string{`\f`}))
	pipeline := NewPipeline(WithCleanup(patterns...))

	// "u" followed by a combining diaeresis; cleanup normalizes to NFC.
	decomposed := "über"
	page := Page{
		Number: 1,
		Width:  1000,
		Lines:  []model.Line{makeLine(decomposed, 100, 100, 400, 10)},
	}

	out := pipeline.ProcessPage(page)
	if out.Blocks[0].Text != norm.NFC.String(decomposed) {
		t.Errorf("Text = %q, want NFC form %q", out.Blocks[0].Text, norm.NFC.String(decomposed))
	}
	if out.Blocks[0].Text != "über" {
		t.Errorf("Text = %q, want %q", out.Blocks[0].Text, "über")
	}
}

func TestCompileCleanupInvalidPattern(t *testing.T) {
	_, err := CompileCleanup([]string{`[unclosed`})
	if err == nil {
		t.Error("Expected error for invalid pattern")
	}
}

func TestProcessPages(t *testing.T) {
	pipeline := NewPipeline(WithWorkers(4))
	pages := make([]Page, 8)
	for i := range pages {
		pages[i] = testPage(i + 1)
	}

	outputs, err := pipeline.ProcessPages(context.Background(), pages)
	if err != nil {
		t.Fatalf("ProcessPages failed: %v", err)
	}
	if len(outputs) != len(pages) {
		t.Fatalf("Got %d outputs, want %d", len(outputs), len(pages))
	}

	// Outputs must be in input order regardless of worker scheduling.
	for i, out := range outputs {
		if out.Number != i+1 {
			t.Errorf("Output %d has page number %d", i, out.Number)
		}
	}

	// Batch results match sequential processing.
	sequential := pipeline.ProcessPage(pages[0])
	if !reflect.DeepEqual(outputs[0], sequential) {
		t.Error("Batch output differs from sequential output")
	}
}

func TestProcessPagesHeaderFooterRemoval(t *testing.T) {
	headeredPage := func(number int) Page {
		return Page{
			Number: number,
			Width:  1000,
			Height: 1400,
			Lines: []model.Line{
				makeLine("Field Guide", 100, 40, 300, 12),
				makeLine("body one", 100, 400, 400, 10),
				makeLine("body two", 100, 412, 400, 10),
				makeLine(strconv.Itoa(number), 480, 1350, 40, 10),
			},
		}
	}
	pages := []Page{headeredPage(1), headeredPage(2), headeredPage(3)}

	pipeline := NewPipeline(WithHeaderFooterRemoval())
	outputs, err := pipeline.ProcessPages(context.Background(), pages)
	if err != nil {
		t.Fatalf("ProcessPages: %v", err)
	}

	for _, out := range outputs {
		want := []model.Block{
			{Type: model.LevelParagraph, Text: "body one body two"},
		}
		if !reflect.DeepEqual(out.Blocks, want) {
			t.Errorf("Page %d blocks = %v, want %v", out.Number, out.Blocks, want)
		}
	}

	// Without removal the running title and page number survive.
	plain := NewPipeline()
	outputs, err = plain.ProcessPages(context.Background(), pages)
	if err != nil {
		t.Fatalf("ProcessPages: %v", err)
	}
	if len(outputs[0].Lines) != 4 {
		t.Errorf("Got %d lines without removal, want 4", len(outputs[0].Lines))
	}
}

func TestProcessPagesEmpty(t *testing.T) {
	pipeline := NewPipeline()
	outputs, err := pipeline.ProcessPages(context.Background(), nil)
	if err != nil {
		t.Fatalf("ProcessPages failed: %v", err)
	}
	if len(outputs) != 0 {
		t.Errorf("Got %d outputs, want 0", len(outputs))
	}
}

func TestProcessPagesCancelled(t *testing.T) {
	pipeline := NewPipeline(WithWorkers(1))
	pages := make([]Page, 100)
	for i := range pages {
		pages[i] = testPage(i + 1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.ProcessPages(ctx, pages)
	if err == nil {
		t.Error("Expected context error after cancellation")
	}
}

func TestCollectStats(t *testing.T) {
	pipeline := NewPipeline()
	outputs, err := pipeline.ProcessPages(context.Background(), []Page{testPage(1), testPage(2)})
	if err != nil {
		t.Fatalf("ProcessPages failed: %v", err)
	}

	stats := CollectStats(outputs)
	if stats.Pages != 2 {
		t.Errorf("Pages = %d, want 2", stats.Pages)
	}
	if stats.Lines != 6 {
		t.Errorf("Lines = %d, want 6", stats.Lines)
	}
	if stats.AverageConfidence != 0.8 {
		t.Errorf("AverageConfidence = %f, want 0.8", stats.AverageConfidence)
	}
}

func TestCollectStatsEmpty(t *testing.T) {
	stats := CollectStats(nil)
	if stats.Pages != 0 || stats.Lines != 0 || stats.AverageConfidence != 0 {
		t.Errorf("Stats = %+v, want zero values", stats)
	}
}

func TestWithConfig(t *testing.T) {
	config := layout.DefaultConfig()
	config.Heading.H1Ratio = 2.5
	pipeline := NewPipeline(WithConfig(config))

	if pipeline.Config().Heading.H1Ratio != 2.5 {
		t.Errorf("H1Ratio = %f, want 2.5", pipeline.Config().Heading.H1Ratio)
	}
}
