package layout

import (
	"reflect"
	"testing"

	"github.com/momomsr/PDFOCR/model"
)

// makeLine creates a test line with an axis-aligned box
func makeLine(text string, x, y, w, h float64) model.Line {
	return model.Line{
		Box:        model.RectQuad(x, y, w, h),
		Text:       text,
		Confidence: 0.9,
	}
}

func TestNewClassifier(t *testing.T) {
	c := NewClassifier()
	if c == nil {
		t.Fatal("NewClassifier returned nil")
	}
	if c.config.H1Ratio != 1.8 {
		t.Errorf("Expected H1Ratio=1.8, got %f", c.config.H1Ratio)
	}
}

func TestNewClassifierWithConfig(t *testing.T) {
	config := HeadingConfig{H1Ratio: 2.0, H2Ratio: 1.5}
	c := NewClassifierWithConfig(config)
	if c.config.H1Ratio != 2.0 {
		t.Errorf("Expected H1Ratio=2.0, got %f", c.config.H1Ratio)
	}
}

func TestDefaultHeadingConfig(t *testing.T) {
	config := DefaultHeadingConfig()

	if config.H1Ratio != 1.8 {
		t.Errorf("Expected H1Ratio=1.8, got %f", config.H1Ratio)
	}
	if config.H2Ratio != 1.4 {
		t.Errorf("Expected H2Ratio=1.4, got %f", config.H2Ratio)
	}
	if !config.Extra.Centered || !config.Extra.AllCaps || !config.Extra.BigGap {
		t.Error("Expected all extra rules enabled by default")
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	c := NewClassifier()
	result := c.Classify(nil, 1000)

	if result.LineCount() != 0 {
		t.Errorf("Expected 0 lines, got %d", result.LineCount())
	}
	if result.MedianHeight != 0 {
		t.Errorf("Expected median height 0, got %f", result.MedianHeight)
	}
}

func TestClassifyMedianOddCount(t *testing.T) {
	c := NewClassifier()
	lines := []model.Line{
		makeLine("a", 100, 100, 400, 10),
		makeLine("b", 100, 120, 400, 12),
		makeLine("c", 100, 140, 400, 30),
	}

	result := c.Classify(lines, 1000)
	if result.MedianHeight != 12 {
		t.Errorf("Expected median 12, got %f", result.MedianHeight)
	}
}

func TestClassifyMedianEvenCount(t *testing.T) {
	c := NewClassifier()
	lines := []model.Line{
		makeLine("a", 100, 100, 400, 10),
		makeLine("b", 100, 120, 400, 14),
		makeLine("c", 100, 140, 400, 20),
		makeLine("d", 100, 170, 400, 40),
	}

	// Even count: average of the two middle values (14, 20).
	result := c.Classify(lines, 1000)
	if result.MedianHeight != 17 {
		t.Errorf("Expected median 17, got %f", result.MedianHeight)
	}
}

func TestClassifyHeightsMatchQuads(t *testing.T) {
	c := NewClassifier()
	lines := []model.Line{
		makeLine("a", 100, 100, 400, 10),
		{Box: model.Quad{{X: 100, Y: 202}, {X: 500, Y: 200}, {X: 502, Y: 216}, {X: 102, Y: 218}}, Text: "skewed"},
	}

	result := c.Classify(lines, 1000)
	for i, line := range result.Lines {
		want := lines[i].Box.Height()
		if line.Height != want {
			t.Errorf("Line %d: height %f, want %f", i, line.Height, want)
		}
	}
}

func TestClassifyH1Rule(t *testing.T) {
	// Heights [10, 10, 25]: median 10, 25 > 1.8*10 so line 3 is H1.
	c := NewClassifier()
	lines := []model.Line{
		makeLine("body one", 100, 100, 400, 10),
		makeLine("body two", 100, 115, 400, 10),
		makeLine("Chapter", 100, 140, 400, 25),
	}

	result := c.Classify(lines, 1000)
	if got := result.Lines[0].Level; got != model.LevelParagraph {
		t.Errorf("Line 1: level %v, want p", got)
	}
	if got := result.Lines[1].Level; got != model.LevelParagraph {
		t.Errorf("Line 2: level %v, want p", got)
	}
	if got := result.Lines[2].Level; got != model.LevelH1 {
		t.Errorf("Line 3: level %v, want h1", got)
	}
}

func TestClassifyH1ThresholdIsStrict(t *testing.T) {
	// Height exactly at the threshold must NOT classify as H1.
	c := NewClassifierWithConfig(HeadingConfig{H1Ratio: 1.8, H2Ratio: 1.4})
	lines := []model.Line{
		makeLine("a", 100, 100, 400, 10),
		makeLine("b", 100, 115, 400, 10),
		makeLine("c", 100, 130, 400, 10),
		makeLine("exactly", 100, 150, 800, 18),
	}

	result := c.Classify(lines, 1000)
	if got := result.Lines[3].Level; got != model.LevelParagraph {
		t.Errorf("Level %v for height == 1.8*median, want p", got)
	}
}

func TestClassifyH1PrecedenceOverH2(t *testing.T) {
	// A centered all-caps line tall enough for H1 must be H1, not H2.
	c := NewClassifier()
	lines := []model.Line{
		makeLine("body", 100, 100, 400, 10),
		makeLine("body", 100, 115, 400, 10),
		makeLine("TITLE", 400, 200, 200, 25),
	}

	result := c.Classify(lines, 1000)
	if got := result.Lines[2].Level; got != model.LevelH1 {
		t.Errorf("Level %v, want h1 (H1 has strict precedence)", got)
	}
}

func TestClassifyH2Centered(t *testing.T) {
	c := NewClassifierWithConfig(HeadingConfig{
		H1Ratio: 1.8,
		H2Ratio: 1.4,
		Extra:   ExtraRules{Centered: true},
	})

	// Page width 1000: centered means |centerX - 500| < 50.
	lines := []model.Line{
		makeLine("body", 100, 100, 400, 10),
		makeLine("body", 100, 115, 400, 10),
		makeLine("Section", 400, 140, 200, 15), // center 500, height 15 > 14
	}

	result := c.Classify(lines, 1000)
	if got := result.Lines[2].Level; got != model.LevelH2 {
		t.Errorf("Level %v, want h2", got)
	}
}

func TestClassifyH2NotCentered(t *testing.T) {
	c := NewClassifierWithConfig(HeadingConfig{
		H1Ratio: 1.8,
		H2Ratio: 1.4,
		Extra:   ExtraRules{Centered: true},
	})

	lines := []model.Line{
		makeLine("body", 100, 100, 400, 10),
		makeLine("body", 100, 115, 400, 10),
		makeLine("Section", 100, 140, 200, 15), // center 200, off-center
	}

	result := c.Classify(lines, 1000)
	if got := result.Lines[2].Level; got != model.LevelParagraph {
		t.Errorf("Level %v, want p (off-center, no other rules enabled)", got)
	}
}

func TestClassifyH2AllCaps(t *testing.T) {
	c := NewClassifierWithConfig(HeadingConfig{
		H1Ratio: 1.8,
		H2Ratio: 1.4,
		Extra:   ExtraRules{AllCaps: true},
	})

	lines := []model.Line{
		makeLine("body", 100, 100, 400, 10),
		makeLine("body", 100, 115, 400, 10),
		makeLine("OVERVIEW", 100, 140, 200, 15),
	}

	result := c.Classify(lines, 1000)
	if got := result.Lines[2].Level; got != model.LevelH2 {
		t.Errorf("Level %v, want h2", got)
	}
}

func TestClassifyH2BigGap(t *testing.T) {
	c := NewClassifierWithConfig(HeadingConfig{
		H1Ratio: 1.8,
		H2Ratio: 1.4,
		Extra:   ExtraRules{BigGap: true},
	})

	lines := []model.Line{
		makeLine("body", 100, 100, 400, 10),
		makeLine("body", 100, 112, 400, 10),
		// Previous bottom is 122; top 140 gives gap 18 > 0.8*10.
		makeLine("Section", 100, 140, 200, 15),
	}

	result := c.Classify(lines, 1000)
	if got := result.Lines[2].Level; got != model.LevelH2 {
		t.Errorf("Level %v, want h2", got)
	}
}

func TestClassifyH2TooWide(t *testing.T) {
	// A line at 75% of the page width or wider can never be H2.
	c := NewClassifierWithConfig(HeadingConfig{
		H1Ratio: 1.8,
		H2Ratio: 1.4,
		Extra:   ExtraRules{AllCaps: true},
	})

	lines := []model.Line{
		makeLine("body", 100, 100, 400, 10),
		makeLine("body", 100, 115, 400, 10),
		makeLine("WIDE HEADING LINE", 100, 140, 800, 15),
	}

	result := c.Classify(lines, 1000)
	if got := result.Lines[2].Level; got != model.LevelParagraph {
		t.Errorf("Level %v, want p (line width 800 >= 0.75*1000)", got)
	}
}

func TestClassifyH2UnreachableWithoutExtraRules(t *testing.T) {
	c := NewClassifierWithConfig(HeadingConfig{
		H1Ratio: 1.8,
		H2Ratio: 1.4,
		Extra:   ExtraRules{}, // all disabled
	})

	// Centered, all-caps, after a big gap: H2 must still not fire.
	lines := []model.Line{
		makeLine("body", 100, 100, 400, 10),
		makeLine("body", 100, 112, 400, 10),
		makeLine("SECTION", 400, 160, 200, 15),
	}

	result := c.Classify(lines, 1000)
	if got := result.Lines[2].Level; got != model.LevelParagraph {
		t.Errorf("Level %v, want p (no extra rules enabled)", got)
	}
}

func TestClassifySingleLineDefaultsToParagraph(t *testing.T) {
	// A lone line's height equals the median, so thresholds > 1.0 can
	// never be exceeded.
	c := NewClassifier()
	lines := []model.Line{
		makeLine("LONE CENTERED TITLE", 400, 100, 200, 40),
	}

	result := c.Classify(lines, 1000)
	if got := result.Lines[0].Level; got != model.LevelParagraph {
		t.Errorf("Level %v, want p for a single-line page", got)
	}
	if result.MedianHeight != 40 {
		t.Errorf("Median %f, want 40", result.MedianHeight)
	}
}

func TestClassifyZeroHeightLines(t *testing.T) {
	c := NewClassifier()
	lines := []model.Line{
		makeLine("empty", 100, 100, 400, 0),
		makeLine("body", 100, 110, 400, 10),
		makeLine("body", 100, 125, 400, 10),
	}

	// Zero heights participate in the median normally: median of [0, 10, 10] is 10.
	result := c.Classify(lines, 1000)
	if result.MedianHeight != 10 {
		t.Errorf("Median %f, want 10", result.MedianHeight)
	}
	if result.Lines[0].Height != 0 {
		t.Errorf("Height %f, want 0", result.Lines[0].Height)
	}
}

func TestClassifyPreservesOrderAndInput(t *testing.T) {
	c := NewClassifier()
	lines := []model.Line{
		makeLine("first", 100, 100, 400, 10),
		makeLine("second", 100, 115, 400, 10),
		makeLine("third", 100, 130, 400, 25),
	}

	result := c.Classify(lines, 1000)
	if len(result.Lines) != len(lines) {
		t.Fatalf("Got %d lines, want %d", len(result.Lines), len(lines))
	}
	for i, line := range result.Lines {
		if line.Text != lines[i].Text {
			t.Errorf("Line %d: text %q, want %q", i, line.Text, lines[i].Text)
		}
		if line.Confidence != lines[i].Confidence {
			t.Errorf("Line %d: confidence changed", i)
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	c := NewClassifier()
	lines := []model.Line{
		makeLine("body one", 100, 100, 400, 10),
		makeLine("CHAPTER", 400, 140, 200, 15),
		makeLine("body two", 100, 170, 400, 10),
	}

	first := c.Classify(lines, 1000)
	second := c.Classify(lines, 1000)

	if !reflect.DeepEqual(first, second) {
		t.Error("Classify is not idempotent: repeated runs differ")
	}
}

func TestClassificationCounts(t *testing.T) {
	c := NewClassifier()
	lines := []model.Line{
		makeLine("body", 100, 100, 400, 10),
		makeLine("body", 100, 115, 400, 10),
		makeLine("body", 100, 130, 400, 10),
		makeLine("TITLE", 400, 160, 200, 25),  // h1: 25 > 18
		makeLine("SECTION", 400, 220, 200, 15), // h2: 15 > 14, centered+caps
	}

	result := c.Classify(lines, 1000)
	if got := result.H1Count(); got != 1 {
		t.Errorf("H1Count = %d, want 1", got)
	}
	if got := result.H2Count(); got != 1 {
		t.Errorf("H2Count = %d, want 1", got)
	}
	if got := result.CountByLevel(model.LevelParagraph); got != 3 {
		t.Errorf("Paragraph count = %d, want 3", got)
	}
	if got := result.Heights(); len(got) != 5 {
		t.Errorf("Heights length = %d, want 5", len(got))
	}
}

func TestIsAllCaps(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"HEADING", true},
		{"HEADING ONE", true},
		{"Heading", false},
		{"heading", false},
		{"ÜBERSCHRIFT", true},
		{"123", false},  // no cased characters
		{"", false},
		{"H2 RULES", true},
	}

	for _, tt := range tests {
		if got := isAllCaps(tt.text); got != tt.want {
			t.Errorf("isAllCaps(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		values []float64
		want   float64
	}{
		{nil, 0},
		{[]float64{5}, 5},
		{[]float64{3, 1, 2}, 2},
		{[]float64{4, 1, 3, 2}, 2.5},
		{[]float64{0, 0, 10}, 0},
	}

	for _, tt := range tests {
		if got := median(tt.values); got != tt.want {
			t.Errorf("median(%v) = %f, want %f", tt.values, got, tt.want)
		}
	}
}
