package model

// Level represents the structural level assigned to a line or block
type Level int

const (
	LevelParagraph Level = iota // Body text
	LevelH1                     // Top-level heading
	LevelH2                     // Second-level heading
)

// String returns the canonical short name of the level ("p", "h1", "h2")
func (l Level) String() string {
	switch l {
	case LevelH1:
		return "h1"
	case LevelH2:
		return "h2"
	default:
		return "p"
	}
}

// HTMLTag returns the HTML tag for this level
func (l Level) HTMLTag() string {
	return l.String()
}

// MarkdownPrefix returns the markdown heading prefix for this level,
// or an empty string for body text.
func (l Level) MarkdownPrefix() string {
	switch l {
	case LevelH1:
		return "# "
	case LevelH2:
		return "## "
	default:
		return ""
	}
}

// IsHeading returns true for heading levels
func (l Level) IsHeading() bool {
	return l == LevelH1 || l == LevelH2
}

// Line represents a single recognized text line on a page, as produced by
// an OCR engine or a native PDF text source. Lines arrive in reading order
// (left-to-right columns, top-to-bottom within a column).
type Line struct {
	// Box is the quadrilateral bounding box of the line
	Box Quad

	// Text is the recognized string, possibly empty
	Text string

	// Confidence is the recognition confidence in [0, 1].
	// Layout analysis passes it through untouched.
	Confidence float64
}

// ClassifiedLine is a Line with its structural level assigned.
// It is created once by the classifier and never mutated afterwards.
type ClassifiedLine struct {
	Line

	// Level is the assigned structural level
	Level Level

	// Height is the line height (max Y - min Y over the quad), computed once
	Height float64
}
