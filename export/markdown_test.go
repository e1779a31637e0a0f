package export

import (
	"strings"
	"testing"

	"github.com/momomsr/PDFOCR/model"
)

func TestMarkdown(t *testing.T) {
	pages := [][]model.Block{
		{
			{Type: model.LevelH1, Text: "Title"},
			{Type: model.LevelParagraph, Text: "Intro paragraph."},
		},
		{
			{Type: model.LevelH2, Text: "Section"},
			{Type: model.LevelParagraph, Text: "Body text."},
		},
	}

	got := Markdown(pages)
	want := "# Title\n\nIntro paragraph.\n\n## Section\n\nBody text.\n"
	if got != want {
		t.Errorf("Markdown = %q, want %q", got, want)
	}
}

func TestMarkdownEmpty(t *testing.T) {
	if got := Markdown(nil); got != "" {
		t.Errorf("Markdown of no pages = %q, want empty", got)
	}
	if got := Markdown([][]model.Block{{}, {}}); got != "" {
		t.Errorf("Markdown of empty pages = %q, want empty", got)
	}
}

func TestWriteMarkdown(t *testing.T) {
	pages := [][]model.Block{
		{{Type: model.LevelParagraph, Text: "Hello."}},
	}

	var sb strings.Builder
	if err := WriteMarkdown(&sb, pages); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	if sb.String() != "Hello.\n" {
		t.Errorf("Output = %q, want %q", sb.String(), "Hello.\n")
	}
}
