package render

import (
	"testing"

	"github.com/h0rv/stepdiff/internal/theme"
	"github.com/h0rv/stepdiff/internal/view"
)

func TestBuildRuneStylesNonSyntaxMatchesContentLength(t *testing.T) {
	th := theme.New("monokai")
	line := view.ViewLine{
		Content: "ab",
		Spans: []view.ViewSpan{
			{Text: "a", Kind: view.SpanInserted},
			{Text: "b", Kind: view.SpanEqual},
		},
		Kind: view.Inserted,
	}
	styles := buildRuneStyles(line, th, nil, "file.go", false, false)
	if len(styles) != 2 {
		t.Fatalf("expected 2 styles, got %d", len(styles))
	}
}

func TestBuildRuneStylesSyntaxFallsBackWithoutHighlighter(t *testing.T) {
	th := theme.New("monokai")
	line := view.ViewLine{Content: "package main", Kind: view.Context}
	styles := buildRuneStyles(line, th, nil, "main.go", true, false)
	if len(styles) != len([]rune(line.Content)) {
		t.Fatalf("expected %d styles, got %d", len([]rune(line.Content)), len(styles))
	}
}
