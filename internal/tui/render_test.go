package tui

import (
	"strings"
	"testing"

	"github.com/smarterGerman/diktat/internal/align"
	"github.com/smarterGerman/diktat/internal/chardiff"
)

func TestBuildCellsStylesSegments(t *testing.T) {
	judgments := align.MatchLive([]string{"Hund"}, []string{"Hund"}, false)
	cells := buildCells(judgments)
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}
	if cells[0].s != correctStyle.Render("H") {
		t.Fatalf("expected correct style for typed character")
	}
}

func TestBuildCellsMissingWordUsesPlaceholders(t *testing.T) {
	judgments := align.MatchLive([]string{"Hund"}, nil, false)
	cells := buildCells(judgments)
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}
	if cells[0].s != placeholderStyle.Render(chardiff.PlaceholderGlyph) {
		t.Fatalf("expected placeholder style for untyped character")
	}
}

func TestBuildCellsSpacesBetweenWords(t *testing.T) {
	judgments := align.MatchLive([]string{"Es", "regnet"}, []string{"Es"}, false)
	cells := buildCells(judgments)
	spaces := 0
	for _, c := range cells {
		if c.isSpace {
			spaces++
		}
	}
	if spaces != 1 {
		t.Fatalf("expected 1 space cell, got %d", spaces)
	}
}

func TestWrapCellsBreaksAtSpaces(t *testing.T) {
	judgments := align.MatchLive([]string{"eins", "zwei"}, []string{"eins", "zwei"}, false)
	wrapped := wrapCells(buildCells(judgments), 5)
	lines := strings.Split(wrapped, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), wrapped)
	}
}

func TestWrapCellsZeroWidthPassesThrough(t *testing.T) {
	judgments := align.MatchLive([]string{"eins", "zwei"}, []string{"eins", "zwei"}, false)
	wrapped := wrapCells(buildCells(judgments), 0)
	if strings.Contains(wrapped, "\n") {
		t.Fatalf("zero width must not wrap: %q", wrapped)
	}
}
