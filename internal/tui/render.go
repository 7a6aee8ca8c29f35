// Package tui provides the Bubble Tea dictation interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/smarterGerman/diktat/internal/align"
	"github.com/smarterGerman/diktat/internal/chardiff"
)

type styledCell struct {
	s       string
	width   int
	isSpace bool
}

// buildCells turns word judgments into a stream of styled display cells,
// one per character, with plain spaces between words.
func buildCells(judgments []align.WordJudgment) []styledCell {
	out := make([]styledCell, 0, 64)
	for wi, j := range judgments {
		if wi > 0 {
			out = append(out, styledCell{s: " ", width: 1, isSpace: true})
		}
		for _, seg := range j.Segments {
			out = append(out, segmentCell(seg))
		}
	}
	return out
}

func segmentCell(seg chardiff.Segment) styledCell {
	style := placeholderStyle
	switch seg.Kind {
	case chardiff.Correct:
		style = correctStyle
	case chardiff.Incorrect:
		style = incorrectStyle
	case chardiff.Extra:
		style = extraStyle
	}
	width := 0
	for _, r := range seg.Text {
		width += runewidth.RuneWidth(r)
	}
	return styledCell{s: style.Render(seg.Text), width: width}
}

func renderCells(cells []styledCell) string {
	var b strings.Builder
	for _, cell := range cells {
		b.WriteString(cell.s)
	}
	return b.String()
}

// wrapCells word-wraps the cell stream to the given display width, breaking
// at the spaces between words.
func wrapCells(cells []styledCell, width int) string {
	if width <= 0 {
		return renderCells(cells)
	}
	var out strings.Builder
	line := make([]styledCell, 0, len(cells))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(cells); {
		cell := cells[i]
		if lineWidth+cell.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderCells(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledCell{}, line[lastSpaceIdx+1:]...)
				lineWidth = cellsWidth(line)
				lastSpaceIdx = lastSpace(line)
			} else {
				out.WriteString(renderCells(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, cell)
		lineWidth += cell.width
		if cell.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderCells(line))
	return out.String()
}

func cellsWidth(line []styledCell) int {
	total := 0
	for _, cell := range line {
		total += cell.width
	}
	return total
}

func lastSpace(line []styledCell) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
