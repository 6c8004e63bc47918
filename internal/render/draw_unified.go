package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/h0rv/stepdiff/internal/metrics"
	"github.com/h0rv/stepdiff/internal/view"
)

// drawUnified renders one ViewLine per screen row in a single pane: a
// gutter (hunk-extent marker + optional line number) followed by syntax-
// or diff-colored content.
func drawUnified(a *AppState, x, y, width, height int, lines []view.ViewLine, m metrics.Metrics, filename string) {
	screen := a.Screen
	rightEdge := x + width
	query := a.Search.Query

	row := y
	for i := a.Scroll; i < len(lines) && row < y+height; i++ {
		drawContentRow(a, screen, x, row, rightEdge, lines[i], i, m, filename, query)
		row++
	}
	for ; row < y+height; row++ {
		clearRow(screen, x, row, rightEdge, a.Theme.Default)
	}
}

// drawContentRow draws the gutter and content for a single ViewLine at
// screen row y.
func drawContentRow(a *AppState, screen tcell.Screen, x, y, rightEdge int, line view.ViewLine, idx int, m metrics.Metrics, filename, query string) {
	col := x

	marker := ' '
	if idx == m.ActiveIndex {
		marker = '>'
	}
	markerStyle := a.Theme.Default
	if line.ShowHunkExtent {
		markerStyle = a.Theme.HunkExtent
	}
	screen.SetContent(col, y, marker, nil, markerStyle)
	col++

	if a.ShowLineNumbers {
		num := line.NewLine
		if num == 0 {
			num = line.OldLine
		}
		col = drawLineNo(a, screen, col, y, num)
	}

	screen.SetContent(col, y, ' ', nil, a.Theme.Dim)
	col++
	screen.SetContent(col, y, '│', nil, a.Theme.Dim)
	col++
	screen.SetContent(col, y, ' ', nil, a.Theme.Dim)
	col++

	styles := buildRuneStyles(line, a.Theme, a.Highlight, filename, a.Syntax, a.DiffBg)
	mask := searchMask(line.Content, query)
	isCurrent := a.Search.Idx >= 0 && a.Search.Idx < len(a.Search.Matches) && a.Search.Matches[a.Search.Idx] == idx
	searchStyle := a.Theme.SearchCur
	if !isCurrent {
		searchStyle = tcell.StyleDefault.Reverse(true)
	}
	col = drawRunes(screen, col, y, line.Content, styles, a.ScrollX, rightEdge, mask, searchStyle)
	clearRow(screen, col, y, rightEdge, a.Theme.Default)
}

// drawLineNo draws a right-justified line number, or blank space if num==0.
func drawLineNo(a *AppState, screen tcell.Screen, col, y, num int) int {
	if num > 0 {
		return drawPlainText(screen, col, y, fmt.Sprintf("%4d ", num), a.Theme.LineNo, col+lineNoWidth)
	}
	for i := 0; i < lineNoWidth; i++ {
		screen.SetContent(col, y, ' ', nil, a.Theme.Default)
		col++
	}
	return col
}
