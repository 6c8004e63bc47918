package render

import (
	"github.com/h0rv/stepdiff/internal/metrics"
	"github.com/h0rv/stepdiff/internal/view"
)

// splitColumns separates a projected line sequence into the old-side and
// new-side rows a Split pane shows, following the same inclusion rule
// metrics.computeSplit uses so on-screen rows line up with ActiveIndexOld/
// ActiveIndexNew.
func splitColumns(lines []view.ViewLine) (oldLines, newLines []view.ViewLine) {
	for _, l := range lines {
		inOld := l.OldLine > 0
		inNew := l.NewLine > 0 && l.Kind != view.Deleted && l.Kind != view.PendingDelete
		if inOld {
			oldLines = append(oldLines, l)
		}
		if inNew {
			newLines = append(newLines, l)
		}
	}
	return oldLines, newLines
}

// drawSplit renders two side-by-side panes (old | new), each scrolled by
// the same row offset. Rows beyond a pane's own length are left blank,
// since the two sides are rarely the same length.
func drawSplit(a *AppState, x, y, width, height int, lines []view.ViewLine, m metrics.Metrics, filename string) {
	screen := a.Screen
	oldLines, newLines := splitColumns(lines)

	half := (width - 1) / 2
	leftX, rightX := x, x+half+1

	divider := x + half
	for row := y; row < y+height; row++ {
		screen.SetContent(divider, row, '│', nil, a.Theme.Dim)
	}

	row := y
	for i := a.Scroll; i < len(oldLines) && row < y+height; i++ {
		drawContentRow(a, screen, leftX, row, divider, oldLines[i], i, zeroActive(m, m.ActiveIndexOld, i), filename, a.Search.Query)
		row++
	}
	for ; row < y+height; row++ {
		clearRow(screen, leftX, row, divider, a.Theme.Default)
	}

	row = y
	for i := a.Scroll; i < len(newLines) && row < y+height; i++ {
		drawContentRow(a, screen, rightX, row, x+width, newLines[i], i, zeroActive(m, m.ActiveIndexNew, i), filename, a.Search.Query)
		row++
	}
	for ; row < y+height; row++ {
		clearRow(screen, rightX, row, x+width, a.Theme.Default)
	}
}

// zeroActive rewrites Metrics.ActiveIndex so drawContentRow's marker column
// lights up exactly at paneActive, reusing the shared row-drawing helper
// for both the old and new panes.
func zeroActive(m metrics.Metrics, paneActive, _ int) metrics.Metrics {
	m.ActiveIndex = paneActive
	return m
}
