package render

import (
	"github.com/h0rv/stepdiff/internal/metrics"
	"github.com/h0rv/stepdiff/internal/view"
)

// Render draws one full frame: tree sidebar (if open), the active view
// mode's content pane, and the bottom chrome (search bar, status bar, help
// overlay). Called once per event-loop iteration.
func Render(a *AppState) {
	screen := a.Screen
	screen.Clear()
	width, height := screen.Size()

	contentX := 0
	contentWidth := width
	if a.TreeOpen {
		drawTree(a, 0, 0, height-1)
		contentX = treeWidth
		contentWidth = width - treeWidth
	}

	chromeRows := 1
	if a.Search.Active {
		chromeRows = 2
	}
	contentHeight := height - chromeRows
	if contentHeight < 0 {
		contentHeight = 0
	}

	nav, ok := a.CurrentNavigator()
	fe, _ := a.Session.CurrentFile()
	if !ok || a.Session.CurrentFileIsBinary() {
		drawBinaryOrEmptyNotice(a, contentX, 0, contentWidth, contentHeight, fe.DisplayName)
	} else {
		fold := a.Fold
		if a.FullFile {
			// Full-file view: the ChangeModel already holds every unchanged
			// line from the full old/new buffers (diffmodel.Build diffs
			// whole files, not a context-limited git hunk), so showing the
			// complete file is just a matter of not folding any of it away.
			fold.Enabled = false
		}
		lines := view.Project(nav.Model(), nav.State(), a.Frame, fold)
		m := metrics.Compute(lines, a.Mode, a.Scroll, nav.State().StepDirection, a.Frame)
		a.clampScroll(m.DisplayLen)

		switch a.Mode {
		case metrics.Split:
			drawSplit(a, contentX, 0, contentWidth, contentHeight, lines, m, fe.Path)
		case metrics.Evolution:
			drawEvolution(a, contentX, 0, contentWidth, contentHeight, lines, m, fe.Path)
		case metrics.Blame:
			_, newSrc := a.Session.BlameSources()
			drawBlame(a, contentX, 0, contentWidth, contentHeight, lines, m, fe.Path, newSrc)
		default:
			drawUnified(a, contentX, 0, contentWidth, contentHeight, lines, m, fe.Path)
		}
	}

	if a.Search.Active {
		drawSearchBar(a, contentHeight, width)
	}
	drawStatusBar(a, height-1, width)

	if a.ShowHelp {
		drawHelpOverlay(a, width, height)
	}

	screen.Show()
}

// drawBinaryOrEmptyNotice renders the placeholder pane shown for binary
// files or a session with no files.
func drawBinaryOrEmptyNotice(a *AppState, x, y, width, height int, name string) {
	screen := a.Screen
	msg := "(binary file, no preview)"
	if name == "" {
		msg = "(no changes)"
	}
	midRow := y + height/2
	col := x + (width-len([]rune(msg)))/2
	if col < x {
		col = x
	}
	drawPlainText(screen, col, midRow, msg, a.Theme.Dim, x+width)
	for row := y; row < y+height; row++ {
		if row == midRow {
			continue
		}
		clearRow(screen, x, row, x+width, a.Theme.Default)
	}
}
