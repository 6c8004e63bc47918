package render

import (
	"fmt"

	"github.com/h0rv/stepdiff/internal/blame"
	"github.com/h0rv/stepdiff/internal/metrics"
	"github.com/h0rv/stepdiff/internal/session"
	"github.com/h0rv/stepdiff/internal/view"
)

const blameGutterWidth = 18

// drawBlame renders the Blame mode: the same ViewProjection content as
// Unified, prefixed with an authorship gutter sourced from the background
// blame worker's cache. Cache misses for currently-visible lines are
// submitted to the worker so they resolve on a later tick, per the
// drain-blame -> advance-animation -> autoplay -> render ordering.
func drawBlame(a *AppState, x, y, width, height int, lines []view.ViewLine, m metrics.Metrics, filename string, src session.BlameSource) {
	screen := a.Screen
	rightEdge := x + width
	contentX := x + blameGutterWidth

	row := y
	for i := a.Scroll; i < len(lines) && row < y+height; i++ {
		line := lines[i]
		lineNo := line.NewLine
		if lineNo == 0 {
			lineNo = line.OldLine
		}

		label := ""
		if lineNo > 0 {
			if al, ok := a.BlameCache.Lookup(filename, lineNo, src); ok {
				label = formatBlameLabel(al)
			} else if a.BlameWorker != nil {
				a.BlameWorker.Submit(blame.Request{Path: filename, Start: lineNo, End: lineNo, Source: src})
				label = "..."
			}
		}
		drawPlainText(screen, x, row, label, a.Theme.Dim, x+blameGutterWidth-1)
		screen.SetContent(contentX-1, row, '│', nil, a.Theme.Dim)

		drawContentRow(a, screen, contentX, row, rightEdge, line, i, m, filename, a.Search.Query)
		row++
	}
	for ; row < y+height; row++ {
		clearRow(screen, x, row, rightEdge, a.Theme.Default)
	}
}

func formatBlameLabel(al session.AuthorLine) string {
	if al.Uncommitted {
		return "uncommitted"
	}
	commit := al.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	author := al.Author
	if len(author) > 8 {
		author = author[:8]
	}
	return fmt.Sprintf("%s %s", commit, author)
}
