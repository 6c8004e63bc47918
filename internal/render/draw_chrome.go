package render

import (
	"fmt"

	"github.com/h0rv/stepdiff/internal/keys"
	"github.com/h0rv/stepdiff/internal/metrics"
)

// drawStatusBar renders the bottom status line: file position, git range,
// insertion/deletion totals, active view mode, and (if active) the flash
// message.
func drawStatusBar(a *AppState, y, width int) {
	screen := a.Screen
	style := a.Theme.StatusBar

	if a.FlashActive() {
		drawPlainText(screen, 0, y, a.Flash, a.Theme.Flash, width)
		clearRow(screen, len([]rune(a.Flash)), y, width, style)
		return
	}

	fe, _ := a.Session.CurrentFile()
	ins, del := a.Session.TotalStats()
	left := fmt.Sprintf(" %s [%d/%d]  %s", fe.DisplayName, a.Session.SelectedIndex()+1, a.Session.FileCount(), a.Session.GitRangeDisplay())
	left += statusFlags(a)
	right := fmt.Sprintf("+%d -%d  %s ", ins, del, modeLabel(a.Mode))

	col := drawPlainText(screen, 0, y, left, style, width-len([]rune(right)))
	clearRow(screen, col, y, width-len([]rune(right)), style)
	drawPlainText(screen, width-len([]rune(right)), y, right, style, width)
}

// statusFlags appends indicators for toggles worth calling out when active
// or (for watch) inactive: full file view, follow mode, watch off.
func statusFlags(a *AppState) string {
	var flags string
	if a.FullFile {
		flags += " [full file]"
	}
	if a.Follow {
		flags += " [follow]"
	}
	if a.Session.IsGitMode() && !a.Watch {
		flags += " [watch off]"
	}
	return flags
}

func modeLabel(m metrics.ViewMode) string {
	switch m {
	case metrics.Split:
		return "split"
	case metrics.Evolution:
		return "evolution"
	case metrics.Blame:
		return "blame"
	default:
		return "unified"
	}
}

// drawSearchBar renders the incremental search input line above the status
// bar while search input is active.
func drawSearchBar(a *AppState, y, width int) {
	screen := a.Screen
	text := "/" + a.Search.Query
	col := drawPlainText(screen, 0, y, text, a.Theme.Default, width)
	screen.SetContent(col, y, ' ', nil, a.Theme.Default)
	clearRow(screen, col+1, y, width, a.Theme.Default)
	screen.ShowCursor(col, y)
}

// drawHelpOverlay renders the full keybinding list over the center of the
// screen.
func drawHelpOverlay(a *AppState, width, height int) {
	screen := a.Screen
	boxW := 44
	boxH := len(keys.Bindings) + 2
	if boxH > height-2 {
		boxH = height - 2
	}
	x0 := (width - boxW) / 2
	y0 := (height - boxH) / 2
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}

	for row := 0; row < boxH; row++ {
		clearRow(screen, x0, y0+row, x0+boxW, a.Theme.StatusBar)
	}
	drawPlainText(screen, x0+1, y0, "Keys", a.Theme.FileHeader, x0+boxW-1)

	for i, b := range keys.Bindings {
		row := y0 + 1 + i
		if row >= y0+boxH {
			break
		}
		line := fmt.Sprintf("%c  %s", b.Key, b.Name)
		drawPlainText(screen, x0+1, row, line, a.Theme.Default, x0+boxW-1)
	}
}
