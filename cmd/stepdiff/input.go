package main

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/h0rv/stepdiff/internal/clipboard"
	"github.com/h0rv/stepdiff/internal/diffmodel"
	"github.com/h0rv/stepdiff/internal/editorlaunch"
	"github.com/h0rv/stepdiff/internal/metrics"
	"github.com/h0rv/stepdiff/internal/patch"
	"github.com/h0rv/stepdiff/internal/render"
	"github.com/h0rv/stepdiff/internal/view"
)

// handleKey dispatches one key event against app, checking in order: help
// dismiss, then search-mode, then tree-focus, then the normal command set.
// Returns true if the application should quit.
func handleKey(app *render.AppState, ev *tcell.EventKey) bool {
	if app.ShowHelp {
		app.ShowHelp = false
		return false
	}

	if app.Search.Active {
		handleSearchKey(app, ev)
		return false
	}

	if app.TreeOpen && ev.Key() == tcell.KeyRune {
		if handleTreeRune(app, ev.Rune()) {
			return false
		}
	}
	if app.TreeOpen {
		switch ev.Key() {
		case tcell.KeyUp:
			app.TreeState.Cursor--
			app.TreeState.ClampCursor(app.TreeNodes)
			return false
		case tcell.KeyDown:
			app.TreeState.Cursor++
			app.TreeState.ClampCursor(app.TreeNodes)
			return false
		case tcell.KeyEnter:
			treeSelectCursor(app)
			app.Scroll = 0
			return false
		}
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		app.ShowHelp = false
		return false
	case tcell.KeyUp:
		app.Scroll--
		return false
	case tcell.KeyDown:
		app.Scroll++
		return false
	}

	if ev.Key() != tcell.KeyRune {
		return false
	}
	return handleRune(app, ev.Rune())
}

func handleSearchKey(app *render.AppState, ev *tcell.EventKey) {
	nav, ok := app.CurrentNavigator()
	if !ok {
		return
	}
	lines := view.Project(nav.Model(), nav.State(), app.Frame, app.Fold)
	target := app.Search.HandleKey(ev, lines)
	if target >= 0 {
		_, height := app.Screen.Size()
		app.ScrollTo(target, height-2)
	}
}

func handleTreeRune(app *render.AppState, r rune) bool {
	switch r {
	case 'j':
		app.TreeState.Cursor++
		app.TreeState.ClampCursor(app.TreeNodes)
		return true
	case 'k':
		app.TreeState.Cursor--
		app.TreeState.ClampCursor(app.TreeNodes)
		return true
	case 'e':
		app.TreeOpen = false
		return true
	}
	return false
}

func handleRune(app *render.AppState, r rune) bool {
	nav, hasNav := app.CurrentNavigator()

	switch r {
	case 'q':
		return true

	case 'l':
		if hasNav {
			nav.Next()
			app.Frame = view.FadeIn
			app.FrameUntil = time.Now().Add(time.Duration(app.AnimSpeedMS) * time.Millisecond)
			if !app.AnimationsOn {
				app.Frame = view.Idle
			}
		}
	case 'h':
		if hasNav {
			nav.Prev()
			app.Frame = view.FadeOut
			app.FrameUntil = time.Now().Add(time.Duration(app.AnimSpeedMS) * time.Millisecond)
			if !app.AnimationsOn {
				app.Frame = view.Idle
			}
		}
	case ']':
		if hasNav {
			nav.NextHunk()
		}
	case '[':
		if hasNav {
			nav.PrevHunk()
		}
	case 'g':
		if hasNav {
			nav.Goto(0)
		}
		app.Scroll = 0
	case 'G':
		if hasNav {
			nav.Goto(nav.State().TotalSteps)
		}

	case 'j':
		app.Scroll++
	case 'k':
		app.Scroll--
	case 'd':
		_, height := app.Screen.Size()
		app.Scroll += height / 2
	case 'u':
		_, height := app.Screen.Size()
		app.Scroll -= height / 2

	case 's':
		toggleMode(app, metrics.Split)
	case 'v':
		toggleMode(app, metrics.Evolution)
	case 'b':
		toggleMode(app, metrics.Blame)
	case 'w':
		app.Wrap = !app.Wrap
	case 'x':
		app.Syntax = !app.Syntax
	case 'f':
		app.FullFile = !app.FullFile
	case 'e':
		app.TreeOpen = !app.TreeOpen
		if app.TreeOpen {
			rebuildTreeCursorPath(app)
		}

	case 'y':
		yankHunk(app, false)
	case 'Y':
		yankHunk(app, true)
	case 'c':
		yankCurrentLine(app)
	case 'r':
		yankHunkText(app, patch.RemovedLines, "yanked removed lines")
	case 'R':
		yankHunkText(app, patch.ResultLines, "yanked resulting code")

	case 'A':
		stageCurrentHunk(app)

	case 'F':
		app.Follow = !app.Follow

	case '/':
		app.Search.Start()

	case 'n':
		if idx, ok := app.Search.Next(); ok {
			_, height := app.Screen.Size()
			app.ScrollTo(idx, height-2)
		}
	case 'N':
		if idx, ok := app.Search.Prev(); ok {
			_, height := app.Screen.Size()
			app.ScrollTo(idx, height-2)
		}

	case ')':
		if app.Session.NextFile() {
			app.Scroll = 0
			rebuildTreeCursorPath(app)
		}
	case '(':
		if app.Session.PrevFile() {
			app.Scroll = 0
			rebuildTreeCursorPath(app)
		}

	case '?':
		app.ShowHelp = !app.ShowHelp

	case 'o':
		openCurrentFile(app)

	case 'W':
		app.Watch = !app.Watch

	case '+', '=':
		app.Fold.Threshold += 2
	case '-':
		if app.Fold.Threshold > 2 {
			app.Fold.Threshold -= 2
		}
	}
	return false
}

func toggleMode(app *render.AppState, m metrics.ViewMode) {
	if app.Mode == m {
		app.Mode = metrics.Unified
		return
	}
	app.Mode = m
}

func yankHunk(app *render.AppState, wholePatch bool) {
	nav, ok := app.CurrentNavigator()
	if !ok {
		return
	}
	fe, ok := app.Session.CurrentFile()
	if !ok {
		return
	}
	hunkID := nav.State().CurrentHunk
	var text string
	if wholePatch {
		text = patch.FullPatch(nav.Model(), hunkID, fe.Path)
	} else {
		text = patch.AddedLines(nav.Model(), hunkID)
	}
	if text == "" {
		app.SetFlash("nothing to yank", 1500*time.Millisecond)
		return
	}
	if clipboard.Copy(text) {
		app.SetFlash("yanked hunk", 1500*time.Millisecond)
	} else {
		app.SetFlash("yank failed", 1500*time.Millisecond)
	}
}

// yankHunkText copies the text an extractor (patch.RemovedLines,
// patch.ResultLines, ...) derives from the current hunk, flashing msg on
// success.
func yankHunkText(app *render.AppState, extract func(*diffmodel.ChangeModel, uint32) string, msg string) {
	nav, ok := app.CurrentNavigator()
	if !ok {
		return
	}
	text := extract(nav.Model(), nav.State().CurrentHunk)
	if text == "" {
		app.SetFlash("nothing to yank", 1500*time.Millisecond)
		return
	}
	if clipboard.Copy(text) {
		app.SetFlash(msg, 1500*time.Millisecond)
	} else {
		app.SetFlash("yank failed", 1500*time.Millisecond)
	}
}

func yankCurrentLine(app *render.AppState) {
	nav, ok := app.CurrentNavigator()
	if !ok {
		return
	}
	lines := view.Project(nav.Model(), nav.State(), app.Frame, app.Fold)
	m := metrics.Compute(lines, app.Mode, app.Scroll, nav.State().StepDirection, app.Frame)
	if m.ActiveIndex < 0 || m.ActiveIndex >= len(lines) {
		app.SetFlash("no active line", 1500*time.Millisecond)
		return
	}
	text := lines[m.ActiveIndex].Content
	if clipboard.Copy(text) {
		app.SetFlash("copied line", 1500*time.Millisecond)
	} else {
		app.SetFlash("copy failed", 1500*time.Millisecond)
	}
}

// stageCurrentHunk stages the current hunk via `git apply --cached`.
func stageCurrentHunk(app *render.AppState) {
	if !app.Session.IsGitMode() {
		app.SetFlash("not a git session", 1500*time.Millisecond)
		return
	}
	nav, ok := app.CurrentNavigator()
	if !ok {
		return
	}
	fe, ok := app.Session.CurrentFile()
	if !ok {
		return
	}
	hunkID := nav.State().CurrentHunk
	text := patch.FullPatch(nav.Model(), hunkID, fe.Path)
	if text == "" {
		app.SetFlash("nothing to stage", 1500*time.Millisecond)
		return
	}

	cmd := exec.Command("git", "-C", app.Session.RepoRoot(), "apply", "--cached")
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		app.SetFlash(fmt.Sprintf("stage failed: %v", err), 2*time.Second)
		return
	}
	app.SetFlash("staged hunk", 1500*time.Millisecond)
	if err := app.Session.RefreshAllFromGit(); err == nil {
		app.RebuildTree()
	}
}

func openCurrentFile(app *render.AppState) {
	fe, ok := app.Session.CurrentFile()
	if !ok {
		return
	}
	lineNo := 0
	if n, ok := app.CurrentNavigator(); ok {
		lines := view.Project(n.Model(), n.State(), app.Frame, app.Fold)
		m := metrics.Compute(lines, app.Mode, app.Scroll, n.State().StepDirection, app.Frame)
		if m.ActiveIndex >= 0 && m.ActiveIndex < len(lines) {
			l := lines[m.ActiveIndex]
			if l.NewLine > 0 {
				lineNo = l.NewLine
			} else {
				lineNo = l.OldLine
			}
		}
	}
	if msg := editorlaunch.Open(app.Screen, app.Session.RepoRoot(), fe.Path, lineNo); msg != "" {
		app.SetFlash(msg, 2*time.Second)
	}
}

func handleMouse(app *render.AppState, ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.WheelDown != 0 {
		app.Scroll++
	}
	if ev.Buttons()&tcell.WheelUp != 0 {
		app.Scroll--
	}
}
