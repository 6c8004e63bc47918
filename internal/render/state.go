// Package render draws a []view.ViewLine + metrics.Metrics against a
// tcell.Screen through four adapters — Unified, Split, Evolution, and
// Blame — each handling syntax highlighting, line numbers, and a status
// bar. Long lines are clipped at the pane edge, not wrapped.
package render

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/h0rv/stepdiff/internal/blame"
	"github.com/h0rv/stepdiff/internal/highlight"
	"github.com/h0rv/stepdiff/internal/metrics"
	"github.com/h0rv/stepdiff/internal/navigator"
	"github.com/h0rv/stepdiff/internal/search"
	"github.com/h0rv/stepdiff/internal/session"
	"github.com/h0rv/stepdiff/internal/theme"
	"github.com/h0rv/stepdiff/internal/tree"
	"github.com/h0rv/stepdiff/internal/view"
)

const lineNoWidth = 5

// AppState is the top-level mutable application state a host loop (e.g.
// cmd/stepdiff) drives, built around the ChangeModel/Navigator/
// MultiFileSession architecture.
type AppState struct {
	Screen  tcell.Screen
	Session *session.MultiFileSession

	Theme     theme.UITheme
	Highlight *highlight.Highlighter
	Search    search.Search

	TreeOpen  bool
	TreeState tree.State
	TreeNodes []tree.Node

	Mode     metrics.ViewMode
	Fold     view.FoldMode
	FullFile bool

	Frame      view.AnimationFrame
	FrameUntil time.Time

	Scroll  int
	ScrollX int

	Wrap            bool
	ShowLineNumbers bool
	DiffBg          bool
	Syntax          bool
	Follow          bool
	Watch           bool
	AnimationsOn    bool
	AnimSpeedMS     int

	Flash       string
	FlashExpiry time.Time
	ShowHelp    bool

	BlameCache  *blame.Cache
	BlameWorker *blame.Worker
}

// New builds an AppState with line numbers, diff backgrounds, and syntax
// highlighting on, wrap off.
func New(screen tcell.Screen, sess *session.MultiFileSession, th theme.UITheme) *AppState {
	return &AppState{
		Screen:          screen,
		Session:         sess,
		Theme:           th,
		Highlight:       highlight.NewHighlighter(),
		Mode:            metrics.Unified,
		Fold:            view.FoldMode{Enabled: true, Threshold: 6},
		Frame:           view.Idle,
		ShowLineNumbers: true,
		DiffBg:          true,
		Syntax:          true,
		AnimationsOn:    true,
		AnimSpeedMS:     150,
		Watch:           true,
	}
}

// CurrentNavigator returns the selected file's Navigator, building it lazily
// via the session.
func (a *AppState) CurrentNavigator() (*navigator.Navigator, bool) {
	return a.Session.CurrentNavigator()
}

// SetFlash shows a transient status-bar message for the given duration.
func (a *AppState) SetFlash(msg string, d time.Duration) {
	a.Flash = msg
	a.FlashExpiry = time.Now().Add(d)
}

// FlashActive reports whether a flash message is still within its window.
func (a *AppState) FlashActive() bool {
	return a.Flash != "" && time.Now().Before(a.FlashExpiry)
}

// RebuildTree recomputes the file tree from the session's current file
// listing and re-anchors the cursor on the selected file.
func (a *AppState) RebuildTree() {
	files := make([]session.FileEntry, 0, a.Session.FileCount())
	originalSelection := a.Session.SelectedIndex()
	for i := 0; i < a.Session.FileCount(); i++ {
		a.Session.SelectFile(i)
		if fe, ok := a.Session.CurrentFile(); ok {
			files = append(files, fe)
		}
	}
	a.Session.SelectFile(originalSelection)
	a.TreeNodes = tree.Build(files)
	if fe, ok := a.Session.CurrentFile(); ok {
		a.TreeState.InitCursorFromPath(a.TreeNodes, fe.Path)
	}
}

// clampScroll keeps Scroll within [0, displayLen-1].
func (a *AppState) clampScroll(displayLen int) {
	if a.Scroll < 0 {
		a.Scroll = 0
	}
	if displayLen > 0 && a.Scroll >= displayLen {
		a.Scroll = displayLen - 1
	}
}

// ScrollTo centers the viewport on display index idx, clamped to bounds.
func (a *AppState) ScrollTo(idx, visibleRows int) {
	half := visibleRows / 2
	a.Scroll = idx - half
	if a.Scroll < 0 {
		a.Scroll = 0
	}
}
