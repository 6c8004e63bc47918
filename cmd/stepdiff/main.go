// Command stepdiff is an animated, step-through terminal diff viewer.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/h0rv/stepdiff/internal/blame"
	"github.com/h0rv/stepdiff/internal/metrics"
	"github.com/h0rv/stepdiff/internal/render"
	"github.com/h0rv/stepdiff/internal/session"
	"github.com/h0rv/stepdiff/internal/theme"
	"github.com/h0rv/stepdiff/internal/view"
	"github.com/h0rv/stepdiff/internal/watch"
)

func main() {
	opts := parseArgs()

	if opts.debugLog != "" {
		f, err := os.OpenFile(opts.debugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			log.SetOutput(f)
			defer f.Close()
		}
	} else {
		log.SetOutput(io.Discard)
	}

	sess, err := loadSession(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "stepdiff:", err)
		os.Exit(1)
	}
	if sess.FileCount() == 0 {
		fmt.Println("No changes found.")
		return
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "stepdiff: failed to create screen:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "stepdiff: failed to init screen:", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()

	app := render.New(screen, sess, theme.New(opts.theme))
	applyOpts(app, opts)

	if sess.IsGitMode() {
		app.BlameCache = blame.NewCache()
		app.BlameWorker = blame.NewWorker(session.GitBackend{}, sess.RepoRoot(), 64)
		defer app.BlameWorker.Stop()
	}

	app.RebuildTree()

	var reloadCh chan struct{}
	if sess.IsGitMode() {
		reloadCh = make(chan struct{}, 1)
		watch.Start(sess.RepoRoot(), reloadCh)
	}

	eventCh := make(chan tcell.Event, 16)
	go screen.ChannelEvents(eventCh, nil)

	render.Render(app)

	quit := false
	for !quit {
		if app.BlameWorker != nil {
			app.BlameCache.Drain(app.BlameWorker)
		}

		select {
		case ev := <-eventCh:
			switch e := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				quit = handleKey(app, e)
			case *tcell.EventMouse:
				handleMouse(app, e)
			}
		case <-reloadFired(reloadCh):
			if !app.Watch {
				break
			}
			if app.Follow {
				if path, err := app.Session.RefreshAllFromGitTracking(); err == nil {
					app.RebuildTree()
					app.SetFlash("reloaded", 1*time.Second)
					followJumpTo(app, path)
				}
			} else if err := app.Session.RefreshAllFromGit(); err == nil {
				app.RebuildTree()
				app.SetFlash("reloaded", 1*time.Second)
			}
		case <-time.After(50 * time.Millisecond):
		}

		// Advance the animation: once the step's frame window has passed,
		// return to Idle and release the navigator's active change.
		if !app.FrameUntil.IsZero() && time.Now().After(app.FrameUntil) {
			if nav, ok := app.CurrentNavigator(); ok {
				nav.ClearActiveChange()
			}
			app.Frame = view.Idle
			app.FrameUntil = time.Time{}
		}

		render.Render(app)
	}
}

// reloadFired turns a possibly-nil channel into one safe to select on.
func reloadFired(ch chan struct{}) <-chan struct{} {
	if ch == nil {
		return nil
	}
	return ch
}

func loadSession(opts cliOpts) (*session.MultiFileSession, error) {
	backend := session.GitBackend{}

	if len(opts.refs) == 2 {
		if fileExists(opts.refs[0]) && fileExists(opts.refs[1]) {
			oldB, err := os.ReadFile(opts.refs[0])
			if err != nil {
				return nil, err
			}
			newB, err := os.ReadFile(opts.refs[1])
			if err != nil {
				return nil, err
			}
			return session.FromFilePair(opts.refs[0], opts.refs[1], oldB, newB), nil
		}
	}

	root, err := backend.RepoRoot(".")
	if err != nil {
		return nil, fmt.Errorf("not a git repository (and not given two file paths): %w", err)
	}

	switch {
	case opts.staged:
		return session.FromGitStaged(backend, root)
	case len(opts.refs) == 2:
		return session.FromGitRange(backend, root, opts.refs[0], opts.refs[1])
	case len(opts.refs) == 1:
		return session.FromGitIndexRange(backend, root, opts.refs[0], false)
	default:
		return session.FromGitChanges(backend, root)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func applyOpts(app *render.AppState, opts cliOpts) {
	if opts.sideBySide {
		app.Mode = metrics.Split
	}
	if opts.blame {
		app.Mode = metrics.Blame
	}
	app.TreeOpen = opts.explorer
	app.ShowLineNumbers = !opts.noLineNumbers
	app.Wrap = !opts.noWrap
	app.DiffBg = !opts.noDiffBg
	app.Syntax = !opts.noSyntax
	app.AnimationsOn = !opts.noAnim
	app.AnimSpeedMS = opts.speedMS
	app.Fold = view.FoldMode{Enabled: true, Threshold: opts.contextLines * 2}
	if opts.contextLines == 0 {
		app.Fold.Enabled = false
	}
}

// followJumpTo selects the file at path (if any) and jumps its navigator to
// the end of its first hunk, so a watch-triggered reload lands on the
// newly-changed content instead of leaving the step position untouched.
func followJumpTo(app *render.AppState, path string) {
	if path == "" {
		return
	}
	if idx := app.Session.PathIndex(path); idx >= 0 {
		app.Session.SelectFile(idx)
	}
	if nav, ok := app.CurrentNavigator(); ok && len(nav.Model().Hunks) > 0 {
		nav.GotoHunk(nav.Model().Hunks[0].ID)
	}
	app.Scroll = 0
	rebuildTreeCursorPath(app)
}

// rebuildTreeCursorPath moves the tree cursor to the active file path,
// used after SelectFile calls driven by tree navigation.
func rebuildTreeCursorPath(app *render.AppState) {
	fe, ok := app.Session.CurrentFile()
	if !ok {
		return
	}
	app.TreeState.InitCursorFromPath(app.TreeNodes, fe.Path)
}

func treeSelectCursor(app *render.AppState) {
	path := app.TreeState.CursorPath(app.TreeNodes)
	if path == "" {
		return
	}
	for i := 0; i < app.Session.FileCount(); i++ {
		app.Session.SelectFile(i)
		if fe, ok := app.Session.CurrentFile(); ok && fe.Path == path {
			return
		}
	}
}
