// Package editorlaunch suspends the terminal UI to open a file in the
// user's $EDITOR.
package editorlaunch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

// Open suspends screen, runs the editor on path (optionally jumping to
// lineNo), then resumes screen. path is resolved against the git root if
// relative and a root can be found. Returns a status message to flash
// (empty on clean success).
func Open(screen tcell.Screen, root, path string, lineNo int) string {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}

	full := path
	if !filepath.IsAbs(full) && root != "" {
		full = filepath.Join(root, path)
	}
	if _, err := os.Stat(full); err != nil {
		return fmt.Sprintf("File not found: %s", path)
	}

	args := []string{}
	if lineNo > 0 {
		args = append(args, fmt.Sprintf("+%d", lineNo))
	}
	args = append(args, full)

	screen.Fini()
	cmd := exec.Command(editor, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	runErr := cmd.Run()

	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: failed to reinitialize screen: %v\n", err)
		os.Exit(1)
	}
	screen.Sync()

	if runErr != nil {
		return fmt.Sprintf("Editor error: %v", runErr)
	}
	return ""
}

// GitRoot shells out to `git rev-parse --show-toplevel`.
func GitRoot() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	root := string(out)
	if len(root) > 0 && root[len(root)-1] == '\n' {
		root = root[:len(root)-1]
	}
	return root, nil
}
