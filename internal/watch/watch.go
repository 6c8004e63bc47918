// Package watch debounces filesystem change notifications for a git
// working tree. Instead of triggering a raw re-diff, the caller is expected
// to invoke session.MultiFileSession.RefreshAllFromGit on each
// notification.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/radovskyb/watcher"
)

// Start watches root recursively (excluding .git) and sends a notification
// on updateCh for every Write/Create/Remove/Rename event, coalescing bursts
// via the watcher's max-events-per-cycle setting. Returns immediately;
// watching happens in a background goroutine for the lifetime of the
// process.
func Start(root string, updateCh chan<- struct{}) {
	if root == "" {
		return
	}

	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write, watcher.Create, watcher.Remove, watcher.Rename)

	w.AddFilterHook(func(_ os.FileInfo, fullPath string) error {
		if strings.Contains(fullPath, string(filepath.Separator)+".git"+string(filepath.Separator)) ||
			strings.HasSuffix(fullPath, string(filepath.Separator)+".git") {
			return watcher.ErrSkip
		}
		return nil
	})

	if err := w.AddRecursive(root); err != nil {
		return
	}

	go func() {
		for {
			select {
			case <-w.Event:
				select {
				case updateCh <- struct{}{}:
				default:
				}
			case <-w.Error:
				return
			case <-w.Closed:
				return
			}
		}
	}()

	go func() { _ = w.Start(100 * time.Millisecond) }()
}
