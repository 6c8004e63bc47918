package session

import (
	"os"
	"path/filepath"
)

func readWorktreeFile(root, path string) ([]byte, error) {
	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(root, path)
	}
	return os.ReadFile(full)
}
