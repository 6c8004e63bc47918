// Package clipboard writes to the system clipboard via the OSC 52 escape
// sequence.
package clipboard

import (
	"encoding/base64"
	"os"
)

// Copy copies text to the clipboard using OSC 52, writing directly to
// /dev/tty to bypass tcell buffering. Returns true on success.
func Copy(text string) bool {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	defer func() { _ = tty.Close() }()

	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err = tty.WriteString("\033]52;c;" + encoded + "\a")
	return err == nil
}
