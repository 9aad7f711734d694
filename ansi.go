package termrender

import (
	"fmt"

	"termrender/imageutil"
)

const (
	// ESC introduces every ANSI control sequence.
	ESC = ""

	// ansiReset clears any active color attributes.
	ansiReset = ESC + "[0m"
)

// foregroundEscape builds a 24-bit foreground color escape for the given
// color.
func foregroundEscape(c imageutil.RGB) string {
	return fmt.Sprintf("%s[38;2;%d;%d;%dm", ESC, c.R, c.G, c.B)
}
