package terminal

import (
	"strings"

	"github.com/retroenv/retrochip8/internal/vm"
)

// ANSI control sequences.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Render returns the display as rows of half block characters, each text
// row covers two pixel rows. Lines end with CRLF as the terminal is in raw mode.
func Render(d *vm.Display) string {
	var sb strings.Builder
	sb.Grow(d.Height() / 2 * (d.Width()*3 + 2))

	for y := 0; y < d.Height(); y += 2 {
		for x := range d.Width() {
			top := d.Pixel(x, y)
			bottom := d.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
