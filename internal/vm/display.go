package vm

import "strings"

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the monochrome frame buffer. Hosts only get read access,
// pixels are changed exclusively by the clear and draw instructions.
type Display struct {
	pixels [DisplayHeight][DisplayWidth]bool
}

// Width returns the display width in pixels.
func (d *Display) Width() int {
	return DisplayWidth
}

// Height returns the display height in pixels.
func (d *Display) Height() int {
	return DisplayHeight
}

// Pixel returns whether the pixel at the given coordinates is set.
// Coordinates outside of the display return false.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return d.pixels[y][x]
}

// Rows returns a copy of the pixel grid.
func (d *Display) Rows() [DisplayHeight][DisplayWidth]bool {
	return d.pixels
}

// Empty returns whether no pixel is set.
func (d *Display) Empty() bool {
	for y := range d.pixels {
		for x := range d.pixels[y] {
			if d.pixels[y][x] {
				return false
			}
		}
	}
	return true
}

// String renders the display as text, one line per row using '#' for set pixels.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow(DisplayHeight * (DisplayWidth + 1))
	for y := range d.pixels {
		for x := range d.pixels[y] {
			if d.pixels[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (d *Display) clear() {
	d.pixels = [DisplayHeight][DisplayWidth]bool{}
}

// drawSprite XORs an 8 pixel wide sprite onto the display. The start position always
// wraps around the display, pixels crossing an edge are wrapped or clipped depending
// on the wrap flag. It returns whether any set pixel was turned off.
func (d *Display) drawSprite(x, y byte, sprite []byte, wrap bool) bool {
	startX := int(x) % DisplayWidth
	startY := int(y) % DisplayHeight
	collision := false

	for row, data := range sprite {
		py := startY + row
		if py >= DisplayHeight {
			if !wrap {
				break
			}
			py %= DisplayHeight
		}

		for bit := range 8 {
			if data&(0x80>>bit) == 0 {
				continue
			}

			px := startX + bit
			if px >= DisplayWidth {
				if !wrap {
					break
				}
				px %= DisplayWidth
			}

			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}

	return collision
}
