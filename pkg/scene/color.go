package scene

import (
	"fmt"
	"image/color"
)

// Hex formats c as #rrggbb, dropping alpha.
func Hex(c color.Color) string {
	r, g, b := RGB(c)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// RGB returns the 8-bit channels of c.
func RGB(c color.Color) (r, g, b uint8) {
	if c == nil {
		return 0, 0, 0
	}

	rr, gg, bb, _ := c.RGBA()
	return uint8(rr >> 8), uint8(gg >> 8), uint8(bb >> 8)
}
