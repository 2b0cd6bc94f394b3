package editor

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Palette holds the fixed colors used by the editor.
type Palette struct {
	// Accent paints visible markers.
	Accent color.Color
	// Background is the canvas color; hidden markers are painted with it.
	Background color.Color
	// Curve paints the curve segments.
	Curve color.Color
}

var DefaultPalette = Palette{
	Accent:     colornames.Mediumseagreen,
	Background: color.RGBA{0x14, 0x14, 0x14, 0xff}, // gray8
	Curve:      colornames.Red,
}

const (
	DefaultMarkerRadius = 7.0
	DefaultLineWidth    = 2.0
)
