package editor

import (
	"image/color"

	"github.com/gucio321/bezierpad/pkg/bezier"
)

// Handle identifies a drawable created on a Canvas. 0 is never a valid handle.
type Handle uint64

// Canvas is the rendering side of the GUI toolkit.
// The Controller is its only writer; it never reads it back except through HitTest.
type Canvas interface {
	DrawSegment(from, to bezier.Point, clr color.Color, width float64) Handle
	DrawMarker(center bezier.Point, clr color.Color, radius float64) Handle
	MoveMarker(h Handle, center bezier.Point)
	SetMarkerColor(h Handle, clr color.Color)
	Delete(h Handle)
	Clear()
	// HitTest returns a marker overlapping p. Segments are never reported.
	HitTest(p bezier.Point) (Handle, bool)
}
