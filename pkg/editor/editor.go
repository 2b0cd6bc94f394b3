// Package editor implements the control point interaction state machine of the Bezier editor.
package editor

import (
	"fmt"
	"image/color"

	"github.com/kpango/glg"

	"github.com/gucio321/bezierpad/pkg/bezier"
)

// ControlPoint is a curve control point together with the handle of its marker.
type ControlPoint struct {
	Handle Handle
	Pos    bezier.Point
}

// Controller owns the control points of a single curve and keeps a Canvas in sync with them.
// It is not safe for concurrent use; events are expected to arrive serially from one event loop.
type Controller struct {
	canvas Canvas

	points []ControlPoint
	// index maps a marker handle to its position in points.
	index    map[Handle]int
	segments []Handle

	selected       Handle
	markersVisible bool

	markerRadius float64
	lineWidth    float64
	steps        int
	palette      Palette
}

// NewController creates a Controller drawing on c with default settings.
func NewController(c Canvas) *Controller {
	return &Controller{
		canvas:         c,
		index:          make(map[Handle]int),
		markersVisible: true,
		markerRadius:   DefaultMarkerRadius,
		lineWidth:      DefaultLineWidth,
		steps:          bezier.DefaultSteps,
		palette:        DefaultPalette,
	}
}

// SetMarkerRadius sets the radius of markers created from now on.
func (c *Controller) SetMarkerRadius(r float64) *Controller {
	c.markerRadius = r
	return c
}

// SetLineWidth sets the width of curve segments.
func (c *Controller) SetLineWidth(w float64) *Controller {
	c.lineWidth = w
	return c
}

// SetSteps sets how many segments approximate the curve.
func (c *Controller) SetSteps(steps int) *Controller {
	c.steps = steps
	return c
}

func (c *Controller) SetPalette(p Palette) *Controller {
	c.palette = p
	return c
}

// Dispatch routes e to the matching handler.
func (c *Controller) Dispatch(e Event) error {
	switch e.Kind {
	case PointerDown:
		c.PointerDown(e.Pos)
	case PointerDrag:
		c.PointerDrag(e.Pos)
	case PointerUp:
		c.PointerUp()
	case SecondaryPointerDown:
		c.SecondaryPointerDown(e.Pos)
	case KeyPress:
		c.KeyPress(e.Key)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownEvent, e.Kind)
	}

	return nil
}

// PointerDown selects the marker under p, or places a new control point there.
// While markers are hidden a new point is always placed.
func (c *Controller) PointerDown(p bezier.Point) {
	if h, ok := c.markerAt(p); ok {
		glg.Debugf("selecting control point %d at %v", c.index[h], p)
		c.selected = h
		return
	}

	h := c.canvas.DrawMarker(p, c.markerColor(), c.markerRadius)
	if _, exists := c.index[h]; exists {
		c.fail("canvas reused live handle %d", h)
	}

	c.points = append(c.points, ControlPoint{Handle: h, Pos: p})
	c.index[h] = len(c.points) - 1
	c.selected = h

	glg.Debugf("added control point %d at %v", len(c.points)-1, p)

	c.render()
}

// PointerDrag moves the selected control point to p. It does nothing while markers are hidden.
func (c *Controller) PointerDrag(p bezier.Point) {
	if c.selected == 0 || !c.markersVisible {
		return
	}

	i := c.lookup(c.selected)
	c.points[i].Pos = p
	c.canvas.MoveMarker(c.selected, p)

	c.render()
}

// PointerUp ends a drag.
func (c *Controller) PointerUp() {
	c.selected = 0
}

// SecondaryPointerDown removes the control point whose marker is under p.
func (c *Controller) SecondaryPointerDown(p bezier.Point) {
	h, ok := c.markerAt(p)
	if !ok {
		return
	}

	c.remove(h)
	c.render()
}

// KeyPress runs the command bound to k. Unknown keys are ignored.
func (c *Controller) KeyPress(k Key) {
	switch k {
	case KeyReset:
		c.Reset()
	case KeyToggleMarkers:
		c.ToggleMarkers()
	default:
		glg.Debugf("ignoring unbound key %q", k)
	}
}

// Reset drops all control points and erases everything drawn.
func (c *Controller) Reset() {
	c.points = nil
	c.index = make(map[Handle]int)
	c.segments = nil
	c.selected = 0
	c.canvas.Clear()

	glg.Debug("editor reset")
}

// ToggleMarkers flips marker visibility and repaints every marker.
// Control point positions are not touched.
func (c *Controller) ToggleMarkers() {
	c.markersVisible = !c.markersVisible

	clr := c.markerColor()
	for _, cp := range c.points {
		c.canvas.SetMarkerColor(cp.Handle, clr)
	}

	glg.Debugf("markers visible: %v", c.markersVisible)
}

// Len returns the number of control points.
func (c *Controller) Len() int {
	return len(c.points)
}

// Points returns a copy of the control point positions in curve order.
func (c *Controller) Points() []bezier.Point {
	result := make([]bezier.Point, len(c.points))
	for i, cp := range c.points {
		result[i] = cp.Pos
	}

	return result
}

// ControlPoints returns a copy of the control points in curve order.
func (c *Controller) ControlPoints() []ControlPoint {
	return append([]ControlPoint(nil), c.points...)
}

// IndexOf returns the position of the control point owning marker h.
func (c *Controller) IndexOf(h Handle) (int, bool) {
	i, ok := c.index[h]
	return i, ok
}

// Selected returns the marker currently being dragged.
func (c *Controller) Selected() (Handle, bool) {
	return c.selected, c.selected != 0
}

func (c *Controller) MarkersVisible() bool {
	return c.markersVisible
}

// Curve returns the polyline currently drawn, or nil if there are fewer than 2 control points.
func (c *Controller) Curve() []bezier.Point {
	if len(c.points) < 2 {
		return nil
	}

	return bezier.Polyline(c.Points(), c.steps)
}

// SegmentCount returns how many curve segments are on the canvas.
func (c *Controller) SegmentCount() int {
	return len(c.segments)
}

// render throws away the previous curve and draws it again from scratch.
func (c *Controller) render() {
	for _, h := range c.segments {
		c.canvas.Delete(h)
	}

	c.segments = c.segments[:0]

	line := c.Curve()
	for i := 1; i < len(line); i++ {
		c.segments = append(c.segments, c.canvas.DrawSegment(line[i-1], line[i], c.palette.Curve, c.lineWidth))
	}
}

func (c *Controller) remove(h Handle) {
	i := c.lookup(h)

	// 1.0: close the gap in points
	c.points = append(c.points[:i], c.points[i+1:]...)

	// 1.1: shift mapped indices down
	delete(c.index, h)
	for other, j := range c.index {
		if j > i {
			c.index[other] = j - 1
		}
	}

	if c.selected == h {
		c.selected = 0
	}

	c.canvas.Delete(h)

	glg.Debugf("removed control point %d", i)
}

// markerAt returns the control point marker under p, if markers are visible.
func (c *Controller) markerAt(p bezier.Point) (Handle, bool) {
	if !c.markersVisible {
		return 0, false
	}

	h, ok := c.canvas.HitTest(p)
	if !ok {
		return 0, false
	}

	if _, owned := c.index[h]; !owned {
		return 0, false
	}

	return h, true
}

// lookup returns the index of h and checks it against points.
func (c *Controller) lookup(h Handle) int {
	i, ok := c.index[h]
	switch {
	case !ok:
		c.fail("handle %d is not mapped", h)
	case i < 0 || i >= len(c.points):
		c.fail("handle %d mapped to index %d, have %d points", h, i, len(c.points))
	case c.points[i].Handle != h:
		c.fail("handle %d mapped to index %d which holds handle %d", h, i, c.points[i].Handle)
	}

	return i
}

func (c *Controller) markerColor() color.Color {
	if c.markersVisible {
		return c.palette.Accent
	}

	return c.palette.Background
}

func (c *Controller) fail(format string, args ...any) {
	err := fmt.Errorf("%w: %s", ErrInconsistent, fmt.Sprintf(format, args...))
	glg.Error(err)
	panic(err)
}
