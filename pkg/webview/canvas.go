package webview

import (
	"image/color"

	"github.com/kpango/glg"

	"github.com/gucio321/bezierpad/pkg/bezier"
	"github.com/gucio321/bezierpad/pkg/editor"
	"github.com/gucio321/bezierpad/pkg/scene"
)

var _ editor.Canvas = &remoteCanvas{}

// remoteCanvas mirrors the browser canvas in a scene (handles, hit-testing)
// and queues the draw commands the browser has to replay.
type remoteCanvas struct {
	scene   *scene.Scene
	pending []Envelope
}

func newRemoteCanvas() *remoteCanvas {
	return &remoteCanvas{scene: scene.New()}
}

func (c *remoteCanvas) push(msgType string, payload any) {
	env, err := marshalEnvelope(msgType, payload)
	if err != nil {
		glg.Errorf("webview: dropping %s command: %v", msgType, err)
		return
	}

	c.pending = append(c.pending, env)
}

// flush returns and forgets the queued commands.
func (c *remoteCanvas) flush() []Envelope {
	out := c.pending
	c.pending = nil
	return out
}

func (c *remoteCanvas) DrawSegment(from, to bezier.Point, clr color.Color, width float64) editor.Handle {
	h := c.scene.DrawSegment(from, to, clr, width)
	c.push(TypeSegment, SegmentPayload{
		ID:    h,
		X1:    from.X,
		Y1:    from.Y,
		X2:    to.X,
		Y2:    to.Y,
		Color: scene.Hex(clr),
		Width: width,
	})

	return h
}

func (c *remoteCanvas) DrawMarker(center bezier.Point, clr color.Color, radius float64) editor.Handle {
	h := c.scene.DrawMarker(center, clr, radius)
	c.push(TypeMarker, MarkerPayload{
		ID:    h,
		X:     center.X,
		Y:     center.Y,
		R:     radius,
		Color: scene.Hex(clr),
	})

	return h
}

func (c *remoteCanvas) MoveMarker(h editor.Handle, center bezier.Point) {
	c.scene.MoveMarker(h, center)
	c.push(TypeMove, MovePayload{ID: h, X: center.X, Y: center.Y})
}

func (c *remoteCanvas) SetMarkerColor(h editor.Handle, clr color.Color) {
	c.scene.SetMarkerColor(h, clr)
	c.push(TypeRecolor, RecolorPayload{ID: h, Color: scene.Hex(clr)})
}

func (c *remoteCanvas) Delete(h editor.Handle) {
	c.scene.Delete(h)
	c.push(TypeDelete, DeletePayload{ID: h})
}

func (c *remoteCanvas) Clear() {
	c.scene.Clear()
	c.push(TypeClear, nil)
}

func (c *remoteCanvas) HitTest(p bezier.Point) (editor.Handle, bool) {
	return c.scene.HitTest(p)
}
