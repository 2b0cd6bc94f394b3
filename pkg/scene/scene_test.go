package scene

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gucio321/bezierpad/pkg/bezier"
	"github.com/gucio321/bezierpad/pkg/editor"
)

var (
	green = color.RGBA{0x3c, 0xb3, 0x71, 0xff}
	red   = color.RGBA{0xff, 0, 0, 0xff}
)

func TestHandlesStartAtOneAndAreNotReused(t *testing.T) {
	s := New()

	h1 := s.DrawMarker(bezier.Pt(10, 10), green, 7)
	h2 := s.DrawSegment(bezier.Pt(0, 0), bezier.Pt(1, 1), red, 2)
	assert.Equal(t, editor.Handle(1), h1)
	assert.Equal(t, editor.Handle(2), h2)

	s.Delete(h2)
	s.Clear()

	h3 := s.DrawMarker(bezier.Pt(5, 5), green, 7)
	assert.Equal(t, editor.Handle(3), h3)
}

func TestHitTestOnlyReportsMarkers(t *testing.T) {
	s := New()
	s.DrawSegment(bezier.Pt(0, 0), bezier.Pt(100, 100), red, 2)

	_, ok := s.HitTest(bezier.Pt(50, 50))
	assert.False(t, ok)

	m := s.DrawMarker(bezier.Pt(50, 50), green, 7)
	h, ok := s.HitTest(bezier.Pt(55, 54))
	require.True(t, ok)
	assert.Equal(t, m, h)

	// on the edge of the circle
	h, ok = s.HitTest(bezier.Pt(57, 50))
	require.True(t, ok)
	assert.Equal(t, m, h)

	_, ok = s.HitTest(bezier.Pt(57.1, 50))
	assert.False(t, ok)
}

func TestHitTestPrefersTopmost(t *testing.T) {
	s := New()
	s.DrawMarker(bezier.Pt(10, 10), green, 7)
	top := s.DrawMarker(bezier.Pt(12, 10), green, 7)

	h, ok := s.HitTest(bezier.Pt(11, 10))
	require.True(t, ok)
	assert.Equal(t, top, h)
}

func TestMoveAndRecolorMarker(t *testing.T) {
	s := New()
	m := s.DrawMarker(bezier.Pt(10, 10), green, 7)

	s.MoveMarker(m, bezier.Pt(200, 300))
	s.SetMarkerColor(m, red)

	item, ok := s.Get(m)
	require.True(t, ok)
	assert.Equal(t, bezier.Pt(200, 300), item.From)
	assert.Equal(t, color.Color(red), item.Color)

	_, ok = s.HitTest(bezier.Pt(10, 10))
	assert.False(t, ok)
	h, ok := s.HitTest(bezier.Pt(201, 299))
	require.True(t, ok)
	assert.Equal(t, m, h)
}

func TestUnknownHandlesAreIgnored(t *testing.T) {
	s := New()
	seg := s.DrawSegment(bezier.Pt(0, 0), bezier.Pt(1, 1), red, 2)

	assert.NotPanics(t, func() {
		s.MoveMarker(42, bezier.Pt(1, 1))
		s.SetMarkerColor(42, red)
		s.Delete(42)
		// segments are not markers
		s.MoveMarker(seg, bezier.Pt(5, 5))
	})

	item, ok := s.Get(seg)
	require.True(t, ok)
	assert.Equal(t, bezier.Pt(0, 0), item.From)
	assert.Equal(t, 1, s.Len())
}

func TestItemsKeepCreationOrder(t *testing.T) {
	s := New()
	var handles []editor.Handle
	for i := 0; i < 5; i++ {
		handles = append(handles, s.DrawMarker(bezier.Pt(float64(i), 0), green, 1))
	}

	s.Delete(handles[1])
	s.Delete(handles[3])

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, handles[0], items[0].Handle)
	assert.Equal(t, handles[2], items[1].Handle)
	assert.Equal(t, handles[4], items[2].Handle)
}

func TestCountsSurviveCompaction(t *testing.T) {
	s := New()
	m := s.DrawMarker(bezier.Pt(0, 0), green, 7)

	for round := 0; round < 10; round++ {
		var segs []editor.Handle
		for i := 0; i < 100; i++ {
			segs = append(segs, s.DrawSegment(bezier.Pt(0, 0), bezier.Pt(1, 1), red, 2))
		}

		for _, h := range segs {
			s.Delete(h)
		}
	}

	assert.Equal(t, 1, s.Markers())
	assert.Equal(t, 0, s.Segments())
	assert.LessOrEqual(t, len(s.order), 2*s.Len()+64)

	h, ok := s.HitTest(bezier.Pt(1, 1))
	require.True(t, ok)
	assert.Equal(t, m, h)
}

func TestClear(t *testing.T) {
	s := New()
	s.DrawMarker(bezier.Pt(0, 0), green, 7)
	s.DrawSegment(bezier.Pt(0, 0), bezier.Pt(1, 1), red, 2)

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Items())
	_, ok := s.HitTest(bezier.Pt(0, 0))
	assert.False(t, ok)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#3cb371", Hex(green))
	assert.Equal(t, "#ff0000", Hex(red))
	assert.Equal(t, "#ffffff", Hex(color.White))
	assert.Equal(t, "#000000", Hex(nil))
}
