// Package scene provides a retained-mode display list that implements editor.Canvas.
// Immediate-mode frontends keep a Scene and repaint its Items every frame.
package scene

import (
	"image/color"

	"github.com/kpango/glg"

	"github.com/gucio321/bezierpad/pkg/bezier"
	"github.com/gucio321/bezierpad/pkg/editor"
)

var _ editor.Canvas = &Scene{}

//go:generate stringer -type=Kind -linecomment

// Kind is the shape of an Item.
type Kind int

const (
	KindSegment Kind = iota // segment
	KindMarker              // marker
)

// Item is a single drawable.
// Segments use From, To and Width; markers use From as the center and Radius.
type Item struct {
	Handle editor.Handle
	Kind   Kind
	From   bezier.Point
	To     bezier.Point
	Width  float64
	Radius float64
	Color  color.Color
}

// Contains reports whether p lies inside or on a marker's circle. Segments contain nothing.
func (i *Item) Contains(p bezier.Point) bool {
	if i.Kind != KindMarker {
		return false
	}

	return i.From.DistanceSquared(p) <= i.Radius*i.Radius
}

// Scene is an in-memory canvas. Handles start at 1 and are never reused.
type Scene struct {
	next  editor.Handle
	items map[editor.Handle]*Item
	// order is the z-order (creation order); it may hold handles of deleted items.
	order []editor.Handle
}

// New creates an empty Scene.
func New() *Scene {
	return &Scene{
		items: make(map[editor.Handle]*Item),
	}
}

func (s *Scene) add(item *Item) editor.Handle {
	s.next++
	item.Handle = s.next
	s.items[item.Handle] = item
	s.order = append(s.order, item.Handle)

	return item.Handle
}

// DrawSegment adds a line segment.
func (s *Scene) DrawSegment(from, to bezier.Point, clr color.Color, width float64) editor.Handle {
	return s.add(&Item{
		Kind:  KindSegment,
		From:  from,
		To:    to,
		Width: width,
		Color: clr,
	})
}

// DrawMarker adds a filled circle.
func (s *Scene) DrawMarker(center bezier.Point, clr color.Color, radius float64) editor.Handle {
	return s.add(&Item{
		Kind:   KindMarker,
		From:   center,
		Radius: radius,
		Color:  clr,
	})
}

// MoveMarker recenters marker h.
func (s *Scene) MoveMarker(h editor.Handle, center bezier.Point) {
	item, ok := s.marker(h, "MoveMarker")
	if !ok {
		return
	}

	item.From = center
}

// SetMarkerColor repaints marker h.
func (s *Scene) SetMarkerColor(h editor.Handle, clr color.Color) {
	item, ok := s.marker(h, "SetMarkerColor")
	if !ok {
		return
	}

	item.Color = clr
}

// Delete removes any drawable.
func (s *Scene) Delete(h editor.Handle) {
	if _, ok := s.items[h]; !ok {
		glg.Warnf("Delete called for unknown handle %d", h)
		return
	}

	delete(s.items, h)

	if len(s.order) > 2*len(s.items)+64 {
		s.compact()
	}
}

// Clear removes every drawable. Handles keep counting up.
func (s *Scene) Clear() {
	s.items = make(map[editor.Handle]*Item)
	s.order = nil
}

// HitTest returns the topmost marker containing p.
func (s *Scene) HitTest(p bezier.Point) (editor.Handle, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		item, ok := s.items[s.order[i]]
		if !ok {
			continue
		}

		if item.Contains(p) {
			return item.Handle, true
		}
	}

	return 0, false
}

// Get returns a copy of the item with handle h.
func (s *Scene) Get(h editor.Handle) (Item, bool) {
	item, ok := s.items[h]
	if !ok {
		return Item{}, false
	}

	return *item, true
}

// Items returns copies of all live drawables, bottom first.
func (s *Scene) Items() []Item {
	result := make([]Item, 0, len(s.items))
	for _, h := range s.order {
		if item, ok := s.items[h]; ok {
			result = append(result, *item)
		}
	}

	return result
}

// Len returns the number of live drawables.
func (s *Scene) Len() int {
	return len(s.items)
}

// Markers returns the number of live markers.
func (s *Scene) Markers() int {
	return s.count(KindMarker)
}

// Segments returns the number of live segments.
func (s *Scene) Segments() int {
	return s.count(KindSegment)
}

func (s *Scene) count(k Kind) (n int) {
	for _, item := range s.items {
		if item.Kind == k {
			n++
		}
	}

	return n
}

func (s *Scene) marker(h editor.Handle, op string) (*Item, bool) {
	item, ok := s.items[h]
	switch {
	case !ok:
		glg.Warnf("%s called for unknown handle %d", op, h)
		return nil, false
	case item.Kind != KindMarker:
		glg.Warnf("%s called for %s %d", op, item.Kind, h)
		return nil, false
	}

	return item, true
}

func (s *Scene) compact() {
	live := s.order[:0]
	for _, h := range s.order {
		if _, ok := s.items[h]; ok {
			live = append(live, h)
		}
	}

	s.order = live
}
