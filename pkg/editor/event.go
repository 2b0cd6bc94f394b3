package editor

import (
	"fmt"

	"github.com/gucio321/bezierpad/pkg/bezier"
)

//go:generate stringer -type=EventKind -linecomment

// EventKind is the type of an input event delivered by the GUI toolkit.
type EventKind int

const (
	// primary button pressed
	PointerDown EventKind = iota // pointer-down
	// pointer moved while the primary button is held
	PointerDrag // pointer-drag
	// primary button released
	PointerUp // pointer-up
	// secondary button pressed
	SecondaryPointerDown // secondary-pointer-down
	// a bound key was pressed
	KeyPress // key-press
)

var eventKindEnum = func() map[string]EventKind {
	m := make(map[string]EventKind)
	for i := PointerDown; i <= KeyPress; i++ {
		m[i.String()] = i
	}
	return m
}()

// ParseEventKind returns the EventKind named s (e.g. "pointer-down").
func ParseEventKind(s string) (EventKind, error) {
	k, ok := eventKindEnum[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownEvent, s)
	}

	return k, nil
}

// Key identifies an editor command bound to a key.
type Key string

const (
	// KeyReset clears the canvas and all control points.
	KeyReset Key = "reset"
	// KeyToggleMarkers shows/hides control point markers.
	KeyToggleMarkers Key = "toggle-markers"
)

// Event is a single input event. Pos is meaningful for pointer events, Key for KeyPress.
type Event struct {
	Kind EventKind
	Pos  bezier.Point
	Key  Key
}
