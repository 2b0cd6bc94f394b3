package webview

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gucio321/bezierpad/pkg/bezier"
	"github.com/gucio321/bezierpad/pkg/config"
	"github.com/gucio321/bezierpad/pkg/editor"
)

// Server -> browser message types. Every frame is a JSON array of Envelopes.
const (
	TypeConfig  = "config"
	TypeSegment = "segment"
	TypeMarker  = "marker"
	TypeMove    = "move"
	TypeRecolor = "recolor"
	TypeDelete  = "delete"
	TypeClear   = "clear"
)

// Envelope wraps every draw command sent to the browser.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ConfigPayload struct {
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Background string      `json:"background"`
	Keys       config.Keys `json:"keys"`
}

type SegmentPayload struct {
	ID    editor.Handle `json:"id"`
	X1    float64       `json:"x1"`
	Y1    float64       `json:"y1"`
	X2    float64       `json:"x2"`
	Y2    float64       `json:"y2"`
	Color string        `json:"color"`
	Width float64       `json:"width"`
}

type MarkerPayload struct {
	ID    editor.Handle `json:"id"`
	X     float64       `json:"x"`
	Y     float64       `json:"y"`
	R     float64       `json:"r"`
	Color string        `json:"color"`
}

type MovePayload struct {
	ID editor.Handle `json:"id"`
	X  float64       `json:"x"`
	Y  float64       `json:"y"`
}

type RecolorPayload struct {
	ID    editor.Handle `json:"id"`
	Color string        `json:"color"`
}

type DeletePayload struct {
	ID editor.Handle `json:"id"`
}

// ClientMessage is an input event sent by the browser.
// Type is an editor event name such as "pointer-down".
// Key is either a key name (matched against the configured bindings) or an editor command.
type ClientMessage struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Key  string  `json:"key,omitempty"`
}

// marshalEnvelope builds an Envelope from a message type and payload.
func marshalEnvelope(msgType string, payload any) (Envelope, error) {
	env := Envelope{Type: msgType}
	if payload == nil {
		return env, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return env, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}

	env.Payload = raw

	return env, nil
}

// toEvent converts a browser message into an editor event.
func toEvent(msg ClientMessage, keys config.Keys) (editor.Event, error) {
	kind, err := editor.ParseEventKind(msg.Type)
	if err != nil {
		return editor.Event{}, err
	}

	e := editor.Event{Kind: kind, Pos: bezier.Pt(msg.X, msg.Y)}
	if kind == editor.KeyPress {
		e.Key = bindKey(msg.Key, keys)
	}

	return e, nil
}

func bindKey(name string, keys config.Keys) editor.Key {
	switch {
	case strings.EqualFold(name, keys.Reset):
		return editor.KeyReset
	case strings.EqualFold(name, keys.ToggleMarkers):
		return editor.KeyToggleMarkers
	}

	return editor.Key(name)
}
