package webview

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gucio321/bezierpad/pkg/config"
	"github.com/gucio321/bezierpad/pkg/editor"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(config.Default()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) []Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var frame []Envelope
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func countTypes(frame []Envelope) map[string]int {
	result := make(map[string]int)
	for _, env := range frame {
		result[env.Type]++
	}

	return result
}

func TestIndex(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `<canvas id="pad"`)
	// held keys must not repeat commands
	assert.Contains(t, string(body), `if (ev.repeat) return;`)

	resp, err = http.Get(srv.URL + "/favicon.ico")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionStartsWithConfig(t *testing.T) {
	conn := dial(t, testServer(t))

	frame := readFrame(t, conn)
	require.Len(t, frame, 1)
	require.Equal(t, TypeConfig, frame[0].Type)

	var cfg ConfigPayload
	require.NoError(t, json.Unmarshal(frame[0].Payload, &cfg))
	assert.Equal(t, 700, cfg.Width)
	assert.Equal(t, 700, cfg.Height)
	assert.Equal(t, "#141414", cfg.Background)
	assert.Equal(t, "F1", cfg.Keys.Reset)
}

func TestEditingRoundTrip(t *testing.T) {
	conn := dial(t, testServer(t))
	readFrame(t, conn)

	// 1.0: first point, no curve yet
	send(t, conn, ClientMessage{Type: "pointer-down", X: 100, Y: 100})
	frame := readFrame(t, conn)
	require.Len(t, frame, 1)
	require.Equal(t, TypeMarker, frame[0].Type)

	var marker MarkerPayload
	require.NoError(t, json.Unmarshal(frame[0].Payload, &marker))
	assert.Equal(t, editor.Handle(1), marker.ID)
	assert.Equal(t, 100.0, marker.X)
	assert.Equal(t, 7.0, marker.R)
	assert.Equal(t, "#3cb371", marker.Color)

	// pointer-up changes nothing on screen, so nothing is sent; the next frame belongs to the next event
	send(t, conn, ClientMessage{Type: "pointer-up"})

	// 1.1: second point draws the curve
	send(t, conn, ClientMessage{Type: "pointer-down", X: 400, Y: 400})
	frame = readFrame(t, conn)
	types := countTypes(frame)
	assert.Equal(t, 1, types[TypeMarker])
	assert.Equal(t, 100, types[TypeSegment])

	// 1.2: drag replaces the curve
	send(t, conn, ClientMessage{Type: "pointer-drag", X: 420, Y: 380})
	frame = readFrame(t, conn)
	types = countTypes(frame)
	assert.Equal(t, 1, types[TypeMove])
	assert.Equal(t, 100, types[TypeDelete])
	assert.Equal(t, 100, types[TypeSegment])
	send(t, conn, ClientMessage{Type: "pointer-up"})

	// 1.3: toggle markers by key name
	send(t, conn, ClientMessage{Type: "key-press", Key: "h"})
	frame = readFrame(t, conn)
	require.Len(t, frame, 2)
	for _, env := range frame {
		require.Equal(t, TypeRecolor, env.Type)
		var p RecolorPayload
		require.NoError(t, json.Unmarshal(env.Payload, &p))
		assert.Equal(t, "#141414", p.Color)
	}

	// 1.4: reset by command name
	send(t, conn, ClientMessage{Type: "key-press", Key: "reset"})
	frame = readFrame(t, conn)
	require.Len(t, frame, 1)
	assert.Equal(t, TypeClear, frame[0].Type)
}

func TestSecondaryPointerDownDeletes(t *testing.T) {
	conn := dial(t, testServer(t))
	readFrame(t, conn)

	send(t, conn, ClientMessage{Type: "pointer-down", X: 100, Y: 100})
	readFrame(t, conn)
	send(t, conn, ClientMessage{Type: "pointer-up"})
	send(t, conn, ClientMessage{Type: "pointer-down", X: 400, Y: 400})
	readFrame(t, conn)
	send(t, conn, ClientMessage{Type: "pointer-up"})

	send(t, conn, ClientMessage{Type: "secondary-pointer-down", X: 102, Y: 99})
	frame := readFrame(t, conn)

	// old curve and the marker go away, one point is not a curve
	types := countTypes(frame)
	assert.Equal(t, 101, types[TypeDelete])
	assert.Equal(t, 0, types[TypeSegment])
	assert.Len(t, frame, 101)

	var first DeletePayload
	require.NoError(t, json.Unmarshal(frame[0].Payload, &first))
	assert.Equal(t, editor.Handle(1), first.ID)
}

func TestMalformedMessagesAreSkipped(t *testing.T) {
	conn := dial(t, testServer(t))
	readFrame(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	send(t, conn, ClientMessage{Type: "double-click", X: 1, Y: 1})

	// the session is still alive
	send(t, conn, ClientMessage{Type: "pointer-down", X: 10, Y: 10})
	frame := readFrame(t, conn)
	require.Len(t, frame, 1)
	assert.Equal(t, TypeMarker, frame[0].Type)
}

func TestSessionsAreIndependent(t *testing.T) {
	srv := testServer(t)
	a := dial(t, srv)
	b := dial(t, srv)
	readFrame(t, a)
	readFrame(t, b)

	send(t, a, ClientMessage{Type: "pointer-down", X: 10, Y: 10})
	readFrame(t, a)

	send(t, b, ClientMessage{Type: "pointer-down", X: 500, Y: 500})
	frame := readFrame(t, b)
	require.Len(t, frame, 1)

	var marker MarkerPayload
	require.NoError(t, json.Unmarshal(frame[0].Payload, &marker))
	assert.Equal(t, editor.Handle(1), marker.ID)
}

func TestToEvent(t *testing.T) {
	keys := config.Default().Keys

	e, err := toEvent(ClientMessage{Type: "key-press", Key: "f1"}, keys)
	require.NoError(t, err)
	assert.Equal(t, editor.KeyPress, e.Kind)
	assert.Equal(t, editor.KeyReset, e.Key)

	e, err = toEvent(ClientMessage{Type: "key-press", Key: "toggle-markers"}, keys)
	require.NoError(t, err)
	assert.Equal(t, editor.KeyToggleMarkers, e.Key)

	e, err = toEvent(ClientMessage{Type: "pointer-drag", X: 3, Y: 4}, keys)
	require.NoError(t, err)
	assert.Equal(t, editor.PointerDrag, e.Kind)
	assert.Equal(t, 3.0, e.Pos.X)
	assert.Equal(t, 4.0, e.Pos.Y)

	_, err = toEvent(ClientMessage{Type: "wheel"}, keys)
	assert.ErrorIs(t, err, editor.ErrUnknownEvent)
}

func TestSameOrigin(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"no origin", "", true},
		{"same host", "http://localhost:8700", true},
		{"same host upper case", "http://LOCALHOST:8700", true},
		{"host as prefix", "http://localhost:8700.attacker.example", false},
		{"other port", "http://localhost:9000", false},
		{"other host", "https://example.com", false},
		{"garbage", "://%zz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://localhost:8700/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}

			assert.Equal(t, tt.want, sameOrigin(r))
		})
	}
}

func TestForeignOriginIsRejected(t *testing.T) {
	srv := testServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	header := http.Header{}
	header.Set("Origin", "http://"+strings.TrimPrefix(srv.URL, "http://")+".attacker.example")
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
