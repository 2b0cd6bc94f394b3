// Package webview serves the editor to a browser.
// The browser only paints and forwards input; every websocket connection gets its own editor.
package webview

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kpango/glg"

	"github.com/gucio321/bezierpad/pkg/config"
	"github.com/gucio321/bezierpad/pkg/editor"
	"github.com/gucio321/bezierpad/pkg/scene"
)

//go:embed static/index.html
var indexHTML []byte

const (
	writeWait       = 10 * time.Second
	maxMessageSize  = 4 * 1024
	shutdownTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4 * 1024,
	WriteBufferSize: 64 * 1024,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts requests without an Origin header and those whose origin host is the requested host.
func sameOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return strings.EqualFold(u.Host, strings.TrimSpace(r.Host))
}

// Server hosts the page and the websocket endpoint.
type Server struct {
	cfg      *config.Config
	mux      *http.ServeMux
	sessions atomic.Uint64
}

// New creates a Server configured by cfg.
func New(cfg *config.Config) *Server {
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
	}

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/ws", s.handleWS)

	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run listens on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Web.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// open websockets see ctx through their request context
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		glg.Infof("webview: listening on %s", s.cfg.Web.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("webview: serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		glg.Info("webview: shutting down")

		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		glg.Warnf("webview: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	// unblock the read loop when the server goes down
	go func() {
		<-r.Context().Done()
		_ = conn.Close()
	}()

	id := s.sessions.Add(1)
	glg.Infof("webview: session %d opened from %s", id, r.RemoteAddr)

	if err := s.serve(conn, id); err != nil {
		glg.Warnf("webview: session %d: %v", id, err)
	}

	glg.Infof("webview: session %d closed", id)
}

// serve runs one editor session. Messages are handled one at a time, in order.
func (s *Server) serve(conn *websocket.Conn, id uint64) error {
	canvas := newRemoteCanvas()
	ctrl := editor.NewController(canvas).
		SetMarkerRadius(s.cfg.Marker.Radius).
		SetLineWidth(s.cfg.Curve.Width).
		SetSteps(s.cfg.Curve.Steps)

	hello, err := marshalEnvelope(TypeConfig, ConfigPayload{
		Width:      s.cfg.Canvas.Width,
		Height:     s.cfg.Canvas.Height,
		Background: scene.Hex(editor.DefaultPalette.Background),
		Keys:       s.cfg.Keys,
	})
	if err != nil {
		return err
	}

	if err := writeFrame(conn, []Envelope{hello}); err != nil {
		return err
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return err
			}

			return nil
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			glg.Warnf("webview: session %d: malformed message: %v", id, err)
			continue
		}

		e, err := toEvent(msg, s.cfg.Keys)
		if err != nil {
			glg.Warnf("webview: session %d: %v", id, err)
			continue
		}

		if err := ctrl.Dispatch(e); err != nil {
			glg.Warnf("webview: session %d: %v", id, err)
			continue
		}

		if frame := canvas.flush(); len(frame) > 0 {
			if err := writeFrame(conn, frame); err != nil {
				return err
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, frame []Envelope) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	if err := conn.WriteJSON(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	return nil
}
