package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gucio321/bezierpad/pkg/bezier"
	"github.com/gucio321/bezierpad/pkg/config"
	"github.com/gucio321/bezierpad/pkg/editor"
	"github.com/gucio321/bezierpad/pkg/scene"
)

var _ ebiten.Game = &Viewer{}

// Viewer runs the editor in an ebiten window.
// ebiten draws in immediate mode, so the editor draws on a scene that is repainted every frame.
type Viewer struct {
	cfg     *config.Config
	palette editor.Palette
	scene   *scene.Scene
	ctrl    *editor.Controller

	resetKey, toggleKey ebiten.Key

	dragging   bool
	lastCursor bezier.Point
}

// NewViewer creates a Viewer configured by cfg.
func NewViewer(cfg *config.Config) (*Viewer, error) {
	resetKey, err := lookupKey(cfg.Keys.Reset)
	if err != nil {
		return nil, fmt.Errorf("reset key: %w", err)
	}

	toggleKey, err := lookupKey(cfg.Keys.ToggleMarkers)
	if err != nil {
		return nil, fmt.Errorf("toggle-markers key: %w", err)
	}

	s := scene.New()
	result := &Viewer{
		cfg:       cfg,
		palette:   editor.DefaultPalette,
		scene:     s,
		resetKey:  resetKey,
		toggleKey: toggleKey,
		ctrl: editor.NewController(s).
			SetMarkerRadius(cfg.Marker.Radius).
			SetLineWidth(cfg.Curve.Width).
			SetSteps(cfg.Curve.Steps),
	}

	return result, nil
}

func (v *Viewer) Update() error {
	cursor := cursorPosition()

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		v.dragging = true
		v.ctrl.PointerDown(cursor)
	case v.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		v.dragging = false
		v.ctrl.PointerUp()
	case v.dragging && cursor != v.lastCursor:
		v.ctrl.PointerDrag(cursor)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		v.ctrl.SecondaryPointerDown(cursor)
	}

	if inpututil.IsKeyJustPressed(v.resetKey) {
		v.ctrl.KeyPress(editor.KeyReset)
	}

	if inpututil.IsKeyJustPressed(v.toggleKey) {
		v.ctrl.KeyPress(editor.KeyToggleMarkers)
	}

	v.lastCursor = cursor

	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.palette.Background)

	for _, item := range v.scene.Items() {
		switch item.Kind {
		case scene.KindSegment:
			vector.StrokeLine(screen,
				float32(item.From.X), float32(item.From.Y),
				float32(item.To.X), float32(item.To.Y),
				float32(item.Width), toRGBA(item.Color), true)
		case scene.KindMarker:
			vector.DrawFilledCircle(screen,
				float32(item.From.X), float32(item.From.Y),
				float32(item.Radius), toRGBA(item.Color), true)
		}
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("points: %d  |  click: add/drag  right click: delete  %s: reset  %s: toggle markers",
		v.ctrl.Len(), v.cfg.Keys.Reset, v.cfg.Keys.ToggleMarkers))
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return v.cfg.Canvas.Width, v.cfg.Canvas.Height
}

func cursorPosition() bezier.Point {
	x, y := ebiten.CursorPosition()
	return bezier.Pt(float64(x), float64(y))
}

func toRGBA(c color.Color) color.RGBA {
	r, g, b := scene.RGB(c)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
