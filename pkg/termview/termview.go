// Package termview runs the editor inside a terminal.
// Every cell stands for a rectangle of the logical canvas; clicks land on cell centers.
package termview

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kpango/glg"

	"github.com/gucio321/bezierpad/pkg/bezier"
	"github.com/gucio321/bezierpad/pkg/config"
	"github.com/gucio321/bezierpad/pkg/editor"
	"github.com/gucio321/bezierpad/pkg/scene"
)

var _ tea.Model = &Model{}

const (
	markerRune  = '●'
	segmentRune = '•'
	// rows reserved below the canvas
	statusRows = 1
)

var statusStyle = lipgloss.NewStyle().Faint(true)

type cell struct {
	r   rune
	clr color.Color
}

// Model is a bubbletea model hosting one editor.
type Model struct {
	cfg     *config.Config
	palette editor.Palette
	scene   *scene.Scene
	ctrl    *editor.Controller

	width, height int
	dragging      bool
}

// New creates a terminal editor configured by cfg.
func New(cfg *config.Config) *Model {
	s := scene.New()
	return &Model{
		cfg:     cfg,
		palette: editor.DefaultPalette,
		scene:   s,
		ctrl: editor.NewController(s).
			SetMarkerRadius(cfg.Marker.Radius).
			SetLineWidth(cfg.Curve.Width).
			SetSteps(cfg.Curve.Steps),
	}
}

// Controller exposes the underlying editor.
func (m *Model) Controller() *editor.Controller {
	return m.ctrl
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch {
	case key == "ctrl+c" || key == "q":
		return tea.Quit
	case strings.EqualFold(key, m.cfg.Keys.Reset):
		m.ctrl.KeyPress(editor.KeyReset)
	case strings.EqualFold(key, m.cfg.Keys.ToggleMarkers):
		m.ctrl.KeyPress(editor.KeyToggleMarkers)
	default:
		glg.Debugf("termview: unbound key %q", key)
	}

	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	cols, rows := m.canvasSize()
	if cols <= 0 || rows <= 0 {
		return
	}

	if msg.X < 0 || msg.X >= cols || msg.Y < 0 || msg.Y >= rows {
		// outside the canvas only a release matters
		if msg.Action == tea.MouseActionRelease && m.dragging {
			m.dragging = false
			m.ctrl.PointerUp()
		}

		return
	}

	p := m.toLogical(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.dragging = true
			m.ctrl.PointerDown(p)
		case tea.MouseButtonRight:
			m.ctrl.SecondaryPointerDown(p)
		}
	case tea.MouseActionMotion:
		if m.dragging {
			m.ctrl.PointerDrag(p)
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.ctrl.PointerUp()
		}
	}
}

func (m *Model) View() string {
	cols, rows := m.canvasSize()
	if cols <= 0 || rows <= 0 {
		return "initializing..."
	}

	// 1.0: rasterize the scene; markers go over the curve so its end points stay visible
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
	}

	set := func(x, y int, r rune, clr color.Color) {
		if x < 0 || y < 0 || x >= cols || y >= rows {
			return
		}

		grid[y][x] = cell{r, clr}
	}

	items := m.scene.Items()
	for _, item := range items {
		if item.Kind != scene.KindSegment {
			continue
		}

		x0, y0 := m.toCell(item.From)
		x1, y1 := m.toCell(item.To)
		line(x0, y0, x1, y1, func(x, y int) {
			set(x, y, segmentRune, item.Color)
		})
	}

	for _, item := range items {
		if item.Kind == scene.KindMarker {
			x, y := m.toCell(item.From)
			set(x, y, markerRune, item.Color)
		}
	}

	// 1.1: paint runs of equally colored cells
	base := lipgloss.NewStyle().Background(lipgloss.Color(scene.Hex(m.palette.Background)))
	var sb strings.Builder
	for y, row := range grid {
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && sameColor(row[x].clr, row[start].clr) {
				continue
			}

			sb.WriteString(renderRun(base, row[start:x]))
			start = x
		}

		if y < len(grid)-1 {
			sb.WriteByte('\n')
		}
	}

	// 1.2: status line
	visibility := "shown"
	if !m.ctrl.MarkersVisible() {
		visibility = "hidden"
	}

	sb.WriteByte('\n')
	sb.WriteString(statusStyle.Render(fmt.Sprintf("points: %d  markers: %s  |  %s reset  %s toggle markers  q quit",
		m.ctrl.Len(), visibility, m.cfg.Keys.Reset, m.cfg.Keys.ToggleMarkers)))

	return sb.String()
}

func renderRun(base lipgloss.Style, run []cell) string {
	runes := make([]rune, len(run))
	for i, c := range run {
		runes[i] = c.r
		if c.r == 0 {
			runes[i] = ' '
		}
	}

	style := base
	if run[0].clr != nil {
		style = style.Foreground(lipgloss.Color(scene.Hex(run[0].clr)))
	}

	return style.Render(string(runes))
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return scene.Hex(a) == scene.Hex(b)
}

func (m *Model) canvasSize() (cols, rows int) {
	return m.width, m.height - statusRows
}

// toLogical returns the logical canvas point at the center of cell (x, y).
func (m *Model) toLogical(x, y int) bezier.Point {
	cols, rows := m.canvasSize()
	return bezier.Pt(
		(float64(x)+0.5)*float64(m.cfg.Canvas.Width)/float64(cols),
		(float64(y)+0.5)*float64(m.cfg.Canvas.Height)/float64(rows),
	)
}

// toCell returns the cell containing logical point p.
func (m *Model) toCell(p bezier.Point) (x, y int) {
	cols, rows := m.canvasSize()
	return int(math.Floor(p.X * float64(cols) / float64(m.cfg.Canvas.Width))),
		int(math.Floor(p.Y * float64(rows) / float64(m.cfg.Canvas.Height)))
}

// line calls plot for every cell on the segment (x0,y0)-(x1,y1) (Bresenham).
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}

	if y0 > y1 {
		sy = -1
	}

	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}

		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}

		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
