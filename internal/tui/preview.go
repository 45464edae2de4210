// Package tui is the terminal preview: a braille-canvas wireframe of
// the combined bike surface spinning through the movie's camera sweep.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/anim"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/foam"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/render"
)

const (
	canvasCols = 70
	canvasRows = 22

	// maxEdges caps how much of the surface the preview traces per
	// frame; beyond it polygons are strided over.
	maxEdges = 4000
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(34)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(8)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

type edge struct {
	a, b geom.Vec3
}

// Model holds the decimated wireframe and playback state.
type Model struct {
	edges   []edge
	total   int
	parts   int
	angles  []float64
	idx     int
	fps     int
	zoom    float64
	running bool
	canvas  *Canvas
	camera  *render.Camera
}

// NewModel builds the preview for a loaded case, spinning it through
// the same angle sequence a frames-long movie would render.
func NewModel(c *foam.Case, fps, frames int) Model {
	if fps <= 0 {
		fps = 20
	}
	angles := anim.Angles(frames)
	if len(angles) == 0 {
		angles = anim.Angles(120)
	}

	m := Model{
		parts:   len(c.GoodParts()),
		angles:  angles,
		fps:     fps,
		zoom:    1,
		running: true,
		canvas:  NewCanvas(canvasCols, canvasRows),
		camera:  render.NewCamera(),
	}

	surface := c.Surface
	for _, poly := range surface.Polys {
		m.total += len(poly)
	}
	stride := 1
	if m.total > maxEdges {
		stride = (m.total + maxEdges - 1) / maxEdges
	}
	for pi, poly := range surface.Polys {
		if pi%stride != 0 {
			continue
		}
		for j := range poly {
			k := (j + 1) % len(poly)
			m.edges = append(m.edges, edge{surface.Points[poly[j]], surface.Points[poly[k]]})
		}
	}

	m.camera.Focus(surface.Bounds())
	m.camera.SetElevation(25)
	return m
}

// Run opens the preview and blocks until the user quits.
func Run(c *foam.Case, fps, frames int) error {
	p := tea.NewProgram(NewModel(c, fps, frames), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.zoom = math.Min(10, m.zoom*1.2)
		case "-", "_":
			m.zoom = math.Max(0.1, m.zoom/1.2)
		case "right", "l":
			m.idx = (m.idx + 1) % len(m.angles)
		case "left", "h":
			m.idx--
			if m.idx < 0 {
				m.idx = len(m.angles) - 1
			}
		case "r":
			m.idx, m.zoom = 0, 1
		}
	case TickMsg:
		if m.running {
			m.idx = (m.idx + 1) % len(m.angles)
		}
		return m, m.tick()
	}
	return m, nil
}

// draw projects the wireframe at the current angle onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	m.camera.SetAzimuth(m.angles[m.idx])
	m.camera.SetZoom(m.zoom)

	w, h := m.canvas.Width*2, m.canvas.Height*4
	for _, e := range m.edges {
		x1, y1, _ := m.camera.Project(e.a, w, h)
		x2, y2, _ := m.camera.Project(e.b, w, h)
		if offscreen(x1, y1, w, h) && offscreen(x2, y2, w, h) {
			continue
		}
		m.canvas.DrawLine(int(x1), int(y1), int(x2), int(y2))
	}
}

// offscreen is generous by half a canvas so lines crossing the view
// still draw.
func offscreen(x, y float64, w, h int) bool {
	return x < float64(-w/2) || x > float64(w+w/2) ||
		y < float64(-h/2) || y > float64(h+h/2)
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	status := "SPINNING"
	if !m.running {
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("MOTORBIKE PREVIEW") + "\n")
	s.WriteString(status + "\n\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d/%d", m.idx+1, len(m.angles))) + "\n")
	s.WriteString(labelStyle.Render("Angle") + valueStyle.Render(fmt.Sprintf("%.1f deg", m.angles[m.idx])) + "\n")
	s.WriteString(labelStyle.Render("Parts") + valueStyle.Render(fmt.Sprintf("%d", m.parts)) + "\n")
	s.WriteString(labelStyle.Render("Edges") + valueStyle.Render(fmt.Sprintf("%d of %d", len(m.edges), m.total)) + "\n")
	s.WriteString(labelStyle.Render("Zoom") + valueStyle.Render(fmt.Sprintf("%.1fx", m.zoom)) + "\n")
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause  ←/→:Scrub\n+/-:Zoom  R:Reset  Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
