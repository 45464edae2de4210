package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/foam"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/mesh"
)

// HUD Colors
var (
	colTitle   = rl.NewColor(60, 60, 60, 255)    // Charcoal
	colText    = rl.NewColor(100, 100, 100, 255) // Neutral Gray
	colTextDim = rl.NewColor(150, 150, 150, 255) // Light Gray
)

type partView struct {
	name   string
	mesh   *mesh.PolyData
	center geom.Vec3
	verts  []rl.Vector3
	tris   [][3]int
	fill   rl.Color
}

type App struct {
	Mode      Mode
	ShowEdges bool

	parts  []partView
	global geom.Vec3 // mean of part centers, explosion origin
	bounds geom.Box3
	camera rl.Camera3D

	azimuth   float64 // degrees about +Z
	elevation float64 // degrees above the horizon
	distance  float64
	quit      bool
}

func initWindow() {
	rl.InitWindow(1280, 720, "foamviz")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// NewApp prepares the viewer state for the loaded case: per-part
// triangle lists, the explosion origin and the mode's camera.
func NewApp(c *foam.Case, mode Mode) *App {
	good := c.GoodParts()
	app := &App{
		ShowEdges: true,
		parts:     make([]partView, 0, len(good)),
	}

	var sum geom.Vec3
	for _, p := range good {
		pv := partView{
			name:   p.Name,
			mesh:   p.Mesh,
			center: p.Mesh.Center(),
			tris:   p.Mesh.Triangles(),
		}
		sum = sum.Add(pv.center)
		app.parts = append(app.parts, pv)
	}
	if len(app.parts) > 0 {
		app.global = sum.Scale(1 / float64(len(app.parts)))
	}

	app.SetMode(mode)
	return app
}

// Run opens the viewer window for the loaded case and blocks until the
// window is closed.
func Run(c *foam.Case, mode Mode) {
	initWindow()
	defer rl.CloseWindow()
	rl.DisableBackfaceCulling()

	app := NewApp(c, mode)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

// SetMode restyles the parts and resets the camera for the mode.
func (a *App) SetMode(m Mode) {
	a.Mode = m
	s := m.settings()

	offsets := make([]geom.Vec3, len(a.parts))
	if m == ModeExploded {
		centers := make([]geom.Vec3, len(a.parts))
		for i, p := range a.parts {
			centers[i] = p.center
		}
		offsets = mesh.ExplodeOffsets(centers, a.global, explodeFactor)
	}

	bounds := geom.EmptyBox()
	for i := range a.parts {
		p := &a.parts[i]
		p.fill = rl.Fade(m.fill(i), s.opacity)
		p.verts = p.verts[:0]
		for _, v := range p.mesh.Points {
			w := v.Add(offsets[i])
			p.verts = append(p.verts, rl.NewVector3(float32(w.X), float32(w.Y), float32(w.Z)))
			bounds = bounds.Expand(w)
		}
	}
	a.bounds = bounds
	a.resetCamera()
}

func (a *App) resetCamera() {
	s := a.Mode.settings()
	a.azimuth = s.azimuth
	a.elevation = s.elevation
	a.distance = a.bounds.Diagonal() * 1.5 / s.zoom
	if a.distance == 0 {
		a.distance = 10
	}
	a.updateCamera()
}

func (a *App) updateCamera() {
	az := a.azimuth * math.Pi / 180
	el := a.elevation * math.Pi / 180

	center := a.bounds.Center()
	dir := geom.Vec3{
		X: math.Cos(el) * math.Cos(az),
		Y: math.Cos(el) * math.Sin(az),
		Z: math.Sin(el),
	}
	eye := center.Add(dir.Scale(a.distance))

	a.camera = rl.NewCamera3D(
		rl.NewVector3(float32(eye.X), float32(eye.Y), float32(eye.Z)),
		rl.NewVector3(float32(center.X), float32(center.Y), float32(center.Z)),
		rl.NewVector3(0, 0, 1),
		45.0,
		rl.CameraPerspective,
	)
}

func (a *App) Update() {
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
		return
	case rl.IsKeyPressed(rl.KeyOne):
		a.SetMode(ModeSimple)
	case rl.IsKeyPressed(rl.KeyTwo):
		a.SetMode(ModeDetailed)
	case rl.IsKeyPressed(rl.KeyThree):
		a.SetMode(ModeExploded)
	case rl.IsKeyPressed(rl.KeyE):
		a.ShowEdges = !a.ShowEdges
	case rl.IsKeyPressed(rl.KeyR):
		a.resetCamera()
	}

	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		a.azimuth -= float64(delta.X) * 0.4
		a.elevation += float64(delta.Y) * 0.3
		if a.elevation > 89 {
			a.elevation = 89
		}
		if a.elevation < -89 {
			a.elevation = -89
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.distance *= 1 - float64(wheel)*0.1
		diag := a.bounds.Diagonal()
		if diag > 0 {
			if a.distance < diag*0.2 {
				a.distance = diag * 0.2
			}
			if a.distance > diag*10 {
				a.distance = diag * 10
			}
		}
	}

	a.updateCamera()
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.Mode.settings().background)

	rl.BeginMode3D(a.camera)
	a.drawParts()
	if a.ShowEdges {
		a.drawEdges()
	}
	rl.EndMode3D()

	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawHUD() {
	rl.DrawText("foamviz", 20, 20, 24, colTitle)
	rl.DrawText(fmt.Sprintf(":: %s view", a.Mode), 130, 26, 16, colText)
	rl.DrawText(fmt.Sprintf("%d parts", len(a.parts)), 20, 52, 14, colTextDim)

	edges := "ON"
	if !a.ShowEdges {
		edges = "OFF"
	}
	rl.DrawText(fmt.Sprintf("EDGES %s", edges), 20, 70, 14, colTextDim)

	rl.DrawText("[DRAG] ORBIT  [WHEEL] ZOOM  [1/2/3] MODE  [E] EDGES  [R] RESET  [Q] QUIT", 540, 690, 14, colTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 20, 690, 14, colTextDim)
}
