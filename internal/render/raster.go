package render

import (
	"image"
	"image/color"
	"math"
	"sort"
	"strconv"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/geom"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/mesh"
)

// MeshOptions controls how one mesh is drawn.
type MeshOptions struct {
	// Color paints the whole mesh when Scalars is empty.
	Color color.RGBA
	// Opacity in (0,1]; the zero value draws opaque.
	Opacity float64
	// Scalars names a point data array to color by. Vector arrays are
	// colored by magnitude. A missing array falls back to Color.
	Scalars string
	// Cmap names the colormap used with Scalars.
	Cmap string
	// ShowEdges overlays the face edges in EdgeColor.
	ShowEdges bool
	EdgeColor color.RGBA
	// LineWidth is the pixel width of lines and edges; zero means 1.
	LineWidth float64
	// ScalarBar titles the scalar bar for this mesh; empty draws none.
	ScalarBar string
}

type item struct {
	m *mesh.PolyData
	o MeshOptions
}

type pane struct {
	cam   *Camera
	bg    color.RGBA
	texts []string
	items []item
}

func newPane() *pane {
	return &pane{cam: NewCamera(), bg: White}
}

func (pn *pane) reset() {
	pn.bg = White
	pn.texts = nil
	pn.items = nil
	pn.cam.Reset()
}

// Plotter renders meshes into a grid of panes, each with its own
// camera and background.
type Plotter struct {
	width, height int
	rows, cols    int
	panes         []*pane
	cur           *pane
}

// NewPlotter returns a plotter of the given pixel size divided into
// rows x cols panes, with the first pane active.
func NewPlotter(width, height, rows, cols int) *Plotter {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	p := &Plotter{width: width, height: height, rows: rows, cols: cols}
	for i := 0; i < rows*cols; i++ {
		p.panes = append(p.panes, newPane())
	}
	p.cur = p.panes[0]
	return p
}

// Size returns the output image size in pixels.
func (p *Plotter) Size() (w, h int) { return p.width, p.height }

// Subplot selects the active pane.
func (p *Plotter) Subplot(row, col int) {
	if row < 0 || row >= p.rows || col < 0 || col >= p.cols {
		return
	}
	p.cur = p.panes[row*p.cols+col]
}

// AddMesh queues a mesh for drawing in the active pane.
func (p *Plotter) AddMesh(m *mesh.PolyData, o MeshOptions) {
	if m == nil || len(m.Points) == 0 {
		return
	}
	p.cur.items = append(p.cur.items, item{m: m, o: o})
}

// AddText adds a caption line to the active pane.
func (p *Plotter) AddText(s string) {
	p.cur.texts = append(p.cur.texts, s)
}

// SetBackground sets the active pane's background color.
func (p *Plotter) SetBackground(c color.RGBA) { p.cur.bg = c }

// ViewIsometric restores the active pane's camera to the default
// isometric view.
func (p *Plotter) ViewIsometric() { p.cur.cam.Reset() }

// SetAzimuth orbits the active pane's camera about +Z.
func (p *Plotter) SetAzimuth(deg float64) { p.cur.cam.SetAzimuth(deg) }

// SetElevation tilts the active pane's camera.
func (p *Plotter) SetElevation(deg float64) { p.cur.cam.SetElevation(deg) }

// SetZoom scales the active pane's projection.
func (p *Plotter) SetZoom(z float64) { p.cur.cam.SetZoom(z) }

// ClearAll empties every pane and restores backgrounds and cameras.
func (p *Plotter) ClearAll() {
	for _, pn := range p.panes {
		pn.reset()
	}
	p.cur = p.panes[0]
}

// Render draws all panes and returns the composed frame.
func (p *Plotter) Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for i, pn := range p.panes {
		row, col := i/p.cols, i%p.cols
		x0 := col * p.width / p.cols
		x1 := (col + 1) * p.width / p.cols
		y0 := row * p.height / p.rows
		y1 := (row + 1) * p.height / p.rows
		p.renderPane(img, pn, x0, y0, x1-x0, y1-y0)
	}
	return img
}

type screenTri struct {
	x, y, z [3]float64
	c       [3]color.RGBA
	alpha   float64
	depth   float64
	order   int
}

type screenLine struct {
	x0, y0, z0 float64
	x1, y1, z1 float64
	c0, c1     color.RGBA
	alpha      float64
	width      int
}

type barInfo struct {
	title    string
	cmap     Colormap
	min, max float64
}

func (p *Plotter) renderPane(img *image.RGBA, pn *pane, x0, y0, vw, vh int) {
	fillRect(img, x0, y0, vw, vh, pn.bg)
	if vw <= 0 || vh <= 0 {
		return
	}

	bounds := geom.EmptyBox()
	for _, it := range pn.items {
		bounds = bounds.Union(it.m.Bounds())
	}
	pn.cam.Focus(bounds)
	bias := bounds.Diagonal() * 0.005

	zbuf := make([]float64, vw*vh)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}

	var trans []screenTri
	var lines []screenLine
	var bars []barInfo

	for order, it := range pn.items {
		px := make([]float64, len(it.m.Points))
		py := make([]float64, len(it.m.Points))
		pz := make([]float64, len(it.m.Points))
		for i, pt := range it.m.Points {
			px[i], py[i], pz[i] = pn.cam.Project(pt, vw, vh)
		}

		colors, clim, mapped := vertexColors(it.m, it.o)
		alpha := it.o.Opacity
		if alpha <= 0 || alpha > 1 {
			alpha = 1
		}
		width := int(it.o.LineWidth)
		if width < 1 {
			width = 1
		}

		if mapped && it.o.ScalarBar != "" {
			bars = append(bars, barInfo{title: it.o.ScalarBar, cmap: Map(it.o.Cmap), min: clim[0], max: clim[1]})
		}

		for _, tri := range it.m.Triangles() {
			st := screenTri{alpha: alpha, order: order}
			for k, vi := range tri {
				st.x[k], st.y[k], st.z[k] = px[vi], py[vi], pz[vi]
				st.c[k] = colors[vi]
			}
			st.depth = (st.z[0] + st.z[1] + st.z[2]) / 3
			if alpha >= 0.999 {
				rasterTri(img, zbuf, x0, y0, vw, vh, st, true)
			} else {
				trans = append(trans, st)
			}
		}

		for _, line := range it.m.Lines {
			for i := 1; i < len(line); i++ {
				a, b := line[i-1], line[i]
				lines = append(lines, screenLine{
					x0: px[a], y0: py[a], z0: pz[a] + bias,
					x1: px[b], y1: py[b], z1: pz[b] + bias,
					c0: colors[a], c1: colors[b],
					alpha: alpha, width: width,
				})
			}
		}

		if it.o.ShowEdges {
			for _, poly := range it.m.Polys {
				n := len(poly)
				if n < 2 {
					continue
				}
				for i := 0; i < n; i++ {
					a, b := poly[i], poly[(i+1)%n]
					lines = append(lines, screenLine{
						x0: px[a], y0: py[a], z0: pz[a] + bias,
						x1: px[b], y1: py[b], z1: pz[b] + bias,
						c0: it.o.EdgeColor, c1: it.o.EdgeColor,
						alpha: 1, width: width,
					})
				}
			}
		}
	}

	// far to near so blending stacks correctly
	sort.SliceStable(trans, func(i, j int) bool {
		if trans[i].depth != trans[j].depth {
			return trans[i].depth < trans[j].depth
		}
		return trans[i].order < trans[j].order
	})
	for _, st := range trans {
		rasterTri(img, zbuf, x0, y0, vw, vh, st, false)
	}

	for _, ln := range lines {
		drawLine3(img, zbuf, x0, y0, vw, vh, ln)
	}

	for k, b := range bars {
		drawScalarBar(img, x0, y0, vw, vh, k, b)
	}

	for k, s := range pn.texts {
		drawString(img, x0+10, y0+8+k*16, s, Black)
	}
}

// vertexColors resolves per-point colors for an item. mapped reports
// whether a scalar array drove the colors; clim is its value range.
func vertexColors(m *mesh.PolyData, o MeshOptions) (colors []color.RGBA, clim [2]float64, mapped bool) {
	colors = make([]color.RGBA, len(m.Points))

	var vals []float64
	if o.Scalars != "" {
		vals = m.Scalar(o.Scalars)
		if vals == nil {
			vals = m.VectorMagnitudes(o.Scalars)
		}
	}
	if vals == nil {
		for i := range colors {
			colors[i] = o.Color
		}
		return colors, clim, false
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > hi {
		lo, hi = 0, 0
	}
	clim = [2]float64{lo, hi}

	cm := Map(o.Cmap)
	span := hi - lo
	for i, v := range vals {
		t := 0.5
		if span > 1e-30 && !math.IsNaN(v) {
			t = (v - lo) / span
		}
		colors[i] = cm.At(t)
	}
	return colors, clim, true
}

func fillRect(img *image.RGBA, x0, y0, w, h int, c color.RGBA) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func blendPixel(img *image.RGBA, x, y int, c color.RGBA, alpha float64) {
	if alpha >= 0.999 {
		img.SetRGBA(x, y, c)
		return
	}
	dst := img.RGBAAt(x, y)
	img.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(c.R)*alpha + float64(dst.R)*(1-alpha) + 0.5),
		G: uint8(float64(c.G)*alpha + float64(dst.G)*(1-alpha) + 0.5),
		B: uint8(float64(c.B)*alpha + float64(dst.B)*(1-alpha) + 0.5),
		A: 255,
	})
}

// rasterTri scan-converts one triangle in pane-local coordinates,
// z-testing against zbuf and writing depth only for opaque triangles.
func rasterTri(img *image.RGBA, zbuf []float64, x0, y0, vw, vh int, st screenTri, writeDepth bool) {
	denom := (st.y[1]-st.y[2])*(st.x[0]-st.x[2]) + (st.x[2]-st.x[1])*(st.y[0]-st.y[2])
	if math.Abs(denom) < 1e-12 || math.IsNaN(denom) {
		return
	}

	minX := int(math.Floor(min3(st.x[0], st.x[1], st.x[2])))
	maxX := int(math.Ceil(max3(st.x[0], st.x[1], st.x[2])))
	minY := int(math.Floor(min3(st.y[0], st.y[1], st.y[2])))
	maxY := int(math.Ceil(max3(st.y[0], st.y[1], st.y[2])))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > vw-1 {
		maxX = vw - 1
	}
	if maxY > vh-1 {
		maxY = vh - 1
	}

	const inEps = -1e-6
	for py := minY; py <= maxY; py++ {
		fy := float64(py) + 0.5
		for px := minX; px <= maxX; px++ {
			fx := float64(px) + 0.5
			l0 := ((st.y[1]-st.y[2])*(fx-st.x[2]) + (st.x[2]-st.x[1])*(fy-st.y[2])) / denom
			l1 := ((st.y[2]-st.y[0])*(fx-st.x[2]) + (st.x[0]-st.x[2])*(fy-st.y[2])) / denom
			l2 := 1 - l0 - l1
			if l0 < inEps || l1 < inEps || l2 < inEps {
				continue
			}

			depth := l0*st.z[0] + l1*st.z[1] + l2*st.z[2]
			zi := py*vw + px
			if depth <= zbuf[zi] {
				continue
			}
			c := color.RGBA{
				R: uint8(l0*float64(st.c[0].R) + l1*float64(st.c[1].R) + l2*float64(st.c[2].R)),
				G: uint8(l0*float64(st.c[0].G) + l1*float64(st.c[1].G) + l2*float64(st.c[2].G)),
				B: uint8(l0*float64(st.c[0].B) + l1*float64(st.c[1].B) + l2*float64(st.c[2].B)),
				A: 255,
			}
			blendPixel(img, x0+px, y0+py, c, st.alpha)
			if writeDepth {
				zbuf[zi] = depth
			}
		}
	}
}

// drawLine3 draws a depth-tested line in pane-local coordinates.
func drawLine3(img *image.RGBA, zbuf []float64, x0, y0, vw, vh int, ln screenLine) {
	dx := ln.x1 - ln.x0
	dy := ln.y1 - ln.y0
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps < 1 {
		steps = 1
	}
	if math.IsNaN(dx) || math.IsNaN(dy) || steps > 1<<16 {
		return
	}
	r := ln.width / 2

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		fx := ln.x0 + dx*t
		fy := ln.y0 + dy*t
		depth := ln.z0 + (ln.z1-ln.z0)*t
		c := color.RGBA{
			R: uint8(float64(ln.c0.R) + (float64(ln.c1.R)-float64(ln.c0.R))*t),
			G: uint8(float64(ln.c0.G) + (float64(ln.c1.G)-float64(ln.c0.G))*t),
			B: uint8(float64(ln.c0.B) + (float64(ln.c1.B)-float64(ln.c0.B))*t),
			A: 255,
		}
		for oy := -r; oy <= r; oy++ {
			for ox := -r; ox <= r; ox++ {
				px := int(fx) + ox
				py := int(fy) + oy
				if px < 0 || px >= vw || py < 0 || py >= vh {
					continue
				}
				if depth <= zbuf[py*vw+px] {
					continue
				}
				blendPixel(img, x0+px, y0+py, c, ln.alpha)
			}
		}
	}
}

func drawScalarBar(img *image.RGBA, x0, y0, vw, vh, k int, b barInfo) {
	bw := 14
	bh := vh * 35 / 100
	if bh < 20 {
		bh = 20
	}
	bx := x0 + vw - bw - 60
	by := y0 + 28 + k*(bh+44)
	if by+bh > y0+vh-4 || bx < x0 {
		return
	}

	for yy := 0; yy < bh; yy++ {
		t := 1 - float64(yy)/float64(bh-1)
		c := b.cmap.At(t)
		for xx := 0; xx < bw; xx++ {
			img.SetRGBA(bx+xx, by+yy, c)
		}
	}

	tx := bx + bw/2 - stringWidth(b.title)/2
	if tx < x0+2 {
		tx = x0 + 2
	}
	drawString(img, tx, by-18, b.title, Black)
	drawString(img, bx+bw+4, by-6, formatTick(b.max), Black)
	drawString(img, bx+bw+4, by+bh-7, formatTick(b.min), Black)
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 3, 64)
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
