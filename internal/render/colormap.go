package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colormap maps a normalized value in [0,1] to a color. Values outside
// the range are clamped.
type Colormap struct {
	name  string
	stops []colorful.Color
	hue   bool // rainbow-style hue sweep instead of stop blending
}

// Name returns the colormap name.
func (m Colormap) Name() string { return m.name }

// At returns the color for t in [0,1].
func (m Colormap) At(t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if m.hue {
		c := colorful.Hsv(270*(1-t), 1, 1)
		r, g, b := c.Clamped().RGB255()
		return color.RGBA{r, g, b, 255}
	}
	n := len(m.stops)
	if n == 0 {
		return Black
	}
	if n == 1 {
		r, g, b := m.stops[0].RGB255()
		return color.RGBA{r, g, b, 255}
	}
	pos := t * float64(n-1)
	i := int(pos)
	if i >= n-1 {
		i = n - 2
	}
	c := m.stops[i].BlendRgb(m.stops[i+1], pos-float64(i)).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("render: bad colormap stop " + s)
	}
	return c
}

func stops(hexes ...string) []colorful.Color {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		out[i] = mustHex(h)
	}
	return out
}

var colormaps = map[string]Colormap{
	"viridis": {name: "viridis", stops: stops(
		"#440154", "#414487", "#2a788e", "#22a884", "#7ad151", "#fde725")},
	"plasma": {name: "plasma", stops: stops(
		"#0d0887", "#6a00a8", "#b12a90", "#e16462", "#fca636", "#f0f921")},
	"jet": {name: "jet", stops: stops(
		"#00007f", "#0000ff", "#00ffff", "#ffff00", "#ff0000", "#7f0000")},
	"coolwarm": {name: "coolwarm", stops: stops(
		"#3b4cc0", "#8db0fe", "#dddddd", "#f49a7b", "#b40426")},
	"RdBu": {name: "RdBu", stops: stops(
		"#67001f", "#d6604d", "#f7f7f7", "#4393c3", "#053061")},
	"turbo": {name: "turbo", stops: stops(
		"#30123b", "#28bceb", "#a4fc3c", "#fb7e21", "#7a0403")},
	"hot": {name: "hot", stops: stops(
		"#000000", "#e60000", "#ffb400", "#ffffff")},
	"rainbow": {name: "rainbow", hue: true},
}

// Map returns the named colormap, falling back to viridis for unknown
// names.
func Map(name string) Colormap {
	if m, ok := colormaps[name]; ok {
		return m
	}
	return colormaps["viridis"]
}
