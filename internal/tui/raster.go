package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iburimskiy/fireworks/internal/fireworks"
)

type rgb struct{ r, g, b float64 }

// Raster is a small RGB framebuffer. Each terminal cell shows two stacked
// pixels, so a raster for cols x rows cells is cols x 2*rows pixels.
type Raster struct {
	w, h int
	px   []rgb
}

func NewRaster(cols, rows int) *Raster {
	r := &Raster{}
	r.Resize(cols, rows)
	return r
}

// Resize reallocates the buffer for cols x rows cells. Content is dropped.
func (r *Raster) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	r.w, r.h = cols, rows*2
	r.px = make([]rgb, r.w*r.h)
}

func (r *Raster) Size() (int, int) { return r.w, r.h }

func (r *Raster) Clear() {
	clear(r.px)
}

// Fade blends black over the whole buffer with the given alpha.
func (r *Raster) Fade(alpha float64) {
	k := 1 - alpha
	for i := range r.px {
		r.px[i].r *= k
		r.px[i].g *= k
		r.px[i].b *= k
	}
}

// Plot blends c over the pixel at (x, y). Points outside are dropped.
func (r *Raster) Plot(x, y int, c fireworks.Color, alpha float64) {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return
	}
	p := &r.px[y*r.w+x]
	p.r += (float64(c.R) - p.r) * alpha
	p.g += (float64(c.G) - p.g) * alpha
	p.b += (float64(c.B) - p.b) * alpha
}

// VLine plots a vertical run from y0 to y1 inclusive.
func (r *Raster) VLine(x, y0, y1 int, c fireworks.Color, alpha float64) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		r.Plot(x, y, c, alpha)
	}
}

func (r *Raster) At(x, y int) fireworks.Color {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return fireworks.Color{}
	}
	p := r.px[y*r.w+x]
	return fireworks.Color{R: to8(p.r), G: to8(p.g), B: to8(p.b)}
}

// Render draws every cell as an upper half block with the top pixel as
// foreground and the bottom pixel as background.
func (r *Raster) Render() string {
	var sb strings.Builder
	rows := r.h / 2
	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < r.w; x++ {
			top, bottom := r.At(x, row*2), r.At(x, row*2+1)
			sb.WriteString(cell(top, bottom))
		}
	}
	return sb.String()
}

var black = fireworks.Color{}

func cell(top, bottom fireworks.Color) string {
	if top == black && bottom == black {
		return " "
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(top.Hex())).
		Background(lipgloss.Color(bottom.Hex())).
		Render("▀")
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
