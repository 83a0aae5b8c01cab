package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/qnet/internal/graph"
	"github.com/san-kum/qnet/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// LitThreshold is the intensity a dot needs to be drawn.
const LitThreshold = 0.12

type dot struct {
	level float64
	color render.RGBA
}

type glyph struct {
	r     rune
	level float64
	color render.RGBA
}

// BrailleSurface is a render.Surface that maps a logical pixel plane onto
// a grid of braille cells. Each dot keeps an intensity so fades leave
// trails the way they do on a real canvas.
type BrailleSurface struct {
	Width, Height int

	logicalW, logicalH int
	dots               []dot
	glyphs             []glyph
	err                error
}

// NewBrailleSurface creates a surface of cols x rows cells that accepts
// drawing in a logicalW x logicalH coordinate space.
func NewBrailleSurface(cols, rows, logicalW, logicalH int) *BrailleSurface {
	c := &BrailleSurface{logicalW: logicalW, logicalH: logicalH}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell grid and clears it. The logical size is kept.
func (c *BrailleSurface) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c.Width, c.Height = cols, rows
	c.dots = make([]dot, cols*2*rows*4)
	c.glyphs = make([]glyph, cols*rows)
}

func (c *BrailleSurface) Size() (int, int) { return c.logicalW, c.logicalH }
func (c *BrailleSurface) Err() error       { return c.err }

// Release drops the buffers; later draws record render.ErrSurfaceReleased.
func (c *BrailleSurface) Release() {
	c.dots, c.glyphs = nil, nil
	c.err = render.ErrSurfaceReleased
}

// Clear resets the canvas
func (c *BrailleSurface) Clear() {
	for i := range c.dots {
		c.dots[i] = dot{}
	}
	for i := range c.glyphs {
		c.glyphs[i] = glyph{}
	}
}

func (c *BrailleSurface) live() bool {
	if c.dots == nil {
		if c.err == nil {
			c.err = render.ErrSurfaceReleased
		}
		return false
	}
	return true
}

func (c *BrailleSurface) scale() (float64, float64) {
	return float64(c.Width*2) / float64(c.logicalW), float64(c.Height*4) / float64(c.logicalH)
}

func (c *BrailleSurface) toDot(p graph.Vec2) (int, int) {
	sx, sy := c.scale()
	return int(math.Floor(p.X * sx)), int(math.Floor(p.Y * sy))
}

// set lights the dot at (x, y) in dot coordinates. The grid is
// (Width*2) x (Height*4) dots.
func (c *BrailleSurface) set(x, y int, level float64, col render.RGBA) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return
	}
	d := &c.dots[y*c.Width*2+x]
	if level >= d.level {
		d.level = level
		d.color = col
		return
	}
	d.level += level * (1 - d.level)
}

// FillRect composites fill over the covered dots. A black fill at alpha a
// scales every dot and label by 1-a.
func (c *BrailleSurface) FillRect(x, y, w, h float64, fill render.RGBA) {
	if !c.live() {
		return
	}
	a := clamp01(fill.A)
	x0, y0 := c.toDot(graph.Vec2{X: x, Y: y})
	x1, y1 := c.toDot(graph.Vec2{X: x + w, Y: y + h})
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.Width*2), min(y1, c.Height*4)
	lum := luma(fill)
	for dy := y0; dy < y1; dy++ {
		for dx := x0; dx < x1; dx++ {
			d := &c.dots[dy*c.Width*2+dx]
			d.level = d.level*(1-a) + lum*a
			d.color = d.color.Lerp(fill, a)
		}
	}
	for row := y0 / 4; row < (y1+3)/4 && row < c.Height; row++ {
		for col := x0 / 2; col < (x1+1)/2 && col < c.Width; col++ {
			g := &c.glyphs[row*c.Width+col]
			g.level *= 1 - a
			if g.level < LitThreshold {
				*g = glyph{}
			}
		}
	}
}

// StrokeLine draws a line using Bresenham's algorithm, coloring each dot
// by its position along the gradient. The dash pattern is applied in
// logical pixels.
func (c *BrailleSurface) StrokeLine(a, b graph.Vec2, ca, cb render.RGBA, s render.Stroke) {
	if !c.live() {
		return
	}
	x0, y0 := c.toDot(a)
	x1, y1 := c.toDot(b)
	length := a.Dist(b)

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	steps := max(dx, dy)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		if s.On(t * length) {
			col := ca.Lerp(cb, t)
			c.set(x0, y0, clamp01(col.A), col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillDisc lights the dots inside radius with intensity falling off from
// inner at the center to outer at the rim.
func (c *BrailleSurface) FillDisc(center graph.Vec2, radius float64, inner, outer render.RGBA) {
	if !c.live() || radius <= 0 {
		return
	}
	sx, sy := c.scale()
	cx, cy := center.X*sx, center.Y*sy
	rx, ry := math.Max(radius*sx, 0.5), math.Max(radius*sy, 0.5)
	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
			nx, ny := (float64(x)+0.5-cx)/rx, (float64(y)+0.5-cy)/ry
			t := math.Hypot(nx, ny)
			if t > 1 {
				continue
			}
			col := inner.Lerp(outer, t)
			c.set(x, y, clamp01(col.A), col)
		}
	}
	// Discs smaller than one dot still mark the cell they sit in.
	c.set(int(cx), int(cy), clamp01(inner.A), inner)
}

// FillText writes text into the cell row containing at, centered on it.
// Labels share the fade of the dots beneath them.
func (c *BrailleSurface) FillText(text string, at graph.Vec2, col render.RGBA) {
	if !c.live() {
		return
	}
	x, y := c.toDot(at)
	row := y / 4
	if y < 0 || row >= c.Height {
		return
	}
	runes := []rune(text)
	start := x/2 - len(runes)/2
	for i, r := range runes {
		cell := start + i
		if cell < 0 || cell >= c.Width {
			continue
		}
		c.glyphs[row*c.Width+cell] = glyph{r: r, level: clamp01(col.A), color: col}
	}
}

// Lit returns the number of dots at or above LitThreshold.
func (c *BrailleSurface) Lit() int {
	n := 0
	for _, d := range c.dots {
		if d.level >= LitThreshold {
			n++
		}
	}
	return n
}

// Cell returns the rune and color shown at a cell.
func (c *BrailleSurface) Cell(col, row int) (rune, render.RGBA) {
	if c.dots == nil || col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return blank, render.RGBA{}
	}
	if g := c.glyphs[row*c.Width+col]; g.r != 0 {
		return g.r, g.color
	}
	r := rune(blank)
	var best dot
	for subY := 0; subY < 4; subY++ {
		for subX := 0; subX < 2; subX++ {
			d := c.dots[(row*4+subY)*c.Width*2+col*2+subX]
			if d.level < LitThreshold {
				continue
			}
			r |= rune(pixelMap[subY][subX])
			if d.level > best.level {
				best = d
			}
		}
	}
	return r, best.color
}

// Plain renders the grid without color, one line per row.
func (c *BrailleSurface) Plain() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, _ := c.Cell(col, row)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the grid with each run of equally colored cells wrapped
// in one lipgloss style.
func (c *BrailleSurface) String() string {
	var b strings.Builder
	var run strings.Builder
	for row := 0; row < c.Height; row++ {
		current := ""
		for col := 0; col < c.Width; col++ {
			r, rgba := c.Cell(col, row)
			hex := ""
			if r != blank {
				hex = hexColor(int(rgba.R), int(rgba.G), int(rgba.B))
			}
			if hex != current {
				flush(&b, &run, current)
				current = hex
			}
			run.WriteRune(r)
		}
		flush(&b, &run, current)
		b.WriteByte('\n')
	}
	return b.String()
}

func flush(b, run *strings.Builder, hex string) {
	if run.Len() == 0 {
		return
	}
	if hex == "" {
		b.WriteString(run.String())
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(run.String()))
	}
	run.Reset()
}

func luma(c render.RGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
