// Package raster implements render.Surface over an in-memory RGBA image.
//
// The image is kept opaque: it starts black and every draw is composited
// source-over onto it, so a translucent fade leaves exponentially decaying
// trails. Chip labels use the 7x13 bitmap face from x/image.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/san-kum/qnet/internal/graph"
	"github.com/san-kum/qnet/internal/render"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

type Surface struct {
	img  *image.RGBA
	w, h int
	face font.Face
	err  error
}

func New(w, h int) *Surface {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return &Surface{img: img, w: w, h: h, face: basicfont.Face7x13}
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

// Image exposes the backing image. It is nil after Release.
func (s *Surface) Image() *image.RGBA { return s.img }

// Snapshot copies the current frame.
func (s *Surface) Snapshot() *image.RGBA {
	if s.img == nil {
		return nil
	}
	c := image.NewRGBA(s.img.Bounds())
	copy(c.Pix, s.img.Pix)
	return c
}

// Release drops the backing image. Later draws fail with
// render.ErrSurfaceReleased.
func (s *Surface) Release() { s.img = nil }

func (s *Surface) Err() error { return s.err }

func (s *Surface) FillRect(x, y, w, h float64, c render.RGBA) {
	if !s.usable() {
		return
	}
	r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	draw.Draw(s.img, r, image.NewUniform(nrgba(c)), image.Point{}, draw.Over)
}

// StrokeLine walks the major axis once, covering the stroke's cross-section
// at each step, so every pixel is composited at most once per line.
func (s *Surface) StrokeLine(a, b graph.Vec2, ca, cb render.RGBA, st render.Stroke) {
	if !s.usable() {
		return
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	half := math.Max(st.Width/2, 0.5)
	steep := math.Abs(dy) > math.Abs(dx)
	if steep {
		a.X, a.Y = a.Y, a.X
		b.X, b.Y = b.Y, b.X
		dx, dy = dy, dx
	}
	flipped := a.X > b.X
	if flipped {
		a, b = b, a
		dx, dy = -dx, -dy
	}

	slope := dy / dx
	thick := half * math.Sqrt(1+slope*slope)
	x0, x1 := int(math.Round(a.X)), int(math.Round(b.X))
	for x := x0; x <= x1; x++ {
		t := clamp01((float64(x) - a.X) / dx)
		along := t
		if flipped {
			along = 1 - t
		}
		if !st.On(along*length) {
			continue
		}
		c := ca.Lerp(cb, along)
		cy := a.Y + (float64(x)-a.X)*slope
		y0, y1 := int(math.Round(cy-thick)), int(math.Round(cy+thick))
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for y := y0; y < y1; y++ {
			if steep {
				s.blend(y, x, c)
			} else {
				s.blend(x, y, c)
			}
		}
	}
}

func (s *Surface) FillDisc(center graph.Vec2, radius float64, inner, outer render.RGBA) {
	if !s.usable() || radius <= 0 {
		return
	}
	minX, maxX := int(math.Floor(center.X-radius)), int(math.Ceil(center.X+radius))
	minY, maxY := int(math.Floor(center.Y-radius)), int(math.Ceil(center.Y+radius))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d := math.Hypot(float64(x)+0.5-center.X, float64(y)+0.5-center.Y)
			if d > radius {
				continue
			}
			s.blend(x, y, inner.Lerp(outer, d/radius))
		}
	}
}

func (s *Surface) FillText(text string, at graph.Vec2, c render.RGBA) {
	if !s.usable() {
		return
	}
	width := font.MeasureString(s.face, text).Round()
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(nrgba(c)),
		Face: s.face,
		Dot:  fixed.P(int(math.Round(at.X))-width/2, int(math.Round(at.Y))),
	}
	d.DrawString(text)
}

func (s *Surface) usable() bool {
	if s.img != nil {
		return true
	}
	if s.err == nil {
		s.err = render.ErrSurfaceReleased
	}
	return false
}

// blend composites c over the opaque pixel at (x, y).
func (s *Surface) blend(x, y int, c render.RGBA) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h || c.A <= 0 {
		return
	}
	a := math.Min(c.A, 1)
	i := s.img.PixOffset(x, y)
	p := s.img.Pix[i : i+4 : i+4]
	p[0] = mix(p[0], c.R, a)
	p[1] = mix(p[1], c.G, a)
	p[2] = mix(p[2], c.B, a)
	p[3] = 0xff
}

func mix(dst, src uint8, a float64) uint8 {
	return uint8(float64(src)*a + float64(dst)*(1-a) + 0.5)
}

func nrgba(c render.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(clamp01(c.A) * 255))}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
