package render

import (
	"errors"
	"math"

	"github.com/san-kum/qnet/internal/graph"
)

// ErrSurfaceReleased is reported by a surface whose backing store is gone.
var ErrSurfaceReleased = errors.New("render: surface released")

// RGBA is a straight (non-premultiplied) color with a fractional alpha.
type RGBA struct {
	R, G, B uint8
	A       float64
}

func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// Lerp interpolates channel-wise between c and o.
func (c RGBA) Lerp(o RGBA, t float64) RGBA {
	return RGBA{
		R: lerp8(c.R, o.R, t),
		G: lerp8(c.G, o.G, t),
		B: lerp8(c.B, o.B, t),
		A: c.A + (o.A-c.A)*t,
	}
}

type Stroke struct {
	Width float64
	// Dash alternates on/off lengths in pixels; nil strokes solid.
	Dash []float64
}

// On reports whether the point dist pixels along the line is inked.
func (s Stroke) On(dist float64) bool {
	if len(s.Dash) == 0 {
		return true
	}
	period := 0.0
	for _, d := range s.Dash {
		period += d
	}
	if period <= 0 {
		return true
	}
	pos := math.Mod(dist, period)
	for i, d := range s.Dash {
		if pos < d {
			return i%2 == 0
		}
		pos -= d
	}
	return true
}

// Surface is the drawable target of a frame. Draw calls never return
// errors; a surface that fails keeps the first error and reports it from
// Err, the way csv.Writer does.
type Surface interface {
	Size() (w, h int)
	FillRect(x, y, w, h float64, c RGBA)
	// StrokeLine draws from a to b with a linear gradient from ca to cb.
	StrokeLine(a, b graph.Vec2, ca, cb RGBA, s Stroke)
	// FillDisc fills a radial gradient: inner at center, outer at radius.
	FillDisc(center graph.Vec2, radius float64, inner, outer RGBA)
	// FillText draws text horizontally centered on at.
	FillText(text string, at graph.Vec2, c RGBA)
	Err() error
}

func lerp8(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
