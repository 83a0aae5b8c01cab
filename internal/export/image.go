package export

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
)

// ErrNoFrames is returned when encoding an empty recording.
var ErrNoFrames = errors.New("export: no frames captured")

func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// GIFRecorder collects frames and encodes them as a looping animation.
type GIFRecorder struct {
	// Delay between frames in 100ths of a second.
	Delay  int
	frames []*image.Paletted
}

func NewGIFRecorder(fps int) *GIFRecorder {
	delay := 2
	if fps > 0 {
		delay = max(1, 100/fps)
	}
	return &GIFRecorder{Delay: delay}
}

// Capture quantizes img to the Plan 9 palette and appends it.
func (g *GIFRecorder) Capture(img image.Image) {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	g.frames = append(g.frames, p)
}

func (g *GIFRecorder) Len() int { return len(g.frames) }

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.Delay)
	}
	return gif.EncodeAll(w, &anim)
}
