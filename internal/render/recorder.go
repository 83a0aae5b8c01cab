package render

import "github.com/san-kum/qnet/internal/graph"

type OpKind int

const (
	OpRect OpKind = iota
	OpLine
	OpDisc
	OpText
)

type Op struct {
	Kind   OpKind
	A, B   graph.Vec2
	Radius float64
	Colors [2]RGBA
	Stroke Stroke
	Text   string
}

// Recorder is a Surface that keeps every draw call in memory.
type Recorder struct {
	W, H     int
	Ops      []Op
	released bool
	err      error
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) FillRect(x, y, w, h float64, c RGBA) {
	r.record(Op{Kind: OpRect, A: graph.Vec2{X: x, Y: y}, B: graph.Vec2{X: x + w, Y: y + h}, Colors: [2]RGBA{c, c}})
}

func (r *Recorder) StrokeLine(a, b graph.Vec2, ca, cb RGBA, s Stroke) {
	r.record(Op{Kind: OpLine, A: a, B: b, Colors: [2]RGBA{ca, cb}, Stroke: s})
}

func (r *Recorder) FillDisc(center graph.Vec2, radius float64, inner, outer RGBA) {
	r.record(Op{Kind: OpDisc, A: center, Radius: radius, Colors: [2]RGBA{inner, outer}})
}

func (r *Recorder) FillText(text string, at graph.Vec2, c RGBA) {
	r.record(Op{Kind: OpText, A: at, Colors: [2]RGBA{c, c}, Text: text})
}

func (r *Recorder) Err() error { return r.err }

// Release simulates a destroyed surface: later draws fail.
func (r *Recorder) Release() { r.released = true }

func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

func (r *Recorder) record(op Op) {
	if r.released {
		if r.err == nil {
			r.err = ErrSurfaceReleased
		}
		return
	}
	r.Ops = append(r.Ops, op)
}
