package metrics

import (
	"math"

	"github.com/san-kum/qnet/internal/graph"
)

// MeanStrength averages entity strength over every frame observed since the
// last reset. Chip epochs carry no strength and are skipped.
type MeanStrength struct {
	name    string
	samples int
	total   float64
}

func NewMeanStrength() *MeanStrength {
	return &MeanStrength{name: "mean_strength"}
}

func (m *MeanStrength) Name() string { return m.name }

func (m *MeanStrength) Observe(e *graph.Epoch) {
	if e.Variant != graph.Network || e.Len() == 0 {
		return
	}
	sum := 0.0
	for _, ent := range e.Entities {
		sum += ent.Strength
	}
	m.total += sum / float64(e.Len())
	m.samples++
}

func (m *MeanStrength) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanStrength) Reset() {
	m.total = 0
	m.samples = 0
}

// Spread is the mean distance of entities from the bounds center, averaged
// over observed frames. It grows when chip entities wander off-canvas.
type Spread struct {
	name    string
	samples int
	total   float64
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (m *Spread) Name() string { return m.name }

func (m *Spread) Observe(e *graph.Epoch) {
	if e.Len() == 0 {
		return
	}
	c := e.Bounds.Center()
	sum := 0.0
	for _, ent := range e.Entities {
		sum += ent.Pos.Dist(c)
	}
	m.total += sum / float64(e.Len())
	m.samples++
}

func (m *Spread) Value() float64 {
	if m.samples == 0 {
		return math.NaN()
	}
	return m.total / float64(m.samples)
}

func (m *Spread) Reset() {
	m.total = 0
	m.samples = 0
}
