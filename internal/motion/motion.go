// Package motion advances entity positions between frames with small
// bounded random steps.
package motion

import (
	"math"
	"math/rand"

	"github.com/san-kum/qnet/internal/graph"
)

const (
	// MinScale is the floor of the adaptive network step scale.
	MinScale = 0.1
	// ScaleHorizon is the entity count at which the adaptive scale would
	// reach zero before the floor applies.
	ScaleHorizon = 10000.0

	StrengthDrift = 0.1
	MinStrength   = 0.2
	MaxStrength   = 1.0
)

type Integrator interface {
	Advance(e *graph.Epoch)
}

// Jitter moves each entity by an independent uniform delta in
// [-0.5, 0.5]×scale per axis.
type Jitter struct {
	// Scale is the fixed step scale, ignored when Adaptive is set.
	Scale    float64
	Adaptive bool
	// Clamp pulls entities back onto the epoch bounds after each step.
	Clamp bool
	// Drift is the width of the per-frame strength step; zero disables it.
	Drift float64

	rng *rand.Rand
}

func NewNetwork(rng *rand.Rand) *Jitter {
	return &Jitter{Adaptive: true, Clamp: true, Drift: StrengthDrift, rng: rng}
}

// NewChip never clamps: chip entities may drift off the canvas.
func NewChip(rng *rand.Rand) *Jitter {
	return &Jitter{Scale: 1, rng: rng}
}

func For(v graph.Variant, rng *rand.Rand) *Jitter {
	if v == graph.Chip {
		return NewChip(rng)
	}
	return NewNetwork(rng)
}

// NetworkScale shrinks the step as the graph grows, down to MinScale.
func NetworkScale(n int) float64 {
	return math.Max(MinScale, 1-float64(n)/ScaleHorizon)
}

func (j *Jitter) StepScale(n int) float64 {
	if j.Adaptive {
		return NetworkScale(n)
	}
	return j.Scale
}

func (j *Jitter) Advance(e *graph.Epoch) {
	scale := j.StepScale(len(e.Entities))
	for i := range e.Entities {
		ent := &e.Entities[i]
		ent.Pos.X += (j.rng.Float64() - 0.5) * scale
		ent.Pos.Y += (j.rng.Float64() - 0.5) * scale
		if j.Drift > 0 {
			s := ent.Strength + (j.rng.Float64()-0.5)*j.Drift
			ent.Strength = math.Max(MinStrength, math.Min(MaxStrength, s))
		}
		if j.Clamp {
			ent.Pos = e.Bounds.Clamp(ent.Pos)
		}
	}
}
