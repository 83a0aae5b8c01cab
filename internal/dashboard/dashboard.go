// Package dashboard simulates the synthetic telemetry shown around the
// network and chip views. Nothing here measures a real network.
package dashboard

import (
	"math"
	"math/rand"
	"time"
)

// Interval is how often the host should call Step.
const Interval = 2 * time.Second

const (
	baseNodes     = 150
	nodeSpread    = 50
	loadStep      = 20.0
	coherenceStep = 5.0
)

// Dashboard holds the header counters. The zero value is not ready;
// use New.
type Dashboard struct {
	ActiveNodes int
	NetworkLoad float64
	Coherence   float64
	Steps       int
}

func New() *Dashboard {
	return &Dashboard{Coherence: 100}
}

// Step redraws the active node count and random-walks load and coherence,
// clamped to [0, 100].
func (d *Dashboard) Step(rng *rand.Rand) {
	d.ActiveNodes = baseNodes + rng.Intn(nodeSpread)
	d.NetworkLoad = clampPct(d.NetworkLoad + (rng.Float64()-0.5)*loadStep)
	d.Coherence = clampPct(d.Coherence + (rng.Float64()-0.5)*coherenceStep)
	d.Steps++
}

// Tiles derives the panel figures from the current counters.
func (d *Dashboard) Tiles() Tiles {
	return Tiles{
		ActiveConnections: int(math.Floor(float64(d.ActiveNodes) * 1.5)),
		DataTransfer:      d.NetworkLoad * 1.2,
		EntangledPairs:    d.ActiveNodes / 2,
		MemoryUsage:       int(math.Floor(float64(d.ActiveNodes) / 200 * 100)),
		ProcessingUnits:   d.ActiveNodes / 10,
		HealthBar:         math.Min(100, float64(d.ActiveNodes)/200*100),
	}
}

type Tiles struct {
	ActiveConnections int
	// DataTransfer is in MB/s.
	DataTransfer    float64
	EntangledPairs  int
	MemoryUsage     int
	ProcessingUnits int
	HealthBar       float64
}

func clampPct(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
