// Package metrics observes epochs frame by frame and reduces them to the
// scalars shown in the stats panel.
package metrics

import "github.com/san-kum/qnet/internal/graph"

type Metric interface {
	Name() string
	Observe(e *graph.Epoch)
	Value() float64
	Reset()
}

// Defaults returns the metric set the hosts display.
func Defaults() []Metric {
	return []Metric{NewMeanDegree(), NewIsolated(), NewMeanStrength(), NewSpread()}
}
