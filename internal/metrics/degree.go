package metrics

import "github.com/san-kum/qnet/internal/graph"

// MeanDegree reports the average undirected degree of the last epoch seen.
type MeanDegree struct {
	name  string
	value float64
}

func NewMeanDegree() *MeanDegree {
	return &MeanDegree{name: "mean_degree"}
}

func (m *MeanDegree) Name() string { return m.name }

func (m *MeanDegree) Observe(e *graph.Epoch) {
	if e.Len() == 0 {
		m.value = 0
		return
	}
	m.value = 2 * float64(len(e.Connections)) / float64(e.Len())
}

func (m *MeanDegree) Value() float64 { return m.value }
func (m *MeanDegree) Reset()         { m.value = 0 }

// Isolated counts entities that ended up without any connection.
type Isolated struct {
	name  string
	count int
}

func NewIsolated() *Isolated {
	return &Isolated{name: "isolated"}
}

func (m *Isolated) Name() string { return m.name }

func (m *Isolated) Observe(e *graph.Epoch) {
	m.count = 0
	for id := range e.Entities {
		if e.Degree(id) == 0 {
			m.count++
		}
	}
}

func (m *Isolated) Value() float64 { return float64(m.count) }
func (m *Isolated) Reset()         { m.count = 0 }
