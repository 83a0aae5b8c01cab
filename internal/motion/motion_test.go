package motion

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/qnet/internal/graph"
)

func TestNetworkScale(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{0, 1},
		{50, 0.995},
		{5000, 0.5},
		{9000, 0.1},
		{9500, 0.1},
		{100000, 0.1},
	}
	for _, tt := range tests {
		if got := NetworkScale(tt.n); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NetworkScale(%d) = %f, want %f", tt.n, got, tt.want)
		}
	}
}

func TestNetworkStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := graph.Bounds{Width: 40, Height: 30}
	ep, err := graph.Generate(rng, graph.Network, 200, b)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	j := NewNetwork(rng)
	for step := 0; step < 2000; step++ {
		j.Advance(ep)
		for _, e := range ep.Entities {
			if !b.Contains(e.Pos) {
				t.Fatalf("step %d: entity %d escaped: %+v", step, e.ID, e.Pos)
			}
			if e.Strength < MinStrength || e.Strength > MaxStrength {
				t.Fatalf("step %d: strength %f out of range", step, e.Strength)
			}
		}
	}
}

func TestStepIsBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ep, _ := graph.Generate(rng, graph.Chip, 50, graph.Bounds{Width: 800, Height: 600})
	before := ep.Clone()
	NewChip(rng).Advance(ep)
	for i, e := range ep.Entities {
		dx := math.Abs(e.Pos.X - before.Entities[i].Pos.X)
		dy := math.Abs(e.Pos.Y - before.Entities[i].Pos.Y)
		if dx > 0.5 || dy > 0.5 {
			t.Errorf("entity %d moved (%f,%f), beyond half a unit", i, dx, dy)
		}
	}
}

func TestChipIsNotClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	ep := &graph.Epoch{
		Variant:  graph.Chip,
		Bounds:   graph.Bounds{Width: 10, Height: 10},
		Entities: []graph.Entity{{ID: 0, Pos: graph.Vec2{X: -50, Y: 500}}},
	}
	NewChip(rng).Advance(ep)
	if ep.Entities[0].Pos.X > -49 || ep.Entities[0].Pos.Y < 499 {
		t.Errorf("chip entity was pulled back: %+v", ep.Entities[0].Pos)
	}
	if ep.Entities[0].Strength != 0 {
		t.Error("chip entity gained strength")
	}
}

func TestNetworkClampDoesNotBounce(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	ep := &graph.Epoch{
		Variant:  graph.Network,
		Bounds:   graph.Bounds{Width: 10, Height: 10},
		Entities: []graph.Entity{{ID: 0, Pos: graph.Vec2{X: 500, Y: -500}, Strength: 0.05}},
	}
	NewNetwork(rng).Advance(ep)
	if got := ep.Entities[0].Pos; got != (graph.Vec2{X: 10, Y: 0}) {
		t.Errorf("expected clamp onto corner, got %+v", got)
	}
	if ep.Entities[0].Strength != MinStrength {
		t.Errorf("expected strength floor, got %f", ep.Entities[0].Strength)
	}
}

func TestFor(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if j := For(graph.Chip, rng); j.Clamp || j.Adaptive || j.Scale != 1 {
		t.Errorf("unexpected chip jitter %+v", j)
	}
	if j := For(graph.Network, rng); !j.Clamp || !j.Adaptive {
		t.Errorf("unexpected network jitter %+v", j)
	}
}
