package render

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/qnet/internal/graph"
)

func fixedNetwork() *graph.Epoch {
	return &graph.Epoch{
		Variant: graph.Network,
		Bounds:  graph.Bounds{Width: 100, Height: 100},
		Entities: []graph.Entity{
			{ID: 0, Pos: graph.Vec2{X: 10, Y: 10}, Strength: 0.5},
			{ID: 1, Pos: graph.Vec2{X: 90, Y: 90}, Strength: 1.0},
		},
		Connections: []graph.Connection{{Source: 0, Target: 1, Strength: 0.25}},
		Adjacency:   [][]int{{1}, {0}},
	}
}

func TestRenderFrameOrder(t *testing.T) {
	rec := NewRecorder(100, 100)
	if err := RenderFrame(rec, fixedNetwork(), NetworkStyle()); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	want := []OpKind{OpRect, OpLine, OpDisc, OpDisc}
	if len(rec.Ops) != len(want) {
		t.Fatalf("expected %d ops, got %d", len(want), len(rec.Ops))
	}
	for i, k := range want {
		if rec.Ops[i].Kind != k {
			t.Errorf("op %d: expected kind %d, got %d", i, k, rec.Ops[i].Kind)
		}
	}
}

func TestFadeCoversSurface(t *testing.T) {
	rec := NewRecorder(1920, 1080)
	Fade(rec, NetworkStyle())
	op := rec.Ops[0]
	if op.A != (graph.Vec2{}) || op.B != (graph.Vec2{X: 1920, Y: 1080}) {
		t.Errorf("fade does not cover surface: %v-%v", op.A, op.B)
	}
	if op.Colors[0].A != DefaultFade {
		t.Errorf("expected fade alpha %.2f, got %.2f", DefaultFade, op.Colors[0].A)
	}
}

func TestNetworkStrengthModulation(t *testing.T) {
	rec := NewRecorder(100, 100)
	ep := fixedNetwork()
	RenderFrame(rec, ep, NetworkStyle())

	line := rec.Ops[1]
	if math.Abs(line.Stroke.Width-0.5) > 1e-9 {
		t.Errorf("expected width 0.5, got %f", line.Stroke.Width)
	}
	if math.Abs(line.Colors[0].A-0.25) > 1e-9 || math.Abs(line.Colors[1].A-0.25) > 1e-9 {
		t.Errorf("expected stop alpha 0.25, got %v", line.Colors)
	}
	if line.Stroke.Dash != nil {
		t.Error("network edges should be solid")
	}

	if r := rec.Ops[2].Radius; math.Abs(r-10) > 1e-9 {
		t.Errorf("expected radius 10, got %f", r)
	}
	if r := rec.Ops[3].Radius; math.Abs(r-20) > 1e-9 {
		t.Errorf("expected radius 20, got %f", r)
	}
	if rec.Ops[2].Colors[1].A != 0 {
		t.Error("glow must fade to transparent")
	}
}

func TestChipStyling(t *testing.T) {
	ep, err := graph.Generate(rand.New(rand.NewSource(2)), graph.Chip, 12, graph.Bounds{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	rec := NewRecorder(800, 600)
	RenderFrame(rec, ep, ChipStyle())

	if got := rec.Count(OpLine); got != len(ep.Connections) {
		t.Errorf("expected %d lines, got %d", len(ep.Connections), got)
	}
	if got := rec.Count(OpText); got != 12 {
		t.Errorf("expected 12 labels, got %d", got)
	}
	for _, op := range rec.Ops {
		switch op.Kind {
		case OpLine:
			if op.Stroke.Width != 2 || len(op.Stroke.Dash) != 2 {
				t.Errorf("unexpected chip stroke %+v", op.Stroke)
			}
		case OpDisc:
			if op.Radius != 30 {
				t.Errorf("expected radius 30, got %f", op.Radius)
			}
		}
	}

	texts := 0
	for i, op := range rec.Ops {
		if op.Kind != OpText {
			continue
		}
		disc := rec.Ops[i-1]
		if op.A.Y != disc.A.Y+45 || op.A.X != disc.A.X {
			t.Errorf("label not centered below disc: %v vs %v", op.A, disc.A)
		}
		texts++
	}
	if texts == 0 {
		t.Fatal("no labels rendered")
	}
}

func TestRenderDoesNotMutateEpoch(t *testing.T) {
	ep := fixedNetwork()
	before := ep.Clone()
	RenderFrame(NewRecorder(100, 100), ep, NetworkStyle())
	for i := range ep.Entities {
		if ep.Entities[i] != before.Entities[i] {
			t.Fatalf("entity %d mutated by render", i)
		}
	}
}

func TestReleasedSurfaceReportsError(t *testing.T) {
	rec := NewRecorder(100, 100)
	rec.Release()
	err := RenderFrame(rec, fixedNetwork(), NetworkStyle())
	if !errors.Is(err, ErrSurfaceReleased) {
		t.Errorf("expected ErrSurfaceReleased, got %v", err)
	}
	if len(rec.Ops) != 0 {
		t.Error("released surface recorded ops")
	}
}

func TestRGBALerp(t *testing.T) {
	a := RGBA{0, 0, 0, 0}
	b := RGBA{200, 100, 50, 1}
	mid := a.Lerp(b, 0.5)
	if mid.R != 100 || mid.G != 50 || mid.B != 25 || mid.A != 0.5 {
		t.Errorf("unexpected midpoint %+v", mid)
	}
	if a.Lerp(b, 1) != b {
		t.Error("lerp at 1 should return target")
	}
}

func TestStrokeOn(t *testing.T) {
	s := Stroke{Width: 2, Dash: []float64{5, 5}}
	tests := []struct {
		dist float64
		want bool
	}{
		{0, true},
		{4.9, true},
		{5, false},
		{9.9, false},
		{10, true},
		{27, false},
	}

	for _, tt := range tests {
		if got := s.On(tt.dist); got != tt.want {
			t.Errorf("On(%v) = %v, want %v", tt.dist, got, tt.want)
		}
	}
	if !(Stroke{Width: 1}).On(3) {
		t.Error("solid stroke should always be on")
	}
}
