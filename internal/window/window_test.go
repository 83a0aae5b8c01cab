package window

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/san-kum/qnet/internal/config"
	"github.com/san-kum/qnet/internal/graph"
	"github.com/san-kum/qnet/internal/render"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Seed, cfg.FPS = 320, 180, 9, 10
	return NewGame(cfg, nil)
}

func TestAdvanceDrawsFrames(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 3; i++ {
		if err := g.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if g.anim.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", g.anim.Frames())
	}
	if w, h := g.Layout(1000, 1000); w != 320 || h != 180 {
		t.Errorf("Layout = %dx%d, want surface size", w, h)
	}
}

func TestPauseHoldsFrames(t *testing.T) {
	g := newTestGame(t)
	g.Handle(ActionPause)
	g.Advance()
	g.Advance()
	if g.anim.Frames() != 0 {
		t.Errorf("paused game drew %d frames", g.anim.Frames())
	}
}

func TestDashboardStepsEveryInterval(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 20; i++ {
		g.Advance()
	}
	if g.dash.Steps != 1 {
		t.Errorf("expected one dashboard step in 2s of frames, got %d", g.dash.Steps)
	}
}

func TestSwitchAndCount(t *testing.T) {
	g := newTestGame(t)
	prev := g.anim

	g.Handle(ActionSwitch)
	if prev.Mounted() {
		t.Error("old animation still mounted")
	}
	if g.anim.Variant() != graph.Chip {
		t.Fatalf("expected chip, got %s", g.anim.Variant())
	}

	g.Handle(ActionEdit)
	g.editBuf = append(g.editBuf, []rune("30")...)
	g.Handle(ActionApply)
	if g.anim.Epoch().Len() != 30 || g.counts[graph.Chip] != 30 {
		t.Errorf("count not applied: %d", g.anim.Epoch().Len())
	}

	g.Handle(ActionEdit)
	g.editBuf = append(g.editBuf, []rune("-4")...)
	g.Handle(ActionApply)
	if g.anim.Epoch().Len() != 30 {
		t.Error("negative count should be ignored")
	}
}

func TestQuitTerminates(t *testing.T) {
	g := newTestGame(t)
	if err := g.Handle(ActionQuit); !errors.Is(err, ebiten.Termination) {
		t.Errorf("expected ebiten.Termination, got %v", err)
	}
	if g.anim.Mounted() {
		t.Error("quit should unmount")
	}
}

func TestReleasedSurfaceEndsGame(t *testing.T) {
	g := newTestGame(t)
	g.surface.Release()
	err := g.Advance()
	if !errors.Is(err, render.ErrSurfaceReleased) {
		t.Errorf("expected ErrSurfaceReleased, got %v", err)
	}
}
