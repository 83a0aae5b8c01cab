// Package window hosts the animation in a desktop window. The raster
// surface is the frame buffer; ebiten's Update is the display frame.
package window

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/qnet/internal/config"
	"github.com/san-kum/qnet/internal/dashboard"
	"github.com/san-kum/qnet/internal/engine"
	"github.com/san-kum/qnet/internal/frame"
	"github.com/san-kum/qnet/internal/graph"
	"github.com/san-kum/qnet/internal/metrics"
	"github.com/san-kum/qnet/internal/raster"
	"github.com/san-kum/qnet/internal/render"
	"go.uber.org/zap"
)

// Action is a host command decoupled from the key that triggers it.
type Action int

const (
	ActionNone Action = iota
	ActionPause
	ActionSwitch
	ActionReseed
	ActionEdit
	ActionApply
	ActionCancel
	ActionQuit
)

type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	rng     *rand.Rand
	queue   *frame.Queue
	surface *raster.Surface
	anim    *engine.Animation
	counts  map[graph.Variant]int
	dash    *dashboard.Dashboard

	updates    int
	paused     bool
	editing    bool
	editBuf    []rune
	status     string
	dashEvery  int
}

func NewGame(cfg *config.Config, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		cfg:     cfg,
		log:     log,
		rng:     rand.New(rand.NewSource(seed)),
		queue:   frame.NewQueue(),
		surface: raster.New(cfg.Width, cfg.Height),
		counts: map[graph.Variant]int{
			graph.Network: engine.DefaultCount(graph.Network),
			graph.Chip:    engine.DefaultCount(graph.Chip),
		},
		dash:      dashboard.New(),
		dashEvery: max(1, cfg.FPS*int(dashboard.Interval/time.Second)),
	}
	v := graph.Variant(cfg.View)
	g.counts[v] = cfg.Count
	g.mount(v)
	return g
}

func (g *Game) mount(v graph.Variant) {
	st := render.StyleFor(v)
	st.Fade = g.cfg.Fade
	g.anim = engine.New(v, g.surface, g.queue,
		engine.WithRand(g.rng),
		engine.WithLogger(g.log.Named(string(v))),
		engine.WithCount(g.counts[v]),
		engine.WithStyle(st),
		engine.WithMetrics(metrics.NewMeanDegree(), metrics.NewMeanStrength()),
	)
	g.anim.Mount()
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, log *zap.Logger) error {
	g := NewGame(cfg, log)
	defer g.Close()

	ebiten.SetWindowSize(cfg.Width/2, cfg.Height/2)
	ebiten.SetWindowTitle("Quantum Network - V: view, C: count, Space: pause, Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return g.anim.Err()
}

// Close unmounts the animation and releases the frame buffer.
func (g *Game) Close() {
	g.anim.Unmount()
	g.surface.Release()
}

func (g *Game) Update() error {
	if g.editing {
		g.editBuf = ebiten.AppendInputChars(g.editBuf)
	}
	if err := g.Handle(pollInput(g.editing)); err != nil {
		return err
	}
	return g.Advance()
}

func pollInput(editing bool) Action {
	switch {
	case editing && inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		return ActionApply
	case editing && inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ActionCancel
	case editing:
		return ActionNone
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ActionQuit
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		return ActionPause
	case inpututil.IsKeyJustPressed(ebiten.KeyV), inpututil.IsKeyJustPressed(ebiten.KeyTab):
		return ActionSwitch
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		return ActionReseed
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		return ActionEdit
	}
	return ActionNone
}

// Handle applies one host action. ActionQuit returns ebiten.Termination.
func (g *Game) Handle(a Action) error {
	switch a {
	case ActionQuit:
		g.anim.Unmount()
		return ebiten.Termination
	case ActionPause:
		g.paused = !g.paused
	case ActionSwitch:
		next := graph.Variant(dashboard.Next(string(g.anim.Variant())).Name)
		g.anim.Unmount()
		g.surface.FillRect(0, 0, float64(g.cfg.Width), float64(g.cfg.Height), render.Black)
		g.mount(next)
		g.status = "switched to " + string(next)
	case ActionReseed:
		g.anim.SetEntityCount(g.anim.Count())
	case ActionEdit:
		g.editing, g.editBuf = true, g.editBuf[:0]
	case ActionApply:
		input := string(g.editBuf)
		g.editing, g.editBuf = false, g.editBuf[:0]
		if g.anim.SetEntityCountText(input) {
			g.counts[g.anim.Variant()] = g.anim.Count()
			g.status = "re-seeded with " + strconv.Itoa(g.anim.Count())
		} else {
			g.status = fmt.Sprintf("ignored %q", input)
		}
	case ActionCancel:
		g.editing, g.editBuf = false, g.editBuf[:0]
	}
	return nil
}

// Advance runs one display frame. A faulted loop ends the game with its
// error.
func (g *Game) Advance() error {
	g.updates++
	if g.updates%g.dashEvery == 0 {
		g.dash.Step(g.rng)
	}
	if g.paused {
		return nil
	}
	g.queue.Flush()
	return g.anim.Err()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.surface.Image().Pix)

	status := fmt.Sprintf("%s  entities %d  frames %d  TPS %.0f\n%d nodes  %.1f%% load  %.1f%% coherence",
		g.anim.Variant(), g.anim.Count(), g.anim.Frames(), ebiten.ActualTPS(),
		g.dash.ActiveNodes, g.dash.NetworkLoad, g.dash.Coherence)
	if g.editing {
		status += "\nentities> " + string(g.editBuf)
	} else if g.status != "" {
		status += "\n" + g.status
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// Layout pins the logical screen to the surface so WritePixels lines up.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.surface.Size()
}
