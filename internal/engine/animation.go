package engine

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/qnet/internal/frame"
	"github.com/san-kum/qnet/internal/graph"
	"github.com/san-kum/qnet/internal/metrics"
	"github.com/san-kum/qnet/internal/motion"
	"github.com/san-kum/qnet/internal/render"
	"go.uber.org/zap"
)

// MaxEntities is the largest count the host accepts to keep the frame
// budget achievable. Generation itself is uncapped.
const MaxEntities = 100000

const (
	DefaultNetworkCount = 50
	DefaultChipCount    = 12
)

func DefaultCount(v graph.Variant) int {
	if v == graph.Chip {
		return DefaultChipCount
	}
	return DefaultNetworkCount
}

// ValidCount reports whether n is an acceptable reconfiguration input.
func ValidCount(n int) bool {
	return n > 0 && n <= MaxEntities
}

type Option func(*Animation)

func WithRand(rng *rand.Rand) Option {
	return func(a *Animation) { a.rng = rng }
}

func WithSeed(seed int64) Option {
	return func(a *Animation) { a.rng = rand.New(rand.NewSource(seed)) }
}

func WithLogger(l *zap.Logger) Option {
	return func(a *Animation) { a.log = l }
}

func WithCount(n int) Option {
	return func(a *Animation) { a.count = n }
}

func WithStyle(st render.Style) Option {
	return func(a *Animation) { a.style = st }
}

func WithIntegrator(i motion.Integrator) Option {
	return func(a *Animation) { a.mover = i }
}

// WithMetrics registers metrics that observe the epoch after every tick.
// They are reset on every re-seed.
func WithMetrics(ms ...metrics.Metric) Option {
	return func(a *Animation) { a.metrics = append(a.metrics, ms...) }
}

// WithOnFault registers fn to receive the error that kills the loop.
func WithOnFault(fn func(error)) Option {
	return func(a *Animation) { a.onFault = fn }
}

// Animation owns one variant's epoch and frame loop.
type Animation struct {
	variant graph.Variant
	surface render.Surface
	sched   frame.Scheduler
	rng     *rand.Rand
	log     *zap.Logger
	style   render.Style
	mover   motion.Integrator
	metrics []metrics.Metric
	onFault func(error)

	count   int
	epoch   *graph.Epoch
	loop    *frame.Loop
	mounted bool
	frames  uint64
	reseeds int
	err     error
}

// New prepares an animation. The surface may be nil when the host has not
// attached one yet; Mount is then a no-op.
func New(v graph.Variant, s render.Surface, sched frame.Scheduler, opts ...Option) *Animation {
	a := &Animation{
		variant: v,
		surface: s,
		sched:   sched,
		style:   render.StyleFor(v),
		count:   DefaultCount(v),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if a.mover == nil {
		a.mover = motion.For(v, a.rng)
	}
	return a
}

// Mount generates the first epoch and starts the loop. Without a usable
// surface it does nothing, since mount may race surface attachment.
func (a *Animation) Mount() {
	if a.mounted {
		return
	}
	if a.surface == nil {
		a.log.Debug("mount skipped: no surface", zap.String("variant", string(a.variant)))
		return
	}
	if w, h := a.surface.Size(); w <= 0 || h <= 0 {
		a.log.Debug("mount skipped: empty surface", zap.Int("width", w), zap.Int("height", h))
		return
	}
	if err := a.reseed(a.count); err != nil {
		a.log.Error("mount failed", zap.Error(err))
		return
	}
	a.mounted = true
	a.log.Info("animation mounted",
		zap.String("variant", string(a.variant)),
		zap.String("epoch", a.epoch.ID),
		zap.Int("count", a.count))
}

// Unmount cancels the loop. It is safe to call repeatedly.
func (a *Animation) Unmount() {
	if a.loop != nil {
		a.loop.Stop()
		a.loop = nil
	}
	if a.mounted {
		a.log.Info("animation unmounted",
			zap.String("variant", string(a.variant)),
			zap.Uint64("frames", a.frames))
	}
	a.mounted = false
}

// Attach sets the surface of an animation that was created without one.
func (a *Animation) Attach(s render.Surface) {
	if a.mounted {
		return
	}
	a.surface = s
}

// SetEntityCount re-seeds the running animation with n entities. Counts
// outside (0, MaxEntities] are ignored and false is returned; the current
// epoch and loop are left untouched.
func (a *Animation) SetEntityCount(n int) bool {
	if !ValidCount(n) {
		a.log.Debug("entity count ignored", zap.Int("count", n))
		return false
	}
	if !a.mounted {
		a.count = n
		return true
	}
	if err := a.reseed(n); err != nil {
		a.log.Error("reseed failed", zap.Int("count", n), zap.Error(err))
		return false
	}
	a.log.Info("animation reseeded",
		zap.String("epoch", a.epoch.ID),
		zap.Int("count", n))
	return true
}

// SetEntityCountText parses host text input. Non-numeric input is ignored.
func (a *Animation) SetEntityCountText(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		a.log.Debug("entity count ignored", zap.String("input", s))
		return false
	}
	return a.SetEntityCount(n)
}

func (a *Animation) Variant() graph.Variant { return a.variant }
func (a *Animation) Epoch() *graph.Epoch    { return a.epoch }
func (a *Animation) Count() int             { return a.count }
func (a *Animation) Mounted() bool          { return a.mounted }
func (a *Animation) Frames() uint64         { return a.frames }
func (a *Animation) Reseeds() int           { return a.reseeds }
func (a *Animation) Err() error             { return a.err }
func (a *Animation) Style() render.Style    { return a.style }

func (a *Animation) Metrics() []metrics.Metric {
	return a.metrics
}

// Running reports whether a loop is live and has not faulted.
func (a *Animation) Running() bool {
	return a.loop != nil && a.loop.Running()
}

// Bounds is the region new epochs are generated in.
func (a *Animation) Bounds() graph.Bounds {
	w, h := a.surface.Size()
	return graph.Bounds{Width: float64(w), Height: float64(h)}
}

func (a *Animation) reseed(n int) error {
	ep, err := graph.Generate(a.rng, a.variant, n, a.Bounds())
	if err != nil {
		return fmt.Errorf("generate epoch: %w", err)
	}

	if a.loop != nil {
		a.loop.Stop()
	}

	a.epoch = ep
	a.count = n
	a.err = nil
	a.reseeds++
	for _, m := range a.metrics {
		m.Reset()
	}

	a.loop = frame.NewLoop(a.sched, a.tick)
	a.loop.OnFault(a.fault)
	a.loop.Start()
	return nil
}

func (a *Animation) tick() error {
	ep := a.epoch
	render.Fade(a.surface, a.style)
	render.DrawConnections(a.surface, ep, a.style)
	render.DrawEntities(a.surface, ep, a.style)
	if err := a.surface.Err(); err != nil {
		return &FrameError{Frame: a.frames, Epoch: ep.ID, Wrapped: err}
	}

	a.mover.Advance(ep)
	for _, m := range a.metrics {
		m.Observe(ep)
	}
	a.frames++
	return nil
}

func (a *Animation) fault(err error) {
	a.err = err
	a.log.Error("animation loop terminated",
		zap.String("variant", string(a.variant)),
		zap.Error(err))
	if a.onFault != nil {
		a.onFault(err)
	}
}
