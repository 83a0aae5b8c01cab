package viz

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/qnet/internal/config"
	"github.com/san-kum/qnet/internal/dashboard"
	"github.com/san-kum/qnet/internal/engine"
	"github.com/san-kum/qnet/internal/export"
	"github.com/san-kum/qnet/internal/frame"
	"github.com/san-kum/qnet/internal/graph"
	"github.com/san-kum/qnet/internal/metrics"
	"github.com/san-kum/qnet/internal/render"
	"go.uber.org/zap"
)

const (
	width           = 80
	height          = 24
	panelWidth      = 46
	historyCapacity = 120
)

type TickMsg time.Time

// DashMsg fires every dashboard.Interval to advance the header counters.
type DashMsg time.Time

// Model hosts one animation on a braille canvas next to the dashboard
// panel. Each TickMsg flushes the frame queue once, so the terminal
// refresh is the display frame.
type Model struct {
	cfg     *config.Config
	log     *zap.Logger
	rng     *rand.Rand
	queue   *frame.Queue
	surface *BrailleSurface
	anim    *engine.Animation
	counts  map[graph.Variant]int
	dash    *dashboard.Dashboard
	sampler dashboard.Sampler

	hostLoad   float64
	frameTimes []float64
	theme      Theme
	styles     styles
	paused     bool
	editing    bool
	editBuf    string
	status     string
	showHelp   bool
	snapshotTo string
}

// NewModel builds the host for cfg and mounts the configured view.
func NewModel(cfg *config.Config, log *zap.Logger, sampler dashboard.Sampler) Model {
	if log == nil {
		log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	view := graph.Variant(cfg.View)
	theme := GetTheme(cfg.Theme)
	m := Model{
		cfg:     cfg,
		log:     log,
		rng:     rand.New(rand.NewSource(seed)),
		queue:   frame.NewQueue(),
		surface: NewBrailleSurface(width, height, cfg.Width, cfg.Height),
		counts: map[graph.Variant]int{
			graph.Network: engine.DefaultCount(graph.Network),
			graph.Chip:    engine.DefaultCount(graph.Chip),
		},
		dash:       dashboard.New(),
		sampler:    sampler,
		frameTimes: make([]float64, 0, historyCapacity),
		theme:      theme,
		styles:     newStyles(theme),
		snapshotTo: ".",
	}
	m.counts[view] = cfg.Count
	m.anim = m.newAnimation(view)
	m.anim.Mount()
	return m
}

func (m *Model) newAnimation(v graph.Variant) *engine.Animation {
	st := render.StyleFor(v)
	st.Fade = m.cfg.Fade
	return engine.New(v, m.surface, m.queue,
		engine.WithRand(m.rng),
		engine.WithLogger(m.log.Named(string(v))),
		engine.WithCount(m.counts[v]),
		engine.WithStyle(st),
		engine.WithMetrics(metrics.Defaults()...),
	)
}

func (m Model) fps() int {
	if m.cfg.FPS <= 0 {
		return config.DefaultFPS
	}
	return m.cfg.FPS
}

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func dashTick() tea.Cmd {
	return tea.Tick(dashboard.Interval, func(t time.Time) tea.Msg { return DashMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.fps()), dashTick())
}

// Update handles input events and drives the frame queue.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.surface.Resize(msg.Width-panelWidth-4, msg.Height-2)
	case tea.KeyMsg:
		if m.editing {
			m.editKey(msg)
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			m.anim.Unmount()
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "tab", "v":
			m.switchView()
		case "c":
			m.editing, m.editBuf = true, ""
		case "r":
			m.anim.SetEntityCount(m.anim.Count())
		case "s":
			m.snapshot()
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.paused {
			start := time.Now()
			m.queue.Flush()
			m.frameTimes = append(m.frameTimes, float64(time.Since(start).Microseconds())/1000)
			if len(m.frameTimes) > historyCapacity {
				m.frameTimes = m.frameTimes[1:]
			}
		}
		return m, tick(m.fps())
	case DashMsg:
		m.dash.Step(m.rng)
		m.hostLoad = dashboard.HostLoad(m.sampler)
		return m, dashTick()
	}
	return m, nil
}

func (m *Model) editKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		input := m.editBuf
		m.editing, m.editBuf = false, ""
		if m.anim.SetEntityCountText(input) {
			m.counts[m.anim.Variant()] = m.anim.Count()
			m.status = fmt.Sprintf("re-seeded with %d entities", m.anim.Count())
		} else {
			m.status = fmt.Sprintf("ignored %q: need 1..%d", input, engine.MaxEntities)
		}
	case tea.KeyEsc:
		m.editing, m.editBuf = false, ""
	case tea.KeyBackspace:
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	case tea.KeyRunes:
		m.editBuf += string(msg.Runes)
	}
}

// switchView unmounts the current animation and mounts the next enabled
// view on the same canvas.
func (m *Model) switchView() {
	next := graph.Variant(dashboard.Next(string(m.anim.Variant())).Name)
	m.anim.Unmount()
	m.surface.Clear()
	m.anim = m.newAnimation(next)
	m.anim.Mount()
	m.status = "switched to " + string(next)
}

func (m *Model) snapshot() {
	ep := m.anim.Epoch()
	if ep == nil {
		return
	}
	name := fmt.Sprintf("%s/qnet-%s-%s.svg", m.snapshotTo, ep.Variant, ep.ID[:8])
	f, err := os.Create(name)
	if err != nil {
		m.status = "snapshot failed: " + err.Error()
		return
	}
	defer f.Close()
	if err := export.WriteSVG(f, ep, m.anim.Style()); err != nil {
		m.status = "snapshot failed: " + err.Error()
		return
	}
	m.log.Info("snapshot written", zap.String("path", name))
	m.status = "saved " + name
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := lipgloss.NewStyle().Padding(0, 1).Render(m.surface.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.panel.Render(m.panel()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func (m Model) panel() string {
	st := m.styles
	var s strings.Builder
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	s.WriteString(GradientText("QUANTUM NETWORK", m.theme.Primary, m.theme.Secondary) + "\n")
	switch {
	case m.anim.Err() != nil:
		s.WriteString(st.warning.Render("FAULT: "+m.anim.Err().Error()) + "\n")
	case m.paused:
		s.WriteString(st.warning.Render("PAUSED") + "\n")
	default:
		s.WriteString(st.active.Render("LIVE") + "\n")
	}
	s.WriteString(st.muted.Render(fmt.Sprintf("%d nodes  %.1f%% load  %.1f%% coherence",
		m.dash.ActiveNodes, m.dash.NetworkLoad, m.dash.Coherence)) + "\n\n")

	tiles := m.dash.Tiles()
	s.WriteString(st.header.Render("Network Status") + "\n")
	s.WriteString(ProgressBar(m.dash.NetworkLoad, 30, m.theme.Primary) + "\n")
	row("Active Connections", fmt.Sprintf("%d", tiles.ActiveConnections))
	row("Data Transfer", fmt.Sprintf("%.1f MB/s", tiles.DataTransfer))
	s.WriteString(st.header.Render("Quantum State") + "\n")
	s.WriteString(ProgressBar(m.dash.Coherence, 30, m.theme.Secondary) + "\n")
	row("Coherence", fmt.Sprintf("%.1f%%", m.dash.Coherence))
	row("Entangled Pairs", fmt.Sprintf("%d", tiles.EntangledPairs))
	s.WriteString(st.header.Render("System Health") + "\n")
	s.WriteString(ProgressBar(tiles.HealthBar, 30, m.theme.Success) + "\n")
	row("Memory Usage", fmt.Sprintf("%d%%", tiles.MemoryUsage))
	row("Processing Units", fmt.Sprintf("%d", tiles.ProcessingUnits))
	row("Host CPU", fmt.Sprintf("%.1f%%", m.hostLoad))

	s.WriteString("\n" + st.header.Render("Views") + "\n")
	for _, v := range dashboard.Views {
		switch {
		case v.Name == string(m.anim.Variant()):
			s.WriteString(st.active.Render("> "+v.Title) + "\n")
		case v.Enabled:
			s.WriteString("  " + st.value.Render(v.Title) + "\n")
		default:
			s.WriteString("  " + st.muted.Render(v.Title+" (offline)") + "\n")
		}
	}

	s.WriteString("\n" + st.header.Render("Engine") + "\n")
	if ep := m.anim.Epoch(); ep != nil {
		row("Epoch", ep.ID[:8])
		row("Entities", fmt.Sprintf("%d", ep.Len()))
		row("Connections", fmt.Sprintf("%d", len(ep.Connections)))
	}
	row("Frames", fmt.Sprintf("%d", m.anim.Frames()))
	for _, mt := range m.anim.Metrics() {
		row(mt.Name(), fmt.Sprintf("%.2f", mt.Value()))
	}
	if len(m.frameTimes) > 1 {
		chart := asciigraph.Plot(m.frameTimes, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("frame ms"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	if m.editing {
		s.WriteString("\n" + st.active.Render("entities> "+m.editBuf+"█") + "\n")
	} else if m.status != "" {
		s.WriteString("\n" + st.muted.Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render("\nSP:Pause V:View C:Count R:Reseed\nS:Snapshot T:Theme ?:Help Q:Quit"))
	return s.String()
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume animation   ║
║  V / Tab  - Switch network/chip view ║
║  C        - Set entity count         ║
║  R        - Re-seed current view     ║
║  S        - Save SVG snapshot        ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`
