package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/qnet/internal/config"
	"github.com/san-kum/qnet/internal/dashboard"
	"go.uber.org/zap"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

const (
	stateMenu = iota
	stateLive
)

// launchItem is one row of the launcher: a preset, or the base config
// when preset is empty.
type launchItem struct {
	view, preset string
	cfg          *config.Config
}

func (it launchItem) title() string {
	if it.preset == "" {
		return "configured"
	}
	return it.view + "/" + it.preset
}

type launcher struct {
	state   int
	cursor  int
	items   []launchItem
	log     *zap.Logger
	sampler dashboard.Sampler
	size    *tea.WindowSizeMsg
	live    Model
}

// NewLauncher returns a menu listing base plus every preset. Choosing an
// entry starts the live view with it.
func NewLauncher(base *config.Config, log *zap.Logger, sampler dashboard.Sampler) tea.Model {
	items := []launchItem{{view: base.View, cfg: base}}
	for _, view := range []string{"network", "chip"} {
		names := config.ListPresets(view)
		sort.Strings(names)
		for _, name := range names {
			cfg := config.GetPreset(view, name)
			cfg.Seed, cfg.Theme = base.Seed, base.Theme
			cfg.Width, cfg.Height = base.Width, base.Height
			items = append(items, launchItem{view: view, preset: name, cfg: cfg})
		}
	}
	return launcher{items: items, log: log, sampler: sampler}
}

func (m launcher) Init() tea.Cmd { return nil }

func (m launcher) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = &msg
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m.start()
		}
	}
	return m, nil
}

func (m launcher) start() (tea.Model, tea.Cmd) {
	it := m.items[m.cursor]
	m.live = NewModel(it.cfg, m.log, m.sampler)
	m.state = stateLive
	cmds := []tea.Cmd{m.live.Init()}
	if m.size != nil {
		next, cmd := m.live.Update(*m.size)
		m.live = next.(Model)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m launcher) View() string {
	if m.state == stateLive {
		return m.live.View()
	}
	var s strings.Builder
	s.WriteString("\n  " + GradientText("QUANTUM NETWORK", ThemeCyberpunk.Primary, ThemeCyberpunk.Secondary) + "\n")
	s.WriteString("  " + dimmer.Render(strings.Repeat("─", 40)) + "\n\n")
	for i, it := range m.items {
		line := fmt.Sprintf("%-18s %s", it.title(), dim.Render(fmt.Sprintf("%s, %d entities", it.cfg.View, it.cfg.Count)))
		if i == m.cursor {
			s.WriteString("  " + cyan.Render("▸ ") + white.Render(line) + "\n")
		} else {
			s.WriteString("    " + dim.Render(line) + "\n")
		}
	}
	s.WriteString("\n  " + dimmer.Render("↑↓ select  enter start  q quit") + "\n")
	return s.String()
}
