package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/homeloan/internal/config"
	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/rgehrsitz/homeloan/internal/split"
)

// keyMap holds the explorer's bindings
type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	Best   key.Binding
	Refine key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "less offset")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "more offset")),
		Best:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "jump to best")),
		Refine: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle refine")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload config")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp satisfies help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Best, k.Refine, k.Reload, k.Quit}
}

// FullHelp satisfies help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right, k.Best}, {k.Refine, k.Reload, k.Quit}}
}

// Model is the split explorer: a sweep curve with a cursor over its grid points
type Model struct {
	// Terminal dimensions
	width  int
	height int

	configPath string
	config     *domain.Configuration
	result     *split.SweepResult

	// cursor indexes result.Scenarios
	cursor int
	refine bool

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	loading        bool
	loadingMessage string
	err            error
}

// NewModel creates a new application model
func NewModel(configPath string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		configPath:     configPath,
		keys:           defaultKeyMap(),
		help:           help.New(),
		spinner:        s,
		loading:        true,
		loadingMessage: "Loading configuration...",
		width:          80,
		height:         24,
	}
}

// Init loads the configuration and starts the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadConfigCmd(m.configPath), m.spinner.Tick)
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// runSweepCmd returns a command that sweeps the configured loan
func runSweepCmd(cfg *domain.Configuration, refine bool) tea.Cmd {
	return func() tea.Msg {
		opts := split.SweepOptionsFromSettings(cfg.Sweep)
		opts.Refine = refine

		result, err := split.NewSplitOptimizer(opts).Sweep(context.Background(), split.RequestFromConfiguration(cfg))
		return SweepCompleteMsg{Result: result, Err: err}
	}
}

// Selected returns the scenario under the cursor
func (m Model) Selected() (domain.SplitScenario, bool) {
	if m.result == nil || m.cursor < 0 || m.cursor >= len(m.result.Scenarios) {
		return domain.SplitScenario{}, false
	}
	return m.result.Scenarios[m.cursor], true
}

// Cursor returns the grid index under the cursor
func (m Model) Cursor() int {
	return m.cursor
}
