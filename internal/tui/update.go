package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.refine = msg.Config.Sweep.Refine
		return m.startSweep()

	case SweepCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.result = msg.Result
		m.cursor = msg.Result.BestIndex
		return m, nil
	}

	return m, nil
}

// startSweep runs the sweep over the loaded configuration
func (m Model) startSweep() (tea.Model, tea.Cmd) {
	m.loading = true
	m.loadingMessage = "Sweeping split ratios..."
	return m, tea.Batch(runSweepCmd(m.config, m.refine), m.spinner.Tick)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Reload):
		m.err = nil
		m.loading = true
		m.loadingMessage = "Loading configuration..."
		return m, tea.Batch(loadConfigCmd(m.configPath), m.spinner.Tick)

	case m.result == nil:
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(m.result.Scenarios)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Best):
		m.cursor = m.result.BestIndex

	case key.Matches(msg, m.keys.Refine):
		m.refine = !m.refine
		return m.startSweep()
	}

	return m, nil
}
